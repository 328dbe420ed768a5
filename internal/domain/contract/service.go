package contract

import (
	"context"
	"time"

	"github.com/diegoclair/vigil-bot/internal/domain/entity"
)

type VigilService interface {
	GetGroup(slackChannelID string) (*entity.Group, error)
	SetupGroup(slackChannelID, channelName string) (*entity.Group, bool, error)
	EnableGroup(groupID int64) error
	DisableGroup(groupID int64) error
	LinkToMaster(ctx context.Context, groupID int64, masterSlackChannelID string) error
	DeleteGroup(ctx context.Context, groupID int64) error
	UpdateGroupConfig(groupID int64, key, value string) error
	SetTitleEnabled(groupID int64, enabled bool) error

	Join(ctx context.Context, groupID int64, slackUserID, zone string) (string, error)
	Quit(ctx context.Context, groupID int64, slackUserID string) error
	EnableAutoJoin(ctx context.Context, groupID int64, slackUserID, zone string) (string, bool, error)
	DisableAutoJoin(ctx context.Context, groupID int64, slackUserID string) error
	RecordActivity(ctx context.Context, slackChannelID, slackUserID string) (bool, error)

	MatchStatus(groupID int64) ([]*entity.PartitionView, error)
	ListParticipants(groupID int64, filter string) ([]*entity.PartitionView, error)
	MyStatus(slackUserID string) ([]*entity.Membership, error)
	LocalTime(groupID int64, slackUserID, zone string) (time.Time, string, error)
	IsAdmin(slackUserID string) bool
}
