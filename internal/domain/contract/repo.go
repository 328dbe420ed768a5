package contract

import (
	"context"

	"github.com/diegoclair/vigil-bot/internal/domain/contest"
	"github.com/diegoclair/vigil-bot/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Group() GroupRepo
	Member() MemberRepo
	Roster() RosterRepo
}

// GroupRepo defines the contract for group repository
type GroupRepo interface {
	Create(group *entity.Group) error
	GetByID(id int64) (*entity.Group, error)
	GetBySlackID(slackChannelID string) (*entity.Group, error)
	Update(group *entity.Group) error
	Delete(id int64) error
	GetEnabled() ([]*entity.Group, error)
	GetMasters() ([]*entity.Group, error)
	GetSlavesOf(masterID int64) ([]*entity.Group, error)
}

// MemberRepo defines the contract for member repository
type MemberRepo interface {
	Upsert(member *entity.Member) error
	GetByID(id int64) (*entity.Member, error)
	GetBySlackID(slackUserID string) (*entity.Member, error)
}

// RosterRepo stores the contest state owned by master groups
type RosterRepo interface {
	Load(groupID int64) (*contest.Roster, error)
	Save(groupID int64, roster *contest.Roster) error
	GroupsWithParticipant(memberID int64) ([]int64, error)
}
