package entity

import (
	"time"

	"github.com/diegoclair/vigil-bot/internal/domain/contest"
)

// Group is a Slack channel taking part in the contest
type Group struct {
	ID               int64
	SlackChannelID   string
	SlackChannelName string
	IsEnabled        bool
	IsMaster         bool
	SlaveOf          int64
	Timezone         string
	TitleEnabled     bool
	TitleTemplate    string
	BroadcastStatus  bool
	BroadcastWinner  bool
	Contest          contest.Config
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Link returns the master/slave linkage of the group
func (g *Group) Link() contest.Link {
	return contest.Link{ID: g.ID, Master: g.IsMaster, SlaveOf: g.SlaveOf}
}

// IsSlave reports whether the group mirrors another group's contest
func (g *Group) IsSlave() bool {
	return !g.IsMaster && g.SlaveOf != 0
}

// PartitionView is a hall partition as shown to users
type PartitionView struct {
	Offset       contest.Offset
	Zones        []string
	LocalTime    time.Time
	Participants []*ParticipantView
}
