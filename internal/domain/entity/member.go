package entity

import "time"

// Member is a Slack user known to the bot. Its ID is the participant id used
// by the contest engine.
type Member struct {
	ID          int64
	SlackUserID string
	DisplayName string
	Timezone    string
	RefreshedAt time.Time
	CreatedAt   time.Time
}

// ParticipantView is a hall entry joined with its member for display
type ParticipantView struct {
	Member     *Member
	Timezone   string
	LastActive time.Time
	AutoJoin   bool
}

// Membership is a group a member plays in
type Membership struct {
	Group      *Group
	Timezone   string
	LastActive time.Time
}
