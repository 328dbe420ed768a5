package entity

import "time"

// WinnerEvent is published once a winner has been announced in a group
type WinnerEvent struct {
	GroupID        int64     `json:"group_id"`
	SlackChannelID string    `json:"slack_channel_id"`
	Date           string    `json:"date"`
	UTCOffset      string    `json:"utc_offset"`
	Timezones      []string  `json:"timezones"`
	SlackUserID    string    `json:"slack_user_id"`
	DisplayName    string    `json:"display_name"`
	LastActive     time.Time `json:"last_active"`
	AnnouncedAt    time.Time `json:"announced_at"`
}
