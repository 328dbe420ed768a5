package contract

import "github.com/slack-go/slack"

// SlackClient defines the interface for Slack operations
type SlackClient interface {
	// GetUserInfo retrieves user information from Slack
	GetUserInfo(userID string) (*slack.User, error)

	// PostMessage sends a message to a Slack channel
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)

	// SetTopicOfConversation replaces the channel topic, used as the group title
	SetTopicOfConversation(channelID, topic string) (*slack.Channel, error)
}
