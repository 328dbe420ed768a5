package domain

import (
	"errors"
	"time"
)

var (
	// ErrGroupNotFound is returned for channels where the bot was never set up
	ErrGroupNotFound = errors.New("group not set up")
	// ErrGroupDisabled is returned for roster operations on a disabled group
	ErrGroupDisabled = errors.New("group disabled")
	// ErrSelfLink is returned when a group is linked to itself
	ErrSelfLink = errors.New("group cannot be linked to itself")
	// ErrInvalidValue is returned for configuration values that cannot be parsed
	ErrInvalidValue = errors.New("invalid value")
)

// MemberCacheTTL is how long a member's Slack profile is trusted before it is fetched again
const MemberCacheTTL = 12 * time.Hour

// EditionBaseYear is subtracted from the current year to render {edition} in titles
const EditionBaseYear = 1988

// DefaultTitleTemplate is used when neither the group nor the config file sets one
const DefaultTitleTemplate = "Vigil {edition} - day {day}"

// Group configuration keys accepted by the config command
const (
	ConfigTimezone        = "timezone"
	ConfigMode            = "mode"
	ConfigDeadline        = "deadline"
	ConfigStart           = "start"
	ConfigStop            = "stop"
	ConfigTitleTemplate   = "template"
	ConfigStatusBroadcast = "status_broadcast"
	ConfigWinnerBroadcast = "winner_broadcast"
	ConfigBroadcastDelay  = "broadcast_delay"
)

// ConfigKeys lists the configuration keys in display order
var ConfigKeys = []string{
	ConfigTimezone,
	ConfigMode,
	ConfigDeadline,
	ConfigStart,
	ConfigStop,
	ConfigTitleTemplate,
	ConfigStatusBroadcast,
	ConfigWinnerBroadcast,
	ConfigBroadcastDelay,
}
