package contest

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidZone is returned when a time zone name is not in the zone table.
	ErrInvalidZone = errors.New("invalid time zone")
	// ErrMatchInProgress is returned when joining while the contest window is open.
	ErrMatchInProgress = errors.New("match in progress")
	// ErrConfigInconsistent marks a group whose configuration or link cannot be evaluated.
	ErrConfigInconsistent = errors.New("inconsistent group configuration")
)

// Mode selects how the winner of a partition is decided.
type Mode int

const (
	// ModeLatestActivityWins picks the most recently active participant at the deadline hour.
	ModeLatestActivityWins Mode = iota
	// ModeInactivityTimeout evicts idle participants; the last one to go idle wins.
	ModeInactivityTimeout
)

func (m Mode) String() string {
	switch m {
	case ModeLatestActivityWins:
		return "last"
	case ModeInactivityTimeout:
		return "no_activity"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "last", "latest":
		return ModeLatestActivityWins, nil
	case "no_activity", "inactivity", "timeout":
		return ModeInactivityTimeout, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", value)
	}
}

// Config is the contest part of a group's configuration.
// Deadline is an hour of day for ModeLatestActivityWins and a number of
// minutes without activity for ModeInactivityTimeout.
type Config struct {
	Mode           Mode
	Deadline       int
	StartHour      int
	StopHour       int
	DelayBroadcast bool
}

const maxInactivityMinutes = 24 * 60

func DefaultConfig() Config {
	return Config{
		Mode:      ModeLatestActivityWins,
		Deadline:  6,
		StartHour: 0,
		StopHour:  9,
	}
}

func (c Config) Validate() error {
	if c.StartHour < 0 || c.StartHour > 23 {
		return fmt.Errorf("%w: start hour %d out of range 0-23", ErrConfigInconsistent, c.StartHour)
	}
	if c.StopHour < 0 || c.StopHour > 23 {
		return fmt.Errorf("%w: stop hour %d out of range 0-23", ErrConfigInconsistent, c.StopHour)
	}

	switch c.Mode {
	case ModeLatestActivityWins:
		if c.Deadline < 0 || c.Deadline > 23 {
			return fmt.Errorf("%w: deadline hour %d out of range 0-23", ErrConfigInconsistent, c.Deadline)
		}
	case ModeInactivityTimeout:
		if c.Deadline < 1 || c.Deadline > maxInactivityMinutes {
			return fmt.Errorf("%w: inactivity deadline %d minutes out of range 1-%d", ErrConfigInconsistent, c.Deadline, maxInactivityMinutes)
		}
	default:
		return fmt.Errorf("%w: unknown mode %d", ErrConfigInconsistent, int(c.Mode))
	}

	return nil
}

// InMatch reports whether a partition at local time is inside its match
func (c Config) InMatch(local time.Time) bool {
	return hourInWindow(local.Hour(), c.StartHour, c.StopHour)
}

// hourInWindow reports whether hour lies in [from, to), wrapping past midnight
// when from > to. An empty window (from == to) contains no hour.
func hourInWindow(hour, from, to int) bool {
	switch {
	case from == to:
		return false
	case from < to:
		return hour >= from && hour < to
	default:
		return hour >= from || hour < to
	}
}

func mod24(hour int) int {
	return ((hour % 24) + 24) % 24
}
