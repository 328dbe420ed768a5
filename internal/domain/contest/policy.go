package contest

import (
	"fmt"
	"time"
)

// Decision is the outcome of evaluating one partition at one instant.
type Decision struct {
	Winner *Participant
	Evict  []int64
}

// Policy decides when a partition's contest concludes and who won it.
type Policy interface {
	Mode() Mode
	// Evaluate inspects a partition at now. decided reports whether the
	// ledger already holds a winner for the partition's current key; a
	// policy never returns a winner when it is set.
	Evaluate(p Partition, now time.Time, decided bool) Decision
	// CycleBoundary reports whether local is the instant at which a new
	// cycle starts and auto-join entries are re-enrolled.
	CycleBoundary(local time.Time) bool
	// AcceptsActivity reports whether activity observed at local counts.
	AcceptsActivity(local time.Time) bool
}

// NewPolicy is the single place a contest mode is turned into behaviour.
func NewPolicy(cfg Config) (Policy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Mode {
	case ModeLatestActivityWins:
		return latestActivityWins{deadlineHour: cfg.Deadline, startHour: cfg.StartHour, stopHour: cfg.StopHour}, nil
	case ModeInactivityTimeout:
		return inactivityTimeout{
			timeout:   time.Duration(cfg.Deadline) * time.Minute,
			startHour: cfg.StartHour,
			stopHour:  cfg.StopHour,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %d", ErrConfigInconsistent, int(cfg.Mode))
	}
}

type latestActivityWins struct {
	deadlineHour int
	startHour    int
	stopHour     int
}

func (l latestActivityWins) Mode() Mode { return ModeLatestActivityWins }

func (l latestActivityWins) Evaluate(p Partition, now time.Time, decided bool) Decision {
	local := p.LocalTime(now)
	if decided || !l.CycleBoundary(local) {
		return Decision{}
	}

	winner := latest(p.Participants)
	if winner == nil {
		return Decision{}
	}

	// the whole partition closes, including activity seen within the deadline minute
	return Decision{Winner: winner, Evict: ids(p.Participants)}
}

// CycleBoundary fires on minute 0 of the deadline hour only, so a tick
// running several times within that hour triggers once.
func (l latestActivityWins) CycleBoundary(local time.Time) bool {
	return local.Hour() == l.deadlineHour && local.Minute() == 0
}

// AcceptsActivity opens the eligible window deadline hours before the start
// hour and closes it at the stop hour.
func (l latestActivityWins) AcceptsActivity(local time.Time) bool {
	from := mod24(l.startHour - l.deadlineHour)
	if from == l.stopHour {
		return true
	}
	return hourInWindow(local.Hour(), from, l.stopHour)
}

type inactivityTimeout struct {
	timeout   time.Duration
	startHour int
	stopHour  int
}

func (n inactivityTimeout) Mode() Mode { return ModeInactivityTimeout }

func (n inactivityTimeout) Evaluate(p Partition, now time.Time, decided bool) Decision {
	if !hourInWindow(p.LocalTime(now).Hour(), mod24(n.startHour+1), n.stopHour) {
		return Decision{}
	}

	cutoff := now.Add(-n.timeout)
	var stale []*Participant
	for _, participant := range p.Participants {
		if participant.LastActive().Before(cutoff) {
			stale = append(stale, participant)
		}
	}
	if len(stale) == 0 {
		return Decision{}
	}

	d := Decision{Evict: ids(stale)}
	if len(stale) == len(p.Participants) && !decided {
		d.Winner = latest(stale)
	}
	return d
}

func (n inactivityTimeout) CycleBoundary(local time.Time) bool {
	return local.Hour() == n.stopHour && local.Minute() == 0
}

// AcceptsActivity opens the eligible window one timeout (rounded up to whole
// hours) before the start hour, so presence just before the match counts.
func (n inactivityTimeout) AcceptsActivity(local time.Time) bool {
	lead := int((n.timeout + time.Hour - 1) / time.Hour)
	from := mod24(n.startHour - lead)
	if from == n.stopHour {
		return true
	}
	return hourInWindow(local.Hour(), from, n.stopHour)
}

// latest returns the participant with the most recent activity. The first
// participant seen wins ties.
func latest(participants []*Participant) *Participant {
	var best *Participant
	for _, p := range participants {
		if best == nil || p.LastActive().After(best.LastActive()) {
			best = p
		}
	}
	return best
}

func ids(participants []*Participant) []int64 {
	result := make([]int64, 0, len(participants))
	for _, p := range participants {
		result = append(result, p.ID)
	}
	return result
}
