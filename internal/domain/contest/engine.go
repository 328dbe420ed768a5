package contest

import (
	"fmt"
	"time"
)

// State is everything the engine needs to advance one master group.
type State struct {
	Config Config
	Roster *Roster
}

// Announcement is a decided winner that is ready to be broadcast.
type Announcement struct {
	Key    WinnerKey
	Winner WinnerRecord
	// LocalTime is the winning activity in the partition's offset.
	LocalTime time.Time
}

// Engine advances group contests. It performs no I/O and never reads the
// clock; every operation takes now explicitly and returns a new State,
// leaving its input untouched.
type Engine struct {
	zones ZoneTable
}

func NewEngine(zones ZoneTable) *Engine {
	return &Engine{zones: zones}
}

func (e *Engine) Zones() ZoneTable {
	return e.zones
}

// Tick evaluates every partition of the group at now, records winners,
// evicts participants, re-enrolls auto-join entries at cycle boundaries and
// returns the winners that are due for broadcast. The input state is returned
// as is when the tick changed nothing or failed.
func (e *Engine) Tick(st State, now time.Time) (State, []Announcement, error) {
	policy, err := NewPolicy(st.Config)
	if err != nil {
		return st, nil, err
	}

	roster := st.Roster.Clone()
	changed := false

	partitions, err := Partitions(e.zones, roster.Participants(), now)
	if err != nil {
		return st, nil, fmt.Errorf("%w: %v", ErrConfigInconsistent, err)
	}

	for _, p := range partitions {
		key := p.Key(now)
		_, decided := roster.Winners[key]

		d := policy.Evaluate(p, now, decided)
		if d.Winner != nil && !decided {
			roster.Winners[key] = WinnerRecord{
				ParticipantID: d.Winner.ID,
				LastActive:    d.Winner.LastActive(),
				Timezones:     append([]string(nil), p.Zones...),
			}
			changed = true
		}
		for _, id := range d.Evict {
			delete(roster.Hall, id)
			changed = true
		}
	}

	enrolled, err := e.reenroll(policy, roster, now)
	if err != nil {
		return st, nil, err
	}

	if !changed && !enrolled {
		return st, e.Pending(st, now), nil
	}

	next := State{Config: st.Config, Roster: roster}
	return next, e.Pending(next, now), nil
}

// reenroll materializes auto-join entries whose offset is at a cycle
// boundary. Offsets without participants are included, so an empty partition
// still gets its auto-join entries back each cycle. Each cycle is re-enrolled
// once, however many ticks land in the boundary minute.
func (e *Engine) reenroll(policy Policy, roster *Roster, now time.Time) (bool, error) {
	byOffset, err := autoJoinByOffset(e.zones, roster.AutoJoinEntries(), now)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrConfigInconsistent, err)
	}

	changed := false
	for offset, entries := range byOffset {
		local := now.In(offset.Location())
		if !policy.CycleBoundary(local) {
			continue
		}
		key := WinnerKey{Date: local.Format(DateLayout), Offset: offset}
		if roster.Reenrolled[key] {
			continue
		}
		roster.markReenrolled(key, now)
		changed = true

		for _, entry := range entries {
			if _, ok := roster.Hall[entry.ID]; ok {
				continue
			}
			roster.enroll(entry.ID, entry.Timezone, now)
		}
	}
	return changed, nil
}

// Pending returns the recorded winners not broadcast yet, ordered by key.
// With DelayBroadcast set a winner is held back until the stop hour of its
// partition.
func (e *Engine) Pending(st State, now time.Time) []Announcement {
	var result []Announcement
	for _, key := range st.Roster.WinnerKeys() {
		w := st.Roster.Winners[key]
		if w.Broadcasted {
			continue
		}
		if st.Config.DelayBroadcast && now.Before(broadcastAt(key, w, st.Config.StopHour)) {
			continue
		}
		result = append(result, Announcement{
			Key:       key,
			Winner:    w,
			LocalTime: w.LastActive.In(key.Offset.Location()),
		})
	}
	return result
}

func broadcastAt(key WinnerKey, w WinnerRecord, stopHour int) time.Time {
	loc := key.Offset.Location()
	day, err := time.ParseInLocation(DateLayout, key.Date, loc)
	if err != nil {
		return w.LastActive
	}
	at := day.Add(time.Duration(stopHour) * time.Hour)
	if at.Before(w.LastActive) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

// MarkBroadcast flips the broadcast flag of a recorded winner. It reports
// false when the key is unknown or already marked.
func (e *Engine) MarkBroadcast(st State, key WinnerKey) (State, bool) {
	w, ok := st.Roster.Winners[key]
	if !ok || w.Broadcasted {
		return st, false
	}

	roster := st.Roster.Clone()
	w.Broadcasted = true
	roster.Winners[key] = w
	return State{Config: st.Config, Roster: roster}, true
}

// Join enrolls id with the given zone. Joining is refused while the match
// runs in that zone, that is when its local hour is in [start, stop).
func (e *Engine) Join(st State, id int64, zone string, now time.Time) (State, error) {
	loc, err := e.zones.Location(zone)
	if err != nil {
		return st, err
	}
	if hourInWindow(now.In(loc).Hour(), st.Config.StartHour, st.Config.StopHour) {
		return st, ErrMatchInProgress
	}

	roster := st.Roster.Clone()
	roster.enroll(id, zone, now)
	return State{Config: st.Config, Roster: roster}, nil
}

// Quit removes id from the hall. Unknown ids are ignored.
func (e *Engine) Quit(st State, id int64) State {
	if _, ok := st.Roster.Hall[id]; !ok {
		return st
	}

	roster := st.Roster.Clone()
	delete(roster.Hall, id)
	return State{Config: st.Config, Roster: roster}
}

// RecordActivity appends now to the activity of id when it falls inside the
// eligible window of id's zone. It reports whether the activity was recorded.
func (e *Engine) RecordActivity(st State, id int64, now time.Time) (State, bool, error) {
	p, ok := st.Roster.Hall[id]
	if !ok {
		return st, false, nil
	}

	policy, err := NewPolicy(st.Config)
	if err != nil {
		return st, false, err
	}
	loc, err := e.zones.Location(p.Timezone)
	if err != nil {
		return st, false, err
	}
	if !policy.AcceptsActivity(now.In(loc)) {
		return st, false, nil
	}

	roster := st.Roster.Clone()
	if !roster.Hall[id].touch(now) {
		return st, false, nil
	}
	return State{Config: st.Config, Roster: roster}, true, nil
}

// EnableAutoJoin stores a standing opt-in for id. It does not enroll id in
// the running cycle.
func (e *Engine) EnableAutoJoin(st State, id int64, zone string) (State, error) {
	if _, err := e.zones.Location(zone); err != nil {
		return st, err
	}

	roster := st.Roster.Clone()
	seq := roster.nextSeq()
	if existing, ok := roster.AutoJoin[id]; ok {
		seq = existing.Seq
	}
	roster.AutoJoin[id] = AutoJoinEntry{ID: id, Timezone: zone, Seq: seq}
	return State{Config: st.Config, Roster: roster}, nil
}

func (e *Engine) DisableAutoJoin(st State, id int64) State {
	if _, ok := st.Roster.AutoJoin[id]; !ok {
		return st
	}

	roster := st.Roster.Clone()
	delete(roster.AutoJoin, id)
	return State{Config: st.Config, Roster: roster}
}

// Partition groups the hall by current offset. It is read-only.
func (e *Engine) Partition(st State, now time.Time) ([]Partition, error) {
	return Partitions(e.zones, st.Roster.Participants(), now)
}
