package contest

import (
	"sort"
	"time"
)

// DateLayout is the layout of WinnerKey.Date.
const DateLayout = "2006-01-02"

// maxActivity bounds the activity history kept per participant; only the
// most recent entry takes part in any decision.
const maxActivity = 100

// keepDays is how long re-enrolled cycle marks are kept.
const keepDays = 3

// Participant is a contestant enrolled in a group's hall.
// Activity is never empty and is kept in chronological order.
type Participant struct {
	ID       int64
	Timezone string
	Activity []time.Time
	// Seq is the roster insertion order, used for ordering and tie-breaks.
	Seq uint64
}

func (p *Participant) LastActive() time.Time {
	return p.Activity[len(p.Activity)-1]
}

func (p *Participant) clone() *Participant {
	c := *p
	c.Activity = append([]time.Time(nil), p.Activity...)
	return &c
}

func (p *Participant) touch(now time.Time) bool {
	if now.Before(p.LastActive()) {
		return false
	}
	p.Activity = append(p.Activity, now)
	if len(p.Activity) > maxActivity {
		p.Activity = append([]time.Time(nil), p.Activity[len(p.Activity)-maxActivity:]...)
	}
	return true
}

// AutoJoinEntry is a standing opt-in to be re-enrolled at every cycle boundary.
type AutoJoinEntry struct {
	ID       int64
	Timezone string
	Seq      uint64
}

// WinnerKey identifies one concluded partition cycle.
type WinnerKey struct {
	// Date is the calendar date in the partition's local time, in DateLayout.
	Date   string
	Offset Offset
}

type WinnerRecord struct {
	ParticipantID int64
	LastActive    time.Time
	Timezones     []string
	Broadcasted   bool
}

// Roster is the contest state owned by one master group.
type Roster struct {
	Hall     map[int64]*Participant
	AutoJoin map[int64]AutoJoinEntry
	Winners  map[WinnerKey]WinnerRecord
	// Reenrolled holds the cycles whose auto-join entries were already
	// brought back into the hall.
	Reenrolled map[WinnerKey]bool
	NextSeq    uint64
}

func NewRoster() *Roster {
	return &Roster{
		Hall:     make(map[int64]*Participant),
		AutoJoin: make(map[int64]AutoJoinEntry),
		Winners:    make(map[WinnerKey]WinnerRecord),
		Reenrolled: make(map[WinnerKey]bool),
		NextSeq:    1,
	}
}

// Clone returns a deep copy, used to stage changes before committing them.
func (r *Roster) Clone() *Roster {
	c := &Roster{
		Hall:     make(map[int64]*Participant, len(r.Hall)),
		AutoJoin: make(map[int64]AutoJoinEntry, len(r.AutoJoin)),
		Winners:    make(map[WinnerKey]WinnerRecord, len(r.Winners)),
		Reenrolled: make(map[WinnerKey]bool, len(r.Reenrolled)),
		NextSeq:    r.NextSeq,
	}
	for id, p := range r.Hall {
		c.Hall[id] = p.clone()
	}
	for id, e := range r.AutoJoin {
		c.AutoJoin[id] = e
	}
	for key, w := range r.Winners {
		w.Timezones = append([]string(nil), w.Timezones...)
		c.Winners[key] = w
	}
	for key := range r.Reenrolled {
		c.Reenrolled[key] = true
	}
	return c
}

func (r *Roster) Get(id int64) (*Participant, bool) {
	p, ok := r.Hall[id]
	return p, ok
}

// Participants returns the hall in insertion order.
func (r *Roster) Participants() []*Participant {
	participants := make([]*Participant, 0, len(r.Hall))
	for _, p := range r.Hall {
		participants = append(participants, p)
	}
	sort.Slice(participants, func(i, j int) bool {
		return participants[i].Seq < participants[j].Seq
	})
	return participants
}

// AutoJoinEntries returns the auto-join list in insertion order.
func (r *Roster) AutoJoinEntries() []AutoJoinEntry {
	entries := make([]AutoJoinEntry, 0, len(r.AutoJoin))
	for _, e := range r.AutoJoin {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Seq < entries[j].Seq
	})
	return entries
}

// WinnerKeys returns the ledger keys ordered by date, then offset.
func (r *Roster) WinnerKeys() []WinnerKey {
	keys := make([]WinnerKey, 0, len(r.Winners))
	for key := range r.Winners {
		keys = append(keys, key)
	}
	sortKeys(keys)
	return keys
}

// ReenrolledKeys returns the re-enrolled cycles ordered like WinnerKeys.
func (r *Roster) ReenrolledKeys() []WinnerKey {
	keys := make([]WinnerKey, 0, len(r.Reenrolled))
	for key := range r.Reenrolled {
		keys = append(keys, key)
	}
	sortKeys(keys)
	return keys
}

// markReenrolled records key and forgets cycles older than keepDays before it.
func (r *Roster) markReenrolled(key WinnerKey, now time.Time) {
	if r.Reenrolled == nil {
		r.Reenrolled = make(map[WinnerKey]bool)
	}
	oldest := now.UTC().AddDate(0, 0, -keepDays).Format(DateLayout)
	for k := range r.Reenrolled {
		if k.Date < oldest {
			delete(r.Reenrolled, k)
		}
	}
	r.Reenrolled[key] = true
}

func sortKeys(keys []WinnerKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Date != keys[j].Date {
			return keys[i].Date < keys[j].Date
		}
		return keys[i].Offset < keys[j].Offset
	})
}

func (r *Roster) nextSeq() uint64 {
	if r.NextSeq == 0 {
		r.NextSeq = 1
	}
	seq := r.NextSeq
	r.NextSeq++
	return seq
}

func (r *Roster) enroll(id int64, zone string, now time.Time) *Participant {
	p := &Participant{
		ID:       id,
		Timezone: zone,
		Activity: []time.Time{now},
		Seq:      r.nextSeq(),
	}
	r.Hall[id] = p
	return p
}

// RecomputeSeq sets NextSeq past every sequence number in use. Callers that
// rebuild a roster from storage use it before handing the roster to the engine.
func (r *Roster) RecomputeSeq() {
	var highest uint64
	for _, p := range r.Hall {
		if p.Seq > highest {
			highest = p.Seq
		}
	}
	for _, e := range r.AutoJoin {
		if e.Seq > highest {
			highest = e.Seq
		}
	}
	r.NextSeq = highest + 1
}
