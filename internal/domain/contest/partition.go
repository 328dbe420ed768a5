package contest

import (
	"sort"
	"time"
)

// Partition is the set of participants whose zones share one UTC offset at a
// given instant.
type Partition struct {
	Offset       Offset
	Zones        []string
	Participants []*Participant
}

// LocalTime returns now as seen by the partition.
func (p Partition) LocalTime(now time.Time) time.Time {
	return now.In(p.Offset.Location())
}

// Key returns the ledger key of the partition's cycle at now.
func (p Partition) Key(now time.Time) WinnerKey {
	return WinnerKey{Date: p.LocalTime(now).Format(DateLayout), Offset: p.Offset}
}

// Partitions groups participants by the offset their zone holds at now.
// Zones are grouped by current numeric offset, not by name, so zones that
// share an offset merge and a daylight-saving shift moves a zone between
// partitions. Offsets without participants are omitted. The result is sorted
// by offset with zones sorted by name; participants keep their input order.
func Partitions(zones ZoneTable, participants []*Participant, now time.Time) ([]Partition, error) {
	byOffset := make(map[Offset]*Partition)
	seen := make(map[string]bool)

	for _, p := range participants {
		offset, err := OffsetAt(zones, p.Timezone, now)
		if err != nil {
			return nil, err
		}

		part, ok := byOffset[offset]
		if !ok {
			part = &Partition{Offset: offset}
			byOffset[offset] = part
		}
		if !seen[p.Timezone] {
			seen[p.Timezone] = true
			part.Zones = append(part.Zones, p.Timezone)
		}
		part.Participants = append(part.Participants, p)
	}

	result := make([]Partition, 0, len(byOffset))
	for _, part := range byOffset {
		sort.Strings(part.Zones)
		result = append(result, *part)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Offset < result[j].Offset
	})

	return result, nil
}

// autoJoinByOffset groups auto-join entries the same way Partitions groups
// participants.
func autoJoinByOffset(zones ZoneTable, entries []AutoJoinEntry, now time.Time) (map[Offset][]AutoJoinEntry, error) {
	result := make(map[Offset][]AutoJoinEntry)
	for _, e := range entries {
		offset, err := OffsetAt(zones, e.Timezone, now)
		if err != nil {
			return nil, err
		}
		result[offset] = append(result[offset], e)
	}
	return result, nil
}
