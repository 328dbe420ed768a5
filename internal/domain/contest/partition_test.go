package contest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitions(t *testing.T) {
	zones := NewIANAZones()

	build := func(t *testing.T) *Roster {
		t.Helper()
		r := NewRoster()
		seen := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		r.enroll(1, "America/New_York", seen)
		r.enroll(2, "Europe/London", seen)
		r.enroll(3, "Africa/Lagos", seen)
		r.enroll(4, "America/Toronto", seen)
		r.enroll(5, "Asia/Kolkata", seen)
		return r
	}

	tests := []struct {
		name string
		now  time.Time
		want []struct {
			offset       Offset
			zones        []string
			participants []int64
		}
	}{
		{
			name: "Should split London and Lagos in winter",
			now:  time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			want: []struct {
				offset       Offset
				zones        []string
				participants []int64
			}{
				{offset: -5 * 3600, zones: []string{"America/New_York", "America/Toronto"}, participants: []int64{1, 4}},
				{offset: 0, zones: []string{"Europe/London"}, participants: []int64{2}},
				{offset: 3600, zones: []string{"Africa/Lagos"}, participants: []int64{3}},
				{offset: 5*3600 + 1800, zones: []string{"Asia/Kolkata"}, participants: []int64{5}},
			},
		},
		{
			name: "Should merge London and Lagos in summer",
			now:  time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC),
			want: []struct {
				offset       Offset
				zones        []string
				participants []int64
			}{
				{offset: -4 * 3600, zones: []string{"America/New_York", "America/Toronto"}, participants: []int64{1, 4}},
				{offset: 3600, zones: []string{"Africa/Lagos", "Europe/London"}, participants: []int64{2, 3}},
				{offset: 5*3600 + 1800, zones: []string{"Asia/Kolkata"}, participants: []int64{5}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster := build(t)

			got, err := Partitions(zones, roster.Participants(), tt.now)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))

			for i, want := range tt.want {
				assert.Equal(t, want.offset, got[i].Offset)
				assert.Equal(t, want.zones, got[i].Zones)
				assert.Equal(t, want.participants, ids(got[i].Participants))
			}

			again, err := Partitions(zones, roster.Participants(), tt.now)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestPartitions_Empty(t *testing.T) {
	got, err := Partitions(NewIANAZones(), nil, time.Now())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPartitions_InvalidZone(t *testing.T) {
	participants := []*Participant{{ID: 1, Timezone: "Local", Activity: []time.Time{time.Now()}}}

	_, err := Partitions(NewIANAZones(), participants, time.Now())
	require.True(t, errors.Is(err, ErrInvalidZone))
}

func TestPartition_Key(t *testing.T) {
	p := Partition{Offset: Offset(-10 * 3600)}

	// 05:00 UTC is still the previous day in Honolulu
	key := p.Key(time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC))
	assert.Equal(t, WinnerKey{Date: "2024-03-09", Offset: Offset(-10 * 3600)}, key)
}

func TestOffset(t *testing.T) {
	tests := []struct {
		offset Offset
		want   string
	}{
		{offset: 0, want: "+0000"},
		{offset: 8 * 3600, want: "+0800"},
		{offset: 5*3600 + 1800, want: "+0530"},
		{offset: -(9*3600 + 1800), want: "-0930"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.offset.String())

			parsed, err := ParseOffset(tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.offset, parsed)
		})
	}

	for _, invalid := range []string{"", "0800", "+08", "+0860", "+1500", "*0800"} {
		_, err := ParseOffset(invalid)
		assert.Error(t, err, invalid)
	}
}
