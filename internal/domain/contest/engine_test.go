package contest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shanghai = "Asia/Shanghai"

func localTime(t *testing.T, zone, value string) time.Time {
	t.Helper()

	loc, err := time.LoadLocation(zone)
	require.NoError(t, err)

	parsed, err := time.ParseInLocation("2006-01-02 15:04:05", value, loc)
	require.NoError(t, err)

	return parsed
}

func newState(cfg Config) State {
	return State{Config: cfg, Roster: NewRoster()}
}

func inactivityConfig(minutes int) Config {
	return Config{Mode: ModeInactivityTimeout, Deadline: minutes, StartHour: 0, StopHour: 9}
}

func TestEngine_Tick_LatestActivityWinsScenario(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(DefaultConfig())

	var err error
	st, err = engine.Join(st, 1, shanghai, localTime(t, shanghai, "2024-03-09 20:00:00"))
	require.NoError(t, err)
	st, err = engine.Join(st, 2, shanghai, localTime(t, shanghai, "2024-03-09 21:00:00"))
	require.NoError(t, err)

	var recorded bool
	st, recorded, err = engine.RecordActivity(st, 1, localTime(t, shanghai, "2024-03-10 05:58:00"))
	require.NoError(t, err)
	require.True(t, recorded)
	st, recorded, err = engine.RecordActivity(st, 2, localTime(t, shanghai, "2024-03-10 05:59:00"))
	require.NoError(t, err)
	require.True(t, recorded)

	tickAt := localTime(t, shanghai, "2024-03-10 06:00:00")
	next, announcements, err := engine.Tick(st, tickAt)
	require.NoError(t, err)

	key := WinnerKey{Date: "2024-03-10", Offset: Offset(8 * 3600)}
	require.Contains(t, next.Roster.Winners, key)
	winner := next.Roster.Winners[key]
	assert.Equal(t, int64(2), winner.ParticipantID)
	assert.True(t, winner.LastActive.Equal(localTime(t, shanghai, "2024-03-10 05:59:00")))
	assert.Equal(t, []string{shanghai}, winner.Timezones)
	assert.False(t, winner.Broadcasted)
	assert.Empty(t, next.Roster.Hall)

	require.Len(t, announcements, 1)
	assert.Equal(t, key, announcements[0].Key)
	assert.Equal(t, 5, announcements[0].LocalTime.Hour())
	assert.Equal(t, 59, announcements[0].LocalTime.Minute())

	// input state is untouched
	assert.Len(t, st.Roster.Hall, 2)
	assert.Empty(t, st.Roster.Winners)
}

func TestEngine_Tick_ExactlyOnce(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(DefaultConfig())
	st.Roster.enroll(1, shanghai, localTime(t, shanghai, "2024-03-10 05:30:00"))

	st, _, err := engine.Tick(st, localTime(t, shanghai, "2024-03-10 06:00:00"))
	require.NoError(t, err)
	require.Len(t, st.Roster.Winners, 1)

	// someone shows up in the same partition within the deadline minute
	st.Roster.enroll(2, shanghai, localTime(t, shanghai, "2024-03-10 06:00:10"))

	for _, value := range []string{"2024-03-10 06:00:30", "2024-03-10 06:00:59", "2024-03-10 06:30:00", "2024-03-10 07:00:00"} {
		st, _, err = engine.Tick(st, localTime(t, shanghai, value))
		require.NoError(t, err)
	}

	require.Len(t, st.Roster.Winners, 1)
	key := WinnerKey{Date: "2024-03-10", Offset: Offset(8 * 3600)}
	assert.Equal(t, int64(1), st.Roster.Winners[key].ParticipantID)

	// the next day is a new key
	st, _, err = engine.Tick(st, localTime(t, shanghai, "2024-03-11 06:00:00"))
	require.NoError(t, err)
	require.Len(t, st.Roster.Winners, 2)
	assert.Equal(t, int64(2), st.Roster.Winners[WinnerKey{Date: "2024-03-11", Offset: Offset(8 * 3600)}].ParticipantID)
}

func TestEngine_Tick_DeadlineMinuteActivity(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	key := WinnerKey{Date: "2024-03-10", Offset: Offset(8 * 3600)}

	t.Run("Should pick activity seen after the deadline instant", func(t *testing.T) {
		st := newState(DefaultConfig())
		st.Roster.enroll(1, shanghai, localTime(t, shanghai, "2024-03-10 05:58:00"))
		st.Roster.enroll(2, shanghai, localTime(t, shanghai, "2024-03-10 06:00:10"))

		next, _, err := engine.Tick(st, localTime(t, shanghai, "2024-03-10 06:00:30"))
		require.NoError(t, err)

		require.Contains(t, next.Roster.Winners, key)
		assert.Equal(t, int64(2), next.Roster.Winners[key].ParticipantID)
		assert.Empty(t, next.Roster.Hall)
	})

	t.Run("Should declare a lone participant active within the deadline minute", func(t *testing.T) {
		st := newState(DefaultConfig())
		st.Roster.enroll(1, shanghai, localTime(t, shanghai, "2024-03-10 06:00:05"))

		next, _, err := engine.Tick(st, localTime(t, shanghai, "2024-03-10 06:00:30"))
		require.NoError(t, err)

		require.Contains(t, next.Roster.Winners, key)
		assert.Equal(t, int64(1), next.Roster.Winners[key].ParticipantID)
		assert.Empty(t, next.Roster.Hall)
	})
}

func TestEngine_Tick_TieBreakByInsertionOrder(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(DefaultConfig())

	same := localTime(t, shanghai, "2024-03-10 05:45:00")
	st.Roster.enroll(7, shanghai, same)
	st.Roster.enroll(3, "Asia/Singapore", same)

	st, _, err := engine.Tick(st, localTime(t, shanghai, "2024-03-10 06:00:00"))
	require.NoError(t, err)

	key := WinnerKey{Date: "2024-03-10", Offset: Offset(8 * 3600)}
	require.Contains(t, st.Roster.Winners, key)
	assert.Equal(t, int64(7), st.Roster.Winners[key].ParticipantID)
	assert.Equal(t, []string{"Asia/Shanghai", "Asia/Singapore"}, st.Roster.Winners[key].Timezones)
	assert.Empty(t, st.Roster.Hall)
}

func TestEngine_Tick_OnlyDeadlinePartitionCloses(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(DefaultConfig())

	st.Roster.enroll(1, shanghai, localTime(t, shanghai, "2024-03-10 05:50:00"))
	st.Roster.enroll(2, "Asia/Tokyo", localTime(t, shanghai, "2024-03-10 05:55:00"))

	st, _, err := engine.Tick(st, localTime(t, shanghai, "2024-03-10 06:00:00"))
	require.NoError(t, err)

	assert.Len(t, st.Roster.Winners, 1)
	_, ok := st.Roster.Get(2)
	assert.True(t, ok)
	_, ok = st.Roster.Get(1)
	assert.False(t, ok)
}

func TestEngine_Tick_EmptyPartitionNoWinner(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(DefaultConfig())

	next, announcements, err := engine.Tick(st, localTime(t, shanghai, "2024-03-10 06:00:00"))
	require.NoError(t, err)
	assert.Empty(t, announcements)
	assert.Empty(t, next.Roster.Winners)
	assert.Empty(t, next.Roster.Hall)
}

func TestEngine_Tick_InactivityTimeout(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(inactivityConfig(30))

	st.Roster.enroll(1, shanghai, localTime(t, shanghai, "2024-03-10 02:00:00"))
	st.Roster.enroll(2, shanghai, localTime(t, shanghai, "2024-03-10 02:10:00"))

	// only participant 1 is stale
	st, announcements, err := engine.Tick(st, localTime(t, shanghai, "2024-03-10 02:35:00"))
	require.NoError(t, err)
	assert.Empty(t, announcements)
	assert.Empty(t, st.Roster.Winners)
	_, ok := st.Roster.Get(1)
	assert.False(t, ok)
	_, ok = st.Roster.Get(2)
	assert.True(t, ok)

	// the last survivor goes stale
	st, announcements, err = engine.Tick(st, localTime(t, shanghai, "2024-03-10 02:45:00"))
	require.NoError(t, err)
	require.Len(t, announcements, 1)
	assert.Equal(t, int64(2), announcements[0].Winner.ParticipantID)
	assert.Empty(t, st.Roster.Hall)
}

func TestEngine_Tick_InactivityTotalEviction(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(inactivityConfig(30))

	st.Roster.enroll(1, shanghai, localTime(t, shanghai, "2024-03-10 02:00:00"))
	st.Roster.enroll(2, shanghai, localTime(t, shanghai, "2024-03-10 02:10:00"))
	st.Roster.enroll(3, shanghai, localTime(t, shanghai, "2024-03-10 02:05:00"))

	st, _, err := engine.Tick(st, localTime(t, shanghai, "2024-03-10 03:00:00"))
	require.NoError(t, err)

	require.Len(t, st.Roster.Winners, 1)
	key := WinnerKey{Date: "2024-03-10", Offset: Offset(8 * 3600)}
	assert.Equal(t, int64(2), st.Roster.Winners[key].ParticipantID)
	assert.Empty(t, st.Roster.Hall)

	// stale stragglers later that day are evicted without a second winner
	st.Roster.enroll(4, shanghai, localTime(t, shanghai, "2024-03-10 03:10:00"))
	st, _, err = engine.Tick(st, localTime(t, shanghai, "2024-03-10 04:00:00"))
	require.NoError(t, err)
	assert.Len(t, st.Roster.Winners, 1)
	assert.Empty(t, st.Roster.Hall)
}

func TestEngine_Tick_InactivityOutsideWindow(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(inactivityConfig(30))

	st.Roster.enroll(1, shanghai, localTime(t, shanghai, "2024-03-09 23:00:00"))

	// the first hour of the window is not evaluated
	st, _, err := engine.Tick(st, localTime(t, shanghai, "2024-03-10 00:45:00"))
	require.NoError(t, err)
	assert.Len(t, st.Roster.Hall, 1)

	st, _, err = engine.Tick(st, localTime(t, shanghai, "2024-03-10 01:00:00"))
	require.NoError(t, err)
	assert.Empty(t, st.Roster.Hall)
	assert.Len(t, st.Roster.Winners, 1)
}

func TestEngine_Tick_ReenrollmentIdempotent(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(DefaultConfig())

	var err error
	st, err = engine.EnableAutoJoin(st, 1, shanghai)
	require.NoError(t, err)
	st, err = engine.EnableAutoJoin(st, 2, shanghai)
	require.NoError(t, err)
	st, err = engine.EnableAutoJoin(st, 3, "America/New_York")
	require.NoError(t, err)
	assert.Empty(t, st.Roster.Hall)

	boundary := localTime(t, shanghai, "2024-03-10 06:00:00")
	st, _, err = engine.Tick(st, boundary)
	require.NoError(t, err)
	require.Len(t, st.Roster.Hall, 2)
	first, ok := st.Roster.Get(1)
	require.True(t, ok)
	assert.Equal(t, []time.Time{boundary}, first.Activity)
	_, ok = st.Roster.Get(3)
	assert.False(t, ok)

	seq := first.Seq
	st, _, err = engine.Tick(st, boundary.Add(30*time.Second))
	require.NoError(t, err)
	require.Len(t, st.Roster.Hall, 2)
	again, _ := st.Roster.Get(1)
	assert.Equal(t, seq, again.Seq)
	assert.Equal(t, []time.Time{boundary}, again.Activity)
}

func TestEngine_Tick_ReenrollmentOncePerCycle(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(DefaultConfig())

	var err error
	st, err = engine.EnableAutoJoin(st, 1, shanghai)
	require.NoError(t, err)

	boundary := localTime(t, shanghai, "2024-03-10 06:00:00")
	st, _, err = engine.Tick(st, boundary)
	require.NoError(t, err)
	_, ok := st.Roster.Get(1)
	require.True(t, ok)
	key := WinnerKey{Date: "2024-03-10", Offset: Offset(8 * 3600)}
	assert.True(t, st.Roster.Reenrolled[key])

	// quitting right after the boundary tick sticks for the rest of the minute
	st = engine.Quit(st, 1)
	next, _, err := engine.Tick(st, boundary.Add(40*time.Second))
	require.NoError(t, err)
	assert.Same(t, st.Roster, next.Roster)
	_, ok = next.Roster.Get(1)
	assert.False(t, ok)

	// the next day is a new cycle
	next, _, err = engine.Tick(next, boundary.AddDate(0, 0, 1))
	require.NoError(t, err)
	_, ok = next.Roster.Get(1)
	assert.True(t, ok)
	assert.Len(t, next.Roster.Reenrolled, 2)
}

func TestEngine_Tick_ReenrollmentForgetsOldCycles(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(DefaultConfig())
	st.Roster.AutoJoin[1] = AutoJoinEntry{ID: 1, Timezone: shanghai, Seq: 1}
	old := WinnerKey{Date: "2024-03-01", Offset: Offset(8 * 3600)}
	st.Roster.Reenrolled[old] = true

	next, _, err := engine.Tick(st, localTime(t, shanghai, "2024-03-10 06:00:00"))
	require.NoError(t, err)
	assert.NotContains(t, next.Roster.Reenrolled, old)
	assert.Contains(t, next.Roster.Reenrolled, WinnerKey{Date: "2024-03-10", Offset: Offset(8 * 3600)})
}

func TestEngine_Tick_ReenrollmentAfterWinner(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(DefaultConfig())

	var err error
	st, err = engine.EnableAutoJoin(st, 1, shanghai)
	require.NoError(t, err)
	st.Roster.enroll(1, shanghai, localTime(t, shanghai, "2024-03-10 05:10:00"))

	boundary := localTime(t, shanghai, "2024-03-10 06:00:00")
	st, _, err = engine.Tick(st, boundary)
	require.NoError(t, err)

	require.Len(t, st.Roster.Winners, 1)
	p, ok := st.Roster.Get(1)
	require.True(t, ok)
	assert.Equal(t, []time.Time{boundary}, p.Activity)
}

func TestEngine_Tick_InvalidConfig(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(Config{Mode: ModeLatestActivityWins, Deadline: 30, StartHour: 0, StopHour: 9})
	st.Roster.enroll(1, shanghai, localTime(t, shanghai, "2024-03-10 05:10:00"))

	next, announcements, err := engine.Tick(st, localTime(t, shanghai, "2024-03-10 06:00:00"))
	require.ErrorIs(t, err, ErrConfigInconsistent)
	assert.Nil(t, announcements)
	assert.Same(t, st.Roster, next.Roster)
}

func TestEngine_Tick_UnknownZoneLeavesRosterUnchanged(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(DefaultConfig())
	st.Roster.enroll(1, shanghai, localTime(t, shanghai, "2024-03-10 05:10:00"))
	st.Roster.enroll(2, "Mars/Olympus_Mons", localTime(t, shanghai, "2024-03-10 05:10:00"))

	next, _, err := engine.Tick(st, localTime(t, shanghai, "2024-03-10 06:00:00"))
	require.ErrorIs(t, err, ErrConfigInconsistent)
	assert.Len(t, next.Roster.Hall, 2)
	assert.Empty(t, next.Roster.Winners)
}

func TestEngine_Join(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		zone    string
		now     string
		wantErr error
	}{
		{
			name:   "Should join before the match starts",
			config: DefaultConfig(),
			zone:   shanghai,
			now:    "2024-03-09 23:59:00",
		},
		{
			name:   "Should join after the match stops",
			config: DefaultConfig(),
			zone:   shanghai,
			now:    "2024-03-10 09:00:00",
		},
		{
			name:    "Should reject at the start hour",
			config:  DefaultConfig(),
			zone:    shanghai,
			now:     "2024-03-10 00:00:00",
			wantErr: ErrMatchInProgress,
		},
		{
			name:    "Should reject during the match",
			config:  DefaultConfig(),
			zone:    shanghai,
			now:     "2024-03-10 08:59:00",
			wantErr: ErrMatchInProgress,
		},
		{
			name:    "Should reject inside a window wrapping midnight",
			config:  Config{Mode: ModeLatestActivityWins, Deadline: 3, StartHour: 22, StopHour: 6},
			zone:    shanghai,
			now:     "2024-03-10 23:00:00",
			wantErr: ErrMatchInProgress,
		},
		{
			name:   "Should join outside a window wrapping midnight",
			config: Config{Mode: ModeLatestActivityWins, Deadline: 3, StartHour: 22, StopHour: 6},
			zone:   shanghai,
			now:    "2024-03-10 12:00:00",
		},
		{
			name:    "Should reject an unknown zone",
			config:  DefaultConfig(),
			zone:    "Nowhere/Town",
			now:     "2024-03-10 12:00:00",
			wantErr: ErrInvalidZone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(NewIANAZones())
			st := newState(tt.config)

			next, err := engine.Join(st, 1, tt.zone, localTime(t, shanghai, tt.now))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, next.Roster.Hall)
				return
			}

			require.NoError(t, err)
			p, ok := next.Roster.Get(1)
			require.True(t, ok)
			assert.Equal(t, tt.zone, p.Timezone)
			assert.Len(t, p.Activity, 1)
		})
	}
}

func TestEngine_JoinReplacesParticipant(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(DefaultConfig())

	st, err := engine.Join(st, 1, shanghai, localTime(t, shanghai, "2024-03-10 12:00:00"))
	require.NoError(t, err)
	st, err = engine.Join(st, 2, shanghai, localTime(t, shanghai, "2024-03-10 12:01:00"))
	require.NoError(t, err)
	st, err = engine.Join(st, 1, "Asia/Tokyo", localTime(t, shanghai, "2024-03-10 12:02:00"))
	require.NoError(t, err)

	participants := st.Roster.Participants()
	require.Len(t, participants, 2)
	assert.Equal(t, int64(2), participants[0].ID)
	assert.Equal(t, int64(1), participants[1].ID)
	assert.Equal(t, "Asia/Tokyo", participants[1].Timezone)
}

func TestEngine_Quit(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(DefaultConfig())
	st.Roster.enroll(1, shanghai, localTime(t, shanghai, "2024-03-10 12:00:00"))

	st = engine.Quit(st, 1)
	assert.Empty(t, st.Roster.Hall)

	st = engine.Quit(st, 1)
	assert.Empty(t, st.Roster.Hall)
}

func TestEngine_RecordActivity(t *testing.T) {
	tests := []struct {
		name         string
		config       Config
		participant  int64
		now          string
		wantRecorded bool
	}{
		{
			name:         "Should record just before the deadline",
			config:       DefaultConfig(),
			participant:  1,
			now:          "2024-03-10 05:59:00",
			wantRecorded: true,
		},
		{
			name:         "Should record deadline hours before the start",
			config:       DefaultConfig(),
			participant:  1,
			now:          "2024-03-09 18:00:00",
			wantRecorded: true,
		},
		{
			name:        "Should ignore activity long before the window",
			config:      DefaultConfig(),
			participant: 1,
			now:         "2024-03-09 17:59:00",
		},
		{
			name:        "Should ignore activity after the stop hour",
			config:      DefaultConfig(),
			participant: 1,
			now:         "2024-03-10 09:00:00",
		},
		{
			name:        "Should ignore an unknown participant",
			config:      DefaultConfig(),
			participant: 99,
			now:         "2024-03-10 05:00:00",
		},
		{
			name:         "Should record one timeout before the start in inactivity mode",
			config:       inactivityConfig(90),
			participant:  1,
			now:          "2024-03-09 22:00:00",
			wantRecorded: true,
		},
		{
			name:        "Should ignore activity before the inactivity lead",
			config:      inactivityConfig(90),
			participant: 1,
			now:         "2024-03-09 21:59:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(NewIANAZones())
			st := newState(tt.config)
			st.Roster.enroll(1, shanghai, localTime(t, shanghai, "2024-03-09 12:00:00"))

			next, recorded, err := engine.RecordActivity(st, tt.participant, localTime(t, shanghai, tt.now))
			require.NoError(t, err)
			assert.Equal(t, tt.wantRecorded, recorded)

			p, _ := next.Roster.Get(1)
			if tt.wantRecorded {
				assert.Len(t, p.Activity, 2)
				assert.True(t, p.LastActive().Equal(localTime(t, shanghai, tt.now)))
				return
			}
			assert.Len(t, p.Activity, 1)
		})
	}
}

func TestEngine_RecordActivityKeepsBoundedHistory(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(DefaultConfig())
	start := localTime(t, shanghai, "2024-03-10 01:00:00")
	st.Roster.enroll(1, shanghai, start)

	var err error
	for i := 1; i <= maxActivity+10; i++ {
		st, _, err = engine.RecordActivity(st, 1, start.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}

	p, _ := st.Roster.Get(1)
	assert.Len(t, p.Activity, maxActivity)
	assert.True(t, p.LastActive().Equal(start.Add(time.Duration(maxActivity+10)*time.Second)))
}

func TestEngine_AutoJoin(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(DefaultConfig())

	_, err := engine.EnableAutoJoin(st, 1, "Nowhere/Town")
	require.ErrorIs(t, err, ErrInvalidZone)

	st, err = engine.EnableAutoJoin(st, 1, shanghai)
	require.NoError(t, err)
	require.Contains(t, st.Roster.AutoJoin, int64(1))
	seq := st.Roster.AutoJoin[1].Seq

	st, err = engine.EnableAutoJoin(st, 1, "Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", st.Roster.AutoJoin[1].Timezone)
	assert.Equal(t, seq, st.Roster.AutoJoin[1].Seq)

	st = engine.DisableAutoJoin(st, 1)
	assert.Empty(t, st.Roster.AutoJoin)

	st = engine.DisableAutoJoin(st, 1)
	assert.Empty(t, st.Roster.AutoJoin)
}

func TestEngine_PendingAndMarkBroadcast(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	cfg := DefaultConfig()
	cfg.DelayBroadcast = true
	st := newState(cfg)
	st.Roster.enroll(1, shanghai, localTime(t, shanghai, "2024-03-10 05:40:00"))

	st, announcements, err := engine.Tick(st, localTime(t, shanghai, "2024-03-10 06:00:00"))
	require.NoError(t, err)
	assert.Empty(t, announcements)
	require.Len(t, st.Roster.Winners, 1)

	assert.Empty(t, engine.Pending(st, localTime(t, shanghai, "2024-03-10 08:59:00")))
	pending := engine.Pending(st, localTime(t, shanghai, "2024-03-10 09:00:00"))
	require.Len(t, pending, 1)

	st, ok := engine.MarkBroadcast(st, pending[0].Key)
	require.True(t, ok)
	assert.True(t, st.Roster.Winners[pending[0].Key].Broadcasted)
	assert.Empty(t, engine.Pending(st, localTime(t, shanghai, "2024-03-10 10:00:00")))

	_, ok = engine.MarkBroadcast(st, pending[0].Key)
	assert.False(t, ok)
	_, ok = engine.MarkBroadcast(st, WinnerKey{Date: "2000-01-01"})
	assert.False(t, ok)
}

func TestEngine_PendingDelayWrapsToNextDay(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	cfg := Config{Mode: ModeInactivityTimeout, Deadline: 30, StartHour: 21, StopHour: 6, DelayBroadcast: true}
	st := newState(cfg)
	st.Roster.enroll(1, shanghai, localTime(t, shanghai, "2024-03-10 22:10:00"))

	st, announcements, err := engine.Tick(st, localTime(t, shanghai, "2024-03-10 23:00:00"))
	require.NoError(t, err)
	assert.Empty(t, announcements)
	require.Len(t, st.Roster.Winners, 1)

	assert.Empty(t, engine.Pending(st, localTime(t, shanghai, "2024-03-11 05:59:00")))
	assert.Len(t, engine.Pending(st, localTime(t, shanghai, "2024-03-11 06:00:00")), 1)
}

func TestEngine_Tick_NoChangeKeepsState(t *testing.T) {
	engine := NewEngine(NewIANAZones())
	st := newState(DefaultConfig())
	st.Roster.enroll(1, shanghai, localTime(t, shanghai, "2024-03-10 05:10:00"))

	next, announcements, err := engine.Tick(st, localTime(t, shanghai, "2024-03-10 05:30:00"))
	require.NoError(t, err)
	assert.Empty(t, announcements)
	assert.Same(t, st.Roster, next.Roster)
}
