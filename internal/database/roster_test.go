package database

import (
	"context"
	"testing"
	"time"

	"github.com/diegoclair/vigil-bot/internal/domain/contest"
	"github.com/diegoclair/vigil-bot/internal/domain/contract"
	"github.com/diegoclair/vigil-bot/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedGroupAndMembers(t *testing.T, db *DB, slackUserIDs ...string) (*entity.Group, []*entity.Member) {
	t.Helper()

	group := newTestGroup("C123456789")
	require.NoError(t, newGroupRepo(db.conn).Create(group))

	members := make([]*entity.Member, 0, len(slackUserIDs))
	for _, id := range slackUserIDs {
		member := &entity.Member{SlackUserID: id, DisplayName: id}
		require.NoError(t, newMemberRepo(db.conn).Upsert(member))
		members = append(members, member)
	}

	return group, members
}

func TestRosterRepository_SaveAndLoad(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	group, members := seedGroupAndMembers(t, db, "U1", "U2", "U3")
	repo := newRosterRepo(db.conn)

	empty, err := repo.Load(group.ID)
	require.NoError(t, err)
	assert.Empty(t, empty.Hall)
	assert.Equal(t, uint64(1), empty.NextSeq)

	at := time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC)
	roster := contest.NewRoster()
	roster.Hall[members[0].ID] = &contest.Participant{ID: members[0].ID, Timezone: "Asia/Shanghai", Activity: []time.Time{at, at.Add(time.Minute)}, Seq: 1}
	roster.Hall[members[1].ID] = &contest.Participant{ID: members[1].ID, Timezone: "Europe/Paris", Activity: []time.Time{at}, Seq: 4}
	roster.AutoJoin[members[2].ID] = contest.AutoJoinEntry{ID: members[2].ID, Timezone: "Asia/Tokyo", Seq: 2}
	key := contest.WinnerKey{Date: "2024-03-10", Offset: contest.Offset(8 * 3600)}
	roster.Winners[key] = contest.WinnerRecord{ParticipantID: members[0].ID, LastActive: at, Timezones: []string{"Asia/Shanghai"}}
	roster.Reenrolled[key] = true

	require.NoError(t, repo.Save(group.ID, roster))

	loaded, err := repo.Load(group.ID)
	require.NoError(t, err)

	require.Len(t, loaded.Hall, 2)
	first, ok := loaded.Get(members[0].ID)
	require.True(t, ok)
	assert.Equal(t, "Asia/Shanghai", first.Timezone)
	require.Len(t, first.Activity, 2)
	assert.True(t, at.Add(time.Minute).Equal(first.LastActive()))
	assert.Equal(t, uint64(1), first.Seq)

	require.Contains(t, loaded.AutoJoin, members[2].ID)
	assert.Equal(t, "Asia/Tokyo", loaded.AutoJoin[members[2].ID].Timezone)

	require.Contains(t, loaded.Winners, key)
	assert.Equal(t, members[0].ID, loaded.Winners[key].ParticipantID)
	assert.Equal(t, []string{"Asia/Shanghai"}, loaded.Winners[key].Timezones)
	assert.False(t, loaded.Winners[key].Broadcasted)
	assert.Equal(t, uint64(5), loaded.NextSeq)
	assert.Equal(t, []contest.WinnerKey{key}, loaded.ReenrolledKeys())

	// the ledger keeps winners and only flips the broadcast flag
	loaded.Hall = map[int64]*contest.Participant{}
	record := loaded.Winners[key]
	record.Broadcasted = true
	loaded.Winners[key] = record
	require.NoError(t, repo.Save(group.ID, loaded))

	again, err := repo.Load(group.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Hall)
	assert.True(t, again.Winners[key].Broadcasted)
	assert.True(t, again.Reenrolled[key])

	// re-enrolled cycles follow the roster, pruned marks are dropped
	delete(again.Reenrolled, key)

	delete(again.Winners, key)
	require.NoError(t, repo.Save(group.ID, again))
	final, err := repo.Load(group.ID)
	require.NoError(t, err)
	assert.Contains(t, final.Winners, key)
	assert.Empty(t, final.Reenrolled)
}

func TestRosterRepository_GroupsWithParticipant(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	group, members := seedGroupAndMembers(t, db, "U1", "U2")
	other := newTestGroup("C987654321")
	require.NoError(t, newGroupRepo(db.conn).Create(other))

	repo := newRosterRepo(db.conn)
	at := time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC)

	for _, groupID := range []int64{group.ID, other.ID} {
		roster := contest.NewRoster()
		roster.Hall[members[0].ID] = &contest.Participant{ID: members[0].ID, Timezone: "UTC", Activity: []time.Time{at}, Seq: 1}
		require.NoError(t, repo.Save(groupID, roster))
	}

	groupIDs, err := repo.GroupsWithParticipant(members[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{group.ID, other.ID}, groupIDs)

	groupIDs, err = repo.GroupsWithParticipant(members[1].ID)
	require.NoError(t, err)
	assert.Empty(t, groupIDs)
}

func TestInstance_WithTransaction(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	dm := NewInstance(db)

	err := dm.WithTransaction(context.Background(), func(tx contract.DataManager) error {
		if err := tx.Group().Create(newTestGroup("C1")); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	found, err := dm.Group().GetBySlackID("C1")
	require.NoError(t, err)
	assert.Nil(t, found, "Expected rollback to discard the group")

	err = dm.WithTransaction(context.Background(), func(tx contract.DataManager) error {
		return tx.Group().Create(newTestGroup("C1"))
	})
	require.NoError(t, err)

	found, err = dm.Group().GetBySlackID("C1")
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestRosterRepository_GroupDeleteDropsRoster(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	group, members := seedGroupAndMembers(t, db, "U1")
	repo := newRosterRepo(db.conn)

	at := time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC)
	roster := contest.NewRoster()
	roster.Hall[members[0].ID] = &contest.Participant{ID: members[0].ID, Timezone: "Asia/Shanghai", Activity: []time.Time{at}, Seq: 1}
	key := contest.WinnerKey{Date: "2024-03-10", Offset: contest.Offset(8 * 3600)}
	roster.Winners[key] = contest.WinnerRecord{ParticipantID: members[0].ID, LastActive: at, Timezones: []string{"Asia/Shanghai"}}
	roster.Reenrolled[key] = true
	require.NoError(t, repo.Save(group.ID, roster))

	require.NoError(t, newGroupRepo(db.conn).Delete(group.ID))

	for _, table := range []string{"winners", "reenrollments"} {
		var count int
		require.NoError(t, db.conn.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE group_id = ?`, group.ID).Scan(&count))
		assert.Zero(t, count, table)
	}
}
