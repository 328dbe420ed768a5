package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/diegoclair/vigil-bot/internal/domain/contest"
	"github.com/diegoclair/vigil-bot/internal/domain/contract"
)

type rosterRepo struct {
	db dbConn
}

func newRosterRepo(db dbConn) contract.RosterRepo {
	return &rosterRepo{db: db}
}

// Load rebuilds the roster of a master group. A group without rows yields an
// empty roster.
func (r *rosterRepo) Load(groupID int64) (*contest.Roster, error) {
	roster := contest.NewRoster()

	if err := r.loadParticipants(groupID, roster); err != nil {
		return nil, err
	}
	if err := r.loadAutoJoins(groupID, roster); err != nil {
		return nil, err
	}
	if err := r.loadWinners(groupID, roster); err != nil {
		return nil, err
	}
	if err := r.loadReenrollments(groupID, roster); err != nil {
		return nil, err
	}

	roster.RecomputeSeq()
	return roster, nil
}

func (r *rosterRepo) loadParticipants(groupID int64, roster *contest.Roster) error {
	rows, err := r.db.Query(`
		SELECT member_id, timezone, join_seq, activity
		FROM participants
		WHERE group_id = ?
	`, groupID)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p := &contest.Participant{}
		var activityJSON string
		if err := rows.Scan(&p.ID, &p.Timezone, &p.Seq, &activityJSON); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}

		// Convert JSON to activity slice
		if err := json.Unmarshal([]byte(activityJSON), &p.Activity); err != nil {
			return fmt.Errorf("failed to unmarshal activity: %w", err)
		}
		if len(p.Activity) == 0 {
			return fmt.Errorf("participant %d of group %d has no activity", p.ID, groupID)
		}

		roster.Hall[p.ID] = p
	}

	return rows.Err()
}

func (r *rosterRepo) loadAutoJoins(groupID int64, roster *contest.Roster) error {
	rows, err := r.db.Query(`
		SELECT member_id, timezone, join_seq
		FROM auto_joins
		WHERE group_id = ?
	`, groupID)
	if err != nil {
		return fmt.Errorf("failed to get auto joins: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry contest.AutoJoinEntry
		if err := rows.Scan(&entry.ID, &entry.Timezone, &entry.Seq); err != nil {
			return fmt.Errorf("failed to scan auto join: %w", err)
		}
		roster.AutoJoin[entry.ID] = entry
	}

	return rows.Err()
}

func (r *rosterRepo) loadWinners(groupID int64, roster *contest.Roster) error {
	rows, err := r.db.Query(`
		SELECT date, utc_offset, member_id, last_active, timezones, broadcasted
		FROM winners
		WHERE group_id = ?
	`, groupID)
	if err != nil {
		return fmt.Errorf("failed to get winners: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key           contest.WinnerKey
			record        contest.WinnerRecord
			timezonesJSON string
		)
		err := rows.Scan(
			&key.Date,
			&key.Offset,
			&record.ParticipantID,
			&record.LastActive,
			&timezonesJSON,
			&record.Broadcasted,
		)
		if err != nil {
			return fmt.Errorf("failed to scan winner: %w", err)
		}

		if err := json.Unmarshal([]byte(timezonesJSON), &record.Timezones); err != nil {
			return fmt.Errorf("failed to unmarshal winner timezones: %w", err)
		}

		roster.Winners[key] = record
	}

	return rows.Err()
}

func (r *rosterRepo) loadReenrollments(groupID int64, roster *contest.Roster) error {
	rows, err := r.db.Query(`
		SELECT date, utc_offset
		FROM reenrollments
		WHERE group_id = ?
	`, groupID)
	if err != nil {
		return fmt.Errorf("failed to get reenrollments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key contest.WinnerKey
		if err := rows.Scan(&key.Date, &key.Offset); err != nil {
			return fmt.Errorf("failed to scan reenrollment: %w", err)
		}
		roster.Reenrolled[key] = true
	}

	return rows.Err()
}

// Save replaces the hall, auto-join list and re-enrolled cycles of the group
// and upserts its winner ledger. Winners are never deleted; only their broadcast flag changes.
// Callers run it inside a transaction.
func (r *rosterRepo) Save(groupID int64, roster *contest.Roster) error {
	if _, err := r.db.Exec(`DELETE FROM participants WHERE group_id = ?`, groupID); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	if _, err := r.db.Exec(`DELETE FROM auto_joins WHERE group_id = ?`, groupID); err != nil {
		return fmt.Errorf("failed to clear auto joins: %w", err)
	}

	for _, p := range roster.Participants() {
		activity := make([]time.Time, len(p.Activity))
		for i, at := range p.Activity {
			activity[i] = at.UTC()
		}

		// Convert activity to JSON for storage
		activityJSON, err := json.Marshal(activity)
		if err != nil {
			return fmt.Errorf("failed to marshal activity: %w", err)
		}

		_, err = r.db.Exec(`
			INSERT INTO participants (group_id, member_id, timezone, join_seq, activity)
			VALUES (?, ?, ?, ?, ?)
		`, groupID, p.ID, p.Timezone, p.Seq, string(activityJSON))
		if err != nil {
			return fmt.Errorf("failed to save participant %d: %w", p.ID, err)
		}
	}

	for _, entry := range roster.AutoJoinEntries() {
		_, err := r.db.Exec(`
			INSERT INTO auto_joins (group_id, member_id, timezone, join_seq)
			VALUES (?, ?, ?, ?)
		`, groupID, entry.ID, entry.Timezone, entry.Seq)
		if err != nil {
			return fmt.Errorf("failed to save auto join %d: %w", entry.ID, err)
		}
	}

	if _, err := r.db.Exec(`DELETE FROM reenrollments WHERE group_id = ?`, groupID); err != nil {
		return fmt.Errorf("failed to clear reenrollments: %w", err)
	}
	for _, key := range roster.ReenrolledKeys() {
		_, err := r.db.Exec(`
			INSERT INTO reenrollments (group_id, date, utc_offset)
			VALUES (?, ?, ?)
		`, groupID, key.Date, int(key.Offset))
		if err != nil {
			return fmt.Errorf("failed to save reenrollment %s %s: %w", key.Date, key.Offset, err)
		}
	}

	for _, key := range roster.WinnerKeys() {
		record := roster.Winners[key]

		timezonesJSON, err := json.Marshal(record.Timezones)
		if err != nil {
			return fmt.Errorf("failed to marshal winner timezones: %w", err)
		}

		_, err = r.db.Exec(`
			INSERT INTO winners (group_id, date, utc_offset, member_id, last_active, timezones, broadcasted)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(group_id, date, utc_offset) DO UPDATE SET
				broadcasted = excluded.broadcasted
		`, groupID, key.Date, int(key.Offset), record.ParticipantID, record.LastActive.UTC(), string(timezonesJSON), record.Broadcasted)
		if err != nil {
			return fmt.Errorf("failed to save winner %s %s: %w", key.Date, key.Offset, err)
		}
	}

	return nil
}

func (r *rosterRepo) GroupsWithParticipant(memberID int64) ([]int64, error) {
	rows, err := r.db.Query(`
		SELECT group_id FROM participants WHERE member_id = ? ORDER BY group_id
	`, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant groups: %w", err)
	}
	defer rows.Close()

	var groupIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		groupIDs = append(groupIDs, id)
	}

	return groupIDs, rows.Err()
}
