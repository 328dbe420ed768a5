package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/diegoclair/vigil-bot/internal/domain/contract"
	"github.com/diegoclair/vigil-bot/internal/domain/entity"
)

type memberRepo struct {
	db dbConn
}

func newMemberRepo(db dbConn) contract.MemberRepo {
	return &memberRepo{db: db}
}

// Upsert inserts the member or refreshes its cached profile, keyed by Slack user id
func (r *memberRepo) Upsert(member *entity.Member) error {
	if member.RefreshedAt.IsZero() {
		member.RefreshedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO members (slack_user_id, display_name, timezone, refreshed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(slack_user_id) DO UPDATE SET
			display_name = excluded.display_name,
			timezone = excluded.timezone,
			refreshed_at = excluded.refreshed_at
	`

	_, err := r.db.Exec(query,
		member.SlackUserID,
		member.DisplayName,
		member.Timezone,
		member.RefreshedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert member: %w", err)
	}

	// LastInsertId is not reliable for the update branch of an upsert
	err = r.db.QueryRow(`SELECT id FROM members WHERE slack_user_id = ?`, member.SlackUserID).Scan(&member.ID)
	if err != nil {
		return fmt.Errorf("failed to get member id: %w", err)
	}

	return nil
}

func (r *memberRepo) GetByID(id int64) (*entity.Member, error) {
	return r.get(`WHERE id = ?`, id)
}

func (r *memberRepo) GetBySlackID(slackUserID string) (*entity.Member, error) {
	return r.get(`WHERE slack_user_id = ?`, slackUserID)
}

func (r *memberRepo) get(where string, arg interface{}) (*entity.Member, error) {
	member := &entity.Member{}
	query := `
		SELECT id, slack_user_id, display_name, timezone, refreshed_at, created_at
		FROM members
	` + where

	err := r.db.QueryRow(query, arg).Scan(
		&member.ID,
		&member.SlackUserID,
		&member.DisplayName,
		&member.Timezone,
		&member.RefreshedAt,
		&member.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}
