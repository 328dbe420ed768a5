package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/diegoclair/vigil-bot/internal/domain/contest"
	"github.com/diegoclair/vigil-bot/internal/domain/contract"
	"github.com/diegoclair/vigil-bot/internal/domain/entity"
)

const groupColumns = `
	id, slack_channel_id, slack_channel_name, is_enabled, is_master, slave_of,
	timezone, title_enabled, title_template, broadcast_status, broadcast_winner,
	mode, deadline, start_hour, stop_hour, delay_winner_broadcast,
	created_at, updated_at
`

type groupRepo struct {
	db dbConn
}

func newGroupRepo(db dbConn) contract.GroupRepo {
	return &groupRepo{db: db}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanGroup(row scanner) (*entity.Group, error) {
	group := &entity.Group{}
	var mode string

	err := row.Scan(
		&group.ID,
		&group.SlackChannelID,
		&group.SlackChannelName,
		&group.IsEnabled,
		&group.IsMaster,
		&group.SlaveOf,
		&group.Timezone,
		&group.TitleEnabled,
		&group.TitleTemplate,
		&group.BroadcastStatus,
		&group.BroadcastWinner,
		&mode,
		&group.Contest.Deadline,
		&group.Contest.StartHour,
		&group.Contest.StopHour,
		&group.Contest.DelayBroadcast,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	group.Contest.Mode, err = contest.ParseMode(mode)
	if err != nil {
		return nil, fmt.Errorf("group %d: %w", group.ID, err)
	}

	return group, nil
}

func (r *groupRepo) Create(group *entity.Group) error {
	query := `
		INSERT INTO groups (
			slack_channel_id, slack_channel_name, is_enabled, is_master, slave_of,
			timezone, title_enabled, title_template, broadcast_status, broadcast_winner,
			mode, deadline, start_hour, stop_hour, delay_winner_broadcast
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		group.SlackChannelID,
		group.SlackChannelName,
		group.IsEnabled,
		group.IsMaster,
		group.SlaveOf,
		group.Timezone,
		group.TitleEnabled,
		group.TitleTemplate,
		group.BroadcastStatus,
		group.BroadcastWinner,
		group.Contest.Mode.String(),
		group.Contest.Deadline,
		group.Contest.StartHour,
		group.Contest.StopHour,
		group.Contest.DelayBroadcast,
	)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	group.ID = id
	return nil
}

func (r *groupRepo) GetByID(id int64) (*entity.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE id = ?`

	group, err := scanGroup(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

func (r *groupRepo) GetBySlackID(slackChannelID string) (*entity.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE slack_channel_id = ?`

	group, err := scanGroup(r.db.QueryRow(query, slackChannelID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

func (r *groupRepo) Update(group *entity.Group) error {
	query := `
		UPDATE groups SET
			slack_channel_name = ?,
			is_enabled = ?,
			is_master = ?,
			slave_of = ?,
			timezone = ?,
			title_enabled = ?,
			title_template = ?,
			broadcast_status = ?,
			broadcast_winner = ?,
			mode = ?,
			deadline = ?,
			start_hour = ?,
			stop_hour = ?,
			delay_winner_broadcast = ?,
			updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		group.SlackChannelName,
		group.IsEnabled,
		group.IsMaster,
		group.SlaveOf,
		group.Timezone,
		group.TitleEnabled,
		group.TitleTemplate,
		group.BroadcastStatus,
		group.BroadcastWinner,
		group.Contest.Mode.String(),
		group.Contest.Deadline,
		group.Contest.StartHour,
		group.Contest.StopHour,
		group.Contest.DelayBroadcast,
		time.Now().UTC(),
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	return nil
}

func (r *groupRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	return nil
}

func (r *groupRepo) GetEnabled() ([]*entity.Group, error) {
	return r.list(`SELECT `+groupColumns+` FROM groups WHERE is_enabled = 1 ORDER BY id`, "enabled groups")
}

func (r *groupRepo) GetMasters() ([]*entity.Group, error) {
	return r.list(`SELECT `+groupColumns+` FROM groups WHERE is_enabled = 1 AND is_master = 1 ORDER BY id`, "master groups")
}

func (r *groupRepo) GetSlavesOf(masterID int64) ([]*entity.Group, error) {
	return r.list(`SELECT `+groupColumns+` FROM groups WHERE is_master = 0 AND slave_of = ? ORDER BY id`, "slave groups", masterID)
}

func (r *groupRepo) list(query, what string, args ...interface{}) ([]*entity.Group, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}
	defer rows.Close()

	var groups []*entity.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", what, err)
	}

	return groups, nil
}
