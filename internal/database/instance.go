package database

import (
	"context"
	"fmt"

	"github.com/diegoclair/vigil-bot/internal/domain/contract"
)

// instance implements DataManager interface
type instance struct {
	db         *DB
	groupRepo  contract.GroupRepo
	memberRepo contract.MemberRepo
	rosterRepo contract.RosterRepo
}

// NewInstance creates a new database instance with all repositories
func NewInstance(db *DB) contract.DataManager {
	instance := &instance{
		db: db,
	}
	instance.repoInstances()
	return instance
}

// repoInstances initializes all repositories
func (i *instance) repoInstances() {
	i.groupRepo = newGroupRepo(i.db.conn)
	i.memberRepo = newMemberRepo(i.db.conn)
	i.rosterRepo = newRosterRepo(i.db.conn)
}

// repoInstancesWithConn creates repository instances with custom dbConn
func repoInstancesWithConn(db dbConn) *instance {
	return &instance{
		groupRepo:  newGroupRepo(db),
		memberRepo: newMemberRepo(db),
		rosterRepo: newRosterRepo(db),
	}
}

func (i *instance) Group() contract.GroupRepo {
	return i.groupRepo
}

func (i *instance) Member() contract.MemberRepo {
	return i.memberRepo
}

func (i *instance) Roster() contract.RosterRepo {
	return i.rosterRepo
}

// WithTransaction executes a function within a database transaction.
// The DataManager handed to fn must be the only one used until fn returns.
func (i *instance) WithTransaction(ctx context.Context, fn func(dm contract.DataManager) error) error {
	tx, err := i.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txInstance := repoInstancesWithConn(tx)
	err = fn(txInstance)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v, original error: %w", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
