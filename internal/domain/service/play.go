package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/diegoclair/vigil-bot/internal/domain"
	"github.com/diegoclair/vigil-bot/internal/domain/contest"
	"github.com/diegoclair/vigil-bot/internal/domain/contract"
	"github.com/diegoclair/vigil-bot/internal/domain/entity"
	"github.com/rs/zerolog/log"
)

type rosterFunc func(master *entity.Group, st contest.State) (contest.State, error)

// withRoster runs fn on the contest state of the group's master under the
// master's lock, inside a transaction. The roster is saved only when fn
// returns a different one.
func (s *vigilService) withRoster(ctx context.Context, groupID int64, fn rosterFunc) error {
	group, err := s.getGroup(groupID)
	if err != nil {
		return err
	}
	if !group.IsEnabled {
		return domain.ErrGroupDisabled
	}

	masterID, err := contest.Resolve(groupID, linkLookup(s.dm.Group()))
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(masterID)
	defer unlock()

	return s.dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		master, err := tx.Group().GetByID(masterID)
		if err != nil {
			return fmt.Errorf("failed to get master group: %w", err)
		}
		if master == nil {
			return domain.ErrGroupNotFound
		}
		if !master.IsEnabled {
			return domain.ErrGroupDisabled
		}

		roster, err := tx.Roster().Load(masterID)
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}

		st := contest.State{Config: master.Contest, Roster: roster}
		next, err := fn(master, st)
		if err != nil {
			return err
		}
		if next.Roster == st.Roster {
			return nil
		}

		if err := tx.Roster().Save(masterID, next.Roster); err != nil {
			return fmt.Errorf("failed to save roster: %w", err)
		}
		return nil
	})
}

// pickZone chooses the zone a member plays in: the requested one, then the
// one they already play or auto-join with, then their Slack zone, then the
// group's.
func (s *vigilService) pickZone(requested string, st contest.State, member *entity.Member, group *entity.Group) (string, error) {
	zones := s.engine.Zones()
	if requested != "" {
		if _, err := zones.Location(requested); err != nil {
			return "", err
		}
		return requested, nil
	}

	if p, ok := st.Roster.Get(member.ID); ok {
		return p.Timezone, nil
	}
	if entry, ok := st.Roster.AutoJoin[member.ID]; ok {
		return entry.Timezone, nil
	}
	if member.Timezone != "" {
		if _, err := zones.Location(member.Timezone); err == nil {
			return member.Timezone, nil
		}
	}
	return group.Timezone, nil
}

// Join enrolls the user in the group's hall and returns the zone they play in
func (s *vigilService) Join(ctx context.Context, groupID int64, slackUserID, zone string) (string, error) {
	member, err := s.member(slackUserID)
	if err != nil {
		return "", err
	}

	var joined string
	err = s.withRoster(ctx, groupID, func(master *entity.Group, st contest.State) (contest.State, error) {
		z, err := s.pickZone(zone, st, member, master)
		if err != nil {
			return st, err
		}
		next, err := s.engine.Join(st, member.ID, z, s.clock.Now())
		if err != nil {
			return st, err
		}
		joined = z
		return next, nil
	})
	if err != nil {
		return "", err
	}

	log.Info().Int64("group_id", groupID).Int64("member_id", member.ID).Str("zone", joined).Msg("member joined")
	return joined, nil
}

func (s *vigilService) Quit(ctx context.Context, groupID int64, slackUserID string) error {
	member, err := s.knownMember(slackUserID)
	if err != nil || member == nil {
		return err
	}

	err = s.withRoster(ctx, groupID, func(_ *entity.Group, st contest.State) (contest.State, error) {
		return s.engine.Quit(st, member.ID), nil
	})
	if err != nil {
		return err
	}

	log.Info().Int64("group_id", groupID).Int64("member_id", member.ID).Msg("member quit")
	return nil
}

// EnableAutoJoin stores the standing opt-in and also joins the running cycle
// when the match has not started yet. It returns the zone and whether the
// member is in the hall now.
func (s *vigilService) EnableAutoJoin(ctx context.Context, groupID int64, slackUserID, zone string) (string, bool, error) {
	member, err := s.member(slackUserID)
	if err != nil {
		return "", false, err
	}

	var (
		chosen string
		inHall bool
	)
	err = s.withRoster(ctx, groupID, func(master *entity.Group, st contest.State) (contest.State, error) {
		z, err := s.pickZone(zone, st, member, master)
		if err != nil {
			return st, err
		}
		next, err := s.engine.EnableAutoJoin(st, member.ID, z)
		if err != nil {
			return st, err
		}
		chosen = z

		if _, ok := next.Roster.Get(member.ID); ok {
			inHall = true
			return next, nil
		}

		joined, err := s.engine.Join(next, member.ID, z, s.clock.Now())
		switch {
		case errors.Is(err, contest.ErrMatchInProgress):
			return next, nil
		case err != nil:
			return st, err
		}
		inHall = true
		return joined, nil
	})
	if err != nil {
		return "", false, err
	}

	log.Info().Int64("group_id", groupID).Int64("member_id", member.ID).Str("zone", chosen).Bool("in_hall", inHall).Msg("autojoin enabled")
	return chosen, inHall, nil
}

func (s *vigilService) DisableAutoJoin(ctx context.Context, groupID int64, slackUserID string) error {
	member, err := s.knownMember(slackUserID)
	if err != nil || member == nil {
		return err
	}

	return s.withRoster(ctx, groupID, func(_ *entity.Group, st contest.State) (contest.State, error) {
		return s.engine.DisableAutoJoin(st, member.ID), nil
	})
}

// RecordActivity registers a message from the user in the channel. It reports
// whether the activity counted, which is false for channels and users that do
// not take part.
func (s *vigilService) RecordActivity(ctx context.Context, slackChannelID, slackUserID string) (bool, error) {
	group, err := s.GetGroup(slackChannelID)
	if err != nil {
		return false, err
	}
	if group == nil || !group.IsEnabled {
		return false, nil
	}

	member, err := s.knownMember(slackUserID)
	if err != nil || member == nil {
		return false, err
	}

	var recorded bool
	err = s.withRoster(ctx, group.ID, func(_ *entity.Group, st contest.State) (contest.State, error) {
		next, ok, err := s.engine.RecordActivity(st, member.ID, s.clock.Now())
		recorded = ok
		return next, err
	})
	if errors.Is(err, domain.ErrGroupDisabled) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return recorded, nil
}
