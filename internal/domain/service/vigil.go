package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/diegoclair/vigil-bot/internal/domain"
	"github.com/diegoclair/vigil-bot/internal/domain/contest"
	"github.com/diegoclair/vigil-bot/internal/domain/contract"
	"github.com/diegoclair/vigil-bot/internal/domain/entity"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

type vigilService struct {
	dm          contract.DataManager
	slackClient contract.SlackClient
	engine      *contest.Engine
	clock       clockwork.Clock
	locks       *groupLocks
	admins      map[string]bool
	defaults    GroupDefaults
}

func newVigil(dm contract.DataManager, slackClient contract.SlackClient, opts Options) *vigilService {
	admins := make(map[string]bool, len(opts.Admins))
	for _, id := range opts.Admins {
		admins[id] = true
	}
	if len(admins) == 0 {
		log.Warn().Msg("no admins configured, every user may change group settings")
	}

	return &vigilService{
		dm:          dm,
		slackClient: slackClient,
		engine:      contest.NewEngine(contest.NewIANAZones()),
		clock:       opts.Clock,
		locks:       newGroupLocks(),
		admins:      admins,
		defaults:    opts.Defaults,
	}
}

var _ contract.VigilService = (*vigilService)(nil)

func (s *vigilService) IsAdmin(slackUserID string) bool {
	if len(s.admins) == 0 {
		return true
	}
	return s.admins[slackUserID]
}

func (s *vigilService) GetGroup(slackChannelID string) (*entity.Group, error) {
	group, err := s.dm.Group().GetBySlackID(slackChannelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

func (s *vigilService) getGroup(groupID int64) (*entity.Group, error) {
	group, err := s.dm.Group().GetByID(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return nil, domain.ErrGroupNotFound
	}
	return group, nil
}

// SetupGroup creates the group for a channel with the configured defaults.
// It reports whether the group was created.
func (s *vigilService) SetupGroup(slackChannelID, channelName string) (*entity.Group, bool, error) {
	group, err := s.GetGroup(slackChannelID)
	if err != nil {
		return nil, false, err
	}
	if group != nil {
		return group, false, nil
	}

	group = &entity.Group{
		SlackChannelID:   slackChannelID,
		SlackChannelName: channelName,
		IsEnabled:        true,
		IsMaster:         true,
		Timezone:         s.defaults.Timezone,
		TitleTemplate:    s.defaults.TitleTemplate,
		BroadcastStatus:  s.defaults.BroadcastStatus,
		BroadcastWinner:  s.defaults.BroadcastWinner,
		Contest:          s.defaults.Contest,
	}
	if group.Timezone == "" {
		group.Timezone = "UTC"
	}
	if group.TitleTemplate == "" {
		group.TitleTemplate = domain.DefaultTitleTemplate
	}

	if err := s.dm.Group().Create(group); err != nil {
		return nil, false, fmt.Errorf("failed to create group: %w", err)
	}

	log.Info().Int64("group_id", group.ID).Str("channel", slackChannelID).Msg("group set up")
	return group, true, nil
}

func (s *vigilService) EnableGroup(groupID int64) error {
	return s.setEnabled(groupID, true)
}

func (s *vigilService) DisableGroup(groupID int64) error {
	return s.setEnabled(groupID, false)
}

func (s *vigilService) setEnabled(groupID int64, enabled bool) error {
	group, err := s.getGroup(groupID)
	if err != nil {
		return err
	}
	if group.IsEnabled == enabled {
		return nil
	}

	group.IsEnabled = enabled
	if err := s.dm.Group().Update(group); err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	log.Info().Int64("group_id", groupID).Bool("enabled", enabled).Msg("group toggled")
	return nil
}

// LinkToMaster turns the group into a slave of the group in the given channel.
// The slave's own roster is dropped: from now on it plays in the master's.
func (s *vigilService) LinkToMaster(ctx context.Context, groupID int64, masterSlackChannelID string) error {
	master, err := s.GetGroup(masterSlackChannelID)
	if err != nil {
		return err
	}
	if master == nil {
		return domain.ErrGroupNotFound
	}
	if master.ID == groupID {
		return domain.ErrSelfLink
	}

	unlock := s.locks.Lock(groupID)
	defer unlock()

	err = s.dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		group, err := tx.Group().GetByID(groupID)
		if err != nil {
			return fmt.Errorf("failed to get group: %w", err)
		}
		if group == nil {
			return domain.ErrGroupNotFound
		}

		group.IsMaster = false
		group.SlaveOf = master.ID
		if err := tx.Group().Update(group); err != nil {
			return fmt.Errorf("failed to update group: %w", err)
		}

		// a cycle rolls the link back
		if _, err := contest.Resolve(groupID, linkLookup(tx.Group())); err != nil {
			return err
		}

		if err := tx.Roster().Save(groupID, contest.NewRoster()); err != nil {
			return fmt.Errorf("failed to clear roster: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Int64("group_id", groupID).Int64("master_id", master.ID).Msg("group linked to master")
	return nil
}

// DeleteGroup removes the group with its roster and winners. Its slaves are
// unlinked and become masters of their own.
func (s *vigilService) DeleteGroup(ctx context.Context, groupID int64) error {
	unlock := s.locks.Lock(groupID)
	defer unlock()

	err := s.dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		slaves, err := tx.Group().GetSlavesOf(groupID)
		if err != nil {
			return fmt.Errorf("failed to get slave groups: %w", err)
		}
		for _, slave := range slaves {
			slave.IsMaster = true
			slave.SlaveOf = 0
			if err := tx.Group().Update(slave); err != nil {
				return fmt.Errorf("failed to unlink slave group: %w", err)
			}
		}

		if err := tx.Group().Delete(groupID); err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Int64("group_id", groupID).Msg("group deleted")
	return nil
}

// linkLookup reads group links for contest.Resolve
func linkLookup(repo contract.GroupRepo) contest.LinkLookup {
	return func(id int64) (contest.Link, bool, error) {
		group, err := repo.GetByID(id)
		if err != nil {
			return contest.Link{}, false, fmt.Errorf("failed to get group: %w", err)
		}
		if group == nil {
			return contest.Link{}, false, nil
		}
		return group.Link(), true, nil
	}
}

func (s *vigilService) UpdateGroupConfig(groupID int64, key, value string) error {
	unlock := s.locks.Lock(groupID)
	defer unlock()

	group, err := s.getGroup(groupID)
	if err != nil {
		return err
	}

	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	if isContestKey(key) && group.IsSlave() {
		return fmt.Errorf("%w: %s is taken from the master group", domain.ErrInvalidValue, key)
	}
	if err := s.applyConfig(group, key, value); err != nil {
		return err
	}
	if err := group.Contest.Validate(); err != nil {
		return err
	}

	if err := s.dm.Group().Update(group); err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	log.Info().Int64("group_id", groupID).Str("key", key).Str("value", value).Msg("group config updated")

	if group.TitleEnabled && (key == domain.ConfigTitleTemplate || key == domain.ConfigTimezone) {
		if err := s.refreshTitle(group); err != nil {
			log.Warn().Err(err).Int64("group_id", groupID).Msg("failed to refresh title")
		}
	}
	return nil
}

func isContestKey(key string) bool {
	switch key {
	case domain.ConfigMode, domain.ConfigDeadline, domain.ConfigStart, domain.ConfigStop, domain.ConfigBroadcastDelay:
		return true
	}
	return false
}

func (s *vigilService) applyConfig(group *entity.Group, key, value string) error {
	switch key {
	case domain.ConfigTimezone:
		if _, err := s.engine.Zones().Location(value); err != nil {
			return err
		}
		group.Timezone = value
	case domain.ConfigMode:
		mode, err := contest.ParseMode(value)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidValue, err)
		}
		group.Contest.Mode = mode
	case domain.ConfigDeadline, domain.ConfigStart, domain.ConfigStop:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidValue, key)
		}
		switch key {
		case domain.ConfigDeadline:
			group.Contest.Deadline = n
		case domain.ConfigStart:
			group.Contest.StartHour = n
		default:
			group.Contest.StopHour = n
		}
	case domain.ConfigTitleTemplate:
		if value == "" {
			return fmt.Errorf("%w: template cannot be empty", domain.ErrInvalidValue)
		}
		group.TitleTemplate = value
	case domain.ConfigStatusBroadcast, domain.ConfigWinnerBroadcast, domain.ConfigBroadcastDelay:
		on, err := parseSwitch(value)
		if err != nil {
			return err
		}
		switch key {
		case domain.ConfigStatusBroadcast:
			group.BroadcastStatus = on
		case domain.ConfigWinnerBroadcast:
			group.BroadcastWinner = on
		default:
			group.Contest.DelayBroadcast = on
		}
	default:
		return fmt.Errorf("%w: unknown key %q, use one of %s", domain.ErrInvalidValue, key, strings.Join(domain.ConfigKeys, ", "))
	}
	return nil
}

func parseSwitch(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	on, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: expected on or off, got %q", domain.ErrInvalidValue, value)
	}
	return on, nil
}

func (s *vigilService) SetTitleEnabled(groupID int64, enabled bool) error {
	group, err := s.getGroup(groupID)
	if err != nil {
		return err
	}

	group.TitleEnabled = enabled
	if err := s.dm.Group().Update(group); err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	if !enabled {
		return nil
	}
	return s.refreshTitle(group)
}
