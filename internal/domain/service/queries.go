package service

import (
	"fmt"
	"time"

	"github.com/diegoclair/vigil-bot/internal/domain"
	"github.com/diegoclair/vigil-bot/internal/domain/contest"
	"github.com/diegoclair/vigil-bot/internal/domain/entity"
)

// readState loads the contest state the group plays in without locking
func (s *vigilService) readState(groupID int64) (*entity.Group, contest.State, error) {
	group, err := s.getGroup(groupID)
	if err != nil {
		return nil, contest.State{}, err
	}
	if !group.IsEnabled {
		return nil, contest.State{}, domain.ErrGroupDisabled
	}

	masterID, err := contest.Resolve(groupID, linkLookup(s.dm.Group()))
	if err != nil {
		return nil, contest.State{}, err
	}

	master := group
	if masterID != groupID {
		if master, err = s.getGroup(masterID); err != nil {
			return nil, contest.State{}, err
		}
	}

	roster, err := s.dm.Roster().Load(masterID)
	if err != nil {
		return nil, contest.State{}, fmt.Errorf("failed to load roster: %w", err)
	}

	return master, contest.State{Config: master.Contest, Roster: roster}, nil
}

type participantFilter func(master *entity.Group, p contest.Partition, participant *contest.Participant) bool

func (s *vigilService) partitionViews(groupID int64, keep participantFilter) ([]*entity.PartitionView, error) {
	master, st, err := s.readState(groupID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	partitions, err := s.engine.Partition(st, now)
	if err != nil {
		return nil, err
	}

	views := make([]*entity.PartitionView, 0, len(partitions))
	for _, p := range partitions {
		view := &entity.PartitionView{
			Offset:    p.Offset,
			Zones:     p.Zones,
			LocalTime: p.LocalTime(now),
		}

		for _, participant := range p.Participants {
			if keep != nil && !keep(master, p, participant) {
				continue
			}
			member, err := s.memberByID(participant.ID)
			if err != nil {
				return nil, err
			}
			_, auto := st.Roster.AutoJoin[participant.ID]
			view.Participants = append(view.Participants, &entity.ParticipantView{
				Member:     member,
				Timezone:   participant.Timezone,
				LastActive: participant.LastActive(),
				AutoJoin:   auto,
			})
		}

		if len(view.Participants) > 0 {
			views = append(views, view)
		}
	}

	return views, nil
}

// MatchStatus lists the partitions whose match is running now
func (s *vigilService) MatchStatus(groupID int64) ([]*entity.PartitionView, error) {
	now := s.clock.Now()
	return s.partitionViews(groupID, func(master *entity.Group, p contest.Partition, _ *contest.Participant) bool {
		return master.Contest.InMatch(p.LocalTime(now))
	})
}

// ListParticipants lists the hall. The filter is empty for everyone, a UTC
// offset such as +0800, or a zone name.
func (s *vigilService) ListParticipants(groupID int64, filter string) ([]*entity.PartitionView, error) {
	if filter == "" {
		return s.partitionViews(groupID, nil)
	}

	if offset, err := contest.ParseOffset(filter); err == nil {
		return s.partitionViews(groupID, func(_ *entity.Group, p contest.Partition, _ *contest.Participant) bool {
			return p.Offset == offset
		})
	}

	if _, err := s.engine.Zones().Location(filter); err != nil {
		return nil, err
	}
	return s.partitionViews(groupID, func(_ *entity.Group, _ contest.Partition, participant *contest.Participant) bool {
		return participant.Timezone == filter
	})
}

// MyStatus lists the groups the user is in the hall of
func (s *vigilService) MyStatus(slackUserID string) ([]*entity.Membership, error) {
	member, err := s.knownMember(slackUserID)
	if err != nil || member == nil {
		return nil, err
	}

	groupIDs, err := s.dm.Roster().GroupsWithParticipant(member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get groups of member: %w", err)
	}

	memberships := make([]*entity.Membership, 0, len(groupIDs))
	for _, id := range groupIDs {
		group, err := s.dm.Group().GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("failed to get group: %w", err)
		}
		if group == nil || !group.IsEnabled {
			continue
		}

		roster, err := s.dm.Roster().Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load roster: %w", err)
		}
		p, ok := roster.Get(member.ID)
		if !ok {
			continue
		}

		memberships = append(memberships, &entity.Membership{
			Group:      group,
			Timezone:   p.Timezone,
			LastActive: p.LastActive(),
		})
	}

	return memberships, nil
}

// LocalTime returns the current time in the given zone, or in the zone the
// user plays in when zone is empty
func (s *vigilService) LocalTime(groupID int64, slackUserID, zone string) (time.Time, string, error) {
	now := s.clock.Now()
	zones := s.engine.Zones()

	if zone == "" {
		member, err := s.member(slackUserID)
		if err != nil {
			return time.Time{}, "", err
		}
		master, st, err := s.readState(groupID)
		if err != nil {
			return time.Time{}, "", err
		}
		if zone, err = s.pickZone("", st, member, master); err != nil {
			return time.Time{}, "", err
		}
	}

	loc, err := zones.Location(zone)
	if err != nil {
		return time.Time{}, "", err
	}
	return now.In(loc), zone, nil
}
