package service

import (
	"fmt"

	"github.com/diegoclair/vigil-bot/internal/domain"
	"github.com/diegoclair/vigil-bot/internal/domain/entity"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
)

// member returns the member for a Slack user, refreshing the cached profile
// from Slack when it is older than MemberCacheTTL. A stale profile is still
// used when Slack cannot be reached.
func (s *vigilService) member(slackUserID string) (*entity.Member, error) {
	member, err := s.dm.Member().GetBySlackID(slackUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	now := s.clock.Now()
	if member != nil && now.Sub(member.RefreshedAt) < domain.MemberCacheTTL {
		return member, nil
	}

	user, err := s.slackClient.GetUserInfo(slackUserID)
	if err != nil {
		if member != nil {
			log.Warn().Err(err).Str("user", slackUserID).Msg("failed to refresh member, using cached profile")
			return member, nil
		}
		return nil, fmt.Errorf("failed to get user info from Slack: %w", err)
	}

	if member == nil {
		member = &entity.Member{SlackUserID: slackUserID}
	}
	member.DisplayName = displayName(user)
	member.Timezone = user.TZ
	member.RefreshedAt = now

	if err := s.dm.Member().Upsert(member); err != nil {
		return nil, fmt.Errorf("failed to save member: %w", err)
	}
	return member, nil
}

// knownMember returns the member without asking Slack, or nil when the user
// never played
func (s *vigilService) knownMember(slackUserID string) (*entity.Member, error) {
	member, err := s.dm.Member().GetBySlackID(slackUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

func displayName(user *slack.User) string {
	switch {
	case user.Profile.DisplayName != "":
		return user.Profile.DisplayName
	case user.Profile.RealName != "":
		return user.Profile.RealName
	case user.RealName != "":
		return user.RealName
	default:
		return user.Name
	}
}

// memberByID resolves a participant id for display. Unknown ids get a
// placeholder so a listing never fails on a missing row.
func (s *vigilService) memberByID(id int64) (*entity.Member, error) {
	member, err := s.dm.Member().GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil {
		return &entity.Member{ID: id}, nil
	}
	return member, nil
}
