package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diegoclair/vigil-bot/internal/domain"
	"github.com/diegoclair/vigil-bot/internal/domain/entity"
	"github.com/rs/zerolog/log"
)

// renderTitle fills {year}, {edition} and {day} in the template
func renderTitle(template string, now time.Time) string {
	r := strings.NewReplacer(
		"{year}", strconv.Itoa(now.Year()),
		"{edition}", strconv.Itoa(now.Year()-domain.EditionBaseYear),
		"{day}", strconv.Itoa(now.YearDay()),
	)
	return r.Replace(template)
}

// refreshTitle sets the channel topic from the group's template. When Slack
// refuses the topic the title is switched off for the group.
func (s *vigilService) refreshTitle(group *entity.Group) error {
	loc, err := s.engine.Zones().Location(group.Timezone)
	if err != nil {
		loc = time.UTC
	}

	template := group.TitleTemplate
	if template == "" {
		template = s.defaults.TitleTemplate
	}
	if template == "" {
		template = domain.DefaultTitleTemplate
	}

	title := renderTitle(template, s.clock.Now().In(loc))
	if _, err := s.slackClient.SetTopicOfConversation(group.SlackChannelID, title); err != nil {
		group.TitleEnabled = false
		if uerr := s.dm.Group().Update(group); uerr != nil {
			log.Error().Err(uerr).Int64("group_id", group.ID).Msg("failed to disable title")
		}
		return fmt.Errorf("failed to set channel title: %w", err)
	}

	return nil
}
