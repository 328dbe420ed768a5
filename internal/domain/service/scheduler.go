package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/diegoclair/vigil-bot/internal/domain/contest"
	"github.com/diegoclair/vigil-bot/internal/domain/contract"
	"github.com/diegoclair/vigil-bot/internal/domain/entity"
	slackmsg "github.com/diegoclair/vigil-bot/internal/domain/slack"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
	"golang.org/x/sync/errgroup"
)

const (
	titleSpec  = "*/30 * * * *"
	matchSpec  = "*/30 * * * *"
	statusSpec = "0 */2 * * *"
)

type scheduler struct {
	vigil     *vigilService
	publisher contract.Publisher
	cron      *cron.Cron
	tickSpec  string
	workers   int

	mu      sync.Mutex
	running bool
}

func newScheduler(vigil *vigilService, publisher contract.Publisher, opts Options) *scheduler {
	tickSpec := opts.TickSpec
	if tickSpec == "" {
		tickSpec = "* * * * *"
	}
	workers := opts.TickWorkers
	if workers < 1 {
		workers = 1
	}

	return &scheduler{
		vigil:     vigil,
		publisher: publisher,
		cron:      cron.New(cron.WithLocation(time.UTC)),
		tickSpec:  tickSpec,
		workers:   workers,
	}
}

type job struct {
	name string
	spec string
	run  func(ctx context.Context, now time.Time) error
}

func (s *scheduler) jobs() []job {
	return []job{
		{name: "tick", spec: s.tickSpec, run: s.Tick},
		{name: "titles", spec: titleSpec, run: s.RefreshTitles},
		{name: "match_reminders", spec: matchSpec, run: s.MatchReminders},
		{name: "hall_status", spec: statusSpec, run: s.HallStatus},
	}
}

func (s *scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	for _, j := range s.jobs() {
		if _, err := s.cron.AddFunc(j.spec, func() { s.run(j) }); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", j.name, err)
		}
	}

	s.cron.Start()
	s.running = true
	log.Info().Str("tick_spec", s.tickSpec).Int("workers", s.workers).Msg("scheduler started")
	return nil
}

// Stop waits for running jobs to finish
func (s *scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.running = false
	log.Info().Msg("scheduler stopped")
}

func (s *scheduler) run(j job) {
	logger := log.With().Str("job", j.name).Str("run_id", uuid.NewString()).Logger()
	ctx := logger.WithContext(context.Background())

	start := s.vigil.clock.Now()
	if err := j.run(ctx, start); err != nil {
		logger.Error().Err(err).Msg("scheduler job failed")
		return
	}
	logger.Debug().Dur("took", s.vigil.clock.Since(start)).Msg("scheduler job finished")
}

// forEachMaster runs fn for every enabled master group on a bounded worker
// pool. Failures are logged per group and never stop the others.
func (s *scheduler) forEachMaster(ctx context.Context, what string, fn func(ctx context.Context, master *entity.Group) error) error {
	masters, err := s.vigil.dm.Group().GetMasters()
	if err != nil {
		return fmt.Errorf("failed to get master groups: %w", err)
	}

	var g errgroup.Group
	g.SetLimit(s.workers)
	for _, master := range masters {
		g.Go(func() error {
			if err := fn(ctx, master); err != nil {
				zerolog.Ctx(ctx).Error().Err(err).Int64("group_id", master.ID).Msg("failed to " + what)
			}
			return nil
		})
	}
	return g.Wait()
}

// Tick advances the contest of every master group
func (s *scheduler) Tick(ctx context.Context, now time.Time) error {
	return s.forEachMaster(ctx, "tick group", func(ctx context.Context, master *entity.Group) error {
		return s.tickGroup(ctx, master.ID, now)
	})
}

func (s *scheduler) tickGroup(ctx context.Context, groupID int64, now time.Time) error {
	unlock := s.vigil.locks.Lock(groupID)
	defer unlock()

	var (
		group   *entity.Group
		pending []contest.Announcement
	)
	err := s.vigil.dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		var err error
		group, err = tx.Group().GetByID(groupID)
		if err != nil {
			return fmt.Errorf("failed to get group: %w", err)
		}
		if group == nil || !group.IsEnabled || group.IsSlave() {
			return nil
		}

		roster, err := tx.Roster().Load(groupID)
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}

		st := contest.State{Config: group.Contest, Roster: roster}
		next, announcements, err := s.vigil.engine.Tick(st, now)
		if err != nil {
			return err
		}
		if next.Roster != st.Roster {
			if err := tx.Roster().Save(groupID, next.Roster); err != nil {
				return fmt.Errorf("failed to save roster: %w", err)
			}
		}

		pending = announcements
		return nil
	})
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	return s.announce(ctx, group, pending, now)
}

// announce posts the winners, marks them broadcast and publishes them. A
// failed post leaves them pending for the next tick.
func (s *scheduler) announce(ctx context.Context, group *entity.Group, pending []contest.Announcement, now time.Time) error {
	winners := make([]slackmsg.Winner, 0, len(pending))
	for _, a := range pending {
		member, err := s.vigil.memberByID(a.Winner.ParticipantID)
		if err != nil {
			return err
		}
		winners = append(winners, slackmsg.Winner{
			Member:    member,
			Key:       a.Key,
			Zones:     a.Winner.Timezones,
			LocalTime: a.LocalTime,
		})
	}

	if group.BroadcastWinner {
		text := slackmsg.FormatWinners(winners)
		if _, _, err := s.vigil.slackClient.PostMessage(group.SlackChannelID, slack.MsgOptionText(text, false)); err != nil {
			return fmt.Errorf("failed to post winners: %w", err)
		}
	}

	err := s.vigil.dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		roster, err := tx.Roster().Load(group.ID)
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}

		st := contest.State{Config: group.Contest, Roster: roster}
		marked := false
		for _, a := range pending {
			var ok bool
			st, ok = s.vigil.engine.MarkBroadcast(st, a.Key)
			marked = marked || ok
		}
		if !marked {
			return nil
		}

		if err := tx.Roster().Save(group.ID, st.Roster); err != nil {
			return fmt.Errorf("failed to save roster: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger := zerolog.Ctx(ctx)
	for _, w := range winners {
		logger.Info().Int64("group_id", group.ID).Str("date", w.Key.Date).Str("offset", w.Key.Offset.String()).
			Int64("member_id", w.Member.ID).Msg("winner announced")

		event := entity.WinnerEvent{
			GroupID:        group.ID,
			SlackChannelID: group.SlackChannelID,
			Date:           w.Key.Date,
			UTCOffset:      w.Key.Offset.String(),
			Timezones:      w.Zones,
			SlackUserID:    w.Member.SlackUserID,
			DisplayName:    w.Member.DisplayName,
			LastActive:     w.LocalTime.UTC(),
			AnnouncedAt:    now.UTC(),
		}
		if err := s.publisher.PublishWinner(ctx, event); err != nil {
			logger.Warn().Err(err).Int64("group_id", group.ID).Msg("failed to publish winner event")
		}
	}

	return nil
}

// RefreshTitles updates the topic of every group with the title enabled
func (s *scheduler) RefreshTitles(ctx context.Context, _ time.Time) error {
	groups, err := s.vigil.dm.Group().GetEnabled()
	if err != nil {
		return fmt.Errorf("failed to get enabled groups: %w", err)
	}

	for _, group := range groups {
		if !group.TitleEnabled {
			continue
		}
		if err := s.vigil.refreshTitle(group); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Int64("group_id", group.ID).Msg("title disabled")
		}
	}
	return nil
}

// MatchReminders announces the start of the match, and the hour before it,
// in every offset that reaches those hours now
func (s *scheduler) MatchReminders(ctx context.Context, now time.Time) error {
	return s.forEachMaster(ctx, "send match reminder", func(ctx context.Context, master *entity.Group) error {
		if !master.BroadcastStatus {
			return nil
		}
		return s.matchReminder(master, now)
	})
}

func (s *scheduler) matchReminder(master *entity.Group, now time.Time) error {
	views, err := s.vigil.ListParticipants(master.ID, "")
	if err != nil {
		return err
	}

	offsets := make([]contest.Offset, 0, len(views)+1)
	seen := make(map[contest.Offset]bool)
	for _, view := range views {
		offsets = append(offsets, view.Offset)
		seen[view.Offset] = true
	}
	if offset, err := contest.OffsetAt(s.vigil.engine.Zones(), master.Timezone, now); err == nil && !seen[offset] {
		offsets = append(offsets, offset)
	}

	var (
		starting []*entity.PartitionView
		soon     []contest.Offset
	)
	for _, offset := range offsets {
		local := now.In(offset.Location())
		if local.Minute() != 0 {
			continue
		}
		switch {
		case local.Hour() == master.Contest.StartHour:
			for _, view := range views {
				if view.Offset == offset {
					starting = append(starting, view)
				}
			}
		case (local.Hour()+1)%24 == master.Contest.StartHour:
			soon = append(soon, offset)
		}
	}

	if len(starting) > 0 {
		if err := s.post(master, slackmsg.FormatMatchStart(starting)); err != nil {
			return err
		}
	}
	if len(soon) > 0 {
		if err := s.post(master, slackmsg.FormatMatchSoon(soon)); err != nil {
			return err
		}
	}
	return nil
}

// HallStatus posts who is still in the hall
func (s *scheduler) HallStatus(ctx context.Context, _ time.Time) error {
	return s.forEachMaster(ctx, "send hall status", func(ctx context.Context, master *entity.Group) error {
		if !master.BroadcastStatus {
			return nil
		}

		views, err := s.vigil.ListParticipants(master.ID, "")
		if err != nil {
			return err
		}
		if len(views) == 0 {
			return nil
		}
		return s.post(master, slackmsg.FormatPartitions("Still in the hall", views))
	})
}

func (s *scheduler) post(group *entity.Group, text string) error {
	if _, _, err := s.vigil.slackClient.PostMessage(group.SlackChannelID, slack.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("failed to post message: %w", err)
	}
	return nil
}
