package service

import (
	"github.com/diegoclair/vigil-bot/internal/domain/contest"
	"github.com/diegoclair/vigil-bot/internal/domain/contract"
	"github.com/jonboulle/clockwork"
)

// GroupDefaults is applied to newly set up groups
type GroupDefaults struct {
	Timezone        string
	TitleTemplate   string
	BroadcastStatus bool
	BroadcastWinner bool
	Contest         contest.Config
}

type Options struct {
	// Admins are the Slack user ids allowed to change group settings. An
	// empty list lets everyone in.
	Admins      []string
	Defaults    GroupDefaults
	TickSpec    string
	TickWorkers int
	Clock       clockwork.Clock
}

type Instance struct {
	Vigil     *vigilService
	Scheduler *scheduler
}

func NewInstance(dm contract.DataManager, slackClient contract.SlackClient, publisher contract.Publisher, opts Options) *Instance {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	vigilService := newVigil(dm, slackClient, opts)

	return &Instance{
		Vigil:     vigilService,
		Scheduler: newScheduler(vigilService, publisher, opts),
	}
}
