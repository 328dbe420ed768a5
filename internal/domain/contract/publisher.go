package contract

import (
	"context"

	"github.com/diegoclair/vigil-bot/internal/domain/entity"
)

// Publisher announces contest results to other systems
type Publisher interface {
	PublishWinner(ctx context.Context, event entity.WinnerEvent) error
	Close()
}
