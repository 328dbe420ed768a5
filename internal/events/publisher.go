package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/diegoclair/vigil-bot/internal/domain/contract"
	"github.com/diegoclair/vigil-bot/internal/domain/entity"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

type NATSConfig struct {
	URL           string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
}

func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		SubjectPrefix: "vigil",
		MaxReconnects: -1, // Infinite
		ReconnectWait: 2 * time.Second,
	}
}

// NATSPublisher publishes contest events as JSON on core NATS subjects
type NATSPublisher struct {
	nc     *nats.Conn
	config NATSConfig
}

func NewNATSPublisher(cfg NATSConfig) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("vigil-bot"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &NATSPublisher{nc: nc, config: cfg}, nil
}

func (p *NATSPublisher) PublishWinner(ctx context.Context, event entity.WinnerEvent) error {
	msg, err := winnerMessage(p.config.SubjectPrefix, event)
	if err != nil {
		return err
	}

	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish winner event: %w", err)
	}
	if err := p.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush winner event: %w", err)
	}

	log.Debug().
		Str("subject", msg.Subject).
		Int64("group_id", event.GroupID).
		Msg("published winner event")

	return nil
}

func (p *NATSPublisher) Close() {
	if err := p.nc.Drain(); err != nil {
		log.Warn().Err(err).Msg("failed to drain NATS connection")
		p.nc.Close()
	}
}

// WinnerSubject is the subject winner events of a group are published on
func WinnerSubject(prefix string, groupID int64) string {
	return fmt.Sprintf("%s.winners.%d", prefix, groupID)
}

func winnerMessage(prefix string, event entity.WinnerEvent) (*nats.Msg, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal winner event: %w", err)
	}

	msg := nats.NewMsg(WinnerSubject(prefix, event.GroupID))
	msg.Data = data
	// lets JetStream drop duplicates if a stream captures the subject
	msg.Header.Set(nats.MsgIdHdr, fmt.Sprintf("%d:%s:%s", event.GroupID, event.Date, event.UTCOffset))

	return msg, nil
}

// NopPublisher drops every event, used when no NATS server is configured
type NopPublisher struct{}

func (NopPublisher) PublishWinner(context.Context, entity.WinnerEvent) error { return nil }

func (NopPublisher) Close() {}

var (
	_ contract.Publisher = (*NATSPublisher)(nil)
	_ contract.Publisher = NopPublisher{}
)
