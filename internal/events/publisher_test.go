package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/diegoclair/vigil-bot/internal/domain/entity"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinnerMessage(t *testing.T) {
	event := entity.WinnerEvent{
		GroupID:        7,
		SlackChannelID: "C123456789",
		Date:           "2024-03-10",
		UTCOffset:      "+0800",
		Timezones:      []string{"Asia/Shanghai"},
		SlackUserID:    "U123456789",
		DisplayName:    "Night Owl",
		LastActive:     time.Date(2024, 3, 9, 21, 59, 0, 0, time.UTC),
	}

	msg, err := winnerMessage("vigil", event)
	require.NoError(t, err)

	assert.Equal(t, "vigil.winners.7", msg.Subject)
	assert.Equal(t, "7:2024-03-10:+0800", msg.Header.Get(nats.MsgIdHdr))

	var decoded entity.WinnerEvent
	require.NoError(t, json.Unmarshal(msg.Data, &decoded))
	assert.Equal(t, event.SlackUserID, decoded.SlackUserID)
	assert.True(t, event.LastActive.Equal(decoded.LastActive))
	assert.Equal(t, event.Timezones, decoded.Timezones)
}

func TestNopPublisher(t *testing.T) {
	p := NopPublisher{}
	assert.NoError(t, p.PublishWinner(context.Background(), entity.WinnerEvent{GroupID: 1}))
	p.Close()
}

func TestDefaultNATSConfig(t *testing.T) {
	cfg := DefaultNATSConfig()
	assert.Equal(t, nats.DefaultURL, cfg.URL)
	assert.Equal(t, "vigil.winners.3", WinnerSubject(cfg.SubjectPrefix, 3))
}
