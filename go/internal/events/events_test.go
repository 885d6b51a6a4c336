package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	event := NewEvent(TypePromotionExecuted, "league-1", at, map[string]int{"moves": 2})
	require.NotEmpty(t, event.ID)

	msg, err := buildMessage("league", event)
	require.NoError(t, err)

	assert.Equal(t, "league.promotion.executed", msg.Subject)
	assert.Equal(t, event.ID, msg.Header.Get("Event-ID"))
	assert.Equal(t, "league-1", msg.Header.Get("League-ID"))
	assert.Equal(t, TypePromotionExecuted, msg.Header.Get("Event-Type"))

	var env map[string]any
	require.NoError(t, json.Unmarshal(msg.Data, &env))
	assert.Equal(t, event.ID, env["eventId"])
	assert.Equal(t, "2024-05-01T12:00:00Z", env["timestamp"])
	assert.Equal(t, map[string]any{"moves": float64(2)}, env["payload"])
}

func TestBuildMessage_UnencodablePayload(t *testing.T) {
	_, err := buildMessage("league", NewEvent("x", "l", time.Now(), make(chan int)))
	assert.Error(t, err)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}

func TestStreamConfigEqual(t *testing.T) {
	p := &JetStreamPublisher{config: DefaultJetStreamConfig()}
	a := p.streamConfig()
	b := p.streamConfig()
	assert.True(t, streamConfigEqual(a, b))

	b.Subjects = []string{"other.>"}
	assert.False(t, streamConfigEqual(a, b))

	c := p.streamConfig()
	c.MaxAge = time.Hour
	assert.False(t, streamConfigEqual(a, c))

	assert.Equal(t, jetstream.FileStorage, a.Storage)
	assert.Equal(t, []string{"league.>"}, a.Subjects)
}
