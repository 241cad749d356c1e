package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"tg-assist-be/internal/entity"
	"tg-assist-be/internal/service"
	"tg-assist-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRawMessage(payload string) *message.Message {
	return message.NewMessage(watermill.NewUUID(), []byte(payload))
}

type fakeSystemLogs struct {
	mu      sync.Mutex
	entries []*entity.SystemLog
}

func (f *fakeSystemLogs) Create(_ context.Context, entry *entity.SystemLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeSystemLogs) FindAll(_ context.Context, _, _ int) ([]*entity.SystemLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries, int64(len(f.entries)), nil
}

func (f *fakeSystemLogs) snapshot() []*entity.SystemLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.SystemLog, len(f.entries))
	copy(out, f.entries)
	return out
}

func TestAuditConsumesPublishedEvents(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	logs := &fakeSystemLogs{}
	audit := service.NewAuditService(pubSub, "BOT_EVENTS", logs, nil, nopLogger{})
	require.NoError(t, audit.Consume(context.Background()))

	publisher := service.NewPublisherService("BOT_EVENTS", pubSub)
	require.NoError(t, publisher.Publish(context.Background(), events.NewWorkflowCompleted(42, "/sendmsg")))
	require.NoError(t, publisher.Publish(context.Background(), events.NewWorkflowFailed(42, "/ask_ai", "model offline")))

	assert.Eventually(t, func() bool {
		return len(logs.snapshot()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	entries := logs.snapshot()
	assert.Equal(t, events.TypeWorkflowCompleted, entries[0].Message)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "bot", entries[0].Module)
	assert.Contains(t, string(entries[0].Details), "/sendmsg")

	// Failures are recorded at WARN
	assert.Equal(t, events.TypeWorkflowFailed, entries[1].Message)
	assert.Equal(t, "WARN", entries[1].Level)
	assert.Contains(t, string(entries[1].Details), "model offline")
}

func TestAuditSkipsInvalidPayloads(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	logs := &fakeSystemLogs{}
	audit := service.NewAuditService(pubSub, "BOT_EVENTS", logs, nil, nopLogger{})
	require.NoError(t, audit.Consume(context.Background()))

	require.NoError(t, pubSub.Publish("BOT_EVENTS", newRawMessage(`{not json`)))

	publisher := service.NewPublisherService("BOT_EVENTS", pubSub)
	require.NoError(t, publisher.Publish(context.Background(), events.NewFileStored(42, "AB12CD", "doc.txt")))

	// The bad payload is dropped, the good one still lands
	assert.Eventually(t, func() bool {
		return len(logs.snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, events.TypeFileStored, logs.snapshot()[0].Message)
}
