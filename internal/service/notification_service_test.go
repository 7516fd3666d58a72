package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/request-tracker/internal/config"
	"github.com/spec-kit/request-tracker/internal/domain"
	"github.com/spec-kit/request-tracker/internal/events"
)

type capturedPublish struct {
	channel string
	payload []byte
}

type mockPublisher struct {
	published []capturedPublish
}

func (m *mockPublisher) Publish(_ context.Context, channel string, payload []byte) error {
	m.published = append(m.published, capturedPublish{channel: channel, payload: payload})
	return nil
}

func TestNotificationService_PublishesStatusChanges(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	publisher := &mockPublisher{}
	svc := NewNotificationService(dispatcher, publisher, zap.NewNop(), config.NotificationConfig{
		StatusChannel: "service-requests:status",
	})
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:        "evt-1",
		Type:      events.EventRequestStatusChanged,
		RequestID: 7,
		OwnerID:   42,
		Payload: events.RequestStatusChangedPayload{
			OldStatus: domain.StatusPending,
			NewStatus: domain.StatusAssigned,
		},
	})
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, "service-requests:status", publisher.published[0].channel)

	var decoded events.Event
	require.NoError(t, json.Unmarshal(publisher.published[0].payload, &decoded))
	assert.Equal(t, events.EventRequestStatusChanged, decoded.Type)
	assert.Equal(t, int64(7), decoded.RequestID)
}

func TestNotificationService_OnlyStatusChangesReachRedis(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	publisher := &mockPublisher{}
	svc := NewNotificationService(dispatcher, publisher, zap.NewNop(), config.NotificationConfig{
		StatusChannel: "service-requests:status",
	})
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventRequestCreated,
		RequestID: 7,
	})
	require.NoError(t, err)
	assert.Empty(t, publisher.published)
}
