package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/request-tracker/internal/config"
	"github.com/spec-kit/request-tracker/internal/events"
)

// StatusPublisher fans status-change events out to external consumers.
type StatusPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// NotificationService forwards domain events to the log and publishes
// status changes on a Redis channel so dashboards can follow requests live.
type NotificationService struct {
	dispatcher events.Dispatcher
	publisher  StatusPublisher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, publisher StatusPublisher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRequestCreated, n.handleRequestCreated)
	n.dispatcher.Subscribe(events.EventRequestUpdated, n.handleRequestUpdated)
	n.dispatcher.Subscribe(events.EventRequestDeleted, n.handleRequestDeleted)
	n.dispatcher.Subscribe(events.EventRequestStatusChanged, n.handleStatusChanged)
}

func (n *NotificationService) handleRequestCreated(_ context.Context, event events.Event) error {
	n.logger.Info("RequestCreated", zap.Int64("request_id", event.RequestID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleRequestUpdated(_ context.Context, event events.Event) error {
	n.logger.Info("RequestUpdated", zap.Int64("request_id", event.RequestID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleRequestDeleted(_ context.Context, event events.Event) error {
	n.logger.Info("RequestDeleted", zap.Int64("request_id", event.RequestID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("RequestStatusChanged", zap.Int64("request_id", event.RequestID), zap.Any("payload", event.Payload))
	if n.publisher == nil || n.cfg.StatusChannel == "" {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("marshal status event", zap.Error(err))
		return err
	}
	if err := n.publisher.Publish(ctx, n.cfg.StatusChannel, body); err != nil {
		n.logger.Warn("publish status event", zap.Error(err), zap.Int64("request_id", event.RequestID))
		return err
	}
	return nil
}
