package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/events"
)

// NotificationService turns domain events into gateway notifications: the
// requester learns when an engineer takes or finishes their request. Delivery
// itself is the gateway's job; this service tells it what to send.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
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
	n.dispatcher.Subscribe(events.EventRequestClaimed, n.handleRequestClaimed)
	n.dispatcher.Subscribe(events.EventRequestCompleted, n.handleRequestCompleted)
	n.dispatcher.Subscribe(events.EventRequestCanceled, n.handleRequestCanceled)
}

func (n *NotificationService) handleRequestCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("RequestCreated", zap.Int64("request_id", event.RequestID), zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) handleRequestClaimed(ctx context.Context, event events.Event) error {
	n.logger.Info("RequestClaimed", zap.Int64("request_id", event.RequestID), zap.Any("payload", event.Payload))
	n.sendGatewayStub(ctx, event)
	return nil
}

func (n *NotificationService) handleRequestCompleted(ctx context.Context, event events.Event) error {
	n.logger.Info("RequestCompleted", zap.Int64("request_id", event.RequestID), zap.Any("payload", event.Payload))
	n.sendGatewayStub(ctx, event)
	return nil
}

func (n *NotificationService) handleRequestCanceled(ctx context.Context, event events.Event) error {
	n.logger.Info("RequestCanceled", zap.Int64("request_id", event.RequestID), zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) sendGatewayStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.GatewayCallbackURL) == "" {
		return
	}
	n.logger.Debug("sendGatewayStub",
		zap.String("url", n.cfg.GatewayCallbackURL),
		zap.Int64("request_id", event.RequestID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("request_id", event.RequestID),
		zap.String("event_type", string(event.Type)))
}
