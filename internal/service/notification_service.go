package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/attendance-service/internal/config"
	"github.com/spec-kit/attendance-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
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
	n.dispatcher.Subscribe(events.EventEmployeeCheckedIn, n.handleCheckedIn)
	n.dispatcher.Subscribe(events.EventEmployeeCheckedOut, n.handleCheckedOut)
	n.dispatcher.Subscribe(events.EventQRTokenIssued, n.handleQRTokenIssued)
}

func (n *NotificationService) handleCheckedIn(ctx context.Context, event events.Event) error {
	n.logger.Info("EmployeeCheckedIn", zap.String("employee_id", event.EmployeeID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleCheckedOut(ctx context.Context, event events.Event) error {
	n.logger.Info("EmployeeCheckedOut", zap.String("employee_id", event.EmployeeID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleQRTokenIssued(ctx context.Context, event events.Event) error {
	n.logger.Info("QRTokenIssued", zap.String("employee_id", event.EmployeeID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("employee_id", event.EmployeeID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("employee_id", event.EmployeeID),
		zap.String("event_type", string(event.Type)))
}
