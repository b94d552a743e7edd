package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	client "github.com/mamadbah2/kitchen/pkg/clients/whatsapp"
)

// LogSender writes alerts to the log. It is used when no messaging channel is configured.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender builds a LogSender.
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send logs the alert.
func (l *LogSender) Send(_ context.Context, alert Alert) error {
	l.logger.Info(alert.Title, zap.String("body", alert.Body))
	return nil
}

// WhatsAppSender delivers alerts as WhatsApp text messages to one recipient.
type WhatsAppSender struct {
	client    client.Client
	recipient string
	logger    *zap.Logger
}

// NewWhatsAppSender wires a sender over the Cloud API client.
func NewWhatsAppSender(c client.Client, recipient string, logger *zap.Logger) *WhatsAppSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppSender{client: c, recipient: recipient, logger: logger}
}

// Send posts the alert as "*title*\nbody".
func (w *WhatsAppSender) Send(ctx context.Context, alert Alert) error {
	resp, err := w.client.SendTextMessage(ctx, client.SendTextMessageRequest{
		To:   w.recipient,
		Body: fmt.Sprintf("*%s*\n%s", alert.Title, alert.Body),
	})
	if err != nil {
		return err
	}
	if len(resp.Messages) > 0 {
		w.logger.Debug("whatsapp alert accepted", zap.String("message_id", resp.Messages[0].ID))
	}
	return nil
}
