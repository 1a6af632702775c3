package mail

import (
	"context"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/observability"

	"go.uber.org/zap"
)

// LogSender writes mail to the log instead of delivering it. It is used when
// no SMTP host is configured.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: observability.Component(logger, "mail_log_sender")}
}

func (s *LogSender) Send(_ context.Context, m ports.Mail) error {
	s.logger.Info("mail", zap.String("to", m.To), zap.String("subject", m.Subject), zap.Int("body_bytes", len(m.Body)))
	return nil
}
