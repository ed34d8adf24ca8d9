package adapter

import (
	"context"

	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/models"
)

type logNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier returns a [Notifier] that writes every mail to the log
// instead of delivering it.
func NewLogNotifier(logger *logger.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Send(ctx context.Context, mail models.Mail) error {
	if mail.To == "" {
		return ErrEmptyRecipient
	}

	logger.FromContext(ctx).Info().
		Str("to", mail.To).
		Str("subject", mail.Subject).
		Msg("mail delivery skipped, no mail API configured")
	return nil
}
