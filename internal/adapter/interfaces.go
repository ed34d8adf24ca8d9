// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides outbound integrations of the task-manager API.
//
// The primary abstraction is [Notifier], which decouples the service layer
// from the way transactional mails are delivered. The package ships an
// HTTP mail API implementation ([NewHTTPMailAdapter]) and a log-only
// implementation ([NewLogNotifier]) used when no mail API is configured.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/task-manager/internal/config"
	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/notifier_mock.go -package=mock

// Notifier delivers transactional mails such as the welcome and goodbye
// messages sent on sign-up and account deletion.
type Notifier interface {
	// Send delivers mail. Implementations must honour ctx cancellation and
	// return a wrapped sentinel error when the remote side rejects the mail.
	Send(ctx context.Context, mail models.Mail) error
}

// NewNotifier picks the HTTP mail adapter when a mail API URL is configured
// and falls back to the log notifier otherwise.
func NewNotifier(cfg config.Adapter, logger *logger.Logger) (Notifier, error) {
	if cfg.MailAPIURL == "" {
		logger.Warn().Msg("mail API URL is not configured, mails will only be logged")
		return NewLogNotifier(logger), nil
	}

	return NewHTTPMailAdapter(cfg, logger)
}
