package handler

import (
	"github.com/MKhiriev/task-manager/internal/config"
	"github.com/MKhiriev/task-manager/internal/handler/http"
	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg, logger),
	}, nil
}
