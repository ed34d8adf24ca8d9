package http

import (
	"github.com/MKhiriev/task-manager/internal/config"
	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/internal/service"
)

type Handler struct {
	services *service.Services
	cfg      config.Server

	// avatarMaxBytes bounds the multipart body accepted by the avatar upload.
	avatarMaxBytes int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		cfg:            cfg.Server,
		avatarMaxBytes: cfg.Avatar.MaxBytes,
		logger:         logger,
	}
}
