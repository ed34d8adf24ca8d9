package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/task-manager/internal/config"
	"github.com/MKhiriev/task-manager/internal/logger"
)

type appInfoService struct {
	appVersion string
}

// NewAppInfoService fails with ErrVersionIsNotSpecified when cfg carries no
// version, so a misconfigured build never serves an empty /version.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Debug().Str("version", version).Msg("app info service created")
	return &appInfoService{appVersion: version}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.appVersion
}
