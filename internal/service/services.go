package service

import (
	"github.com/MKhiriev/task-manager/internal/adapter"
	"github.com/MKhiriev/task-manager/internal/avatar"
	"github.com/MKhiriev/task-manager/internal/config"
	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/internal/store"
	"github.com/MKhiriev/task-manager/internal/workers"
)

type Services struct {
	SessionService SessionService
	UserService    UserService
	AvatarService  AvatarService
	TaskService    TaskService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, notifier adapter.Notifier, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	credentials := NewCredentialService(cfg.App.PasswordHashCost)
	sessions := NewSessionService(storages.Users, storages.Tokens, cfg.App, logger)

	return &Services{
		SessionService: sessions,
		UserService:    NewUserService(storages.Users, sessions, credentials, notifier, logger),
		AvatarService: NewAvatarService(
			storages.Users,
			avatar.NewNormalizer(cfg.Avatar),
			workers.NewPool(cfg.Avatar.Concurrency),
			logger,
		),
		TaskService:    NewTaskValidationService().Wrap(NewTaskService(storages.Tasks, logger)),
		AppInfoService: appInfoService,
	}, nil
}
