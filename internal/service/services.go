package service

import (
	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/store"
	"github.com/MKhiriev/go-form-keeper/models"
)

type Services struct {
	AppInfoService    AppInfoService
	FormService       FormService
	SubmissionService SubmissionService
	ExportService     ExportService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, build models.AppBuildInfo, cleaner FileCleaner, notifier Notifier, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AppInfoService: appInfoService,
		FormService: NewFormService(
			storages.FormStorage,
			storages.SubmissionStorage,
			storages.FormVersionStorage,
			cleaner,
			notifier,
			logger,
		),
		SubmissionService: NewSubmissionService(
			storages.FormStorage,
			storages.SubmissionStorage,
			storages.UploadStorage,
			cleaner,
			logger,
		),
		ExportService: NewExportService(storages.FormStorage, storages.SubmissionStorage, logger),
	}, nil
}
