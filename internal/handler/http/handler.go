package http

import (
	"time"

	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	maxUploadSize  int64
	requestTimeout time.Duration
	// uploadsDir is served under uploadsURL when uploads are kept on local disk.
	uploadsDir string
	uploadsURL string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	h := &Handler{
		services:       services,
		maxUploadSize:  cfg.App.MaxUploadSize,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}

	if cfg.Storage.Uploads.Backend == config.UploadsBackendLocal {
		h.uploadsDir = cfg.Storage.Uploads.Dir
		h.uploadsURL = cfg.Storage.Uploads.BaseURL
	}

	logger.Info().Msg("http handler created")
	return h
}
