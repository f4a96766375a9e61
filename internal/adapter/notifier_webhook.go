// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/models"
)

// WebhookNotifier POSTs every event as JSON to a fixed URL.
type WebhookNotifier struct {
	client *utils.HTTPClient
	url    string

	logger *logger.Logger
}

// NewWebhookNotifier validates cfg.WebhookURL and configures the HTTP client
// with cfg.Timeout. An address without a scheme is treated as http.
func NewWebhookNotifier(cfg config.Notifier, log *logger.Logger) (*WebhookNotifier, error) {
	target, err := normalizeURL(cfg.WebhookURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWebhookURL, err)
	}

	return &WebhookNotifier{
		client: utils.NewHTTPClient(cfg.Timeout),
		url:    target,
		logger: log,
	}, nil
}

func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return u.String(), nil
}

// Notify implements [Notifier]. The receiver must answer 2xx; 4xx maps to
// [ErrWebhookRejected] and 5xx to [ErrWebhookUnavailable].
func (w *WebhookNotifier) Notify(ctx context.Context, event models.FormEvent) error {
	req := w.client.R().
		SetContext(ctx).
		SetHeader("X-Form-Event", event.Type).
		SetBody(event)
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		req.SetHeader("X-Trace-ID", traceID)
	}

	resp, err := req.Post(w.url)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "WebhookNotifier.Notify").
			Str("form_id", event.FormID).
			Msg("webhook request failed")
		return fmt.Errorf("webhook request: %w", err)
	}

	return mapHTTPError(resp)
}
