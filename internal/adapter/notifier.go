package adapter

import (
	"context"
	"errors"
	"io"

	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/models"
)

// MultiNotifier fans one event out to several notifiers. Every notifier is
// called even when an earlier one failed; the failures are joined.
type MultiNotifier struct {
	notifiers []Notifier
}

func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

func (m *MultiNotifier) Notify(ctx context.Context, event models.FormEvent) error {
	var errs []error
	for _, notifier := range m.notifiers {
		if err := notifier.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every notifier that holds resources.
func (m *MultiNotifier) Close() error {
	var errs []error
	for _, notifier := range m.notifiers {
		if closer, ok := notifier.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// NewNotifier builds the notifier described by cfg: the log notifier, plus
// Redis when RedisAddr is set, plus the webhook when WebhookURL is set.
func NewNotifier(ctx context.Context, cfg config.Notifier, log *logger.Logger) (*MultiNotifier, error) {
	notifiers := []Notifier{NewLogNotifier()}

	if cfg.RedisAddr != "" {
		redisNotifier, err := NewRedisNotifier(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, redisNotifier)
	}

	if cfg.WebhookURL != "" {
		webhook, err := NewWebhookNotifier(cfg, log)
		if err != nil {
			NewMultiNotifier(notifiers...).Close()
			return nil, err
		}
		notifiers = append(notifiers, webhook)
	}

	log.Info().Int("notifiers", len(notifiers)).Msg("form event notifiers ready")
	return NewMultiNotifier(notifiers...), nil
}
