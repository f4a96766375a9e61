package adapter

import (
	"context"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/models"
)

// LogNotifier writes events to the request logger. It is always enabled so
// form changes leave a trace even without a realtime transport.
type LogNotifier struct {
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (l *LogNotifier) Notify(ctx context.Context, event models.FormEvent) error {
	logger.FromContext(ctx).Info().
		Str("event", event.Type).
		Str("form_id", event.FormID).
		Str("status", string(event.Status)).
		Str("title", event.Title).
		Time("occurred_at", event.OccurredAt).
		Msg("form event")
	return nil
}
