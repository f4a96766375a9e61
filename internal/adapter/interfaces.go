// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound adapters that deliver form events
// to realtime subscribers.
//
// Three transports are available: Redis PUBLISH ([NewRedisNotifier]), an
// HTTP webhook ([NewWebhookNotifier]) and a log-only notifier
// ([NewLogNotifier]). [NewNotifier] enables every transport the
// configuration names and fans events out to all of them.
//
// Webhook responses are mapped to the sentinel values in errors.go by
// mapHTTPError so callers can use [errors.Is] (e.g. [ErrWebhookRejected]).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-form-keeper/models"
)

// Notifier delivers one form event. Implementations must be safe for
// concurrent use and honour ctx cancellation.
type Notifier interface {
	// Notify sends event to the subscribers of the transport. A failed
	// delivery is reported as an error; the event is not retried.
	Notify(ctx context.Context, event models.FormEvent) error
}
