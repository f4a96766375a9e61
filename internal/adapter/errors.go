package adapter

import "errors"

var (
	ErrInvalidWebhookURL  = errors.New("invalid webhook url")
	ErrWebhookRejected    = errors.New("webhook rejected the event")
	ErrWebhookUnavailable = errors.New("webhook is unavailable")

	ErrPublishingEvent = errors.New("failed to publish event")
)
