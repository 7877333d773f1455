package domain

import (
	"errors"
	"strings"
)

// WebhookCategory is the kind of gateway event being reported.
type WebhookCategory string

const (
	WebhookCharge   WebhookCategory = "charge"
	WebhookTransfer WebhookCategory = "transfer"
)

// WebhookOutcome is the settlement result carried by the event.
type WebhookOutcome string

const (
	WebhookSuccess WebhookOutcome = "success"
	WebhookFailure WebhookOutcome = "failure"
)

// ErrUnknownWebhookEvent marks event categories this service does not handle.
var ErrUnknownWebhookEvent = errors.New("unknown webhook event")

// WebhookEvent is the canonical form of a gateway settlement callback.
// The loosely typed provider payload is normalized into this union at the
// HTTP boundary; the processor never sees raw provider fields.
type WebhookEvent struct {
	Category  WebhookCategory
	Outcome   WebhookOutcome
	Reference string
}

// ParseWebhookEvent maps a provider event name ("charge.success",
// "transfer.failed", ...) onto the canonical union. Any outcome other
// than "success" is treated as failure, matching gateway semantics where
// failed, reversed and abandoned all mean the money did not move.
func ParseWebhookEvent(event, reference string) (WebhookEvent, error) {
	category, outcome, found := strings.Cut(event, ".")

	e := WebhookEvent{Reference: reference}

	switch WebhookCategory(category) {
	case WebhookCharge:
		e.Category = WebhookCharge
	case WebhookTransfer:
		e.Category = WebhookTransfer
	default:
		return WebhookEvent{}, ErrUnknownWebhookEvent
	}

	if found && WebhookOutcome(outcome) == WebhookSuccess {
		e.Outcome = WebhookSuccess
	} else {
		e.Outcome = WebhookFailure
	}

	return e, nil
}
