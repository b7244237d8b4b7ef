package utils

import (
	"errors"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidPhone = errors.New("invalid_phone")
	ErrEmailExists  = errors.New("email_exists")

	// Wrong email/password pair. One error for both so login cannot be used
	// to probe which emails have accounts.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// A referenced entity exists but is not owned by the caller. Controllers
	// must translate this to 404 so cross-owner probing cannot distinguish
	// "absent" from "someone else's".
	ErrNotOwned = errors.New("not_owned")

	// The unit already has a different active rental on it.
	ErrUnitUnavailable = errors.New("unit_unavailable")

	// Payments on a cancelled invoice are rejected.
	ErrInvoiceCancelled = errors.New("invoice_cancelled")

	ErrInvalidStatusTransition = errors.New("invalid_status_transition")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	// For external service failures (e.g., Stripe, SendGrid, Twilio)
	ErrExternalServiceFailure = errors.New("external_service_failure")
)
