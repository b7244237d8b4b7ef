package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethodKind string

const (
	PaymentMethodCard PaymentMethodKind = "card"
	PaymentMethodBank PaymentMethodKind = "bank_account"
)

func ValidPaymentMethodKind(k PaymentMethodKind) bool {
	return k == PaymentMethodCard || k == PaymentMethodBank
}

// PaymentMethod is a stored way to charge a customer. StripePaymentMethodID
// holds the provider-side token when the method was vaulted with Stripe.
type PaymentMethod struct {
	ID         uuid.UUID         `json:"id"`
	CustomerID uuid.UUID         `json:"customer_id"`
	Kind       PaymentMethodKind `json:"kind"`
	Label      string            `json:"label"`
	Last4      string            `json:"last4"`
	IsDefault  bool              `json:"is_default"`

	StripePaymentMethodID *string `json:"stripe_payment_method_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
