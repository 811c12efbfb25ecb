package payment

import (
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// Gateway abstracts the payment provider so handlers can be exercised with a
// fake in tests.
type Gateway interface {
	CreateIntent(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	RetrieveIntent(id string) (*stripe.PaymentIntent, error)
}

// StripeGateway talks to the live Stripe API using the package-level key.
type StripeGateway struct{}

func (StripeGateway) CreateIntent(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.New(params)
}

func (StripeGateway) RetrieveIntent(id string) (*stripe.PaymentIntent, error) {
	return paymentintent.Get(id, nil)
}
