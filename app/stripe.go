package app

import (
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"

	"github.com/rizalafandiv1-png/Website-Andikilz-Store/app/config"
)

// InitStripe wires the Stripe API key from the environment.
func InitStripe(cfg *config.Config) {
	stripe.Key = cfg.Stripe.SecretKey
}

// createSubscriptionCheckout starts a Stripe Checkout Session for the pro
// subscription. The user id rides along as the client reference so the
// completed-checkout webhook can join back to our record.
func createSubscriptionCheckout(cfg *config.Config, userID string) (string, error) {
	priceID := cfg.Stripe.PriceIDProMonthly
	appURL := strings.TrimRight(cfg.AppURL, "/")
	if priceID == "" || appURL == "" {
		return "", errors.New("billing not configured")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		ClientReferenceID: stripe.String(userID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(appURL + "/dashboard?success=true"),
		CancelURL:  stripe.String(appURL + "/dashboard?canceled=true"),
	}

	sess, err := session.New(params)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}
