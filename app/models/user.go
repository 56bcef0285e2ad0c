// Package models defines user plan, subscription linkage and usage tracking fields.
package models

type Plan string

const (
	PlanFree Plan = "FREE"
	PlanPro  Plan = "PRO"
)

// User is one row per end-user identity. The identity provider assigns ID;
// Stripe refs stay null until a checkout webhook links them.
type User struct {
	ID                   string `db:"id" json:"id"`
	Email                string `db:"email" json:"email"`
	Plan                 Plan   `db:"plan" json:"plan"`
	StripeCustomerID     string `db:"stripe_customer_id" json:"-"`
	StripeSubscriptionID string `db:"stripe_subscription_id" json:"-"`
	RequestsCount        int    `db:"requests_count" json:"requests_count"`
	// LastRequestDate is a UTC calendar date ("2006-01-02"). RequestsCount is
	// meaningful only for the day it names; any other date means the counter
	// is logically zero.
	LastRequestDate string `db:"last_request_date" json:"last_request_date"`
}

// IsPro reports whether the user holds an active pro entitlement.
func (u User) IsPro() bool {
	return u.Plan == PlanPro
}
