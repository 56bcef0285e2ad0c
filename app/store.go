// Package app implements the storefront API: user records, the daily
// generation quota, Stripe entitlement reconciliation and the generation
// gateway.
package app

import (
	"context"
	"errors"

	"github.com/rizalafandiv1-png/Website-Andikilz-Store/app/models"
)

// ErrUserNotFound is returned when an id does not resolve to a user record.
var ErrUserNotFound = errors.New("user not found")

// UserStore is the single shared mutable resource of the service. Every
// method is atomic per record; implementations must never serialize
// unrelated users behind one another.
type UserStore interface {
	// EnsureUser creates the record on first sight and returns it. Re-syncs
	// of an existing id leave the stored row untouched.
	EnsureUser(ctx context.Context, id, email string) (models.User, error)

	// GetUser loads a record or reports ErrUserNotFound.
	GetUser(ctx context.Context, id string) (models.User, error)

	// RefreshUsage rolls the user's counter into the day window named by
	// today: when the stored last_request_date differs from today (past or
	// future), the counter is reset to zero and the new date persisted. The
	// stale-check and the reset happen atomically so two concurrent callers
	// cannot both observe a stale window.
	RefreshUsage(ctx context.Context, id, today string) (models.User, error)

	// AddUsage counts one successful generation: a single atomic increment
	// of requests_count plus a date stamp.
	AddUsage(ctx context.Context, id, today string) error

	// ActivateSubscription sets plan PRO together with both Stripe refs in
	// one statement. Returns false when the id is unknown.
	ActivateSubscription(ctx context.Context, id, customerRef, subscriptionRef string) (bool, error)

	// CancelSubscription sets plan FREE on the record whose subscription ref
	// matches. No match is a no-op, not an error; the stored refs are kept.
	CancelSubscription(ctx context.Context, subscriptionRef string) error
}

// OrderStore persists manual QRIS transfer orders.
type OrderStore interface {
	CreateOrder(ctx context.Context, order models.Order) error
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
}
