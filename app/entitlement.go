package app

import (
	"context"
	"log"
)

// Reconciler applies payment-provider lifecycle events to user records. The
// provider delivers at least once and out of order; every application is
// idempotent and the last event processed wins.
type Reconciler struct {
	store UserStore
}

func NewReconciler(store UserStore) *Reconciler {
	return &Reconciler{store: store}
}

// SubscriptionActivated marks the user pro and records both Stripe refs in
// one atomic update. An event for an unknown user is logged and dropped:
// activation cannot be retried without a valid linkage, and failing hard
// would wedge the whole event channel behind one malformed replay.
func (r *Reconciler) SubscriptionActivated(ctx context.Context, userID, customerRef, subscriptionRef string) error {
	applied, err := r.store.ActivateSubscription(ctx, userID, customerRef, subscriptionRef)
	if err != nil {
		return err
	}
	if !applied {
		log.Printf("entitlement: dropping activation for unknown user=%s sub=%s", userID, subscriptionRef)
	}
	return nil
}

// SubscriptionCancelled downgrades whichever record holds the subscription
// ref. No match means already cancelled or never activated; that is a no-op.
func (r *Reconciler) SubscriptionCancelled(ctx context.Context, subscriptionRef string) error {
	return r.store.CancelSubscription(ctx, subscriptionRef)
}
