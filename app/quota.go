package app

import (
	"context"
	"time"
)

// FreeDailyLimit is the number of generations a free-tier user gets per UTC day.
const FreeDailyLimit = 3

const dateLayout = "2006-01-02"

// QuotaError signals that a free user has exhausted today's allowance. It is
// a business outcome, not a failure; handlers map it to an upgrade prompt.
type QuotaError struct {
	Limit int
	Used  int
}

func (e QuotaError) Error() string {
	return "daily quota exceeded"
}

// Decision is the outcome of evaluating a user's quota window.
type Decision struct {
	Allowed   bool
	Remaining int
}

// QuotaPolicy gates generation requests and maintains the rolling daily
// counter. Now is injectable for tests; nil means time.Now.
type QuotaPolicy struct {
	store UserStore
	now   func() time.Time
}

func NewQuotaPolicy(store UserStore, now func() time.Time) *QuotaPolicy {
	if now == nil {
		now = time.Now
	}
	return &QuotaPolicy{store: store, now: now}
}

func (p *QuotaPolicy) today() string {
	return p.now().UTC().Format(dateLayout)
}

// Evaluate rolls the user's day window and decides whether a generation may
// proceed. Rolling the window is a side effect of checking, not of using: a
// stale counter is reset and persisted here even when the request is later
// denied or the downstream call fails.
func (p *QuotaPolicy) Evaluate(ctx context.Context, userID string) (Decision, error) {
	user, err := p.store.RefreshUsage(ctx, userID, p.today())
	if err != nil {
		return Decision{}, err
	}

	if user.IsPro() {
		return Decision{Allowed: true, Remaining: -1}, nil
	}
	if user.RequestsCount >= FreeDailyLimit {
		return Decision{}, QuotaError{Limit: FreeDailyLimit, Used: user.RequestsCount}
	}
	return Decision{Allowed: true, Remaining: FreeDailyLimit - user.RequestsCount}, nil
}

// Commit counts one successful generation. Call it only after the downstream
// action succeeded so a failed generation never consumes quota.
func (p *QuotaPolicy) Commit(ctx context.Context, userID string) error {
	return p.store.AddUsage(ctx, userID, p.today())
}
