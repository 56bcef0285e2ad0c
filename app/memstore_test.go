package app

import (
	"context"
	"sync"

	"github.com/rizalafandiv1-png/Website-Andikilz-Store/app/models"
)

// memStore is an in-memory UserStore/OrderStore with the same per-record
// atomicity guarantees as the Postgres implementation.
type memStore struct {
	mu     sync.Mutex
	users  map[string]models.User
	orders []models.Order
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]models.User)}
}

func (s *memStore) seed(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

func (s *memStore) snapshot(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	return user, ok
}

func (s *memStore) EnsureUser(ctx context.Context, id, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	user := models.User{ID: id, Email: email, Plan: models.PlanFree}
	s.users[id] = user
	return user, nil
}

func (s *memStore) GetUser(ctx context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *memStore) RefreshUsage(ctx context.Context, id, today string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	if user.LastRequestDate != today {
		user.RequestsCount = 0
		user.LastRequestDate = today
		s.users[id] = user
	}
	return user, nil
}

func (s *memStore) AddUsage(ctx context.Context, id, today string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.RequestsCount++
	user.LastRequestDate = today
	s.users[id] = user
	return nil
}

func (s *memStore) ActivateSubscription(ctx context.Context, id, customerRef, subscriptionRef string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return false, nil
	}
	user.Plan = models.PlanPro
	user.StripeCustomerID = customerRef
	user.StripeSubscriptionID = subscriptionRef
	s.users[id] = user
	return true, nil
}

func (s *memStore) CancelSubscription(ctx context.Context, subscriptionRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, user := range s.users {
		if user.StripeSubscriptionID == subscriptionRef {
			user.Plan = models.PlanFree
			s.users[id] = user
		}
	}
	return nil
}

func (s *memStore) CreateOrder(ctx context.Context, order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, order)
	return nil
}

func (s *memStore) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}
