package app

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rizalafandiv1-png/Website-Andikilz-Store/app/models"
)

// PostgresStore implements UserStore and OrderStore on database/sql.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureUser(ctx context.Context, id, email string) (models.User, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, plan, requests_count, last_request_date)
		VALUES ($1, $2, $3, 0, '')
		ON CONFLICT (id) DO NOTHING;
	`, id, nullIfEmpty(email), models.PlanFree)
	if err != nil {
		return models.User{}, err
	}
	return s.GetUser(ctx, id)
}

func (s *PostgresStore) GetUser(ctx context.Context, id string) (models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, COALESCE(email, ''), plan,
		       COALESCE(stripe_customer_id, ''), COALESCE(stripe_subscription_id, ''),
		       requests_count, last_request_date
		FROM users
		WHERE id = $1;
	`, id))
}

// RefreshUsage resets a stale day window under a row lock. A future-dated
// window counts as stale too: the comparison is pure date equality, so clock
// skew resolves itself on the next real day.
func (s *PostgresStore) RefreshUsage(ctx context.Context, id, today string) (models.User, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return models.User{}, err
	}
	defer tx.Rollback()

	user, err := scanUser(tx.QueryRowContext(ctx, `
		SELECT id, COALESCE(email, ''), plan,
		       COALESCE(stripe_customer_id, ''), COALESCE(stripe_subscription_id, ''),
		       requests_count, last_request_date
		FROM users
		WHERE id = $1
		FOR UPDATE;
	`, id))
	if err != nil {
		return models.User{}, err
	}

	if user.LastRequestDate != today {
		user.RequestsCount = 0
		user.LastRequestDate = today
		_, err = tx.ExecContext(ctx, `
			UPDATE users
			SET requests_count = 0, last_request_date = $1
			WHERE id = $2;
		`, today, id)
		if err != nil {
			return models.User{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *PostgresStore) AddUsage(ctx context.Context, id, today string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET requests_count = requests_count + 1, last_request_date = $1
		WHERE id = $2;
	`, today, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PostgresStore) ActivateSubscription(ctx context.Context, id, customerRef, subscriptionRef string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET plan = $1, stripe_customer_id = $2, stripe_subscription_id = $3
		WHERE id = $4;
	`, models.PlanPro, customerRef, subscriptionRef, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *PostgresStore) CancelSubscription(ctx context.Context, subscriptionRef string) error {
	// Refs are intentionally left in place so the linkage stays auditable.
	_, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET plan = $1
		WHERE stripe_subscription_id = $2;
	`, models.PlanFree, subscriptionRef)
	return err
}

func (s *PostgresStore) CreateOrder(ctx context.Context, order models.Order) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, product_id, category_id, amount_usd, amount_idr, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`, order.ID, order.UserID, order.ProductID, order.CategoryID,
		order.AmountUSD, order.AmountIDR, order.Status, order.CreatedAt)
	return err
}

func (s *PostgresStore) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, product_id, category_id, amount_usd, amount_idr, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.ProductID, &o.CategoryID,
			&o.AmountUSD, &o.AmountIDR, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.Plan,
		&user.StripeCustomerID, &user.StripeSubscriptionID,
		&user.RequestsCount, &user.LastRequestDate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
