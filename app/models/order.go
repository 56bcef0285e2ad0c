package models

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
)

// Order is a manual QRIS transfer awaiting human verification. AmountIDR is a
// display amount converted at a fixed rate; the merchant settles in IDR.
type Order struct {
	ID         string      `db:"id" json:"id"`
	UserID     string      `db:"user_id" json:"user_id"`
	ProductID  string      `db:"product_id" json:"product_id"`
	CategoryID string      `db:"category_id" json:"category_id"`
	AmountUSD  float64     `db:"amount_usd" json:"amount_usd"`
	AmountIDR  int64       `db:"amount_idr" json:"amount_idr"`
	Status     OrderStatus `db:"status" json:"status"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
}
