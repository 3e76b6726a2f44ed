package order

import (
	"context"
	"io"
	"log"

	"digitalshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// Create inserts the order and its items in one transaction. Orders are
// write-once; there is no update path.
func (r *postgresRepo) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO orders (user_id, total_cents, payment_method, payment_status, billing_name, billing_email, billing_address, billing_city, billing_zip, billing_country)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id::text, created_at
`
	out := order
	if err := tx.QueryRow(ctx, q,
		order.UserID,
		order.TotalCents,
		order.PaymentMethod,
		order.PaymentStatus,
		order.BillingName,
		order.BillingEmail,
		order.BillingAddress,
		order.BillingCity,
		order.BillingZip,
		order.BillingCountry,
	).Scan(&out.ID, &out.CreatedAt); err != nil {
		r.logger.Printf("order repo: insert for user %s error=%v", order.UserID, err)
		return nil, err
	}

	for _, item := range order.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, product_id, title, unit_price_cents, quantity)
VALUES ($1, $2, $3, $4, $5)
`, out.ID, item.ProductID, item.Title, item.UnitPriceCents, item.Quantity); err != nil {
			r.logger.Printf("order repo: insert item %s error=%v", item.ProductID, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s user=%s total_cents=%d items=%d", out.ID, out.UserID, out.TotalCents, len(out.Items))
	return &out, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, total_cents, payment_method, payment_status, billing_name, billing_email, billing_address, billing_city, billing_zip, billing_country, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	return r.fetchOrders(ctx, q, userID)
}

func (r *postgresRepo) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	const q = `
SELECT id::text, user_id::text, total_cents, payment_method, payment_status, billing_name, billing_email, billing_address, billing_city, billing_zip, billing_country, created_at
FROM orders
ORDER BY created_at DESC
LIMIT $1
`
	return r.fetchOrders(ctx, q, limit)
}

func (r *postgresRepo) Totals(ctx context.Context) (int, int64, error) {
	var count int
	var revenue int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(total_cents), 0) FROM orders`).Scan(&count, &revenue)
	if err != nil {
		return 0, 0, err
	}
	return count, revenue, nil
}

func (r *postgresRepo) MonthlyTotals(ctx context.Context) ([]MonthlyTotal, error) {
	const q = `
SELECT date_trunc('month', created_at) AS month, COUNT(*), COALESCE(SUM(total_cents), 0)
FROM orders
GROUP BY month
ORDER BY month ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyTotal
	for rows.Next() {
		var m MonthlyTotal
		if err := rows.Scan(&m.Month, &m.Orders, &m.TotalCents); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *postgresRepo) fetchOrders(ctx context.Context, query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalCents, &o.PaymentMethod, &o.PaymentStatus, &o.BillingName, &o.BillingEmail, &o.BillingAddress, &o.BillingCity, &o.BillingZip, &o.BillingCountry, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.fetchItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *postgresRepo) fetchItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const q = `
SELECT product_id, title, unit_price_cents, quantity
FROM order_items
WHERE order_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Title, &item.UnitPriceCents, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
