// Package postgres implements the order repository on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"

	"mealflow/pkg/order"
)

// Schema creates the tables the repository relies on. Order ids are
// allocated inside the Create transaction; food_items is the price
// catalog joined when computing totals.
const Schema = `
CREATE TABLE IF NOT EXISTS order_items (
	order_id INT NOT NULL,
	item     TEXT NOT NULL,
	quantity INT NOT NULL
);
CREATE TABLE IF NOT EXISTS order_tracking (
	order_id INT PRIMARY KEY,
	status   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS food_items (
	name  TEXT PRIMARY KEY,
	price NUMERIC NOT NULL
);`

// Repository persists confirmed orders in PostgreSQL.
type Repository struct {
	db *sql.DB
}

// New creates a PostgreSQL repository.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create writes the order inside a single transaction: id allocation,
// one row per line item, and the initial tracking status. A failure at
// any step rolls everything back so no orphaned line items remain.
func (r *Repository) Create(ctx context.Context, items order.Items) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(order_id),0)+1 FROM order_items").Scan(&id); err != nil {
		return 0, err
	}
	for item, qty := range items {
		if _, err := tx.ExecContext(ctx, "INSERT INTO order_items (order_id,item,quantity) VALUES ($1,$2,$3)", id, item, qty); err != nil {
			return 0, err
		}
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO order_tracking (order_id,status) VALUES ($1,$2)", id, order.StatusInProgress); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Total sums quantity times catalog price over the order's line items.
// Items missing from the catalog contribute 0.
func (r *Repository) Total(ctx context.Context, orderID int) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(oi.quantity * fi.price), 0)
		 FROM order_items oi
		 LEFT JOIN food_items fi ON fi.name = oi.item
		 WHERE oi.order_id = $1`, orderID).Scan(&total)
	return total, err
}

// Status retrieves the order's tracking status.
func (r *Repository) Status(ctx context.Context, orderID int) (string, error) {
	var status string
	err := r.db.QueryRowContext(ctx, "SELECT status FROM order_tracking WHERE order_id=$1", orderID).Scan(&status)
	if err == sql.ErrNoRows {
		return "", order.ErrNotFound
	}
	return status, err
}
