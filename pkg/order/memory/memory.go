// Package memory implements an in-memory order repository. It backs
// tests and local runs without a database.
package memory

import (
	"context"
	"errors"
	"sync"

	"mealflow/pkg/order"
)

// Repository provides an in-memory implementation of order.Repository.
type Repository struct {
	mu     sync.Mutex
	nextID int
	lines  map[int][]order.LineItem
	status map[int]string
	prices map[string]float64

	createCalls int
	failCreate  bool
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{
		lines:  make(map[int][]order.LineItem),
		status: make(map[int]string),
		prices: make(map[string]float64),
	}
}

// SetPrice registers a catalog price used when computing totals. Items
// without a price contribute 0, mirroring the Postgres join.
func (r *Repository) SetPrice(item string, price float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prices[item] = price
}

// FailCreates makes every subsequent Create fail without writing.
func (r *Repository) FailCreates() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failCreate = true
}

// Create allocates the next order id and stores one line item per
// entry along with the initial tracking status.
func (r *Repository) Create(ctx context.Context, items order.Items) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.failCreate {
		return 0, errors.New("create order: injected failure")
	}
	r.nextID++
	id := r.nextID
	for item, qty := range items {
		r.lines[id] = append(r.lines[id], order.LineItem{OrderID: id, Item: item, Quantity: qty})
	}
	r.status[id] = order.StatusInProgress
	return id, nil
}

// Total sums quantity times catalog price over the order's line items.
func (r *Repository) Total(ctx context.Context, orderID int) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	for _, li := range r.lines[orderID] {
		total += float64(li.Quantity) * r.prices[li.Item]
	}
	return total, nil
}

// Status reports the order's tracking status.
func (r *Repository) Status(ctx context.Context, orderID int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.status[orderID]
	if !ok {
		return "", order.ErrNotFound
	}
	return s, nil
}

// Lines returns the persisted line items for an order.
func (r *Repository) Lines(orderID int) []order.LineItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]order.LineItem(nil), r.lines[orderID]...)
}

// CreateCalls reports how many times Create was invoked, including
// failed attempts.
func (r *Repository) CreateCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createCalls
}
