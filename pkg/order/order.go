// Package order defines the food-order domain: the in-progress order a
// session accumulates before confirmation, and the repository that
// persists confirmed orders.
package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// StatusInProgress is the tracking status assigned to a freshly
// persisted order. Later transitions happen outside this service.
const StatusInProgress = "in progress"

// Items is an in-progress order: food item name to quantity.
type Items map[string]int

// Zip pairs item names with quantities positionally. A name repeated in
// the same request overwrites its earlier quantity.
func Zip(names []string, quantities []int) Items {
	items := make(Items, len(names))
	for i, name := range names {
		items[name] = quantities[i]
	}
	return items
}

// Merge overlays other on top of i and returns the result. Quantities
// in other win for shared names; items only in i are preserved. A nil
// receiver is treated as an empty order.
func (i Items) Merge(other Items) Items {
	merged := make(Items, len(i)+len(other))
	for name, qty := range i {
		merged[name] = qty
	}
	for name, qty := range other {
		merged[name] = qty
	}
	return merged
}

// Remove deletes each named item's entry entirely and partitions the
// names into those that were present and those that were not. Removal
// is all-or-nothing per name; there is no partial-quantity decrement.
func (i Items) Remove(names []string) (removed, missing []string) {
	for _, name := range names {
		if _, ok := i[name]; ok {
			removed = append(removed, name)
			delete(i, name)
		} else {
			missing = append(missing, name)
		}
	}
	return removed, missing
}

// Clone returns an independent copy of the order.
func (i Items) Clone() Items {
	out := make(Items, len(i))
	for name, qty := range i {
		out[name] = qty
	}
	return out
}

// Summary renders the order as "2 Pizza, 1 Pasta". Items are sorted by
// name so the message is deterministic.
func (i Items) Summary() string {
	names := make([]string, 0, len(i))
	for name := range i {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for n, name := range names {
		parts[n] = fmt.Sprintf("%d %s", i[name], name)
	}
	return strings.Join(parts, ", ")
}

// LineItem is one persisted row of a confirmed order.
type LineItem struct {
	OrderID  int    `json:"order_id"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// Repository defines behavior for persisting confirmed orders.
type Repository interface {
	// Create persists the order as one line item per entry plus the
	// initial "in progress" tracking status, and returns the allocated
	// order id. The write is all-or-nothing: a failed Create leaves no
	// partial line items behind.
	Create(ctx context.Context, items Items) (int, error)

	// Total reports the order's total price.
	Total(ctx context.Context, orderID int) (float64, error)

	// Status reports the order's tracking status, or ErrNotFound when
	// no such order exists.
	Status(ctx context.Context, orderID int) (string, error)
}

// ErrNotFound indicates the requested order does not exist.
var ErrNotFound = errors.New("order not found")
