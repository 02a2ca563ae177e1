// Package session tracks the in-progress order of each ongoing
// ordering conversation.
package session

import (
	"context"

	"mealflow/pkg/order"
)

// Store defines behavior for keeping at most one in-progress order per
// session id. Implementations must be safe for concurrent use; callers
// performing a read-modify-write cycle across Get and Put serialize it
// per session themselves.
type Store interface {
	// Get returns the session's in-progress order and whether one exists.
	Get(ctx context.Context, sessionID string) (order.Items, bool, error)

	// Put stores the in-progress order, replacing any existing one.
	Put(ctx context.Context, sessionID string, items order.Items) error

	// Delete removes the session's in-progress order. Deleting an
	// absent session is not an error.
	Delete(ctx context.Context, sessionID string) error
}
