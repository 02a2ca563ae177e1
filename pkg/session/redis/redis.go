// Package redis implements a Redis-backed session store so in-progress
// orders survive process restarts when running more than one replica.
package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"mealflow/pkg/order"
)

const keyPrefix = "order:session:"

// Store provides a Redis implementation of session.Store.
type Store struct {
	client *redis.Client
}

// New creates a Redis-backed store.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get retrieves the session's in-progress order.
func (s *Store) Get(ctx context.Context, sessionID string) (order.Items, bool, error) {
	raw, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var items order.Items
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

// Put stores the in-progress order under the session id. Keys carry no
// expiry: abandoned sessions persist until completed, a known gap.
func (s *Store) Put(ctx context.Context, sessionID string, items order.Items) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+sessionID, raw, 0).Err()
}

// Delete removes the session's in-progress order.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, keyPrefix+sessionID).Err()
}
