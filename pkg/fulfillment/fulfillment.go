// Package fulfillment implements the session-scoped ordering core
// behind the webhook: accumulating items per conversation session,
// confirming the order into persistence, and answering status queries.
package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"mealflow/pkg/order"
	"mealflow/pkg/session"
)

// Messages returned to the conversational agent. The wording is what
// the agent's flows were written against, so change with care.
const (
	msgClarify      = "Sorry I didn't understand. Can you please specify food items and quantities clearly?"
	msgNoOrder      = "I'm having trouble finding your order. Sorry! Can you place a new order please?"
	msgBackendError = "Sorry, I couldn't process your order due to a backend error. Please place a new order again."
)

// Service coordinates the session store and the order repository. All
// methods are safe for concurrent use; read-modify-write cycles on the
// same session id are serialized by a per-session lock.
type Service struct {
	sessions session.Store
	orders   order.Repository
	log      *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates the fulfillment service.
func New(sessions session.Store, orders order.Repository, log *zap.Logger) *Service {
	return &Service{
		sessions: sessions,
		orders:   orders,
		log:      log,
		locks:    make(map[string]*sync.Mutex),
	}
}

// sessionLock returns the mutex serializing operations on one session.
func (s *Service) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}

// AddToOrder merges the positional (item, quantity) pairs into the
// session's in-progress order, creating one on first use. Mismatched
// slot lengths and non-positive quantities leave stored state
// untouched and ask the caller to re-specify.
func (s *Service) AddToOrder(ctx context.Context, sessionID string, items []string, quantities []int) (string, error) {
	if len(items) != len(quantities) {
		return msgClarify, nil
	}
	for _, q := range quantities {
		if q < 1 {
			return msgClarify, nil
		}
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	current, _, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	merged := current.Merge(order.Zip(items, quantities))
	if err := s.sessions.Put(ctx, sessionID, merged); err != nil {
		return "", err
	}
	s.log.Info("order updated",
		zap.String("session_id", sessionID),
		zap.Int("distinct_items", len(merged)))
	return fmt.Sprintf("So far you have: %s. Do you need anything else?", merged.Summary()), nil
}

// RemoveFromOrder deletes the named items from the session's
// in-progress order. Items not in the order are reported back; the
// response names both the removed and the not-found items when both
// apply.
func (s *Service) RemoveFromOrder(ctx context.Context, sessionID string, items []string) (string, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	current, ok, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !ok {
		return msgNoOrder, nil
	}
	removed, missing := current.Remove(items)
	if err := s.sessions.Put(ctx, sessionID, current); err != nil {
		return "", err
	}
	s.log.Info("order items removed",
		zap.String("session_id", sessionID),
		zap.Strings("removed", removed),
		zap.Strings("not_found", missing))

	var b strings.Builder
	if len(removed) > 0 {
		fmt.Fprintf(&b, "Removed %s from your order!", strings.Join(removed, ", "))
	}
	if len(missing) > 0 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "Your current order does not have %s.", strings.Join(missing, ", "))
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	if len(current) == 0 {
		b.WriteString("Your order is empty!")
	} else {
		fmt.Fprintf(&b, "Here is what is left in your order: %s.", current.Summary())
	}
	return b.String(), nil
}

// CompleteOrder persists the session's in-progress order and reports
// the allocated order id and total. The in-progress order is dropped
// from the session store whether or not persistence succeeds; without
// a session there is nothing to persist and the repository is never
// called.
func (s *Service) CompleteOrder(ctx context.Context, sessionID string) (string, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	items, ok, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !ok {
		return msgNoOrder, nil
	}

	defer func() {
		if derr := s.sessions.Delete(ctx, sessionID); derr != nil {
			s.log.Error("drop session", zap.String("session_id", sessionID), zap.Error(derr))
		}
	}()

	orderID, err := s.orders.Create(ctx, items)
	if err != nil {
		s.log.Error("persist order", zap.String("session_id", sessionID), zap.Error(err))
		return msgBackendError, nil
	}
	total, err := s.orders.Total(ctx, orderID)
	if err != nil {
		return "", err
	}
	s.log.Info("order placed",
		zap.String("session_id", sessionID),
		zap.Int("order_id", orderID),
		zap.Float64("total", total))
	return fmt.Sprintf("Awesome. We have placed your order. Here is your order id # %d. Your order total is %s which you can pay at the time of delivery!",
		orderID, strconv.FormatFloat(total, 'f', -1, 64)), nil
}

// TrackOrder reports the tracking status of a persisted order.
func (s *Service) TrackOrder(ctx context.Context, orderID int) (string, error) {
	status, err := s.orders.Status(ctx, orderID)
	if errors.Is(err, order.ErrNotFound) {
		return fmt.Sprintf("No order found with order id: %d", orderID), nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("The order status for order id: %d is: %s", orderID, status), nil
}
