package fulfillment

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mealflow/pkg/order"
	ordermem "mealflow/pkg/order/memory"
	sessionmem "mealflow/pkg/session/memory"
)

func newService() (*Service, *sessionmem.Store, *ordermem.Repository) {
	sessions := sessionmem.New()
	repo := ordermem.New()
	return New(sessions, repo, zap.NewNop()), sessions, repo
}

func TestAddToOrderCreatesOrder(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newService()

	msg, err := svc.AddToOrder(ctx, "s1", []string{"Pizza", "Pasta"}, []int{2, 1})
	require.NoError(t, err)
	assert.Contains(t, msg, "2 Pizza")
	assert.Contains(t, msg, "1 Pasta")
	assert.Contains(t, msg, "Do you need anything else?")

	items, ok, err := sessions.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, order.Items{"Pizza": 2, "Pasta": 1}, items)
}

func TestAddToOrderMergesAndOverwrites(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newService()

	_, err := svc.AddToOrder(ctx, "s1", []string{"Pizza", "Pasta"}, []int{2, 1})
	require.NoError(t, err)
	_, err = svc.AddToOrder(ctx, "s1", []string{"Pizza", "Soda"}, []int{5, 3})
	require.NoError(t, err)

	items, _, err := sessions.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, order.Items{"Pizza": 5, "Pasta": 1, "Soda": 3}, items)
}

func TestAddToOrderMismatchedLengths(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newService()

	msg, err := svc.AddToOrder(ctx, "s1", []string{"Pizza", "Pasta"}, []int{2})
	require.NoError(t, err)
	assert.Contains(t, msg, "specify food items and quantities clearly")

	_, ok, err := sessions.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok, "mismatched lengths must not mutate stored state")
}

func TestAddToOrderRejectsNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newService()

	msg, err := svc.AddToOrder(ctx, "s1", []string{"Pizza"}, []int{0})
	require.NoError(t, err)
	assert.Contains(t, msg, "specify food items and quantities clearly")

	_, ok, _ := sessions.Get(ctx, "s1")
	assert.False(t, ok)
}

func TestAddToOrderDuplicateNamesInOneRequest(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newService()

	_, err := svc.AddToOrder(ctx, "s1", []string{"Pizza", "Pizza"}, []int{2, 4})
	require.NoError(t, err)

	items, _, _ := sessions.Get(ctx, "s1")
	assert.Equal(t, order.Items{"Pizza": 4}, items, "later duplicate wins")
}

func TestRemoveFromOrderUnknownSession(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService()

	msg, err := svc.RemoveFromOrder(ctx, "nope", []string{"Pizza"})
	require.NoError(t, err)
	assert.Contains(t, msg, "place a new order")
}

func TestRemoveFromOrderNotPresentItem(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newService()
	require.NoError(t, sessions.Put(ctx, "s1", order.Items{"Pizza": 2}))

	msg, err := svc.RemoveFromOrder(ctx, "s1", []string{"Soda"})
	require.NoError(t, err)
	assert.Contains(t, msg, "does not have Soda")

	items, _, _ := sessions.Get(ctx, "s1")
	assert.Equal(t, order.Items{"Pizza": 2}, items, "order unchanged for absent item")
}

// Pins the deliberate fix of the clause-overwrite bug: when items were
// both removed and not found, the response names both.
func TestRemoveFromOrderRemovedAndMissingClausesBothPresent(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newService()
	require.NoError(t, sessions.Put(ctx, "s1", order.Items{"Pizza": 2, "Pasta": 1}))

	msg, err := svc.RemoveFromOrder(ctx, "s1", []string{"Pasta", "Soda"})
	require.NoError(t, err)
	assert.Contains(t, msg, "Removed Pasta")
	assert.Contains(t, msg, "does not have Soda")
	assert.Contains(t, msg, "Here is what is left in your order: 2 Pizza")

	items, _, _ := sessions.Get(ctx, "s1")
	assert.Equal(t, order.Items{"Pizza": 2}, items)
}

func TestRemoveFromOrderEmptiesOrder(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newService()
	require.NoError(t, sessions.Put(ctx, "s1", order.Items{"Pizza": 2}))

	msg, err := svc.RemoveFromOrder(ctx, "s1", []string{"Pizza"})
	require.NoError(t, err)
	assert.Contains(t, msg, "Your order is empty!")
}

func TestCompleteOrderUnknownSessionNeverCallsPersistence(t *testing.T) {
	ctx := context.Background()
	svc, _, repo := newService()

	msg, err := svc.CompleteOrder(ctx, "nope")
	require.NoError(t, err)
	assert.Contains(t, msg, "place a new order")
	assert.Zero(t, repo.CreateCalls())
}

func TestCompleteOrderClearsSessionOnPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	svc, sessions, repo := newService()
	repo.FailCreates()
	require.NoError(t, sessions.Put(ctx, "s1", order.Items{"Pizza": 2}))

	msg, err := svc.CompleteOrder(ctx, "s1")
	require.NoError(t, err)
	assert.Contains(t, msg, "backend error")

	_, ok, _ := sessions.Get(ctx, "s1")
	assert.False(t, ok, "session must be cleared even when persistence fails")
}

func TestCompleteOrderSuccess(t *testing.T) {
	ctx := context.Background()
	svc, sessions, repo := newService()
	repo.SetPrice("Pizza", 10.5)
	require.NoError(t, sessions.Put(ctx, "s1", order.Items{"Pizza": 2}))

	msg, err := svc.CompleteOrder(ctx, "s1")
	require.NoError(t, err)
	assert.Contains(t, msg, "order id # 1")
	assert.Contains(t, msg, "Your order total is 21")

	lines := repo.Lines(1)
	require.Len(t, lines, 1)
	assert.Equal(t, order.LineItem{OrderID: 1, Item: "Pizza", Quantity: 2}, lines[0])

	_, ok, _ := sessions.Get(ctx, "s1")
	assert.False(t, ok, "in-progress order must be gone after completion")
}

func TestTrackOrder(t *testing.T) {
	ctx := context.Background()
	svc, _, repo := newService()
	id, err := repo.Create(ctx, order.Items{"Pizza": 2})
	require.NoError(t, err)

	msg, err := svc.TrackOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("The order status for order id: %d is: in progress", id), msg)

	msg, err = svc.TrackOrder(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, "No order found with order id: 999", msg)
}

// Concurrent adds to one session must not lose updates: every item
// submitted by any goroutine ends up in the final order.
func TestConcurrentAddsSameSession(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newService()

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.AddToOrder(ctx, "s1", []string{fmt.Sprintf("Item-%d", i)}, []int{1})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	items, ok, err := sessions.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, items, n)
}

func TestEndToEndOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, sessions, repo := newService()
	repo.SetPrice("Pizza", 8)

	msg, err := svc.AddToOrder(ctx, "s1", []string{"Pizza", "Pasta"}, []int{2, 1})
	require.NoError(t, err)
	assert.Contains(t, msg, "2 Pizza")
	assert.Contains(t, msg, "1 Pasta")

	msg, err = svc.RemoveFromOrder(ctx, "s1", []string{"Pasta", "Soda"})
	require.NoError(t, err)
	assert.Contains(t, msg, "Removed Pasta")
	assert.Contains(t, msg, "does not have Soda")
	items, _, _ := sessions.Get(ctx, "s1")
	assert.Equal(t, order.Items{"Pizza": 2}, items)

	msg, err = svc.CompleteOrder(ctx, "s1")
	require.NoError(t, err)
	assert.Contains(t, msg, "order id # 1")
	assert.Contains(t, msg, "Your order total is 16")
	require.Len(t, repo.Lines(1), 1)
	_, ok, _ := sessions.Get(ctx, "s1")
	assert.False(t, ok)

	msg, err = svc.TrackOrder(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, msg, "in progress")
}
