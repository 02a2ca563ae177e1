package memory

import (
	"context"
	"testing"

	"mealflow/pkg/order"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, "s1"); err != nil || ok {
		t.Fatalf("expected no order for fresh session, ok=%v err=%v", ok, err)
	}

	if err := s.Put(ctx, "s1", order.Items{"Pizza": 2}); err != nil {
		t.Fatalf("put: %v", err)
	}
	items, ok, err := s.Get(ctx, "s1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if items["Pizza"] != 2 {
		t.Fatalf("unexpected order: %v", items)
	}

	// Mutating the returned copy must not affect stored state.
	items["Pizza"] = 99
	again, _, _ := s.Get(ctx, "s1")
	if again["Pizza"] != 2 {
		t.Fatalf("store must hand out copies, got %v", again)
	}

	if err := s.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "s1"); ok {
		t.Fatal("expected order gone after delete")
	}
	if err := s.Delete(ctx, "s1"); err != nil {
		t.Fatalf("deleting an absent session must not error: %v", err)
	}
}
