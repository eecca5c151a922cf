package board

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"stockboard/pkg/inventory"
)

func TestDebouncerRunsOnlyLastTrigger(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32
	var last atomic.Int32
	done := make(chan struct{}, 1)
	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(n)
			done <- struct{}{}
		})
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("debounced call never ran")
	}
	time.Sleep(60 * time.Millisecond)
	if calls.Load() != 1 || last.Load() != 5 {
		t.Fatalf("calls = %d last = %d", calls.Load(), last.Load())
	}
	if d.Cancel() {
		t.Fatalf("nothing should be pending after the call ran")
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var ran atomic.Bool
	d.Trigger(func() { ran.Store(true) })
	if !d.Cancel() {
		t.Fatalf("expected a pending call")
	}
	time.Sleep(80 * time.Millisecond)
	if ran.Load() {
		t.Fatalf("cancelled call ran")
	}
}

func TestDebouncerDefaultWait(t *testing.T) {
	if NewDebouncer(0).Wait() != DefaultDebounce || NewDebouncer(-time.Second).Wait() != DefaultDebounce {
		t.Fatalf("non-positive wait should fall back to default")
	}
}

type delivery struct {
	query   string
	results []inventory.SearchRecord
}

func TestSearchSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_ = f.store.AddItem(ctx, 0, inventory.Item{Name: "widget-pro", Quantity: 12})
	_ = f.store.AddItem(ctx, 1, inventory.Item{Name: "Bolt", Description: "M6 zinc", Quantity: 3})

	var mu sync.Mutex
	var got []delivery
	delivered := make(chan struct{}, 4)
	s := NewSearchSession(f.store, 20*time.Millisecond, func(q string, r []inventory.SearchRecord) {
		mu.Lock()
		got = append(got, delivery{q, r})
		mu.Unlock()
		delivered <- struct{}{}
	})
	defer s.Close()

	s.Input("w")
	s.Input("wi")
	s.Input("WIDGET")
	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatalf("no debounced delivery")
	}
	mu.Lock()
	if len(got) != 1 || got[0].query != "WIDGET" || len(got[0].results) != 1 {
		t.Fatalf("deliveries = %#v", got)
	}
	mu.Unlock()

	s.Input("zzz")
	results := s.Submit("zinc")
	if len(results) != 1 || results[0].Name != "Bolt" {
		t.Fatalf("submit = %#v", results)
	}
	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	n, lastQuery := len(got), got[len(got)-1].query
	mu.Unlock()
	if n != 2 || lastQuery != "zinc" {
		t.Fatalf("submit should cancel the pending input: %d deliveries, last %q", n, lastQuery)
	}
	if all := s.Submit("  "); len(all) != 2 {
		t.Fatalf("blank submit should return everything: %#v", all)
	}
}
