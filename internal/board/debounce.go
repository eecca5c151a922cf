package board

import (
	"sync"
	"time"

	"stockboard/pkg/inventory"
)

// DefaultDebounce is the quiet period used for search-as-you-type.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer runs the most recent triggered func once no trigger has arrived
// for the wait period. Each Trigger replaces the pending one.
type Debouncer struct {
	mu    sync.Mutex
	wait  time.Duration
	timer *time.Timer
	gen   uint64
}

// NewDebouncer returns a debouncer; wait <= 0 selects DefaultDebounce.
func NewDebouncer(wait time.Duration) *Debouncer {
	if wait <= 0 {
		wait = DefaultDebounce
	}
	return &Debouncer{wait: wait}
}

// Wait reports the quiet period.
func (d *Debouncer) Wait() time.Duration { return d.wait }

func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	gen := d.gen
	d.timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		// A timer that fired while being replaced must not run.
		current := gen == d.gen
		if current {
			d.timer = nil
		}
		d.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Cancel drops the pending call, reporting whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	pending := d.timer != nil
	d.stopLocked()
	return pending
}

func (d *Debouncer) stopLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// SearchSession is the search box: typing is debounced, Enter runs at once.
type SearchSession struct {
	store    *Store
	debounce *Debouncer
	deliver  func(query string, results []inventory.SearchRecord)
}

// NewSearchSession delivers results for store searches to deliver.
func NewSearchSession(store *Store, wait time.Duration, deliver func(query string, results []inventory.SearchRecord)) *SearchSession {
	return &SearchSession{store: store, debounce: NewDebouncer(wait), deliver: deliver}
}

// Input records a keystroke; the search runs after the quiet period.
func (s *SearchSession) Input(query string) {
	s.debounce.Trigger(func() { s.run(query) })
}

// Submit cancels any pending search and runs query immediately.
func (s *SearchSession) Submit(query string) []inventory.SearchRecord {
	s.debounce.Cancel()
	return s.run(query)
}

// Close drops any pending search.
func (s *SearchSession) Close() { s.debounce.Cancel() }

func (s *SearchSession) run(query string) []inventory.SearchRecord {
	results := s.store.Search(query)
	if s.deliver != nil {
		s.deliver(query, results)
	}
	return results
}
