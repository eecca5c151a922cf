// Package board holds the canonical inventory state, persists it on every
// change and pushes derived views to the display and notification surfaces.
package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"stockboard/internal/observability"
	"stockboard/internal/storage"
	"stockboard/pkg/inventory"
)

// Operation names reported to metrics and traces.
const (
	OpLoad            = "load"
	OpSave            = "save"
	OpAddItem         = "add_item"
	OpEditItem        = "edit_item"
	OpDeleteItem      = "delete_item"
	OpMoveItem        = "move_item"
	OpRenameCategory  = "rename_category"
	OpRenameInventory = "rename_inventory"
)

// Store owns the canonical state. All mutations go through it and are
// serialised by mu, which also guards state.
type Store struct {
	mu       sync.Mutex
	persist  storage.Store
	key      string
	state    inventory.State
	notifier Notifier
	renderer Renderer
	logger   observability.Logger
	metrics  observability.MetricsRecorder
	tracer   observability.Tracer
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the structured logger.
func WithLogger(l observability.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsRecorder sets the metrics sink.
func WithMetricsRecorder(m observability.MetricsRecorder) Option {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracer sets the tracer.
func WithTracer(t observability.Tracer) Option {
	return func(s *Store) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithNotifier sets where user-facing messages go.
func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithRenderer sets the display refreshed after load and every save.
func WithRenderer(r Renderer) Option {
	return func(s *Store) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithDocumentKey overrides the persistence key (default stockingData).
func WithDocumentKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock overrides the notification timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns a store over persist holding the default state until Load.
func NewStore(persist storage.Store, opts ...Option) *Store {
	s := &Store{
		persist:  persist,
		key:      storage.DefaultDocumentKey,
		state:    inventory.DefaultState(),
		notifier: discard{},
		renderer: discard{},
		logger:   observability.NopLogger(),
		metrics:  observability.NopMetrics(),
		tracer:   observability.NopTracer(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DocumentKey reports the persistence key.
func (s *Store) DocumentKey() string { return s.key }

func (s *Store) notify(ctx context.Context, level Level, msg string) {
	s.notifier.Notify(ctx, s.notification(level, msg))
}

func (s *Store) notification(level Level, msg string) Notification {
	return Notification{Level: level, Message: msg, At: s.now().UTC()}
}

// outbox collects the notifications and views produced while mu is held.
// They are delivered in order once mu is released, so callbacks may read
// the store.
type outbox []func(ctx context.Context)

func (o *outbox) notify(s *Store, level Level, msg string) {
	n := s.notification(level, msg)
	*o = append(*o, func(ctx context.Context) { s.notifier.Notify(ctx, n) })
}

func (o *outbox) render(s *Store) {
	v := View{
		State:   s.state.Clone(),
		Records: inventory.Project(s.state),
		Totals:  inventory.Aggregate(s.state),
	}
	*o = append(*o, func(ctx context.Context) { s.renderer.Render(ctx, v) })
}

func (o outbox) flush(ctx context.Context) {
	for _, deliver := range o {
		deliver(ctx)
	}
}

// Load replaces the held state with the persisted document. It never fails:
// a missing document yields defaults silently, an unreadable or malformed one
// yields defaults and an error notification.
func (s *Store) Load(ctx context.Context) inventory.State {
	var out outbox
	s.mu.Lock()
	err := observability.Instrument(ctx, s.tracer, s.metrics, OpLoad, func(ctx context.Context) error {
		data, err := s.persist.Read(ctx, s.key)
		if errors.Is(err, storage.ErrNotFound) {
			s.state = inventory.DefaultState()
			return nil
		}
		if err != nil {
			s.state = inventory.DefaultState()
			return fmt.Errorf("read %s: %w", s.key, err)
		}
		state, err := inventory.Parse(data)
		s.state = state
		return err
	})
	if err != nil {
		s.logger.Warn("board load failed, using defaults", "key", s.key, "driver", s.persist.Driver(), "error", err)
		out.notify(s, LevelError, MsgLoadFailed)
	} else {
		s.logger.Debug("board loaded", "key", s.key, "items", s.state.ItemCount())
	}
	out.render(s)
	loaded := s.state.Clone()
	s.mu.Unlock()
	out.flush(ctx)
	return loaded
}

// Save writes the held state and refreshes the display.
func (s *Store) Save(ctx context.Context) error {
	var out outbox
	s.mu.Lock()
	err := s.save(ctx, &out)
	if err == nil {
		out.notify(s, LevelSuccess, MsgChangesSaved)
	}
	s.mu.Unlock()
	out.flush(ctx)
	return err
}

// save persists and queues a render. The caller holds mu. On failure the
// state stays in memory and the user is told; there is no retry.
func (s *Store) save(ctx context.Context, out *outbox) error {
	err := observability.Instrument(ctx, s.tracer, s.metrics, OpSave, func(ctx context.Context) error {
		data, err := json.Marshal(s.state)
		if err != nil {
			return err
		}
		return s.persist.Write(ctx, s.key, data)
	})
	out.render(s)
	if err != nil {
		s.logger.Error("board save failed", "key", s.key, "driver", s.persist.Driver(), "error", err)
		out.notify(s, LevelError, MsgSaveFailed)
		return fmt.Errorf("save board: %w", err)
	}
	s.logger.Debug("board saved", "key", s.key)
	return nil
}

// mutate applies fn to the held state, persists the result and notifies msg.
// A rejected change leaves the state untouched.
func (s *Store) mutate(ctx context.Context, op, msg string, fn func(inventory.State) (inventory.State, error)) error {
	var out outbox
	s.mu.Lock()
	err := observability.Instrument(ctx, s.tracer, s.metrics, op, func(ctx context.Context) error {
		next, err := fn(s.state)
		if err != nil {
			s.logger.Info("board change rejected", "operation", op, "error", err)
			out.notify(s, LevelError, ValidationMessage(err))
			return err
		}
		s.state = next
		if err := s.save(ctx, &out); err != nil {
			return err
		}
		out.notify(s, LevelSuccess, msg)
		return nil
	})
	s.mu.Unlock()
	out.flush(ctx)
	return err
}

// AddItem appends it to the zero-based column.
func (s *Store) AddItem(ctx context.Context, column int, it inventory.Item) error {
	return s.mutate(ctx, OpAddItem, MsgProductAdded, func(st inventory.State) (inventory.State, error) {
		return inventory.AddItem(st, column, it)
	})
}

// EditItem replaces the item at column/index.
func (s *Store) EditItem(ctx context.Context, column, index int, it inventory.Item) error {
	return s.mutate(ctx, OpEditItem, MsgProductUpdated, func(st inventory.State) (inventory.State, error) {
		return inventory.EditItem(st, column, index, it)
	})
}

// DeleteItem removes the item at column/index.
func (s *Store) DeleteItem(ctx context.Context, column, index int) error {
	return s.mutate(ctx, OpDeleteItem, MsgProductDeleted, func(st inventory.State) (inventory.State, error) {
		next, _, err := inventory.DeleteItem(st, column, index)
		return next, err
	})
}

// MoveItem moves the item at column/index to the end of target.
func (s *Store) MoveItem(ctx context.Context, column, index, target int) error {
	return s.mutate(ctx, OpMoveItem, MsgProductMoved, func(st inventory.State) (inventory.State, error) {
		return inventory.MoveItem(st, column, index, target)
	})
}

// RenameCategory sets the header of a column.
func (s *Store) RenameCategory(ctx context.Context, column int, name string) error {
	return s.mutate(ctx, OpRenameCategory, MsgChangesSaved, func(st inventory.State) (inventory.State, error) {
		return inventory.RenameCategory(st, column, name)
	})
}

// RenameInventory sets the board title.
func (s *Store) RenameInventory(ctx context.Context, name string) error {
	return s.mutate(ctx, OpRenameInventory, MsgChangesSaved, func(st inventory.State) (inventory.State, error) {
		return inventory.RenameInventory(st, name)
	})
}

// State returns a copy of the held state.
func (s *Store) State() inventory.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Item returns the item at column/index.
func (s *Store) Item(column, index int) (inventory.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return inventory.ItemAt(s.state, column, index)
}

func (s *Store) Totals() inventory.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return inventory.Aggregate(s.state)
}

func (s *Store) Records() []inventory.SearchRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return inventory.Project(s.state)
}

// Search filters the current projection by query.
func (s *Store) Search(query string) []inventory.SearchRecord {
	return inventory.Search(s.Records(), query)
}

// Reject reports a validation failure that happened before reaching a mutation,
// such as an unparsable column number typed into a prompt.
func (s *Store) Reject(ctx context.Context, err error) error {
	s.notify(ctx, LevelError, ValidationMessage(err))
	return err
}
