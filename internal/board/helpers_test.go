package board

import (
	"context"
	"sync"

	"stockboard/internal/infra/persistence/memory"
	"stockboard/internal/storage"
)

// flakyStore wraps the memory backend with injectable failures.
type flakyStore struct {
	*memory.Store
	readErr  error
	writeErr error
	writes   int
}

func newFlaky() *flakyStore { return &flakyStore{Store: memory.NewStore()} }

func (f *flakyStore) Read(ctx context.Context, key string) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.Store.Read(ctx, key)
}

func (f *flakyStore) Write(ctx context.Context, key string, data []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes++
	return f.Store.Write(ctx, key, data)
}

var _ storage.Store = (*flakyStore)(nil)

type captureNotifier struct {
	mu  sync.Mutex
	got []Notification
}

func (c *captureNotifier) Notify(_ context.Context, n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, n)
}

func (c *captureNotifier) messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.got))
	for i, n := range c.got {
		out[i] = n.Message
	}
	return out
}

func (c *captureNotifier) last() Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.got) == 0 {
		return Notification{}
	}
	return c.got[len(c.got)-1]
}

type captureRenderer struct{ views []View }

func (c *captureRenderer) Render(_ context.Context, v View) { c.views = append(c.views, v) }

type fixture struct {
	persist *flakyStore
	notes   *captureNotifier
	renders *captureRenderer
	store   *Store
}

func newFixture(opts ...Option) fixture {
	f := fixture{persist: newFlaky(), notes: &captureNotifier{}, renders: &captureRenderer{}}
	opts = append([]Option{WithNotifier(f.notes), WithRenderer(f.renders)}, opts...)
	f.store = NewStore(f.persist, opts...)
	return f
}
