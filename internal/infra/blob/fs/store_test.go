package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stockboard/internal/blob/core"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return s
}

func TestPutGetOverwrite(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	first, err := s.Put(ctx, "docs/stockingData", strings.NewReader(`{"a":1}`), core.PutOptions{ContentType: "application/json", Metadata: map[string]string{"k": "v"}})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if first.Size != 7 || first.ETag == "" || first.ContentType != "application/json" {
		t.Fatalf("unexpected info %+v", first)
	}
	if _, err := s.Put(ctx, "docs/stockingData", strings.NewReader("x"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	second, err := s.Put(ctx, "docs/stockingData", strings.NewReader(`{"a":2,"b":3}`), core.PutOptions{Overwrite: true})
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if second.ETag == first.ETag {
		t.Fatalf("etag should change on overwrite")
	}
	info, rc, err := s.Get(ctx, "docs/stockingData")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	b, _ := io.ReadAll(rc)
	if string(b) != `{"a":2,"b":3}` || info.Size != int64(len(b)) {
		t.Fatalf("get returned %q (%+v)", b, info)
	}
	prev, err := readSidecar(filepath.Join(s.Root(), "docs", "stockingData.meta"))
	if err != nil {
		t.Fatalf("sidecar: %v", err)
	}
	if prev.CreatedAt.After(prev.UpdatedAt) {
		t.Fatalf("created after updated: %+v", prev)
	}
}

func TestMissingKeys(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	if _, _, err := s.Get(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	if _, err := s.Head(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("head: expected ErrNotFound, got %v", err)
	}
	ok, err := s.Delete(ctx, "nope")
	if err != nil || ok {
		t.Fatalf("delete missing = %v %v", ok, err)
	}
}

func TestInvalidKeys(t *testing.T) {
	s := newStore(t)
	for _, key := range []string{"", "  ", "../escape", "/abs", "a/../../b", "x.meta"} {
		if _, err := s.Put(context.Background(), key, strings.NewReader("x"), core.PutOptions{}); !errors.Is(err, core.ErrInvalidKey) {
			t.Fatalf("key %q: expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	for _, k := range []string{"b/2", "a/1", "b/1"} {
		if _, err := s.Put(ctx, k, strings.NewReader(k), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", k, err)
		}
	}
	all, err := s.List(ctx, "")
	if err != nil || len(all) != 3 || all[0].Key != "a/1" || all[2].Key != "b/2" {
		t.Fatalf("list all = %+v %v", all, err)
	}
	bs, _ := s.List(ctx, "b/")
	if len(bs) != 2 {
		t.Fatalf("prefix list = %+v", bs)
	}
	ok, err := s.Delete(ctx, "b/1")
	if err != nil || !ok {
		t.Fatalf("delete = %v %v", ok, err)
	}
	if _, err := os.Stat(filepath.Join(s.Root(), "b", "1.meta")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("sidecar should be removed, stat err %v", err)
	}
}

func TestCorruptSidecar(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	if _, err := s.Put(ctx, "doc", strings.NewReader("x"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := os.WriteFile(filepath.Join(s.Root(), "doc.meta"), []byte("{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.Head(ctx, "doc"); err == nil || errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected corrupt sidecar error, got %v", err)
	}
	if _, err := s.List(ctx, ""); err == nil {
		t.Fatalf("expected list to surface corrupt sidecar")
	}
}

func TestSidecarMarshalFailure(t *testing.T) {
	old := marshalSidecar
	marshalSidecar = func(sidecar) ([]byte, error) { return nil, errors.New("boom") }
	defer func() { marshalSidecar = old }()
	s := newStore(t)
	if _, err := s.Put(context.Background(), "doc", strings.NewReader("x"), core.PutOptions{}); err == nil {
		t.Fatalf("expected marshal failure")
	}
}

func TestPutHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newStore(t).Put(ctx, "doc", strings.NewReader("x"), core.PutOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewDefaultsRoot(t *testing.T) {
	t.Chdir(t.TempDir())
	s, err := New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.Root() != DefaultRoot || s.Driver() != core.DriverFilesystem {
		t.Fatalf("root=%q driver=%q", s.Root(), s.Driver())
	}
}
