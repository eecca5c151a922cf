package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/google/subcommands"

	"stockboard/internal/accounts"
	"stockboard/internal/board"
	"stockboard/internal/storage"
	"stockboard/pkg/inventory"
)

// app carries the process streams and logger into every subcommand.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

var openStorage = storage.Open

// session is an opened board plus its backing store.
type session struct {
	persist  storage.Store
	store    *board.Store
	accounts *accounts.Directory
}

func (s *session) Close() error { return storage.Close(s.persist) }

// fromArgs recovers the app passed to Commander.Execute.
func fromArgs(args []interface{}) *app {
	if len(args) > 0 {
		if a, ok := args[0].(*app); ok {
			return a
		}
	}
	return nil
}

// open connects the configured storage and loads the board, printing
// notifications to stderr.
func (a *app) open(ctx context.Context, opts ...board.Option) (*session, error) {
	persist, err := openStorage(ctx)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	base := []board.Option{
		board.WithLogger(a.logger),
		board.WithDocumentKey(storage.DocumentKey()),
		board.WithNotifier(board.NotifierFunc(a.printNotification)),
	}
	store := board.NewStore(persist, append(base, opts...)...)
	store.Load(ctx)
	dir := accounts.NewDirectory(persist, accounts.WithLogger(a.logger), accounts.WithUsersKey(storage.UsersKey()))
	return &session{persist: persist, store: store, accounts: dir}, nil
}

func (a *app) printNotification(_ context.Context, n board.Notification) {
	fmt.Fprintf(a.stderr, "[%s] %s\n", n.Level, n.Message)
}

// fail reports err and maps it to an exit status.
func (a *app) fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(a.stderr, err)
	return subcommands.ExitFailure
}

// withSession opens the board, runs fn and closes the store.
func withSession(ctx context.Context, args []interface{}, fn func(*app, *session) error) subcommands.ExitStatus {
	a := fromArgs(args)
	if a == nil {
		return subcommands.ExitFailure
	}
	s, err := a.open(ctx)
	if err != nil {
		return a.fail(err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			a.logger.Warn("close storage", "error", err)
		}
	}()
	if err := fn(a, s); err != nil {
		// Validation failures were already shown as notifications.
		if !board.IsValidation(err) && !accounts.IsValidation(err) {
			fmt.Fprintln(a.stderr, err)
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// columnIndex converts a 1-based column flag.
func columnIndex(n int) (int, error) {
	return inventory.ParseColumnNumber(strconv.Itoa(n))
}
