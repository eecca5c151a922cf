package httpapi

import (
	"context"
	"sync"

	"stockboard/internal/board"
)

// LatestNotification keeps the most recent board notification so a polling
// client can show it as a toast. It forwards to Next when set.
type LatestNotification struct {
	mu   sync.Mutex
	last *board.Notification
	seq  uint64
	Next board.Notifier
}

func (l *LatestNotification) Notify(ctx context.Context, n board.Notification) {
	l.mu.Lock()
	l.last = &n
	l.seq++
	l.mu.Unlock()
	if l.Next != nil {
		l.Next.Notify(ctx, n)
	}
}

// Latest returns the last notification and its sequence number.
func (l *LatestNotification) Latest() (board.Notification, uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.last == nil {
		return board.Notification{}, 0, false
	}
	return *l.last, l.seq, true
}
