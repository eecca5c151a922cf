package board

import (
	"context"
	"errors"
	"time"

	"stockboard/pkg/inventory"
)

// Level classifies a notification for the surface showing it.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Messages shown to the user.
const (
	MsgChangesSaved    = "Changes saved"
	MsgSaveFailed      = "Error saving changes"
	MsgLoadFailed      = "Error loading saved data"
	MsgProductAdded    = "Product added"
	MsgProductUpdated  = "Product updated"
	MsgProductDeleted  = "Product deleted"
	MsgProductMoved    = "Product moved"
	MsgInvalidColumn   = "Invalid column number"
	MsgNameRequired    = "Product name is required"
	MsgInvalidQuantity = "Quantity must be a number greater than 0"
	MsgProductNotFound = "Product not found"
)

// Notification is a short, non-blocking message for the user.
type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier receives notifications. Implementations must not block. A Store
// delivers them after releasing its lock, so Notify may read the store.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// View is everything a display needs to redraw after a change.
type View struct {
	State   inventory.State
	Records []inventory.SearchRecord
	Totals  inventory.Totals
}

// Renderer redraws the board, search results and chart from a View. Like
// Notifier it is called outside the store lock.
type Renderer interface {
	Render(ctx context.Context, v View)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, v View)

func (f RendererFunc) Render(ctx context.Context, v View) { f(ctx, v) }

type discard struct{}

func (discard) Notify(context.Context, Notification) {}
func (discard) Render(context.Context, View) {}

// ValidationMessage maps a validation error to the message shown to the user.
func ValidationMessage(err error) string {
	switch {
	case errors.Is(err, inventory.ErrEmptyName):
		return MsgNameRequired
	case errors.Is(err, inventory.ErrInvalidQuantity):
		return MsgInvalidQuantity
	case errors.Is(err, inventory.ErrInvalidColumn):
		return MsgInvalidColumn
	case errors.Is(err, inventory.ErrItemNotFound):
		return MsgProductNotFound
	default:
		return err.Error()
	}
}

// IsValidation reports whether err is a rejected input rather than a
// persistence failure.
func IsValidation(err error) bool {
	return errors.Is(err, inventory.ErrEmptyName) ||
		errors.Is(err, inventory.ErrInvalidQuantity) ||
		errors.Is(err, inventory.ErrInvalidColumn) ||
		errors.Is(err, inventory.ErrItemNotFound)
}
