package inventory

import "errors"

var (
	// ErrMalformedDocument is returned by Parse when the persisted bytes are not JSON.
	ErrMalformedDocument = errors.New("inventory: malformed document")
	// ErrEmptyName rejects items, categories and boards without a name.
	ErrEmptyName = errors.New("inventory: name is required")
	// ErrInvalidQuantity rejects quantities that are not positive integers.
	ErrInvalidQuantity = errors.New("inventory: quantity must be greater than 0")
	// ErrInvalidColumn rejects column numbers outside 1-5.
	ErrInvalidColumn = errors.New("inventory: invalid column number")
	// ErrItemNotFound is returned when an item index does not exist in its column.
	ErrItemNotFound = errors.New("inventory: item not found")
)
