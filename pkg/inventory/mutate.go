package inventory

import (
	"fmt"
	"strconv"
	"strings"
)

// The mutators below never modify their input. Each validates first and
// returns either an error with the original state untouched or a new state.

// ValidateColumn checks that a zero-based column index addresses the board.
func ValidateColumn(column int) error {
	if column < 0 || column >= ColumnCount {
		return fmt.Errorf("%w: %d", ErrInvalidColumn, column+1)
	}
	return nil
}

// ParseColumnNumber converts user input "1".."5" to a zero-based index.
func ParseColumnNumber(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColumn, text)
	}
	if err := ValidateColumn(n - 1); err != nil {
		return 0, err
	}
	return n - 1, nil
}

// ParseQuantity converts interactive input into a quantity. Unlike the
// tolerant load path it rejects anything that is not a positive integer.
func ParseQuantity(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, text)
	}
	if n < MinQuantity {
		return 0, fmt.Errorf("%w: %d", ErrInvalidQuantity, n)
	}
	return n, nil
}

// ValidateItem trims an interactively entered item and rejects blank names and
// non-positive quantities.
func ValidateItem(it Item) (Item, error) {
	it.Name = strings.TrimSpace(it.Name)
	it.Description = strings.TrimSpace(it.Description)
	if it.Name == "" {
		return Item{}, ErrEmptyName
	}
	if it.Quantity < MinQuantity {
		return Item{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, it.Quantity)
	}
	return it, nil
}

func validateIndex(s State, column, index int) error {
	if err := ValidateColumn(column); err != nil {
		return err
	}
	if column >= len(s.Columns) || index < 0 || index >= len(s.Columns[column]) {
		return fmt.Errorf("%w: column %d position %d", ErrItemNotFound, column+1, index+1)
	}
	return nil
}

// ItemAt returns the item at a zero-based column and index.
func ItemAt(s State, column, index int) (Item, error) {
	if err := validateIndex(s, column, index); err != nil {
		return Item{}, err
	}
	return s.Columns[column][index], nil
}

// AddItem appends an item to a column.
func AddItem(s State, column int, it Item) (State, error) {
	if err := ValidateColumn(column); err != nil {
		return s, err
	}
	it, err := ValidateItem(it)
	if err != nil {
		return s, err
	}
	out := Normalize(s)
	out.Columns[column] = append(out.Columns[column], it)
	return out, nil
}

// EditItem replaces the item at column/index.
func EditItem(s State, column, index int, it Item) (State, error) {
	if err := validateIndex(s, column, index); err != nil {
		return s, err
	}
	it, err := ValidateItem(it)
	if err != nil {
		return s, err
	}
	out := s.Clone()
	out.Columns[column][index] = it
	return out, nil
}

// DeleteItem removes the item at column/index and returns it.
func DeleteItem(s State, column, index int) (State, Item, error) {
	if err := validateIndex(s, column, index); err != nil {
		return s, Item{}, err
	}
	out := s.Clone()
	removed := out.Columns[column][index]
	out.Columns[column] = append(out.Columns[column][:index], out.Columns[column][index+1:]...)
	return out, removed, nil
}

// MoveItem removes the item at column/index and appends it to target. Moving
// within the same column sends the item to the end of that column.
func MoveItem(s State, column, index, target int) (State, error) {
	if err := validateIndex(s, column, index); err != nil {
		return s, err
	}
	if err := ValidateColumn(target); err != nil {
		return s, err
	}
	out, removed, err := DeleteItem(s, column, index)
	if err != nil {
		return s, err
	}
	out.Columns[target] = append(out.Columns[target], removed)
	return out, nil
}

// RenameCategory sets the display name of a column.
func RenameCategory(s State, column int, name string) (State, error) {
	if err := ValidateColumn(column); err != nil {
		return s, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return s, ErrEmptyName
	}
	out := Normalize(s)
	out.Categories[column] = name
	return out, nil
}

// RenameInventory sets the board label.
func RenameInventory(s State, name string) (State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, ErrEmptyName
	}
	out := s.Clone()
	out.InventoryName = name
	return out, nil
}
