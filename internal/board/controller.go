package board

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"stockboard/pkg/inventory"
)

// Prompter asks the user for input. ok is false when the user cancels.
type Prompter interface {
	RequestText(ctx context.Context, prompt, initial string) (answer string, ok bool, err error)
	RequestConfirmation(ctx context.Context, message string) (bool, error)
	RequestChoice(ctx context.Context, prompt string, options []string) (choice int, ok bool, err error)
}

// Item menu entries, in the order offered by ItemMenu.
const (
	ChoiceEdit = iota
	ChoiceDelete
	ChoiceMove
)

var itemMenuOptions = []string{"Edit", "Delete", "Move to another column"}

const (
	promptName        = "New name:"
	promptDescription = "New description:"
	promptQuantity    = "New quantity:"
	promptMoveTarget  = "Which column do you want to move it to? (1-5):"
	promptAddTarget   = "Which column do you want to add it to? (1-5):"
	promptCategory    = "Category name:"
	promptInventory   = "Inventory name:"
)

// Controller drives the store from user gestures, asking for details
// through a Prompter and leaving all state changes to the Store.
type Controller struct {
	store  *Store
	prompt Prompter
}

// NewController wires a controller to store and p.
func NewController(store *Store, p Prompter) *Controller {
	return &Controller{store: store, prompt: p}
}

// Store returns the underlying store.
func (c *Controller) Store() *Store { return c.store }

// ItemMenu offers edit, delete or move for the item at column/index.
// Cancelling does nothing.
func (c *Controller) ItemMenu(ctx context.Context, column, index int) error {
	it, err := c.store.Item(column, index)
	if err != nil {
		return c.store.Reject(ctx, err)
	}
	choice, ok, err := c.prompt.RequestChoice(ctx, it.Name, itemMenuOptions)
	if err != nil || !ok {
		return err
	}
	switch choice {
	case ChoiceEdit:
		return c.EditItem(ctx, column, index)
	case ChoiceDelete:
		return c.DeleteItem(ctx, column, index)
	case ChoiceMove:
		return c.MoveItem(ctx, column, index)
	default:
		return nil
	}
}

// askOrKeep prompts with current as the default; a cancelled or blank answer
// keeps current.
func (c *Controller) askOrKeep(ctx context.Context, prompt, current string) (string, error) {
	answer, ok, err := c.prompt.RequestText(ctx, prompt, current)
	if err != nil {
		return "", err
	}
	if !ok || strings.TrimSpace(answer) == "" {
		return current, nil
	}
	return answer, nil
}

// EditItem asks for a new name, description and quantity.
func (c *Controller) EditItem(ctx context.Context, column, index int) error {
	current, err := c.store.Item(column, index)
	if err != nil {
		return c.store.Reject(ctx, err)
	}
	name, err := c.askOrKeep(ctx, promptName, current.Name)
	if err != nil {
		return err
	}
	desc, err := c.askOrKeep(ctx, promptDescription, current.Description)
	if err != nil {
		return err
	}
	qtyText, err := c.askOrKeep(ctx, promptQuantity, strconv.Itoa(current.Quantity))
	if err != nil {
		return err
	}
	qty, err := inventory.ParseQuantity(qtyText)
	if err != nil {
		return c.store.Reject(ctx, err)
	}
	return c.store.EditItem(ctx, column, index, inventory.Item{Name: name, Description: desc, Quantity: qty})
}

// DeleteItem removes the item once the user confirms.
func (c *Controller) DeleteItem(ctx context.Context, column, index int) error {
	it, err := c.store.Item(column, index)
	if err != nil {
		return c.store.Reject(ctx, err)
	}
	yes, err := c.prompt.RequestConfirmation(ctx, fmt.Sprintf("Are you sure you want to delete %q?", it.Name))
	if err != nil || !yes {
		return err
	}
	return c.store.DeleteItem(ctx, column, index)
}

// askColumn reads a 1-based column number. Cancelling counts as an invalid answer.
func (c *Controller) askColumn(ctx context.Context, prompt string) (int, error) {
	answer, _, err := c.prompt.RequestText(ctx, prompt, "")
	if err != nil {
		return 0, err
	}
	column, err := inventory.ParseColumnNumber(answer)
	if err != nil {
		return 0, c.store.Reject(ctx, err)
	}
	return column, nil
}

// MoveItem asks for a target column and moves the item there.
func (c *Controller) MoveItem(ctx context.Context, column, index int) error {
	if _, err := c.store.Item(column, index); err != nil {
		return c.store.Reject(ctx, err)
	}
	target, err := c.askColumn(ctx, promptMoveTarget)
	if err != nil {
		return err
	}
	return c.store.MoveItem(ctx, column, index, target)
}

// AddItem adds it to *column, or asks for a column when column is nil (the
// search view has no column of its own). The item is validated before asking.
func (c *Controller) AddItem(ctx context.Context, column *int, it inventory.Item) error {
	if _, err := inventory.ValidateItem(it); err != nil {
		return c.store.Reject(ctx, err)
	}
	target := 0
	if column != nil {
		target = *column
	} else {
		var err error
		if target, err = c.askColumn(ctx, promptAddTarget); err != nil {
			return err
		}
	}
	return c.store.AddItem(ctx, target, it)
}

// RenameCategory asks for a new column header. Blank or cancelled is a no-op.
func (c *Controller) RenameCategory(ctx context.Context, column int) error {
	if err := inventory.ValidateColumn(column); err != nil {
		return c.store.Reject(ctx, err)
	}
	current := c.store.State().Categories[column]
	answer, ok, err := c.prompt.RequestText(ctx, promptCategory, current)
	if err != nil || !ok || strings.TrimSpace(answer) == "" {
		return err
	}
	return c.store.RenameCategory(ctx, column, answer)
}

// RenameInventory asks for a new board title. Blank or cancelled is a no-op.
func (c *Controller) RenameInventory(ctx context.Context) error {
	answer, ok, err := c.prompt.RequestText(ctx, promptInventory, c.store.State().InventoryName)
	if err != nil || !ok || strings.TrimSpace(answer) == "" {
		return err
	}
	return c.store.RenameInventory(ctx, answer)
}
