package board

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"stockboard/pkg/inventory"
)

type textAnswer struct {
	text string
	ok   bool
}

// scriptedPrompter replays canned answers and records every prompt.
type scriptedPrompter struct {
	texts    []textAnswer
	confirms []bool
	choices  []int
	err      error
	prompts  []string
}

func (p *scriptedPrompter) RequestText(_ context.Context, prompt, _ string) (string, bool, error) {
	p.prompts = append(p.prompts, prompt)
	if p.err != nil {
		return "", false, p.err
	}
	if len(p.texts) == 0 {
		return "", false, nil
	}
	a := p.texts[0]
	p.texts = p.texts[1:]
	return a.text, a.ok, nil
}

func (p *scriptedPrompter) RequestConfirmation(_ context.Context, message string) (bool, error) {
	p.prompts = append(p.prompts, message)
	if len(p.confirms) == 0 {
		return false, nil
	}
	yes := p.confirms[0]
	p.confirms = p.confirms[1:]
	return yes, nil
}

func (p *scriptedPrompter) RequestChoice(_ context.Context, prompt string, _ []string) (int, bool, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.choices) == 0 {
		return 0, false, nil
	}
	c := p.choices[0]
	p.choices = p.choices[1:]
	return c, true, nil
}

func answers(texts ...string) []textAnswer {
	out := make([]textAnswer, len(texts))
	for i, s := range texts {
		out[i] = textAnswer{text: s, ok: true}
	}
	return out
}

func seededController(t *testing.T, p *scriptedPrompter) (fixture, *Controller) {
	t.Helper()
	f := newFixture()
	if err := f.store.AddItem(context.Background(), 0, inventory.Item{Name: "Widget", Description: "blue", Quantity: 5}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return f, NewController(f.store, p)
}

func TestControllerEditKeepsBlankAndCancelledFields(t *testing.T) {
	p := &scriptedPrompter{texts: []textAnswer{{text: "Gadget", ok: true}, {ok: false}, {text: "  ", ok: true}}}
	f, c := seededController(t, p)
	if err := c.EditItem(context.Background(), 0, 0); err != nil {
		t.Fatalf("edit: %v", err)
	}
	want := inventory.Item{Name: "Gadget", Description: "blue", Quantity: 5}
	if got := f.store.State().Columns[0][0]; got != want {
		t.Fatalf("item = %#v want %#v", got, want)
	}
	if !reflect.DeepEqual(p.prompts, []string{promptName, promptDescription, promptQuantity}) {
		t.Fatalf("prompts = %v", p.prompts)
	}
	if f.notes.last().Message != MsgProductUpdated {
		t.Fatalf("notifications = %v", f.notes.messages())
	}
}

func TestControllerEditRejectsZeroQuantity(t *testing.T) {
	p := &scriptedPrompter{texts: answers("Widget", "blue", "0")}
	f, c := seededController(t, p)
	writes := f.persist.writes
	err := c.EditItem(context.Background(), 0, 0)
	if !errors.Is(err, inventory.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if f.store.State().Columns[0][0].Quantity != 5 || f.persist.writes != writes {
		t.Fatalf("rejected edit must leave the board alone")
	}
	if n := f.notes.last(); n.Level != LevelError || n.Message != MsgInvalidQuantity {
		t.Fatalf("notification = %+v", n)
	}
}

func TestControllerMoveToColumnSix(t *testing.T) {
	p := &scriptedPrompter{texts: answers("6")}
	f, c := seededController(t, p)
	if err := c.MoveItem(context.Background(), 0, 0); !errors.Is(err, inventory.ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	if len(f.store.State().Columns[0]) != 1 {
		t.Fatalf("item should stay in place")
	}
	if f.notes.last().Message != MsgInvalidColumn {
		t.Fatalf("notifications = %v", f.notes.messages())
	}
}

func TestControllerMoveCancelledCountsAsInvalid(t *testing.T) {
	p := &scriptedPrompter{texts: []textAnswer{{ok: false}}}
	f, c := seededController(t, p)
	if err := c.MoveItem(context.Background(), 0, 0); !errors.Is(err, inventory.ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	if len(f.store.State().Columns[0]) != 1 {
		t.Fatalf("item should stay in place")
	}
}

func TestControllerItemMenu(t *testing.T) {
	p := &scriptedPrompter{choices: []int{ChoiceMove}, texts: answers("3")}
	f, c := seededController(t, p)
	ctx := context.Background()
	if err := c.ItemMenu(ctx, 0, 0); err != nil {
		t.Fatalf("menu move: %v", err)
	}
	st := f.store.State()
	if len(st.Columns[0]) != 0 || len(st.Columns[2]) != 1 || p.prompts[0] != "Widget" {
		t.Fatalf("state = %#v prompts = %v", st.Columns, p.prompts)
	}

	p.choices = []int{ChoiceDelete}
	p.confirms = []bool{false}
	if err := c.ItemMenu(ctx, 2, 0); err != nil || len(f.store.State().Columns[2]) != 1 {
		t.Fatalf("declined delete should keep item: %v", err)
	}
	p.choices = []int{ChoiceDelete}
	p.confirms = []bool{true}
	if err := c.ItemMenu(ctx, 2, 0); err != nil || len(f.store.State().Columns[2]) != 0 {
		t.Fatalf("confirmed delete: %v", err)
	}
	if f.notes.last().Message != MsgProductDeleted {
		t.Fatalf("notifications = %v", f.notes.messages())
	}
	if last := p.prompts[len(p.prompts)-1]; last != `Are you sure you want to delete "Widget"?` {
		t.Fatalf("confirmation = %q", last)
	}

	if err := c.ItemMenu(ctx, 2, 0); !errors.Is(err, inventory.ErrItemNotFound) {
		t.Fatalf("menu on missing item: %v", err)
	}
}

func TestControllerItemMenuCancelIsNoop(t *testing.T) {
	p := &scriptedPrompter{}
	f, c := seededController(t, p)
	before := len(f.notes.messages())
	if err := c.ItemMenu(context.Background(), 0, 0); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if len(f.notes.messages()) != before {
		t.Fatalf("cancel should not notify")
	}
}

func TestControllerAddItem(t *testing.T) {
	ctx := context.Background()
	p := &scriptedPrompter{texts: answers("4")}
	f, c := seededController(t, p)

	if err := c.AddItem(ctx, nil, inventory.Item{Name: "Nut", Quantity: 2}); err != nil {
		t.Fatalf("add via search view: %v", err)
	}
	if got := f.store.State().Columns[3]; len(got) != 1 || got[0].Name != "Nut" {
		t.Fatalf("column 4 = %#v", got)
	}

	col := 1
	if err := c.AddItem(ctx, &col, inventory.Item{Name: "Bolt", Quantity: 1}); err != nil {
		t.Fatalf("add to column: %v", err)
	}
	if len(f.store.State().Columns[1]) != 1 {
		t.Fatalf("column 2 not updated")
	}

	prompts := len(p.prompts)
	if err := c.AddItem(ctx, nil, inventory.Item{Name: "", Quantity: 1}); !errors.Is(err, inventory.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if len(p.prompts) != prompts {
		t.Fatalf("invalid item must be rejected before asking for a column")
	}
	if f.notes.last().Message != MsgNameRequired {
		t.Fatalf("notifications = %v", f.notes.messages())
	}
}

func TestControllerRename(t *testing.T) {
	ctx := context.Background()
	p := &scriptedPrompter{texts: []textAnswer{{text: "Spare", ok: true}, {text: " ", ok: true}, {ok: false}, {text: "Garage", ok: true}}}
	f, c := seededController(t, p)

	if err := c.RenameCategory(ctx, 4); err != nil {
		t.Fatalf("rename category: %v", err)
	}
	writes := f.persist.writes
	if err := c.RenameCategory(ctx, 4); err != nil {
		t.Fatalf("blank rename: %v", err)
	}
	if err := c.RenameInventory(ctx); err != nil {
		t.Fatalf("cancelled rename: %v", err)
	}
	if f.persist.writes != writes {
		t.Fatalf("blank or cancelled renames must not persist")
	}
	if err := c.RenameInventory(ctx); err != nil {
		t.Fatalf("rename inventory: %v", err)
	}
	st := f.store.State()
	if st.Categories[4] != "Spare" || st.InventoryName != "Garage" {
		t.Fatalf("state = %#v", st)
	}
	if err := c.RenameCategory(ctx, 5); !errors.Is(err, inventory.ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
}

func TestControllerPrompterErrors(t *testing.T) {
	boom := errors.New("terminal closed")
	p := &scriptedPrompter{err: boom}
	f, c := seededController(t, p)
	ctx := context.Background()
	for name, run := range map[string]func() error{
		"edit":   func() error { return c.EditItem(ctx, 0, 0) },
		"move":   func() error { return c.MoveItem(ctx, 0, 0) },
		"rename": func() error { return c.RenameInventory(ctx) },
	} {
		if err := run(); !errors.Is(err, boom) {
			t.Fatalf("%s: expected prompter error, got %v", name, err)
		}
	}
	if got := f.store.State().Columns[0][0]; got.Name != "Widget" {
		t.Fatalf("state changed: %#v", got)
	}
	if c.Store() != f.store {
		t.Fatalf("Store accessor")
	}
}
