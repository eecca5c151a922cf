package inventory

import (
	"errors"
	"reflect"
	"testing"
)

func TestAddItemValidation(t *testing.T) {
	base := DefaultState()
	if _, err := AddItem(base, 0, Item{Name: "  ", Quantity: 1}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := AddItem(base, 0, Item{Name: "a", Quantity: 0}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := AddItem(base, 5, Item{Name: "a", Quantity: 1}); !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	next, err := AddItem(base, 2, Item{Name: " Saw ", Description: " sharp ", Quantity: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(base.Columns[2]) != 0 {
		t.Fatalf("input state mutated")
	}
	if got := next.Columns[2]; len(got) != 1 || got[0] != (Item{Name: "Saw", Description: "sharp", Quantity: 2}) {
		t.Fatalf("column 2 = %#v", got)
	}
}

func TestEditItemRejectsZeroQuantity(t *testing.T) {
	base, _ := AddItem(DefaultState(), 0, Item{Name: "Widget", Quantity: 5})
	got, err := EditItem(base, 0, 0, Item{Name: "Widget", Quantity: 0})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if !reflect.DeepEqual(got, base) || base.Columns[0][0].Quantity != 5 {
		t.Fatalf("rejected edit must not mutate")
	}
	if _, err := EditItem(base, 0, 3, Item{Name: "x", Quantity: 1}); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	edited, err := EditItem(base, 0, 0, Item{Name: "Gadget", Quantity: 9})
	if err != nil || edited.Columns[0][0].Name != "Gadget" || base.Columns[0][0].Name != "Widget" {
		t.Fatalf("edit failed: %v %#v", err, edited.Columns[0])
	}
}

func TestDeleteItem(t *testing.T) {
	s := DefaultState()
	s.Columns[1] = []Item{{Name: "a", Quantity: 1}, {Name: "b", Quantity: 1}, {Name: "c", Quantity: 1}}
	next, removed, err := DeleteItem(s, 1, 1)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed.Name != "b" {
		t.Fatalf("removed %q", removed.Name)
	}
	if len(next.Columns[1]) != 2 || next.Columns[1][1].Name != "c" || len(s.Columns[1]) != 3 {
		t.Fatalf("delete result %#v / input %#v", next.Columns[1], s.Columns[1])
	}
	if _, _, err := DeleteItem(s, 1, -1); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestMoveItem(t *testing.T) {
	s := DefaultState()
	s.Columns[0] = []Item{{Name: "a", Quantity: 1}, {Name: "b", Quantity: 2}}
	s.Columns[3] = []Item{{Name: "z", Quantity: 1}}

	next, err := MoveItem(s, 0, 0, 3)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if len(next.Columns[0]) != 1 || next.Columns[0][0].Name != "b" {
		t.Fatalf("source = %#v", next.Columns[0])
	}
	if len(next.Columns[3]) != 2 || next.Columns[3][1].Name != "a" {
		t.Fatalf("destination = %#v", next.Columns[3])
	}
	if next.ItemCount() != s.ItemCount() {
		t.Fatalf("move must not duplicate or drop items")
	}

	same, err := MoveItem(s, 0, 0, 0)
	if err != nil || same.Columns[0][0].Name != "b" || same.Columns[0][1].Name != "a" {
		t.Fatalf("same-column move should append at end: %v %#v", err, same.Columns[0])
	}
}

func TestMoveItemInvalidTarget(t *testing.T) {
	s := DefaultState()
	s.Columns[0] = []Item{{Name: "a", Quantity: 1}}
	got, err := MoveItem(s, 0, 0, 5)
	if !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	if len(got.Columns[0]) != 1 || got.Columns[0][0].Name != "a" {
		t.Fatalf("source changed on invalid move: %#v", got.Columns[0])
	}
}

func TestRename(t *testing.T) {
	s := DefaultState()
	if _, err := RenameCategory(s, 0, " "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := RenameCategory(s, -1, "x"); !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	next, err := RenameCategory(s, 4, " Spare ")
	if err != nil || next.Categories[4] != "Spare" || s.Categories[4] != "Category 5" {
		t.Fatalf("rename category: %v %v", err, next.Categories)
	}
	named, err := RenameInventory(s, " Garage ")
	if err != nil || named.InventoryName != "Garage" {
		t.Fatalf("rename inventory: %v %q", err, named.InventoryName)
	}
	if _, err := RenameInventory(s, ""); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestParseInput(t *testing.T) {
	if col, err := ParseColumnNumber(" 3 "); err != nil || col != 2 {
		t.Fatalf("ParseColumnNumber = %d %v", col, err)
	}
	for _, in := range []string{"0", "6", "x", ""} {
		if _, err := ParseColumnNumber(in); !errors.Is(err, ErrInvalidColumn) {
			t.Fatalf("ParseColumnNumber(%q) err = %v", in, err)
		}
	}
	if q, err := ParseQuantity("4"); err != nil || q != 4 {
		t.Fatalf("ParseQuantity = %d %v", q, err)
	}
	for _, in := range []string{"0", "-2", "2.5", "abc"} {
		if _, err := ParseQuantity(in); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("ParseQuantity(%q) err = %v", in, err)
		}
	}
}

func TestItemAt(t *testing.T) {
	s := DefaultState()
	s.Columns[2] = []Item{{Name: "x", Quantity: 1}}
	if it, err := ItemAt(s, 2, 0); err != nil || it.Name != "x" {
		t.Fatalf("ItemAt = %#v %v", it, err)
	}
	if _, err := ItemAt(s, 2, 1); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
