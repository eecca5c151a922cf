package inventory

import (
	"reflect"
	"testing"
)

func boardFixture() State {
	s := DefaultState()
	s.Categories[1] = "Fasteners"
	s.Columns[0] = []Item{{Name: "widget-pro", Description: "blue", Quantity: 12}, {Name: "  ", Quantity: 4}}
	s.Columns[1] = []Item{{Name: "Bolt", Description: "M6 zinc", Quantity: 3}, {Name: "widget-pro", Quantity: 2}}
	s.Columns[4] = []Item{{Name: "Nut", Quantity: 0}}
	return s
}

func TestProjectSingleBareString(t *testing.T) {
	s := Normalize(map[string]any{"columns": []any{[]any{"Bolt"}, []any{}, []any{}, []any{}, []any{}}})
	got := Project(s)
	want := []SearchRecord{{ID: 1, Name: "Bolt", Quantity: 1, Location: "Column 1", Category: "Category 1"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Project = %#v, want %#v", got, want)
	}
}

func TestProjectFlattensAndNumbers(t *testing.T) {
	got := Project(boardFixture())
	if len(got) != 4 {
		t.Fatalf("expected 4 records (blank name skipped), got %d", len(got))
	}
	for i, r := range got {
		if r.ID != i+1 {
			t.Fatalf("record %d has id %d", i, r.ID)
		}
		if r.SKU != "" {
			t.Fatalf("sku should be empty, got %q", r.SKU)
		}
	}
	if got[1].Category != "Fasteners" || got[1].Location != "Column 2" {
		t.Fatalf("record 2 = %#v", got[1])
	}
	if got[3].Quantity != 1 || got[3].Location != "Column 5" {
		t.Fatalf("quantity floor or location wrong: %#v", got[3])
	}
}

func TestProjectCategoryFallback(t *testing.T) {
	s := State{Categories: []string{""}, Columns: [][]Item{{{Name: "a", Quantity: 1}}, {{Name: "b", Quantity: 1}}}}
	got := Project(s)
	if got[0].Category != "Category 1" || got[1].Category != "Category 2" {
		t.Fatalf("fallback categories = %q, %q", got[0].Category, got[1].Category)
	}
}

func TestStockStatus(t *testing.T) {
	if StockStatusFor(9) != StockLow || StockStatusFor(10) != StockNormal {
		t.Fatalf("threshold boundary wrong")
	}
	r := SearchRecord{Quantity: 3}
	if !r.LowStock() || r.StockStatus() != "low-stock" {
		t.Fatalf("expected low stock for %d", r.Quantity)
	}
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	records := Project(boardFixture())
	for _, q := range []string{"", "   ", "\t"} {
		got := Search(records, q)
		if !reflect.DeepEqual(got, records) {
			t.Fatalf("Search(%q) should return all records", q)
		}
	}
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	records := Project(boardFixture())
	got := Search(records, "WIDGET")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("Search(WIDGET) = %#v", got)
	}
	if got := Search(records, "  zinc "); len(got) != 1 || got[0].Name != "Bolt" {
		t.Fatalf("description match failed: %#v", got)
	}
	if got := Search(records, "fasteners"); len(got) != 2 {
		t.Fatalf("category match failed: %#v", got)
	}
	if got := Search(records, "column 5"); len(got) != 1 || got[0].Name != "Nut" {
		t.Fatalf("location match failed: %#v", got)
	}
	if got := Search(records, "missing"); len(got) != 0 {
		t.Fatalf("expected no results, got %#v", got)
	}
}

func TestAggregate(t *testing.T) {
	got := Aggregate(boardFixture())
	wantNames := []string{"widget-pro", "Bolt", "Nut"}
	wantQty := []int{14, 3, 1}
	if !reflect.DeepEqual(got.Names, wantNames) || !reflect.DeepEqual(got.Quantities, wantQty) {
		t.Fatalf("Aggregate = %#v", got)
	}
	if got.Total("widget-pro") != 14 || got.Total("absent") != 0 || got.Len() != 3 {
		t.Fatalf("Total lookups wrong")
	}
}

func TestAggregateTrimsNames(t *testing.T) {
	s := DefaultState()
	s.Columns[0] = []Item{{Name: "Bolt ", Quantity: 2}}
	s.Columns[3] = []Item{{Name: " Bolt", Quantity: 5}}
	got := Aggregate(s)
	if got.Len() != 1 || got.Total("Bolt") != 7 {
		t.Fatalf("Aggregate = %#v", got)
	}
	empty := Aggregate(DefaultState())
	if empty.Names == nil || empty.Len() != 0 {
		t.Fatalf("empty board should aggregate to empty, non-nil totals")
	}
}
