// Package inventory defines the canonical inventory board document and the
// pure functions that normalize, mutate, aggregate, project and search it.
//
// Nothing in this package performs I/O. Callers load raw documents from a
// persistence layer, hand them to Parse or Normalize, and persist the result
// of the mutators themselves.
package inventory

import "fmt"

const (
	// ColumnCount is the fixed number of category columns on a board.
	ColumnCount = 5
	// LowStockThreshold flags items whose quantity is strictly below it.
	LowStockThreshold = 10
	// DefaultInventoryName labels boards that were never renamed.
	DefaultInventoryName = "My Inventory"
	// MinQuantity is the floor applied to every stored quantity.
	MinQuantity = 1
)

// Item is one stock entry. The JSON keys match the persisted document.
type Item struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	Quantity    int    `json:"cantidad"`
}

// State is the canonical persisted inventory document. Categories and
// Columns always hold exactly ColumnCount entries once normalized, and
// Columns[i] belongs to Categories[i].
type State struct {
	InventoryName string   `json:"inventoryName"`
	Categories    []string `json:"categories"`
	Columns       [][]Item `json:"columns"`
}

// UnmarshalJSON decodes any document shape and normalizes it, so decoding
// into a State never fails on structurally odd but valid JSON.
func (s *State) UnmarshalJSON(data []byte) error {
	raw, err := decodeDocument(data)
	if err != nil {
		return err
	}
	*s = Normalize(raw)
	return nil
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{
		InventoryName: s.InventoryName,
		Categories:    append([]string(nil), s.Categories...),
		Columns:       make([][]Item, len(s.Columns)),
	}
	for i, col := range s.Columns {
		out.Columns[i] = append(make([]Item, 0, len(col)), col...)
	}
	return out
}

// ItemCount returns the number of items across all columns.
func (s State) ItemCount() int {
	n := 0
	for _, col := range s.Columns {
		n += len(col)
	}
	return n
}

// DefaultState returns the board used when nothing valid was persisted.
func DefaultState() State {
	s := State{
		InventoryName: DefaultInventoryName,
		Categories:    make([]string, ColumnCount),
		Columns:       make([][]Item, ColumnCount),
	}
	for i := 0; i < ColumnCount; i++ {
		s.Categories[i] = DefaultCategoryName(i)
		s.Columns[i] = []Item{}
	}
	return s
}

// DefaultCategoryName is the fallback label of the zero-based column i.
func DefaultCategoryName(i int) string {
	return fmt.Sprintf("Category %d", i+1)
}

// ColumnLocation is the display location of the zero-based column i.
func ColumnLocation(i int) string {
	return fmt.Sprintf("Column %d", i+1)
}

// StockStatus classifies a quantity against LowStockThreshold.
type StockStatus string

const (
	// StockLow marks quantities below LowStockThreshold.
	StockLow StockStatus = "low-stock"
	// StockNormal marks every other quantity.
	StockNormal StockStatus = "normal"
)

// StockStatusFor computes the status of a quantity.
func StockStatusFor(quantity int) StockStatus {
	if quantity < LowStockThreshold {
		return StockLow
	}
	return StockNormal
}

// SearchRecord is a flattened, display-ready view of one item. It is derived
// from a State on every render and never persisted.
type SearchRecord struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// StockStatus is computed from the quantity at call time.
func (r SearchRecord) StockStatus() StockStatus { return StockStatusFor(r.Quantity) }

// LowStock reports whether the record is below the low-stock threshold.
func (r SearchRecord) LowStock() bool { return r.StockStatus() == StockLow }

// Totals maps product names to summed quantities. Names and Quantities are
// parallel and ordered by first appearance on the board.
type Totals struct {
	Names      []string `json:"labels"`
	Quantities []int    `json:"data"`
}

// Len returns the number of distinct names.
func (t Totals) Len() int { return len(t.Names) }

// Total returns the summed quantity for name, or 0 when absent.
func (t Totals) Total(name string) int {
	for i, n := range t.Names {
		if n == name {
			return t.Quantities[i]
		}
	}
	return 0
}
