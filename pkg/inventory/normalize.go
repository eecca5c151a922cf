package inventory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Legacy document keys still accepted on read. Writes always use the
// primary keys declared on State and Item.
const (
	keyInventoryName      = "inventoryName"
	keyCategories         = "categories"
	keyCategoriesLegacy   = "categorias"
	keyColumns            = "columns"
	keyColumnsLegacy      = "columnas"
	keyItemName           = "nombre"
	keyItemNameAlt        = "name"
	keyItemDescription    = "descripcion"
	keyItemDescriptionAlt = "description"
	keyItemQuantity       = "cantidad"
	keyItemQuantityAlt    = "quantity"
)

// Parse decodes persisted bytes and normalizes them. Empty input yields the
// default state. Invalid JSON yields the default state together with an
// error wrapping ErrMalformedDocument.
func Parse(data []byte) (State, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return DefaultState(), nil
	}
	raw, err := decodeDocument(data)
	if err != nil {
		return DefaultState(), fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return Normalize(raw), nil
}

// decodeDocument decodes exactly one JSON value, keeping numbers as
// json.Number so values beyond the float64 range survive until coercion.
func decodeDocument(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after document")
	}
	return raw, nil
}

// Normalize coerces an arbitrary decoded document into a well-formed State.
// It never fails: anything it cannot interpret falls back to defaults.
func Normalize(raw any) State {
	switch v := raw.(type) {
	case State:
		return normalizeTyped(v)
	case *State:
		if v == nil {
			return DefaultState()
		}
		return normalizeTyped(*v)
	case []byte:
		s, _ := Parse(v)
		return s
	case json.RawMessage:
		s, _ := Parse(v)
		return s
	case map[string]any:
		return normalizeDocument(v)
	default:
		return DefaultState()
	}
}

func normalizeDocument(doc map[string]any) State {
	s := DefaultState()
	if name := scalarString(doc[keyInventoryName]); name != "" {
		s.InventoryName = name
	}
	if cats, ok := firstSequence(doc, keyCategories, keyCategoriesLegacy); ok {
		for i := 0; i < ColumnCount && i < len(cats); i++ {
			if name := scalarString(cats[i]); name != "" {
				s.Categories[i] = name
			}
		}
	}
	if cols, ok := firstSequence(doc, keyColumns, keyColumnsLegacy); ok {
		for i := 0; i < ColumnCount && i < len(cols); i++ {
			s.Columns[i] = normalizeColumn(cols[i])
		}
	}
	return s
}

func normalizeColumn(raw any) []Item {
	elems, ok := raw.([]any)
	if !ok {
		return []Item{}
	}
	items := make([]Item, 0, len(elems))
	for _, elem := range elems {
		switch v := elem.(type) {
		case string:
			items = append(items, Item{Name: strings.TrimSpace(v), Quantity: MinQuantity})
		case map[string]any:
			items = append(items, normalizeRecord(v))
		}
	}
	return items
}

func normalizeRecord(rec map[string]any) Item {
	name := scalarString(rec[keyItemName])
	if name == "" {
		name = scalarString(rec[keyItemNameAlt])
	}
	desc := scalarString(rec[keyItemDescription])
	if desc == "" {
		desc = scalarString(rec[keyItemDescriptionAlt])
	}
	qty, ok := rec[keyItemQuantity]
	if !ok || qty == nil {
		qty = rec[keyItemQuantityAlt]
	}
	return Item{Name: name, Description: desc, Quantity: CoerceQuantity(qty)}
}

func normalizeTyped(in State) State {
	s := DefaultState()
	if name := strings.TrimSpace(in.InventoryName); name != "" {
		s.InventoryName = name
	}
	for i := 0; i < ColumnCount && i < len(in.Categories); i++ {
		if name := strings.TrimSpace(in.Categories[i]); name != "" {
			s.Categories[i] = name
		}
	}
	for i := 0; i < ColumnCount && i < len(in.Columns); i++ {
		col := make([]Item, 0, len(in.Columns[i]))
		for _, it := range in.Columns[i] {
			col = append(col, Item{
				Name:        strings.TrimSpace(it.Name),
				Description: strings.TrimSpace(it.Description),
				Quantity:    clampQuantity(it.Quantity),
			})
		}
		s.Columns[i] = col
	}
	return s
}

// firstSequence returns the first of keys whose value is a JSON array.
func firstSequence(doc map[string]any, keys ...string) ([]any, bool) {
	for _, k := range keys {
		if seq, ok := doc[k].([]any); ok {
			return seq, true
		}
	}
	return nil, false
}

// scalarString renders strings, numbers and booleans as trimmed text.
// Objects, arrays and null render as the empty string.
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// CoerceQuantity converts a loosely typed quantity into an integer of at
// least MinQuantity. Non-numeric input yields MinQuantity.
func CoerceQuantity(v any) int {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		return clampQuantity(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, ok := parseQuantity(t.String())
		if !ok {
			return MinQuantity
		}
		f = parsed
	case string:
		parsed, ok := parseQuantity(strings.TrimSpace(t))
		if !ok {
			return MinQuantity
		}
		f = parsed
	case bool:
		if t {
			f = 1
		}
	default:
		return MinQuantity
	}
	if math.IsNaN(f) || f < MinQuantity {
		return MinQuantity
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(f))
}

// parseQuantity parses numeric text. Out-of-range values come back as the
// nearest representable float (±Inf on overflow) so callers can clamp them.
func parseQuantity(text string) (float64, bool) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

func clampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	return q
}
