package inventory

import "strings"

// Aggregate sums quantities per trimmed product name across every column.
// Items without a name are skipped. Names keep the order in which they are
// first encountered, scanning columns left to right.
func Aggregate(s State) Totals {
	totals := Totals{Names: []string{}, Quantities: []int{}}
	index := make(map[string]int)
	for _, col := range s.Columns {
		for _, it := range col {
			name := strings.TrimSpace(it.Name)
			if name == "" {
				continue
			}
			qty := clampQuantity(it.Quantity)
			if i, ok := index[name]; ok {
				totals.Quantities[i] += qty
				continue
			}
			index[name] = len(totals.Names)
			totals.Names = append(totals.Names, name)
			totals.Quantities = append(totals.Quantities, qty)
		}
	}
	return totals
}
