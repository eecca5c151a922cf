package inventory

import "strings"

// Project flattens the board into search records. IDs are 1-based positions
// in the output and change whenever items move, so they are not durable.
func Project(s State) []SearchRecord {
	records := make([]SearchRecord, 0, s.ItemCount())
	for i, col := range s.Columns {
		category := DefaultCategoryName(i)
		if i < len(s.Categories) && strings.TrimSpace(s.Categories[i]) != "" {
			category = s.Categories[i]
		}
		for _, it := range col {
			name := strings.TrimSpace(it.Name)
			if name == "" {
				continue
			}
			records = append(records, SearchRecord{
				ID:          len(records) + 1,
				Name:        name,
				Quantity:    clampQuantity(it.Quantity),
				Location:    ColumnLocation(i),
				Category:    category,
				Description: strings.TrimSpace(it.Description),
			})
		}
	}
	return records
}

// Search keeps the records whose name, sku, location, category or
// description contains query, ignoring case. A blank query returns records
// unchanged. The result preserves input order.
func Search(records []SearchRecord, query string) []SearchRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}
	out := make([]SearchRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(searchableText(r), q) {
			out = append(out, r)
		}
	}
	return out
}

func searchableText(r SearchRecord) string {
	return strings.ToLower(strings.Join([]string{r.Name, r.SKU, r.Location, r.Category, r.Description}, " "))
}
