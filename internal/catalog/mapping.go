package catalog

// ProductInfo is the metadata attached to enriched transactions.
type ProductInfo struct {
	Title    string
	Category string
	Brand    string
}

// Mapping maps numeric product IDs to catalog metadata. It preserves the
// catalog response order so that ordered scans (the enricher's fuzzy name
// fallback) behave deterministically.
type Mapping struct {
	byID map[int]ProductInfo
	ids  []int
}

// NewMapping builds a mapping from a product listing. When an ID repeats,
// the later entry replaces the earlier one but keeps its first-seen position
// in the scan order. Entries without an ID are skipped.
func NewMapping(products []Product) *Mapping {
	m := &Mapping{byID: make(map[int]ProductInfo, len(products))}
	for _, p := range products {
		if p.ID == 0 {
			continue
		}
		if _, exists := m.byID[p.ID]; !exists {
			m.ids = append(m.ids, p.ID)
		}
		m.byID[p.ID] = ProductInfo{Title: p.Title, Category: p.Category, Brand: p.Brand}
	}
	return m
}

// Len returns the number of mapped products.
func (m *Mapping) Len() int {
	return len(m.ids)
}

// Lookup returns the metadata for a numeric product ID.
func (m *Mapping) Lookup(id int) (ProductInfo, bool) {
	info, ok := m.byID[id]
	return info, ok
}

// Scan visits entries in catalog order until fn returns true (found) or the
// mapping is exhausted.
func (m *Mapping) Scan(fn func(id int, info ProductInfo) bool) (ProductInfo, bool) {
	for _, id := range m.ids {
		info := m.byID[id]
		if fn(id, info) {
			return info, true
		}
	}
	return ProductInfo{}, false
}
