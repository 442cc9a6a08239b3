package analytics

// groups is a string-keyed accumulator map that preserves first-seen key
// order. Several analyses are order-sensitive (peak-day ties, top-N ties),
// so plain map iteration is not an option here.
type groups[V any] struct {
	index map[string]int
	keys  []string
	vals  []V
}

func newGroups[V any]() *groups[V] {
	return &groups[V]{index: make(map[string]int)}
}

// at returns a pointer to the accumulator for key, creating it on first use.
func (g *groups[V]) at(key string) *V {
	i, ok := g.index[key]
	if !ok {
		i = len(g.vals)
		g.index[key] = i
		g.keys = append(g.keys, key)
		var zero V
		g.vals = append(g.vals, zero)
	}
	return &g.vals[i]
}

// each visits every group in first-seen order.
func (g *groups[V]) each(fn func(key string, v *V)) {
	for i, key := range g.keys {
		fn(key, &g.vals[i])
	}
}

func (g *groups[V]) len() int {
	return len(g.keys)
}
