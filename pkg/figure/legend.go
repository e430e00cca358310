package figure

// LegendEntry is one consolidated legend line.
type LegendEntry struct {
	Label  string
	Handle *Artist
}

// LegendRegistry is an insertion-ordered map from label to handle.
//
// Observing a new label appends it. Observing a known label with a different
// handle replaces the handle but keeps the label's position, so the legend
// shows each label once, in first-seen order, with its most recent handle.
type LegendRegistry struct {
	index   map[string]int
	entries []LegendEntry
}

// NewLegendRegistry returns an empty registry.
func NewLegendRegistry() *LegendRegistry {
	return &LegendRegistry{index: make(map[string]int)}
}

// Observe records one (label, handle) pair.
func (r *LegendRegistry) Observe(label string, handle *Artist) {
	if i, ok := r.index[label]; ok {
		if r.entries[i].Handle != handle {
			r.entries[i].Handle = handle
		}
		return
	}
	r.index[label] = len(r.entries)
	r.entries = append(r.entries, LegendEntry{Label: label, Handle: handle})
}

// Len returns the number of distinct labels.
func (r *LegendRegistry) Len() int { return len(r.entries) }

// Entries returns a copy of the consolidated entries in first-seen order.
func (r *LegendRegistry) Entries() []LegendEntry {
	out := make([]LegendEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// ConsolidateLegend walks axes in the given order, and each axes' artists in
// draw order, and returns one entry per distinct label. Build passes the
// axes row-major over the grid.
func ConsolidateLegend(axes []*Axes) []LegendEntry {
	reg := NewLegendRegistry()
	for _, ax := range axes {
		for _, art := range ax.Artists {
			if art.Legendable() {
				reg.Observe(art.Label, art)
			}
		}
	}
	return reg.Entries()
}
