package taxonomy

import (
	"sort"
	"strings"
	"sync"
)

// Normalize produces the grouping key for a label: trimmed, lowercased,
// interior whitespace collapsed to single spaces. Applying it twice yields
// the same result as applying it once.
func Normalize(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// displayForm keeps the author's casing but trims and collapses whitespace
// so stored labels render consistently.
func displayForm(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// Registry holds the open label alphabets, one per task kind. Labels are
// keyed by their normalized form; the first display form seen for a key is
// the one every later variant resolves to.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
	order   map[string][]string
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]map[string]string),
		order:   make(map[string][]string),
	}
}

// AddIfAbsent registers raw under its normalized key unless that key already
// exists. It returns the stored display form and whether this call inserted
// it. The check and the insert happen under one lock, so concurrent callers
// adding variants of the same label all get the same display form back.
// Raws that normalize to the empty string are rejected.
func (r *Registry) AddIfAbsent(kind, raw string) (string, bool) {
	key := Normalize(raw)
	if key == "" {
		return "", false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if display, ok := r.entries[kind][key]; ok {
		return display, false
	}

	if r.entries[kind] == nil {
		r.entries[kind] = make(map[string]string)
	}
	display := displayForm(raw)
	r.entries[kind][key] = display
	r.order[kind] = append(r.order[kind], display)
	return display, true
}

// Labels returns a snapshot of the display labels for kind in first-seen
// order. The copy is safe to hold across later inserts.
func (r *Registry) Labels(kind string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order[kind]...)
}

// Seed bulk-registers labels, typically ones restored from storage.
func (r *Registry) Seed(kind string, labels []string) {
	for _, label := range labels {
		r.AddIfAbsent(kind, label)
	}
}

func (r *Registry) Len(kind string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order[kind])
}

// Kinds lists every kind that holds at least one label, sorted for stable
// iteration.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.order))
	for kind, labels := range r.order {
		if len(labels) > 0 {
			kinds = append(kinds, kind)
		}
	}
	sort.Strings(kinds)
	return kinds
}
