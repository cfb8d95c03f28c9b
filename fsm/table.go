package fsm

import "sort"

// Table is the grouped transition table: event -> source state -> set of
// destination states. All accessors return lexicographically sorted slices
// so that repeated generation from the same specification is byte-identical
// regardless of declaration order.
type Table struct {
	// event -> from -> to -> present
	entries map[string]map[string]map[string]bool
}

// Group builds the grouped transition table from the flat transition list.
// Duplicate (from, to) pairs under one event collapse silently.
func Group(transitions []Transition) *Table {
	t := &Table{entries: make(map[string]map[string]map[string]bool)}
	for _, tr := range transitions {
		for _, p := range tr.Pairs {
			t.insert(tr.Event, p.From, p.To)
		}
	}
	return t
}

func (t *Table) insert(event, from, to string) {
	sources, ok := t.entries[event]
	if !ok {
		sources = make(map[string]map[string]bool)
		t.entries[event] = sources
	}
	dests, ok := sources[from]
	if !ok {
		dests = make(map[string]bool)
		sources[from] = dests
	}
	dests[to] = true
}

// Events returns the events with at least one recorded transition, sorted.
func (t *Table) Events() []string {
	events := make([]string, 0, len(t.entries))
	for e := range t.entries {
		events = append(events, e)
	}
	sort.Strings(events)
	return events
}

// Sources returns the source states recorded under event, sorted.
// A state with no recorded destination under an event is simply absent.
func (t *Table) Sources(event string) []string {
	sources := make([]string, 0, len(t.entries[event]))
	for s := range t.entries[event] {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	return sources
}

// Dests returns the destination states recorded for (event, from), sorted.
func (t *Table) Dests(event, from string) []string {
	dests := make([]string, 0, len(t.entries[event][from]))
	for d := range t.entries[event][from] {
		dests = append(dests, d)
	}
	sort.Strings(dests)
	return dests
}

// Has reports whether any transition is recorded for (event, from).
func (t *Table) Has(event, from string) bool {
	return len(t.entries[event][from]) > 0
}

// AllSources returns the union of source states across all events, sorted.
// Used when deriving the shared per-state resolution types.
func (t *Table) AllSources() []string {
	set := make(map[string]bool)
	for _, sources := range t.entries {
		for s := range sources {
			set[s] = true
		}
	}
	all := make([]string, 0, len(set))
	for s := range set {
		all = append(all, s)
	}
	sort.Strings(all)
	return all
}

// UnionDests returns the union of destination states recorded for from
// across all events, sorted. This is the variant set of the shared
// resolution type for that source state.
func (t *Table) UnionDests(from string) []string {
	set := make(map[string]bool)
	for _, sources := range t.entries {
		for d := range sources[from] {
			set[d] = true
		}
	}
	dests := make([]string, 0, len(set))
	for d := range set {
		dests = append(dests, d)
	}
	sort.Strings(dests)
	return dests
}
