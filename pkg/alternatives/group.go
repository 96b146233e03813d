package alternatives

import (
	"iter"
	"sort"
)

// Group owns the records registered under one name. At most one record
// exists per target; re-adding a target updates its priority.
type Group struct {
	name    string
	records map[string]int // target -> priority
}

// NewGroup creates an empty group for name.
func NewGroup(name string) *Group {
	return &Group{
		name:    name,
		records: make(map[string]int),
	}
}

// Name returns the shared name this group competes for.
func (g *Group) Name() string {
	return g.name
}

// Len returns the number of registered records.
func (g *Group) Len() int {
	return len(g.records)
}

// Add registers target with the given priority, replacing any previous
// priority for the same target. It reports whether the group changed;
// re-adding an identical record is a no-op.
func (g *Group) Add(target string, priority int) bool {
	if prev, ok := g.records[target]; ok && prev == priority {
		return false
	}
	g.records[target] = priority
	return true
}

// Remove deletes the record for target. Removing an absent target is a
// no-op, not an error.
func (g *Group) Remove(target string) bool {
	if _, ok := g.records[target]; !ok {
		return false
	}
	delete(g.records, target)
	return true
}

// Current returns the winning record: highest priority, ties broken by the
// lexicographically smallest target so the answer is deterministic. The
// second return is false for an empty group. The winner is recomputed on
// every call and is never stale.
func (g *Group) Current() (Record, bool) {
	found := false
	var best Record
	for target, priority := range g.records {
		if !found ||
			priority > best.Priority ||
			(priority == best.Priority && target < best.Target) {
			best = Record{Target: target, Priority: priority}
			found = true
		}
	}
	return best, found
}

// All returns the group's records ordered by descending priority, then
// ascending target. The sequence is finite and restartable; each range
// re-reads the group's state.
func (g *Group) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		records := make([]Record, 0, len(g.records))
		for target, priority := range g.records {
			records = append(records, Record{Target: target, Priority: priority})
		}
		sort.Slice(records, func(i, j int) bool {
			if records[i].Priority != records[j].Priority {
				return records[i].Priority > records[j].Priority
			}
			return records[i].Target < records[j].Target
		})

		for _, r := range records {
			if !yield(r) {
				return
			}
		}
	}
}
