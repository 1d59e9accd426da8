package refcount

import (
	"sort"
)

// References maps a lowercase base filename to the number of components
// referencing it. Every count is at least 1.
type References map[string]int

// Reference is a single entry of a References tally.
type Reference struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Total returns the sum of all counts.
func (r References) Total() int {
	total := 0
	for _, n := range r {
		total += n
	}
	return total
}

// Sorted returns the entries ordered by count descending, ties broken by name.
func (r References) Sorted() []Reference {
	refs := make([]Reference, 0, len(r))
	for name, count := range r {
		refs = append(refs, Reference{Name: name, Count: count})
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Count != refs[j].Count {
			return refs[i].Count > refs[j].Count
		}
		return refs[i].Name < refs[j].Name
	})
	return refs
}
