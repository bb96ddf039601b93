// Package geneset holds GeneSet, the unordered collection of feature names
// that a ranked list is tested against, and Cohort, the precomputed binding
// of a ranked list to many gene sets that the KS kernel walks.
package geneset

// GeneSet is an immutable, unordered collection of feature names.
type GeneSet struct {
	name    string
	members map[string]struct{}
}

// New builds a GeneSet from a name and a list of member feature names.
// Duplicate members are collapsed.
func New(name string, members []string) *GeneSet {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return &GeneSet{name: name, members: set}
}

// Name returns the gene set's stable identifier.
func (g *GeneSet) Name() string { return g.name }

// NumMembers returns the number of distinct members, qualified or not.
func (g *GeneSet) NumMembers() int { return len(g.members) }

// Contains reports whether name is a member of the set.
func (g *GeneSet) Contains(name string) bool {
	_, ok := g.members[name]
	return ok
}

// Members returns the set's members in unspecified order. The returned
// slice is freshly allocated and may be mutated by the caller.
func (g *GeneSet) Members() []string {
	out := make([]string, 0, len(g.members))
	for m := range g.members {
		out = append(out, m)
	}
	return out
}
