// Package aggregate folds per-source rule sets into the final
// deduplicated, sorted form for one group. The fold is commutative and
// associative, so per-source classification may run in any order (or in
// parallel) with a single-threaded merge at the end.
package aggregate

import (
	"sort"

	logpkg "github.com/cinmou/singbox-rules/internal/rules/common/log"
	"github.com/cinmou/singbox-rules/internal/rules/domain"
	"github.com/cinmou/singbox-rules/internal/rules/parsers"
)

// Aggregator accumulates classified rules across the sources of one
// group with set semantics per category.
type Aggregator struct {
	domains  map[string]struct{}
	suffixes map[string]struct{}
	networks map[string]struct{}
}

func New() *Aggregator {
	return &Aggregator{
		domains:  make(map[string]struct{}),
		suffixes: make(map[string]struct{}),
		networks: make(map[string]struct{}),
	}
}

// Add folds one partial RuleSet into the aggregate. Duplicate values
// within or across sources collapse to one.
func (a *Aggregator) Add(rs domain.RuleSet) {
	for _, v := range rs.Domains {
		a.domains[v] = struct{}{}
	}
	for _, v := range rs.Suffixes {
		a.suffixes[v] = struct{}{}
	}
	for _, v := range rs.Networks {
		a.networks[v] = struct{}{}
	}
}

// Finalize returns the deduplicated RuleSet with every category sorted
// in byte order, so identical inputs always produce identical output.
func (a *Aggregator) Finalize() domain.RuleSet {
	return domain.RuleSet{
		Domains:  sortedKeys(a.domains),
		Suffixes: sortedKeys(a.suffixes),
		Networks: sortedKeys(a.networks),
	}
}

// Merge classifies every source text belonging to one group and returns
// the merged, deduplicated RuleSet. An empty text list yields an empty
// RuleSet rather than an error.
func Merge(group string, texts []string, logger logpkg.Logger) domain.RuleSet {
	agg := New()
	for _, text := range texts {
		agg.Add(parsers.ParseSource(text, group, logger))
	}
	return agg.Finalize()
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
