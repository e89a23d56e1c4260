package requirements

import (
	"math"
	"sort"
)

// SortBySpecificity returns a copy of pillars ordered most specific first:
// culminating, prerequisites, specific, then ranges by flexibility. Equal
// pillars keep their declaration order.
func SortBySpecificity(pillars []Pillar) []Pillar {
	sorted := make([]Pillar, len(pillars))
	copy(sorted, pillars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessSpecific(sorted[i], sorted[j])
	})
	return sorted
}

// SpecificityOrder returns the indices of pillars in allocation order without
// reordering the slice itself.
func SpecificityOrder(pillars []Pillar) []int {
	order := make([]int, len(pillars))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return lessSpecific(pillars[order[i]], pillars[order[j]])
	})
	return order
}

func lessSpecific(a, b Pillar) bool {
	if IsNil(a) || IsNil(b) {
		return !IsNil(a) && IsNil(b)
	}
	if a.Kind() != b.Kind() {
		return a.Kind() < b.Kind()
	}
	ra, okA := a.(*Range)
	rb, okB := b.(*Range)
	if okA && okB {
		return Flexibility(ra) < Flexibility(rb)
	}
	return false
}

// Flexibility is the number of catalog numbers a range accepts per required
// course. Narrow ranges are filled before wide ones.
func Flexibility(r *Range) float64 {
	if r == nil || r.Count <= 0 || r.Start > r.End {
		return math.Inf(1)
	}
	return float64(r.End-r.Start+1) / float64(r.Count)
}
