package requirements

import (
	"github.com/brequin/brequin/tracker/course"
)

// Match reports whether the course is an eligible candidate for the pillar.
// Culminating pillars only match against their selected sequence. Malformed
// pillars match nothing.
func Match(id course.ID, p Pillar) bool {
	if !Valid(p) {
		return false
	}
	id = course.Normalize(string(id))

	switch p := p.(type) {
	case *Prerequisites:
		return containsItem(p.Items, id)
	case *Specific:
		for _, option := range p.Options {
			if option.Matches(id) {
				return true
			}
		}
		return false
	case *Range:
		parts, ok := course.Split(id)
		if !ok {
			return false
		}
		if p.Department != "" && parts.Department != p.Department {
			return false
		}
		return parts.Number >= p.Start && parts.Number <= p.End
	case *Culminating:
		sequence, _ := p.Active()
		return sequence.Final == id || containsItem(sequence.Items, id)
	default:
		return false
	}
}

func containsItem(items []Item, id course.ID) bool {
	for _, item := range items {
		if item.Contains(id) {
			return true
		}
	}
	return false
}

// Overlapping returns the other range pillars of the same department whose
// bounds intersect p.
func Overlapping(p *Range, pillars []Pillar) []*Range {
	if p == nil {
		return nil
	}
	var overlapping []*Range
	for _, other := range pillars {
		r, ok := other.(*Range)
		if !ok || r == nil || r == p || r.Department != p.Department {
			continue
		}
		if r.Start <= p.End && r.End >= p.Start {
			overlapping = append(overlapping, r)
		}
	}
	return overlapping
}
