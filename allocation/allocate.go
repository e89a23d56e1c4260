package allocation

import (
	"github.com/brequin/brequin/tracker/course"
	"github.com/brequin/brequin/tracker/requirements"
)

// filler accepts courses into a pillar until it is full.
type filler interface {
	take(id course.ID) bool
}

// slots fills prerequisite items and culminating sequences: each slot accepts
// exactly one of its options.
type slots struct {
	options [][]course.ID
	filled  []bool
}

func newSlots(options [][]course.ID) *slots {
	return &slots{options: options, filled: make([]bool, len(options))}
}

// take fills the unfilled slot with the fewest options that accepts id, so a
// course never uses up an alternative another slot needs it for less.
func (s *slots) take(id course.ID) bool {
	best := -1
	for i, options := range s.options {
		if s.filled[i] || (best >= 0 && len(options) >= len(s.options[best])) {
			continue
		}
		for _, option := range options {
			if option == id {
				best = i
				break
			}
		}
	}
	if best < 0 {
		return false
	}
	s.filled[best] = true
	return true
}

type counter struct {
	capacity int
	taken    int
}

func (c *counter) take(course.ID) bool {
	if c.taken >= c.capacity {
		return false
	}
	c.taken++
	return true
}

func newFiller(p requirements.Pillar) filler {
	if !requirements.Valid(p) {
		return &counter{}
	}
	switch p := p.(type) {
	case *requirements.Prerequisites:
		options := make([][]course.ID, 0, len(p.Items))
		for _, item := range p.Items {
			options = append(options, item.Options())
		}
		return newSlots(options)
	case *requirements.Culminating:
		return newSlots(p.Slots())
	default:
		return &counter{capacity: requirements.Required(p)}
	}
}

// Allocate assigns every completed course to at most one pillar. Pillars are
// visited most specific first and courses in the order given, so the first
// course added wins ties. Culminating pillars are filled before anything else.
// Courses that fit no pillar with room left land in Overflow. The result
// depends only on the inputs; allocating again after any change is the only
// way to update it.
func Allocate(completed []string, pillars []requirements.Pillar) *Allocation {
	a := &Allocation{
		Courses:     []course.ID{},
		Assignments: make(map[course.ID]Assignment),
		Pillars:     make([]PillarResult, len(pillars)),
		Overflow:    []course.ID{},
	}

	for _, id := range course.NormalizeAll(completed) {
		if _, seen := a.Assignments[id]; seen {
			continue
		}
		a.Assignments[id] = Assignment{PillarIndex: OverflowIndex, Status: StatusNone}
		a.Courses = append(a.Courses, id)
	}

	fillers := make([]filler, len(pillars))
	for i, p := range pillars {
		fillers[i] = newFiller(p)
		a.Pillars[i] = PillarResult{
			Index:       i,
			Description: requirements.Description(p),
			Required:    requirements.Required(p),
			Matched:     []course.ID{},
			Secondary:   []course.ID{},
		}
		if p != nil {
			a.Pillars[i].Kind = p.Kind()
		}
	}
	order := requirements.SpecificityOrder(pillars)

	for _, id := range a.Courses {
		matched := false
		for _, i := range order {
			if !requirements.Match(id, pillars[i]) || pillars[i].Kind() != requirements.KindCulminating {
				continue
			}
			matched = true
			if fillers[i].take(id) {
				a.assign(id, i)
				break
			}
		}
		if matched && a.Assignments[id].Status == StatusNone {
			a.overflow(id)
		}
	}

	for _, id := range a.Courses {
		if a.Assignments[id].Status != StatusNone {
			continue
		}
		for _, i := range order {
			if !requirements.Match(id, pillars[i]) || pillars[i].Kind() == requirements.KindCulminating {
				continue
			}
			if fillers[i].take(id) {
				a.assign(id, i)
				break
			}
		}
		if a.Assignments[id].Status == StatusNone {
			a.overflow(id)
		}
	}

	for _, id := range a.Courses {
		primary := a.Assignments[id].PillarIndex
		if primary == OverflowIndex {
			continue
		}
		for i, p := range pillars {
			if i != primary && requirements.Match(id, p) {
				a.Pillars[i].Secondary = append(a.Pillars[i].Secondary, id)
			}
		}
	}

	for i, p := range pillars {
		result := &a.Pillars[i]
		result.IsComplete = isComplete(p, len(result.Matched))
		if result.Required > len(result.Matched) {
			result.Needed = result.Required - len(result.Matched)
		}
	}

	return a
}

func (a *Allocation) assign(id course.ID, pillarIndex int) {
	a.Assignments[id] = Assignment{PillarIndex: pillarIndex, Status: StatusPrimary}
	a.Pillars[pillarIndex].Matched = append(a.Pillars[pillarIndex].Matched, id)
}

func (a *Allocation) overflow(id course.ID) {
	a.Assignments[id] = Assignment{PillarIndex: OverflowIndex, Status: StatusOverflow}
	a.Overflow = append(a.Overflow, id)
}

// isComplete requires every prerequisite item to be filled exactly and a
// single match for specific pillars; the other kinds need the required count.
// Malformed pillars never complete.
func isComplete(p requirements.Pillar, matched int) bool {
	if !requirements.Valid(p) {
		return false
	}
	switch p.Kind() {
	case requirements.KindPrerequisites:
		return matched == requirements.Required(p)
	case requirements.KindSpecific:
		return matched >= 1
	default:
		return matched >= requirements.Required(p)
	}
}
