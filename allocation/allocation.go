package allocation

import (
	"github.com/brequin/brequin/tracker/course"
	"github.com/brequin/brequin/tracker/requirements"
)

type Status int

const (
	StatusNone Status = iota
	StatusPrimary
	StatusSecondary
	StatusOverflow
)

func (s Status) String() string {
	switch s {
	case StatusPrimary:
		return "primary"
	case StatusSecondary:
		return "secondary"
	case StatusOverflow:
		return "overflow"
	default:
		return "none"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// OverflowIndex is the pillar index recorded for overflow courses.
const OverflowIndex = -1

type Assignment struct {
	PillarIndex int    `json:"pillarIndex"`
	Status      Status `json:"status"`
}

// PillarResult reports one pillar. Matched holds the courses allocated to it in
// completion order; Secondary holds courses that meet its criteria but count
// toward another pillar.
type PillarResult struct {
	Index       int               `json:"index"`
	Kind        requirements.Kind `json:"kind"`
	Description string            `json:"description"`
	Required    int               `json:"required"`
	Matched     []course.ID       `json:"matched"`
	Secondary   []course.ID       `json:"secondary"`
	Needed      int               `json:"needed"`
	IsComplete  bool              `json:"isComplete"`
}

// Allocation is one evaluation of a completed-course list against a major's
// pillars. Pillars is indexed like the pillar slice passed to Allocate.
type Allocation struct {
	Courses     []course.ID              `json:"courses"`
	Assignments map[course.ID]Assignment `json:"assignments"`
	Pillars     []PillarResult           `json:"pillars"`
	Overflow    []course.ID              `json:"overflow"`
}

// Status reports how a course relates to one pillar.
func (a *Allocation) Status(id course.ID, pillarIndex int) Status {
	id = course.Normalize(string(id))
	assignment, ok := a.Assignments[id]
	if !ok {
		return StatusNone
	}
	if assignment.Status == StatusOverflow {
		return StatusOverflow
	}
	if assignment.PillarIndex == pillarIndex {
		return StatusPrimary
	}
	if pillarIndex >= 0 && pillarIndex < len(a.Pillars) {
		for _, secondary := range a.Pillars[pillarIndex].Secondary {
			if secondary == id {
				return StatusSecondary
			}
		}
	}
	return StatusNone
}

// Complete reports whether every pillar is complete.
func (a *Allocation) Complete() bool {
	for _, result := range a.Pillars {
		if !result.IsComplete {
			return false
		}
	}
	return len(a.Pillars) > 0
}
