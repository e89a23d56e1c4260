package major

import (
	"errors"
	"fmt"

	"github.com/brequin/brequin/tracker/allocation"
	"github.com/brequin/brequin/tracker/progress"
	"github.com/brequin/brequin/tracker/requirements"
)

var ErrNoCulminating = errors.New("major has no culminating pillar")

// Major is the parsed state of one major. The culminating pillar's selected
// sequence is its only mutable field; SelectSequence is the single writer.
type Major struct {
	Code       string
	Name       string
	Department string

	Pillars []requirements.Pillar
	Skipped []requirements.Skipped

	// OnSequenceSelected persists a sequence change. It may be nil.
	OnSequenceSelected func(majorCode string, sequenceIndex int) error
}

func New(code, name, department, requirement string) *Major {
	pillars, skipped := requirements.ParseReport(requirement, department)
	return &Major{
		Code:       code,
		Name:       name,
		Department: department,
		Pillars:    pillars,
		Skipped:    skipped,
	}
}

// SelectedSequence returns the culminating pillar's active sequence index.
func (m *Major) SelectedSequence() (int, bool) {
	if c := m.culminating(); c != nil {
		return c.Selected, true
	}
	return 0, false
}

// RestoreSequence sets the pointer without invoking the callback, for state
// loaded back from storage.
func (m *Major) RestoreSequence(sequenceIndex int) bool {
	return requirements.SetSelectedSequence(m.Pillars, sequenceIndex)
}

// SelectSequence points the culminating pillar at sequenceIndex and persists
// the choice. On a callback error the previous index is restored. Allocations
// computed before the call are stale.
func (m *Major) SelectSequence(sequenceIndex int) error {
	c := m.culminating()
	if c == nil {
		return fmt.Errorf("%v: %w", m.Code, ErrNoCulminating)
	}

	previous := c.Selected
	requirements.SetSelectedSequence(m.Pillars, sequenceIndex)
	if m.OnSequenceSelected == nil {
		return nil
	}
	if err := m.OnSequenceSelected(m.Code, sequenceIndex); err != nil {
		requirements.SetSelectedSequence(m.Pillars, previous)
		return fmt.Errorf("persist selected sequence: %w", err)
	}
	return nil
}

func (m *Major) Evaluate(completed []string) *allocation.Allocation {
	return allocation.Allocate(completed, m.Pillars)
}

func (m *Major) Summarize(completed []string, source progress.DistributiveSource) (*allocation.Allocation, progress.Summary) {
	a := m.Evaluate(completed)
	return a, progress.Summarize(a, m.Pillars, source)
}

func (m *Major) culminating() *requirements.Culminating {
	for _, p := range m.Pillars {
		if c, ok := p.(*requirements.Culminating); ok && c != nil {
			return c
		}
	}
	return nil
}
