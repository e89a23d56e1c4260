package requirements

import (
	"github.com/brequin/brequin/tracker/course"
)

// Kind orders pillars by specificity; lower values are allocated first.
type Kind int

const (
	KindCulminating Kind = iota
	KindPrerequisites
	KindSpecific
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindCulminating:
		return "culminating"
	case KindPrerequisites:
		return "prerequisites"
	case KindSpecific:
		return "specific"
	case KindRange:
		return "range"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Header carries the fields shared by every pillar.
type Header struct {
	Index       int
	Description string
}

func (h *Header) Common() *Header {
	return h
}

// Pillar is one independent requirement unit of a major. The concrete type is
// one of *Prerequisites, *Specific, *Range or *Culminating.
type Pillar interface {
	Kind() Kind
	Common() *Header
}

// IsNil reports whether p is nil or a typed nil pointer.
func IsNil(p Pillar) bool {
	switch p := p.(type) {
	case *Prerequisites:
		return p == nil
	case *Specific:
		return p == nil
	case *Range:
		return p == nil
	case *Culminating:
		return p == nil
	default:
		return p == nil
	}
}

// Description returns the pillar's description, or "" for a nil pillar.
func Description(p Pillar) string {
	if IsNil(p) {
		return ""
	}
	return p.Common().Description
}

// Item is one prerequisite slot: a single course, or a set of alternatives of
// which any one fills the slot.
type Item struct {
	Course       course.ID
	Alternatives []course.ID
}

func (i Item) IsAlternative() bool {
	return len(i.Alternatives) > 0
}

// Options lists every course that fills the slot.
func (i Item) Options() []course.ID {
	if i.IsAlternative() {
		return i.Alternatives
	}
	if i.Course == "" {
		return nil
	}
	return []course.ID{i.Course}
}

func (i Item) Contains(id course.ID) bool {
	for _, option := range i.Options() {
		if option == id {
			return true
		}
	}
	return false
}

type Prerequisites struct {
	Header
	Items []Item
}

type Specific struct {
	Header
	Department string
	Count      int
	Options    []course.Option
}

type Range struct {
	Header
	Department string
	Start      int
	End        int
	Count      int
}

type Sequence struct {
	Final course.ID
	Items []Item
}

// Culminating holds the alternative capstone sequences of a major. Only the
// sequence at Selected takes part in matching.
type Culminating struct {
	Header
	Sequences []Sequence
	Selected  int
}

func (*Prerequisites) Kind() Kind { return KindPrerequisites }
func (*Specific) Kind() Kind      { return KindSpecific }
func (*Range) Kind() Kind         { return KindRange }
func (*Culminating) Kind() Kind   { return KindCulminating }

// Active returns the selected sequence. It reports false when nothing valid is
// selected.
func (c *Culminating) Active() (Sequence, bool) {
	if c.Selected < 0 || c.Selected >= len(c.Sequences) {
		return Sequence{}, false
	}
	return c.Sequences[c.Selected], true
}

// Slots lists the course options of every slot of the active sequence, final
// course first.
func (c *Culminating) Slots() [][]course.ID {
	sequence, ok := c.Active()
	if !ok || sequence.Final == "" {
		return nil
	}
	slots := [][]course.ID{{sequence.Final}}
	for _, item := range sequence.Items {
		slots = append(slots, item.Options())
	}
	return slots
}

// Valid reports whether the pillar carries every field it needs to be
// satisfiable.
func Valid(p Pillar) bool {
	switch p := p.(type) {
	case *Prerequisites:
		if p == nil || len(p.Items) == 0 {
			return false
		}
		for _, item := range p.Items {
			if len(item.Options()) == 0 {
				return false
			}
		}
		return true
	case *Specific:
		return p != nil && p.Count > 0 && len(p.Options) > 0
	case *Range:
		return p != nil && p.Count > 0 && p.Start <= p.End
	case *Culminating:
		return p != nil && len(p.Slots()) > 0
	default:
		return false
	}
}

// Required is how many courses complete the pillar: the item count for
// prerequisites, the slot count of the active culminating sequence, Count
// otherwise.
func Required(p Pillar) int {
	switch p := p.(type) {
	case *Prerequisites:
		if p == nil {
			return 0
		}
		return len(p.Items)
	case *Specific:
		if p == nil {
			return 0
		}
		return p.Count
	case *Range:
		if p == nil {
			return 0
		}
		return p.Count
	case *Culminating:
		if p == nil {
			return 0
		}
		return len(p.Slots())
	default:
		return 0
	}
}

// SetSelectedSequence points the first culminating pillar at sequence index.
// It reports whether a culminating pillar was found. Allocations computed
// before the call are stale.
func SetSelectedSequence(pillars []Pillar, index int) bool {
	for _, p := range pillars {
		if c, ok := p.(*Culminating); ok && c != nil {
			c.Selected = index
			return true
		}
	}
	return false
}
