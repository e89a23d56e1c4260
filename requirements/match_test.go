package requirements

import (
	"testing"

	"github.com/brequin/brequin/tracker/course"
	"github.com/stretchr/testify/assert"
)

func TestMatchRangeInclusive(t *testing.T) {
	r := &Range{Department: "COSC", Start: 1, End: 5, Count: 1}
	assert.True(t, Match("COSC001", r))
	assert.True(t, Match("COSC005", r))
	assert.True(t, Match("COSC1", r), "unnormalized ids are normalized before matching")
	assert.False(t, Match("COSC006", r))
	assert.False(t, Match("MATH003", r))
	assert.False(t, Match("garbage", r))
}

func TestMatchPrerequisites(t *testing.T) {
	p := &Prerequisites{Items: []Item{{Course: "COSC001"}, {Alternatives: []course.ID{"COSC010", "COSC011"}}}}
	assert.True(t, Match("COSC001", p))
	assert.True(t, Match("COSC011", p))
	assert.False(t, Match("COSC002", p))
}

func TestMatchSpecific(t *testing.T) {
	pillars := Parse("(#1{[030-089]|094|MATH≥020})", "COSC")
	p := pillars[0]
	assert.True(t, Match("COSC030", p))
	assert.True(t, Match("COSC094", p))
	assert.True(t, Match("MATH022", p))
	assert.False(t, Match("COSC090", p))
	assert.False(t, Match("MATH013", p))
}

func TestMatchDecimalSuffix(t *testing.T) {
	p := Parse("(#1{COSC89.01})", "COSC")[0]
	assert.True(t, Match("COSC089.01", p))
	assert.False(t, Match("COSC089", p), "a decimal section is not its base course")
}

func TestMatchCulminatingFollowsSelection(t *testing.T) {
	c := &Culminating{Sequences: []Sequence{
		{Final: "COSC098", Items: []Item{{Course: "COSC074"}}},
		{Final: "COSC099", Items: []Item{{Alternatives: []course.ID{"COSC076", "COSC077"}}}},
	}}
	assert.True(t, Match("COSC098", c))
	assert.True(t, Match("COSC074", c))
	assert.False(t, Match("COSC099", c))

	SetSelectedSequence([]Pillar{c}, 1)
	assert.False(t, Match("COSC098", c))
	assert.True(t, Match("COSC099", c))
	assert.True(t, Match("COSC077", c))

	SetSelectedSequence([]Pillar{c}, 7)
	assert.False(t, Match("COSC099", c), "an out of range selection matches nothing")
	assert.False(t, Match("COSC098", &Culminating{}), "no sequences matches nothing")
}

func TestMatchMalformedPillars(t *testing.T) {
	assert.False(t, Match("COSC010", &Range{Department: "COSC", Start: 20, End: 10, Count: 1}))
	assert.False(t, Match("COSC010", &Range{Department: "COSC", Start: 1, End: 20}))
	assert.False(t, Match("COSC010", &Specific{Count: 1}))
	assert.False(t, Match("COSC010", &Prerequisites{}))
	assert.False(t, Match("COSC010", nil))
}

func TestSortBySpecificityStable(t *testing.T) {
	wide := &Range{Header: Header{Description: "wide"}, Department: "COSC", Start: 1, End: 99, Count: 3}
	narrow := &Range{Header: Header{Description: "narrow"}, Department: "COSC", Start: 30, End: 49, Count: 2}
	first := &Specific{Header: Header{Description: "first"}, Count: 1}
	second := &Specific{Header: Header{Description: "second"}, Count: 1}
	prereqs := &Prerequisites{Header: Header{Description: "prereqs"}}

	input := []Pillar{wide, first, narrow, prereqs, second}
	sorted := SortBySpecificity(input)

	var descriptions []string
	for _, p := range sorted {
		descriptions = append(descriptions, p.Common().Description)
	}
	assert.Equal(t, []string{"prereqs", "first", "second", "narrow", "wide"}, descriptions)
	assert.Same(t, wide, input[0], "input slice is left untouched")
	assert.Equal(t, []int{3, 1, 4, 2, 0}, SpecificityOrder(input))
}

func TestFlexibility(t *testing.T) {
	assert.Equal(t, 10.0, Flexibility(&Range{Start: 30, End: 49, Count: 2}))
	assert.True(t, Flexibility(&Range{Start: 30, End: 49}) > 1e9)
}

func TestNilPillars(t *testing.T) {
	var r *Range
	pillars := []Pillar{r, &Range{Department: "COSC", Start: 1, End: 9, Count: 1}, (*Specific)(nil), nil}

	assert.True(t, IsNil(r))
	assert.True(t, IsNil(nil))
	assert.False(t, IsNil(pillars[1]))
	assert.Empty(t, Description(r))
	assert.False(t, Match("COSC005", r))
	assert.Empty(t, Departments(r))
	assert.Equal(t, "nil", Signature(r))
	assert.Nil(t, Overlapping(r, pillars))
	assert.Empty(t, Overlapping(pillars[1].(*Range), pillars))
	assert.True(t, Flexibility(r) > 1e9)
	assert.Equal(t, []int{1, 0, 2, 3}, SpecificityOrder(pillars))
}
