package requirements

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/brequin/brequin/tracker/course"
)

var (
	ErrUnrecognizedSegment = errors.New("unrecognized segment")
	ErrDepartmentMismatch  = errors.New("range bounds name different departments")
	ErrEmptyBlock          = errors.New("block lists no courses")
	ErrInvalidCount        = errors.New("invalid course count")
)

// MaxCatalogNumber closes the range of a minimum-number range pillar.
const MaxCatalogNumber = 999

var rangeRe = regexp.MustCompile(`^#(\d+)\[\s*([A-Z]*)\s*(\d+)\s*-\s*([A-Z]*)\s*(\d+)\s*\]$`)
var minimumRangeRe = regexp.MustCompile(`^#(\d+)\[\s*([A-Z]*)\s*(?:≥|>=)\s*(\d+)\s*\]$`)
var specificRe = regexp.MustCompile(`^#(\d*)\{(.*)\}$`)

// Skipped records a segment the parser could not turn into a pillar.
type Skipped struct {
	Segment string
	Err     error
}

func (s Skipped) Error() string {
	return fmt.Sprintf("%q: %v", s.Segment, s.Err)
}

// Parse turns a requirement string into pillars sorted by specificity, with
// Index set to each pillar's position. Malformed segments are dropped.
func Parse(requirement, department string) []Pillar {
	pillars, _ := ParseReport(requirement, department)
	return pillars
}

// ParseReport is Parse that also returns the segments it dropped so callers can
// log them.
func ParseReport(requirement, department string) ([]Pillar, []Skipped) {
	expression := RequirementExpression{stripOuter(requirement)}
	if len(expression.string) == 0 {
		return nil, nil
	}

	tokens := expression.Tokenize()
	pillars, skipped := Start(tokens, department)

	pillars = SortBySpecificity(pillars)
	for i, p := range pillars {
		p.Common().Index = i
	}
	return pillars, skipped
}

func Start(tokens *[]Token, department string) (pillars []Pillar, skipped []Skipped) {
	for len(*tokens) > 0 {
		switch (*tokens)[0].Type {
		case TokenSegment:
			segment, _ := Eat(tokens, TokenSegment)
			pillar, err := Segment(segment, department)
			if err != nil {
				skipped = append(skipped, Skipped{Segment: segment, Err: err})
				continue
			}
			pillars = append(pillars, pillar)
		case TokenAnd:
			Eat(tokens, TokenAnd)
		case TokenEnd:
			Eat(tokens, TokenEnd)
			return pillars, skipped
		}
	}
	return pillars, skipped
}

// Segment parses one '&'-separated segment. The first matching shape wins:
// culminating $[...], prerequisites @[...], range #N[...], specific #N{...}.
func Segment(segment, department string) (Pillar, error) {
	segment = strings.TrimSpace(segment)

	switch {
	case strings.HasPrefix(segment, "$[") && strings.HasSuffix(segment, "]"):
		return culminating(segment[2 : len(segment)-1])
	case strings.HasPrefix(segment, "@[") && strings.HasSuffix(segment, "]"):
		return prerequisites(segment[2 : len(segment)-1])
	}

	if submatches := rangeRe.FindStringSubmatch(segment); submatches != nil {
		return coursesRange(submatches, department)
	}
	if submatches := minimumRangeRe.FindStringSubmatch(segment); submatches != nil {
		return minimumRange(submatches, department)
	}
	if submatches := specificRe.FindStringSubmatch(segment); submatches != nil {
		return specific(submatches, department)
	}

	return nil, ErrUnrecognizedSegment
}

func culminating(inner string) (Pillar, error) {
	var sequences []Sequence
	for _, part := range splitTopLevel(inner, ';') {
		final, prereqs, _ := strings.Cut(part, ":")
		final = strings.TrimSpace(final)
		if final == "" {
			continue
		}
		sequences = append(sequences, Sequence{Final: course.Normalize(final), Items: ParseItems(prereqs)})
	}
	if len(sequences) == 0 {
		return nil, ErrEmptyBlock
	}
	return &Culminating{Header: Header{Description: "Culminating experience"}, Sequences: sequences}, nil
}

func prerequisites(inner string) (Pillar, error) {
	items := ParseItems(inner)
	if len(items) == 0 {
		return nil, ErrEmptyBlock
	}
	return &Prerequisites{Header: Header{Description: "Required foundation courses"}, Items: items}, nil
}

func coursesRange(submatches []string, department string) (Pillar, error) {
	count, err := strconv.Atoi(submatches[1])
	if err != nil || count < 1 {
		return nil, ErrInvalidCount
	}
	dept, ok := course.MergeDepartments(submatches[2], submatches[4], department)
	if !ok {
		return nil, ErrDepartmentMismatch
	}
	start, err := strconv.Atoi(submatches[3])
	if err != nil {
		return nil, ErrUnrecognizedSegment
	}
	end, err := strconv.Atoi(submatches[5])
	if err != nil || start > end {
		return nil, ErrUnrecognizedSegment
	}

	return &Range{
		Header:     Header{Description: fmt.Sprintf("%d %v from %v %d-%d", count, plural(count, "course"), dept, start, end)},
		Department: dept,
		Start:      start,
		End:        end,
		Count:      count,
	}, nil
}

func minimumRange(submatches []string, department string) (Pillar, error) {
	count, err := strconv.Atoi(submatches[1])
	if err != nil || count < 1 {
		return nil, ErrInvalidCount
	}
	dept := submatches[2]
	if dept == "" {
		dept = department
	}
	start, err := strconv.Atoi(submatches[3])
	if err != nil || start > MaxCatalogNumber {
		return nil, ErrUnrecognizedSegment
	}

	return &Range{
		Header:     Header{Description: fmt.Sprintf("%d %v from %v %d or above", count, plural(count, "course"), dept, start)},
		Department: dept,
		Start:      start,
		End:        MaxCatalogNumber,
		Count:      count,
	}, nil
}

func specific(submatches []string, department string) (Pillar, error) {
	count := 1
	if submatches[1] != "" {
		n, err := strconv.Atoi(submatches[1])
		if err != nil || n < 1 {
			return nil, ErrInvalidCount
		}
		count = n
	}

	var options []course.Option
	for _, raw := range strings.Split(submatches[2], "|") {
		if option, ok := course.ParseOption(raw, department); ok {
			options = append(options, option)
		}
	}
	if len(options) == 0 {
		return nil, ErrEmptyBlock
	}

	return &Specific{
		Header:     Header{Description: fmt.Sprintf("%d %v from advanced options", count, plural(count, "course"))},
		Department: department,
		Count:      count,
		Options:    options,
	}, nil
}

// ParseItems splits a comma-separated prerequisite list. An item written as
// {A|B|C} becomes an alternative; anything else is a single course.
func ParseItems(s string) []Item {
	var items []Item
	for _, raw := range splitTopLevel(s, ',') {
		open := strings.Index(raw, "{")
		closing := strings.LastIndex(raw, "}")
		if open < 0 || closing < open {
			items = append(items, Item{Course: course.Normalize(raw)})
			continue
		}

		var alternatives []course.ID
		for _, option := range strings.Split(raw[open+1:closing], "|") {
			if option = strings.TrimSpace(option); option != "" {
				alternatives = append(alternatives, course.Normalize(option))
			}
		}
		if len(alternatives) > 0 {
			items = append(items, Item{Alternatives: alternatives})
		}
	}
	return items
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
