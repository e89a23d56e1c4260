package course

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type OptionKind int

const (
	OptionExact OptionKind = iota
	OptionRange
	OptionMinimum
)

// Option is one accepted shape inside a course list: an exact course, a
// bracketed number range, or a minimum catalog number within a department.
type Option struct {
	Kind       OptionKind
	Department string
	Course     ID
	Start      int
	End        int
	Minimum    int
}

var exactOptionRe = regexp.MustCompile(`^([A-Z]*)(\d+)(\.\d+)?$`)
var boundRe = regexp.MustCompile(`^([A-Z]*)\s*(\d+)$`)

// ParseOption reads exact (DEPT###, ###), range ([DEPT###-DEPT###], [###-###])
// and minimum (DEPT≥###, ≥###) options. Options without a department inherit
// department.
func ParseOption(raw, department string) (Option, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Option{}, false
	}

	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		lower, upper, found := strings.Cut(raw[1:len(raw)-1], "-")
		if !found {
			return Option{}, false
		}
		startDept, start, ok := parseBound(lower)
		if !ok {
			return Option{}, false
		}
		endDept, end, ok := parseBound(upper)
		if !ok {
			return Option{}, false
		}
		dept, ok := MergeDepartments(startDept, endDept, department)
		if !ok || start > end {
			return Option{}, false
		}
		return Option{Kind: OptionRange, Department: dept, Start: start, End: end}, true
	}

	if dept, minimum, found := cutMinimum(raw); found {
		dept = strings.TrimSpace(dept)
		if dept == "" {
			dept = department
		}
		number, err := strconv.Atoi(strings.TrimSpace(minimum))
		if err != nil || dept == "" {
			return Option{}, false
		}
		return Option{Kind: OptionMinimum, Department: dept, Minimum: number}, true
	}

	submatches := exactOptionRe.FindStringSubmatch(raw)
	if submatches == nil {
		return Option{}, false
	}
	dept := submatches[1]
	if dept == "" {
		dept = department
	}
	if dept == "" {
		return Option{}, false
	}
	return Option{Kind: OptionExact, Department: dept, Course: ID(dept + PadNumber(submatches[2]) + submatches[3])}, true
}

// MergeDepartments reconciles the department codes written on both ends of a
// range. A missing code inherits the other end, then fallback. Two explicit
// codes must agree.
func MergeDepartments(start, end, fallback string) (string, bool) {
	switch {
	case start != "" && end != "" && start != end:
		return "", false
	case start != "":
		return start, true
	case end != "":
		return end, true
	default:
		return fallback, true
	}
}

func parseBound(s string) (string, int, bool) {
	submatches := boundRe.FindStringSubmatch(strings.TrimSpace(s))
	if submatches == nil {
		return "", 0, false
	}
	number, err := strconv.Atoi(submatches[2])
	if err != nil {
		return "", 0, false
	}
	return submatches[1], number, true
}

func cutMinimum(s string) (string, string, bool) {
	if before, after, found := strings.Cut(s, "≥"); found {
		return before, after, true
	}
	return strings.Cut(s, ">=")
}

// Matches reports whether id is accepted by the option. Range and minimum
// options compare the integer catalog number, so decimal sections fall inside
// the range of their base number. Exact options compare the full identifier.
func (o Option) Matches(id ID) bool {
	switch o.Kind {
	case OptionExact:
		return o.Course != "" && id == o.Course
	case OptionRange:
		parts, ok := Split(id)
		if !ok {
			return false
		}
		return (o.Department == "" || parts.Department == o.Department) && parts.Number >= o.Start && parts.Number <= o.End
	case OptionMinimum:
		parts, ok := Split(id)
		if !ok {
			return false
		}
		return parts.Department == o.Department && parts.Number >= o.Minimum
	default:
		return false
	}
}

func (o Option) String() string {
	switch o.Kind {
	case OptionExact:
		return string(o.Course)
	case OptionRange:
		return fmt.Sprintf("[%v-%v]", Make(o.Department, o.Start), Make(o.Department, o.End))
	case OptionMinimum:
		return fmt.Sprintf("%v≥%v", o.Department, PadNumber(strconv.Itoa(o.Minimum)))
	default:
		return ""
	}
}
