package course

import (
	"regexp"
	"strconv"
	"strings"
)

// ID is a normalized course identifier: an uppercase department code followed by
// a catalog number padded to three digits, optionally carrying a decimal suffix
// (COSC001, COSC089.02).
type ID string

var bareIdRe = regexp.MustCompile(`^([A-Z]+)(\d+)$`)
var idRe = regexp.MustCompile(`^([A-Z]+)(\d+)(\.\d+)?$`)

// Normalize pads the catalog number of a DEPT### identifier. Anything that is not
// letters followed by digits, including identifiers with a decimal suffix, is
// returned unchanged.
func Normalize(raw string) ID {
	submatches := bareIdRe.FindStringSubmatch(raw)
	if submatches == nil {
		return ID(raw)
	}
	return ID(submatches[1] + PadNumber(submatches[2]))
}

// NormalizeAll normalizes every identifier, preserving order.
func NormalizeAll(raw []string) []ID {
	ids := make([]ID, 0, len(raw))
	for _, r := range raw {
		ids = append(ids, Normalize(r))
	}
	return ids
}

// PadNumber left-pads catalog number digits with zeros to three characters.
// Longer numbers are kept verbatim.
func PadNumber(digits string) string {
	if len(digits) >= 3 {
		return digits
	}
	return strings.Repeat("0", 3-len(digits)) + digits
}

// Make builds an ID from a department code and integer catalog number.
func Make(department string, number int) ID {
	return ID(department + PadNumber(strconv.Itoa(number)))
}

type Parts struct {
	Department string
	Number     int
	Decimal    string
}

// Split decomposes an identifier into department, integer catalog number and
// decimal suffix. The suffix keeps its leading dot.
func Split(id ID) (Parts, bool) {
	submatches := idRe.FindStringSubmatch(string(id))
	if submatches == nil {
		return Parts{}, false
	}
	number, err := strconv.Atoi(submatches[2])
	if err != nil {
		return Parts{}, false
	}
	return Parts{Department: submatches[1], Number: number, Decimal: submatches[3]}, true
}

func (id ID) Department() string {
	parts, ok := Split(id)
	if !ok {
		return ""
	}
	return parts.Department
}

func (id ID) String() string {
	return string(id)
}
