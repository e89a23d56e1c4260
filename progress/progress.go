package progress

import (
	"fmt"
	"strings"

	"github.com/brequin/brequin/tracker/allocation"
	"github.com/brequin/brequin/tracker/course"
	"github.com/brequin/brequin/tracker/requirements"
)

// DistributiveSource supplies the distributive tags of a course, for example
// "SOC/QDS" split into its parts.
type DistributiveSource interface {
	Distributives(id course.ID) []string
}

type PillarProgress struct {
	Index       int     `json:"index"`
	Description string  `json:"description"`
	Required    int     `json:"required"`
	Completed   int     `json:"completed"`
	Percent     float64 `json:"percent"`
	Complete    bool    `json:"complete"`
}

type Distributive struct {
	Tag       string `json:"tag"`
	Required  int    `json:"required"`
	Completed int    `json:"completed"`
}

type Summary struct {
	OverallPercent float64          `json:"overallPercent"`
	Pillars        []PillarProgress `json:"pillars"`
	Distributives  []Distributive   `json:"distributives"`
	Remaining      []string         `json:"remaining"`
}

// DistributiveRequirements lists every distributive tag with the number of
// courses required, in display order.
var DistributiveRequirements = []Distributive{
	{Tag: "ART", Required: 1},
	{Tag: "LIT", Required: 1},
	{Tag: "TMV", Required: 1},
	{Tag: "INT", Required: 1},
	{Tag: "SOC", Required: 2},
	{Tag: "QDS", Required: 1},
	{Tag: "SCI", Required: 2},
	{Tag: "TAS", Required: 1},
}

// lab variants count toward their base distributive
var distributiveAliases = map[string]string{
	"SLA": "SCI",
	"TLA": "TAS",
}

// Summarize aggregates an allocation into percentages. Percentages run from 0
// to 100; a pillar that requires nothing reports 0. The source may be nil, in
// which case every distributive reports zero completed courses.
func Summarize(a *allocation.Allocation, pillars []requirements.Pillar, source DistributiveSource) Summary {
	summary := Summary{
		Pillars:   make([]PillarProgress, 0, len(pillars)),
		Remaining: []string{},
	}

	totalRequired := 0
	totalCompleted := 0
	for i, p := range pillars {
		required := requirements.Required(p)
		matched := 0
		complete := false
		if a != nil && i < len(a.Pillars) {
			matched = len(a.Pillars[i].Matched)
			complete = a.Pillars[i].IsComplete
		}
		completed := min(matched, required)

		summary.Pillars = append(summary.Pillars, PillarProgress{
			Index:       i,
			Description: requirements.Description(p),
			Required:    required,
			Completed:   completed,
			Percent:     percent(completed, required),
			Complete:    complete,
		})
		totalRequired += required
		totalCompleted += completed

		if needed := required - completed; needed > 0 && !complete {
			summary.Remaining = append(summary.Remaining, Remaining(p, needed))
		}
	}
	summary.OverallPercent = percent(totalCompleted, totalRequired)

	var completed []course.ID
	if a != nil {
		completed = a.Courses
	}
	summary.Distributives = CountDistributives(completed, source)

	return summary
}

func percent(completed, required int) float64 {
	if required <= 0 {
		return 0
	}
	return 100 * float64(completed) / float64(required)
}

// Remaining describes what is still needed to finish a pillar.
func Remaining(p requirements.Pillar, needed int) string {
	switch p := p.(type) {
	case *requirements.Range:
		return fmt.Sprintf("Need %d more from %v[%v-%v]", needed, p.Department, course.PadNumber(fmt.Sprint(p.Start)), course.PadNumber(fmt.Sprint(p.End)))
	case *requirements.Prerequisites:
		return fmt.Sprintf("Need %d more %v", needed, strings.ToLower(p.Description))
	default:
		return fmt.Sprintf("Need %d more for %v", needed, strings.ToLower(requirements.Description(p)))
	}
}

// CountDistributives counts completed courses per distributive tag, capped at
// the number required. A course carrying several tags counts toward each.
func CountDistributives(completed []course.ID, source DistributiveSource) []Distributive {
	counts := make([]Distributive, len(DistributiveRequirements))
	copy(counts, DistributiveRequirements)
	if source == nil {
		return counts
	}

	positions := make(map[string]int, len(counts))
	for i, d := range counts {
		positions[d.Tag] = i
	}

	for _, id := range completed {
		counted := make(map[string]bool)
		for _, tag := range source.Distributives(id) {
			tag = strings.ToUpper(strings.TrimSpace(tag))
			if alias, ok := distributiveAliases[tag]; ok {
				tag = alias
			}
			i, ok := positions[tag]
			if !ok || counted[tag] {
				continue
			}
			counted[tag] = true
			if counts[i].Completed < counts[i].Required {
				counts[i].Completed++
			}
		}
	}
	return counts
}

// SplitDistributives splits a catalog distributive string such as "SOC/QDS" or
// "SCI-SLA" into tags.
func SplitDistributives(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == '-' || r == ',' || r == ' '
	})
	return fields
}
