package requirements

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brequin/brequin/tracker/course"
)

// Candidates lists the concrete courses a pillar can accept. Ranges expand to
// every zero-padded catalog number between their bounds; range and minimum
// options of specific pillars are left to catalog lookups.
func Candidates(p Pillar) []course.ID {
	if !Valid(p) {
		return nil
	}

	var candidates []course.ID
	switch p := p.(type) {
	case *Prerequisites:
		for _, item := range p.Items {
			candidates = append(candidates, item.Options()...)
		}
	case *Specific:
		for _, option := range p.Options {
			if option.Kind == course.OptionExact {
				candidates = append(candidates, option.Course)
			}
		}
	case *Range:
		if p.Department == "" {
			return nil
		}
		for n := p.Start; n <= p.End; n++ {
			candidates = append(candidates, course.Make(p.Department, n))
		}
	case *Culminating:
		for _, slot := range p.Slots() {
			candidates = append(candidates, slot...)
		}
	}
	return candidates
}

// Departments lists, sorted, every department a pillar draws courses from.
func Departments(p Pillar) []string {
	if IsNil(p) {
		return []string{}
	}
	seen := make(map[string]bool)
	add := func(dept string) {
		if dept != "" {
			seen[dept] = true
		}
	}

	switch p := p.(type) {
	case *Specific:
		for _, option := range p.Options {
			add(option.Department)
		}
	case *Range:
		add(p.Department)
	case *Prerequisites, *Culminating:
		for _, id := range Candidates(p) {
			add(id.Department())
		}
	}

	departments := make([]string, 0, len(seen))
	for dept := range seen {
		departments = append(departments, dept)
	}
	sort.Strings(departments)
	return departments
}

// Signature is a deterministic key describing what a pillar accepts. Two
// pillars with the same signature match the same courses.
func Signature(p Pillar) string {
	if IsNil(p) {
		return "nil"
	}
	switch p := p.(type) {
	case *Prerequisites:
		return "prerequisites:" + itemsSignature(p.Items)
	case *Specific:
		options := make([]string, 0, len(p.Options))
		for _, option := range p.Options {
			options = append(options, option.String())
		}
		return fmt.Sprintf("specific:%v:%d:%v", p.Department, p.Count, strings.Join(options, "|"))
	case *Range:
		return fmt.Sprintf("range:%v:%d-%d:%d", p.Department, p.Start, p.End, p.Count)
	case *Culminating:
		sequence, ok := p.Active()
		if !ok {
			return fmt.Sprintf("culminating:%d:", p.Selected)
		}
		return fmt.Sprintf("culminating:%d:%v:%v", p.Selected, sequence.Final, itemsSignature(sequence.Items))
	default:
		return "unknown"
	}
}

func itemsSignature(items []Item) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item.IsAlternative() {
			parts = append(parts, "{"+joinIds(item.Alternatives, "|")+"}")
			continue
		}
		parts = append(parts, string(item.Course))
	}
	return strings.Join(parts, ",")
}

func joinIds(ids []course.ID, sep string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, string(id))
	}
	return strings.Join(parts, sep)
}
