package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/brequin/brequin/tracker/course"
	"github.com/brequin/brequin/tracker/db"
	"github.com/brequin/brequin/tracker/progress"
	"github.com/brequin/brequin/tracker/requirements"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

type Course struct {
	ID            course.ID `json:"id"`
	Name          string    `json:"name"`
	Distributives []string  `json:"distributives"`
	TermsOffered  string    `json:"termsOffered"`
	Description   string    `json:"description"`
}

// Source is where the cache reads department listings from. db.Store
// satisfies it.
type Source interface {
	ListDepartmentCourses(ctx context.Context, subjectAreaCode string) ([]db.CourseDetails, error)
}

func fromDetails(details db.CourseDetails) Course {
	return Course{
		ID:            course.Normalize(details.SubjectAreaCode + details.CatalogNumber),
		Name:          details.Name,
		Distributives: progress.SplitDistributives(details.Distributives),
		TermsOffered:  details.TermsOffered,
		Description:   details.Description,
	}
}

// Cache memoizes department listings and the courses matching each pillar.
// Pillar entries are keyed by requirements.Signature so structurally equal
// pillars from different majors share one entry. Entries expire after the
// configured TTL.
type Cache struct {
	source      Source
	departments *expirable.LRU[string, []Course]
	pillars     *expirable.LRU[string, []Course]

	// loads collapses concurrent misses on one key into a single source call.
	loads singleflight.Group
}

func NewCache(source Source, size int, ttl time.Duration) *Cache {
	return &Cache{
		source:      source,
		departments: expirable.NewLRU[string, []Course](size, nil, ttl),
		pillars:     expirable.NewLRU[string, []Course](size, nil, ttl),
	}
}

func (c *Cache) Department(ctx context.Context, subjectAreaCode string) ([]Course, error) {
	if courses, ok := c.departments.Get(subjectAreaCode); ok {
		return courses, nil
	}

	loaded, err, _ := c.loads.Do("department:"+subjectAreaCode, func() (interface{}, error) {
		if courses, ok := c.departments.Get(subjectAreaCode); ok {
			return courses, nil
		}

		coursesDetails, err := c.source.ListDepartmentCourses(ctx, subjectAreaCode)
		if err != nil {
			return nil, fmt.Errorf("list %v courses: %w", subjectAreaCode, err)
		}
		courses := make([]Course, 0, len(coursesDetails))
		for _, details := range coursesDetails {
			courses = append(courses, fromDetails(details))
		}
		c.departments.Add(subjectAreaCode, courses)
		return courses, nil
	})
	if err != nil {
		return nil, err
	}
	return loaded.([]Course), nil
}

// CoursesForPillar lists the catalog courses a pillar accepts, in department
// then catalog order.
func (c *Cache) CoursesForPillar(ctx context.Context, p requirements.Pillar) ([]Course, error) {
	key := requirements.Signature(p)
	if courses, ok := c.pillars.Get(key); ok {
		return courses, nil
	}

	loaded, err, _ := c.loads.Do("pillar:"+key, func() (interface{}, error) {
		if courses, ok := c.pillars.Get(key); ok {
			return courses, nil
		}

		courses := []Course{}
		for _, dept := range requirements.Departments(p) {
			departmentCourses, err := c.Department(ctx, dept)
			if err != nil {
				return nil, err
			}
			for _, candidate := range departmentCourses {
				if requirements.Match(candidate.ID, p) {
					courses = append(courses, candidate)
				}
			}
		}
		c.pillars.Add(key, courses)
		return courses, nil
	})
	if err != nil {
		return nil, err
	}
	return loaded.([]Course), nil
}

// Lookup finds one course. The catalog number is padded before comparison.
func (c *Cache) Lookup(ctx context.Context, subjectAreaCode, catalogNumber string) (Course, error) {
	id := course.Normalize(subjectAreaCode + catalogNumber)
	courses, err := c.Department(ctx, subjectAreaCode)
	if err != nil {
		return Course{}, err
	}
	for _, candidate := range courses {
		if candidate.ID == id {
			return candidate, nil
		}
	}
	return Course{}, fmt.Errorf("course %v: %w", id, db.ErrNotFound)
}

// Index loads every department the ids belong to and indexes their courses.
// Ids missing from the catalog are left out.
func (c *Cache) Index(ctx context.Context, ids []course.ID) (Index, error) {
	index := make(Index)
	loaded := make(map[string]bool)
	for _, id := range ids {
		dept := id.Department()
		if dept == "" || loaded[dept] {
			continue
		}
		loaded[dept] = true

		courses, err := c.Department(ctx, dept)
		if err != nil {
			return nil, err
		}
		for _, entry := range courses {
			index[entry.ID] = entry
		}
	}
	return index, nil
}

// Invalidate drops the cached course list of one pillar.
func (c *Cache) Invalidate(p requirements.Pillar) {
	c.pillars.Remove(requirements.Signature(p))
}

// Purge drops every cached entry, for example after a catalog scrape.
func (c *Cache) Purge() {
	c.departments.Purge()
	c.pillars.Purge()
}

type Index map[course.ID]Course

func (i Index) Distributives(id course.ID) []string {
	return i[id].Distributives
}

var _ progress.DistributiveSource = Index(nil)
