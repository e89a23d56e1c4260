package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brequin/brequin/tracker/course"
	"github.com/brequin/brequin/tracker/db"
	"github.com/brequin/brequin/tracker/requirements"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	mu      sync.Mutex
	calls   map[string]int
	courses map[string][]db.CourseDetails
	err     error
}

func newCountingSource() *countingSource {
	return &countingSource{
		calls: make(map[string]int),
		courses: map[string][]db.CourseDetails{
			"COSC": {
				{SubjectAreaCode: "COSC", CatalogNumber: "001", Name: "Intro", Distributives: "TAS"},
				{SubjectAreaCode: "COSC", CatalogNumber: "010", Name: "Problem Solving", Distributives: "TLA"},
				{SubjectAreaCode: "COSC", CatalogNumber: "031", Name: "Algorithms"},
				{SubjectAreaCode: "COSC", CatalogNumber: "050", Name: "Software Design"},
				{SubjectAreaCode: "COSC", CatalogNumber: "089.02", Name: "Topics"},
			},
			"MATH": {
				{SubjectAreaCode: "MATH", CatalogNumber: "003", Name: "Calculus", Distributives: "QDS"},
			},
		},
	}
}

func (s *countingSource) ListDepartmentCourses(ctx context.Context, subjectAreaCode string) ([]db.CourseDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[subjectAreaCode]++
	if s.err != nil {
		return nil, s.err
	}
	return s.courses[subjectAreaCode], nil
}

func (s *countingSource) count(subjectAreaCode string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[subjectAreaCode]
}

func ids(courses []Course) []course.ID {
	result := make([]course.ID, 0, len(courses))
	for _, c := range courses {
		result = append(result, c.ID)
	}
	return result
}

func TestDepartmentIsCached(t *testing.T) {
	source := newCountingSource()
	cache := NewCache(source, 16, time.Hour)
	ctx := context.Background()

	courses, err := cache.Department(ctx, "COSC")
	require.NoError(t, err)
	require.Len(t, courses, 5)
	assert.Equal(t, course.ID("COSC089.02"), courses[4].ID)
	assert.Equal(t, []string{"TAS"}, courses[0].Distributives)

	_, err = cache.Department(ctx, "COSC")
	require.NoError(t, err)
	assert.Equal(t, 1, source.count("COSC"))
}

func TestCoursesForPillar(t *testing.T) {
	source := newCountingSource()
	cache := NewCache(source, 16, time.Hour)
	ctx := context.Background()

	pillars := requirements.Parse("(#2[COSC30-COSC89] & @[COSC1,MATH3])", "COSC")
	require.Len(t, pillars, 2)

	prerequisites, err := cache.CoursesForPillar(ctx, pillars[0])
	require.NoError(t, err)
	assert.Equal(t, []course.ID{"COSC001", "MATH003"}, ids(prerequisites))

	ranged, err := cache.CoursesForPillar(ctx, pillars[1])
	require.NoError(t, err)
	assert.Equal(t, []course.ID{"COSC031", "COSC050", "COSC089.02"}, ids(ranged))

	// same signature from another major shares the entry
	again := requirements.Parse("(#2[COSC30-COSC89])", "COSC")
	_, err = cache.CoursesForPillar(ctx, again[0])
	require.NoError(t, err)
	assert.Equal(t, 1, source.count("COSC"))
	assert.Equal(t, 1, source.count("MATH"))
}

func TestInvalidateAndPurge(t *testing.T) {
	source := newCountingSource()
	cache := NewCache(source, 16, time.Hour)
	ctx := context.Background()
	pillar := requirements.Parse("(#1[COSC1-COSC10])", "COSC")[0]

	_, err := cache.CoursesForPillar(ctx, pillar)
	require.NoError(t, err)

	source.mu.Lock()
	source.courses["COSC"] = append(source.courses["COSC"], db.CourseDetails{SubjectAreaCode: "COSC", CatalogNumber: "005", Name: "New"})
	source.mu.Unlock()

	cache.Invalidate(pillar)
	courses, err := cache.CoursesForPillar(ctx, pillar)
	require.NoError(t, err)
	assert.Len(t, courses, 2, "department listing is still cached")

	cache.Purge()
	courses, err = cache.CoursesForPillar(ctx, pillar)
	require.NoError(t, err)
	assert.Equal(t, []course.ID{"COSC001", "COSC010", "COSC005"}, ids(courses))
	assert.Equal(t, 2, source.count("COSC"))
}

func TestEntriesExpire(t *testing.T) {
	source := newCountingSource()
	cache := NewCache(source, 16, 20*time.Millisecond)
	ctx := context.Background()

	_, err := cache.Department(ctx, "MATH")
	require.NoError(t, err)
	time.Sleep(60 * time.Millisecond)
	_, err = cache.Department(ctx, "MATH")
	require.NoError(t, err)
	assert.Equal(t, 2, source.count("MATH"))
}

func TestConcurrentMissesLoadOnce(t *testing.T) {
	source := newCountingSource()
	cache := NewCache(source, 16, time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Department(ctx, "COSC")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, source.count("COSC"))
}

func TestConcurrentPillarMissesShareLoad(t *testing.T) {
	source := newCountingSource()
	cache := NewCache(source, 16, time.Hour)
	ctx := context.Background()
	pillar := requirements.Parse("(#2[COSC30-COSC89])", "COSC")[0]

	results := make([][]Course, 8)
	var wg sync.WaitGroup
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			courses, err := cache.CoursesForPillar(ctx, pillar)
			assert.NoError(t, err)
			results[i] = courses
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, source.count("COSC"))
	for _, courses := range results {
		assert.Equal(t, []course.ID{"COSC031", "COSC050", "COSC089.02"}, ids(courses))
	}
}

func TestLookup(t *testing.T) {
	cache := NewCache(newCountingSource(), 16, time.Hour)
	ctx := context.Background()

	found, err := cache.Lookup(ctx, "COSC", "50")
	require.NoError(t, err)
	assert.Equal(t, "Software Design", found.Name)

	_, err = cache.Lookup(ctx, "COSC", "99")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestSourceErrorIsNotCached(t *testing.T) {
	source := newCountingSource()
	source.err = errors.New("boom")
	cache := NewCache(source, 16, time.Hour)
	ctx := context.Background()

	_, err := cache.Department(ctx, "COSC")
	assert.ErrorContains(t, err, "boom")

	source.mu.Lock()
	source.err = nil
	source.mu.Unlock()
	courses, err := cache.Department(ctx, "COSC")
	require.NoError(t, err)
	assert.Len(t, courses, 5)
}

func TestIndexDistributives(t *testing.T) {
	cache := NewCache(newCountingSource(), 16, time.Hour)
	index, err := cache.Index(context.Background(), []course.ID{"COSC010", "MATH003", "ENGL001", "bogus"})
	require.NoError(t, err)
	assert.Equal(t, []string{"TLA"}, index.Distributives("COSC010"))
	assert.Equal(t, []string{"QDS"}, index.Distributives("MATH003"))
	assert.Empty(t, index.Distributives("ENGL001"))
}
