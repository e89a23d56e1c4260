package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLite(t *testing.T) *Lite {
	t.Helper()
	store, err := OpenLite(filepath.Join(t.TempDir(), "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestLiteImplementsStore(t *testing.T) {
	var _ Store = (*Lite)(nil)
	var _ Store = (*Database)(nil)
}

func TestLiteMajors(t *testing.T) {
	ctx := context.Background()
	store := openTestLite(t)

	require.NoError(t, store.InsertMajors(ctx, []Major{
		{Code: "MATH", Name: "Mathematics", Department: "MATH", Requirements: "(@[MATH3])"},
		{Code: "COSC", Name: "Computer Science", Department: "COSC", Requirements: "(@[COSC1])"},
	}))
	require.NoError(t, store.InsertMajors(ctx, []Major{
		{Code: "COSC", Name: "Computer Science", Department: "COSC", Requirements: "(@[COSC1,COSC10])"},
	}))

	majors, err := store.ListMajors(ctx)
	require.NoError(t, err)
	require.Len(t, majors, 2)
	assert.Equal(t, "COSC", majors[0].Code)
	assert.Equal(t, "(@[COSC1,COSC10])", majors[0].Requirements, "insert upserts")
	assert.Equal(t, "MATH", majors[1].Code)
}

func TestLiteCompletedCoursesKeepOrder(t *testing.T) {
	ctx := context.Background()
	store := openTestLite(t)

	courseIds, err := store.ListCompletedCourses(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, courseIds)

	require.NoError(t, store.ReplaceCompletedCourses(ctx, "u1", []string{"COSC50", "COSC1", "MATH3"}))
	require.NoError(t, store.ReplaceCompletedCourses(ctx, "u2", []string{"ENGL5"}))

	courseIds, err = store.ListCompletedCourses(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"COSC50", "COSC1", "MATH3"}, courseIds)

	require.NoError(t, store.ReplaceCompletedCourses(ctx, "u1", []string{"MATH3"}))
	courseIds, err = store.ListCompletedCourses(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"MATH3"}, courseIds)

	courseIds, err = store.ListCompletedCourses(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"ENGL5"}, courseIds)
}

func TestLiteSelectedSequence(t *testing.T) {
	ctx := context.Background()
	store := openTestLite(t)

	_, err := store.SelectedSequence(ctx, "u1", "COSC")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.SaveSelectedSequence(ctx, SelectedSequence{UserId: "u1", MajorCode: "COSC", SequenceIndex: 1}))
	require.NoError(t, store.SaveSelectedSequence(ctx, SelectedSequence{UserId: "u1", MajorCode: "COSC", SequenceIndex: 2}))

	index, err := store.SelectedSequence(ctx, "u1", "COSC")
	require.NoError(t, err)
	assert.Equal(t, 2, index)
}

func TestLiteDepartmentCourses(t *testing.T) {
	ctx := context.Background()
	store := openTestLite(t)

	require.NoError(t, store.InsertCoursesDetails(ctx, []CourseDetails{
		{SubjectAreaCode: "COSC", CatalogNumber: "0050", Name: "Software Design", Distributives: "TLA", Description: "x\x00y"},
		{SubjectAreaCode: "COSC", CatalogNumber: "0001", Name: "Intro", Distributives: "TAS"},
		{SubjectAreaCode: "MATH", CatalogNumber: "0003", Name: "Calculus", Distributives: "QDS"},
	}))

	coursesDetails, err := store.ListDepartmentCourses(ctx, "COSC")
	require.NoError(t, err)
	require.Len(t, coursesDetails, 2)
	assert.Equal(t, "0001", coursesDetails[0].CatalogNumber)
	assert.Equal(t, "xy", coursesDetails[1].Description)

	coursesDetails, err = store.ListDepartmentCourses(ctx, "ENGL")
	require.NoError(t, err)
	assert.Empty(t, coursesDetails)
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "SELECT a FROM t WHERE b = ? AND c = ?", rebind("SELECT a FROM t WHERE b = $1 AND c = $2"))
}
