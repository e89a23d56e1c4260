package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const listMajors = `SELECT code, name, department, requirements FROM majors ORDER BY code`
const insertMajor = `INSERT INTO majors (code, name, department, requirements) VALUES ($1, $2, $3, $4) ON CONFLICT (code) DO UPDATE SET name=EXCLUDED.name, department=EXCLUDED.department, requirements=EXCLUDED.requirements`

const listCompletedCourses = `SELECT course_id FROM completed_courses WHERE user_id = $1 ORDER BY position`
const deleteCompletedCourses = `DELETE FROM completed_courses WHERE user_id = $1`
const insertCompletedCourse = `INSERT INTO completed_courses (user_id, position, course_id) VALUES ($1, $2, $3)`

const selectSelectedSequence = `SELECT sequence_index FROM selected_sequences WHERE user_id = $1 AND major_code = $2`
const upsertSelectedSequence = `INSERT INTO selected_sequences (user_id, major_code, sequence_index) VALUES ($1, $2, $3) ON CONFLICT (user_id, major_code) DO UPDATE SET sequence_index=EXCLUDED.sequence_index`

const listDepartmentCourses = `SELECT subject_area_code, catalog_number, name, distributives, terms_offered, description FROM courses_details WHERE subject_area_code = $1 ORDER BY catalog_number`
const insertCourseDetails = `INSERT INTO courses_details (subject_area_code, catalog_number, name, distributives, terms_offered, description) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (subject_area_code, catalog_number) DO UPDATE SET name=EXCLUDED.name, distributives=EXCLUDED.distributives, terms_offered=EXCLUDED.terms_offered, description=EXCLUDED.description`

func insertCallback(ct pgconn.CommandTag) error {
	return nil
}

func (d *Database) ListMajors(ctx context.Context) ([]Major, error) {
	sql := listMajors
	rows, err := d.Pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var majors []Major
	for rows.Next() {
		var major Major
		if err := rows.Scan(&major.Code, &major.Name, &major.Department, &major.Requirements); err != nil {
			return nil, err
		}
		majors = append(majors, major)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return majors, nil
}

func (d *Database) InsertMajors(ctx context.Context, majors []Major) error {
	if len(majors) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery

	for _, major := range majors {
		queuedQueries = append(queuedQueries, batch.Queue(insertMajor, major.Code, major.Name, major.Department, major.Requirements))
	}

	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(insertCallback)
	}

	if err := d.Pool.SendBatch(ctx, &batch).Close(); err != nil {
		return err
	}

	return nil
}

func (d *Database) ListCompletedCourses(ctx context.Context, userId string) ([]string, error) {
	sql := listCompletedCourses
	rows, err := d.Pool.Query(ctx, sql, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courseIds := []string{}
	for rows.Next() {
		var courseId string
		if err := rows.Scan(&courseId); err != nil {
			return nil, err
		}
		courseIds = append(courseIds, courseId)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courseIds, nil
}

// ReplaceCompletedCourses swaps a user's whole list in one transaction. List
// order is kept: it decides allocation ties.
func (d *Database) ReplaceCompletedCourses(ctx context.Context, userId string, courseIds []string) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := pgx.Batch{}
	batch.Queue(deleteCompletedCourses, userId).Exec(insertCallback)
	for position, courseId := range courseIds {
		batch.Queue(insertCompletedCourse, userId, position, courseId).Exec(insertCallback)
	}

	if err := tx.SendBatch(ctx, &batch).Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (d *Database) SelectedSequence(ctx context.Context, userId, majorCode string) (int, error) {
	var sequenceIndex int
	err := d.Pool.QueryRow(ctx, selectSelectedSequence, userId, majorCode).Scan(&sequenceIndex)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return sequenceIndex, nil
}

func (d *Database) SaveSelectedSequence(ctx context.Context, selected SelectedSequence) error {
	_, err := d.Pool.Exec(ctx, upsertSelectedSequence, selected.UserId, selected.MajorCode, selected.SequenceIndex)
	return err
}

func (d *Database) ListDepartmentCourses(ctx context.Context, subjectAreaCode string) ([]CourseDetails, error) {
	sql := listDepartmentCourses
	rows, err := d.Pool.Query(ctx, sql, subjectAreaCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coursesDetails []CourseDetails
	for rows.Next() {
		var courseDetails CourseDetails
		if err := rows.Scan(
			&courseDetails.SubjectAreaCode,
			&courseDetails.CatalogNumber,
			&courseDetails.Name,
			&courseDetails.Distributives,
			&courseDetails.TermsOffered,
			&courseDetails.Description,
		); err != nil {
			return nil, err
		}
		coursesDetails = append(coursesDetails, courseDetails)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return coursesDetails, nil
}

func (d *Database) InsertCoursesDetails(ctx context.Context, coursesDetails []CourseDetails) error {
	if len(coursesDetails) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	var queuedQueries []*pgx.QueuedQuery

	for _, courseDetails := range coursesDetails {
		queuedQueries = append(
			queuedQueries,
			batch.Queue(
				insertCourseDetails,
				courseDetails.SubjectAreaCode,
				courseDetails.CatalogNumber,
				courseDetails.Name,
				courseDetails.Distributives,
				courseDetails.TermsOffered,
				strings.ReplaceAll(courseDetails.Description, "\x00", ""),
			),
		)
	}

	for _, queuedQuery := range queuedQueries {
		queuedQuery.Exec(insertCallback)
	}

	if err := d.Pool.SendBatch(ctx, &batch).Close(); err != nil {
		return err
	}

	return nil
}
