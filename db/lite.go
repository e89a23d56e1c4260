package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// Lite is the single-file SQLite store for local use.
type Lite struct {
	sql *sql.DB
}

func OpenLite(path string) (*Lite, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Lite{sql: conn}, nil
}

func (l *Lite) Close() {
	l.sql.Close()
}

// rebind rewrites $N placeholders for SQLite.
func rebind(query string) string {
	for n := 9; n >= 1; n-- {
		query = strings.ReplaceAll(query, fmt.Sprintf("$%d", n), "?")
	}
	return query
}

func (l *Lite) ListMajors(ctx context.Context) ([]Major, error) {
	rows, err := l.sql.QueryContext(ctx, listMajors)
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
	return majors, rows.Err()
}

func (l *Lite) InsertMajors(ctx context.Context, majors []Major) error {
	if len(majors) == 0 {
		return nil
	}
	return l.inTx(ctx, func(tx *sql.Tx) error {
		for _, major := range majors {
			if _, err := tx.ExecContext(ctx, rebind(insertMajor), major.Code, major.Name, major.Department, major.Requirements); err != nil {
				return err
			}
		}
		return nil
	})
}

func (l *Lite) ListCompletedCourses(ctx context.Context, userId string) ([]string, error) {
	rows, err := l.sql.QueryContext(ctx, rebind(listCompletedCourses), userId)
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
	return courseIds, rows.Err()
}

func (l *Lite) ReplaceCompletedCourses(ctx context.Context, userId string, courseIds []string) error {
	return l.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, rebind(deleteCompletedCourses), userId); err != nil {
			return err
		}
		for position, courseId := range courseIds {
			if _, err := tx.ExecContext(ctx, rebind(insertCompletedCourse), userId, position, courseId); err != nil {
				return err
			}
		}
		return nil
	})
}

func (l *Lite) SelectedSequence(ctx context.Context, userId, majorCode string) (int, error) {
	var sequenceIndex int
	err := l.sql.QueryRowContext(ctx, rebind(selectSelectedSequence), userId, majorCode).Scan(&sequenceIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return sequenceIndex, nil
}

func (l *Lite) SaveSelectedSequence(ctx context.Context, selected SelectedSequence) error {
	_, err := l.sql.ExecContext(ctx, rebind(upsertSelectedSequence), selected.UserId, selected.MajorCode, selected.SequenceIndex)
	return err
}

func (l *Lite) ListDepartmentCourses(ctx context.Context, subjectAreaCode string) ([]CourseDetails, error) {
	rows, err := l.sql.QueryContext(ctx, rebind(listDepartmentCourses), subjectAreaCode)
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
	return coursesDetails, rows.Err()
}

func (l *Lite) InsertCoursesDetails(ctx context.Context, coursesDetails []CourseDetails) error {
	if len(coursesDetails) == 0 {
		return nil
	}
	return l.inTx(ctx, func(tx *sql.Tx) error {
		for _, courseDetails := range coursesDetails {
			if _, err := tx.ExecContext(
				ctx,
				rebind(insertCourseDetails),
				courseDetails.SubjectAreaCode,
				courseDetails.CatalogNumber,
				courseDetails.Name,
				courseDetails.Distributives,
				courseDetails.TermsOffered,
				strings.ReplaceAll(courseDetails.Description, "\x00", ""),
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (l *Lite) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := l.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
