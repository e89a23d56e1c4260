package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

// Store is everything the tracker persists: majors, catalog details, each
// user's ordered completed-course list and selected culminating sequences.
type Store interface {
	ListMajors(ctx context.Context) ([]Major, error)
	InsertMajors(ctx context.Context, majors []Major) error

	ListCompletedCourses(ctx context.Context, userId string) ([]string, error)
	ReplaceCompletedCourses(ctx context.Context, userId string, courseIds []string) error

	SelectedSequence(ctx context.Context, userId, majorCode string) (int, error)
	SaveSelectedSequence(ctx context.Context, selected SelectedSequence) error

	ListDepartmentCourses(ctx context.Context, subjectAreaCode string) ([]CourseDetails, error)
	InsertCoursesDetails(ctx context.Context, coursesDetails []CourseDetails) error

	Close()
}

type Database struct {
	Pool *pgxpool.Pool
}

func Connect(ctx context.Context, connectionString string) (*Database, error) {
	pool, err := pgxpool.New(ctx, connectionString)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Database{Pool: pool}, nil
}

func (d *Database) Migrate(ctx context.Context) error {
	if _, err := d.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (d *Database) Close() {
	d.Pool.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS majors (
  code         TEXT PRIMARY KEY,
  name         TEXT NOT NULL,
  department   TEXT NOT NULL,
  requirements TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS courses_details (
  subject_area_code TEXT NOT NULL,
  catalog_number    TEXT NOT NULL,
  name              TEXT NOT NULL,
  distributives     TEXT NOT NULL DEFAULT '',
  terms_offered     TEXT NOT NULL DEFAULT '',
  description       TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (subject_area_code, catalog_number)
);
CREATE TABLE IF NOT EXISTS completed_courses (
  user_id   TEXT NOT NULL,
  position  INTEGER NOT NULL,
  course_id TEXT NOT NULL,
  PRIMARY KEY (user_id, position)
);
CREATE TABLE IF NOT EXISTS selected_sequences (
  user_id        TEXT NOT NULL,
  major_code     TEXT NOT NULL,
  sequence_index INTEGER NOT NULL,
  PRIMARY KEY (user_id, major_code)
);
`
