package repository

import (
	"context"
	"database/sql"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/rs/zerolog"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Exists(ctx context.Context, courseID, studentID int64) (bool, error)
}

type enrollmentRepository struct {
	*PostgresRepository
}

func NewEnrollmentRepository(db *sql.DB, logger zerolog.Logger) EnrollmentRepository {
	return &enrollmentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (course_id, student_id)
		VALUES ($1, $2)
		RETURNING id, enrolled_at
	`

	err := r.db.QueryRowContext(ctx, query,
		enrollment.CourseID,
		enrollment.StudentID,
	).Scan(&enrollment.ID, &enrollment.EnrolledAt)

	return translateError(err)
}

func (r *enrollmentRepository) Exists(ctx context.Context, courseID, studentID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM enrollments WHERE course_id = $1 AND student_id = $2)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, courseID, studentID).Scan(&exists)
	return exists, err
}
