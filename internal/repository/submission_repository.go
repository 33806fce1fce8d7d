package repository

import (
	"context"
	"database/sql"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/rs/zerolog"
)

type SubmissionRepository interface {
	// Upsert inserts the submission or overwrites the file, content and
	// submission time of the existing row for the same assignment and student.
	Upsert(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id int64) (*models.Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error)
	GetByAssignment(ctx context.Context, assignmentID int64) ([]models.SubmissionWithStudent, error)
	FilePathsByAssignment(ctx context.Context, assignmentID int64) ([]string, error)
	Grade(ctx context.Context, id int64, grade float64, feedback *string) error
}

type submissionRepository struct {
	*PostgresRepository
}

func NewSubmissionRepository(db *sql.DB, logger zerolog.Logger) SubmissionRepository {
	return &submissionRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *submissionRepository) Upsert(ctx context.Context, submission *models.Submission) error {
	query := `
		INSERT INTO submissions (assignment_id, student_id, file_path, content)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (assignment_id, student_id) DO UPDATE
		SET file_path = EXCLUDED.file_path, content = EXCLUDED.content, submitted_at = NOW()
		RETURNING id, submitted_at
	`

	err := r.db.QueryRowContext(ctx, query,
		submission.AssignmentID,
		submission.StudentID,
		submission.FilePath,
		submission.Content,
	).Scan(&submission.ID, &submission.SubmittedAt)

	return translateError(err)
}

const submissionColumns = `s.id, s.assignment_id, s.student_id, s.file_path, COALESCE(s.content, ''),
	s.grade, s.feedback, s.submitted_at, s.graded_at`

func (r *submissionRepository) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions s WHERE s.id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *submissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions s WHERE s.assignment_id = $1 AND s.student_id = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, assignmentID, studentID))
}

func (r *submissionRepository) GetByAssignment(ctx context.Context, assignmentID int64) ([]models.SubmissionWithStudent, error) {
	query := `
		SELECT ` + submissionColumns + `,
			u.full_name AS student_name, u.email AS student_email
		FROM submissions s
		JOIN users u ON s.student_id = u.id
		WHERE s.assignment_id = $1
		ORDER BY s.submitted_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := []models.SubmissionWithStudent{}
	for rows.Next() {
		var submission models.SubmissionWithStudent
		if err := rows.Scan(
			&submission.ID,
			&submission.AssignmentID,
			&submission.StudentID,
			&submission.FilePath,
			&submission.Content,
			&submission.Grade,
			&submission.Feedback,
			&submission.SubmittedAt,
			&submission.GradedAt,
			&submission.StudentName,
			&submission.StudentEmail,
		); err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}

	return submissions, rows.Err()
}

func (r *submissionRepository) FilePathsByAssignment(ctx context.Context, assignmentID int64) ([]string, error) {
	query := `SELECT file_path FROM submissions WHERE assignment_id = $1 AND file_path IS NOT NULL`

	rows, err := r.db.QueryContext(ctx, query, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}

	return paths, rows.Err()
}

func (r *submissionRepository) Grade(ctx context.Context, id int64, grade float64, feedback *string) error {
	query := `
		UPDATE submissions
		SET grade = $1, feedback = $2, graded_at = NOW()
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, grade, feedback, id)
	return err
}

func (r *submissionRepository) scanOne(row *sql.Row) (*models.Submission, error) {
	submission := &models.Submission{}
	err := row.Scan(
		&submission.ID,
		&submission.AssignmentID,
		&submission.StudentID,
		&submission.FilePath,
		&submission.Content,
		&submission.Grade,
		&submission.Feedback,
		&submission.SubmittedAt,
		&submission.GradedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return submission, nil
}
