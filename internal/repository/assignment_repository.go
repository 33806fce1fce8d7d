package repository

import (
	"context"
	"database/sql"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/rs/zerolog"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id int64) (*models.Assignment, error)
	GetDetails(ctx context.Context, id int64) (*models.AssignmentDetail, error)
	GetByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error)
	GetByCourseForStudent(ctx context.Context, courseID, studentID int64) ([]models.AssignmentWithSubmission, error)
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id int64) error
}

type assignmentRepository struct {
	*PostgresRepository
}

func NewAssignmentRepository(db *sql.DB, logger zerolog.Logger) AssignmentRepository {
	return &assignmentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	query := `
		INSERT INTO assignments (course_id, title, description, due_date, instruction_file)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		assignment.CourseID,
		assignment.Title,
		assignment.Description,
		assignment.DueDate,
		assignment.InstructionFile,
	).Scan(&assignment.ID, &assignment.CreatedAt)

	return translateError(err)
}

func (r *assignmentRepository) GetByID(ctx context.Context, id int64) (*models.Assignment, error) {
	query := `
		SELECT id, course_id, title, COALESCE(description, ''), due_date, instruction_file, created_at
		FROM assignments
		WHERE id = $1
	`

	assignment := &models.Assignment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&assignment.ID,
		&assignment.CourseID,
		&assignment.Title,
		&assignment.Description,
		&assignment.DueDate,
		&assignment.InstructionFile,
		&assignment.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return assignment, nil
}

func (r *assignmentRepository) GetDetails(ctx context.Context, id int64) (*models.AssignmentDetail, error) {
	query := `
		SELECT a.id, a.course_id, a.title, COALESCE(a.description, ''), a.due_date, a.instruction_file, a.created_at,
			c.title AS course_title,
			u.full_name AS instructor_name
		FROM assignments a
		JOIN courses c ON a.course_id = c.id
		JOIN users u ON c.instructor_id = u.id
		WHERE a.id = $1
	`

	detail := &models.AssignmentDetail{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&detail.ID,
		&detail.CourseID,
		&detail.Title,
		&detail.Description,
		&detail.DueDate,
		&detail.InstructionFile,
		&detail.CreatedAt,
		&detail.CourseTitle,
		&detail.InstructorName,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return detail, nil
}

func (r *assignmentRepository) GetByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error) {
	query := `
		SELECT id, course_id, title, COALESCE(description, ''), due_date, instruction_file, created_at
		FROM assignments
		WHERE course_id = $1
		ORDER BY due_date ASC NULLS LAST, id
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []models.Assignment{}
	for rows.Next() {
		var assignment models.Assignment
		if err := rows.Scan(
			&assignment.ID,
			&assignment.CourseID,
			&assignment.Title,
			&assignment.Description,
			&assignment.DueDate,
			&assignment.InstructionFile,
			&assignment.CreatedAt,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}

func (r *assignmentRepository) GetByCourseForStudent(ctx context.Context, courseID, studentID int64) ([]models.AssignmentWithSubmission, error) {
	query := `
		SELECT a.id, a.course_id, a.title, COALESCE(a.description, ''), a.due_date, a.instruction_file, a.created_at,
			s.id AS submission_id, s.grade, s.feedback, s.submitted_at
		FROM assignments a
		LEFT JOIN submissions s ON a.id = s.assignment_id AND s.student_id = $1
		WHERE a.course_id = $2
		ORDER BY a.due_date ASC NULLS LAST, a.id
	`

	rows, err := r.db.QueryContext(ctx, query, studentID, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []models.AssignmentWithSubmission{}
	for rows.Next() {
		var assignment models.AssignmentWithSubmission
		if err := rows.Scan(
			&assignment.ID,
			&assignment.CourseID,
			&assignment.Title,
			&assignment.Description,
			&assignment.DueDate,
			&assignment.InstructionFile,
			&assignment.CreatedAt,
			&assignment.SubmissionID,
			&assignment.Grade,
			&assignment.Feedback,
			&assignment.SubmittedAt,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	query := `
		UPDATE assignments
		SET title = $1, description = $2, due_date = $3, instruction_file = $4
		WHERE id = $5
	`

	_, err := r.db.ExecContext(ctx, query,
		assignment.Title,
		assignment.Description,
		assignment.DueDate,
		assignment.InstructionFile,
		assignment.ID,
	)

	return err
}

// Delete removes the assignment; its submissions go with it through the
// ON DELETE CASCADE foreign key.
func (r *assignmentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM assignments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
