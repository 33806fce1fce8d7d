package repository

import (
	"context"
	"database/sql"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/rs/zerolog"
)

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetAll(ctx context.Context) ([]models.CourseWithInstructor, error)
	GetAllForUser(ctx context.Context, userID int64) ([]models.CourseWithInstructor, error)
	GetByInstructor(ctx context.Context, instructorID int64) ([]models.Course, error)
	GetByStudent(ctx context.Context, studentID int64) ([]models.CourseWithInstructor, error)
	GetByID(ctx context.Context, id int64) (*models.CourseWithInstructor, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type courseRepository struct {
	*PostgresRepository
}

func NewCourseRepository(db *sql.DB, logger zerolog.Logger) CourseRepository {
	return &courseRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (title, description, instructor_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		course.Title,
		course.Description,
		course.InstructorID,
	).Scan(&course.ID, &course.CreatedAt)

	return translateError(err)
}

func (r *courseRepository) GetAll(ctx context.Context) ([]models.CourseWithInstructor, error) {
	query := `
		SELECT c.id, c.title, COALESCE(c.description, ''), c.instructor_id, c.created_at,
			u.full_name AS instructor_name
		FROM courses c
		JOIN users u ON c.instructor_id = u.id
		ORDER BY c.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []models.CourseWithInstructor{}
	for rows.Next() {
		var course models.CourseWithInstructor
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.InstructorID,
			&course.CreatedAt,
			&course.InstructorName,
		); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

func (r *courseRepository) GetAllForUser(ctx context.Context, userID int64) ([]models.CourseWithInstructor, error) {
	query := `
		SELECT c.id, c.title, COALESCE(c.description, ''), c.instructor_id, c.created_at,
			u.full_name AS instructor_name,
			e.id IS NOT NULL AS is_enrolled
		FROM courses c
		JOIN users u ON c.instructor_id = u.id
		LEFT JOIN enrollments e ON c.id = e.course_id AND e.student_id = $1
		ORDER BY c.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []models.CourseWithInstructor{}
	for rows.Next() {
		var (
			course   models.CourseWithInstructor
			enrolled bool
		)
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.InstructorID,
			&course.CreatedAt,
			&course.InstructorName,
			&enrolled,
		); err != nil {
			return nil, err
		}
		course.IsEnrolled = &enrolled
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

func (r *courseRepository) GetByInstructor(ctx context.Context, instructorID int64) ([]models.Course, error) {
	query := `
		SELECT id, title, COALESCE(description, ''), instructor_id, created_at
		FROM courses
		WHERE instructor_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, instructorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.InstructorID,
			&course.CreatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

func (r *courseRepository) GetByStudent(ctx context.Context, studentID int64) ([]models.CourseWithInstructor, error) {
	query := `
		SELECT c.id, c.title, COALESCE(c.description, ''), c.instructor_id, c.created_at,
			u.full_name AS instructor_name
		FROM courses c
		JOIN users u ON c.instructor_id = u.id
		JOIN enrollments e ON c.id = e.course_id
		WHERE e.student_id = $1
		ORDER BY e.enrolled_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []models.CourseWithInstructor{}
	for rows.Next() {
		var course models.CourseWithInstructor
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.InstructorID,
			&course.CreatedAt,
			&course.InstructorName,
		); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

func (r *courseRepository) GetByID(ctx context.Context, id int64) (*models.CourseWithInstructor, error) {
	query := `
		SELECT c.id, c.title, COALESCE(c.description, ''), c.instructor_id, c.created_at,
			u.full_name AS instructor_name
		FROM courses c
		JOIN users u ON c.instructor_id = u.id
		WHERE c.id = $1
	`

	course := &models.CourseWithInstructor{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.InstructorID,
		&course.CreatedAt,
		&course.InstructorName,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return course, nil
}

func (r *courseRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}
