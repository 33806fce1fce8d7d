package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/RubachokBoss/lms-service/internal/repository"
	"github.com/rs/zerolog"
)

type CourseService interface {
	CreateCourse(ctx context.Context, instructorID int64, req *models.CreateCourseRequest) (int64, error)
	// ListCourses marks enrollment per course when userID is set.
	ListCourses(ctx context.Context, userID *int64) ([]models.CourseWithInstructor, error)
	GetCourse(ctx context.Context, id int64, userID *int64) (*models.CourseDetail, error)
	GetInstructorCourses(ctx context.Context, instructorID int64) ([]models.Course, error)
	GetStudentCourses(ctx context.Context, studentID int64) ([]models.CourseWithInstructor, error)
	Enroll(ctx context.Context, courseID, studentID int64) error
}

type courseService struct {
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
	logger         zerolog.Logger
}

func NewCourseService(
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	logger zerolog.Logger,
) CourseService {
	return &courseService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

func (s *courseService) CreateCourse(ctx context.Context, instructorID int64, req *models.CreateCourseRequest) (int64, error) {
	course := &models.Course{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: instructorID,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info().
		Int64("course_id", course.ID).
		Int64("instructor_id", instructorID).
		Str("title", course.Title).
		Msg("Course created")

	return course.ID, nil
}

func (s *courseService) ListCourses(ctx context.Context, userID *int64) ([]models.CourseWithInstructor, error) {
	var (
		courses []models.CourseWithInstructor
		err     error
	)
	if userID != nil {
		courses, err = s.courseRepo.GetAllForUser(ctx, *userID)
	} else {
		courses, err = s.courseRepo.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}

	return courses, nil
}

func (s *courseService) GetCourse(ctx context.Context, id int64, userID *int64) (*models.CourseDetail, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	detail := &models.CourseDetail{
		Course:         course.Course,
		InstructorName: course.InstructorName,
	}

	if userID != nil {
		enrolled, err := s.enrollmentRepo.Exists(ctx, id, *userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check enrollment: %w", err)
		}
		detail.IsEnrolled = enrolled
		detail.IsInstructor = course.InstructorID == *userID
	}

	return detail, nil
}

func (s *courseService) GetInstructorCourses(ctx context.Context, instructorID int64) ([]models.Course, error) {
	courses, err := s.courseRepo.GetByInstructor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get instructor courses: %w", err)
	}
	return courses, nil
}

func (s *courseService) GetStudentCourses(ctx context.Context, studentID int64) ([]models.CourseWithInstructor, error) {
	courses, err := s.courseRepo.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student courses: %w", err)
	}
	return courses, nil
}

func (s *courseService) Enroll(ctx context.Context, courseID, studentID int64) error {
	enrollment := &models.Enrollment{
		CourseID:  courseID,
		StudentID: studentID,
	}

	err := s.enrollmentRepo.Create(ctx, enrollment)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrDuplicate):
		return ErrAlreadyEnrolled
	case errors.Is(err, repository.ErrForeignKey):
		exists, existsErr := s.courseRepo.Exists(ctx, courseID)
		if existsErr == nil && !exists {
			return ErrCourseNotFound
		}
		return ErrUserNotFound
	default:
		return fmt.Errorf("failed to enroll: %w", err)
	}

	s.logger.Info().
		Int64("course_id", courseID).
		Int64("student_id", studentID).
		Msg("Student enrolled")

	return nil
}
