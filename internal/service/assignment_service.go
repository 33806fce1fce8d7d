package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/RubachokBoss/lms-service/internal/repository"
	"github.com/RubachokBoss/lms-service/internal/storage"
	"github.com/rs/zerolog"
)

type AssignmentService interface {
	CreateAssignment(ctx context.Context, courseID int64, req *models.AssignmentRequest) (int64, error)
	GetCourseAssignments(ctx context.Context, courseID int64) ([]models.Assignment, error)
	GetStudentAssignments(ctx context.Context, courseID, studentID int64) ([]models.AssignmentWithSubmission, error)
	// GetAssignmentDetails attaches the student's submission when studentID is set.
	GetAssignmentDetails(ctx context.Context, id int64, studentID *int64) (*models.AssignmentDetail, error)
	UpdateAssignment(ctx context.Context, id int64, req *models.AssignmentRequest) error
	DeleteAssignment(ctx context.Context, id int64) error
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	submissionRepo repository.SubmissionRepository
	courseRepo     repository.CourseRepository
	files          FileStore
	logger         zerolog.Logger
}

func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	submissionRepo repository.SubmissionRepository,
	courseRepo repository.CourseRepository,
	files FileStore,
	logger zerolog.Logger,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		courseRepo:     courseRepo,
		files:          files,
		logger:         logger,
	}
}

func (s *assignmentService) CreateAssignment(ctx context.Context, courseID int64, req *models.AssignmentRequest) (int64, error) {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return 0, fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return 0, ErrCourseNotFound
	}

	assignment := &models.Assignment{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}

	if req.File != nil {
		path, err := s.files.Store(ctx, storage.Assignment, req.File.Name, req.File.Content, req.File.Size, courseID)
		if err != nil {
			return 0, err
		}
		assignment.InstructionFile = stringPtr(path)
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		if assignment.InstructionFile != nil {
			discardFile(ctx, s.files, *assignment.InstructionFile, s.logger)
		}
		if errors.Is(err, repository.ErrForeignKey) {
			return 0, ErrCourseNotFound
		}
		return 0, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info().
		Int64("assignment_id", assignment.ID).
		Int64("course_id", courseID).
		Str("title", assignment.Title).
		Msg("Assignment created")

	return assignment.ID, nil
}

func (s *assignmentService) GetCourseAssignments(ctx context.Context, courseID int64) ([]models.Assignment, error) {
	assignments, err := s.assignmentRepo.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	return assignments, nil
}

func (s *assignmentService) GetStudentAssignments(ctx context.Context, courseID, studentID int64) ([]models.AssignmentWithSubmission, error) {
	assignments, err := s.assignmentRepo.GetByCourseForStudent(ctx, courseID, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	return assignments, nil
}

func (s *assignmentService) GetAssignmentDetails(ctx context.Context, id int64, studentID *int64) (*models.AssignmentDetail, error) {
	detail, err := s.assignmentRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if detail == nil {
		return nil, ErrAssignmentNotFound
	}

	if studentID != nil {
		submission, err := s.submissionRepo.GetByAssignmentAndStudent(ctx, id, *studentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get submission: %w", err)
		}
		detail.Submission = submission
	}

	return detail, nil
}

func (s *assignmentService) UpdateAssignment(ctx context.Context, id int64, req *models.AssignmentRequest) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return ErrAssignmentNotFound
	}

	assignment.Title = req.Title
	assignment.Description = req.Description
	assignment.DueDate = req.DueDate

	newPath := ""
	if req.File != nil {
		oldPath := ""
		if assignment.InstructionFile != nil {
			oldPath = *assignment.InstructionFile
		}
		newPath, err = s.files.Replace(ctx, oldPath, storage.Assignment, req.File.Name, req.File.Content, req.File.Size, id)
		if err != nil {
			return err
		}
		assignment.InstructionFile = stringPtr(newPath)
	}

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		discardFile(ctx, s.files, newPath, s.logger)
		return fmt.Errorf("failed to update assignment: %w", err)
	}

	s.logger.Info().
		Int64("assignment_id", id).
		Bool("file_replaced", newPath != "").
		Msg("Assignment updated")

	return nil
}

// DeleteAssignment removes the instruction file and every submission file
// before deleting the row. Submission rows are removed by the cascade.
func (s *assignmentService) DeleteAssignment(ctx context.Context, id int64) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return ErrAssignmentNotFound
	}

	paths, err := s.submissionRepo.FilePathsByAssignment(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get submission files: %w", err)
	}
	if assignment.InstructionFile != nil {
		paths = append(paths, *assignment.InstructionFile)
	}

	for _, p := range paths {
		if err := s.files.Delete(ctx, p); err != nil {
			return err
		}
	}

	if err := s.assignmentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	s.logger.Info().
		Int64("assignment_id", id).
		Int("files_removed", len(paths)).
		Msg("Assignment deleted")

	return nil
}
