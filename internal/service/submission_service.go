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

type SubmissionService interface {
	// Submit creates the student's submission or overwrites the previous one.
	Submit(ctx context.Context, assignmentID int64, req *models.SubmitRequest) (int64, error)
	GetAssignmentSubmissions(ctx context.Context, assignmentID int64) ([]models.SubmissionWithStudent, error)
	GradeSubmission(ctx context.Context, id int64, req *models.GradeRequest) error
}

type submissionService struct {
	submissionRepo repository.SubmissionRepository
	assignmentRepo repository.AssignmentRepository
	files          FileStore
	logger         zerolog.Logger
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	assignmentRepo repository.AssignmentRepository,
	files FileStore,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		files:          files,
		logger:         logger,
	}
}

func (s *submissionService) Submit(ctx context.Context, assignmentID int64, req *models.SubmitRequest) (int64, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return 0, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return 0, ErrAssignmentNotFound
	}

	previous, err := s.submissionRepo.GetByAssignmentAndStudent(ctx, assignmentID, req.StudentID)
	if err != nil {
		return 0, fmt.Errorf("failed to get submission: %w", err)
	}

	submission := &models.Submission{
		AssignmentID: assignmentID,
		StudentID:    req.StudentID,
		Content:      req.Content,
	}

	if req.File != nil {
		path, err := s.files.Store(ctx, storage.Submission, req.File.Name, req.File.Content, req.File.Size, assignmentID, req.StudentID)
		if err != nil {
			return 0, err
		}
		submission.FilePath = stringPtr(path)
	}

	if err := s.submissionRepo.Upsert(ctx, submission); err != nil {
		if submission.FilePath != nil {
			discardFile(ctx, s.files, *submission.FilePath, s.logger)
		}
		if errors.Is(err, repository.ErrForeignKey) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to save submission: %w", err)
	}

	// The overwritten row no longer references the previous file.
	if previous != nil && previous.FilePath != nil {
		if submission.FilePath == nil || *submission.FilePath != *previous.FilePath {
			discardFile(ctx, s.files, *previous.FilePath, s.logger)
		}
	}

	s.logger.Info().
		Int64("submission_id", submission.ID).
		Int64("assignment_id", assignmentID).
		Int64("student_id", req.StudentID).
		Bool("resubmission", previous != nil).
		Msg("Assignment submitted")

	return submission.ID, nil
}

func (s *submissionService) GetAssignmentSubmissions(ctx context.Context, assignmentID int64) ([]models.SubmissionWithStudent, error) {
	submissions, err := s.submissionRepo.GetByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}
	return submissions, nil
}

// GradeSubmission stores the grade as given; no range is enforced.
func (s *submissionService) GradeSubmission(ctx context.Context, id int64, req *models.GradeRequest) error {
	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return ErrSubmissionNotFound
	}

	if err := s.submissionRepo.Grade(ctx, id, *req.Grade, req.Feedback); err != nil {
		return fmt.Errorf("failed to grade submission: %w", err)
	}

	s.logger.Info().
		Int64("submission_id", id).
		Float64("grade", *req.Grade).
		Msg("Submission graded")

	return nil
}
