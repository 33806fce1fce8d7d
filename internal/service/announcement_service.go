package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/RubachokBoss/lms-service/internal/repository"
	"github.com/rs/zerolog"
)

type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, courseID int64, req *models.AnnouncementRequest) (int64, error)
	GetAnnouncement(ctx context.Context, id int64) (*models.Announcement, error)
	GetCourseAnnouncements(ctx context.Context, courseID int64) ([]models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, id int64, req *models.AnnouncementRequest) error
	DeleteAnnouncement(ctx context.Context, id int64) error
}

type announcementService struct {
	announcementRepo repository.AnnouncementRepository
	logger           zerolog.Logger
}

func NewAnnouncementService(announcementRepo repository.AnnouncementRepository, logger zerolog.Logger) AnnouncementService {
	return &announcementService{
		announcementRepo: announcementRepo,
		logger:           logger,
	}
}

func (s *announcementService) CreateAnnouncement(ctx context.Context, courseID int64, req *models.AnnouncementRequest) (int64, error) {
	announcement := &models.Announcement{
		CourseID: courseID,
		Title:    req.Title,
		Content:  req.Content,
	}

	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return 0, ErrCourseNotFound
		}
		return 0, fmt.Errorf("failed to create announcement: %w", err)
	}

	s.logger.Info().
		Int64("announcement_id", announcement.ID).
		Int64("course_id", courseID).
		Msg("Announcement created")

	return announcement.ID, nil
}

func (s *announcementService) GetAnnouncement(ctx context.Context, id int64) (*models.Announcement, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}
	if announcement == nil {
		return nil, ErrAnnouncementNotFound
	}
	return announcement, nil
}

func (s *announcementService) GetCourseAnnouncements(ctx context.Context, courseID int64) ([]models.Announcement, error) {
	announcements, err := s.announcementRepo.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get announcements: %w", err)
	}
	return announcements, nil
}

func (s *announcementService) UpdateAnnouncement(ctx context.Context, id int64, req *models.AnnouncementRequest) error {
	announcement, err := s.GetAnnouncement(ctx, id)
	if err != nil {
		return err
	}

	announcement.Title = req.Title
	announcement.Content = req.Content

	if err := s.announcementRepo.Update(ctx, announcement); err != nil {
		return fmt.Errorf("failed to update announcement: %w", err)
	}

	return nil
}

func (s *announcementService) DeleteAnnouncement(ctx context.Context, id int64) error {
	if _, err := s.GetAnnouncement(ctx, id); err != nil {
		return err
	}

	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}

	s.logger.Info().Int64("announcement_id", id).Msg("Announcement deleted")
	return nil
}
