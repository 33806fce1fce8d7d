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

type MaterialService interface {
	UploadMaterial(ctx context.Context, courseID int64, req *models.MaterialRequest) (int64, error)
	GetMaterial(ctx context.Context, id int64) (*models.Material, error)
	GetCourseMaterials(ctx context.Context, courseID int64) ([]models.Material, error)
	UpdateMaterial(ctx context.Context, id int64, req *models.MaterialRequest) error
	DeleteMaterial(ctx context.Context, id int64) error
}

type materialService struct {
	materialRepo repository.MaterialRepository
	courseRepo   repository.CourseRepository
	files        FileStore
	logger       zerolog.Logger
}

func NewMaterialService(
	materialRepo repository.MaterialRepository,
	courseRepo repository.CourseRepository,
	files FileStore,
	logger zerolog.Logger,
) MaterialService {
	return &materialService{
		materialRepo: materialRepo,
		courseRepo:   courseRepo,
		files:        files,
		logger:       logger,
	}
}

func (s *materialService) UploadMaterial(ctx context.Context, courseID int64, req *models.MaterialRequest) (int64, error) {
	if req.File == nil {
		return 0, errors.New("material file is required")
	}

	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return 0, fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return 0, ErrCourseNotFound
	}

	path, err := s.files.Store(ctx, storage.Material, req.File.Name, req.File.Content, req.File.Size, courseID)
	if err != nil {
		return 0, err
	}

	material := &models.Material{
		CourseID: courseID,
		Title:    req.Title,
		FilePath: path,
		FileType: s.files.Classify(req.File.Name),
	}

	if err := s.materialRepo.Create(ctx, material); err != nil {
		discardFile(ctx, s.files, path, s.logger)
		if errors.Is(err, repository.ErrForeignKey) {
			return 0, ErrCourseNotFound
		}
		return 0, fmt.Errorf("failed to create material: %w", err)
	}

	s.logger.Info().
		Int64("material_id", material.ID).
		Int64("course_id", courseID).
		Str("file_type", material.FileType.String()).
		Msg("Material uploaded")

	return material.ID, nil
}

func (s *materialService) GetMaterial(ctx context.Context, id int64) (*models.Material, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	if material == nil {
		return nil, ErrMaterialNotFound
	}
	return material, nil
}

func (s *materialService) GetCourseMaterials(ctx context.Context, courseID int64) ([]models.Material, error) {
	materials, err := s.materialRepo.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get materials: %w", err)
	}
	return materials, nil
}

func (s *materialService) UpdateMaterial(ctx context.Context, id int64, req *models.MaterialRequest) error {
	material, err := s.GetMaterial(ctx, id)
	if err != nil {
		return err
	}

	material.Title = req.Title

	newPath := ""
	if req.File != nil {
		newPath, err = s.files.Replace(ctx, material.FilePath, storage.Material, req.File.Name, req.File.Content, req.File.Size, material.CourseID)
		if err != nil {
			return err
		}
		material.FilePath = newPath
		material.FileType = s.files.Classify(req.File.Name)
	}

	if err := s.materialRepo.Update(ctx, material); err != nil {
		discardFile(ctx, s.files, newPath, s.logger)
		return fmt.Errorf("failed to update material: %w", err)
	}

	s.logger.Info().
		Int64("material_id", id).
		Bool("file_replaced", newPath != "").
		Msg("Material updated")

	return nil
}

func (s *materialService) DeleteMaterial(ctx context.Context, id int64) error {
	material, err := s.GetMaterial(ctx, id)
	if err != nil {
		return err
	}

	if err := s.files.Delete(ctx, material.FilePath); err != nil {
		return err
	}

	if err := s.materialRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}

	s.logger.Info().
		Int64("material_id", id).
		Str("file_path", material.FilePath).
		Msg("Material deleted")

	return nil
}
