package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/RubachokBoss/lms-service/internal/repository"
	"github.com/RubachokBoss/lms-service/internal/storage"
	"github.com/RubachokBoss/lms-service/pkg/hash"
	"github.com/rs/zerolog"
)

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (int64, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.Profile, error)
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	// UpdateProfile returns the new picture path, or nil when no file was sent.
	UpdateProfile(ctx context.Context, id int64, req *models.UpdateProfileRequest) (*string, error)
}

type userService struct {
	userRepo repository.UserRepository
	hasher   hash.Hasher
	files    FileStore
	logger   zerolog.Logger
}

func NewUserService(userRepo repository.UserRepository, hasher hash.Hasher, files FileStore, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		files:    files,
		logger:   logger,
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (int64, error) {
	digest, err := s.hasher.Calculate(req.Password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Password: digest,
		FullName: req.FullName,
		Role:     req.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, ErrEmailExists
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("role", user.Role.String()).
		Msg("User registered")

	return user.ID, nil
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.Profile, error) {
	digest, err := s.hasher.Calculate(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile, err := s.userRepo.GetByCredentials(ctx, req.Email, digest)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if profile == nil {
		return nil, ErrInvalidCredentials
	}

	return profile, nil
}

func (s *userService) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	profile, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}

	return profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id int64, req *models.UpdateProfileRequest) (*string, error) {
	current, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	var picture *string
	if req.File != nil {
		oldPath := ""
		if current.ProfilePicture != nil {
			oldPath = *current.ProfilePicture
		}

		path, err := s.files.Replace(ctx, oldPath, storage.Profile, req.File.Name, req.File.Content, req.File.Size, id)
		if err != nil {
			return nil, fmt.Errorf("failed to store profile picture: %w", err)
		}
		picture = stringPtr(path)
	}

	if err := s.userRepo.UpdateProfile(ctx, id, req.FullName, picture); err != nil {
		if picture != nil {
			discardFile(ctx, s.files, *picture, s.logger)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info().
		Int64("user_id", id).
		Bool("picture_changed", picture != nil).
		Msg("Profile updated")

	return picture, nil
}
