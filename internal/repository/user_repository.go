package repository

import (
	"context"
	"database/sql"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/rs/zerolog"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByCredentials(ctx context.Context, email, passwordHash string) (*models.Profile, error)
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id int64, fullName string, profilePicture *string) error
}

type userRepository struct {
	*PostgresRepository
}

func NewUserRepository(db *sql.DB, logger zerolog.Logger) UserRepository {
	return &userRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, full_name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		user.Email,
		user.Password,
		user.FullName,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt)

	return translateError(err)
}

func (r *userRepository) GetByCredentials(ctx context.Context, email, passwordHash string) (*models.Profile, error) {
	query := `
		SELECT id, email, full_name, role, profile_picture
		FROM users
		WHERE email = $1 AND password = $2
	`

	return r.scanProfile(r.db.QueryRowContext(ctx, query, email, passwordHash))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	query := `
		SELECT id, email, full_name, role, profile_picture
		FROM users
		WHERE id = $1
	`

	return r.scanProfile(r.db.QueryRowContext(ctx, query, id))
}

// UpdateProfile sets the full name and, when profilePicture is non-nil, the
// picture path.
func (r *userRepository) UpdateProfile(ctx context.Context, id int64, fullName string, profilePicture *string) error {
	query := `
		UPDATE users
		SET full_name = $1, profile_picture = COALESCE($2, profile_picture)
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, fullName, profilePicture, id)
	return err
}

func (r *userRepository) scanProfile(row *sql.Row) (*models.Profile, error) {
	profile := &models.Profile{}
	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&profile.FullName,
		&profile.Role,
		&profile.ProfilePicture,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return profile, nil
}
