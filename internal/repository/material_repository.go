package repository

import (
	"context"
	"database/sql"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/rs/zerolog"
)

type MaterialRepository interface {
	Create(ctx context.Context, material *models.Material) error
	GetByID(ctx context.Context, id int64) (*models.Material, error)
	GetByCourse(ctx context.Context, courseID int64) ([]models.Material, error)
	Update(ctx context.Context, material *models.Material) error
	Delete(ctx context.Context, id int64) error
}

type materialRepository struct {
	*PostgresRepository
}

func NewMaterialRepository(db *sql.DB, logger zerolog.Logger) MaterialRepository {
	return &materialRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *materialRepository) Create(ctx context.Context, material *models.Material) error {
	query := `
		INSERT INTO materials (course_id, title, file_path, file_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, uploaded_at
	`

	err := r.db.QueryRowContext(ctx, query,
		material.CourseID,
		material.Title,
		material.FilePath,
		material.FileType,
	).Scan(&material.ID, &material.UploadedAt)

	return translateError(err)
}

func (r *materialRepository) GetByID(ctx context.Context, id int64) (*models.Material, error) {
	query := `
		SELECT id, course_id, title, COALESCE(file_path, ''), file_type, uploaded_at
		FROM materials
		WHERE id = $1
	`

	material := &models.Material{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&material.ID,
		&material.CourseID,
		&material.Title,
		&material.FilePath,
		&material.FileType,
		&material.UploadedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return material, nil
}

func (r *materialRepository) GetByCourse(ctx context.Context, courseID int64) ([]models.Material, error) {
	query := `
		SELECT id, course_id, title, COALESCE(file_path, ''), file_type, uploaded_at
		FROM materials
		WHERE course_id = $1
		ORDER BY uploaded_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	materials := []models.Material{}
	for rows.Next() {
		var material models.Material
		if err := rows.Scan(
			&material.ID,
			&material.CourseID,
			&material.Title,
			&material.FilePath,
			&material.FileType,
			&material.UploadedAt,
		); err != nil {
			return nil, err
		}
		materials = append(materials, material)
	}

	return materials, rows.Err()
}

func (r *materialRepository) Update(ctx context.Context, material *models.Material) error {
	query := `
		UPDATE materials
		SET title = $1, file_path = $2, file_type = $3
		WHERE id = $4
	`

	_, err := r.db.ExecContext(ctx, query,
		material.Title,
		material.FilePath,
		material.FileType,
		material.ID,
	)

	return err
}

func (r *materialRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM materials WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
