package repository

import (
	"context"
	"database/sql"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/rs/zerolog"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	GetByID(ctx context.Context, id int64) (*models.Announcement, error)
	GetByCourse(ctx context.Context, courseID int64) ([]models.Announcement, error)
	Update(ctx context.Context, announcement *models.Announcement) error
	Delete(ctx context.Context, id int64) error
}

type announcementRepository struct {
	*PostgresRepository
}

func NewAnnouncementRepository(db *sql.DB, logger zerolog.Logger) AnnouncementRepository {
	return &announcementRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	query := `
		INSERT INTO announcements (course_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		announcement.CourseID,
		announcement.Title,
		announcement.Content,
	).Scan(&announcement.ID, &announcement.CreatedAt)

	return translateError(err)
}

func (r *announcementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	query := `
		SELECT id, course_id, title, content, created_at
		FROM announcements
		WHERE id = $1
	`

	announcement := &models.Announcement{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&announcement.ID,
		&announcement.CourseID,
		&announcement.Title,
		&announcement.Content,
		&announcement.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return announcement, nil
}

func (r *announcementRepository) GetByCourse(ctx context.Context, courseID int64) ([]models.Announcement, error) {
	query := `
		SELECT id, course_id, title, content, created_at
		FROM announcements
		WHERE course_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	announcements := []models.Announcement{}
	for rows.Next() {
		var announcement models.Announcement
		if err := rows.Scan(
			&announcement.ID,
			&announcement.CourseID,
			&announcement.Title,
			&announcement.Content,
			&announcement.CreatedAt,
		); err != nil {
			return nil, err
		}
		announcements = append(announcements, announcement)
	}

	return announcements, rows.Err()
}

func (r *announcementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	query := `
		UPDATE announcements
		SET title = $1, content = $2
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query,
		announcement.Title,
		announcement.Content,
		announcement.ID,
	)

	return err
}

func (r *announcementRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM announcements WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
