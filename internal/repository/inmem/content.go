package inmem

import (
	"context"
	"sort"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/RubachokBoss/lms-service/internal/repository"
)

type MaterialRepository struct {
	db *DB
}

var _ repository.MaterialRepository = (*MaterialRepository)(nil)

func (r *MaterialRepository) Create(_ context.Context, material *models.Material) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.courses[material.CourseID]; !ok {
		return repository.ErrForeignKey
	}

	material.ID = r.db.nextID()
	material.UploadedAt = r.db.now()
	stored := *material
	r.db.materials[material.ID] = &stored
	return nil
}

func (r *MaterialRepository) GetByID(_ context.Context, id int64) (*models.Material, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if m, ok := r.db.materials[id]; ok {
		material := *m
		return &material, nil
	}
	return nil, nil
}

func (r *MaterialRepository) GetByCourse(_ context.Context, courseID int64) ([]models.Material, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	materials := []models.Material{}
	for _, m := range r.db.materials {
		if m.CourseID == courseID {
			materials = append(materials, *m)
		}
	}
	sort.Slice(materials, func(i, j int) bool {
		return materials[i].UploadedAt.After(materials[j].UploadedAt)
	})
	return materials, nil
}

func (r *MaterialRepository) Update(_ context.Context, material *models.Material) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if m, ok := r.db.materials[material.ID]; ok {
		m.Title = material.Title
		m.FilePath = material.FilePath
		m.FileType = material.FileType
	}
	return nil
}

func (r *MaterialRepository) Delete(_ context.Context, id int64) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	delete(r.db.materials, id)
	return nil
}

type AnnouncementRepository struct {
	db *DB
}

var _ repository.AnnouncementRepository = (*AnnouncementRepository)(nil)

func (r *AnnouncementRepository) Create(_ context.Context, announcement *models.Announcement) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.courses[announcement.CourseID]; !ok {
		return repository.ErrForeignKey
	}

	announcement.ID = r.db.nextID()
	announcement.CreatedAt = r.db.now()
	stored := *announcement
	r.db.announcements[announcement.ID] = &stored
	return nil
}

func (r *AnnouncementRepository) GetByID(_ context.Context, id int64) (*models.Announcement, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if a, ok := r.db.announcements[id]; ok {
		announcement := *a
		return &announcement, nil
	}
	return nil, nil
}

func (r *AnnouncementRepository) GetByCourse(_ context.Context, courseID int64) ([]models.Announcement, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	announcements := []models.Announcement{}
	for _, a := range r.db.announcements {
		if a.CourseID == courseID {
			announcements = append(announcements, *a)
		}
	}
	sort.Slice(announcements, func(i, j int) bool {
		return announcements[i].CreatedAt.After(announcements[j].CreatedAt)
	})
	return announcements, nil
}

func (r *AnnouncementRepository) Update(_ context.Context, announcement *models.Announcement) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if a, ok := r.db.announcements[announcement.ID]; ok {
		a.Title = announcement.Title
		a.Content = announcement.Content
	}
	return nil
}

func (r *AnnouncementRepository) Delete(_ context.Context, id int64) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	delete(r.db.announcements, id)
	return nil
}
