package inmem

import (
	"context"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/RubachokBoss/lms-service/internal/repository"
)

type UserRepository struct {
	db *DB
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	for _, u := range r.db.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}

	user.ID = r.db.nextID()
	user.CreatedAt = r.db.now()
	stored := *user
	r.db.users[user.ID] = &stored
	return nil
}

func (r *UserRepository) GetByCredentials(_ context.Context, email, passwordHash string) (*models.Profile, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	for _, u := range r.db.users {
		if u.Email == email && u.Password == passwordHash {
			return toProfile(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*models.Profile, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if u, ok := r.db.users[id]; ok {
		return toProfile(u), nil
	}
	return nil, nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id int64, fullName string, profilePicture *string) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil
	}
	u.FullName = fullName
	if profilePicture != nil {
		pic := *profilePicture
		u.ProfilePicture = &pic
	}
	return nil
}

func toProfile(u *models.User) *models.Profile {
	return &models.Profile{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role,
		ProfilePicture: u.ProfilePicture,
	}
}
