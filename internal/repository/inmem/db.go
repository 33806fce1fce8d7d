// Package inmem holds map-backed repositories that mirror the PostgreSQL
// constraints (unique keys, foreign keys, cascades). They back the service
// and handler tests.
package inmem

import (
	"sync"
	"time"

	"github.com/RubachokBoss/lms-service/internal/models"
)

type DB struct {
	mutex sync.RWMutex
	seq   int64
	clock time.Time

	users         map[int64]*models.User
	courses       map[int64]*models.Course
	enrollments   map[int64]*models.Enrollment
	materials     map[int64]*models.Material
	announcements map[int64]*models.Announcement
	assignments   map[int64]*models.Assignment
	submissions   map[int64]*models.Submission
}

func NewDB() *DB {
	return &DB{
		clock:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:         make(map[int64]*models.User),
		courses:       make(map[int64]*models.Course),
		enrollments:   make(map[int64]*models.Enrollment),
		materials:     make(map[int64]*models.Material),
		announcements: make(map[int64]*models.Announcement),
		assignments:   make(map[int64]*models.Assignment),
		submissions:   make(map[int64]*models.Submission),
	}
}

// nextID and now must be called with the write lock held.
func (db *DB) nextID() int64 {
	db.seq++
	return db.seq
}

// now advances a fake clock by one second per call so that ordering by
// timestamp is deterministic.
func (db *DB) now() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

// Repositories bundles every repository over one DB.
type Repositories struct {
	DB            *DB
	Users         *UserRepository
	Courses       *CourseRepository
	Enrollments   *EnrollmentRepository
	Materials     *MaterialRepository
	Announcements *AnnouncementRepository
	Assignments   *AssignmentRepository
	Submissions   *SubmissionRepository
}

func New() *Repositories {
	db := NewDB()
	return &Repositories{
		DB:            db,
		Users:         &UserRepository{db: db},
		Courses:       &CourseRepository{db: db},
		Enrollments:   &EnrollmentRepository{db: db},
		Materials:     &MaterialRepository{db: db},
		Announcements: &AnnouncementRepository{db: db},
		Assignments:   &AssignmentRepository{db: db},
		Submissions:   &SubmissionRepository{db: db},
	}
}
