package inmem

import (
	"context"
	"sort"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/RubachokBoss/lms-service/internal/repository"
)

type CourseRepository struct {
	db *DB
}

var _ repository.CourseRepository = (*CourseRepository)(nil)

func (r *CourseRepository) Create(_ context.Context, course *models.Course) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.users[course.InstructorID]; !ok {
		return repository.ErrForeignKey
	}

	course.ID = r.db.nextID()
	course.CreatedAt = r.db.now()
	stored := *course
	r.db.courses[course.ID] = &stored
	return nil
}

func (r *CourseRepository) GetAll(_ context.Context) ([]models.CourseWithInstructor, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	courses := []models.CourseWithInstructor{}
	for _, c := range r.sorted() {
		courses = append(courses, r.withInstructor(c))
	}
	return courses, nil
}

func (r *CourseRepository) GetAllForUser(_ context.Context, userID int64) ([]models.CourseWithInstructor, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	courses := []models.CourseWithInstructor{}
	for _, c := range r.sorted() {
		course := r.withInstructor(c)
		enrolled := r.db.enrolled(c.ID, userID)
		course.IsEnrolled = &enrolled
		courses = append(courses, course)
	}
	return courses, nil
}

func (r *CourseRepository) GetByInstructor(_ context.Context, instructorID int64) ([]models.Course, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	courses := []models.Course{}
	for _, c := range r.sorted() {
		if c.InstructorID == instructorID {
			courses = append(courses, *c)
		}
	}
	return courses, nil
}

func (r *CourseRepository) GetByStudent(_ context.Context, studentID int64) ([]models.CourseWithInstructor, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	var enrollments []*models.Enrollment
	for _, e := range r.db.enrollments {
		if e.StudentID == studentID {
			enrollments = append(enrollments, e)
		}
	}
	sort.Slice(enrollments, func(i, j int) bool {
		return enrollments[i].EnrolledAt.After(enrollments[j].EnrolledAt)
	})

	courses := []models.CourseWithInstructor{}
	for _, e := range enrollments {
		if c, ok := r.db.courses[e.CourseID]; ok {
			courses = append(courses, r.withInstructor(c))
		}
	}
	return courses, nil
}

func (r *CourseRepository) GetByID(_ context.Context, id int64) (*models.CourseWithInstructor, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	c, ok := r.db.courses[id]
	if !ok {
		return nil, nil
	}
	course := r.withInstructor(c)
	return &course, nil
}

func (r *CourseRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	_, ok := r.db.courses[id]
	return ok, nil
}

func (r *CourseRepository) sorted() []*models.Course {
	courses := make([]*models.Course, 0, len(r.db.courses))
	for _, c := range r.db.courses {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses
}

func (r *CourseRepository) withInstructor(c *models.Course) models.CourseWithInstructor {
	course := models.CourseWithInstructor{Course: *c}
	if u, ok := r.db.users[c.InstructorID]; ok {
		course.InstructorName = u.FullName
	}
	return course
}

type EnrollmentRepository struct {
	db *DB
}

var _ repository.EnrollmentRepository = (*EnrollmentRepository)(nil)

func (r *EnrollmentRepository) Create(_ context.Context, enrollment *models.Enrollment) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.courses[enrollment.CourseID]; !ok {
		return repository.ErrForeignKey
	}
	if _, ok := r.db.users[enrollment.StudentID]; !ok {
		return repository.ErrForeignKey
	}
	if r.db.enrolled(enrollment.CourseID, enrollment.StudentID) {
		return repository.ErrDuplicate
	}

	enrollment.ID = r.db.nextID()
	enrollment.EnrolledAt = r.db.now()
	stored := *enrollment
	r.db.enrollments[enrollment.ID] = &stored
	return nil
}

func (r *EnrollmentRepository) Exists(_ context.Context, courseID, studentID int64) (bool, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	return r.db.enrolled(courseID, studentID), nil
}

func (db *DB) enrolled(courseID, studentID int64) bool {
	for _, e := range db.enrollments {
		if e.CourseID == courseID && e.StudentID == studentID {
			return true
		}
	}
	return false
}
