package inmem

import (
	"context"
	"sort"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/RubachokBoss/lms-service/internal/repository"
)

type AssignmentRepository struct {
	db *DB
}

var _ repository.AssignmentRepository = (*AssignmentRepository)(nil)

func (r *AssignmentRepository) Create(_ context.Context, assignment *models.Assignment) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.courses[assignment.CourseID]; !ok {
		return repository.ErrForeignKey
	}

	assignment.ID = r.db.nextID()
	assignment.CreatedAt = r.db.now()
	stored := *assignment
	r.db.assignments[assignment.ID] = &stored
	return nil
}

func (r *AssignmentRepository) GetByID(_ context.Context, id int64) (*models.Assignment, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if a, ok := r.db.assignments[id]; ok {
		assignment := *a
		return &assignment, nil
	}
	return nil, nil
}

func (r *AssignmentRepository) GetDetails(_ context.Context, id int64) (*models.AssignmentDetail, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	a, ok := r.db.assignments[id]
	if !ok {
		return nil, nil
	}
	c, ok := r.db.courses[a.CourseID]
	if !ok {
		return nil, nil
	}

	detail := &models.AssignmentDetail{
		Assignment:  *a,
		CourseTitle: c.Title,
	}
	if u, ok := r.db.users[c.InstructorID]; ok {
		detail.InstructorName = u.FullName
	}
	return detail, nil
}

func (r *AssignmentRepository) GetByCourse(_ context.Context, courseID int64) ([]models.Assignment, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	assignments := []models.Assignment{}
	for _, a := range r.byCourse(courseID) {
		assignments = append(assignments, *a)
	}
	return assignments, nil
}

func (r *AssignmentRepository) GetByCourseForStudent(_ context.Context, courseID, studentID int64) ([]models.AssignmentWithSubmission, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	assignments := []models.AssignmentWithSubmission{}
	for _, a := range r.byCourse(courseID) {
		row := models.AssignmentWithSubmission{Assignment: *a}
		if s := r.db.submissionFor(a.ID, studentID); s != nil {
			id, submittedAt := s.ID, s.SubmittedAt
			row.SubmissionID = &id
			row.Grade = s.Grade
			row.Feedback = s.Feedback
			row.SubmittedAt = &submittedAt
		}
		assignments = append(assignments, row)
	}
	return assignments, nil
}

func (r *AssignmentRepository) Update(_ context.Context, assignment *models.Assignment) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if a, ok := r.db.assignments[assignment.ID]; ok {
		a.Title = assignment.Title
		a.Description = assignment.Description
		a.DueDate = assignment.DueDate
		a.InstructionFile = assignment.InstructionFile
	}
	return nil
}

// Delete cascades to the assignment's submissions.
func (r *AssignmentRepository) Delete(_ context.Context, id int64) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	delete(r.db.assignments, id)
	for sid, s := range r.db.submissions {
		if s.AssignmentID == id {
			delete(r.db.submissions, sid)
		}
	}
	return nil
}

// byCourse orders by due date ascending with undated assignments last.
func (r *AssignmentRepository) byCourse(courseID int64) []*models.Assignment {
	var assignments []*models.Assignment
	for _, a := range r.db.assignments {
		if a.CourseID == courseID {
			assignments = append(assignments, a)
		}
	}
	sort.Slice(assignments, func(i, j int) bool {
		di, dj := assignments[i].DueDate, assignments[j].DueDate
		switch {
		case di == nil && dj == nil:
			return assignments[i].ID < assignments[j].ID
		case di == nil:
			return false
		case dj == nil:
			return true
		case di.Equal(*dj):
			return assignments[i].ID < assignments[j].ID
		default:
			return di.Before(*dj)
		}
	})
	return assignments
}

type SubmissionRepository struct {
	db *DB
}

var _ repository.SubmissionRepository = (*SubmissionRepository)(nil)

func (r *SubmissionRepository) Upsert(_ context.Context, submission *models.Submission) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.assignments[submission.AssignmentID]; !ok {
		return repository.ErrForeignKey
	}
	if _, ok := r.db.users[submission.StudentID]; !ok {
		return repository.ErrForeignKey
	}

	if existing := r.db.submissionFor(submission.AssignmentID, submission.StudentID); existing != nil {
		existing.FilePath = submission.FilePath
		existing.Content = submission.Content
		existing.SubmittedAt = r.db.now()
		submission.ID = existing.ID
		submission.SubmittedAt = existing.SubmittedAt
		return nil
	}

	submission.ID = r.db.nextID()
	submission.SubmittedAt = r.db.now()
	stored := *submission
	r.db.submissions[submission.ID] = &stored
	return nil
}

func (r *SubmissionRepository) GetByID(_ context.Context, id int64) (*models.Submission, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if s, ok := r.db.submissions[id]; ok {
		submission := *s
		return &submission, nil
	}
	return nil, nil
}

func (r *SubmissionRepository) GetByAssignmentAndStudent(_ context.Context, assignmentID, studentID int64) (*models.Submission, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if s := r.db.submissionFor(assignmentID, studentID); s != nil {
		submission := *s
		return &submission, nil
	}
	return nil, nil
}

func (r *SubmissionRepository) GetByAssignment(_ context.Context, assignmentID int64) ([]models.SubmissionWithStudent, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	submissions := []models.SubmissionWithStudent{}
	for _, s := range r.db.submissions {
		if s.AssignmentID != assignmentID {
			continue
		}
		row := models.SubmissionWithStudent{Submission: *s}
		if u, ok := r.db.users[s.StudentID]; ok {
			row.StudentName = u.FullName
			row.StudentEmail = u.Email
		}
		submissions = append(submissions, row)
	}
	sort.Slice(submissions, func(i, j int) bool {
		return submissions[i].SubmittedAt.After(submissions[j].SubmittedAt)
	})
	return submissions, nil
}

func (r *SubmissionRepository) FilePathsByAssignment(_ context.Context, assignmentID int64) ([]string, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	var paths []string
	for _, s := range r.db.submissions {
		if s.AssignmentID == assignmentID && s.FilePath != nil {
			paths = append(paths, *s.FilePath)
		}
	}
	return paths, nil
}

func (r *SubmissionRepository) Grade(_ context.Context, id int64, grade float64, feedback *string) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if s, ok := r.db.submissions[id]; ok {
		gradedAt := r.db.now()
		s.Grade = &grade
		s.Feedback = feedback
		s.GradedAt = &gradedAt
	}
	return nil
}

// Count reports the number of stored submissions.
func (r *SubmissionRepository) Count() int {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	return len(r.db.submissions)
}

func (db *DB) submissionFor(assignmentID, studentID int64) *models.Submission {
	for _, s := range db.submissions {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			return s
		}
	}
	return nil
}
