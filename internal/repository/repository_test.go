package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/lms-service/internal/models"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestTranslateError(t *testing.T) {
	unique := &pq.Error{Code: "23505"}
	fk := &pq.Error{Code: "23503"}
	other := &pq.Error{Code: "42P01"}
	plain := errors.New("connection reset")

	assert.ErrorIs(t, translateError(unique), ErrDuplicate)
	assert.ErrorIs(t, translateError(fk), ErrForeignKey)
	assert.NotErrorIs(t, translateError(other), ErrDuplicate)
	assert.Equal(t, plain, translateError(plain))
	assert.NoError(t, translateError(nil))
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db, zerolog.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (email, password, full_name, role)")).
		WithArgs("ann@example.com", "digest", "Ann", "student").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := repo.Create(context.Background(), &models.User{
		Email:    "ann@example.com",
		Password: "digest",
		FullName: "Ann",
		Role:     models.RoleStudent,
	})

	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db, zerolog.Nop())
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), now))

	user := &models.User{Email: "bob@example.com", Password: "d", FullName: "Bob", Role: models.RoleInstructor}
	require.NoError(t, repo.Create(context.Background(), user))

	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, now, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByCredentialsNoMatch(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db, zerolog.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1 AND password = $2")).
		WithArgs("ann@example.com", "wrong").
		WillReturnError(sql.ErrNoRows)

	profile, err := repo.GetByCredentials(context.Background(), "ann@example.com", "wrong")

	assert.NoError(t, err)
	assert.Nil(t, profile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db, zerolog.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "role", "profile_picture"}).
			AddRow(int64(3), "c@example.com", "Cid", "student", nil))

	profile, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, models.RoleStudent, profile.Role)
	assert.Nil(t, profile.ProfilePicture)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_GetAllForUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCourseRepository(db, zerolog.Nop())
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN enrollments e ON c.id = e.course_id AND e.student_id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "instructor_id", "created_at", "instructor_name", "is_enrolled"}).
			AddRow(int64(1), "Go", "", int64(2), now, "Ivy", true).
			AddRow(int64(2), "SQL", "joins", int64(2), now, "Ivy", false))

	courses, err := repo.GetAllForUser(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, courses, 2)

	require.NotNil(t, courses[0].IsEnrolled)
	assert.True(t, *courses[0].IsEnrolled)
	require.NotNil(t, courses[1].IsEnrolled)
	assert.False(t, *courses[1].IsEnrolled)
	assert.Equal(t, "Ivy", courses[1].InstructorName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_GetByInstructorEmpty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCourseRepository(db, zerolog.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE instructor_id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "instructor_id", "created_at"}))

	courses, err := repo.GetByInstructor(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestEnrollmentRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEnrollmentRepository(db, zerolog.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO enrollments (course_id, student_id)")).
		WithArgs(int64(1), int64(2)).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.Enrollment{CourseID: 1, StudentID: 2})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestEnrollmentRepository_CreateUnknownCourse(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEnrollmentRepository(db, zerolog.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO enrollments")).
		WillReturnError(&pq.Error{Code: "23503"})

	err := repo.Create(context.Background(), &models.Enrollment{CourseID: 100, StudentID: 2})
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestSubmissionRepository_Upsert(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSubmissionRepository(db, zerolog.Nop())
	now := time.Now()
	path := "/uploads/submissions/submission_1_2_1.000000_a.txt"

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (assignment_id, student_id) DO UPDATE")).
		WithArgs(int64(1), int64(2), path, "answer").
		WillReturnRows(sqlmock.NewRows([]string{"id", "submitted_at"}).AddRow(int64(7), now))

	submission := &models.Submission{AssignmentID: 1, StudentID: 2, FilePath: &path, Content: "answer"}
	require.NoError(t, repo.Upsert(context.Background(), submission))

	assert.Equal(t, int64(7), submission.ID)
	assert.Equal(t, now, submission.SubmittedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSubmissionRepository(db, zerolog.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM submissions s WHERE s.id = $1")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	submission, err := repo.GetByID(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, submission)
}

func TestSubmissionRepository_Grade(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSubmissionRepository(db, zerolog.Nop())
	feedback := "good"

	mock.ExpectExec(regexp.QuoteMeta("SET grade = $1, feedback = $2, graded_at = NOW()")).
		WithArgs(93.5, "good", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Grade(context.Background(), 4, 93.5, &feedback))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_GetByCourseForStudent(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAssignmentRepository(db, zerolog.Nop())
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN submissions s ON a.id = s.assignment_id AND s.student_id = $1")).
		WithArgs(int64(8), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "course_id", "title", "description", "due_date", "instruction_file", "created_at",
			"submission_id", "grade", "feedback", "submitted_at",
		}).
			AddRow(int64(1), int64(1), "HW1", "", now, nil, now, int64(5), 80.0, "ok", now).
			AddRow(int64(2), int64(1), "HW2", "", nil, nil, now, nil, nil, nil, nil))

	assignments, err := repo.GetByCourseForStudent(context.Background(), 1, 8)
	require.NoError(t, err)
	require.Len(t, assignments, 2)

	require.NotNil(t, assignments[0].SubmissionID)
	assert.Equal(t, int64(5), *assignments[0].SubmissionID)
	assert.Equal(t, 80.0, *assignments[0].Grade)
	assert.Nil(t, assignments[1].SubmissionID)
	assert.Nil(t, assignments[1].DueDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
