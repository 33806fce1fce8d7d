package models

import (
	"time"
)

type Course struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	InstructorID int64     `json:"instructor_id" db:"instructor_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CourseWithInstructor is a listing row. IsEnrolled is only set when the
// listing was requested on behalf of a user.
type CourseWithInstructor struct {
	Course
	InstructorName string `json:"instructor_name" db:"instructor_name"`
	IsEnrolled     *bool  `json:"is_enrolled,omitempty" db:"is_enrolled"`
}

type CourseDetail struct {
	Course
	InstructorName string `json:"instructor_name" db:"instructor_name"`
	IsEnrolled     bool   `json:"is_enrolled"`
	IsInstructor   bool   `json:"is_instructor"`
}

type Enrollment struct {
	ID         int64     `json:"id" db:"id"`
	CourseID   int64     `json:"course_id" db:"course_id"`
	StudentID  int64     `json:"student_id" db:"student_id"`
	EnrolledAt time.Time `json:"enrolled_at" db:"enrolled_at"`
}
