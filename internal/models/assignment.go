package models

import (
	"time"
)

type Assignment struct {
	ID              int64      `json:"id" db:"id"`
	CourseID        int64      `json:"course_id" db:"course_id"`
	Title           string     `json:"title" db:"title"`
	Description     string     `json:"description" db:"description"`
	DueDate         *time.Time `json:"due_date" db:"due_date"`
	InstructionFile *string    `json:"instruction_file" db:"instruction_file"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// AssignmentWithSubmission is an assignment listed for one student, with that
// student's submission columns (null when nothing was submitted).
type AssignmentWithSubmission struct {
	Assignment
	SubmissionID *int64     `json:"submission_id" db:"submission_id"`
	Grade        *float64   `json:"grade" db:"grade"`
	Feedback     *string    `json:"feedback" db:"feedback"`
	SubmittedAt  *time.Time `json:"submitted_at" db:"submitted_at"`
}

type AssignmentDetail struct {
	Assignment
	CourseTitle    string      `json:"course_title" db:"course_title"`
	InstructorName string      `json:"instructor_name" db:"instructor_name"`
	Submission     *Submission `json:"submission"`
}

type Submission struct {
	ID           int64      `json:"id" db:"id"`
	AssignmentID int64      `json:"assignment_id" db:"assignment_id"`
	StudentID    int64      `json:"student_id" db:"student_id"`
	FilePath     *string    `json:"file_path" db:"file_path"`
	Content      string     `json:"content" db:"content"`
	Grade        *float64   `json:"grade" db:"grade"`
	Feedback     *string    `json:"feedback" db:"feedback"`
	SubmittedAt  time.Time  `json:"submitted_at" db:"submitted_at"`
	GradedAt     *time.Time `json:"graded_at" db:"graded_at"`
}

type SubmissionWithStudent struct {
	Submission
	StudentName  string `json:"student_name" db:"student_name"`
	StudentEmail string `json:"student_email" db:"student_email"`
}
