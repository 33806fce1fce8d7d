package models

import (
	"io"
	"time"
)

// Data Transfer Objects

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"required,max=255"`
	Role     Role   `json:"role" validate:"required,oneof=student instructor"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success bool     `json:"success"`
	User    *Profile `json:"user"`
}

type UpdateProfileRequest struct {
	FullName string `form:"full_name" validate:"required,max=255"`
	File     *FileUpload
}

type UpdateProfileResponse struct {
	Success        bool    `json:"success"`
	ProfilePicture *string `json:"profile_picture"`
	Message        string  `json:"message"`
}

type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
}

type CreateCourseResponse struct {
	Success  bool   `json:"success"`
	CourseID int64  `json:"course_id"`
	Message  string `json:"message"`
}

type MaterialRequest struct {
	Title string `form:"title" validate:"required,max=255"`
	File  *FileUpload
}

type CreateMaterialResponse struct {
	Success    bool   `json:"success"`
	MaterialID int64  `json:"material_id"`
	Message    string `json:"message"`
}

type AnnouncementRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

type CreateAnnouncementResponse struct {
	Success        bool   `json:"success"`
	AnnouncementID int64  `json:"announcement_id"`
	Message        string `json:"message"`
}

type AssignmentRequest struct {
	Title       string `form:"title" validate:"required,max=255"`
	Description string `form:"description" validate:"required"`
	DueDate     *time.Time
	File        *FileUpload
}

type CreateAssignmentResponse struct {
	Success      bool   `json:"success"`
	AssignmentID int64  `json:"assignment_id"`
	Message      string `json:"message"`
}

type SubmitRequest struct {
	StudentID int64  `form:"student_id" validate:"required,gt=0"`
	Content   string `form:"content"`
	File      *FileUpload
}

type SubmitResponse struct {
	Success      bool   `json:"success"`
	SubmissionID int64  `json:"submission_id"`
	Message      string `json:"message"`
}

type GradeRequest struct {
	Grade    *float64 `json:"grade" validate:"required"`
	Feedback *string  `json:"feedback"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FileUpload carries an uploaded multipart part to the service layer.
type FileUpload struct {
	Name    string
	Size    int64
	Content io.Reader
}
