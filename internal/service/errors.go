package service

import (
	"errors"
)

var (
	ErrEmailExists          = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrCourseNotFound       = errors.New("course not found")
	ErrAlreadyEnrolled      = errors.New("already enrolled")
	ErrMaterialNotFound     = errors.New("material not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrSubmissionNotFound   = errors.New("submission not found")
)
