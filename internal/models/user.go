package models

import (
	"time"
)

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
)

func (r Role) String() string {
	return string(r)
}

type User struct {
	ID             int64     `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	Password       string    `json:"-" db:"password"`
	FullName       string    `json:"full_name" db:"full_name"`
	Role           Role      `json:"role" db:"role"`
	ProfilePicture *string   `json:"profile_picture" db:"profile_picture"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Profile is the public view of a user, returned by login and profile reads.
type Profile struct {
	ID             int64   `json:"id" db:"id"`
	Email          string  `json:"email" db:"email"`
	FullName       string  `json:"full_name" db:"full_name"`
	Role           Role    `json:"role" db:"role"`
	ProfilePicture *string `json:"profile_picture" db:"profile_picture"`
}
