package models

import (
	"path/filepath"
	"strings"
	"time"
)

type FileType string

const (
	FileTypePDF   FileType = "pdf"
	FileTypeVideo FileType = "video"
	FileTypeOther FileType = "other"
)

func (ft FileType) String() string {
	return string(ft)
}

var videoExtensions = map[string]struct{}{
	".mp4": {},
	".avi": {},
	".mov": {},
	".wmv": {},
}

// ClassifyFile derives the material type from the extension of an uploaded
// file name.
func ClassifyFile(name string) FileType {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".pdf" {
		return FileTypePDF
	}
	if _, ok := videoExtensions[ext]; ok {
		return FileTypeVideo
	}
	return FileTypeOther
}

type Material struct {
	ID         int64     `json:"id" db:"id"`
	CourseID   int64     `json:"course_id" db:"course_id"`
	Title      string    `json:"title" db:"title"`
	FilePath   string    `json:"file_path" db:"file_path"`
	FileType   FileType  `json:"file_type" db:"file_type"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
}

type Announcement struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"course_id" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
