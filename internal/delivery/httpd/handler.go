package httpd

import (
	"context"
	"io"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/lms-service/internal/service"
)

// Pinger reports database availability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// FileOpener serves stored uploads back by their public path.
type FileOpener interface {
	Open(ctx context.Context, publicPath string) (io.ReadCloser, int64, error)
}

type Handler struct {
	userService         service.UserService
	courseService       service.CourseService
	materialService     service.MaterialService
	announcementService service.AnnouncementService
	assignmentService   service.AssignmentService
	submissionService   service.SubmissionService
	files               FileOpener
	db                  Pinger
	validate            *validator.Validate
	uploadsPrefix       string
	maxUploadSize       int64
	logger              zerolog.Logger
}

type Config struct {
	UploadsPrefix string
	MaxUploadSize int64
}

func NewHandler(
	userService service.UserService,
	courseService service.CourseService,
	materialService service.MaterialService,
	announcementService service.AnnouncementService,
	assignmentService service.AssignmentService,
	submissionService service.SubmissionService,
	files FileOpener,
	db Pinger,
	cfg Config,
	logger zerolog.Logger,
) *Handler {
	prefix := "/" + strings.Trim(cfg.UploadsPrefix, "/")
	if prefix == "/" {
		prefix = "/uploads"
	}
	maxUpload := cfg.MaxUploadSize
	if maxUpload <= 0 {
		maxUpload = 100 << 20
	}

	return &Handler{
		userService:         userService,
		courseService:       courseService,
		materialService:     materialService,
		announcementService: announcementService,
		assignmentService:   assignmentService,
		submissionService:   submissionService,
		files:               files,
		db:                  db,
		validate:            newValidator(),
		uploadsPrefix:       prefix,
		maxUploadSize:       maxUpload,
		logger:              logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)
	router.Get(h.uploadsPrefix+"/*", h.ServeUpload)

	router.Route("/api", func(api chi.Router) {
		api.Post("/register", h.Register)
		api.Post("/login", h.Login)

		api.Route("/profile/{user_id}", func(r chi.Router) {
			r.Get("/", h.GetProfile)
			r.Post("/", h.UpdateProfile)
			r.Post("/update", h.UpdateProfile)
		})

		api.Route("/courses", func(r chi.Router) {
			r.Get("/", h.GetAllCourses)
			r.Post("/", h.CreateCourse)
			r.Get("/instructor/{id}", h.GetInstructorCourses)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetCourse)
				r.Post("/enroll", h.EnrollCourse)
				r.Get("/materials", h.GetCourseMaterials)
				r.Post("/materials", h.UploadMaterial)
				r.Get("/announcements", h.GetCourseAnnouncements)
				r.Post("/announcements", h.CreateAnnouncement)
				r.Get("/assignments", h.GetCourseAssignments)
				r.Post("/assignments", h.CreateAssignment)
			})
		})

		api.Route("/materials/{id}", func(r chi.Router) {
			r.Get("/", h.GetMaterial)
			r.Put("/", h.UpdateMaterial)
			r.Delete("/", h.DeleteMaterial)
		})

		api.Route("/announcements/{id}", func(r chi.Router) {
			r.Get("/", h.GetAnnouncement)
			r.Put("/", h.UpdateAnnouncement)
			r.Delete("/", h.DeleteAnnouncement)
		})

		api.Route("/assignments/{id}", func(r chi.Router) {
			r.Get("/", h.GetAssignment)
			r.Put("/", h.UpdateAssignment)
			r.Delete("/", h.DeleteAssignment)
			r.Get("/submissions", h.GetAssignmentSubmissions)
			r.Post("/submit", h.SubmitAssignment)
		})

		api.Post("/submissions/{id}/grade", h.GradeSubmission)
		api.Get("/student/{id}/courses", h.GetStudentCourses)
	})
}
