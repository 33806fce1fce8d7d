package httpd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/lms-service/internal/repository/inmem"
	"github.com/RubachokBoss/lms-service/internal/service"
	"github.com/RubachokBoss/lms-service/internal/storage"
	"github.com/RubachokBoss/lms-service/pkg/hash"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(context.Context) error {
	return p.err
}

type testServer struct {
	router http.Handler
	db     *fakePinger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := zerolog.Nop()
	files := storage.NewFileStore(storage.NewLocalProvider(t.TempDir(), logger), "/uploads", logger)
	hasher, err := hash.NewPasswordHasher(hash.SHA256)
	require.NoError(t, err)
	repos := inmem.New()
	db := &fakePinger{}

	h := NewHandler(
		service.NewUserService(repos.Users, hasher, files, logger),
		service.NewCourseService(repos.Courses, repos.Enrollments, logger),
		service.NewMaterialService(repos.Materials, repos.Courses, files, logger),
		service.NewAnnouncementService(repos.Announcements, logger),
		service.NewAssignmentService(repos.Assignments, repos.Submissions, repos.Courses, files, logger),
		service.NewSubmissionService(repos.Submissions, repos.Assignments, files, logger),
		files,
		db,
		Config{UploadsPrefix: "/uploads", MaxUploadSize: 10 << 20},
		logger,
	)

	router := chi.NewRouter()
	h.RegisterRoutes(router)
	return &testServer{router: router, db: db}
}

func (s *testServer) do(t *testing.T, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var body map[string]interface{}
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func (s *testServer) list(t *testing.T, target string) []map[string]interface{} {
	t.Helper()
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	return items
}

func jsonRequest(method, target string, payload interface{}) *http.Request {
	data, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type formFileField struct {
	name    string
	content string
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, file *formFileField) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		part, err := mw.CreateFormFile("file", file.name)
		require.NoError(t, err)
		_, err = io.WriteString(part, file.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func (s *testServer) register(t *testing.T, email, role string) int64 {
	t.Helper()
	code, body := s.do(t, jsonRequest(http.MethodPost, "/api/register", map[string]string{
		"email":     email,
		"password":  "secret",
		"full_name": strings.Split(email, "@")[0],
		"role":      role,
	}))
	require.Equal(t, http.StatusOK, code, body)
	return int64(body["user_id"].(float64))
}

func (s *testServer) createCourse(t *testing.T, instructorID int64) int64 {
	t.Helper()
	code, body := s.do(t, jsonRequest(http.MethodPost, fmt.Sprintf("/api/courses?instructor_id=%d", instructorID), map[string]string{
		"title":       "Compilers",
		"description": "Parsing and codegen",
	}))
	require.Equal(t, http.StatusOK, code, body)
	return int64(body["course_id"].(float64))
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "up", body["database"])

	s.db.err = errors.New("connection refused")
	code, body = s.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "down", body["database"])
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)
	userID := s.register(t, "ann@example.com", "student")

	code, body := s.do(t, jsonRequest(http.MethodPost, "/api/register", map[string]string{
		"email": "ann@example.com", "password": "x", "full_name": "Ann", "role": "student",
	}))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email already exists", body["message"])
	assert.Equal(t, false, body["success"])

	code, body = s.do(t, jsonRequest(http.MethodPost, "/api/register", map[string]string{
		"email": "bob@example.com", "password": "x", "full_name": "Bob", "role": "admin",
	}))
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, body["message"], "role")

	code, body = s.do(t, jsonRequest(http.MethodPost, "/api/login", map[string]string{
		"email": "ann@example.com", "password": "secret",
	}))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, float64(userID), user["id"])
	assert.Equal(t, "student", user["role"])
	assert.Contains(t, user, "profile_picture")
	assert.NotContains(t, user, "password")

	code, body = s.do(t, jsonRequest(http.MethodPost, "/api/login", map[string]string{
		"email": "ann@example.com", "password": "wrong",
	}))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", body["message"])
}

func TestProfile(t *testing.T) {
	s := newTestServer(t)
	userID := s.register(t, "ann@example.com", "student")

	code, body := s.do(t, multipartRequest(t, http.MethodPost, fmt.Sprintf("/api/profile/%d/update", userID),
		map[string]string{"full_name": "Ann Smith"}, &formFileField{name: "me.png", content: "png"}))
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Profile updated", body["message"])
	picture := body["profile_picture"].(string)
	assert.True(t, strings.HasPrefix(picture, "/uploads/profiles/profile_"))

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, picture, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	code, body = s.do(t, multipartRequest(t, http.MethodPost, fmt.Sprintf("/api/profile/%d", userID),
		map[string]string{"full_name": "Ann B"}, nil))
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, body["profile_picture"])

	code, body = s.do(t, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/profile/%d", userID), nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ann B", body["full_name"])
	assert.Equal(t, picture, body["profile_picture"])

	code, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/api/profile/999", nil))
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/api/profile/abc", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, _ = s.do(t, multipartRequest(t, http.MethodPost, fmt.Sprintf("/api/profile/%d/update", userID), map[string]string{}, nil))
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestCoursesAndEnrollment(t *testing.T) {
	s := newTestServer(t)
	instructor := s.register(t, "ivy@example.com", "instructor")
	student := s.register(t, "sam@example.com", "student")
	courseID := s.createCourse(t, instructor)

	code, _ := s.do(t, jsonRequest(http.MethodPost, "/api/courses", map[string]string{"title": "x"}))
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	enroll := fmt.Sprintf("/api/courses/%d/enroll?student_id=%d", courseID, student)
	code, body := s.do(t, httptest.NewRequest(http.MethodPost, enroll, nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Enrolled successfully", body["message"])

	code, body = s.do(t, httptest.NewRequest(http.MethodPost, enroll, nil))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Already enrolled", body["message"])

	all := s.list(t, "/api/courses")
	require.Len(t, all, 1)
	assert.Equal(t, "ivy", all[0]["instructor_name"])
	assert.NotContains(t, all[0], "is_enrolled")

	mine := s.list(t, fmt.Sprintf("/api/courses?user_id=%d", student))
	require.Len(t, mine, 1)
	assert.Equal(t, true, mine[0]["is_enrolled"])

	code, body = s.do(t, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/courses/%d?user_id=%d", courseID, instructor), nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["is_instructor"])
	assert.Equal(t, false, body["is_enrolled"])

	code, body = s.do(t, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/courses/%d", courseID), nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["is_instructor"])
	assert.Equal(t, false, body["is_enrolled"])

	code, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/api/courses/777", nil))
	assert.Equal(t, http.StatusNotFound, code)

	assert.Len(t, s.list(t, fmt.Sprintf("/api/courses/instructor/%d", instructor)), 1)
	assert.Len(t, s.list(t, fmt.Sprintf("/api/student/%d/courses", student)), 1)
	assert.Empty(t, s.list(t, fmt.Sprintf("/api/student/%d/courses", instructor)))
}

func TestMaterialsLifecycle(t *testing.T) {
	s := newTestServer(t)
	instructor := s.register(t, "ivy@example.com", "instructor")
	courseID := s.createCourse(t, instructor)
	base := fmt.Sprintf("/api/courses/%d/materials", courseID)

	code, _ := s.do(t, multipartRequest(t, http.MethodPost, base, map[string]string{"title": "No file"}, nil))
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, body := s.do(t, multipartRequest(t, http.MethodPost, base, map[string]string{"title": "Week 1"},
		&formFileField{name: "week1.pdf", content: "%PDF-1.4"}))
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Material uploaded", body["message"])
	materialID := int64(body["material_id"].(float64))

	materials := s.list(t, base)
	require.Len(t, materials, 1)
	assert.Equal(t, "pdf", materials[0]["file_type"])
	filePath := materials[0]["file_path"].(string)
	assert.Contains(t, filePath, fmt.Sprintf("/uploads/materials/material_%d_", courseID))

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, filePath, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF-1.4", rec.Body.String())

	item := fmt.Sprintf("/api/materials/%d", materialID)
	code, body = s.do(t, multipartRequest(t, http.MethodPut, item, map[string]string{"title": "Week 1 (rev)"}, nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Material updated", body["message"])

	code, body = s.do(t, httptest.NewRequest(http.MethodGet, item, nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Week 1 (rev)", body["title"])
	assert.Equal(t, filePath, body["file_path"])

	code, body = s.do(t, httptest.NewRequest(http.MethodDelete, item, nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Material deleted", body["message"])

	code, _ = s.do(t, httptest.NewRequest(http.MethodGet, item, nil))
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, httptest.NewRequest(http.MethodGet, filePath, nil))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAnnouncements(t *testing.T) {
	s := newTestServer(t)
	instructor := s.register(t, "ivy@example.com", "instructor")
	courseID := s.createCourse(t, instructor)
	base := fmt.Sprintf("/api/courses/%d/announcements", courseID)

	assert.Empty(t, s.list(t, base))

	code, body := s.do(t, jsonRequest(http.MethodPost, base, map[string]string{"title": "Hello", "content": "Welcome"}))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Announcement created", body["message"])
	item := fmt.Sprintf("/api/announcements/%d", int64(body["announcement_id"].(float64)))

	code, _ = s.do(t, jsonRequest(http.MethodPost, base, map[string]string{"title": "Missing content"}))
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, body = s.do(t, jsonRequest(http.MethodPut, item, map[string]string{"title": "Hello!", "content": "Welcome all"}))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Announcement updated", body["message"])

	code, body = s.do(t, httptest.NewRequest(http.MethodGet, item, nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Welcome all", body["content"])

	code, _ = s.do(t, httptest.NewRequest(http.MethodDelete, item, nil))
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, httptest.NewRequest(http.MethodDelete, item, nil))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAssignmentsAndSubmissions(t *testing.T) {
	s := newTestServer(t)
	instructor := s.register(t, "ivy@example.com", "instructor")
	student := s.register(t, "sam@example.com", "student")
	courseID := s.createCourse(t, instructor)
	base := fmt.Sprintf("/api/courses/%d/assignments", courseID)

	code, body := s.do(t, multipartRequest(t, http.MethodPost, "/api/courses/999/assignments",
		map[string]string{"title": "HW", "description": "d"}, nil))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Course with id 999 not found", body["message"])

	code, _ = s.do(t, multipartRequest(t, http.MethodPost, base,
		map[string]string{"title": "HW", "description": "d", "due_date": "next week"}, nil))
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, body = s.do(t, multipartRequest(t, http.MethodPost, base,
		map[string]string{"title": "HW1", "description": "Solve", "due_date": "2030-05-01T23:59"},
		&formFileField{name: "hw1.pdf", content: "task"}))
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Assignment created", body["message"])
	assignmentID := int64(body["assignment_id"].(float64))
	item := fmt.Sprintf("/api/assignments/%d", assignmentID)

	submit := item + "/submit"
	code, body = s.do(t, multipartRequest(t, http.MethodPost, submit,
		map[string]string{"student_id": fmt.Sprint(student), "content": "first"}, &formFileField{name: "a1.txt", content: "1"}))
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Assignment submitted", body["message"])
	firstID := body["submission_id"]

	code, body = s.do(t, multipartRequest(t, http.MethodPost, submit,
		map[string]string{"student_id": fmt.Sprint(student), "content": "second"}, &formFileField{name: "a2.txt", content: "2"}))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, firstID, body["submission_id"])

	code, _ = s.do(t, multipartRequest(t, http.MethodPost, submit, map[string]string{"content": "anon"}, nil))
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	submissions := s.list(t, item+"/submissions")
	require.Len(t, submissions, 1)
	assert.Equal(t, "second", submissions[0]["content"])
	assert.Equal(t, "sam", submissions[0]["student_name"])
	assert.Equal(t, "sam@example.com", submissions[0]["student_email"])

	forStudent := s.list(t, fmt.Sprintf("%s?student_id=%d", base, student))
	require.Len(t, forStudent, 1)
	assert.Equal(t, firstID, forStudent[0]["submission_id"])
	assert.Nil(t, forStudent[0]["grade"])

	grade := fmt.Sprintf("/api/submissions/%d/grade", int64(firstID.(float64)))
	code, _ = s.do(t, jsonRequest(http.MethodPost, grade, map[string]string{"feedback": "no grade"}))
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, body = s.do(t, jsonRequest(http.MethodPost, grade, map[string]interface{}{"grade": 88.5, "feedback": "Nice"}))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Submission graded", body["message"])

	code, _ = s.do(t, jsonRequest(http.MethodPost, "/api/submissions/4040/grade", map[string]interface{}{"grade": 1}))
	assert.Equal(t, http.StatusNotFound, code)

	code, body = s.do(t, httptest.NewRequest(http.MethodGet, fmt.Sprintf("%s?student_id=%d", item, student), nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Compilers", body["course_title"])
	assert.Equal(t, "ivy", body["instructor_name"])
	assert.Equal(t, "2030-05-01T23:59:00Z", body["due_date"])
	submission := body["submission"].(map[string]interface{})
	assert.Equal(t, 88.5, submission["grade"])
	assert.Equal(t, "Nice", submission["feedback"])

	code, body = s.do(t, multipartRequest(t, http.MethodPut, item,
		map[string]string{"title": "HW1b", "description": "Solve again", "due_date": "2030-06-01"}, nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Assignment updated", body["message"])

	code, body = s.do(t, httptest.NewRequest(http.MethodDelete, item, nil))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Assignment deleted", body["message"])

	assert.Empty(t, s.list(t, item+"/submissions"))

	code, _ = s.do(t, httptest.NewRequest(http.MethodGet, item, nil))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "2030-01-02", want: "2030-01-02T00:00:00Z"},
		{in: "2030-01-02T10:30", want: "2030-01-02T10:30:00Z"},
		{in: "2030-01-02 10:30:15", want: "2030-01-02T10:30:15Z"},
		{in: "2030-01-02T10:30:15+02:00", want: "2030-01-02T10:30:15+02:00"},
		{in: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDueDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, got.Format("2006-01-02T15:04:05Z07:00"))
		})
	}
}
