package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-student-registry/internal/logger"
	"github.com/MKhiriev/go-student-registry/internal/service"
	"github.com/MKhiriev/go-student-registry/models"
)

// ─────────────────────────────────────────────
// Fake services
// ─────────────────────────────────────────────

// fakeAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type fakeAuthService struct {
	registerFn  func(ctx context.Context, creds models.Credentials) (models.User, error)
	loginFn     func(ctx context.Context, creds models.Credentials) (models.Session, error)
	logoutFn    func(ctx context.Context, token string) error
	authorizeFn func(ctx context.Context, token string) (int64, error)
}

func (f *fakeAuthService) Register(ctx context.Context, creds models.Credentials) (models.User, error) {
	return f.registerFn(ctx, creds)
}

func (f *fakeAuthService) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	return f.loginFn(ctx, creds)
}

func (f *fakeAuthService) Logout(ctx context.Context, token string) error {
	return f.logoutFn(ctx, token)
}

func (f *fakeAuthService) Authorize(ctx context.Context, token string) (int64, error) {
	return f.authorizeFn(ctx, token)
}

func (f *fakeAuthService) SweepExpiredSessions(context.Context, time.Duration) (int64, error) {
	return 0, nil
}

// fakeStudentService implements service.StudentService for unit tests.
type fakeStudentService struct {
	createFn     func(ctx context.Context, s models.Student) (models.Student, error)
	listFn       func(ctx context.Context, faculty string) ([]models.Student, error)
	updateFn     func(ctx context.Context, u models.StudentUpdate) (models.Student, error)
	deleteFn     func(ctx context.Context, id int64) error
	coursesFn    func(ctx context.Context) ([]string, error)
	meanFn       func(ctx context.Context, faculty string) (models.FacultyMean, error)
	lowResultsFn func(ctx context.Context, course string, below int) ([]models.Student, error)
	importCSVFn  func(ctx context.Context, r io.Reader) (models.ImportResult, error)
}

func (f *fakeStudentService) CreateStudent(ctx context.Context, s models.Student) (models.Student, error) {
	return f.createFn(ctx, s)
}

func (f *fakeStudentService) ListStudents(ctx context.Context, faculty string) ([]models.Student, error) {
	return f.listFn(ctx, faculty)
}

func (f *fakeStudentService) UpdateStudent(ctx context.Context, u models.StudentUpdate) (models.Student, error) {
	return f.updateFn(ctx, u)
}

func (f *fakeStudentService) DeleteStudent(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeStudentService) ListCourses(ctx context.Context) ([]string, error) {
	return f.coursesFn(ctx)
}

func (f *fakeStudentService) FacultyMean(ctx context.Context, faculty string) (models.FacultyMean, error) {
	return f.meanFn(ctx, faculty)
}

func (f *fakeStudentService) LowResults(ctx context.Context, course string, below int) ([]models.Student, error) {
	return f.lowResultsFn(ctx, course, below)
}

func (f *fakeStudentService) ImportCSV(ctx context.Context, r io.Reader) (models.ImportResult, error) {
	return f.importCSVFn(ctx, r)
}

type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) string {
	return f.version
}

// recordingCollector captures HTTP metrics recorded by withLogging.
type recordingCollector struct {
	mu       sync.Mutex
	statuses []int
}

func (c *recordingCollector) RecordAuth(string, string)  {}
func (c *recordingCollector) RecordSessionsSwept(int64)  {}
func (c *recordingCollector) RecordStudentsImported(int) {}
func (c *recordingCollector) RecordHTTPRequest(_ string, status int, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses = append(c.statuses, status)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const (
	validToken = "valid-token"
	testUserID = int64(42)
)

// authorizingService accepts validToken only.
func authorizingService() *fakeAuthService {
	return &fakeAuthService{
		authorizeFn: func(_ context.Context, token string) (int64, error) {
			if token == validToken {
				return testUserID, nil
			}
			return 0, service.ErrUnauthenticated
		},
	}
}

// newTestRouter builds the full router on the given fakes.
func newTestRouter(t *testing.T, auth service.AuthService, students service.StudentService) http.Handler {
	t.Helper()

	svcs := &service.Services{
		AuthService:    auth,
		StudentService: students,
		AppInfoService: &fakeAppInfoService{version: "test-version"},
	}
	return NewHandler(svcs, logger.Nop()).Init()
}

// doRequest sends a request through handler, adding the bearer token when
// token is not empty.
func doRequest(handler http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorded JSON response into T.
func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

// doRequestWithHeader sends a request with a raw Authorization header value.
func doRequestWithHeader(handler http.Handler, method, target string, body io.Reader, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
