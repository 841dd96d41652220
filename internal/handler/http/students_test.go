package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-student-registry/internal/service"
	"github.com/MKhiriev/go-student-registry/internal/store"
	"github.com/MKhiriev/go-student-registry/internal/utils"
	"github.com/MKhiriev/go-student-registry/models"
)

var ivanov = models.Student{ID: 1, LastName: "Ivanov", FirstName: "Ivan", Faculty: "Physics", Course: "Mechanics", Result: 75}

// ─────────────────────────────────────────────
// Authorization
// ─────────────────────────────────────────────

func TestStudents_RequireAuthorization(t *testing.T) {
	router := newTestRouter(t, authorizingService(), &fakeStudentService{})

	routes := []struct{ method, target string }{
		{http.MethodPost, "/api/students/"},
		{http.MethodGet, "/api/students/"},
		{http.MethodPatch, "/api/students/1"},
		{http.MethodDelete, "/api/students/1"},
		{http.MethodGet, "/api/students/courses"},
		{http.MethodGet, "/api/students/faculties/Physics/mean"},
		{http.MethodGet, "/api/students/courses/Mechanics/low"},
		{http.MethodPost, "/api/students/import"},
	}

	for _, route := range routes {
		for _, token := range []string{"", "unknown-token"} {
			t.Run(fmt.Sprintf("%s %s token=%q", route.method, route.target, token), func(t *testing.T) {
				rec := doRequest(router, route.method, route.target, "", token)

				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				assert.Equal(t, http.StatusText(http.StatusUnauthorized)+"\n", rec.Body.String())
			})
		}
	}
}

// ─────────────────────────────────────────────
// create / list
// ─────────────────────────────────────────────

func TestCreateStudent(t *testing.T) {
	students := &fakeStudentService{
		createFn: func(ctx context.Context, s models.Student) (models.Student, error) {
			userID, ok := utils.GetUserIDFromContext(ctx)
			assert.True(t, ok)
			assert.Equal(t, testUserID, userID)
			assert.Zero(t, s.ID, "client-supplied id must be ignored")

			s.ID = 1
			return s, nil
		},
	}
	router := newTestRouter(t, authorizingService(), students)

	body := `{"id":99,"lastname":"Ivanov","firstname":"Ivan","faculty":"Physics","course":"Mechanics","result":75}`
	rec := doRequest(router, http.MethodPost, "/api/students/", body, validToken)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, ivanov, decodeBody[models.Student](t, rec))
}

func TestCreateStudent_InvalidData(t *testing.T) {
	students := &fakeStudentService{
		createFn: func(context.Context, models.Student) (models.Student, error) {
			return models.Student{}, fmt.Errorf("%w: lastname is required", service.ErrInvalidDataProvided)
		},
	}
	router := newTestRouter(t, authorizingService(), students)

	rec := doRequest(router, http.MethodPost, "/api/students/", `{"firstname":"Ivan"}`, validToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "lastname is required")
}

func TestListStudents(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		wantFaculty string
		result      []models.Student
		wantBody    string
	}{
		{name: "all", target: "/api/students/", result: []models.Student{ivanov}},
		{name: "by faculty", target: "/api/students/?faculty=Physics", wantFaculty: "Physics", result: []models.Student{ivanov}},
		{name: "empty result encodes as array", target: "/api/students/?faculty=None", wantFaculty: "None", result: nil, wantBody: "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			students := &fakeStudentService{
				listFn: func(_ context.Context, faculty string) ([]models.Student, error) {
					assert.Equal(t, tt.wantFaculty, faculty)
					return tt.result, nil
				},
			}
			router := newTestRouter(t, authorizingService(), students)

			rec := doRequest(router, http.MethodGet, tt.target, "", validToken)

			require.Equal(t, http.StatusOK, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
				return
			}
			assert.Equal(t, tt.result, decodeBody[[]models.Student](t, rec))
		})
	}
}

// ─────────────────────────────────────────────
// update / delete
// ─────────────────────────────────────────────

func TestUpdateStudent(t *testing.T) {
	students := &fakeStudentService{
		updateFn: func(_ context.Context, u models.StudentUpdate) (models.Student, error) {
			assert.Equal(t, int64(1), u.ID)
			assert.Equal(t, models.Some(0), u.Result)
			assert.False(t, u.LastName.Set)

			updated := ivanov
			updated.Result = 0
			return updated, nil
		},
	}
	router := newTestRouter(t, authorizingService(), students)

	rec := doRequest(router, http.MethodPatch, "/api/students/1", `{"result":0}`, validToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decodeBody[models.Student](t, rec).Result)
}

func TestUpdateStudent_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		serviceErr error
		wantStatus int
	}{
		{name: "non-numeric id", target: "/api/students/abc", body: `{"result":1}`, wantStatus: http.StatusBadRequest},
		{name: "zero id", target: "/api/students/0", body: `{"result":1}`, wantStatus: http.StatusBadRequest},
		{name: "explicit null", target: "/api/students/1", body: `{"result":null}`, wantStatus: http.StatusBadRequest},
		{name: "wrong type", target: "/api/students/1", body: `{"result":"high"}`, wantStatus: http.StatusBadRequest},
		{name: "not found", target: "/api/students/1", body: `{"result":1}`, serviceErr: fmt.Errorf("update: %w", store.ErrStudentNotFound), wantStatus: http.StatusNotFound},
		{name: "store outage", target: "/api/students/1", body: `{"result":1}`, serviceErr: fmt.Errorf("update: %w", store.ErrExecutingQuery), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			students := &fakeStudentService{
				updateFn: func(context.Context, models.StudentUpdate) (models.Student, error) {
					return models.Student{}, tt.serviceErr
				},
			}
			router := newTestRouter(t, authorizingService(), students)

			rec := doRequest(router, http.MethodPatch, tt.target, tt.body, validToken)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestDeleteStudent(t *testing.T) {
	var deleted int64
	students := &fakeStudentService{
		deleteFn: func(_ context.Context, id int64) error {
			if id == 404 {
				return store.ErrStudentNotFound
			}
			deleted = id
			return nil
		},
	}
	router := newTestRouter(t, authorizingService(), students)

	rec := doRequest(router, http.MethodDelete, "/api/students/5", "", validToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), deleted)

	rec = doRequest(router, http.MethodDelete, "/api/students/404", "", validToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// queries
// ─────────────────────────────────────────────

func TestListCourses(t *testing.T) {
	students := &fakeStudentService{
		coursesFn: func(context.Context) ([]string, error) {
			return []string{"Algebra", "Mechanics"}, nil
		},
	}
	router := newTestRouter(t, authorizingService(), students)

	rec := doRequest(router, http.MethodGet, "/api/students/courses", "", validToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["Algebra","Mechanics"]`, rec.Body.String())
}

func TestFacultyMean(t *testing.T) {
	students := &fakeStudentService{
		meanFn: func(_ context.Context, faculty string) (models.FacultyMean, error) {
			if faculty == "Empty" {
				return models.FacultyMean{}, store.ErrStudentNotFound
			}
			return models.FacultyMean{Faculty: faculty, Mean: 62.5}, nil
		},
	}
	router := newTestRouter(t, authorizingService(), students)

	rec := doRequest(router, http.MethodGet, "/api/students/faculties/Physics/mean", "", validToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"faculty":"Physics","mean":62.5}`, rec.Body.String())

	rec = doRequest(router, http.MethodGet, "/api/students/faculties/Empty/mean", "", validToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLowResults(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantBelow  int
		wantStatus int
	}{
		{name: "default threshold", target: "/api/students/courses/Mechanics/low", wantBelow: defaultLowResultThreshold, wantStatus: http.StatusOK},
		{name: "explicit threshold", target: "/api/students/courses/Mechanics/low?below=50", wantBelow: 50, wantStatus: http.StatusOK},
		{name: "invalid threshold", target: "/api/students/courses/Mechanics/low?below=fifty", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			students := &fakeStudentService{
				lowResultsFn: func(_ context.Context, course string, below int) ([]models.Student, error) {
					assert.Equal(t, "Mechanics", course)
					assert.Equal(t, tt.wantBelow, below)
					return []models.Student{ivanov}, nil
				},
			}
			router := newTestRouter(t, authorizingService(), students)

			rec := doRequest(router, http.MethodGet, tt.target, "", validToken)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// ─────────────────────────────────────────────
// import
// ─────────────────────────────────────────────

const importDoc = "lastname,firstname,faculty,course,result\nIvanov,Ivan,Physics,Mechanics,75\n"

func TestImportStudents(t *testing.T) {
	students := &fakeStudentService{
		importCSVFn: func(_ context.Context, r io.Reader) (models.ImportResult, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, importDoc, string(data))
			return models.ImportResult{Imported: 1}, nil
		},
	}
	router := newTestRouter(t, authorizingService(), students)

	rec := doRequest(router, http.MethodPost, "/api/students/import", importDoc, validToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeBody[models.ImportResult](t, rec).Imported)
}

func TestImportStudents_GzipBody(t *testing.T) {
	students := &fakeStudentService{
		importCSVFn: func(_ context.Context, r io.Reader) (models.ImportResult, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, importDoc, string(data))
			return models.ImportResult{Imported: 1}, nil
		},
	}
	router := newTestRouter(t, authorizingService(), students)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(importDoc))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/students/import", &buf)
	req.Header.Set("Authorization", "Bearer "+validToken)
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestImportStudents_InvalidCSV(t *testing.T) {
	students := &fakeStudentService{
		importCSVFn: func(context.Context, io.Reader) (models.ImportResult, error) {
			return models.ImportResult{}, fmt.Errorf("%w: missing column \"result\"", service.ErrInvalidCSV)
		},
	}
	router := newTestRouter(t, authorizingService(), students)

	rec := doRequest(router, http.MethodPost, "/api/students/import", "lastname\nIvanov\n", validToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "invalid CSV"))
}

func TestImportStudents_BodyTooLarge(t *testing.T) {
	students := &fakeStudentService{
		importCSVFn: func(_ context.Context, r io.Reader) (models.ImportResult, error) {
			_, err := io.ReadAll(r)
			return models.ImportResult{}, fmt.Errorf("%w: %w", service.ErrInvalidCSV, err)
		},
	}
	router := newTestRouter(t, authorizingService(), students)

	body := strings.Repeat("x", maxCSVBodyBytes+1)
	rec := doRequest(router, http.MethodPost, "/api/students/import", body, validToken)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestStudents_AuthorizeStoreOutage(t *testing.T) {
	auth := &fakeAuthService{
		authorizeFn: func(context.Context, string) (int64, error) {
			return 0, errors.New("db down")
		},
	}
	router := newTestRouter(t, auth, &fakeStudentService{})

	rec := doRequest(router, http.MethodGet, "/api/students/", "", validToken)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
