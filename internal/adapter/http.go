package adapter

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-student-registry/internal/config"
	"github.com/MKhiriev/go-student-registry/internal/logger"
	"github.com/MKhiriev/go-student-registry/internal/utils"
	"github.com/MKhiriev/go-student-registry/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter].
// cfg.HTTPAddress may omit the scheme, in which case http:// is assumed.
// cfg.Token, when set, is used for authenticated requests right away.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	a := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout, cfg.Retries),
		logger: logger,
	}
	a.SetToken(cfg.Token)
	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register POSTs credentials to /api/user/register.
func (h *httpServerAdapter) Register(ctx context.Context, credentials models.Credentials) (models.UserResponse, error) {
	var user models.UserResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials).
		SetResult(&user).
		Post("/api/user/register")
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserResponse{}, err
	}

	return user, nil
}

// Login POSTs credentials to /api/user/login. The token is taken from the
// JSON body and, failing that, from the Authorization header.
func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (string, error) {
	var loginResponse models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials).
		SetResult(&loginResponse).
		Post("/api/user/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	token := loginResponse.SessionToken
	if token == "" {
		token, err = utils.ParseBearerToken(resp.Header().Get("Authorization"))
		if err != nil {
			return "", fmt.Errorf("login parse bearer token: %w", err)
		}
	}

	h.SetToken(token)
	return token, nil
}

// Logout POSTs to /api/user/logout and forgets the token whatever the
// outcome.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/user/logout")
	h.SetToken("")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) CreateStudent(ctx context.Context, student models.Student) (models.Student, error) {
	var created models.Student

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(student).
		SetResult(&created).
		Post("/api/students/")
	if err != nil {
		return models.Student{}, fmt.Errorf("create student request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Student{}, err
	}

	return created, nil
}

func (h *httpServerAdapter) ListStudents(ctx context.Context, faculty string) ([]models.Student, error) {
	var students []models.Student

	req := h.authedRequest(ctx).SetResult(&students)
	if faculty != "" {
		req.SetQueryParam("faculty", faculty)
	}

	resp, err := req.Get("/api/students/")
	if err != nil {
		return nil, fmt.Errorf("list students request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return students, nil
}

// UpdateStudent PATCHes only the fields set in update.
func (h *httpServerAdapter) UpdateStudent(ctx context.Context, update models.StudentUpdate) (models.Student, error) {
	var updated models.Student

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(patchBody(update)).
		SetResult(&updated).
		SetPathParam("id", strconv.FormatInt(update.ID, 10)).
		Patch("/api/students/{id}")
	if err != nil {
		return models.Student{}, fmt.Errorf("update student request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Student{}, err
	}

	return updated, nil
}

// patchBody keeps only set fields; an unset Optional would encode as null,
// which the server rejects.
func patchBody(update models.StudentUpdate) map[string]any {
	body := make(map[string]any)
	if update.LastName.Set {
		body["lastname"] = update.LastName.Value
	}
	if update.FirstName.Set {
		body["firstname"] = update.FirstName.Value
	}
	if update.Faculty.Set {
		body["faculty"] = update.Faculty.Value
	}
	if update.Course.Set {
		body["course"] = update.Course.Value
	}
	if update.Result.Set {
		body["result"] = update.Result.Value
	}
	return body
}

func (h *httpServerAdapter) DeleteStudent(ctx context.Context, studentID int64) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(studentID, 10)).
		Delete("/api/students/{id}")
	if err != nil {
		return fmt.Errorf("delete student request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) ListCourses(ctx context.Context) ([]string, error) {
	var courses []string

	resp, err := h.authedRequest(ctx).SetResult(&courses).Get("/api/students/courses")
	if err != nil {
		return nil, fmt.Errorf("list courses request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return courses, nil
}

func (h *httpServerAdapter) FacultyMean(ctx context.Context, faculty string) (models.FacultyMean, error) {
	var mean models.FacultyMean

	resp, err := h.authedRequest(ctx).
		SetPathParam("faculty", faculty).
		SetResult(&mean).
		Get("/api/students/faculties/{faculty}/mean")
	if err != nil {
		return models.FacultyMean{}, fmt.Errorf("faculty mean request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.FacultyMean{}, err
	}

	return mean, nil
}

func (h *httpServerAdapter) LowResults(ctx context.Context, course string, below int) ([]models.Student, error) {
	var students []models.Student

	resp, err := h.authedRequest(ctx).
		SetPathParam("course", course).
		SetQueryParam("below", strconv.Itoa(below)).
		SetResult(&students).
		Get("/api/students/courses/{course}/low")
	if err != nil {
		return nil, fmt.Errorf("low results request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return students, nil
}

func (h *httpServerAdapter) ImportCSV(ctx context.Context, csv io.Reader) (models.ImportResult, error) {
	var result models.ImportResult

	body, err := gzipBody(csv)
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("compress import body: %w", err)
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "text/csv").
		SetHeader("Content-Encoding", "gzip").
		SetBody(body).
		SetResult(&result).
		Post("/api/students/import")
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("import request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ImportResult{}, err
	}

	h.logger.Debug().Str("func", "*httpServerAdapter.ImportCSV").Int("imported", result.Imported).Send()
	return result, nil
}

// gzipBody buffers the compressed document so retries can resend it.
func gzipBody(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := io.Copy(zw, r); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return resp.String(), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", utils.BearerHeader(token))
	}
	return req
}
