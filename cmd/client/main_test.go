package main

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-student-registry/internal/adapter"
	"github.com/MKhiriev/go-student-registry/models"
)

// fakeRegistry serves the registry API on fixed data.
func fakeRegistry(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	reply := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("POST /api/user/register", func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		reply(w, http.StatusOK, models.UserResponse{ID: 1, Email: creds.Email})
	})
	mux.HandleFunc("POST /api/user/login", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, models.LoginResponse{SessionToken: "tok"})
	})
	mux.HandleFunc("POST /api/user/logout", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, models.StatusResponse{Status: "ok"})
	})
	mux.HandleFunc("GET /api/version/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("2.0.0"))
	})
	mux.HandleFunc("GET /api/students/", authed(func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, []models.Student{
			{ID: 1, LastName: "Ivanov", FirstName: "Ivan", Faculty: r.URL.Query().Get("faculty"), Course: "Mechanics", Result: 75},
		})
	}))
	mux.HandleFunc("PATCH /api/students/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Patch-Body", string(body))
		reply(w, http.StatusOK, models.Student{ID: 7, Result: 0})
	}))
	mux.HandleFunc("DELETE /api/students/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "404" {
			http.Error(w, "student was not found", http.StatusNotFound)
			return
		}
		reply(w, http.StatusOK, models.StatusResponse{Status: "ok"})
	}))
	mux.HandleFunc("GET /api/students/courses/{course}/low", authed(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "30", r.URL.Query().Get("below"))
		reply(w, http.StatusOK, []models.Student{{ID: 2, LastName: "Petrov", Course: r.PathValue("course"), Result: 10}})
	}))
	mux.HandleFunc("POST /api/students/import", authed(func(w http.ResponseWriter, r *http.Request) {
		zr, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(zr)
		rows := strings.Count(strings.TrimSpace(string(data)), "\n")
		reply(w, http.StatusOK, models.ImportResult{Imported: rows})
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runClient(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("REGISTRY_ADDRESS", "")
	t.Setenv("REGISTRY_TOKEN", "")
	t.Setenv("REGISTRY_REQUEST_TIMEOUT", "")
	t.Setenv("REGISTRY_RETRIES", "")

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// ── Auth ────────────────────────────────────────────────────────────────────

func TestClient_RegisterLoginLogout(t *testing.T) {
	srv := fakeRegistry(t)

	out, err := runClient(t, "--address", srv.URL, "register", "--email", "ann@example.com", "--password", "pw")
	require.NoError(t, err)
	assert.Equal(t, "registered user 1 (ann@example.com)\n", out)

	out, err = runClient(t, "--address", srv.URL, "login", "--email", "ann@example.com", "--password", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok\n", out)

	out, err = runClient(t, "--address", srv.URL, "--token", "tok", "logout")
	require.NoError(t, err)
	assert.Equal(t, "logged out\n", out)
}

func TestClient_RegisterRequiresFlags(t *testing.T) {
	srv := fakeRegistry(t)

	_, err := runClient(t, "--address", srv.URL, "register", "--email", "ann@example.com")

	assert.Error(t, err)
}

func TestClient_StudentsWithoutToken(t *testing.T) {
	srv := fakeRegistry(t)

	_, err := runClient(t, "--address", srv.URL, "students", "list")

	assert.ErrorIs(t, err, adapter.ErrNotLoggedIn)
}

// ── Students ────────────────────────────────────────────────────────────────

func TestClient_StudentsList(t *testing.T) {
	srv := fakeRegistry(t)

	out, err := runClient(t, "--address", srv.URL, "--token", "tok", "students", "list", "--faculty", "Physics")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "LASTNAME")
	assert.Contains(t, lines[1], "Ivanov")
	assert.Contains(t, lines[1], "Physics")
}

func TestClient_StudentsUpdateSendsOnlyGivenFlags(t *testing.T) {
	srv := fakeRegistry(t)

	out, err := runClient(t, "--address", srv.URL, "--token", "tok", "students", "update", "7", "--result", "0")

	require.NoError(t, err)
	var updated models.Student
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, int64(7), updated.ID)
}

func TestClient_StudentsDelete(t *testing.T) {
	srv := fakeRegistry(t)

	out, err := runClient(t, "--address", srv.URL, "--token", "tok", "students", "delete", "5")
	require.NoError(t, err)
	assert.Equal(t, "deleted student 5\n", out)

	_, err = runClient(t, "--address", srv.URL, "--token", "tok", "students", "delete", "404")
	assert.ErrorIs(t, err, adapter.ErrNotFound)

	_, err = runClient(t, "--address", srv.URL, "--token", "tok", "students", "delete", "abc")
	assert.Error(t, err)
}

func TestClient_StudentsLowDefaultThreshold(t *testing.T) {
	srv := fakeRegistry(t)

	out, err := runClient(t, "--address", srv.URL, "--token", "tok", "students", "low", "Algebra")

	require.NoError(t, err)
	assert.Contains(t, out, "Petrov")
	assert.Contains(t, out, "Algebra")
}

func TestClient_StudentsImportFile(t *testing.T) {
	srv := fakeRegistry(t)

	path := filepath.Join(t.TempDir(), "students.csv")
	doc := "lastname,firstname,faculty,course,result\nIvanov,Ivan,Physics,Mechanics,75\nPetrova,Anna,Physics,Optics,90\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, err := runClient(t, "--address", srv.URL, "--token", "tok", "students", "import", path)

	require.NoError(t, err)
	assert.Equal(t, "imported 2 students\n", out)
}

func TestClient_Version(t *testing.T) {
	srv := fakeRegistry(t)

	out, err := runClient(t, "--address", srv.URL, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "Client version: N/A")
	assert.Contains(t, out, "Server version: 2.0.0")
}
