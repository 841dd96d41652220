package adapter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-student-registry/internal/utils"
)

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		status  int
		want    error
		wantMsg string
	}{
		{status: http.StatusOK},
		{status: http.StatusCreated},
		{status: http.StatusBadRequest, want: ErrBadRequest},
		{status: http.StatusUnauthorized, want: ErrUnauthorized},
		{status: http.StatusNotFound, want: ErrNotFound},
		{status: http.StatusRequestEntityTooLarge, want: ErrRequestTooLarge},
		{status: http.StatusInternalServerError, want: ErrInternalServerError},
		{status: http.StatusBadGateway, want: ErrBadGateway},
		{status: http.StatusServiceUnavailable, want: ErrServiceUnavailable},
		{status: http.StatusTeapot, wantMsg: "http 418"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			resp, err := utils.NewHTTPClient(srv.URL, time.Second, 0).R().Get("/")
			require.NoError(t, err)

			err = mapHTTPError(resp)
			switch {
			case tt.want != nil:
				assert.ErrorIs(t, err, tt.want)
			case tt.wantMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantMsg)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestMapHTTPError_KeepsServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "result must not be negative", http.StatusBadRequest)
	}))
	defer srv.Close()

	resp, err := utils.NewHTTPClient(srv.URL, time.Second, 0).R().Get("/")
	require.NoError(t, err)

	err = mapHTTPError(resp)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.EqualError(t, err, ErrBadRequest.Error()+": result must not be negative")
}
