package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-student-registry/internal/logger"
	"github.com/MKhiriev/go-student-registry/internal/service"
	"github.com/MKhiriev/go-student-registry/internal/utils"
)

// auth is an HTTP middleware that enforces session-token authentication.
//
// It extracts the bearer token from the "Authorization" header, resolves it
// via [service.AuthService.Authorize], and on success stores the owning
// user's ID in the request context under [utils.UserIDCtxKey] before
// delegating to the next handler.
//
// A missing, malformed, unknown or expired token is answered with 401 and
// no further detail. Storage failures during the check produce 500.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug().Err(err).Str("func", "*Handler.auth").Send()
			unauthorized(w)
			return
		}

		ctx := r.Context()
		userID, err := h.services.AuthService.Authorize(ctx, token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				log.Debug().Err(err).Str("func", "*Handler.auth").Send()
				unauthorized(w)
				return
			}
			log.Err(err).Str("func", "*Handler.auth").Msg("error occurred during session check")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUserID(ctx, userID)))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="student-registry"`)
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}
