package http

import (
	"net/http"

	"github.com/MKhiriev/go-student-registry/internal/logger"
	"github.com/MKhiriev/go-student-registry/internal/utils"
	"github.com/MKhiriev/go-student-registry/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials
	if err := decodeJSON(w, r, &credentials); err != nil {
		writeError(w, r, "*Handler.register", err)
		return
	}

	user, err := h.services.AuthService.Register(r.Context(), credentials)
	if err != nil {
		writeError(w, r, "*Handler.register", err)
		return
	}

	utils.WriteJSON(w, models.UserResponse{ID: user.UserID, Email: user.Email}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials
	if err := decodeJSON(w, r, &credentials); err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	session, err := h.services.AuthService.Login(r.Context(), credentials)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	logger.FromRequest(r).Debug().Str("func", "*Handler.login").Int64("user_id", session.UserID).Msg("user successfully logged in")

	w.Header().Set("Authorization", utils.BearerHeader(session.Token))
	utils.WriteJSON(w, models.LoginResponse{SessionToken: session.Token}, http.StatusOK)
}

// logout always answers 200 unless the store fails: a missing, malformed or
// unknown token leaves nothing to close.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		token = ""
	}

	if err = h.services.AuthService.Logout(r.Context(), token); err != nil {
		writeError(w, r, "*Handler.logout", err)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: "ok"}, http.StatusOK)
}
