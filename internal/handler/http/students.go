// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-student-registry/internal/logger"
	"github.com/MKhiriev/go-student-registry/internal/utils"
	"github.com/MKhiriev/go-student-registry/models"
)

// defaultLowResultThreshold is used when GET .../low has no "below" parameter.
const defaultLowResultThreshold = 30

func (h *Handler) createStudent(w http.ResponseWriter, r *http.Request) {
	var student models.Student
	if err := decodeJSON(w, r, &student); err != nil {
		writeError(w, r, "*Handler.createStudent", err)
		return
	}
	student.ID = 0

	created, err := h.services.StudentService.CreateStudent(r.Context(), student)
	if err != nil {
		writeError(w, r, "*Handler.createStudent", err)
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())
	logger.FromRequest(r).Info().
		Str("func", "*Handler.createStudent").
		Int64("user_id", userID).
		Int64("student_id", created.ID).
		Msg("student created")

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) listStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.services.StudentService.ListStudents(r.Context(), r.URL.Query().Get("faculty"))
	if err != nil {
		writeError(w, r, "*Handler.listStudents", err)
		return
	}

	utils.WriteJSON(w, nonNil(students), http.StatusOK)
}

func (h *Handler) updateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := studentIDParam(r)
	if err != nil {
		writeError(w, r, "*Handler.updateStudent", err)
		return
	}

	var update models.StudentUpdate
	if err = decodeJSON(w, r, &update); err != nil {
		writeError(w, r, "*Handler.updateStudent", err)
		return
	}
	update.ID = id

	updated, err := h.services.StudentService.UpdateStudent(r.Context(), update)
	if err != nil {
		writeError(w, r, "*Handler.updateStudent", err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := studentIDParam(r)
	if err != nil {
		writeError(w, r, "*Handler.deleteStudent", err)
		return
	}

	if err = h.services.StudentService.DeleteStudent(r.Context(), id); err != nil {
		writeError(w, r, "*Handler.deleteStudent", err)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Status: "ok"}, http.StatusOK)
}

func (h *Handler) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.services.StudentService.ListCourses(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.listCourses", err)
		return
	}

	utils.WriteJSON(w, nonNil(courses), http.StatusOK)
}

func (h *Handler) facultyMean(w http.ResponseWriter, r *http.Request) {
	mean, err := h.services.StudentService.FacultyMean(r.Context(), chi.URLParam(r, "faculty"))
	if err != nil {
		writeError(w, r, "*Handler.facultyMean", err)
		return
	}

	utils.WriteJSON(w, mean, http.StatusOK)
}

func (h *Handler) lowResults(w http.ResponseWriter, r *http.Request) {
	below := defaultLowResultThreshold
	if raw := r.URL.Query().Get("below"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, "*Handler.lowResults", ErrInvalidThreshold)
			return
		}
		below = parsed
	}

	students, err := h.services.StudentService.LowResults(r.Context(), chi.URLParam(r, "course"), below)
	if err != nil {
		writeError(w, r, "*Handler.lowResults", err)
		return
	}

	utils.WriteJSON(w, nonNil(students), http.StatusOK)
}

func (h *Handler) importStudents(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxCSVBodyBytes)

	result, err := h.services.StudentService.ImportCSV(r.Context(), body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			err = ErrBodyTooLarge
		}
		writeError(w, r, "*Handler.importStudents", err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

// nonNil makes empty results encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
