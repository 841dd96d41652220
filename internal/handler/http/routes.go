package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Post("/api/user/logout", h.logout)
		r.Get("/api/version/", h.getServerVersion)
		if h.metricsHandler != nil {
			r.Method("GET", "/metrics", h.metricsHandler)
		}
	})

	// routes with authorization
	router.Route("/api/students", func(r chi.Router) {
		r.Use(h.auth)
		r.Use(withGZip)

		r.Post("/", h.createStudent)
		r.Get("/", h.listStudents)
		r.Post("/import", h.importStudents)
		r.Get("/courses", h.listCourses)
		r.Get("/courses/{course}/low", h.lowResults)
		r.Get("/faculties/{faculty}/mean", h.facultyMean)
		r.Patch("/{id}", h.updateStudent)
		r.Delete("/{id}", h.deleteStudent)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
