package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json", "text/csv"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/api/version", h.getServerVersion)

	// operator routes
	router.Route("/api/forms", func(r chi.Router) {
		r.Post("/", h.createForm)
		r.Get("/", h.listForms)

		r.Route("/{formID}", func(r chi.Router) {
			r.Get("/", h.getForm)
			r.Put("/", h.updateForm)
			r.Patch("/reorder", h.reorderForm)
			r.Delete("/", h.deleteForm)

			r.Route("/submissions", func(r chi.Router) {
				r.Get("/", h.listSubmissions)
				r.Get("/stats", h.submissionStats)
				r.Get("/export", h.exportSubmissions)
				r.Get("/{submissionID}", h.getSubmission)
				r.Patch("/{submissionID}", h.updateSubmission)
				r.Delete("/{submissionID}", h.deleteSubmission)
			})
		})
	})

	// public routes
	router.Route("/api/public/forms/{formID}", func(r chi.Router) {
		r.Get("/", h.getPublicForm)
		r.Post("/submissions", h.submit)
	})

	if h.uploadsDir != "" && h.uploadsURL != "" {
		prefix := "/" + strings.Trim(h.uploadsURL, "/")
		files := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(h.uploadsDir)))
		router.Get(prefix+"/*", files.ServeHTTP)
	}

	return router
}
