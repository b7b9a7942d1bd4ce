package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router builds the chi routing tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondOK(w, "ok", nil)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/user", s.handleProfile)
		r.Delete("/user", s.handleDeleteAccount)
		r.Post("/user/password", s.handleChangePassword)

		r.Route("/settings", func(r chi.Router) {
			r.Post("/content-type", s.handleContentType)
			r.Post("/target", s.handleTargetAudience)
			r.Post("/additional-context", s.handleAdditionalContext)
		})

		r.Route("/generate", func(r chi.Router) {
			r.Post("/video-script", s.handleGenerate(generateVideoScript))
			r.Post("/content-idea", s.handleGenerate(generateContentIdea))
			r.Post("/newsletter", s.handleGenerate(generateNewsletter))
			r.Post("/thread", s.handleGenerate(generateThread))
			r.Post("/change-tone", s.handleChangeTone)
		})

		r.Route("/generations", func(r chi.Router) {
			r.Get("/", s.handleHistory)
			r.Get("/saved", s.handleSaved)
			r.Post("/save", s.handleSave)
			r.Post("/unsave", s.handleUnsave)
			r.Get("/export", s.handleExportDownload)
			r.Post("/export", s.handleExportUpload)
			r.Get("/{id}", s.handleGetGeneration)
		})
	})

	return r
}
