package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/cocreate/internal/common"
	"github.com/dmitrijs2005/cocreate/internal/server/auth"
	"github.com/dmitrijs2005/cocreate/internal/server/models"
	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const userKey ctxKey = "user"

// UserFromContext returns the user placed in ctx by the auth middleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok && u != nil
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, err := auth.ExtractBearer(r.Header.Get(common.AuthorizationHeaderName))
		if err == nil {
			var u *models.User
			u, err = s.auth.Validate(ctx, token)
			if err == nil {
				next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, userKey, u)))
				return
			}
		}

		s.logger.Warn(ctx, "authentication failed", "path", r.URL.Path, "error", err.Error())
		s.respondError(w, r, err)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			s.logger.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
