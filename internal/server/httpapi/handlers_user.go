package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/cocreate/internal/common"
	"github.com/dmitrijs2005/cocreate/internal/server/services"
)

type credentialsRequest struct {
	Username          string `json:"username"`
	Password          string `json:"password"`
	ContentType       string `json:"content_type"`
	TargetAudience    string `json:"target_audience"`
	AdditionalContext string `json:"additional_context"`
}

func sessionPayload(sess *services.Session) map[string]any {
	return map[string]any{"username": sess.User.UserName, "token": sess.Token}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	sess, err := s.users.Register(r.Context(), services.RegisterInput{
		Username:          req.Username,
		Password:          req.Password,
		ContentType:       req.ContentType,
		TargetAudience:    req.TargetAudience,
		AdditionalContext: req.AdditionalContext,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", sess.User.UserName)
	respondOK(w, "user registered", sessionPayload(sess))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	sess, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondOK(w, "logged in", sessionPayload(sess))
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	respondOK(w, "", map[string]any{"user": user})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Current string `json:"current_password"`
		New     string `json:"new_password"`
	}
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	user, _ := UserFromContext(r.Context())
	if err := s.users.ChangePassword(r.Context(), user.ID, req.Current, req.New); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondOK(w, "password changed", nil)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	user, _ := UserFromContext(r.Context())
	if err := s.users.DeleteAccount(r.Context(), user.ID, req.Password); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Account deleted", "username", user.UserName)
	respondOK(w, "account deleted", nil)
}

// settingHandler decodes a single string field and applies it with update.
func (s *Server) settingHandler(field, message string, update func(r *http.Request, userID int64, value string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req map[string]*string
		if err := decode(r, &req); err != nil {
			s.respondError(w, r, err)
			return
		}
		value, ok := req[field]
		if !ok || value == nil {
			s.respondError(w, r, common.ErrBadRequest)
			return
		}

		user, _ := UserFromContext(r.Context())
		if err := update(r, user.ID, *value); err != nil {
			s.respondError(w, r, err)
			return
		}
		respondOK(w, message, nil)
	}
}

func (s *Server) handleContentType(w http.ResponseWriter, r *http.Request) {
	s.settingHandler("content_type", "content type updated", func(r *http.Request, id int64, v string) error {
		return s.users.UpdateContentType(r.Context(), id, v)
	})(w, r)
}

func (s *Server) handleTargetAudience(w http.ResponseWriter, r *http.Request) {
	s.settingHandler("target_audience", "target audience updated", func(r *http.Request, id int64, v string) error {
		return s.users.UpdateTargetAudience(r.Context(), id, v)
	})(w, r)
}

func (s *Server) handleAdditionalContext(w http.ResponseWriter, r *http.Request) {
	s.settingHandler("additional_context", "additional context updated", func(r *http.Request, id int64, v string) error {
		return s.users.UpdateAdditionalContext(r.Context(), id, v)
	})(w, r)
}
