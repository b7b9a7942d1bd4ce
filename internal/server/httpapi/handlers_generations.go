package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/cocreate/internal/common"
	"github.com/dmitrijs2005/cocreate/internal/server/exports"
	"github.com/dmitrijs2005/cocreate/internal/server/models"
	"github.com/dmitrijs2005/cocreate/internal/server/textgen"
	"github.com/go-chi/chi/v5"
)

type generateKind struct {
	kind    models.GenerationType
	present func(content string) (any, error)
}

func plainText(content string) (any, error) { return content, nil }

var (
	generateVideoScript = generateKind{kind: models.GenerationVideoScript, present: plainText}
	generateContentIdea = generateKind{kind: models.GenerationContentIdea, present: plainText}
	generateNewsletter  = generateKind{kind: models.GenerationNewsletter, present: func(c string) (any, error) {
		return textgen.ParseNewsletter(c)
	}}
	generateThread = generateKind{kind: models.GenerationThread, present: func(c string) (any, error) {
		return textgen.ParseThread(c)
	}}
)

func (s *Server) handleGenerate(g generateKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		if err := decode(r, &req); err != nil {
			s.respondError(w, r, err)
			return
		}

		user, _ := UserFromContext(r.Context())
		gen, err := s.generations.Generate(r.Context(), user, g.kind, req.Prompt)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		message, err := g.present(gen.Content)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		s.logger.Info(r.Context(), "Generated", "type", string(g.kind), "generation_id", gen.ID)
		respondOK(w, message, map[string]any{"generation_id": gen.ID})
	}
}

func (s *Server) handleChangeTone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		Tone string `json:"tone"`
	}
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	out, err := s.generations.ChangeTone(r.Context(), req.Text, req.Tone)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondOK(w, out, nil)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	gens, err := s.generations.History(r.Context(), user)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondOK(w, "", map[string]any{"generations": gens})
}

func (s *Server) handleSaved(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	gens, err := s.generations.Saved(r.Context(), user)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondOK(w, "", map[string]any{"saved_generations": gens})
}

func (s *Server) handleGetGeneration(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.respondError(w, r, common.ErrInvalidGenerationID)
		return
	}

	user, _ := UserFromContext(r.Context())
	gen, err := s.generations.Get(r.Context(), user, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondOK(w, "", map[string]any{"generation": gen})
}

type favoriteRequest struct {
	GenID int64 `json:"gen_id"`
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	user, _ := UserFromContext(r.Context())
	if err := s.generations.Save(r.Context(), user, req.GenID); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondOK(w, "generation saved", nil)
}

func (s *Server) handleUnsave(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	user, _ := UserFromContext(r.Context())
	if err := s.generations.Unsave(r.Context(), user, req.GenID); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondOK(w, "generation removed from saved", nil)
}

func parseSaved(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, common.ErrBadRequest
	}
	return v, nil
}

func (s *Server) handleExportDownload(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := exports.ParseFormat(q.Get("format"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	saved, err := parseSaved(q.Get("saved"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	user, _ := UserFromContext(r.Context())
	file, err := s.generations.Export(r.Context(), user, format, saved)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Body)
}

func (s *Server) handleExportUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Format string `json:"format"`
		Saved  bool   `json:"saved"`
	}
	if err := decode(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	format, err := exports.ParseFormat(req.Format)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	user, _ := UserFromContext(r.Context())
	up, err := s.generations.ExportToStorage(r.Context(), user, format, req.Saved)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Export uploaded", "key", up.Key)
	respondOK(w, "export uploaded", map[string]any{
		"url":        up.URL,
		"key":        up.Key,
		"expires_at": up.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
