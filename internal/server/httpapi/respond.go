package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/cocreate/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondOK writes a success envelope. payload keys sit next to success and
// message.
func respondOK(w http.ResponseWriter, message any, payload map[string]any) {
	body := map[string]any{"success": true, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
	}
	writeJSON(w, status, map[string]any{"success": false, "message": common.PublicMessage(err)})
}

func statusFor(err error) int {
	switch common.KindOf(err) {
	case common.KindValidation, common.KindConflict:
		return http.StatusBadRequest
	case common.KindAuth:
		return http.StatusUnauthorized
	case common.KindNotFound:
		return http.StatusNotFound
	case common.KindUpstream:
		return http.StatusBadGateway
	case common.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into dst. An empty body leaves dst untouched.
func decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return common.ErrBadRequest
	}
	return nil
}
