package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/cafeplan/pkg/errors"
)

// apiError is the JSON body of every error response.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// fail maps err to a status and writes it as JSON. Errors without a code
// are reported as internal and their text stays in the log.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	msg := message(err)
	if code == "" || code == errors.ErrCodeInternal {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		code = errors.ErrCodeInternal
		msg = "internal server error"
	}
	writeJSON(w, errors.HTTPStatus(code), apiError{Code: string(code), Message: msg})
}

// message renders the chain of coded errors below err without their codes,
// e.g. "room: malformed size \"abc\"".
func message(err error) string {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + message(e.Cause)
}
