package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quizmith/quizmith/internal/auth"
	"github.com/quizmith/quizmith/internal/quiz"
)

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the failure taxonomy onto status codes: duplicate
// username → 409, credential failures → 401 (one user-visible class, no
// enumeration), missing question → 404, everything else → 500 with the
// underlying message passed through.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrUsernameTaken):
		writeJSON(w, http.StatusConflict, messageBody{Message: auth.ErrUsernameTaken.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, messageBody{Message: auth.ErrInvalidCredentials.Error()})
	case errors.Is(err, quiz.ErrQuestionNotFound):
		writeJSON(w, http.StatusNotFound, messageBody{Message: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, messageBody{Message: err.Error()})
	}
}
