package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/quizmith/quizmith/internal/auth"
	authmw "github.com/quizmith/quizmith/internal/auth/middleware"
)

var validate = validator.New()

type credentialsReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/register  {"username": "...", "password": "..."}
func RegisterHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, messageBody{Message: "bad json"})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, messageBody{Message: "username and password required"})
			return
		}
		if err := svc.Register(r.Context(), req.Username, req.Password); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, messageBody{Message: "Welcome"})
	}
}

// POST /api/auth/login  {"username": "...", "password": "..."}
func LoginHandler(svc *auth.Service) http.HandlerFunc {
	type loginResp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, messageBody{Message: "bad json"})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, messageBody{Message: "username and password required"})
			return
		}
		tok, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, loginResp{Message: "Welcome", Token: tok})
	}
}

// GET /api/auth/check — the guard has already verified the token by the
// time this runs; it just reports the subject back.
func CheckHandler() http.HandlerFunc {
	type checkResp struct {
		Message  string `json:"message"`
		Username string `json:"username"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, checkResp{
			Message:  "ok",
			Username: authmw.SubjectFromContext(r.Context()),
		})
	}
}
