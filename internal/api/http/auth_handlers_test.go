package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	api "github.com/quizmith/quizmith/internal/api/http"
	"github.com/quizmith/quizmith/internal/auth"
	authmw "github.com/quizmith/quizmith/internal/auth/middleware"
	"github.com/quizmith/quizmith/internal/quiz"
)

/* ---------------- in-memory fakes backing the router under test ---------------- */

type memCreds struct {
	users map[string]auth.User
}

func newMemCreds() *memCreds { return &memCreds{users: map[string]auth.User{}} }

func (m *memCreds) Insert(ctx context.Context, u auth.User) error {
	if _, ok := m.users[u.Username]; ok {
		return auth.ErrUsernameTaken
	}
	m.users[u.Username] = u
	return nil
}

func (m *memCreds) FindByUsername(ctx context.Context, username string) (auth.User, error) {
	u, ok := m.users[username]
	if !ok {
		return auth.User{}, auth.ErrUserNotFound
	}
	return u, nil
}

type memQuestions struct {
	byID map[string]quiz.Question
	seq  int
}

func newMemQuestions() *memQuestions { return &memQuestions{byID: map[string]quiz.Question{}} }

func (m *memQuestions) Create(ctx context.Context, q quiz.Question) (quiz.Question, error) {
	m.seq++
	if q.ID == "" {
		q.ID = "q-" + string(rune('0'+m.seq))
	}
	m.byID[q.ID] = q
	return q, nil
}

func (m *memQuestions) Update(ctx context.Context, id string, q quiz.Question) (quiz.Question, error) {
	if _, ok := m.byID[id]; !ok {
		return quiz.Question{}, quiz.ErrQuestionNotFound
	}
	q.ID = id
	m.byID[id] = q
	return q, nil
}

func (m *memQuestions) Get(ctx context.Context, id string) (quiz.Question, error) {
	q, ok := m.byID[id]
	if !ok {
		return quiz.Question{}, quiz.ErrQuestionNotFound
	}
	return q, nil
}

func (m *memQuestions) List(ctx context.Context, opts quiz.ListOpts) ([]quiz.Question, error) {
	out := []quiz.Question{}
	for _, q := range m.byID {
		if opts.Author == "" || q.CreatedBy == opts.Author {
			out = append(out, q)
		}
	}
	return out, nil
}

type env struct {
	router    http.Handler
	tokens    *authmw.TokenService
	questions *memQuestions
}

func newEnv(t *testing.T) *env {
	t.Helper()
	tokens := authmw.NewTokenService("test-secret", time.Hour)
	svc := auth.NewService(newMemCreds(), tokens, 0, nil)
	questions := newMemQuestions()
	r := api.NewRouter(svc, tokens, questions, nil, []string{"http://localhost:3000"})
	return &env{router: r, tokens: tokens, questions: questions}
}

func (e *env) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

/* ---------------- auth surface ---------------- */

func TestRegisterLoginCheckFlow(t *testing.T) {
	e := newEnv(t)

	// register alice
	w := e.do(t, "POST", "/api/auth/register", `{"username":"alice","password":"pw1"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status = %d, want 201 (%s)", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["message"] != "Welcome" {
		t.Errorf("register body = %s", w.Body.String())
	}

	// duplicate username conflicts
	w = e.do(t, "POST", "/api/auth/register", `{"username":"alice","password":"pw2"}`, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register: status = %d, want 409", w.Code)
	}

	// login with the right password
	w = e.do(t, "POST", "/api/auth/login", `{"username":"alice","password":"pw1"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d, want 200 (%s)", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("login response missing token")
	}
	claims, err := e.tokens.Parse(token)
	if err != nil || claims.Sub != "alice" {
		t.Fatalf("token does not verify back to alice: %v", err)
	}

	// wrong password
	w = e.do(t, "POST", "/api/auth/login", `{"username":"alice","password":"wrong"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: status = %d, want 401", w.Code)
	}
	if _, hasToken := decodeBody(t, w)["token"]; hasToken {
		t.Error("failed login must not return a token")
	}

	// unknown user is indistinguishable from bad password
	w2 := e.do(t, "POST", "/api/auth/login", `{"username":"nobody","password":"pw1"}`, "")
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: status = %d, want 401", w2.Code)
	}
	if w.Body.String() != w2.Body.String() {
		t.Error("bad-password and unknown-user responses must match")
	}

	// check endpoint: guarded
	w = e.do(t, "GET", "/api/auth/check", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("check without token: status = %d, want 401", w.Code)
	}
	w = e.do(t, "GET", "/api/auth/check", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("check with token: status = %d, want 200", w.Code)
	}
	if decodeBody(t, w)["username"] != "alice" {
		t.Errorf("check body = %s", w.Body.String())
	}
}

func TestRegisterRejectsBadPayloads(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, "POST", "/api/auth/register", `not json`, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad json: status = %d, want 400", w.Code)
	}

	w = e.do(t, "POST", "/api/auth/register", `{"username":"","password":"pw"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty username: status = %d, want 400", w.Code)
	}

	w = e.do(t, "POST", "/api/auth/login", `{"username":"alice"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing password: status = %d, want 400", w.Code)
	}
}
