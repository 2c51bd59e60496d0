package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	authmw "github.com/quizmith/quizmith/internal/auth/middleware"
	"github.com/quizmith/quizmith/internal/eventlog"
	"github.com/quizmith/quizmith/internal/quiz"
)

// Payload field names and length limits mirror the authoring form.
type optionPayload struct {
	Key     string `json:"option_key"`
	Text    string `json:"option_text" validate:"required,max=400"`
	Remark  string `json:"remark" validate:"max=400"`
	Correct bool   `json:"is_correct"`
}

type questionPayload struct {
	Title   string          `json:"question_title" validate:"required,max=50"`
	Text    string          `json:"question_text" validate:"required,max=400"`
	Options []optionPayload `json:"options" validate:"min=2,max=10,dive"`
}

func (p questionPayload) question(id string) quiz.Question {
	q := quiz.Question{ID: id, Title: p.Title, Text: p.Text}
	for _, o := range p.Options {
		q.Options = append(q.Options, quiz.Option{
			Key:     o.Key,
			Text:    o.Text,
			Remark:  o.Remark,
			Correct: o.Correct,
		})
	}
	return q
}

// decodeQuestion rebuilds a server-side draft from the payload so the same
// structural invariants that gate the form gate persistence.
func decodeQuestion(w http.ResponseWriter, r *http.Request, id string) (*quiz.Draft, bool) {
	var p questionPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, messageBody{Message: "bad json"})
		return nil, false
	}
	if err := validate.Struct(p); err != nil {
		writeJSON(w, http.StatusBadRequest, messageBody{Message: "invalid question payload"})
		return nil, false
	}
	draft := quiz.NewDraftFromQuestion(p.question(id))
	if err := draft.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, messageBody{Message: err.Error()})
		return nil, false
	}
	return draft, true
}

// POST /api/questions
func CreateQuestionHandler(store quiz.Store, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := decodeQuestion(w, r, "")
		if !ok {
			return
		}
		author := authmw.SubjectFromContext(r.Context())
		q, err := quiz.NewEditor(draft, store).Submit(r.Context(), author)
		if err != nil {
			writeError(w, err)
			return
		}
		recordEvent(r, events, eventlog.TypeQuestionCreated, q.ID, author)
		writeJSON(w, http.StatusCreated, q)
	}
}

// PUT /api/questions/{questionID}
func UpdateQuestionHandler(store quiz.Store, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "questionID")
		draft, ok := decodeQuestion(w, r, id)
		if !ok {
			return
		}
		author := authmw.SubjectFromContext(r.Context())
		q, err := quiz.NewEditor(draft, store).Submit(r.Context(), author)
		if err != nil {
			writeError(w, err)
			return
		}
		recordEvent(r, events, eventlog.TypeQuestionUpdated, q.ID, author)
		writeJSON(w, http.StatusOK, q)
	}
}

// GET /api/questions/{questionID}
func GetQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.Get(r.Context(), chi.URLParam(r, "questionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// GET /api/questions — the caller's own questions.
func ListQuestionsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := quiz.ListOpts{Author: authmw.SubjectFromContext(r.Context())}
		if v := r.URL.Query().Get("limit"); v != "" {
			opts.Limit, _ = strconv.Atoi(v)
		}
		if v := r.URL.Query().Get("offset"); v != "" {
			opts.Offset, _ = strconv.Atoi(v)
		}
		qs, err := store.List(r.Context(), opts)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, qs)
	}
}

func recordEvent(r *http.Request, events *eventlog.Repo, typ, key, author string) {
	if events == nil {
		return
	}
	data, _ := json.Marshal(map[string]string{"author": author})
	err := events.Append(r.Context(), eventlog.Event{Type: typ, Key: key, DataJSON: string(data)})
	if err != nil {
		log.Warn().Err(err).Str("type", typ).Msg("event append failed")
	}
}
