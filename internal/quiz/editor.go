package quiz

import "context"

// Editor translates form events 1:1 into draft mutations. Expansion state
// is presentation-only: it never touches the draft and carries no
// invariant of its own (any number of panels may be open at once).
type Editor struct {
	draft    *Draft
	expanded map[string]bool
	store    Store
}

func NewEditor(draft *Draft, store Store) *Editor {
	e := &Editor{draft: draft, expanded: map[string]bool{}, store: store}
	for _, k := range draft.Keys() {
		e.expanded[k] = false
	}
	return e
}

func (e *Editor) Draft() *Draft { return e.draft }

func (e *Editor) ToggleExpand(key string) {
	e.expanded[key] = !e.expanded[key]
}

func (e *Editor) Expanded(key string) bool { return e.expanded[key] }

func (e *Editor) AddOption() (string, bool) {
	key, ok := e.draft.AddOption()
	if ok {
		e.expanded[key] = false
	}
	return key, ok
}

func (e *Editor) RemoveOption(key string) bool {
	if !e.draft.RemoveOption(key) {
		return false
	}
	delete(e.expanded, key)
	return true
}

func (e *Editor) EditTitle(v string) { e.draft.SetTitle(v) }
func (e *Editor) EditText(v string)  { e.draft.SetText(v) }

func (e *Editor) EditOptionText(key, v string) bool   { return e.draft.SetOptionText(key, v) }
func (e *Editor) EditOptionRemark(key, v string) bool { return e.draft.SetOptionRemark(key, v) }
func (e *Editor) MarkCorrect(key string) bool         { return e.draft.SetCorrect(key) }

// Submit validates and persists the draft: create when it has no question
// id yet, update otherwise. On success control leaves the edit session.
func (e *Editor) Submit(ctx context.Context, author string) (Question, error) {
	q, err := e.draft.Build()
	if err != nil {
		return Question{}, err
	}
	q.CreatedBy = author
	if q.ID == "" {
		return e.store.Create(ctx, q)
	}
	return e.store.Update(ctx, q.ID, q)
}
