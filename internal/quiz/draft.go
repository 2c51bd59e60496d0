package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// Removal is refused once it would leave fewer than MinOptions.
	MinOptions = 2
	MaxOptions = 10

	MaxTitleLen  = 50
	MaxTextLen   = 400
	MaxOptionLen = 400
)

// ErrNoCorrectOption marks a draft whose correct option was removed and
// never re-picked. Submit refuses such drafts; nothing auto-promotes a
// replacement.
var ErrNoCorrectOption = errors.New("no option marked correct")

// Draft is the in-progress, not-yet-persisted form of a question. One
// edit session owns it exclusively; mutations are synchronous and every
// mutation keeps the structural invariants intact.
type Draft struct {
	QuestionID string // present only when editing an existing question
	Title      string
	Text       string

	order   []string
	options map[string]*Option
}

// NewDraft seeds a fresh form with three empty options, so the remove
// affordance starts out live and dropping to the floor of two is allowed.
func NewDraft() *Draft {
	d := &Draft{options: map[string]*Option{}}
	for i := 0; i < MinOptions+1; i++ {
		d.AddOption()
	}
	return d
}

// NewDraftFromQuestion seeds the form from an existing question for
// editing. Options without keys get fresh ones.
func NewDraftFromQuestion(q Question) *Draft {
	d := &Draft{
		QuestionID: q.ID,
		Title:      q.Title,
		Text:       q.Text,
		options:    map[string]*Option{},
	}
	for _, o := range q.Options {
		opt := o
		if opt.Key == "" {
			opt.Key = uuid.NewString()
		}
		d.order = append(d.order, opt.Key)
		d.options[opt.Key] = &opt
	}
	return d
}

func (d *Draft) Len() int { return len(d.order) }

// Keys returns option keys in insertion order.
func (d *Draft) Keys() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

func (d *Draft) Option(key string) (Option, bool) {
	o, ok := d.options[key]
	if !ok {
		return Option{}, false
	}
	return *o, true
}

// AddOption appends a fresh empty option and returns its key. Refused
// above MaxOptions.
func (d *Draft) AddOption() (string, bool) {
	if len(d.order) >= MaxOptions {
		return "", false
	}
	key := uuid.NewString()
	d.order = append(d.order, key)
	d.options[key] = &Option{Key: key}
	return key, true
}

// CanRemoveOption mirrors the form's disabled remove button: false once
// the count has reached three, so at least two options always remain.
func (d *Draft) CanRemoveOption() bool {
	return len(d.order) >= MinOptions+1
}

// RemoveOption is inert at the floor or for unknown keys. Removing the
// correct option leaves the draft with none marked correct; Validate
// reports that state.
func (d *Draft) RemoveOption(key string) bool {
	if !d.CanRemoveOption() {
		return false
	}
	if _, ok := d.options[key]; !ok {
		return false
	}
	delete(d.options, key)
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return true
}

// SetCorrect marks one option correct and clears all others in the same
// step; no state with two correct options is ever observable.
func (d *Draft) SetCorrect(key string) bool {
	if _, ok := d.options[key]; !ok {
		return false
	}
	for k, o := range d.options {
		o.Correct = k == key
	}
	return true
}

func (d *Draft) CorrectKey() (string, bool) {
	for _, k := range d.order {
		if d.options[k].Correct {
			return k, true
		}
	}
	return "", false
}

// Setters clamp to the form's length limits, like maxLength on the inputs.

func (d *Draft) SetTitle(v string) { d.Title = clamp(v, MaxTitleLen) }
func (d *Draft) SetText(v string)  { d.Text = clamp(v, MaxTextLen) }

func (d *Draft) SetOptionText(key, v string) bool {
	o, ok := d.options[key]
	if !ok {
		return false
	}
	o.Text = clamp(v, MaxOptionLen)
	return true
}

func (d *Draft) SetOptionRemark(key, v string) bool {
	o, ok := d.options[key]
	if !ok {
		return false
	}
	o.Remark = clamp(v, MaxOptionLen)
	return true
}

// Validate reports whether the draft is structurally complete enough to
// submit.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("question title required")
	}
	if strings.TrimSpace(d.Text) == "" {
		return errors.New("question text required")
	}
	if n := len(d.order); n < MinOptions || n > MaxOptions {
		return fmt.Errorf("question needs between %d and %d options, has %d", MinOptions, MaxOptions, n)
	}
	correct := 0
	for _, k := range d.order {
		o := d.options[k]
		if strings.TrimSpace(o.Text) == "" {
			return errors.New("every option needs text")
		}
		if o.Correct {
			correct++
		}
	}
	switch {
	case correct == 0:
		return ErrNoCorrectOption
	case correct > 1:
		return errors.New("more than one option marked correct")
	}
	return nil
}

// Build validates and emits the question with options as an ordered
// sequence, keeping the question id when editing.
func (d *Draft) Build() (Question, error) {
	if err := d.Validate(); err != nil {
		return Question{}, err
	}
	q := Question{ID: d.QuestionID, Title: d.Title, Text: d.Text}
	for _, k := range d.order {
		q.Options = append(q.Options, *d.options[k])
	}
	return q, nil
}

func clamp(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
