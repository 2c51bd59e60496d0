package quiz

// Option is one selectable answer choice. Exactly one option of a valid
// question carries Correct=true.
type Option struct {
	Key     string `json:"option_key"`
	Text    string `json:"option_text"`
	Remark  string `json:"remark,omitempty"`
	Correct bool   `json:"is_correct"`
}

type Question struct {
	ID        string   `json:"question_id"`
	Title     string   `json:"question_title"`
	Text      string   `json:"question_text"`
	Options   []Option `json:"options"`
	CreatedBy string   `json:"created_by,omitempty"`
	CreatedAt int64    `json:"created_at,omitempty"`
	UpdatedAt int64    `json:"updated_at,omitempty"`
}
