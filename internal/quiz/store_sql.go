package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Create(ctx context.Context, q Question) (Question, error) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.CreatedAt = time.Now().Unix()
	oj, err := json.Marshal(q.Options)
	if err != nil {
		return Question{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO questions (id, title, question_text, options_json, created_by, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		q.ID, q.Title, q.Text, string(oj), q.CreatedBy, q.CreatedAt)
	if err != nil {
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) Update(ctx context.Context, id string, q Question) (Question, error) {
	oj, err := json.Marshal(q.Options)
	if err != nil {
		return Question{}, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE questions SET title=$1, question_text=$2, options_json=$3, updated_at=$4 WHERE id=$5`,
		q.Title, q.Text, string(oj), time.Now().Unix(), id)
	if err != nil {
		return Question{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Question{}, ErrQuestionNotFound
	}
	return s.Get(ctx, id)
}

func (s *SQLStore) Get(ctx context.Context, id string) (Question, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, question_text, options_json, created_by, created_at, updated_at
		 FROM questions WHERE id=$1`, id)
	return scanQuestion(row)
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Question, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	var rows *sql.Rows
	var err error
	if opts.Author == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, title, question_text, options_json, created_by, created_at, updated_at
			 FROM questions ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, opts.Offset)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, title, question_text, options_json, created_by, created_at, updated_at
			 FROM questions WHERE created_by=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			opts.Author, limit, opts.Offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (Question, error) {
	var q Question
	var ojson string
	var updated sql.NullInt64
	if err := row.Scan(&q.ID, &q.Title, &q.Text, &ojson, &q.CreatedBy, &q.CreatedAt, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, ErrQuestionNotFound
		}
		return Question{}, err
	}
	if updated.Valid {
		q.UpdatedAt = updated.Int64
	}
	if err := json.Unmarshal([]byte(ojson), &q.Options); err != nil {
		return Question{}, err
	}
	return q, nil
}
