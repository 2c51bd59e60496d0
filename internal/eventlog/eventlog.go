// Package eventlog keeps an append-only audit trail of authoring activity.
package eventlog

import (
	"context"
	"database/sql"
	"time"
)

const (
	TypeUserRegistered  = "user.registered"
	TypeQuestionCreated = "question.created"
	TypeQuestionUpdated = "question.updated"
)

type Event struct {
	Seq       int64
	Type      string
	Key       string // natural key: user ID or question ID
	DataJSON  string
	CreatedAt int64
}

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, e Event) error {
	data := e.DataJSON
	if data == "" {
		data = "{}"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at) VALUES ($1,$2,$3,$4)`,
		e.Type, e.Key, data, time.Now().Unix())
	return err
}

// Recent returns the latest events, newest first.
func (r *Repo) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT seq, typ, key, data, created_at FROM event_log ORDER BY seq DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Seq, &e.Type, &e.Key, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
