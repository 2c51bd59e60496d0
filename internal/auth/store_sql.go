package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Insert(ctx context.Context, u User) error {
	created := u.CreatedAt
	if created == 0 {
		created = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES ($1,$2,$3,$4)`,
		u.ID, u.Username, u.PasswordHash, created)
	if isUniqueViolation(err) {
		return ErrUsernameTaken
	}
	return err
}

func (s *SQLStore) FindByUsername(ctx context.Context, username string) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username=$1`, username)
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

// Two simultaneous registrations of the same name race past the pre-check;
// the users.username UNIQUE constraint settles the loser here.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
