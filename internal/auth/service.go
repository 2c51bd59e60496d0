package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	authmw "github.com/quizmith/quizmith/internal/auth/middleware"
	"github.com/quizmith/quizmith/internal/eventlog"
)

// Service orchestrates registration and login. The response delay is a
// throttle against brute-force probing; it is injected at construction
// (zero under the testing config) instead of read from process globals.
type Service struct {
	store  CredentialStore
	tokens *authmw.TokenService
	delay  time.Duration
	events *eventlog.Repo
}

func NewService(store CredentialStore, tokens *authmw.TokenService, delay time.Duration, events *eventlog.Repo) *Service {
	return &Service{store: store, tokens: tokens, delay: delay, events: events}
}

// Register checks uniqueness before any bcrypt work, hashes, and persists.
// The pre-check only buys the cheap conflict path; the store's unique
// constraint remains authoritative under races.
func (s *Service) Register(ctx context.Context, username, password string) error {
	if _, err := s.store.FindByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().Unix(),
	}
	if err := s.store.Insert(ctx, u); err != nil {
		return err
	}
	s.record(ctx, eventlog.TypeUserRegistered, u.ID, map[string]string{"username": username})
	log.Info().Str("username", username).Msg("user registered")

	s.pause(ctx)
	return nil
}

// Login verifies the password and issues a bearer token. The delay is
// applied uniformly to every outcome so response timing does not reveal
// whether the username or the password was wrong.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	defer s.pause(ctx)

	u, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !VerifyPassword(u.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	tok, err := s.tokens.Issue(u.Username)
	if err != nil {
		return "", err
	}
	log.Info().Str("username", username).Msg("login")
	return tok, nil
}

func (s *Service) record(ctx context.Context, typ, key string, data any) {
	if s.events == nil {
		return
	}
	buf, _ := json.Marshal(data)
	if err := s.events.Append(ctx, eventlog.Event{Type: typ, Key: key, DataJSON: string(buf)}); err != nil {
		log.Warn().Err(err).Str("type", typ).Msg("event append failed")
	}
}

// pause defers the response on a timer without holding any resource, and
// gives up early if the request is gone.
func (s *Service) pause(ctx context.Context) {
	if s.delay <= 0 {
		return
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
