package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/quizmith/quizmith/internal/auth"
	"github.com/quizmith/quizmith/internal/db"
)

func openTestDB(t *testing.T, name string) *auth.SQLStore {
	t.Helper()
	dbh, err := db.Open(context.Background(), db.DriverSQLite,
		"file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	return auth.NewSQLStore(dbh, "sqlite")
}

func TestSQLStoreInsertAndFind(t *testing.T) {
	store := openTestDB(t, "auth_insert_find")
	ctx := context.Background()

	u := auth.User{ID: "u-1", Username: "alice", PasswordHash: "hash"}
	if err := store.Insert(ctx, u); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	got, err := store.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if got.ID != "u-1" || got.PasswordHash != "hash" {
		t.Errorf("got %+v", got)
	}
	if got.CreatedAt == 0 {
		t.Error("created_at should be stamped on insert")
	}
}

func TestSQLStoreUniqueConstraint(t *testing.T) {
	store := openTestDB(t, "auth_unique")
	ctx := context.Background()

	if err := store.Insert(ctx, auth.User{ID: "u-1", Username: "alice", PasswordHash: "h1"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	err := store.Insert(ctx, auth.User{ID: "u-2", Username: "alice", PasswordHash: "h2"})
	if !errors.Is(err, auth.ErrUsernameTaken) {
		t.Fatalf("duplicate Insert = %v, want ErrUsernameTaken", err)
	}

	got, err := store.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if got.PasswordHash != "h1" {
		t.Error("losing insert must not overwrite the stored hash")
	}
}

func TestSQLStoreUnknownUser(t *testing.T) {
	store := openTestDB(t, "auth_unknown")
	_, err := store.FindByUsername(context.Background(), "nobody")
	if !errors.Is(err, auth.ErrUserNotFound) {
		t.Fatalf("FindByUsername = %v, want ErrUserNotFound", err)
	}
}
