package repo

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/rogerio-castellano/product-api/internal/config"
	"github.com/rogerio-castellano/product-api/internal/db"
	"github.com/rogerio-castellano/product-api/internal/models"
)

// Runs against a real database when TEST_DATABASE_URL is set.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, config.DatabaseConfig{URL: url, MaxOpenConns: 2})
	if err != nil {
		t.Fatalf("could not connect: %v", err)
	}
	if err := db.Migrate(ctx, database); err != nil {
		t.Fatalf("could not migrate: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestPostgresProductRepository(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	r := NewPostgresProductRepository(database, time.Second)

	brand := "Acme"
	now := time.Now().UTC().Truncate(time.Microsecond)
	created, err := r.Create(ctx, models.Product{ProductID: 1235673, Name: "O rally", Price: 1212, Brand: &brand, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = r.Delete(ctx, created.ID) })

	got, err := r.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "O rally" || got.Brand == nil || *got.Brand != "Acme" || got.Description != nil {
		t.Errorf("unexpected product %+v", got)
	}

	got.Price = 10
	got.UpdatedAt = now.Add(time.Hour)
	updated, err := r.Update(ctx, got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Price != 10 || !updated.CreatedAt.Equal(now) {
		t.Errorf("unexpected update result %+v", updated)
	}

	if err := r.Delete(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.GetByID(ctx, created.ID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
	if err := r.Delete(ctx, created.ID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestPostgresUserRepositoryDuplicate(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	r := NewPostgresUserRepository(database, time.Second)

	username := "user-" + time.Now().Format("150405.000000")
	t.Cleanup(func() { database.Exec("DELETE FROM users WHERE username = $1", username) })

	if _, err := r.CreateUser(ctx, models.User{Username: username, PasswordHash: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.CreateUser(ctx, models.User{Username: username, PasswordHash: "y"}); !errors.Is(err, ErrDuplicatedValueUnique) {
		t.Errorf("expected ErrDuplicatedValueUnique, got %v", err)
	}
}
