// Package dbtest starts a throwaway PostgreSQL container with the schema
// applied, for repository integration tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/database"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Start returns a migrated database.Service backed by a fresh container.
// The test is skipped in -short mode or when Docker is unavailable.
func Start(t *testing.T) database.Service {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("inkwell"),
		postgres.WithUsername("inkwell"),
		postgres.WithPassword("inkwell"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("could not terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("could not get connection string: %v", err)
	}

	db, err := database.New(ctx, database.Config{URL: dsn})
	if err != nil {
		t.Fatalf("could not connect to postgres: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("could not migrate: %v", err)
	}
	return db
}

// CreateUser inserts a user row directly and returns its id.
func CreateUser(t *testing.T, db database.Service, email, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	var displayName *string
	if name != "" {
		displayName = &name
	}
	_, err := db.Exec(context.Background(),
		`INSERT INTO users (id, email, name, password) VALUES ($1, $2, $3, 'x')`,
		id, email, displayName)
	if err != nil {
		t.Fatalf("could not create user: %v", err)
	}
	return id
}

// CreatePost inserts a post row directly and returns its id.
func CreatePost(t *testing.T, db database.Service, authorID uuid.UUID, title string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO posts (id, title, content, author_id) VALUES ($1, $2, 'body', $3)`,
		id, title, authorID)
	if err != nil {
		t.Fatalf("could not create post: %v", err)
	}
	return id
}
