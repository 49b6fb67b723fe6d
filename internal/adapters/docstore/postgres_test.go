package docstore

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupTestDB(t *testing.T) *sqlx.DB {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "dailypulse"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "dailypulse_db"),
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}
	return db
}

func TestPostgresStore_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	store := NewPostgresStore(db)
	ctx := context.Background()
	require.NoError(t, store.EnsureSchema(ctx))

	prefix := "test-" + uuid.NewString()
	defer func() {
		_, err := db.Exec(`DELETE FROM documents WHERE collection LIKE $1`, prefix+"%")
		require.NoError(t, err, "Failed to clean up documents")
	}()

	runStoreContract(t, store, prefix)
}
