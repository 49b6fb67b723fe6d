package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ domain.DocumentStore = (*PostgresStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    collection TEXT        NOT NULL,
    id         TEXT        NOT NULL,
    version    BIGINT      NOT NULL DEFAULT 1,
    data       JSONB       NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (collection, id)
)`

const uniqueViolation = "23505"

// addAttempts bounds retries when a generated id collides.
const addAttempts = 3

// PostgresStore keeps every collection in a single jsonb table keyed by
// (collection, id).
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the documents table if it is missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

type documentRow struct {
	ID        string    `db:"id"`
	Version   int64     `db:"version"`
	Data      []byte    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r documentRow) toDocument() *domain.Document {
	return &domain.Document{
		ID:        r.ID,
		Version:   r.Version,
		Data:      json.RawMessage(r.Data),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (*domain.Document, error) {
	query := `
        SELECT id, version, data::text AS data, updated_at
        FROM documents
        WHERE collection = $1 AND id = $2`

	var row documentRow
	if err := s.db.GetContext(ctx, &row, query, collection, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get document %s/%s: %w", collection, id, err)
	}

	return row.toDocument(), nil
}

func (s *PostgresStore) List(ctx context.Context, collection string) ([]*domain.Document, error) {
	query := `
        SELECT id, version, data::text AS data, updated_at
        FROM documents
        WHERE collection = $1
        ORDER BY created_at ASC, id ASC`

	var rows []documentRow
	if err := s.db.SelectContext(ctx, &rows, query, collection); err != nil {
		return nil, fmt.Errorf("list documents %s: %w", collection, err)
	}

	docs := make([]*domain.Document, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, r.toDocument())
	}
	return docs, nil
}

func (s *PostgresStore) Add(ctx context.Context, collection string, data json.RawMessage) (string, error) {
	query := `
        INSERT INTO documents (collection, id, version, data, created_at, updated_at)
        VALUES ($1, $2, 1, $3::jsonb, NOW(), NOW())`

	for attempt := 0; attempt < addAttempts; attempt++ {
		id, err := NewDocumentID()
		if err != nil {
			return "", err
		}

		_, err = s.db.ExecContext(ctx, query, collection, id, string(data))
		if err == nil {
			return id, nil
		}
		if !isUniqueViolation(err) {
			return "", fmt.Errorf("insert document into %s: %w", collection, err)
		}
	}

	return "", fmt.Errorf("insert document into %s: id collisions exhausted", collection)
}

func (s *PostgresStore) Set(ctx context.Context, collection, id string, data json.RawMessage) error {
	query := `
        INSERT INTO documents (collection, id, version, data, created_at, updated_at)
        VALUES ($1, $2, 1, $3::jsonb, NOW(), NOW())
        ON CONFLICT (collection, id) DO UPDATE SET
            data = EXCLUDED.data,
            version = documents.version + 1,
            updated_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query, collection, id, string(data)); err != nil {
		return fmt.Errorf("set document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *PostgresStore) SetIfVersion(ctx context.Context, collection, id string, version int64, data json.RawMessage) error {
	query := `
        UPDATE documents SET
            data = $4::jsonb,
            version = version + 1,
            updated_at = NOW()
        WHERE collection = $1 AND id = $2 AND version = $3
        RETURNING version`

	var newVersion int64
	err := s.db.QueryRowContext(ctx, query, collection, id, version, string(data)).Scan(&newVersion)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("conditional update %s/%s: %w", collection, id, err)
	}

	existsQuery := `SELECT count(*) FROM documents WHERE collection = $1 AND id = $2`
	var count int
	if checkErr := s.db.QueryRowContext(ctx, existsQuery, collection, id).Scan(&count); checkErr != nil {
		return fmt.Errorf("existence check failed: %w", checkErr)
	}
	if count == 0 {
		return domain.ErrDocumentNotFound
	}
	return domain.ErrDocumentConflict
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return fmt.Errorf("delete document %s/%s: %w", collection, id, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
