package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentConflict = errors.New("document version conflict")
)

const (
	UsersCollection       = "users"
	PostsCollection       = "posts"
	CredentialsCollection = "credentials"
)

// HabitsCollection is the per-user private sub-collection of habits.
func HabitsCollection(userID string) string {
	return fmt.Sprintf("%s/%s/habits", UsersCollection, userID)
}

// ValidCollection rejects empty segments so paths cannot alias each other.
func ValidCollection(path string) bool {
	if path == "" {
		return false
	}
	for _, seg := range strings.Split(path, "/") {
		if strings.TrimSpace(seg) == "" {
			return false
		}
	}
	return true
}

// Document is one stored record. Version starts at 1 and grows on every write.
type Document struct {
	ID        string          `json:"id" db:"id"`
	Version   int64           `json:"version" db:"version"`
	Data      json.RawMessage `json:"data" db:"data"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// DocumentStore is the remote document service. Each method is an
// independent round trip; there are no batches or transactions.
type DocumentStore interface {
	// Get reads one document or returns ErrDocumentNotFound.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// List returns every document of a collection (not of its sub-collections).
	List(ctx context.Context, collection string) ([]*Document, error)

	// Add stores data under a server-generated id and returns it.
	Add(ctx context.Context, collection string, data json.RawMessage) (string, error)

	// Set creates or overwrites a document.
	Set(ctx context.Context, collection, id string, data json.RawMessage) error

	// SetIfVersion overwrites a document only if its stored version still
	// equals version; otherwise it returns ErrDocumentConflict.
	SetIfVersion(ctx context.Context, collection, id string, version int64, data json.RawMessage) error

	// Delete removes a document or returns ErrDocumentNotFound.
	Delete(ctx context.Context, collection, id string) error
}

// Authenticator is the auth subsystem: credential registration, sign-in and
// the identity of the caller.
type Authenticator interface {
	Register(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (userID string, token string, err error)
	SignOut(ctx context.Context) error
	CurrentUserID(ctx context.Context) (string, bool)
}

type userIDKey struct{}

// WithUserID binds a caller identity to ctx. It takes precedence over any
// signed-in session held by the authenticator.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}
