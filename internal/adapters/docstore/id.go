package docstore

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Same alphabet and length as the ids handed out by hosted document stores,
// so ids stay URL-safe and path-safe.
const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 20
)

// NewDocumentID returns a random server-side document id.
func NewDocumentID() (string, error) {
	id, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return "", fmt.Errorf("generate document id: %w", err)
	}
	return id, nil
}
