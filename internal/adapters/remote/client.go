package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

// Client maps entities to documents in the remote store. Each method is a
// short sequence of independent store calls; partial failures are reported,
// never rolled back.
type Client struct {
	store  domain.DocumentStore
	auth   domain.Authenticator
	now    func() time.Time
	logger *log.Logger
}

type Option func(*Client)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger.WithPrefix("remote") }
}

func NewClient(store domain.DocumentStore, auth domain.Authenticator, opts ...Option) *Client {
	c := &Client{
		store:  store,
		auth:   auth,
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) currentUser(ctx context.Context) (string, error) {
	id, ok := c.auth.CurrentUserID(ctx)
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return id, nil
}

// storeError turns a store failure into a domain error. subject names the
// entity in not-found messages.
func storeError(err error, subject string) error {
	var derr *domain.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &derr):
		return err
	case errors.Is(err, domain.ErrDocumentNotFound):
		return domain.Errorf(domain.KindNotFound, "%s not found", subject)
	case errors.Is(err, domain.ErrDocumentConflict):
		return domain.WrapError(domain.KindConflict, fmt.Errorf("%s was modified concurrently, please retry", subject))
	default:
		return domain.WrapError(domain.KindRemote, err)
	}
}

func encode(v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, fmt.Errorf("encode document: %w", err))
	}
	return data, nil
}

func decode(doc *domain.Document, v any) error {
	if err := json.Unmarshal(doc.Data, v); err != nil {
		return domain.WrapError(domain.KindInternal, fmt.Errorf("decode document %s: %w", doc.ID, err))
	}
	return nil
}
