package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var _ domain.Authenticator = (*Provider)(nil)

var errInvalidCredentials = domain.NewError(domain.KindUnauthenticated, "invalid email or password")

type credential struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// Provider keeps credentials in the credentials/{email} collection and holds
// the single signed-in session of a client process. A request-scoped Provider
// holds no session and only resolves identities bound to the context.
type Provider struct {
	store         domain.DocumentStore
	tokens        *TokenService
	cost          int
	requestScoped bool

	mu      sync.RWMutex
	session string
}

func NewProvider(store domain.DocumentStore, tokens *TokenService) *Provider {
	return &Provider{
		store:  store,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
	}
}

// NewRequestScopedProvider builds a Provider for servers, where each request
// carries its own identity and sign-ins must not leak across callers.
func NewRequestScopedProvider(store domain.DocumentStore, tokens *TokenService) *Provider {
	p := NewProvider(store, tokens)
	p.requestScoped = true
	return p
}

// Register creates credentials for a new account and returns its user id.
func (p *Provider) Register(ctx context.Context, email, password string) (string, error) {
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return "", err
	}
	if err := domain.CheckPassword(password); err != nil {
		return "", err
	}

	_, err = p.store.Get(ctx, domain.CredentialsCollection, email)
	switch {
	case err == nil:
		return "", domain.NewError(domain.KindConflict, "email already in use")
	case !errors.Is(err, domain.ErrDocumentNotFound):
		return "", fmt.Errorf("auth: failed to look up credentials: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: failed to hash password: %w", err)
	}

	cred := credential{UserID: uuid.NewString(), Email: email, PasswordHash: string(hash)}
	data, err := json.Marshal(cred)
	if err != nil {
		return "", fmt.Errorf("auth: failed to encode credentials: %w", err)
	}

	if err := p.store.Set(ctx, domain.CredentialsCollection, email, data); err != nil {
		return "", fmt.Errorf("auth: failed to store credentials: %w", err)
	}

	return cred.UserID, nil
}

// Authenticate checks the password and, on success, makes the user the
// current session of this provider unless it is request-scoped.
func (p *Provider) Authenticate(ctx context.Context, email, password string) (string, string, error) {
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return "", "", errInvalidCredentials
	}

	doc, err := p.store.Get(ctx, domain.CredentialsCollection, email)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return "", "", errInvalidCredentials
	}
	if err != nil {
		return "", "", fmt.Errorf("auth: failed to look up credentials: %w", err)
	}

	var cred credential
	if err := json.Unmarshal(doc.Data, &cred); err != nil {
		return "", "", domain.WrapError(domain.KindInternal, fmt.Errorf("auth: corrupted credentials: %w", err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", "", errInvalidCredentials
	}

	token := ""
	if p.tokens != nil {
		if token, err = p.tokens.GenerateToken(cred.UserID); err != nil {
			return "", "", err
		}
	}

	if !p.requestScoped {
		p.mu.Lock()
		p.session = cred.UserID
		p.mu.Unlock()
	}

	return cred.UserID, token, nil
}

func (p *Provider) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	p.session = ""
	p.mu.Unlock()
	return nil
}

// CurrentUserID prefers an identity bound to ctx over the held session.
func (p *Provider) CurrentUserID(ctx context.Context) (string, bool) {
	if id, ok := domain.UserIDFromContext(ctx); ok {
		return id, true
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.session, p.session != ""
}
