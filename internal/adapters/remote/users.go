package remote

import (
	"context"
	"strings"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

// SignUp registers credentials, then mirrors the profile at users/{uid}.
// If the profile write fails the credentials stay registered.
func (c *Client) SignUp(ctx context.Context, email, password, name string) (string, error) {
	uid, err := c.auth.Register(ctx, email, password)
	if err != nil {
		return "", storeError(err, "account")
	}

	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return "", err
	}

	data, err := encode(domain.User{ID: uid, Name: strings.TrimSpace(name), Email: normalized})
	if err != nil {
		return "", err
	}
	if err := c.store.Set(ctx, domain.UsersCollection, uid, data); err != nil {
		return "", storeError(err, "user profile")
	}

	c.logger.Info("user signed up", "user_id", uid)
	return uid, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	uid, token, err := c.auth.Authenticate(ctx, email, password)
	if err != nil {
		return domain.Session{}, storeError(err, "account")
	}

	user, err := c.profile(ctx, uid)
	if err != nil {
		return domain.Session{}, err
	}

	return domain.Session{User: user, Token: token}, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	if err := c.auth.SignOut(ctx); err != nil {
		return storeError(err, "session")
	}
	return nil
}

func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	uid, err := c.currentUser(ctx)
	if err != nil {
		return domain.User{}, err
	}
	return c.profile(ctx, uid)
}

func (c *Client) profile(ctx context.Context, uid string) (domain.User, error) {
	doc, err := c.store.Get(ctx, domain.UsersCollection, uid)
	if err != nil {
		return domain.User{}, storeError(err, "user profile")
	}

	var u domain.User
	if err := decode(doc, &u); err != nil {
		return domain.User{}, err
	}
	u.ID = doc.ID
	return u, nil
}

// ListUserIDs returns the id of every account profile.
func (c *Client) ListUserIDs(ctx context.Context) ([]string, error) {
	docs, err := c.store.List(ctx, domain.UsersCollection)
	if err != nil {
		return nil, storeError(err, "users")
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}
