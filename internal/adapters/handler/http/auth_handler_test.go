package http_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

func TestAuthHandler_SignUp(t *testing.T) {
	t.Run("Success: Should return 201 and the new user id", func(t *testing.T) {
		srv := newTestServer(t)

		w := srv.do(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{"email": "Ann@Example.com", "password": "secret123", "name": "Ann"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotEmpty(t, decode[map[string]string](t, w)["id"])
	})

	t.Run("Fail: Validation errors list each field", func(t *testing.T) {
		srv := newTestServer(t)

		w := srv.do(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{"email": "nope", "password": "1"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode[struct {
			Fields map[string]string `json:"fields"`
		}](t, w)
		assert.Contains(t, body.Fields, "email")
		assert.Contains(t, body.Fields, "password")
		assert.Contains(t, body.Fields, "name")
	})

	t.Run("Fail: Duplicate email returns 409", func(t *testing.T) {
		srv := newTestServer(t)
		srv.signUp(t, "ann@example.com", "Ann")

		w := srv.do(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{"email": "ann@example.com", "password": "secret123", "name": "Other"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "email already in use")
	})

	t.Run("Fail: Malformed JSON", func(t *testing.T) {
		srv := newTestServer(t)

		w := srv.do(t, http.MethodPost, "/api/v1/auth/signup", "", `{"email":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_SignIn(t *testing.T) {
	t.Run("Success: Returns the profile and a token", func(t *testing.T) {
		srv := newTestServer(t)
		srv.signUp(t, "ann@example.com", "Ann")

		w := srv.do(t, http.MethodPost, "/api/v1/auth/signin", "", gin.H{"email": "ann@example.com", "password": "secret123"})

		assert.Equal(t, http.StatusOK, w.Code)
		session := decode[domain.Session](t, w)
		assert.Equal(t, "Ann", session.User.Name)
		assert.NotEmpty(t, session.Token)
	})

	t.Run("Fail: Wrong password returns 401", func(t *testing.T) {
		srv := newTestServer(t)
		srv.signUp(t, "ann@example.com", "Ann")

		w := srv.do(t, http.MethodPost, "/api/v1/auth/signin", "", gin.H{"email": "ann@example.com", "password": "wrong-one"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid email or password")
	})
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	srv := newTestServer(t)
	token := srv.signUp(t, "ann@example.com", "Ann")

	t.Run("Success: Me returns the caller", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ann@example.com", decode[domain.User](t, w).Email)
	})

	t.Run("Success: Logout returns 204", func(t *testing.T) {
		w := srv.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Fail: Me without a token", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
