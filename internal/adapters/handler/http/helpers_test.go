package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/dailypulse/internal/adapters/auth"
	"github.com/comitanigiacomo/dailypulse/internal/adapters/docstore"
	adapterHTTP "github.com/comitanigiacomo/dailypulse/internal/adapters/handler/http"
	"github.com/comitanigiacomo/dailypulse/internal/adapters/remote"
	"github.com/comitanigiacomo/dailypulse/internal/adapters/repository"
	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/comitanigiacomo/dailypulse/internal/core/usecases"
	"github.com/comitanigiacomo/dailypulse/internal/validation"
)

type fakeUploader struct {
	url  string
	err  error
	seen []byte
}

func (f *fakeUploader) Upload(_ context.Context, data []byte) (string, error) {
	f.seen = data
	return f.url, f.err
}

// hookStore runs a one-shot hook right after the next habit read.
type hookStore struct {
	domain.DocumentStore

	mu            sync.Mutex
	afterHabitGet func()
}

func (s *hookStore) Get(ctx context.Context, collection, id string) (*domain.Document, error) {
	doc, err := s.DocumentStore.Get(ctx, collection, id)

	s.mu.Lock()
	hook := s.afterHabitGet
	if strings.HasSuffix(collection, "/habits") {
		s.afterHabitGet = nil
	} else {
		hook = nil
	}
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return doc, err
}

func (s *hookStore) onNextHabitGet(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.afterHabitGet = fn
}

type testServer struct {
	router   *gin.Engine
	store    *docstore.InMemoryStore
	hooks    *hookStore
	uploader *fakeUploader
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := log.New(io.Discard)
	store := docstore.NewInMemoryStore()
	tokens := auth.NewTokenService("handler-secret", "dailypulse-test", time.Hour, store)
	provider := auth.NewRequestScopedProvider(store, tokens)
	hooks := &hookStore{DocumentStore: store}
	client := remote.NewClient(hooks, provider, remote.WithLogger(logger))

	habitsRepo := repository.NewRemoteHabitsRepository(client)
	postsRepo := repository.NewRemotePostsRepository(client)
	usersRepo := repository.NewRemoteUserRepository(client)

	uploader := &fakeUploader{url: "https://cdn.example.com/posts/a.jpg"}
	habits := usecases.NewHabitsUseCases(habitsRepo, postsRepo)
	posts := usecases.NewPostsUseCases(postsRepo, uploader)
	users := usecases.NewUserUseCases(usersRepo)
	v := validation.New()

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:  adapterHTTP.NewAuthHandler(users, v),
		HabitHandler: adapterHTTP.NewHabitHandler(habits, v, logger),
		PostHandler:  adapterHTTP.NewPostHandler(posts, habits.GetHabitDetails, v),
		MediaHandler: adapterHTTP.NewMediaHandler(posts.UploadImage),
		Tokens:       tokens,
		Logger:       logger,
		StartTime:    time.Now(),
	})

	return &testServer{router: router, store: store, hooks: hooks, uploader: uploader}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// signUp registers an account and returns a bearer token for it.
func (s *testServer) signUp(t *testing.T, email, name string) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{"email": email, "password": "secret123", "name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/auth/signin", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
