package http_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
)

func createPost(t *testing.T, srv *testServer, token string, body gin.H) string {
	t.Helper()
	w := srv.do(t, http.MethodPost, "/api/v1/posts", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]string](t, w)["id"]
}

func TestPosts_CreateAndList(t *testing.T) {
	t.Run("Success: Feed shows author and habit snapshot", func(t *testing.T) {
		srv := newTestServer(t)
		token := srv.signUp(t, "ann@example.com", "Ann")
		habitID := createHabit(t, srv, token, gin.H{"title": "Meditate", "daysOfWeek": []string{"SUNDAY"}, "goal": 1})

		postID := createPost(t, srv, token, gin.H{"description": "Goal reached!", "habitId": habitID, "imageUrl": "https://cdn.example.com/p.jpg"})

		w := srv.do(t, http.MethodGet, "/api/v1/posts", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		feed := decode[domain.Posts](t, w)
		require.Len(t, feed.Items, 1)
		post := feed.Items[0]
		assert.Equal(t, postID, post.ID)
		assert.Equal(t, "Ann", post.AuthorName)
		assert.Equal(t, "https://cdn.example.com/p.jpg", post.ImageURL)
		require.NotNil(t, post.HabitSnapshot)
		assert.Equal(t, "Meditate", post.HabitSnapshot.Title)
		assert.Equal(t, 0, post.LikeCount)
	})

	t.Run("Fail: Snapshot of an unknown habit is 404", func(t *testing.T) {
		srv := newTestServer(t)
		token := srv.signUp(t, "ann@example.com", "Ann")

		w := srv.do(t, http.MethodPost, "/api/v1/posts", token, gin.H{"description": "hi", "habitId": "nope"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Fail: Empty description is 400", func(t *testing.T) {
		srv := newTestServer(t)
		token := srv.signUp(t, "ann@example.com", "Ann")

		w := srv.do(t, http.MethodPost, "/api/v1/posts", token, gin.H{"description": ""})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPosts_Like(t *testing.T) {
	srv := newTestServer(t)
	ann := srv.signUp(t, "ann@example.com", "Ann")
	bob := srv.signUp(t, "bob@example.com", "Bob")
	postID := createPost(t, srv, ann, gin.H{"description": "Day one"})

	t.Run("Success: Like then unlike", func(t *testing.T) {
		w := srv.do(t, http.MethodPost, "/api/v1/posts/"+postID+"/like", bob, nil)
		require.Equal(t, http.StatusOK, w.Code)
		post := decode[domain.Post](t, w)
		assert.Equal(t, 1, post.LikeCount)
		assert.True(t, post.LikedByMe)

		w = srv.do(t, http.MethodPost, "/api/v1/posts/"+postID+"/like", bob, nil)
		require.Equal(t, http.StatusOK, w.Code)
		post = decode[domain.Post](t, w)
		assert.Equal(t, 0, post.LikeCount)
		assert.Empty(t, post.LikedByUserIDs)
	})

	t.Run("Fail: Unknown post is 404", func(t *testing.T) {
		w := srv.do(t, http.MethodPost, "/api/v1/posts/nope/like", bob, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPosts_Delete(t *testing.T) {
	srv := newTestServer(t)
	ann := srv.signUp(t, "ann@example.com", "Ann")
	bob := srv.signUp(t, "bob@example.com", "Bob")
	postID := createPost(t, srv, ann, gin.H{"description": "Day one"})

	t.Run("Fail: Only the author may delete", func(t *testing.T) {
		w := srv.do(t, http.MethodDelete, "/api/v1/posts/"+postID, bob, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "only the author can delete this post")
	})

	t.Run("Success: Author deletes", func(t *testing.T) {
		w := srv.do(t, http.MethodDelete, "/api/v1/posts/"+postID, ann, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = srv.do(t, http.MethodGet, "/api/v1/posts", ann, nil)
		assert.Empty(t, decode[domain.Posts](t, w).Items)
	})
}
