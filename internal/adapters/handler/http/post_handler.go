package http

import (
	"net/http"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/comitanigiacomo/dailypulse/internal/core/usecases"
	"github.com/comitanigiacomo/dailypulse/internal/validation"
	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	uc        *usecases.PostsUseCases
	habit     *usecases.GetHabitDetails
	validator *validation.Validator
}

// NewPostHandler takes the habit lookup so a post can carry a snapshot of the
// habit it celebrates.
func NewPostHandler(uc *usecases.PostsUseCases, habit *usecases.GetHabitDetails, validator *validation.Validator) *PostHandler {
	return &PostHandler{
		uc:        uc,
		habit:     habit,
		validator: validator,
	}
}

func (h *PostHandler) RegisterRoutes(router *gin.RouterGroup) {
	posts := router.Group("/posts")
	{
		posts.GET("", h.List)
		posts.POST("", h.Create)
		posts.POST("/:id/like", h.Like)
		posts.DELETE("/:id", h.Delete)
	}
}

// List godoc
// @Summary Community feed, newest first
// @Tags posts
// @Produce json
// @Success 200 {object} domain.Posts
// @Security BearerAuth
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.uc.GetPosts.Execute(c.Request.Context()).Get()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Create godoc
// @Summary Share a post
// @Tags posts
// @Accept json
// @Produce json
// @Param body body validation.PostForm true "Post"
// @Success 201 {object} idResponse
// @Security BearerAuth
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var form validation.PostForm
	if !bind(c, h.validator, &form) {
		return
	}

	ctx := c.Request.Context()

	var snapshot *domain.Habit
	if form.HabitID != "" {
		habit, err := h.habit.Execute(ctx, form.HabitID).Get()
		if err != nil {
			respondError(c, err)
			return
		}
		snapshot = &habit
	}

	post := domain.NewPost(form.Description, snapshot)
	post.ImageURL = form.ImageURL

	id, err := h.uc.CreatePost.Execute(ctx, post).Get()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, idResponse{ID: id})
}

// Like toggles the caller's like and returns the stored post.
func (h *PostHandler) Like(c *gin.Context) {
	post, err := h.uc.LikePost.Execute(c.Request.Context(), c.Param("id")).Get()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.uc.DeletePost.Execute(c.Request.Context(), c.Param("id")).Err(); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
