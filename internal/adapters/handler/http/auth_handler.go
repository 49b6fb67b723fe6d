package http

import (
	"net/http"

	"github.com/comitanigiacomo/dailypulse/internal/core/usecases"
	"github.com/comitanigiacomo/dailypulse/internal/validation"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users     *usecases.UserUseCases
	validator *validation.Validator
}

func NewAuthHandler(users *usecases.UserUseCases, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{
		users:     users,
		validator: validator,
	}
}

// RegisterRoutes mounts sign-up and sign-in on public, and the routes that
// need a bearer token on protected.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	authGroup := public.Group("/auth")
	{
		authGroup.POST("/signup", h.SignUp)
		authGroup.POST("/signin", h.SignIn)
	}

	me := protected.Group("/auth")
	{
		me.POST("/logout", h.Logout)
		me.GET("/me", h.Me)
	}
}

// SignUp godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body validation.SignUpForm true "Credentials and display name"
// @Success 201 {object} idResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var form validation.SignUpForm
	if !bind(c, h.validator, &form) {
		return
	}

	userID, err := h.users.SignUp.Execute(c.Request.Context(), form.Email, form.Password, form.Name).Get()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, idResponse{ID: userID})
}

// SignIn godoc
// @Summary Exchange credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body validation.SignInForm true "Credentials"
// @Success 200 {object} domain.Session
// @Failure 401 {object} map[string]string
// @Router /auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var form validation.SignInForm
	if !bind(c, h.validator, &form) {
		return
	}

	session, err := h.users.SignIn.Execute(c.Request.Context(), form.Email, form.Password).Get()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.users.Logout.Execute(c.Request.Context()).Err(); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.GetCurrentUser.Execute(c.Request.Context()).Get()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
