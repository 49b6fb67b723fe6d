package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/comitanigiacomo/dailypulse/internal/core/usecases"
	"github.com/comitanigiacomo/dailypulse/internal/validation"
	"github.com/gin-gonic/gin"
)

type HabitHandler struct {
	uc        *usecases.HabitsUseCases
	validator *validation.Validator
	logger    *log.Logger
}

func NewHabitHandler(uc *usecases.HabitsUseCases, validator *validation.Validator, logger *log.Logger) *HabitHandler {
	return &HabitHandler{
		uc:        uc,
		validator: validator,
		logger:    logger.WithPrefix("habits"),
	}
}

type habitDoneResponse struct {
	Habit       domain.Habit `json:"habit"`
	GoalReached bool         `json:"goalReached"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Update)
		habits.POST("/:id/done", h.Done)
		habits.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary Create a habit
// @Tags habits
// @Accept json
// @Produce json
// @Param body body validation.HabitForm true "Habit"
// @Success 201 {object} idResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	var form validation.HabitForm
	if !bind(c, h.validator, &form) {
		return
	}

	id, err := h.uc.CreateHabit.Execute(c.Request.Context(), form.Habit()).Get()
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Debug("habit created", "habit_id", id)
	c.JSON(http.StatusCreated, idResponse{ID: id})
}

// List godoc
// @Summary List the caller's habits
// @Tags habits
// @Produce json
// @Success 200 {object} domain.Habits
// @Security BearerAuth
// @Router /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	habits, err := h.uc.GetHabits.Execute(c.Request.Context()).Get()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habits)
}

func (h *HabitHandler) Get(c *gin.Context) {
	habit, err := h.uc.GetHabitDetails.Execute(c.Request.Context(), c.Param("id")).Get()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// Update replaces title, days and goal. The completion count is kept from
// the stored habit.
func (h *HabitHandler) Update(c *gin.Context) {
	var form validation.HabitForm
	if !bind(c, h.validator, &form) {
		return
	}

	ctx := c.Request.Context()
	current, err := h.uc.GetHabitDetails.Execute(ctx, c.Param("id")).Get()
	if err != nil {
		respondError(c, err)
		return
	}

	edited := form.Habit()
	current.Title = edited.Title
	current.DaysOfWeek = edited.DaysOfWeek
	current.Goal = edited.Goal

	id, err := h.uc.UpdateHabit.Execute(ctx, current).Get()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, idResponse{ID: id})
}

// Done godoc
// @Summary Record one completion
// @Tags habits
// @Produce json
// @Param id path string true "Habit id"
// @Success 200 {object} habitDoneResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /habits/{id}/done [post]
func (h *HabitHandler) Done(c *gin.Context) {
	habit, err := h.uc.OnHabitDone.Execute(c.Request.Context(), c.Param("id")).Get()
	if err != nil {
		respondError(c, err)
		return
	}

	if habit.GoalReached() {
		h.logger.Info("habit goal reached", "habit_id", habit.ID, "total", habit.TotalCount)
	}
	c.JSON(http.StatusOK, habitDoneResponse{Habit: habit, GoalReached: habit.GoalReached()})
}

func (h *HabitHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteHabit.Execute(c.Request.Context(), c.Param("id")).Err(); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
