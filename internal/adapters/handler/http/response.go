package http

import (
	"net/http"

	"github.com/comitanigiacomo/dailypulse/internal/core/domain"
	"github.com/comitanigiacomo/dailypulse/internal/validation"
	"github.com/gin-gonic/gin"
)

type idResponse struct {
	ID string `json:"id"`
}

func respondError(c *gin.Context, err error) {
	e := domain.AsError(err)
	if fields := validation.Fields(err); fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Message, "fields": fields})
		return
	}
	c.JSON(e.Kind.HTTPStatus(), gin.H{"error": e.Message})
}

// bind decodes the JSON body into form and validates it, answering 400 itself
// when either step fails.
func bind(c *gin.Context, v *validation.Validator, form any) bool {
	if err := c.ShouldBindJSON(form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := v.Validate(form); err != nil {
		respondError(c, err)
		return false
	}
	return true
}
