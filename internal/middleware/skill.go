package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tcfprep/backend/internal/model"
	"github.com/tcfprep/backend/internal/response"
)

// ContextKeySkill is the Gin context key for the validated skill param.
const ContextKeySkill = "skill"

// RequireSkill validates the :skill route parameter.
func RequireSkill() gin.HandlerFunc {
	return func(c *gin.Context) {
		skill, ok := model.ParseSkill(c.Param("skill"))
		if !ok {
			response.AbortFail(c, http.StatusBadRequest, response.ErrInvalidSkill)
			return
		}
		c.Set(ContextKeySkill, skill)
		c.Next()
	}
}

// GetSkill retrieves the validated skill from the Gin context.
func GetSkill(c *gin.Context) model.Skill {
	val, exists := c.Get(ContextKeySkill)
	if !exists {
		return ""
	}
	skill, ok := val.(model.Skill)
	if !ok {
		return ""
	}
	return skill
}
