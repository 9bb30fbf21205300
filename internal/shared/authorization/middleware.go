package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reque-io/reque/internal/shared/constants"
)

// RequireStaff gates routes reserved for triage roles (admin, team_member).
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := UserRole(c.GetString(constants.ContextKeyUserRole))
		if !role.IsStaff() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "team member access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
