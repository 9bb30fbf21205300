package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reque-io/reque/internal/shared/constants"
	"github.com/reque-io/reque/internal/shared/logger"
	"github.com/reque-io/reque/internal/shared/utils"
)

// PermissionChecker answers whether a user may perform an action on a
// resource class. Row-level rules stay in the usecases; this gate only
// covers the role/resource matrix.
type PermissionChecker interface {
	CheckPermission(ctx context.Context, userID uint, resource, action string) (bool, error)
}

type PermissionMiddleware struct {
	checker PermissionChecker
	logger  logger.Interface
}

func NewPermissionMiddleware(checker PermissionChecker, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		checker: checker,
		logger:  logger,
	}
}

// RequirePermission aborts with 403 unless the authenticated user's role is
// granted action on resource. Must run after RequireAuth.
func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(constants.ContextKeyUserID)
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		uid, ok := userID.(uint)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid user context")
			c.Abort()
			return
		}

		allowed, err := m.checker.CheckPermission(c.Request.Context(), uid, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed",
				"error", err, "user_id", uid, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to check permission")
			c.Abort()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
