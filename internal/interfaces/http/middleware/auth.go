package middleware

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/infrastructure/auth"
	"github.com/reque-io/reque/internal/shared/config"
	"github.com/reque-io/reque/internal/shared/constants"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
	"github.com/reque-io/reque/internal/shared/utils"
)

// UserResolver maps the public account identifier carried in token claims
// to the local user record.
type UserResolver interface {
	GetByUUID(ctx context.Context, uuid string) (*user.User, error)
}

type AuthMiddleware struct {
	jwtService   *auth.JWTService
	users        UserResolver
	cookieConfig config.CookieConfig
	jwtConfig    config.JWTConfig
	logger       logger.Interface
}

func NewAuthMiddleware(
	jwtService *auth.JWTService,
	users UserResolver,
	cookieConfig config.CookieConfig,
	jwtConfig config.JWTConfig,
	logger logger.Interface,
) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:   jwtService,
		users:        users,
		cookieConfig: cookieConfig,
		jwtConfig:    jwtConfig,
		logger:       logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.GetTokenFromCookie(c, utils.AccessTokenCookie)
		fromCookie := token != ""

		// Fallback to Authorization header for API clients.
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				abortWithAuthError(c, errors.NewTokenInvalidError("authorization token"))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				abortWithAuthError(c, errors.NewTokenInvalidError("authorization header"))
				return
			}

			token = parts[1]
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			if stderrors.Is(err, jwt.ErrTokenExpired) {
				abortWithAuthError(c, errors.NewTokenExpiredError("access token"))
				return
			}
			m.logger.Warnw("failed to verify token", "error", err)
			abortWithAuthError(c, errors.NewTokenInvalidError("access token"))
			return
		}

		if claims.TokenType != auth.TokenTypeAccess {
			abortWithAuthError(c, errors.NewTokenInvalidError("access token"))
			return
		}

		// Tokens carry the public UUID; handlers and usecases work with the
		// local numeric ID. The role is read from the database rather than
		// the claims so a role change applies before the token expires.
		account, err := m.users.GetByUUID(c.Request.Context(), claims.UserUUID)
		if err != nil {
			m.logger.Warnw("failed to resolve token subject", "error", err, "user_uuid", claims.UserUUID)
			abortWithAuthError(c, errors.NewTokenInvalidError("access token"))
			return
		}

		// Sliding refresh: cookie-based sessions get a fresh access token
		// before the current one expires. Header clients run their own
		// refresh flow.
		if fromCookie && m.jwtService.ShouldRefresh(claims) {
			if fresh, err := m.jwtService.RefreshAccessToken(claims); err == nil {
				utils.SetAccessTokenCookie(c, m.cookieConfig, fresh, m.jwtConfig.AccessExpMinutes*60)
			}
		}

		c.Set(constants.ContextKeyUserID, account.ID())
		c.Set(constants.ContextKeySessionID, claims.SessionID)
		c.Set(constants.ContextKeyUserRole, account.Role().String())

		c.Next()
	}
}

func abortWithAuthError(c *gin.Context, err *errors.AuthError) {
	utils.ErrorResponseWithError(c, err)
	c.Abort()
}
