package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reque-io/reque/internal/application/user/usecases"
	"github.com/reque-io/reque/internal/shared/config"
	"github.com/reque-io/reque/internal/shared/constants"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
	"github.com/reque-io/reque/internal/shared/utils"
	"github.com/reque-io/reque/internal/shared/utils/logutil"
)

type AuthHandler struct {
	registerUC       usecases.RegisterWithPasswordExecutor
	loginUC          usecases.LoginWithPasswordExecutor
	verifyEmailUC    usecases.VerifyEmailExecutor
	requestResetUC   usecases.RequestPasswordResetExecutor
	resetPasswordUC  usecases.ResetPasswordExecutor
	changePasswordUC usecases.ChangePasswordExecutor
	initiateOAuthUC  usecases.InitiateOAuthLoginExecutor
	handleOAuthUC    usecases.HandleOAuthCallbackExecutor
	refreshTokenUC   usecases.RefreshTokenExecutor
	logoutUC         usecases.LogoutExecutor
	listSessionsUC   usecases.ListSessionsExecutor
	revokeSessionUC  usecases.RevokeSessionExecutor
	currentUserUC    usecases.GetCurrentUserExecutor
	logger           logger.Interface
	cookieConfig     config.CookieConfig
	jwtConfig        config.JWTConfig
	allowedOrigins   []string
}

func NewAuthHandler(
	registerUC usecases.RegisterWithPasswordExecutor,
	loginUC usecases.LoginWithPasswordExecutor,
	verifyEmailUC usecases.VerifyEmailExecutor,
	requestResetUC usecases.RequestPasswordResetExecutor,
	resetPasswordUC usecases.ResetPasswordExecutor,
	changePasswordUC usecases.ChangePasswordExecutor,
	initiateOAuthUC usecases.InitiateOAuthLoginExecutor,
	handleOAuthUC usecases.HandleOAuthCallbackExecutor,
	refreshTokenUC usecases.RefreshTokenExecutor,
	logoutUC usecases.LogoutExecutor,
	listSessionsUC usecases.ListSessionsExecutor,
	revokeSessionUC usecases.RevokeSessionExecutor,
	currentUserUC usecases.GetCurrentUserExecutor,
	logger logger.Interface,
	cookieConfig config.CookieConfig,
	jwtConfig config.JWTConfig,
	allowedOrigins []string,
) *AuthHandler {
	return &AuthHandler{
		registerUC:       registerUC,
		loginUC:          loginUC,
		verifyEmailUC:    verifyEmailUC,
		requestResetUC:   requestResetUC,
		resetPasswordUC:  resetPasswordUC,
		changePasswordUC: changePasswordUC,
		initiateOAuthUC:  initiateOAuthUC,
		handleOAuthUC:    handleOAuthUC,
		refreshTokenUC:   refreshTokenUC,
		logoutUC:         logoutUC,
		listSessionsUC:   listSessionsUC,
		revokeSessionUC:  revokeSessionUC,
		currentUserUC:    currentUserUC,
		logger:           logger,
		cookieConfig:     cookieConfig,
		jwtConfig:        jwtConfig,
		allowedOrigins:   allowedOrigins,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.RegisterWithPasswordCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	}

	result, err := h.registerUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Warnw("registration failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "registration successful, please verify your email", gin.H{
		"user_id": result.User.ID,
		"email":   result.User.Email,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.LoginWithPasswordCommand{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
		DeviceName: c.GetHeader("User-Agent"),
		DeviceType: detectDeviceType(c.GetHeader("User-Agent")),
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
	}

	result, err := h.loginUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		// Expected failures (wrong password) stay out of the log; probing
		// indicators are still recorded as security events.
		if errors.ShouldLogAuthError(err) {
			h.logger.Warnw("login failed", "error", err, "email", logutil.MaskEmail(req.Email))
		}
		if errors.IsSecurityEvent(err) {
			h.logger.Warnw("security event",
				"kind", "login_failure", "client_ip", c.ClientIP(),
				"email", logutil.MaskEmail(req.Email))
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.setSessionCookies(c, result.AccessToken, result.RefreshToken)

	utils.SuccessResponse(c, http.StatusOK, "login successful", gin.H{
		"user":          result.User,
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"expires_in":    result.ExpiresIn,
	})
}

// VerifyEmail handles POST /auth/verify-email. The token is accepted either
// as a query parameter (mail client link) or in the JSON body (frontend).
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		var req VerifyEmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "token is required")
			return
		}
		token = req.Token
	}

	cmd := usecases.VerifyEmailCommand{Token: token}

	if err := h.verifyEmailUC.Execute(c.Request.Context(), cmd); err != nil {
		h.logger.Warnw("email verification failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "email verified successfully", nil)
}

// ForgotPassword handles POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.RequestPasswordResetCommand{Email: req.Email}

	if err := h.requestResetUC.Execute(c.Request.Context(), cmd); err != nil {
		h.logger.Errorw("password reset request failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "if the email exists, a password reset link has been sent", nil)
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.ResetPasswordCommand{
		Token:       req.Token,
		NewPassword: req.Password,
	}

	if err := h.resetPasswordUC.Execute(c.Request.Context(), cmd); err != nil {
		h.logger.Warnw("password reset failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "password reset successfully", nil)
}

// ChangePassword handles POST /auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.ChangePasswordCommand{
		ActorID:         userID.(uint),
		SessionID:       c.GetString(constants.ContextKeySessionID),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}

	if err := h.changePasswordUC.Execute(c.Request.Context(), cmd); err != nil {
		h.logger.Warnw("password change failed", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "password changed successfully", nil)
}

// InitiateOAuth handles GET /auth/oauth/:provider
func (h *AuthHandler) InitiateOAuth(c *gin.Context) {
	provider := c.Param("provider")

	cmd := usecases.InitiateOAuthLoginCommand{Provider: provider}

	result, err := h.initiateOAuthUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("OAuth initiation failed", "error", err, "provider", provider)
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, result.AuthURL)
}

// HandleOAuthCallback handles GET /auth/oauth/:provider/callback
func (h *AuthHandler) HandleOAuthCallback(c *gin.Context) {
	provider := c.Param("provider")
	code := c.Query("code")
	state := c.Query("state")

	// Check OAuth provider errors
	if errParam := c.Query("error"); errParam != "" {
		h.logger.Warnw("OAuth provider returned error",
			"provider", provider,
			"error_code", errParam,
			"error_description", c.Query("error_description"),
		)
		h.renderOAuthError(c, constants.GetOAuthErrorMessageFromString(errParam))
		return
	}

	if code == "" {
		h.logger.Warnw("OAuth callback missing code", "provider", provider)
		h.renderOAuthError(c, constants.GetOAuthErrorMessage(constants.OAuthErrorMissingCode))
		return
	}

	if state == "" {
		h.logger.Warnw("OAuth callback missing state", "provider", provider)
		h.renderOAuthError(c, constants.GetOAuthErrorMessage(constants.OAuthErrorMissingState))
		return
	}

	cmd := usecases.HandleOAuthCallbackCommand{
		Provider:   provider,
		Code:       code,
		State:      state,
		DeviceName: c.GetHeader("User-Agent"),
		DeviceType: detectDeviceType(c.GetHeader("User-Agent")),
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
	}

	result, err := h.handleOAuthUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("OAuth callback failed", "error", err, "provider", provider)
		h.renderOAuthError(c, oauthErrorMessageFor(err))
		return
	}

	h.setSessionCookies(c, result.AccessToken, result.RefreshToken)

	h.renderOAuthSuccess(c, result)
}

// RefreshToken handles POST /auth/refresh. The refresh token comes from the
// HttpOnly cookie when present, otherwise from the request body.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken := utils.GetTokenFromCookie(c, utils.RefreshTokenCookie)

	if refreshToken == "" {
		var req RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	if refreshToken == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "refresh token is required")
		return
	}

	cmd := usecases.RefreshTokenCommand{RefreshToken: refreshToken}

	result, err := h.refreshTokenUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		if errors.ShouldLogAuthError(err) {
			h.logger.Warnw("token refresh failed", "error", err)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.setSessionCookies(c, result.AccessToken, result.RefreshToken)

	utils.SuccessResponse(c, http.StatusOK, "token refreshed successfully", gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"expires_in":    result.ExpiresIn,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, exists := c.Get(constants.ContextKeySessionID)
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "session not found")
		return
	}

	cmd := usecases.LogoutCommand{SessionID: sessionID.(string)}

	if err := h.logoutUC.Execute(c.Request.Context(), cmd); err != nil {
		h.logger.Errorw("logout failed", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "logout failed")
		return
	}

	utils.ClearAuthCookies(c, h.cookieConfig)
	utils.ClearCSRFCookie(c, h.cookieConfig)

	utils.SuccessResponse(c, http.StatusOK, "logout successful", nil)
}

// ListSessions handles GET /auth/sessions
func (h *AuthHandler) ListSessions(c *gin.Context) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.listSessionsUC.Execute(c.Request.Context(), usecases.ListSessionsQuery{
		UserID: userID.(uint),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "success", result)
}

// RevokeSession handles DELETE /auth/sessions/:id
func (h *AuthHandler) RevokeSession(c *gin.Context) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	err := h.revokeSessionUC.Execute(c.Request.Context(), usecases.RevokeSessionCommand{
		UserID:    userID.(uint),
		SessionID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "session revoked", nil)
}

// GetCurrentUser handles GET /auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	query := usecases.GetCurrentUserQuery{ActorID: userID.(uint)}

	result, err := h.currentUserUC.Execute(c.Request.Context(), query)
	if err != nil {
		h.logger.Errorw("failed to get current user", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "success", result)
}

// setSessionCookies writes the token pair plus the CSRF token. The CSRF
// cookie lives as long as the refresh token so SPA sessions keep working
// across access-token rotations.
func (h *AuthHandler) setSessionCookies(c *gin.Context, accessToken, refreshToken string) {
	accessMaxAge := h.jwtConfig.AccessExpMinutes * 60
	refreshMaxAge := h.jwtConfig.RefreshExpDays * 24 * 60 * 60

	utils.SetAuthCookies(c, h.cookieConfig, accessToken, refreshToken, accessMaxAge, refreshMaxAge)
	utils.SetCSRFCookie(c, h.cookieConfig, refreshMaxAge)
}
