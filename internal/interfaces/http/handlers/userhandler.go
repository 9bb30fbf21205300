package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reque-io/reque/internal/application/user/usecases"
	"github.com/reque-io/reque/internal/shared/constants"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
	"github.com/reque-io/reque/internal/shared/utils"
)

// UserHandler serves the account directory and admin account management.
type UserHandler struct {
	listUsersUC      usecases.ListUsersExecutor
	listAssignableUC usecases.ListAssignableUsersExecutor
	updateProfileUC  usecases.UpdateProfileExecutor
	changeRoleUC     usecases.ChangeUserRoleExecutor
	changeStatusUC   usecases.ChangeUserStatusExecutor
	logger           logger.Interface
}

func NewUserHandler(
	listUsersUC usecases.ListUsersExecutor,
	listAssignableUC usecases.ListAssignableUsersExecutor,
	updateProfileUC usecases.UpdateProfileExecutor,
	changeRoleUC usecases.ChangeUserRoleExecutor,
	changeStatusUC usecases.ChangeUserStatusExecutor,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		listUsersUC:      listUsersUC,
		listAssignableUC: listAssignableUC,
		updateProfileUC:  updateProfileUC,
		changeRoleUC:     changeRoleUC,
		changeStatusUC:   changeStatusUC,
		logger:           logger,
	}
}

type UpdateProfileRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=2,max=100"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,max=500"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin team_member user guest"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active suspended"`
}

// ListUsers handles GET /users
//
//	@Summary		List accounts
//	@Description	Admin directory of all accounts with role, status and text filters
//	@Tags			users
//	@Produce		json
//	@Param			role		query	string	false	"Filter by role"
//	@Param			status		query	string	false	"Filter by status"
//	@Param			search		query	string	false	"Match against name and email"
//	@Param			page		query	int		false	"Page number"
//	@Param			page_size	query	int		false	"Page size"
//	@Security		BearerAuth
//	@Success		200	{object}	utils.APIResponse
//	@Router			/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constants.DefaultPageSize)))

	query := usecases.ListUsersQuery{
		ActorID:   actorID,
		Role:      c.Query("role"),
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		Page:      page,
		PageSize:  pageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	result, err := h.listUsersUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListAssignable handles GET /users/assignable
func (h *UserHandler) ListAssignable(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.listAssignableUC.Execute(c.Request.Context(), usecases.ListAssignableUsersQuery{ActorID: actorID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "success", result)
}

// UpdateProfile handles PUT /users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == nil && req.AvatarURL == nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("nothing to update"))
		return
	}

	cmd := usecases.UpdateProfileCommand{
		ActorID:   actorID,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	}

	result, err := h.updateProfileUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Warnw("profile update failed", "error", err, "user_id", actorID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "profile updated successfully", result)
}

// ChangeRole handles PUT /users/:id/role
//
//	@Summary		Change account role
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int					true	"User ID"
//	@Param			request	body	ChangeRoleRequest	true	"New role"
//	@Security		BearerAuth
//	@Success		200	{object}	utils.APIResponse
//	@Router			/users/{id}/role [put]
func (h *UserHandler) ChangeRole(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	targetID, err := parseUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.ChangeUserRoleCommand{
		ActorID: actorID,
		UserID:  targetID,
		Role:    req.Role,
	}

	result, err := h.changeRoleUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Warnw("role change failed", "error", err, "user_id", targetID, "actor_id", actorID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "role updated successfully", result)
}

// ChangeStatus handles PUT /users/:id/status
func (h *UserHandler) ChangeStatus(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	targetID, err := parseUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.ChangeUserStatusCommand{
		ActorID: actorID,
		UserID:  targetID,
		Status:  req.Status,
	}

	result, err := h.changeStatusUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Warnw("status change failed", "error", err, "user_id", targetID, "actor_id", actorID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "status updated successfully", result)
}

// currentUserID reads the authenticated user's ID set by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func parseUserID(c *gin.Context) (uint, error) {
	return utils.ParseUintParam(c, "id", "user")
}
