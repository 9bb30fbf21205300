package request

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reque-io/reque/internal/application/request/usecases"
	"github.com/reque-io/reque/internal/shared/logger"
	"github.com/reque-io/reque/internal/shared/utils"
)

// RequestHandler serves the request lifecycle: create, read, update, triage,
// assignment, and deletion. Row-level authorization lives in the usecases;
// the handler only translates HTTP.
type RequestHandler struct {
	createUC      usecases.CreateRequestExecutor
	getUC         usecases.GetRequestExecutor
	listUC        usecases.ListRequestsExecutor
	updateUC      usecases.UpdateRequestExecutor
	changeStatUC  usecases.ChangeStatusExecutor
	changePrioUC  usecases.ChangePriorityExecutor
	assignUC      usecases.AssignRequestExecutor
	deleteUC      usecases.DeleteRequestExecutor
	statsUC       usecases.GetRequestStatsExecutor
	permissionsUC usecases.GetRequestPermissionsExecutor
	activityUC    usecases.ListActivityExecutor
	logger        logger.Interface
}

func NewRequestHandler(
	createUC usecases.CreateRequestExecutor,
	getUC usecases.GetRequestExecutor,
	listUC usecases.ListRequestsExecutor,
	updateUC usecases.UpdateRequestExecutor,
	changeStatUC usecases.ChangeStatusExecutor,
	changePrioUC usecases.ChangePriorityExecutor,
	assignUC usecases.AssignRequestExecutor,
	deleteUC usecases.DeleteRequestExecutor,
	statsUC usecases.GetRequestStatsExecutor,
	permissionsUC usecases.GetRequestPermissionsExecutor,
	activityUC usecases.ListActivityExecutor,
	logger logger.Interface,
) *RequestHandler {
	return &RequestHandler{
		createUC:      createUC,
		getUC:         getUC,
		listUC:        listUC,
		updateUC:      updateUC,
		changeStatUC:  changeStatUC,
		changePrioUC:  changePrioUC,
		assignUC:      assignUC,
		deleteUC:      deleteUC,
		statsUC:       statsUC,
		permissionsUC: permissionsUC,
		activityUC:    activityUC,
		logger:        logger,
	}
}

// Create handles POST /requests
func (h *RequestHandler) Create(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand(actorID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "request created successfully")
}

// Get handles GET /requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	actorID, _ := currentUserID(c)

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetRequestQuery{
		RequestID: requestID,
		ActorID:   actorID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "success", result)
}

// List handles GET /requests
func (h *RequestHandler) List(c *gin.Context) {
	actorID, _ := currentUserID(c)

	result, err := h.listUC.Execute(c.Request.Context(), parseListQuery(c, actorID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update handles PUT /requests/:id
func (h *RequestHandler) Update(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), req.ToCommand(requestID, actorID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "request updated successfully", result)
}

// ChangeStatus handles PUT /requests/:id/status
func (h *RequestHandler) ChangeStatus(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.changeStatUC.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		RequestID: requestID,
		ActorID:   actorID,
		Status:    req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "status updated successfully", result)
}

// ChangePriority handles PUT /requests/:id/priority
func (h *RequestHandler) ChangePriority(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.changePrioUC.Execute(c.Request.Context(), usecases.ChangePriorityCommand{
		RequestID: requestID,
		ActorID:   actorID,
		Priority:  req.Priority,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "priority updated successfully", result)
}

// Assign handles PUT /requests/:id/assignee
func (h *RequestHandler) Assign(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.assignUC.Execute(c.Request.Context(), usecases.AssignRequestCommand{
		RequestID:  requestID,
		ActorID:    actorID,
		AssigneeID: req.AssigneeID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "assignee updated successfully", result)
}

// Delete handles DELETE /requests/:id
func (h *RequestHandler) Delete(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	_, err = h.deleteUC.Execute(c.Request.Context(), usecases.DeleteRequestCommand{
		RequestID: requestID,
		ActorID:   actorID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "request deleted successfully", nil)
}

// Stats handles GET /requests/stats
func (h *RequestHandler) Stats(c *gin.Context) {
	actorID, _ := currentUserID(c)

	result, err := h.statsUC.Execute(c.Request.Context(), usecases.GetRequestStatsQuery{ActorID: actorID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "success", result)
}

// Permissions handles GET /requests/:id/permissions
func (h *RequestHandler) Permissions(c *gin.Context) {
	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	actorID, _ := currentUserID(c)

	result, err := h.permissionsUC.Execute(c.Request.Context(), usecases.GetRequestPermissionsQuery{
		RequestID: requestID,
		ActorID:   actorID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "success", result)
}

// Activity handles GET /requests/:id/activity
func (h *RequestHandler) Activity(c *gin.Context) {
	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	actorID, _ := currentUserID(c)

	query := usecases.ListActivityQuery{
		RequestID: requestID,
		ActorID:   actorID,
	}
	query.Page, query.PageSize = parsePagination(c)

	result, err := h.activityUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}
