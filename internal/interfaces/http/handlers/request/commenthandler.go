package request

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reque-io/reque/internal/application/request/usecases"
	"github.com/reque-io/reque/internal/shared/logger"
	"github.com/reque-io/reque/internal/shared/utils"
)

// CommentHandler serves the discussion thread on a request.
type CommentHandler struct {
	addUC    usecases.AddCommentExecutor
	listUC   usecases.ListCommentsExecutor
	updateUC usecases.UpdateCommentExecutor
	deleteUC usecases.DeleteCommentExecutor
	logger   logger.Interface
}

func NewCommentHandler(
	addUC usecases.AddCommentExecutor,
	listUC usecases.ListCommentsExecutor,
	updateUC usecases.UpdateCommentExecutor,
	deleteUC usecases.DeleteCommentExecutor,
	logger logger.Interface,
) *CommentHandler {
	return &CommentHandler{
		addUC:    addUC,
		listUC:   listUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		logger:   logger,
	}
}

// Add handles POST /requests/:id/comments
func (h *CommentHandler) Add(c *gin.Context) {
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

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.addUC.Execute(c.Request.Context(), usecases.AddCommentCommand{
		RequestID: requestID,
		AuthorID:  actorID,
		Content:   req.Content,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "comment added successfully")
}

// List handles GET /requests/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	actorID, _ := currentUserID(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListCommentsQuery{
		RequestID: requestID,
		ActorID:   actorID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "success", result)
}

// Update handles PUT /comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	commentID, err := parseCommentID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateCommentCommand{
		CommentID: commentID,
		ActorID:   actorID,
		Content:   req.Content,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "comment updated successfully", result)
}

// Delete handles DELETE /comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	commentID, err := parseCommentID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	_, err = h.deleteUC.Execute(c.Request.Context(), usecases.DeleteCommentCommand{
		CommentID: commentID,
		ActorID:   actorID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "comment deleted successfully", nil)
}
