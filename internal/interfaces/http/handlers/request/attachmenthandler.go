package request

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reque-io/reque/internal/application/request/usecases"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
	"github.com/reque-io/reque/internal/shared/utils"
)

// AttachmentHandler serves file uploads and downloads on requests. Size and
// type limits are enforced by the upload usecase against the blob store.
type AttachmentHandler struct {
	uploadUC   usecases.UploadAttachmentExecutor
	listUC     usecases.ListAttachmentsExecutor
	downloadUC usecases.DownloadAttachmentExecutor
	deleteUC   usecases.DeleteAttachmentExecutor
	logger     logger.Interface
}

func NewAttachmentHandler(
	uploadUC usecases.UploadAttachmentExecutor,
	listUC usecases.ListAttachmentsExecutor,
	downloadUC usecases.DownloadAttachmentExecutor,
	deleteUC usecases.DeleteAttachmentExecutor,
	logger logger.Interface,
) *AttachmentHandler {
	return &AttachmentHandler{
		uploadUC:   uploadUC,
		listUC:     listUC,
		downloadUC: downloadUC,
		deleteUC:   deleteUC,
		logger:     logger,
	}
}

// Upload handles POST /requests/:id/attachments (multipart form, field "file")
func (h *AttachmentHandler) Upload(c *gin.Context) {
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

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("multipart field 'file' is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded file", "error", err, "request_id", requestID)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.uploadUC.Execute(c.Request.Context(), usecases.UploadAttachmentCommand{
		RequestID:   requestID,
		UploaderID:  actorID,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "attachment uploaded successfully")
}

// List handles GET /requests/:id/attachments
func (h *AttachmentHandler) List(c *gin.Context) {
	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	actorID, _ := currentUserID(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListAttachmentsQuery{
		RequestID: requestID,
		ActorID:   actorID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "success", result)
}

// Download handles GET /attachments/:id and streams the stored blob.
func (h *AttachmentHandler) Download(c *gin.Context) {
	attachmentID, err := parseAttachmentID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	actorID, _ := currentUserID(c)

	result, err := h.downloadUC.Execute(c.Request.Context(), usecases.DownloadAttachmentQuery{
		AttachmentID: attachmentID,
		ActorID:      actorID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer result.Content.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", result.Attachment.FileName),
	}

	c.DataFromReader(http.StatusOK, result.Attachment.SizeBytes,
		result.Attachment.ContentType, result.Content, extraHeaders)
}

// Delete handles DELETE /attachments/:id
func (h *AttachmentHandler) Delete(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	attachmentID, err := parseAttachmentID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteAttachmentCommand{
		AttachmentID: attachmentID,
		ActorID:      actorID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "attachment deleted successfully", nil)
}
