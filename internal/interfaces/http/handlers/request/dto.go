package request

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reque-io/reque/internal/application/request/usecases"
	"github.com/reque-io/reque/internal/shared/constants"
	"github.com/reque-io/reque/internal/shared/errors"
)

type CreateRequestRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"required,max=10000"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=normal high urgent"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func (r *CreateRequestRequest) ToCommand(creatorID uint) usecases.CreateRequestCommand {
	return usecases.CreateRequestCommand{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
		CreatorID:   creatorID,
	}
}

type UpdateRequestRequest struct {
	Title        string     `json:"title" binding:"omitempty,max=200"`
	Description  string     `json:"description" binding:"omitempty,max=10000"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	ClearDueDate bool       `json:"clear_due_date"`
}

func (r *UpdateRequestRequest) ToCommand(requestID, actorID uint) usecases.UpdateRequestCommand {
	return usecases.UpdateRequestCommand{
		RequestID:    requestID,
		ActorID:      actorID,
		Title:        r.Title,
		Description:  r.Description,
		DueDate:      r.DueDate,
		ClearDueDate: r.ClearDueDate,
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new in_progress under_review completed rejected"`
}

type ChangePriorityRequest struct {
	Priority string `json:"priority" binding:"required,oneof=normal high urgent"`
}

// AssignRequestRequest carries the new assignee; a null assignee_id
// unassigns the request.
type AssignRequestRequest struct {
	AssigneeID *uint `json:"assignee_id"`
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// parseListQuery maps list filters from the query string. Unknown values are
// passed through; the usecase validates enums so the error taxonomy stays in
// one place.
func parseListQuery(c *gin.Context, actorID uint) usecases.ListRequestsQuery {
	query := usecases.ListRequestsQuery{
		ActorID:   actorID,
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constants.DefaultPageSize)))

	if status := c.Query("status"); status != "" {
		query.Status = &status
	}
	if priority := c.Query("priority"); priority != "" {
		query.Priority = &priority
	}
	if creator := c.Query("creator_id"); creator != "" {
		if id, err := strconv.ParseUint(creator, 10, 32); err == nil {
			creatorID := uint(id)
			query.CreatorID = &creatorID
		}
	}
	if assignee := c.Query("assignee_id"); assignee != "" {
		if id, err := strconv.ParseUint(assignee, 10, 32); err == nil {
			assigneeID := uint(id)
			query.AssigneeID = &assigneeID
		}
	}
	if overdue := c.Query("overdue"); overdue != "" {
		if v, err := strconv.ParseBool(overdue); err == nil {
			query.Overdue = &v
		}
	}
	if dueBefore := c.Query("due_before"); dueBefore != "" {
		query.DueBefore = &dueBefore
	}

	return query
}

func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constants.DefaultPageSize)))
	return page, pageSize
}

func parseRequestID(c *gin.Context) (uint, error) {
	return parseIDParam(c, "id", "invalid request ID")
}

func parseCommentID(c *gin.Context) (uint, error) {
	return parseIDParam(c, "id", "invalid comment ID")
}

func parseAttachmentID(c *gin.Context) (uint, error) {
	return parseIDParam(c, "id", "invalid attachment ID")
}

func parseIDParam(c *gin.Context, name, msg string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError(msg)
	}
	return uint(id), nil
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
