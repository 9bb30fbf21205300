package dto

import (
	"time"

	"github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/biztime"
	"github.com/reque-io/reque/internal/shared/mapper"
)

type RequestDTO struct {
	ID              uint                       `json:"id"`
	Number          string                     `json:"number"`
	Title           string                     `json:"title"`
	Description     string                     `json:"description"`
	DescriptionHTML string                     `json:"description_html"`
	Status          string                     `json:"status"`
	Priority        string                     `json:"priority"`
	DueDate         *time.Time                 `json:"due_date"`
	CreatorID       uint                       `json:"creator_id"`
	AssigneeID      *uint                      `json:"assignee_id"`
	IsOverdue       bool                       `json:"is_overdue"`
	Version         int                        `json:"version"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
	CompletedAt     *time.Time                 `json:"completed_at"`
	Comments        []CommentDTO               `json:"comments"`
	Attachments     []AttachmentDTO            `json:"attachments"`
	Capabilities    authorization.Capabilities `json:"capabilities"`
}

type CommentDTO struct {
	ID          uint       `json:"id"`
	RequestID   uint       `json:"request_id"`
	AuthorID    uint       `json:"author_id"`
	Content     string     `json:"content"`
	ContentHTML string     `json:"content_html"`
	EditedAt    *time.Time `json:"edited_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type RequestListItemDTO struct {
	ID         uint       `json:"id"`
	Number     string     `json:"number"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	Priority   string     `json:"priority"`
	DueDate    *time.Time `json:"due_date"`
	CreatorID  uint       `json:"creator_id"`
	AssigneeID *uint      `json:"assignee_id"`
	IsOverdue  bool       `json:"is_overdue"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type ActivityDTO struct {
	ID        uint      `json:"id"`
	RequestID uint      `json:"request_id"`
	Type      string    `json:"type"`
	Field     string    `json:"field,omitempty"`
	OldValue  *string   `json:"old_value"`
	NewValue  *string   `json:"new_value"`
	ActorID   uint      `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}

type AttachmentDTO struct {
	ID          uint      `json:"id"`
	RequestID   uint      `json:"request_id"`
	UploaderID  uint      `json:"uploader_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Checksum    string    `json:"checksum"`
	CreatedAt   time.Time `json:"created_at"`
}

type StatsDTO struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByPriority map[string]int64 `json:"by_priority"`
	Overdue    int64            `json:"overdue"`
}

// ToRequestDTO assembles the detail view. The HTML renderings are produced by
// the usecase so this package stays free of service dependencies.
func ToRequestDTO(
	r *request.Request,
	descriptionHTML string,
	comments []CommentDTO,
	attachments []AttachmentDTO,
	capabilities authorization.Capabilities,
) *RequestDTO {
	if r == nil {
		return nil
	}
	if comments == nil {
		comments = []CommentDTO{}
	}
	if attachments == nil {
		attachments = []AttachmentDTO{}
	}

	return &RequestDTO{
		ID:              r.ID(),
		Number:          r.Number(),
		Title:           r.Title(),
		Description:     r.Description(),
		DescriptionHTML: descriptionHTML,
		Status:          r.Status().String(),
		Priority:        r.Priority().String(),
		DueDate:         r.DueDate(),
		CreatorID:       r.CreatorID(),
		AssigneeID:      r.AssigneeID(),
		IsOverdue:       r.IsOverdue(biztime.NowUTC()),
		Version:         r.Version(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
		CompletedAt:     r.CompletedAt(),
		Comments:        comments,
		Attachments:     attachments,
		Capabilities:    capabilities,
	}
}

func ToCommentDTO(c *request.Comment, contentHTML string) CommentDTO {
	return CommentDTO{
		ID:          c.ID(),
		RequestID:   c.RequestID(),
		AuthorID:    c.AuthorID(),
		Content:     c.Content(),
		ContentHTML: contentHTML,
		EditedAt:    c.EditedAt(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func ToRequestListItemDTO(r *request.Request) RequestListItemDTO {
	return RequestListItemDTO{
		ID:         r.ID(),
		Number:     r.Number(),
		Title:      r.Title(),
		Status:     r.Status().String(),
		Priority:   r.Priority().String(),
		DueDate:    r.DueDate(),
		CreatorID:  r.CreatorID(),
		AssigneeID: r.AssigneeID(),
		IsOverdue:  r.IsOverdue(biztime.NowUTC()),
		CreatedAt:  r.CreatedAt(),
		UpdatedAt:  r.UpdatedAt(),
	}
}

func ToRequestListItemDTOs(requests []*request.Request) []RequestListItemDTO {
	return mapper.MapSlice(requests, ToRequestListItemDTO)
}

func ToActivityDTO(a *request.Activity) ActivityDTO {
	return ActivityDTO{
		ID:        a.ID(),
		RequestID: a.RequestID(),
		Type:      a.ActivityType().String(),
		Field:     a.Field(),
		OldValue:  a.OldValue(),
		NewValue:  a.NewValue(),
		ActorID:   a.ActorID(),
		CreatedAt: a.CreatedAt(),
	}
}

func ToActivityDTOs(activities []*request.Activity) []ActivityDTO {
	return mapper.MapSlice(activities, ToActivityDTO)
}

func ToAttachmentDTO(a *request.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:          a.ID(),
		RequestID:   a.RequestID(),
		UploaderID:  a.UploaderID(),
		FileName:    a.FileName(),
		ContentType: a.ContentType(),
		SizeBytes:   a.SizeBytes(),
		Checksum:    a.Checksum(),
		CreatedAt:   a.CreatedAt(),
	}
}

func ToAttachmentDTOs(attachments []*request.Attachment) []AttachmentDTO {
	return mapper.MapSlice(attachments, ToAttachmentDTO)
}

func ToStatsDTO(s *request.Stats) *StatsDTO {
	if s == nil {
		return nil
	}

	byStatus := make(map[string]int64, len(s.ByStatus))
	for status, count := range s.ByStatus {
		byStatus[status.String()] = count
	}
	byPriority := make(map[string]int64, len(s.ByPriority))
	for priority, count := range s.ByPriority {
		byPriority[priority.String()] = count
	}

	return &StatsDTO{
		Total:      s.Total,
		ByStatus:   byStatus,
		ByPriority: byPriority,
		Overdue:    s.Overdue,
	}
}
