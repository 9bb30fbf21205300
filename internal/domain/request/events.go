package request

import (
	"fmt"

	"github.com/reque-io/reque/internal/domain/shared/events"
	"github.com/reque-io/reque/internal/shared/biztime"
)

// Event types
const (
	EventTypeRequestCreated         = "request.created"
	EventTypeRequestAssigned        = "request.assigned"
	EventTypeRequestStatusChanged   = "request.status.changed"
	EventTypeRequestPriorityChanged = "request.priority.changed"
	EventTypeCommentAdded           = "request.comment.added"
	EventTypeAttachmentAdded        = "request.attachment.added"
)

// Events are built by the usecases after the transaction commits, so they
// always carry persisted IDs and numbers. They feed best-effort side effects
// (email) only; the audit trail is written transactionally, not from events.

type RequestCreatedEvent struct {
	events.BaseEvent
	RequestID uint   `json:"request_id"`
	Number    string `json:"number"`
	Title     string `json:"title"`
	Priority  string `json:"priority"`
	CreatorID uint   `json:"creator_id"`
}

func NewRequestCreatedEvent(requestID uint, number, title, priority string, creatorID uint) RequestCreatedEvent {
	return RequestCreatedEvent{
		BaseEvent: newBaseEvent(requestID, EventTypeRequestCreated),
		RequestID: requestID,
		Number:    number,
		Title:     title,
		Priority:  priority,
		CreatorID: creatorID,
	}
}

type RequestAssignedEvent struct {
	events.BaseEvent
	RequestID  uint   `json:"request_id"`
	Number     string `json:"number"`
	Title      string `json:"title"`
	AssigneeID uint   `json:"assignee_id"`
	AssignedBy uint   `json:"assigned_by"`
}

func NewRequestAssignedEvent(requestID uint, number, title string, assigneeID, assignedBy uint) RequestAssignedEvent {
	return RequestAssignedEvent{
		BaseEvent:  newBaseEvent(requestID, EventTypeRequestAssigned),
		RequestID:  requestID,
		Number:     number,
		Title:      title,
		AssigneeID: assigneeID,
		AssignedBy: assignedBy,
	}
}

type RequestStatusChangedEvent struct {
	events.BaseEvent
	RequestID  uint   `json:"request_id"`
	Number     string `json:"number"`
	Title      string `json:"title"`
	OldStatus  string `json:"old_status"`
	NewStatus  string `json:"new_status"`
	ChangedBy  uint   `json:"changed_by"`
	CreatorID  uint   `json:"creator_id"`
	AssigneeID *uint  `json:"assignee_id,omitempty"`
}

func NewRequestStatusChangedEvent(
	requestID uint,
	number, title string,
	oldStatus, newStatus string,
	changedBy, creatorID uint,
	assigneeID *uint,
) RequestStatusChangedEvent {
	return RequestStatusChangedEvent{
		BaseEvent:  newBaseEvent(requestID, EventTypeRequestStatusChanged),
		RequestID:  requestID,
		Number:     number,
		Title:      title,
		OldStatus:  oldStatus,
		NewStatus:  newStatus,
		ChangedBy:  changedBy,
		CreatorID:  creatorID,
		AssigneeID: assigneeID,
	}
}

type RequestPriorityChangedEvent struct {
	events.BaseEvent
	RequestID   uint   `json:"request_id"`
	Number      string `json:"number"`
	OldPriority string `json:"old_priority"`
	NewPriority string `json:"new_priority"`
	ChangedBy   uint   `json:"changed_by"`
	CreatorID   uint   `json:"creator_id"`
}

func NewRequestPriorityChangedEvent(
	requestID uint,
	number string,
	oldPriority, newPriority string,
	changedBy, creatorID uint,
) RequestPriorityChangedEvent {
	return RequestPriorityChangedEvent{
		BaseEvent:   newBaseEvent(requestID, EventTypeRequestPriorityChanged),
		RequestID:   requestID,
		Number:      number,
		OldPriority: oldPriority,
		NewPriority: newPriority,
		ChangedBy:   changedBy,
		CreatorID:   creatorID,
	}
}

type CommentAddedEvent struct {
	events.BaseEvent
	RequestID  uint   `json:"request_id"`
	Number     string `json:"number"`
	Title      string `json:"title"`
	CommentID  uint   `json:"comment_id"`
	AuthorID   uint   `json:"author_id"`
	CreatorID  uint   `json:"creator_id"`
	AssigneeID *uint  `json:"assignee_id,omitempty"`
}

func NewCommentAddedEvent(
	requestID uint,
	number, title string,
	commentID, authorID, creatorID uint,
	assigneeID *uint,
) CommentAddedEvent {
	return CommentAddedEvent{
		BaseEvent:  newBaseEvent(requestID, EventTypeCommentAdded),
		RequestID:  requestID,
		Number:     number,
		Title:      title,
		CommentID:  commentID,
		AuthorID:   authorID,
		CreatorID:  creatorID,
		AssigneeID: assigneeID,
	}
}

type AttachmentAddedEvent struct {
	events.BaseEvent
	RequestID    uint   `json:"request_id"`
	Number       string `json:"number"`
	AttachmentID uint   `json:"attachment_id"`
	FileName     string `json:"file_name"`
	UploaderID   uint   `json:"uploader_id"`
}

func NewAttachmentAddedEvent(requestID uint, number string, attachmentID uint, fileName string, uploaderID uint) AttachmentAddedEvent {
	return AttachmentAddedEvent{
		BaseEvent:    newBaseEvent(requestID, EventTypeAttachmentAdded),
		RequestID:    requestID,
		Number:       number,
		AttachmentID: attachmentID,
		FileName:     fileName,
		UploaderID:   uploaderID,
	}
}

func newBaseEvent(requestID uint, eventType string) events.BaseEvent {
	return events.BaseEvent{
		AggregateID: fmt.Sprintf("request:%d", requestID),
		EventType:   eventType,
		OccurredAt:  biztime.NowUTC(),
		Version:     1,
	}
}
