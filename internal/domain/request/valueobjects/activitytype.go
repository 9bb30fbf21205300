package valueobjects

import "fmt"

// ActivityType identifies what a single audit record describes. The set is
// closed; unknown types are rejected at construction so the activity stream
// stays machine-readable.
type ActivityType string

const (
	ActivityRequestCreated    ActivityType = "request_created"
	ActivityDetailUpdated     ActivityType = "detail_updated"
	ActivityStatusChanged     ActivityType = "status_changed"
	ActivityPriorityChanged   ActivityType = "priority_changed"
	ActivityAssigneeChanged   ActivityType = "assignee_changed"
	ActivityDueDateChanged    ActivityType = "due_date_changed"
	ActivityCommentAdded      ActivityType = "comment_added"
	ActivityCommentUpdated    ActivityType = "comment_updated"
	ActivityCommentDeleted    ActivityType = "comment_deleted"
	ActivityAttachmentAdded   ActivityType = "attachment_added"
	ActivityAttachmentRemoved ActivityType = "attachment_removed"
)

var validActivityTypes = map[ActivityType]bool{
	ActivityRequestCreated:    true,
	ActivityDetailUpdated:     true,
	ActivityStatusChanged:     true,
	ActivityPriorityChanged:   true,
	ActivityAssigneeChanged:   true,
	ActivityDueDateChanged:    true,
	ActivityCommentAdded:      true,
	ActivityCommentUpdated:    true,
	ActivityCommentDeleted:    true,
	ActivityAttachmentAdded:   true,
	ActivityAttachmentRemoved: true,
}

func NewActivityType(s string) (ActivityType, error) {
	at := ActivityType(s)
	if !at.IsValid() {
		return "", fmt.Errorf("invalid activity type: %s", s)
	}
	return at, nil
}

func (at ActivityType) String() string {
	return string(at)
}

func (at ActivityType) IsValid() bool {
	return validActivityTypes[at]
}
