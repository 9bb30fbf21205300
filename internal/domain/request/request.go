package request

import (
	"fmt"
	"time"
	"unicode/utf8"

	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/biztime"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 10000
)

// Request is the aggregate root of the tracker. All state changes go through
// its methods so the status graph and field limits hold everywhere.
type Request struct {
	id          uint
	number      string
	title       string
	description string
	status      vo.Status
	priority    vo.Priority
	dueDate     *time.Time
	creatorID   uint
	assigneeID  *uint
	version     int
	baseVersion int // version of the persisted row this aggregate was built from
	createdAt   time.Time
	updatedAt   time.Time
	completedAt *time.Time
}

func NewRequest(
	title string,
	description string,
	priority vo.Priority,
	dueDate *time.Time,
	creatorID uint,
) (*Request, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	now := biztime.NowUTC()
	return &Request{
		title:       title,
		description: description,
		status:      vo.StatusNew,
		priority:    priority,
		dueDate:     dueDate,
		creatorID:   creatorID,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructRequest(
	id uint,
	number string,
	title string,
	description string,
	status vo.Status,
	priority vo.Priority,
	dueDate *time.Time,
	creatorID uint,
	assigneeID *uint,
	version int,
	createdAt, updatedAt time.Time,
	completedAt *time.Time,
) (*Request, error) {
	if id == 0 {
		return nil, fmt.Errorf("request ID cannot be zero")
	}
	if len(number) == 0 {
		return nil, fmt.Errorf("request number is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	return &Request{
		id:          id,
		number:      number,
		title:       title,
		description: description,
		status:      status,
		priority:    priority,
		dueDate:     dueDate,
		creatorID:   creatorID,
		assigneeID:  assigneeID,
		version:     version,
		baseVersion: version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		completedAt: completedAt,
	}, nil
}

func (r *Request) ID() uint                { return r.id }
func (r *Request) Number() string          { return r.number }
func (r *Request) Title() string           { return r.title }
func (r *Request) Description() string     { return r.description }
func (r *Request) Status() vo.Status       { return r.status }
func (r *Request) Priority() vo.Priority   { return r.priority }
func (r *Request) DueDate() *time.Time     { return r.dueDate }
func (r *Request) CreatorID() uint         { return r.creatorID }
func (r *Request) AssigneeID() *uint       { return r.assigneeID }
func (r *Request) Version() int            { return r.version }
func (r *Request) BaseVersion() int        { return r.baseVersion }
func (r *Request) CreatedAt() time.Time    { return r.createdAt }
func (r *Request) UpdatedAt() time.Time    { return r.updatedAt }
func (r *Request) CompletedAt() *time.Time { return r.completedAt }

func (r *Request) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("request ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("request ID cannot be zero")
	}
	r.id = id
	return nil
}

func (r *Request) SetNumber(number string) error {
	if len(r.number) > 0 {
		return fmt.Errorf("request number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("request number cannot be empty")
	}
	r.number = number
	return nil
}

// SyncVersion records the current version as persisted. Repositories call it
// after a successful write so the next update matches the stored row.
func (r *Request) SyncVersion() {
	r.baseVersion = r.version
}

// UpdateDetails replaces the title and description. Empty arguments keep the
// current value so callers can update one field at a time.
func (r *Request) UpdateDetails(title, description string) error {
	if title == "" && description == "" {
		return fmt.Errorf("nothing to update")
	}
	if title != "" {
		if err := validateTitle(title); err != nil {
			return err
		}
		r.title = title
	}
	if description != "" {
		if err := validateDescription(description); err != nil {
			return err
		}
		r.description = description
	}
	r.touch()
	return nil
}

// ChangeStatus moves the request along the lifecycle graph. Re-applying the
// current status is rejected so every recorded change is a real one.
func (r *Request) ChangeStatus(next vo.Status) error {
	if !next.IsValid() {
		return fmt.Errorf("invalid status: %s", next)
	}
	if r.status == next {
		return fmt.Errorf("request is already %s", next)
	}
	if !r.status.CanTransitionTo(next) {
		return fmt.Errorf("cannot transition from %s to %s", r.status, next)
	}

	r.status = next
	r.touch()

	if next.IsCompleted() {
		now := biztime.NowUTC()
		r.completedAt = &now
	} else {
		r.completedAt = nil
	}
	return nil
}

func (r *Request) ChangePriority(next vo.Priority) error {
	if !next.IsValid() {
		return fmt.Errorf("invalid priority: %s", next)
	}
	if r.priority == next {
		return fmt.Errorf("request priority is already %s", next)
	}

	r.priority = next
	r.touch()
	return nil
}

// AssignTo sets the assignee. Eligibility of the assignee (role, status) is
// checked by the usecase; the aggregate only guards against no-ops.
func (r *Request) AssignTo(assigneeID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}
	if r.assigneeID != nil && *r.assigneeID == assigneeID {
		return fmt.Errorf("request is already assigned to this user")
	}

	r.assigneeID = &assigneeID
	r.touch()
	return nil
}

func (r *Request) Unassign() error {
	if r.assigneeID == nil {
		return fmt.Errorf("request is not assigned")
	}
	r.assigneeID = nil
	r.touch()
	return nil
}

// ChangeDueDate sets or clears the due date. Past dates are allowed; overdue
// is always derived from the current time, never stored.
func (r *Request) ChangeDueDate(dueDate *time.Time) error {
	if equalTimePtr(r.dueDate, dueDate) {
		return fmt.Errorf("due date is unchanged")
	}
	r.dueDate = dueDate
	r.touch()
	return nil
}

func (r *Request) IsOverdue(now time.Time) bool {
	if r.dueDate == nil {
		return false
	}
	if r.status.IsTerminal() {
		return false
	}
	return now.After(*r.dueDate)
}

func (r *Request) IsCreator(userID uint) bool {
	return r.creatorID == userID
}

func (r *Request) IsAssignee(userID uint) bool {
	return r.assigneeID != nil && *r.assigneeID == userID
}

// CanBeViewedBy reports whether a user with the given role may read this
// request. Staff see every request; users and guests only those they created
// or are assigned to.
func (r *Request) CanBeViewedBy(userID uint, role authorization.UserRole) bool {
	caps := authorization.EvaluateRequestCapabilities(role, r.IsCreator(userID), r.IsAssignee(userID), r.status.String())
	return caps.CanView
}

func (r *Request) touch() {
	r.updatedAt = biztime.NowUTC()
	r.version++
}

func validateTitle(title string) error {
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) == 0 {
		return fmt.Errorf("description is required")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	return nil
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
