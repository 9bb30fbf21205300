package request

import (
	"context"
	"time"

	vo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/shared/query"
)

type Repository interface {
	Save(ctx context.Context, req *Request) error
	Update(ctx context.Context, req *Request) error
	Delete(ctx context.Context, requestID uint) error
	GetByID(ctx context.Context, requestID uint) (*Request, error)
	GetByNumber(ctx context.Context, number string) (*Request, error)
	List(ctx context.Context, filter Filter) ([]*Request, int64, error)
	GetStats(ctx context.Context, filter StatsFilter) (*Stats, error)
}

// Filter narrows List results. Role scoping is done by the usecase: for
// non-staff callers it forces CreatorID (or AssigneeID) to the caller before
// the filter reaches the repository.
type Filter struct {
	Status     *vo.Status
	Priority   *vo.Priority
	CreatorID  *uint
	AssigneeID *uint
	Overdue    *bool
	DueBefore  *time.Time // inclusive upper bound on due_date
	Search     string
	ViewerID   *uint // creator-or-assignee scope for non-staff callers
	query.PageFilter
	query.SortFilter
}

// StatsFilter scopes GetStats the same way List is scoped.
type StatsFilter struct {
	ViewerID *uint
}

type Stats struct {
	Total      int64                 `json:"total"`
	ByStatus   map[vo.Status]int64   `json:"by_status"`
	ByPriority map[vo.Priority]int64 `json:"by_priority"`
	Overdue    int64                 `json:"overdue"`
}

type CommentRepository interface {
	Save(ctx context.Context, comment *Comment) error
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, commentID uint) error
	GetByID(ctx context.Context, commentID uint) (*Comment, error)
	ListByRequestID(ctx context.Context, requestID uint) ([]*Comment, error)
	DeleteByRequestID(ctx context.Context, requestID uint) error
}

// ActivityRepository is append-only: no update or single-record delete.
// DeleteByRequestID exists solely for cascading request deletion.
type ActivityRepository interface {
	Save(ctx context.Context, activity *Activity) error
	ListByRequestID(ctx context.Context, requestID uint, page query.PageFilter) ([]*Activity, int64, error)
	DeleteByRequestID(ctx context.Context, requestID uint) error
}

type AttachmentRepository interface {
	Save(ctx context.Context, attachment *Attachment) error
	Delete(ctx context.Context, attachmentID uint) error
	GetByID(ctx context.Context, attachmentID uint) (*Attachment, error)
	ListByRequestID(ctx context.Context, requestID uint) ([]*Attachment, error)
	DeleteByRequestID(ctx context.Context, requestID uint) error
}
