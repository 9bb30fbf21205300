package user

import (
	"context"

	"github.com/reque-io/reque/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
	GetByUUID(ctx context.Context, userUUID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByVerificationTokenHash(ctx context.Context, tokenHash string) (*User, error)
	GetByPasswordResetTokenHash(ctx context.Context, tokenHash string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
	ListAssignable(ctx context.Context) ([]*User, error)
}

// ListFilter narrows and pages the user list. Search matches against email
// and name.
type ListFilter struct {
	Role   string
	Status string
	Search string
	query.PageFilter
	query.SortFilter
}
