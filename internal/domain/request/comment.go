package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/reque-io/reque/internal/shared/biztime"
)

const maxCommentLength = 5000

// Comment is free text attached to a request. editedAt stays nil until the
// first edit so the UI can mark reworded comments.
type Comment struct {
	id        uint
	requestID uint
	authorID  uint
	content   string
	createdAt time.Time
	updatedAt time.Time
	editedAt  *time.Time
}

func NewComment(requestID, authorID uint, content string) (*Comment, error) {
	if requestID == 0 {
		return nil, fmt.Errorf("request ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	trimmed := strings.TrimSpace(content)
	if err := validateCommentContent(trimmed); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Comment{
		requestID: requestID,
		authorID:  authorID,
		content:   trimmed,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructComment(
	id uint,
	requestID uint,
	authorID uint,
	content string,
	createdAt, updatedAt time.Time,
	editedAt *time.Time,
) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if requestID == 0 {
		return nil, fmt.Errorf("request ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}

	return &Comment{
		id:        id,
		requestID: requestID,
		authorID:  authorID,
		content:   content,
		createdAt: createdAt,
		updatedAt: updatedAt,
		editedAt:  editedAt,
	}, nil
}

func (c *Comment) ID() uint             { return c.id }
func (c *Comment) RequestID() uint      { return c.requestID }
func (c *Comment) AuthorID() uint       { return c.authorID }
func (c *Comment) Content() string      { return c.content }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
func (c *Comment) UpdatedAt() time.Time { return c.updatedAt }
func (c *Comment) EditedAt() *time.Time { return c.editedAt }

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}

func (c *Comment) IsAuthor(userID uint) bool {
	return c.authorID == userID
}

func (c *Comment) UpdateContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if err := validateCommentContent(trimmed); err != nil {
		return err
	}

	now := biztime.NowUTC()
	c.content = trimmed
	c.updatedAt = now
	c.editedAt = &now
	return nil
}

func validateCommentContent(content string) error {
	if len(content) == 0 {
		return fmt.Errorf("content cannot be empty")
	}
	if len(content) > maxCommentLength {
		return fmt.Errorf("content exceeds maximum length of %d characters", maxCommentLength)
	}
	return nil
}
