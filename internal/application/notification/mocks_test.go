package notification

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reque-io/reque/internal/domain/user"
	vo "github.com/reque-io/reque/internal/domain/user/valueobjects"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/errors"
	"github.com/reque-io/reque/internal/shared/logger"
)

type mockUserDirectory struct {
	GetByIDFunc func(ctx context.Context, id uint) (*user.User, error)

	mu      sync.Mutex
	lookups []uint
}

func (m *mockUserDirectory) GetByID(ctx context.Context, id uint) (*user.User, error) {
	m.mu.Lock()
	m.lookups = append(m.lookups, id)
	m.mu.Unlock()

	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserDirectory) lookupCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lookups)
}

type sentMail struct {
	kind       string
	to         string
	number     string
	title      string
	oldStatus  string
	newStatus  string
	authorName string
}

type mockMailer struct {
	SendRequestAssignedEmailFunc      func(ctx context.Context, to, number, title string) error
	SendRequestStatusChangedEmailFunc func(ctx context.Context, to, number, title, oldStatus, newStatus string) error
	SendCommentAddedEmailFunc         func(ctx context.Context, to, number, title, authorName string) error
	SendAccountSuspendedEmailFunc     func(ctx context.Context, to string) error

	mu   sync.Mutex
	sent []sentMail
}

func (m *mockMailer) record(mail sentMail) {
	m.mu.Lock()
	m.sent = append(m.sent, mail)
	m.mu.Unlock()
}

func (m *mockMailer) sentMails() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

func (m *mockMailer) SendRequestAssignedEmail(ctx context.Context, to, number, title string) error {
	m.record(sentMail{kind: "assigned", to: to, number: number, title: title})
	if m.SendRequestAssignedEmailFunc != nil {
		return m.SendRequestAssignedEmailFunc(ctx, to, number, title)
	}
	return nil
}

func (m *mockMailer) SendRequestStatusChangedEmail(ctx context.Context, to, number, title, oldStatus, newStatus string) error {
	m.record(sentMail{kind: "status", to: to, number: number, title: title, oldStatus: oldStatus, newStatus: newStatus})
	if m.SendRequestStatusChangedEmailFunc != nil {
		return m.SendRequestStatusChangedEmailFunc(ctx, to, number, title, oldStatus, newStatus)
	}
	return nil
}

func (m *mockMailer) SendCommentAddedEmail(ctx context.Context, to, number, title, authorName string) error {
	m.record(sentMail{kind: "comment", to: to, number: number, title: title, authorName: authorName})
	if m.SendCommentAddedEmailFunc != nil {
		return m.SendCommentAddedEmailFunc(ctx, to, number, title, authorName)
	}
	return nil
}

func (m *mockMailer) SendAccountSuspendedEmail(ctx context.Context, to string) error {
	m.record(sentMail{kind: "suspended", to: to})
	if m.SendAccountSuspendedEmailFunc != nil {
		return m.SendAccountSuspendedEmailFunc(ctx, to)
	}
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)            {}
func (m *mockLogger) Info(msg string, args ...any)             {}
func (m *mockLogger) Warn(msg string, args ...any)             {}
func (m *mockLogger) Error(msg string, args ...any)            {}
func (m *mockLogger) Fatal(msg string, args ...any)            {}
func (m *mockLogger) With(args ...any) logger.Interface        { return m }
func (m *mockLogger) Named(name string) logger.Interface       { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)   {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)   {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...any)  {}

func newRecipient(t *testing.T, id uint, email string) *user.User {
	t.Helper()
	return newRecipientWithStatus(t, id, email, vo.StatusActive)
}

func newRecipientWithStatus(t *testing.T, id uint, email string, status vo.Status) *user.User {
	t.Helper()

	addr, err := vo.NewEmail(email)
	require.NoError(t, err)
	name, err := vo.NewName(fmt.Sprintf("User %c", 'A'+rune(id%26)))
	require.NoError(t, err)

	account, err := user.ReconstructUserWithAuth(
		id,
		fmt.Sprintf("00000000-0000-0000-0000-%012d", id),
		addr,
		name,
		"",
		authorization.RoleUser,
		status,
		1,
		time.Now().Add(-24*time.Hour),
		time.Now().Add(-24*time.Hour),
		nil,
	)
	require.NoError(t, err)
	return account
}

func directoryWith(accounts ...*user.User) *mockUserDirectory {
	return &mockUserDirectory{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			for _, account := range accounts {
				if account.ID() == id {
					return account, nil
				}
			}
			return nil, errors.NewNotFoundError("user not found")
		},
	}
}
