package usecases

import (
	"context"
	"io"

	"github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/domain/shared/events"
	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/logger"
	"github.com/reque-io/reque/internal/shared/query"
)

type mockRequestRepository struct {
	SaveFunc        func(ctx context.Context, req *request.Request) error
	UpdateFunc      func(ctx context.Context, req *request.Request) error
	DeleteFunc      func(ctx context.Context, requestID uint) error
	GetByIDFunc     func(ctx context.Context, requestID uint) (*request.Request, error)
	GetByNumberFunc func(ctx context.Context, number string) (*request.Request, error)
	ListFunc        func(ctx context.Context, filter request.Filter) ([]*request.Request, int64, error)
	GetStatsFunc    func(ctx context.Context, filter request.StatsFilter) (*request.Stats, error)
}

func (m *mockRequestRepository) Save(ctx context.Context, req *request.Request) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, req)
	}
	return nil
}

func (m *mockRequestRepository) Update(ctx context.Context, req *request.Request) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, req)
	}
	return nil
}

func (m *mockRequestRepository) Delete(ctx context.Context, requestID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, requestID)
	}
	return nil
}

func (m *mockRequestRepository) GetByID(ctx context.Context, requestID uint) (*request.Request, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, requestID)
	}
	return nil, nil
}

func (m *mockRequestRepository) GetByNumber(ctx context.Context, number string) (*request.Request, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, nil
}

func (m *mockRequestRepository) List(ctx context.Context, filter request.Filter) ([]*request.Request, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockRequestRepository) GetStats(ctx context.Context, filter request.StatsFilter) (*request.Stats, error) {
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc(ctx, filter)
	}
	return nil, nil
}

type mockCommentRepository struct {
	SaveFunc              func(ctx context.Context, comment *request.Comment) error
	UpdateFunc            func(ctx context.Context, comment *request.Comment) error
	DeleteFunc            func(ctx context.Context, commentID uint) error
	GetByIDFunc           func(ctx context.Context, commentID uint) (*request.Comment, error)
	ListByRequestIDFunc   func(ctx context.Context, requestID uint) ([]*request.Comment, error)
	DeleteByRequestIDFunc func(ctx context.Context, requestID uint) error
}

func (m *mockCommentRepository) Save(ctx context.Context, comment *request.Comment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) Update(ctx context.Context, comment *request.Comment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, commentID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, commentID)
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, commentID uint) (*request.Comment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, commentID)
	}
	return nil, nil
}

func (m *mockCommentRepository) ListByRequestID(ctx context.Context, requestID uint) ([]*request.Comment, error) {
	if m.ListByRequestIDFunc != nil {
		return m.ListByRequestIDFunc(ctx, requestID)
	}
	return nil, nil
}

func (m *mockCommentRepository) DeleteByRequestID(ctx context.Context, requestID uint) error {
	if m.DeleteByRequestIDFunc != nil {
		return m.DeleteByRequestIDFunc(ctx, requestID)
	}
	return nil
}

type mockActivityRepository struct {
	SaveFunc              func(ctx context.Context, activity *request.Activity) error
	ListByRequestIDFunc   func(ctx context.Context, requestID uint, page query.PageFilter) ([]*request.Activity, int64, error)
	DeleteByRequestIDFunc func(ctx context.Context, requestID uint) error
}

func (m *mockActivityRepository) Save(ctx context.Context, activity *request.Activity) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, activity)
	}
	return nil
}

func (m *mockActivityRepository) ListByRequestID(ctx context.Context, requestID uint, page query.PageFilter) ([]*request.Activity, int64, error) {
	if m.ListByRequestIDFunc != nil {
		return m.ListByRequestIDFunc(ctx, requestID, page)
	}
	return nil, 0, nil
}

func (m *mockActivityRepository) DeleteByRequestID(ctx context.Context, requestID uint) error {
	if m.DeleteByRequestIDFunc != nil {
		return m.DeleteByRequestIDFunc(ctx, requestID)
	}
	return nil
}

type mockAttachmentRepository struct {
	SaveFunc              func(ctx context.Context, attachment *request.Attachment) error
	DeleteFunc            func(ctx context.Context, attachmentID uint) error
	GetByIDFunc           func(ctx context.Context, attachmentID uint) (*request.Attachment, error)
	ListByRequestIDFunc   func(ctx context.Context, requestID uint) ([]*request.Attachment, error)
	DeleteByRequestIDFunc func(ctx context.Context, requestID uint) error
}

func (m *mockAttachmentRepository) Save(ctx context.Context, attachment *request.Attachment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, attachment)
	}
	return nil
}

func (m *mockAttachmentRepository) Delete(ctx context.Context, attachmentID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, attachmentID)
	}
	return nil
}

func (m *mockAttachmentRepository) GetByID(ctx context.Context, attachmentID uint) (*request.Attachment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, attachmentID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) ListByRequestID(ctx context.Context, requestID uint) ([]*request.Attachment, error) {
	if m.ListByRequestIDFunc != nil {
		return m.ListByRequestIDFunc(ctx, requestID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) DeleteByRequestID(ctx context.Context, requestID uint) error {
	if m.DeleteByRequestIDFunc != nil {
		return m.DeleteByRequestIDFunc(ctx, requestID)
	}
	return nil
}

type mockUserRepository struct {
	CreateFunc                      func(ctx context.Context, u *user.User) error
	UpdateFunc                      func(ctx context.Context, u *user.User) error
	GetByIDFunc                     func(ctx context.Context, id uint) (*user.User, error)
	GetByIDsFunc                    func(ctx context.Context, ids []uint) ([]*user.User, error)
	GetByUUIDFunc                   func(ctx context.Context, userUUID string) (*user.User, error)
	GetByEmailFunc                  func(ctx context.Context, email string) (*user.User, error)
	GetByVerificationTokenHashFunc  func(ctx context.Context, tokenHash string) (*user.User, error)
	GetByPasswordResetTokenHashFunc func(ctx context.Context, tokenHash string) (*user.User, error)
	ExistsByEmailFunc               func(ctx context.Context, email string) (bool, error)
	ListFunc                        func(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error)
	ListAssignableFunc              func(ctx context.Context) ([]*user.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByUUID(ctx context.Context, userUUID string) (*user.User, error) {
	if m.GetByUUIDFunc != nil {
		return m.GetByUUIDFunc(ctx, userUUID)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByVerificationTokenHash(ctx context.Context, tokenHash string) (*user.User, error) {
	if m.GetByVerificationTokenHashFunc != nil {
		return m.GetByVerificationTokenHashFunc(ctx, tokenHash)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByPasswordResetTokenHash(ctx context.Context, tokenHash string) (*user.User, error) {
	if m.GetByPasswordResetTokenHashFunc != nil {
		return m.GetByPasswordResetTokenHashFunc(ctx, tokenHash)
	}
	return nil, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) ListAssignable(ctx context.Context) ([]*user.User, error) {
	if m.ListAssignableFunc != nil {
		return m.ListAssignableFunc(ctx)
	}
	return nil, nil
}

type mockNumberGenerator struct {
	GenerateFunc func(ctx context.Context) (string, error)
}

func (m *mockNumberGenerator) Generate(ctx context.Context) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return "REQ-20240101-0001", nil
}

// mockTransactionManager runs the callback inline so activity writes land on
// the same mocks as the rest of the test.
type mockTransactionManager struct {
	RunInTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockEventDispatcher struct {
	PublishFunc    func(event events.DomainEvent) error
	PublishAllFunc func(evts []events.DomainEvent) error
}

func (m *mockEventDispatcher) Publish(event events.DomainEvent) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(event)
	}
	return nil
}

func (m *mockEventDispatcher) PublishAll(evts []events.DomainEvent) error {
	if m.PublishAllFunc != nil {
		return m.PublishAllFunc(evts)
	}
	return nil
}

type mockBlobStore struct {
	PutFunc    func(ctx context.Context, key string, r io.Reader, maxBytes int64) (int64, string, error)
	GetFunc    func(ctx context.Context, key string) (io.ReadCloser, error)
	DeleteFunc func(ctx context.Context, key string) error
}

func (m *mockBlobStore) Put(ctx context.Context, key string, r io.Reader, maxBytes int64) (int64, string, error) {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, r, maxBytes)
	}
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return 0, "", err
	}
	return n, "checksum", nil
}

func (m *mockBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return io.NopCloser(nil), nil
}

func (m *mockBlobStore) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

// mockRenderer wraps markdown in a p tag, enough to assert that rendering
// happened without pulling the real pipeline into usecase tests.
type mockRenderer struct {
	RenderFunc func(markdown string) (string, error)
}

func (m *mockRenderer) Render(markdown string) (string, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(markdown)
	}
	return "<p>" + markdown + "</p>", nil
}

func (m *mockRenderer) Sanitize(htmlContent string) string {
	return htmlContent
}

type mockLogger struct {
	DebugFunc  func(msg string, args ...any)
	InfoFunc   func(msg string, args ...any)
	WarnFunc   func(msg string, args ...any)
	ErrorFunc  func(msg string, args ...any)
	FatalFunc  func(msg string, args ...any)
	DebugwFunc func(msg string, keysAndValues ...any)
	InfowFunc  func(msg string, keysAndValues ...any)
	WarnwFunc  func(msg string, keysAndValues ...any)
	ErrorwFunc func(msg string, keysAndValues ...any)
	FatalwFunc func(msg string, keysAndValues ...any)
}

func (m *mockLogger) Debug(msg string, args ...any) {
	if m.DebugFunc != nil {
		m.DebugFunc(msg, args...)
	}
}

func (m *mockLogger) Info(msg string, args ...any) {
	if m.InfoFunc != nil {
		m.InfoFunc(msg, args...)
	}
}

func (m *mockLogger) Warn(msg string, args ...any) {
	if m.WarnFunc != nil {
		m.WarnFunc(msg, args...)
	}
}

func (m *mockLogger) Error(msg string, args ...any) {
	if m.ErrorFunc != nil {
		m.ErrorFunc(msg, args...)
	}
}

func (m *mockLogger) Fatal(msg string, args ...any) {
	if m.FatalFunc != nil {
		m.FatalFunc(msg, args...)
	}
}

func (m *mockLogger) With(args ...any) logger.Interface  { return m }
func (m *mockLogger) Named(name string) logger.Interface { return m }

func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {
	if m.DebugwFunc != nil {
		m.DebugwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Infow(msg string, keysAndValues ...any) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...any) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Fatalw(msg string, keysAndValues ...any) {
	if m.FatalwFunc != nil {
		m.FatalwFunc(msg, keysAndValues...)
	}
}
