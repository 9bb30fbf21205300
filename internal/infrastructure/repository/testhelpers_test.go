package repository

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/reque-io/reque/internal/domain/request"
	requestvo "github.com/reque-io/reque/internal/domain/request/valueobjects"
	"github.com/reque-io/reque/internal/domain/user"
	uservo "github.com/reque-io/reque/internal/domain/user/valueobjects"
	"github.com/reque-io/reque/internal/infrastructure/persistence/models"
	"github.com/reque-io/reque/internal/shared/authorization"
	"github.com/reque-io/reque/internal/shared/logger"
)

func discardLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// setupTestDB opens an isolated in-memory database with the full schema.
// Connections are pinned to one so every query sees the same memory store.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = gormDB.AutoMigrate(
		&models.UserModel{},
		&models.SessionModel{},
		&models.OAuthAccountModel{},
		&models.RequestModel{},
		&models.CommentModel{},
		&models.ActivityModel{},
		&models.AttachmentModel{},
		&models.RequestSequenceModel{},
	)
	require.NoError(t, err)

	return gormDB
}

func buildUser(t *testing.T, email string, role authorization.UserRole) *user.User {
	t.Helper()

	addr, err := uservo.NewEmail(email)
	require.NoError(t, err)
	name, err := uservo.NewName("Quinn Harper")
	require.NoError(t, err)

	u, err := user.NewVerifiedUser(addr, name, role)
	require.NoError(t, err)
	return u
}

func buildRequest(t *testing.T, creatorID uint, seq int) *request.Request {
	t.Helper()

	req, err := request.NewRequest(
		fmt.Sprintf("Printer offline on floor %d", seq),
		"The device does not respond to pings.",
		requestvo.PriorityNormal,
		nil,
		creatorID,
	)
	require.NoError(t, err)
	require.NoError(t, req.SetNumber(fmt.Sprintf("REQ-20260825-%04d", seq)))
	return req
}

func buildSession(t *testing.T, userID uint, expiresIn time.Duration) *user.Session {
	t.Helper()

	s, err := user.NewSession(userID, "MacBook Pro", "desktop", "203.0.113.7", "Mozilla/5.0", time.Now().UTC().Add(expiresIn))
	require.NoError(t, err)
	s.RefreshTokenHash = fmt.Sprintf("%064d", userID)
	return s
}
