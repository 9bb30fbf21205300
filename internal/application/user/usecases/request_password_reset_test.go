package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/authorization"
)

func TestRequestPasswordResetUseCase_Execute_Success(t *testing.T) {
	account := newPasswordUser(t, 5, authorization.RoleUser)
	userRepo := userRepoWith(account)

	updated := false
	userRepo.UpdateFunc = func(ctx context.Context, u *user.User) error {
		updated = true
		return nil
	}

	var sentTo, sentToken string
	emailService := &mockEmailService{
		SendPasswordResetEmailFunc: func(ctx context.Context, to, token string) error {
			sentTo = to
			sentToken = token
			return nil
		},
	}

	useCase := NewRequestPasswordResetUseCase(userRepo, emailService, &mockPolicyProvider{}, &mockLogger{})

	err := useCase.Execute(context.Background(), RequestPasswordResetCommand{Email: testEmail(5)})

	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, testEmail(5), sentTo)
	assert.NotEmpty(t, sentToken)
}

func TestRequestPasswordResetUseCase_Execute_UnknownEmailStaysSilent(t *testing.T) {
	userRepo := userRepoWith()

	mailed := false
	emailService := &mockEmailService{
		SendPasswordResetEmailFunc: func(ctx context.Context, to, token string) error {
			mailed = true
			return nil
		},
	}

	useCase := NewRequestPasswordResetUseCase(userRepo, emailService, &mockPolicyProvider{}, &mockLogger{})

	// The response must not reveal whether the account exists.
	err := useCase.Execute(context.Background(), RequestPasswordResetCommand{Email: "nobody@example.com"})

	require.NoError(t, err)
	assert.False(t, mailed)
}

func TestRequestPasswordResetUseCase_Execute_OAuthOnlyAccountStaysSilent(t *testing.T) {
	account := newActiveUser(t, 5, authorization.RoleUser)
	userRepo := userRepoWith(account)

	mailed := false
	emailService := &mockEmailService{
		SendPasswordResetEmailFunc: func(ctx context.Context, to, token string) error {
			mailed = true
			return nil
		},
	}

	useCase := NewRequestPasswordResetUseCase(userRepo, emailService, &mockPolicyProvider{}, &mockLogger{})

	err := useCase.Execute(context.Background(), RequestPasswordResetCommand{Email: testEmail(5)})

	require.NoError(t, err)
	assert.False(t, mailed)
}

func TestRequestPasswordResetUseCase_Execute_SecondRequestRateLimited(t *testing.T) {
	account := newPasswordUser(t, 5, authorization.RoleUser)
	userRepo := userRepoWith(account)

	mails := 0
	emailService := &mockEmailService{
		SendPasswordResetEmailFunc: func(ctx context.Context, to, token string) error {
			mails++
			return nil
		},
	}

	useCase := NewRequestPasswordResetUseCase(userRepo, emailService, &mockPolicyProvider{}, &mockLogger{})

	require.NoError(t, useCase.Execute(context.Background(), RequestPasswordResetCommand{Email: testEmail(5)}))

	err := useCase.Execute(context.Background(), RequestPasswordResetCommand{Email: testEmail(5)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "please wait before requesting another password reset")
	assert.Equal(t, 1, mails)
}

func TestRequestPasswordResetUseCase_Execute_RateLimitIsPerEmail(t *testing.T) {
	first := newPasswordUser(t, 5, authorization.RoleUser)
	second := newPasswordUser(t, 6, authorization.RoleUser)
	userRepo := userRepoWith(first, second)

	mails := 0
	emailService := &mockEmailService{
		SendPasswordResetEmailFunc: func(ctx context.Context, to, token string) error {
			mails++
			return nil
		},
	}

	useCase := NewRequestPasswordResetUseCase(userRepo, emailService, &mockPolicyProvider{}, &mockLogger{})

	require.NoError(t, useCase.Execute(context.Background(), RequestPasswordResetCommand{Email: testEmail(5)}))
	require.NoError(t, useCase.Execute(context.Background(), RequestPasswordResetCommand{Email: testEmail(6)}))

	assert.Equal(t, 2, mails)
}
