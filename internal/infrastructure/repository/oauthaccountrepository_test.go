package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reque-io/reque/internal/domain/user"
)

func buildOAuthLink(t *testing.T, userID uint, provider, providerUserID string) *user.OAuthAccount {
	t.Helper()

	link, err := user.NewOAuthAccount(userID, provider, providerUserID, "linked@example.com")
	require.NoError(t, err)
	return link
}

func TestOAuthAccountRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOAuthAccountRepository(db)
	ctx := context.Background()

	t.Run("create link successfully", func(t *testing.T) {
		link := buildOAuthLink(t, 1, "google", "google-uid-1")

		err := repo.Create(ctx, link)
		assert.NoError(t, err)
		assert.NotZero(t, link.ID)
	})

	t.Run("same provider identity cannot link twice", func(t *testing.T) {
		first := buildOAuthLink(t, 2, "github", "github-uid-7")
		require.NoError(t, repo.Create(ctx, first))

		second := buildOAuthLink(t, 3, "github", "github-uid-7")
		err := repo.Create(ctx, second)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already linked")
	})

	t.Run("one user may link several providers", func(t *testing.T) {
		google := buildOAuthLink(t, 4, "google", "google-uid-4")
		github := buildOAuthLink(t, 4, "github", "github-uid-4")

		assert.NoError(t, repo.Create(ctx, google))
		assert.NoError(t, repo.Create(ctx, github))
	})
}

func TestOAuthAccountRepository_GetByProviderAndUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOAuthAccountRepository(db)
	ctx := context.Background()

	link := buildOAuthLink(t, 5, "google", "google-uid-5")
	link.ProfileData = map[string]interface{}{"locale": "de", "hd": "example.com"}
	require.NoError(t, repo.Create(ctx, link))

	t.Run("find existing link with profile snapshot", func(t *testing.T) {
		found, err := repo.GetByProviderAndUserID(ctx, "google", "google-uid-5")
		assert.NoError(t, err)
		assert.Equal(t, link.ID, found.ID)
		assert.Equal(t, uint(5), found.UserID)
		assert.Equal(t, "de", found.ProfileData["locale"])
	})

	t.Run("find non-existent link", func(t *testing.T) {
		found, err := repo.GetByProviderAndUserID(ctx, "google", "unknown-uid")
		assert.Error(t, err)
		assert.Nil(t, found)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestOAuthAccountRepository_GetByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOAuthAccountRepository(db)
	ctx := context.Background()

	google := buildOAuthLink(t, 6, "google", "google-uid-6")
	github := buildOAuthLink(t, 6, "github", "github-uid-6")
	other := buildOAuthLink(t, 7, "google", "google-uid-7")
	require.NoError(t, repo.Create(ctx, google))
	require.NoError(t, repo.Create(ctx, github))
	require.NoError(t, repo.Create(ctx, other))

	links, err := repo.GetByUserID(ctx, 6)
	assert.NoError(t, err)
	require.Len(t, links, 2)
	// Ordered by provider name.
	assert.Equal(t, "github", links[0].Provider)
	assert.Equal(t, "google", links[1].Provider)
}

func TestOAuthAccountRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOAuthAccountRepository(db)
	ctx := context.Background()

	t.Run("login refresh persists snapshot and counters", func(t *testing.T) {
		link := buildOAuthLink(t, 8, "google", "google-uid-8")
		require.NoError(t, repo.Create(ctx, link))

		link.RefreshProfile("renamed@example.com", "Robin Oak", "https://cdn.example.com/a.png",
			map[string]interface{}{"locale": "fr"})
		link.RecordLogin()
		err := repo.Update(ctx, link)
		assert.NoError(t, err)

		found, err := repo.GetByProviderAndUserID(ctx, "google", "google-uid-8")
		assert.NoError(t, err)
		assert.Equal(t, "renamed@example.com", found.ProviderEmail)
		assert.Equal(t, "Robin Oak", found.ProviderUsername)
		assert.Equal(t, "fr", found.ProfileData["locale"])
		assert.Equal(t, uint(2), found.LoginCount)
		assert.NotNil(t, found.LastLoginAt)
	})

	t.Run("update non-existent link", func(t *testing.T) {
		link := buildOAuthLink(t, 9, "github", "github-uid-9")
		link.ID = 99999

		err := repo.Update(ctx, link)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestOAuthAccountRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOAuthAccountRepository(db)
	ctx := context.Background()

	t.Run("delete existing link", func(t *testing.T) {
		link := buildOAuthLink(t, 10, "google", "google-uid-10")
		require.NoError(t, repo.Create(ctx, link))

		err := repo.Delete(ctx, link.ID)
		assert.NoError(t, err)

		found, err := repo.GetByProviderAndUserID(ctx, "google", "google-uid-10")
		assert.Error(t, err)
		assert.Nil(t, found)
	})

	t.Run("delete non-existent link", func(t *testing.T) {
		err := repo.Delete(ctx, 99999)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
