package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reque-io/reque/internal/shared/authorization"
)

func TestNewGrant(t *testing.T) {
	t.Run("valid triple", func(t *testing.T) {
		grant, err := NewGrant("team_member", "requests", "update")
		require.NoError(t, err)

		assert.Equal(t, authorization.RoleTeamMember, grant.Role())
		assert.Equal(t, "requests", grant.Resource().String())
		assert.Equal(t, "update", grant.Action().String())
		assert.Equal(t, "requests:update", grant.Code())
		assert.Equal(t, []string{"team_member", "requests", "update"}, grant.Rule())
	})

	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		wantErr  string
	}{
		{"unknown role", "superuser", "requests", "read", "unknown role"},
		{"empty resource", "admin", "", "read", "resource cannot be empty"},
		{"unknown action", "admin", "requests", "publish", "invalid action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grant, err := NewGrant(tt.role, tt.resource, tt.action)
			require.Error(t, err)
			assert.Nil(t, grant)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
