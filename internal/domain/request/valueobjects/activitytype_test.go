package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActivityType(t *testing.T) {
	valid := []string{
		"request_created",
		"detail_updated",
		"status_changed",
		"priority_changed",
		"assignee_changed",
		"due_date_changed",
		"comment_added",
		"comment_updated",
		"comment_deleted",
		"attachment_added",
		"attachment_removed",
	}

	for _, s := range valid {
		t.Run(s, func(t *testing.T) {
			got, err := NewActivityType(s)
			require.NoError(t, err)
			assert.Equal(t, s, got.String())
			assert.True(t, got.IsValid())
		})
	}

	_, err := NewActivityType("request_renamed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid activity type")

	_, err = NewActivityType("")
	require.Error(t, err)
}
