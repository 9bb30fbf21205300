package valueobjects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "valid email",
			input: "user@example.com",
			want:  "user@example.com",
		},
		{
			name:  "normalizes case",
			input: "User@EXAMPLE.Com",
			want:  "user@example.com",
		},
		{
			name:  "trims whitespace",
			input: "  user@example.com  ",
			want:  "user@example.com",
		},
		{
			name:  "plus addressing",
			input: "user+tag@example.com",
			want:  "user+tag@example.com",
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "missing at sign",
			input:   "userexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			input:   "user@",
			wantErr: true,
		},
		{
			name:    "missing tld",
			input:   "user@example",
			wantErr: true,
		},
		{
			name:    "contains spaces",
			input:   "us er@example.com",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   strings.Repeat("a", 250) + "@example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := NewEmail(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, email)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, email.String())
		})
	}
}

func TestEmail_Equals(t *testing.T) {
	a, err := NewEmail("user@example.com")
	require.NoError(t, err)
	b, err := NewEmail("USER@example.com")
	require.NoError(t, err)
	c, err := NewEmail("other@example.com")
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
}

func TestEmail_Domain(t *testing.T) {
	email, err := NewEmail("user@mail.example.com")
	require.NoError(t, err)
	assert.Equal(t, "mail.example.com", email.Domain())
}
