package dto

import (
	"time"

	"github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/shared/mapper"
)

type UserDTO struct {
	ID            uint       `json:"id"`
	UUID          string     `json:"uuid"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	DisplayName   string     `json:"display_name"`
	Initials      string     `json:"initials"`
	AvatarURL     string     `json:"avatar_url,omitempty"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	EmailVerified bool       `json:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// AssignableUserDTO is the slim shape the assignment picker needs.
type AssignableUserDTO struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      string `json:"role"`
}

// SessionDTO describes one signed-in device. Token hashes never leave the
// domain layer.
type SessionDTO struct {
	ID             string    `json:"id"`
	DeviceName     string    `json:"device_name"`
	DeviceType     string    `json:"device_type"`
	IPAddress      string    `json:"ip_address"`
	LastActivityAt time.Time `json:"last_activity_at"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:            u.ID(),
		UUID:          u.UUID(),
		Email:         u.Email().String(),
		Name:          u.Name().String(),
		DisplayName:   u.Name().DisplayName(),
		Initials:      u.Name().Initials(),
		AvatarURL:     u.AvatarURL(),
		Role:          u.Role().String(),
		Status:        u.Status().String(),
		EmailVerified: u.IsEmailVerified(),
		LastLoginAt:   u.LastLoginAt(),
		CreatedAt:     u.CreatedAt(),
		UpdatedAt:     u.UpdatedAt(),
	}
}

func ToUserDTOs(users []*user.User) []UserDTO {
	return mapper.MapSlice(users, ToUserDTO)
}

func ToAssignableUserDTO(u *user.User) AssignableUserDTO {
	return AssignableUserDTO{
		ID:        u.ID(),
		Name:      u.Name().DisplayName(),
		Email:     u.Email().String(),
		AvatarURL: u.AvatarURL(),
		Role:      u.Role().String(),
	}
}

func ToAssignableUserDTOs(users []*user.User) []AssignableUserDTO {
	return mapper.MapSlice(users, ToAssignableUserDTO)
}

func ToSessionDTO(s *user.Session) SessionDTO {
	return SessionDTO{
		ID:             s.ID,
		DeviceName:     s.DeviceName,
		DeviceType:     s.DeviceType,
		IPAddress:      s.IPAddress,
		LastActivityAt: s.LastActivityAt,
		CreatedAt:      s.CreatedAt,
		ExpiresAt:      s.ExpiresAt,
	}
}

func ToSessionDTOs(sessions []*user.Session) []SessionDTO {
	return mapper.MapSlice(sessions, ToSessionDTO)
}
