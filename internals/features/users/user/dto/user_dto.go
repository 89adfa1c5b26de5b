package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	uModel "ievents_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// ListUsersQuery — GET /api/users?role=student&q=...
type ListUsersQuery struct {
	Role string `query:"role" validate:"omitempty,oneof=methodist teacher student"`
	Q    string `query:"q" validate:"omitempty,max=120"`
}

func (q *ListUsersQuery) Normalize() {
	q.Role = strings.ToLower(strings.TrimSpace(q.Role))
	q.Q = strings.TrimSpace(q.Q)
}

// UpdateRoleRequest — PATCH /api/users/:id/role
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func (r *UpdateRoleRequest) Normalize() {
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID               uuid.UUID  `json:"id"`
	FullName         string     `json:"full_name"`
	Email            string     `json:"email"`
	Role             string     `json:"role"`
	IsActive         bool       `json:"is_active"`
	TelegramLinked   bool       `json:"telegram_linked"`
	TelegramUsername *string    `json:"telegram_username,omitempty"`
	TelegramLinkedAt *time.Time `json:"telegram_linked_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func ToUserResponse(u *uModel.UserModel) UserResponse {
	return UserResponse{
		ID:               u.ID,
		FullName:         u.FullName,
		Email:            u.Email,
		Role:             u.Role,
		IsActive:         u.IsActive,
		TelegramLinked:   u.IsLinked(),
		TelegramUsername: u.TelegramUsername,
		TelegramLinkedAt: u.TelegramLinkedAt,
		CreatedAt:        u.CreatedAt,
	}
}

func ToUserResponseList(rows []uModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToUserResponse(&rows[i]))
	}
	return out
}
