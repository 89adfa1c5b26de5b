package dto

import (
	"time"

	"github.com/google/uuid"

	"ievents_backend/internals/features/home/notifications/model"
)

// ================== RESPONSE ==================
type NotificationResponse struct {
	NotificationID      uuid.UUID              `json:"notification_id"`
	NotificationType    model.NotificationType `json:"notification_type"`
	NotificationTitle   string                 `json:"notification_title"`
	NotificationMessage string                 `json:"notification_message"`
	NotificationPayload map[string]any         `json:"notification_payload,omitempty"`
	NotificationIsRead  bool                   `json:"notification_is_read"`
	NotificationReadAt  *time.Time             `json:"notification_read_at,omitempty"`
	NotificationCreated time.Time              `json:"notification_created_at"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// ================ CONVERSION =================
func ToNotificationResponse(m *model.NotificationModel) NotificationResponse {
	return NotificationResponse{
		NotificationID:      m.NotificationID,
		NotificationType:    m.NotificationType,
		NotificationTitle:   m.NotificationTitle,
		NotificationMessage: m.NotificationMessage,
		NotificationPayload: m.NotificationPayload,
		NotificationIsRead:  m.NotificationIsRead,
		NotificationReadAt:  m.NotificationReadAt,
		NotificationCreated: m.NotificationCreatedAt,
	}
}

func ToNotificationResponseList(models []model.NotificationModel) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(models))
	for i := range models {
		out = append(out, ToNotificationResponse(&models[i]))
	}
	return out
}
