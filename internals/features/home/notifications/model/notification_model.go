package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationType string

const (
	TypeContestCreated   NotificationType = "contest_created"
	TypeRegistered       NotificationType = "registered"
	TypeApproved         NotificationType = "approved"
	TypeRejected         NotificationType = "rejected"
	TypeResult           NotificationType = "result"
	TypeDeadlineReminder NotificationType = "deadline_reminder"
)

// NotificationModel: satu baris per (user, pesan). Tidak pernah dihapus di flow normal.
type NotificationModel struct {
	NotificationID      uuid.UUID         `gorm:"column:notification_id;type:uuid;primaryKey" json:"notification_id"`
	NotificationUserID  uuid.UUID         `gorm:"column:notification_user_id;type:uuid;not null;index:idx_notification_user_read,priority:1" json:"notification_user_id"`
	NotificationType    NotificationType  `gorm:"column:notification_type;type:varchar(32);not null" json:"notification_type"`
	NotificationTitle   string            `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationMessage string            `gorm:"column:notification_message;type:text;not null" json:"notification_message"`
	NotificationPayload datatypes.JSONMap `gorm:"column:notification_payload" json:"notification_payload,omitempty"`

	NotificationIsRead bool       `gorm:"column:notification_is_read;not null;default:false;index:idx_notification_user_read,priority:2" json:"notification_is_read"`
	NotificationReadAt *time.Time `gorm:"column:notification_read_at" json:"notification_read_at,omitempty"`

	// out-of-band delivery bookkeeping (telegram relay)
	NotificationDeliveredAt   *time.Time `gorm:"column:notification_delivered_at;index" json:"-"`
	NotificationDeliveryError *string    `gorm:"column:notification_delivery_error;type:text" json:"-"`

	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;autoCreateTime;index" json:"notification_created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (m *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.NotificationID == uuid.Nil {
		m.NotificationID = uuid.New()
	}
	return nil
}
