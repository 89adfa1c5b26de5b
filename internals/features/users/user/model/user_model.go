package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName string    `gorm:"size:120;not null" json:"full_name"`
	Email    string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"type:varchar(20);not null;index" json:"role"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`

	// external messaging identity; at most one chat per user and one user per chat
	TelegramChatID   *int64     `gorm:"uniqueIndex" json:"telegram_chat_id,omitempty"`
	TelegramUsername *string    `gorm:"size:64" json:"telegram_username,omitempty"`
	TelegramLinkedAt *time.Time `json:"telegram_linked_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *UserModel) IsLinked() bool {
	return u.TelegramChatID != nil
}
