package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContestStatus string

const (
	ContestActive   ContestStatus = "active"
	ContestArchived ContestStatus = "archived"
)

func (s ContestStatus) Valid() bool {
	return s == ContestActive || s == ContestArchived
}

type ContestModel struct {
	ContestID          uuid.UUID     `gorm:"column:contest_id;type:uuid;primaryKey" json:"contest_id"`
	ContestTitle       string        `gorm:"column:contest_title;type:varchar(200);not null" json:"contest_title"`
	ContestDescription *string       `gorm:"column:contest_description;type:text" json:"contest_description,omitempty"`
	ContestRules       *string       `gorm:"column:contest_rules;type:text" json:"contest_rules,omitempty"`
	ContestDeadline    time.Time     `gorm:"column:contest_deadline;not null;index" json:"contest_deadline"`
	ContestStatus      ContestStatus `gorm:"column:contest_status;type:varchar(16);not null;default:'active';index" json:"contest_status"`
	ContestCreatedBy   uuid.UUID     `gorm:"column:contest_created_by;type:uuid;not null;index" json:"contest_created_by"`

	// set once the deadline reminder has been fanned out
	ContestReminderSentAt *time.Time `gorm:"column:contest_reminder_sent_at" json:"-"`

	ContestCreatedAt time.Time `gorm:"column:contest_created_at;autoCreateTime" json:"contest_created_at"`
	ContestUpdatedAt time.Time `gorm:"column:contest_updated_at;autoUpdateTime" json:"contest_updated_at"`
}

func (ContestModel) TableName() string { return "contests" }

func (m *ContestModel) BeforeCreate(tx *gorm.DB) error {
	if m.ContestID == uuid.Nil {
		m.ContestID = uuid.New()
	}
	return nil
}

func (m *ContestModel) IsOpenAt(now time.Time) bool {
	return m.ContestStatus == ContestActive && now.Before(m.ContestDeadline)
}
