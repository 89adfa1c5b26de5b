package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParticipantStatus string

const (
	StatusPending  ParticipantStatus = "pending"
	StatusApproved ParticipantStatus = "approved"
	StatusRejected ParticipantStatus = "rejected"
)

// DecisionStatuses: nilai yang boleh di-set methodist.
var DecisionStatuses = []string{string(StatusApproved), string(StatusRejected)}

func (s ParticipantStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type ContestParticipantModel struct {
	ParticipantID           uuid.UUID         `gorm:"column:participant_id;type:uuid;primaryKey" json:"participant_id"`
	ParticipantContestID    uuid.UUID         `gorm:"column:participant_contest_id;type:uuid;not null;uniqueIndex:uq_participant_contest_student,priority:1" json:"participant_contest_id"`
	ParticipantStudentID    uuid.UUID         `gorm:"column:participant_student_id;type:uuid;not null;uniqueIndex:uq_participant_contest_student,priority:2;index" json:"participant_student_id"`
	ParticipantRegisteredBy *uuid.UUID        `gorm:"column:participant_registered_by;type:uuid;index" json:"participant_registered_by,omitempty"`
	ParticipantStatus       ParticipantStatus `gorm:"column:participant_status;type:varchar(16);not null;default:'pending';index" json:"participant_status"`

	ParticipantCreatedAt time.Time `gorm:"column:participant_created_at;autoCreateTime" json:"participant_created_at"`
	ParticipantUpdatedAt time.Time `gorm:"column:participant_updated_at;autoUpdateTime" json:"participant_updated_at"`
}

func (ContestParticipantModel) TableName() string { return "contest_participants" }

func (m *ContestParticipantModel) BeforeCreate(tx *gorm.DB) error {
	if m.ParticipantID == uuid.Nil {
		m.ParticipantID = uuid.New()
	}
	return nil
}
