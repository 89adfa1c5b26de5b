package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContestResultModel struct {
	ResultID        uuid.UUID `gorm:"column:result_id;type:uuid;primaryKey" json:"result_id"`
	ResultContestID uuid.UUID `gorm:"column:result_contest_id;type:uuid;not null;uniqueIndex:uq_result_contest_student,priority:1" json:"result_contest_id"`
	ResultStudentID uuid.UUID `gorm:"column:result_student_id;type:uuid;not null;uniqueIndex:uq_result_contest_student,priority:2;index" json:"result_student_id"`
	ResultScore     float64   `gorm:"column:result_score;not null" json:"result_score"`
	ResultRank      *int      `gorm:"column:result_rank" json:"result_rank"`

	ResultCreatedAt time.Time `gorm:"column:result_created_at;autoCreateTime" json:"result_created_at"`
	ResultUpdatedAt time.Time `gorm:"column:result_updated_at;autoUpdateTime" json:"result_updated_at"`
}

func (ContestResultModel) TableName() string { return "contest_results" }

func (m *ContestResultModel) BeforeCreate(tx *gorm.DB) error {
	if m.ResultID == uuid.Nil {
		m.ResultID = uuid.New()
	}
	return nil
}

// LeaderboardOrder: rank asc (null terakhir), lalu score desc.
const LeaderboardOrder = "CASE WHEN result_rank IS NULL THEN 1 ELSE 0 END, result_rank ASC, result_score DESC"
