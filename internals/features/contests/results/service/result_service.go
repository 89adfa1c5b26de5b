package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	contestModel "ievents_backend/internals/features/contests/contests/model"
	contestService "ievents_backend/internals/features/contests/contests/service"
	participantModel "ievents_backend/internals/features/contests/participants/model"
	"ievents_backend/internals/features/contests/results/dto"
	model "ievents_backend/internals/features/contests/results/model"
	notifService "ievents_backend/internals/features/home/notifications/service"
	helper "ievents_backend/internals/helpers"
)

type ResultService struct {
	DB       *gorm.DB
	Notifier *notifService.NotificationService
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{DB: db, Notifier: notifService.NewNotificationService(db)}
}

// ensureApproved: hasil hanya untuk peserta berstatus approved.
func ensureApproved(tx *gorm.DB, contestID, studentID uuid.UUID) error {
	var n int64
	if err := tx.Model(&participantModel.ContestParticipantModel{}).
		Where("participant_contest_id = ? AND participant_student_id = ? AND participant_status = ?",
			contestID, studentID, participantModel.StatusApproved).
		Count(&n).Error; err != nil {
		return helper.Internal(err, "failed to check registration")
	}
	if n == 0 {
		return helper.InvalidState("student not approved participant")
	}
	return nil
}

func loadResult(tx *gorm.DB, contestID, studentID uuid.UUID) (*model.ContestResultModel, error) {
	var r model.ContestResultModel
	if err := tx.Where("result_contest_id = ? AND result_student_id = ?", contestID, studentID).
		First(&r).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, helper.NotFound("result not found")
		}
		return nil, helper.Internal(err, "failed to load result")
	}
	return &r, nil
}

/* ==========================
   UPSERT (methodist)
========================== */

// UpsertResult: keyed (contest, student); kirim ulang menimpa score/rank, tanpa histori.
func (s *ResultService) UpsertResult(ctx context.Context, contestID, studentID uuid.UUID, score float64, rank *int) (*model.ContestResultModel, error) {
	if err := dto.ValidateScore(score); err != nil {
		return nil, err
	}
	if err := dto.ValidateRank(rank); err != nil {
		return nil, err
	}

	var out *model.ContestResultModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contest, err := contestService.LoadContest(tx, contestID)
		if err != nil {
			return err
		}
		if err := ensureApproved(tx, contestID, studentID); err != nil {
			return err
		}

		row := model.ContestResultModel{
			ResultContestID: contestID,
			ResultStudentID: studentID,
			ResultScore:     score,
			ResultRank:      rank,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "result_contest_id"}, {Name: "result_student_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"result_score":      score,
				"result_rank":       rank,
				"result_updated_at": time.Now().UTC(),
			}),
		}).Create(&row).Error; err != nil {
			return helper.Internal(err, "failed to save result")
		}

		// id dari BeforeCreate tidak berlaku kalau jalur update; baca ulang
		if out, err = loadResult(tx, contestID, studentID); err != nil {
			return err
		}
		return s.notifyResult(tx, contest, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* ==========================
   PATCH (methodist)
========================== */

func (s *ResultService) PatchResult(ctx context.Context, contestID, studentID uuid.UUID, req dto.PatchResultRequest) (*model.ContestResultModel, error) {
	if err := req.ValidatePartial(); err != nil {
		return nil, err
	}

	var out *model.ContestResultModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contest, err := contestService.LoadContest(tx, contestID)
		if err != nil {
			return err
		}
		r, err := loadResult(tx, contestID, studentID)
		if err != nil {
			return err
		}
		out = r
		if req.IsEmpty() {
			return nil
		}
		if err := ensureApproved(tx, contestID, studentID); err != nil {
			return err
		}

		if v, ok := req.Score.Get(); ok && v != nil {
			r.ResultScore = *v
		}
		if v, ok := req.Rank.Get(); ok {
			r.ResultRank = v
		}
		if err := tx.Model(r).Select("result_score", "result_rank", "result_updated_at").Updates(r).Error; err != nil {
			return helper.Internal(err, "failed to update result")
		}
		return s.notifyResult(tx, contest, r)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ResultService) notifyResult(tx *gorm.DB, contest *contestModel.ContestModel, r *model.ContestResultModel) error {
	n := notifService.ResultPosted(r.ResultStudentID, contest.ContestID, contest.ContestTitle, r.ResultScore, r.ResultRank)
	if _, err := s.Notifier.Notify(tx, n); err != nil {
		return helper.Internal(err, "failed to create notification")
	}
	return nil
}

/* ==========================
   READ
========================== */

// GetContestResults: urutan leaderboard = rank asc (null terakhir), score desc.
func (s *ResultService) GetContestResults(ctx context.Context, contestID uuid.UUID) (*contestModel.ContestModel, []dto.ResultView, error) {
	db := s.DB.WithContext(ctx)
	contest, err := contestService.LoadContest(db, contestID)
	if err != nil {
		return nil, nil, err
	}

	rows := []dto.ResultView{}
	if err := db.Table("contest_results AS r").
		Select(`r.result_id, r.result_student_id, u.full_name AS student_full_name,
			r.result_score, r.result_rank, r.result_updated_at`).
		Joins("JOIN users u ON u.id = r.result_student_id").
		Where("r.result_contest_id = ?", contestID).
		Order(model.LeaderboardOrder).
		Scan(&rows).Error; err != nil {
		return nil, nil, helper.Internal(err, "failed to load results")
	}
	return contest, rows, nil
}

func (s *ResultService) ListStudentResults(ctx context.Context, studentID uuid.UUID) ([]dto.StudentResultView, error) {
	rows := []dto.StudentResultView{}
	if err := s.DB.WithContext(ctx).Table("contest_results AS r").
		Select(`r.result_id, c.contest_id, c.contest_title, r.result_score, r.result_rank, r.result_updated_at`).
		Joins("JOIN contests c ON c.contest_id = r.result_contest_id").
		Where("r.result_student_id = ?", studentID).
		Order("r.result_updated_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, helper.Internal(err, "failed to load results")
	}
	return rows, nil
}
