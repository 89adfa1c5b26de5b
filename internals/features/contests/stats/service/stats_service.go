package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	contestDTO "ievents_backend/internals/features/contests/contests/dto"
	contestService "ievents_backend/internals/features/contests/contests/service"
	participantModel "ievents_backend/internals/features/contests/participants/model"
	resultDTO "ievents_backend/internals/features/contests/results/dto"
	resultModel "ievents_backend/internals/features/contests/results/model"
	resultService "ievents_backend/internals/features/contests/results/service"
	"ievents_backend/internals/features/contests/stats/dto"
	notifService "ievents_backend/internals/features/home/notifications/service"
	helper "ievents_backend/internals/helpers"
)

type StatsService struct {
	DB      *gorm.DB
	Results *resultService.ResultService
	Notifs  *notifService.NotificationService
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		DB:      db,
		Results: resultService.NewResultService(db),
		Notifs:  notifService.NewNotificationService(db),
	}
}

type statusRow struct {
	Status string
	Total  int64
}

func countByStatus(q *gorm.DB) (dto.StatusCounts, error) {
	var rows []statusRow
	var out dto.StatusCounts
	if err := q.Select("participant_status AS status, COUNT(*) AS total").
		Group("participant_status").
		Scan(&rows).Error; err != nil {
		return out, err
	}
	for _, r := range rows {
		switch participantModel.ParticipantStatus(r.Status) {
		case participantModel.StatusPending:
			out.Pending = r.Total
		case participantModel.StatusApproved:
			out.Approved = r.Total
		case participantModel.StatusRejected:
			out.Rejected = r.Total
		}
		out.Total += r.Total
	}
	return out, nil
}

// ContestStats (methodist): jumlah peserta per status + ringkasan skor.
func (s *StatsService) ContestStats(ctx context.Context, contestID uuid.UUID) (*dto.ContestStatsResponse, error) {
	db := s.DB.WithContext(ctx)
	contest, err := contestService.LoadContest(db, contestID)
	if err != nil {
		return nil, err
	}

	counts, err := countByStatus(db.Model(&participantModel.ContestParticipantModel{}).
		Where("participant_contest_id = ?", contestID))
	if err != nil {
		return nil, helper.Internal(err, "failed to aggregate participants")
	}

	var agg struct {
		Count int64
		Avg   *float64
		Best  *float64
	}
	if err := db.Model(&resultModel.ContestResultModel{}).
		Select("COUNT(*) AS count, AVG(result_score) AS avg, MAX(result_score) AS best").
		Where("result_contest_id = ?", contestID).
		Scan(&agg).Error; err != nil {
		return nil, helper.Internal(err, "failed to aggregate results")
	}

	return &dto.ContestStatsResponse{
		Contest:      contestDTO.ToContestResponse(contest, time.Now().UTC()),
		Participants: counts,
		Results:      dto.ResultSummary{Count: agg.Count, AverageScore: agg.Avg, BestScore: agg.Best},
	}, nil
}

// StudentDashboard (student): registrasi, hasil, rata-rata dan prediksi skor.
func (s *StatsService) StudentDashboard(ctx context.Context, studentID uuid.UUID) (*dto.StudentDashboardResponse, error) {
	db := s.DB.WithContext(ctx)

	counts, err := countByStatus(db.Model(&participantModel.ContestParticipantModel{}).
		Where("participant_student_id = ?", studentID))
	if err != nil {
		return nil, helper.Internal(err, "failed to aggregate registrations")
	}

	results, err := s.Results.ListStudentResults(ctx, studentID)
	if err != nil {
		return nil, err
	}
	unread, err := s.Notifs.UnreadCount(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentDashboardResponse{
		Registrations:       counts,
		Results:             results,
		AverageScore:        AverageScore(results),
		PredictedScore:      PredictScore(results),
		UnreadNotifications: unread,
	}, nil
}

func AverageScore(rows []resultDTO.StudentResultView) *float64 {
	if len(rows) == 0 {
		return nil
	}
	var sum float64
	for _, r := range rows {
		sum += r.ResultScore
	}
	avg := sum / float64(len(rows))
	return &avg
}

// PredictScore: rata-rata berbobot, rows terbaru dulu; bobot n untuk terbaru turun ke 1.
func PredictScore(rows []resultDTO.StudentResultView) *float64 {
	n := len(rows)
	if n == 0 {
		return nil
	}
	var sum, weights float64
	for i, r := range rows {
		w := float64(n - i)
		sum += w * r.ResultScore
		weights += w
	}
	p := sum / weights
	return &p
}
