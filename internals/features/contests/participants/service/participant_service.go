package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ievents_backend/internals/constants"
	contestModel "ievents_backend/internals/features/contests/contests/model"
	contestService "ievents_backend/internals/features/contests/contests/service"
	"ievents_backend/internals/features/contests/participants/dto"
	model "ievents_backend/internals/features/contests/participants/model"
	resultModel "ievents_backend/internals/features/contests/results/model"
	notifService "ievents_backend/internals/features/home/notifications/service"
	userModel "ievents_backend/internals/features/users/user/model"
	helper "ievents_backend/internals/helpers"
)

type ParticipantService struct {
	DB       *gorm.DB
	Notifier *notifService.NotificationService
	Now      func() time.Time
}

func NewParticipantService(db *gorm.DB) *ParticipantService {
	return &ParticipantService{
		DB:       db,
		Notifier: notifService.NewNotificationService(db),
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

/* ==========================
   REGISTER (teacher)
========================== */

// RegisterStudents: validasi sebelum mutasi, lalu insert berurutan dalam satu transaksi.
// Duplikat (unique contest+student) tidak menggagalkan batch: masuk alreadyRegistered.
// Error lain me-rollback seluruh batch termasuk notifikasinya.
func (s *ParticipantService) RegisterStudents(ctx context.Context, contestID uuid.UUID, studentIDs []uuid.UUID, teacherID uuid.UUID) (*dto.RegistrationResult, error) {
	if len(studentIDs) == 0 {
		return nil, helper.InvalidInput("student_ids must be a non-empty list").WithHint("required", []string{"student_ids"})
	}

	db := s.DB.WithContext(ctx)
	contest, err := contestService.LoadContest(db, contestID)
	if err != nil {
		return nil, err
	}
	if contest.ContestStatus != contestModel.ContestActive {
		return nil, helper.InvalidState("contest not active")
	}
	if !s.Now().Before(contest.ContestDeadline) {
		return nil, helper.InvalidState("deadline passed")
	}
	if err := s.ensureAllStudents(db, studentIDs); err != nil {
		return nil, err
	}

	var registeredBy *uuid.UUID
	if teacherID != uuid.Nil {
		registeredBy = &teacherID
	}

	res := &dto.RegistrationResult{
		Registered:        []model.ContestParticipantModel{},
		AlreadyRegistered: []uuid.UUID{},
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, sid := range studentIDs {
			p := model.ContestParticipantModel{
				ParticipantContestID:    contestID,
				ParticipantStudentID:    sid,
				ParticipantRegisteredBy: registeredBy,
				ParticipantStatus:       model.StatusPending,
			}
			// savepoint per baris: di Postgres unique violation membatalkan tx luar kalau tidak diisolasi
			insErr := tx.Transaction(func(sp *gorm.DB) error {
				return sp.Create(&p).Error
			})
			if insErr != nil {
				if helper.IsDuplicateKey(insErr) {
					res.AlreadyRegistered = append(res.AlreadyRegistered, sid)
					continue
				}
				return helper.Internal(insErr, "failed to register students")
			}

			if _, err := s.Notifier.Notify(tx, notifService.Registered(sid, contestID, contest.ContestTitle)); err != nil {
				return helper.Internal(err, "failed to create notification")
			}
			res.Registered = append(res.Registered, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.RegisteredCount = len(res.Registered)
	return res, nil
}

// ensureAllStudents: all-or-nothing, satu id invalid menolak seluruh batch.
func (s *ParticipantService) ensureAllStudents(db *gorm.DB, ids []uuid.UUID) error {
	uniq := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}

	var found []uuid.UUID
	if err := db.Model(&userModel.UserModel{}).
		Where("id IN ? AND role = ?", uniq, constants.RoleStudent).
		Pluck("id", &found).Error; err != nil {
		return helper.Internal(err, "failed to validate students")
	}
	if len(found) == len(uniq) {
		return nil
	}

	ok := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		ok[id] = struct{}{}
	}
	invalid := make([]uuid.UUID, 0, len(uniq)-len(found))
	for _, id := range uniq {
		if _, hit := ok[id]; !hit {
			invalid = append(invalid, id)
		}
	}
	return helper.InvalidInput("some ids invalid or not students").WithHint("invalid", invalid)
}

/* ==========================
   APPROVAL (methodist)
========================== */

// SetRegistrationStatus: graph bebas antar status, overwrite tanpa syarat.
// Update + notifikasi satu transaksi.
func (s *ParticipantService) SetRegistrationStatus(ctx context.Context, contestID, participantID uuid.UUID, newStatus string) (*model.ContestParticipantModel, error) {
	st := model.ParticipantStatus(newStatus)
	if st != model.StatusApproved && st != model.StatusRejected {
		return nil, helper.InvalidInput("status must be approved or rejected").WithHint("allowed", model.DecisionStatuses)
	}

	var out model.ContestParticipantModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("participant_id = ? AND participant_contest_id = ?", participantID, contestID).
			First(&out).Error; err != nil {
			if helper.IsNotFound(err) {
				return helper.NotFound("registration not found")
			}
			return helper.Internal(err, "failed to load registration")
		}
		contest, err := contestService.LoadContest(tx, contestID)
		if err != nil {
			return err
		}

		out.ParticipantStatus = st
		if err := tx.Model(&out).Select("participant_status", "participant_updated_at").Updates(&out).Error; err != nil {
			return helper.Internal(err, "failed to update registration")
		}

		n := notifService.Approved(out.ParticipantStudentID, contestID, contest.ContestTitle)
		if st == model.StatusRejected {
			n = notifService.Rejected(out.ParticipantStudentID, contestID, contest.ContestTitle)
		}
		if _, err := s.Notifier.Notify(tx, n); err != nil {
			return helper.Internal(err, "failed to create notification")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

/* ==========================
   CANCEL (student owner / registering teacher)
========================== */

func (s *ParticipantService) Cancel(ctx context.Context, contestID, participantID, actorID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.ContestParticipantModel
		if err := tx.Where("participant_id = ? AND participant_contest_id = ?", participantID, contestID).
			First(&p).Error; err != nil {
			if helper.IsNotFound(err) {
				return helper.NotFound("registration not found")
			}
			return helper.Internal(err, "failed to load registration")
		}

		isOwner := p.ParticipantStudentID == actorID
		isRegistrar := p.ParticipantRegisteredBy != nil && *p.ParticipantRegisteredBy == actorID
		if !isOwner && !isRegistrar {
			return helper.Forbidden("only the student or the registering teacher can cancel this registration")
		}

		var results int64
		if err := tx.Model(&resultModel.ContestResultModel{}).
			Where("result_contest_id = ? AND result_student_id = ?", p.ParticipantContestID, p.ParticipantStudentID).
			Count(&results).Error; err != nil {
			return helper.Internal(err, "failed to check results")
		}
		if results > 0 {
			return helper.InvalidState("registration already has a recorded result")
		}

		if err := tx.Delete(&p).Error; err != nil {
			return helper.Internal(err, "failed to cancel registration")
		}
		return nil
	})
}

/* ==========================
   READ
========================== */

func (s *ParticipantService) ListParticipants(ctx context.Context, contestID uuid.UUID, status string) ([]dto.ParticipantView, error) {
	db := s.DB.WithContext(ctx)
	if _, err := contestService.LoadContest(db, contestID); err != nil {
		return nil, err
	}

	q := db.Table("contest_participants AS p").
		Select(`p.participant_id, p.participant_contest_id, p.participant_student_id,
			p.participant_registered_by, p.participant_status, p.participant_created_at,
			u.full_name AS student_full_name, u.email AS student_email`).
		Joins("JOIN users u ON u.id = p.participant_student_id").
		Where("p.participant_contest_id = ?", contestID)
	if status != "" {
		if !model.ParticipantStatus(status).Valid() {
			return nil, helper.InvalidInput("invalid status").
				WithHint("allowed", []string{string(model.StatusPending), string(model.StatusApproved), string(model.StatusRejected)})
		}
		q = q.Where("p.participant_status = ?", status)
	}

	rows := []dto.ParticipantView{}
	if err := q.Order("p.participant_created_at ASC").Scan(&rows).Error; err != nil {
		return nil, helper.Internal(err, "failed to load participants")
	}
	return rows, nil
}

// ListRegistrations: semua registrasi satu student, deadline terdekat dulu.
func (s *ParticipantService) ListRegistrations(ctx context.Context, studentID uuid.UUID) ([]dto.RegistrationView, error) {
	rows := []dto.RegistrationView{}
	err := s.DB.WithContext(ctx).Table("contest_participants AS p").
		Select(`p.participant_id, p.participant_status, p.participant_created_at,
			c.contest_id, c.contest_title, c.contest_deadline, c.contest_status`).
		Joins("JOIN contests c ON c.contest_id = p.participant_contest_id").
		Where("p.participant_student_id = ?", studentID).
		Order("c.contest_deadline ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, helper.Internal(err, "failed to load registrations")
	}
	return rows, nil
}
