package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ievents_backend/internals/constants"
	"ievents_backend/internals/features/contests/contests/dto"
	model "ievents_backend/internals/features/contests/contests/model"
	notifService "ievents_backend/internals/features/home/notifications/service"
	userModel "ievents_backend/internals/features/users/user/model"
	helper "ievents_backend/internals/helpers"
)

const listContestsLimit = 200

type ContestService struct {
	DB       *gorm.DB
	Notifier *notifService.NotificationService
	Now      func() time.Time
}

func NewContestService(db *gorm.DB) *ContestService {
	return &ContestService{
		DB:       db,
		Notifier: notifService.NewNotificationService(db),
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

// LoadContest dipakai lintas fitur (participants, results, stats).
func LoadContest(tx *gorm.DB, id uuid.UUID) (*model.ContestModel, error) {
	var m model.ContestModel
	if err := tx.First(&m, "contest_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, helper.NotFound("contest not found")
		}
		return nil, helper.Internal(err, "failed to load contest")
	}
	return &m, nil
}

/* ==========================
   CREATE
========================== */

// Create: contest baru + broadcast contest_created ke teacher & student aktif, satu transaksi.
func (s *ContestService) Create(ctx context.Context, creatorID uuid.UUID, req dto.CreateContestRequest) (*model.ContestModel, error) {
	if !req.ContestDeadline.After(s.Now()) {
		return nil, helper.InvalidInput("contest_deadline must be in the future")
	}

	m := req.ToModel(creatorID)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return helper.Internal(err, "failed to create contest")
		}

		var recipients []uuid.UUID
		if err := tx.Model(&userModel.UserModel{}).
			Where("is_active = ? AND role IN ?", true, []string{constants.RoleTeacher, constants.RoleStudent}).
			Pluck("id", &recipients).Error; err != nil {
			return helper.Internal(err, "failed to load recipients")
		}

		list := make([]notifService.NewNotification, 0, len(recipients))
		for _, uid := range recipients {
			list = append(list, notifService.ContestCreated(uid, m.ContestID, m.ContestTitle, m.ContestDeadline))
		}
		if err := s.Notifier.NotifyMany(tx, list); err != nil {
			return helper.Internal(err, "failed to create notifications")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

/* ==========================
   READ
========================== */

func (s *ContestService) List(ctx context.Context, f dto.ContestFilter) ([]model.ContestModel, error) {
	q := s.DB.WithContext(ctx).Model(&model.ContestModel{})
	if f.Status != nil {
		q = q.Where("contest_status = ?", *f.Status)
	}
	if f.From != nil {
		q = q.Where("contest_deadline >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("contest_deadline <= ?", *f.To)
	}
	if f.Q != "" {
		q = q.Where("LOWER(contest_title) LIKE ?", "%"+strings.ToLower(f.Q)+"%")
	}

	var rows []model.ContestModel
	if err := q.Order("contest_deadline DESC").Limit(listContestsLimit).Find(&rows).Error; err != nil {
		return nil, helper.Internal(err, "failed to load contests")
	}
	return rows, nil
}

func (s *ContestService) Get(ctx context.Context, id uuid.UUID) (*model.ContestModel, error) {
	return LoadContest(s.DB.WithContext(ctx), id)
}

/* ==========================
   MUTATE (creator only)
========================== */

func loadOwned(tx *gorm.DB, id, actorID uuid.UUID) (*model.ContestModel, error) {
	m, err := LoadContest(tx, id)
	if err != nil {
		return nil, err
	}
	if m.ContestCreatedBy != actorID {
		return nil, helper.Forbidden("only the contest creator can modify this contest")
	}
	return m, nil
}

// Patch: deadline tidak divalidasi ulang. Deadline baru me-reset penanda reminder.
func (s *ContestService) Patch(ctx context.Context, id, actorID uuid.UUID, req dto.PatchContestRequest) (*model.ContestModel, error) {
	if err := req.ValidatePartial(); err != nil {
		return nil, err
	}

	var out *model.ContestModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := loadOwned(tx, id, actorID)
		if err != nil {
			return err
		}
		if req.IsEmpty() {
			out = m
			return nil
		}
		if req.ApplyPatch(m) {
			m.ContestReminderSentAt = nil
		}
		if err := tx.Model(m).Select(
			"contest_title", "contest_description", "contest_rules",
			"contest_deadline", "contest_status", "contest_reminder_sent_at", "contest_updated_at",
		).Updates(m).Error; err != nil {
			return helper.Internal(err, "failed to update contest")
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Archive: soft delete via status, contest tidak pernah dihapus fisik.
func (s *ContestService) Archive(ctx context.Context, id, actorID uuid.UUID) (*model.ContestModel, error) {
	var out *model.ContestModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := loadOwned(tx, id, actorID)
		if err != nil {
			return err
		}
		if m.ContestStatus != model.ContestArchived {
			m.ContestStatus = model.ContestArchived
			if err := tx.Model(m).Select("contest_status", "contest_updated_at").Updates(m).Error; err != nil {
				return helper.Internal(err, "failed to archive contest")
			}
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
