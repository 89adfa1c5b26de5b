package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	contestModel "ievents_backend/internals/features/contests/contests/model"
	participantModel "ievents_backend/internals/features/contests/participants/model"
	notifService "ievents_backend/internals/features/home/notifications/service"
)

// Reminder membuat notifikasi deadline_reminder sekali per contest untuk contest
// aktif yang deadline-nya jatuh di (now, now+Window].
type Reminder struct {
	DB       *gorm.DB
	Notifier *notifService.NotificationService
	Every    time.Duration
	Window   time.Duration
	Now      func() time.Time
}

func NewReminder(db *gorm.DB, every, window time.Duration) *Reminder {
	if every <= 0 {
		every = time.Hour
	}
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &Reminder{
		DB:       db,
		Notifier: notifService.NewNotificationService(db),
		Every:    every,
		Window:   window,
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

func (r *Reminder) Run(ctx context.Context) {
	t := time.NewTicker(r.Every)
	defer t.Stop()

	log.Printf("[REMINDER] started, every %s, window %s", r.Every, r.Window)
	for {
		if n, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[REMINDER] run failed: %v", err)
		} else if n > 0 {
			log.Printf("[REMINDER] reminded %d contest(s)", n)
		}
		select {
		case <-ctx.Done():
			log.Println("[REMINDER] stopped")
			return
		case <-t.C:
		}
	}
}

// RunOnce: return jumlah contest yang di-remind pada putaran ini.
func (r *Reminder) RunOnce(ctx context.Context) (int, error) {
	now := r.Now()
	var due []contestModel.ContestModel
	if err := r.DB.WithContext(ctx).
		Where("contest_status = ? AND contest_reminder_sent_at IS NULL", contestModel.ContestActive).
		Where("contest_deadline > ? AND contest_deadline <= ?", now, now.Add(r.Window)).
		Order("contest_deadline ASC").
		Find(&due).Error; err != nil {
		return 0, err
	}

	done := 0
	for i := range due {
		ok, err := r.remind(ctx, &due[i], now)
		if err != nil {
			// contest lain tetap diproses; yang gagal dicoba lagi putaran berikut
			log.Printf("[REMINDER] contest=%s: %v", due[i].ContestID, err)
			continue
		}
		if ok {
			done++
		}
	}
	return done, nil
}

func (r *Reminder) remind(ctx context.Context, c *contestModel.ContestModel, now time.Time) (bool, error) {
	claimed := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// klaim dulu; proses lain yang kalah balapan dapat RowsAffected 0
		res := tx.Model(&contestModel.ContestModel{}).
			Where("contest_id = ? AND contest_reminder_sent_at IS NULL", c.ContestID).
			Update("contest_reminder_sent_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		claimed = true

		recipients, err := recipientsFor(tx, c.ContestID)
		if err != nil {
			return err
		}
		list := make([]notifService.NewNotification, 0, len(recipients))
		for _, uid := range recipients {
			list = append(list, notifService.DeadlineReminder(uid, c.ContestID, c.ContestTitle, c.ContestDeadline))
		}
		return r.Notifier.NotifyMany(tx, list)
	})
	if err != nil {
		return false, err
	}
	return claimed, nil
}

type recipientRow struct {
	ParticipantStudentID    uuid.UUID
	ParticipantRegisteredBy *uuid.UUID
}

// recipientsFor: student pending/approved + teacher yang mendaftarkan mereka, tanpa duplikat.
func recipientsFor(tx *gorm.DB, contestID uuid.UUID) ([]uuid.UUID, error) {
	var rows []recipientRow
	if err := tx.Model(&participantModel.ContestParticipantModel{}).
		Select("participant_student_id, participant_registered_by").
		Where("participant_contest_id = ? AND participant_status IN ?", contestID,
			[]string{string(participantModel.StatusPending), string(participantModel.StatusApproved)}).
		Order("participant_created_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	seen := map[uuid.UUID]struct{}{}
	out := make([]uuid.UUID, 0, len(rows))
	add := func(id uuid.UUID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, row := range rows {
		add(row.ParticipantStudentID)
		if row.ParticipantRegisteredBy != nil {
			add(*row.ParticipantRegisteredBy)
		}
	}
	return out, nil
}
