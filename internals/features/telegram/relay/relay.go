package relay

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	notifModel "ievents_backend/internals/features/home/notifications/model"
	"ievents_backend/internals/features/telegram/bot"
)

const (
	defaultBatch = 100
	markTimeout  = 5 * time.Second
)

type pending struct {
	NotificationID      uuid.UUID
	NotificationTitle   string
	NotificationMessage string
	ChatID              int64
}

// Worker mengirim notifikasi yang belum terkirim ke chat Telegram pemiliknya.
// Satu kali coba per notifikasi: gagal → delivery_error diisi, tidak diulang.
type Worker struct {
	DB    *gorm.DB
	Out   bot.Messenger
	Every time.Duration
	Delay time.Duration
	Batch int

	Now   func() time.Time
	Sleep func(time.Duration)
}

func NewWorker(db *gorm.DB, out bot.Messenger, every, delay time.Duration) *Worker {
	return &Worker{
		DB:    db,
		Out:   out,
		Every: every,
		Delay: delay,
		Batch: defaultBatch,
		Now:   func() time.Time { return time.Now().UTC() },
		Sleep: time.Sleep,
	}
}

func (w *Worker) Run(ctx context.Context) {
	every := w.Every
	if every <= 0 {
		every = 15 * time.Second
	}
	t := time.NewTicker(every)
	defer t.Stop()

	log.Printf("[RELAY] started, every %s", every)
	for {
		if _, _, err := w.RunOnce(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[RELAY] run failed: %v", err)
		}
		select {
		case <-ctx.Done():
			log.Println("[RELAY] stopped")
			return
		case <-t.C:
		}
	}
}

// RunOnce: hanya notifikasi yang dibuat setelah user menautkan chat.
func (w *Worker) RunOnce(ctx context.Context) (sent, failed int, err error) {
	batch := w.Batch
	if batch <= 0 {
		batch = defaultBatch
	}

	var rows []pending
	err = w.DB.WithContext(ctx).Table("notifications AS n").
		Select("n.notification_id, n.notification_title, n.notification_message, u.telegram_chat_id AS chat_id").
		Joins("JOIN users u ON u.id = n.notification_user_id").
		Where("n.notification_delivered_at IS NULL AND n.notification_delivery_error IS NULL").
		Where("u.telegram_chat_id IS NOT NULL AND u.telegram_linked_at IS NOT NULL").
		Where("n.notification_created_at >= u.telegram_linked_at").
		Order("n.notification_created_at ASC").
		Limit(batch).
		Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}

	for i, p := range rows {
		if ctx.Err() != nil {
			return sent, failed, ctx.Err()
		}
		if i > 0 && w.Delay > 0 {
			w.Sleep(w.Delay) // anti-flood
		}

		sendErr := bot.SendLong(w.Out, p.ChatID, Format(p.NotificationTitle, p.NotificationMessage))
		if sendErr != nil {
			failed++
			log.Printf("[RELAY] send notification=%s chat=%d: %v", p.NotificationID, p.ChatID, sendErr)
			msg := sendErr.Error()
			if err := w.mark(ctx, p.NotificationID, map[string]any{"notification_delivery_error": msg}); err != nil {
				log.Printf("[RELAY] mark failed notification=%s: %v", p.NotificationID, err)
			}
			continue
		}

		sent++
		if err := w.mark(ctx, p.NotificationID, map[string]any{"notification_delivered_at": w.Now()}); err != nil {
			log.Printf("[RELAY] mark delivered notification=%s: %v", p.NotificationID, err)
		}
	}
	return sent, failed, nil
}

// mark tidak ikut dibatalkan ctx worker: pesan yang sudah terkirim harus tercatat,
// kalau tidak akan terkirim ulang setelah restart.
func (w *Worker) mark(ctx context.Context, id uuid.UUID, cols map[string]any) error {
	mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), markTimeout)
	defer cancel()
	return w.DB.WithContext(mctx).Model(&notifModel.NotificationModel{}).
		Where("notification_id = ?", id).
		Updates(cols).Error
}

func Format(title, message string) string {
	return "🔔 " + title + "\n" + message
}
