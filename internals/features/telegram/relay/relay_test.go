package relay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ievents_backend/internals/constants"
	"ievents_backend/internals/databases/dbtest"
	notifModel "ievents_backend/internals/features/home/notifications/model"
	notifService "ievents_backend/internals/features/home/notifications/service"
	userModel "ievents_backend/internals/features/users/user/model"
)

type recorder struct {
	sent   map[int64][]string
	fail   map[int64]error
	onSend func()
}

func (r *recorder) SendText(chatID int64, text string) error {
	if r.onSend != nil {
		r.onSend()
	}
	if err := r.fail[chatID]; err != nil {
		return err
	}
	if r.sent == nil {
		r.sent = map[int64][]string{}
	}
	r.sent[chatID] = append(r.sent[chatID], text)
	return nil
}

func linkAt(t *testing.T, db *gorm.DB, u *userModel.UserModel, chatID int64, at time.Time) {
	require.NoError(t, db.Model(u).Updates(map[string]any{
		"telegram_chat_id":   chatID,
		"telegram_linked_at": at.UTC(),
	}).Error)
}

func notify(t *testing.T, db *gorm.DB, userID uuid.UUID, title string) *notifModel.NotificationModel {
	n, err := notifService.NewNotificationService(db).Notify(db, notifService.NewNotification{
		UserID:  userID,
		Type:    notifModel.TypeApproved,
		Title:   title,
		Message: "body of " + title,
	})
	require.NoError(t, err)
	return n
}

func load(t *testing.T, db *gorm.DB, id uuid.UUID) notifModel.NotificationModel {
	var n notifModel.NotificationModel
	require.NoError(t, db.First(&n, "notification_id = ?", id).Error)
	return n
}

func newTestWorker(db *gorm.DB, out *recorder) (*Worker, *[]time.Duration) {
	var slept []time.Duration
	w := NewWorker(db, out, time.Second, 40*time.Millisecond)
	w.Sleep = func(d time.Duration) { slept = append(slept, d) }
	return w, &slept
}

func TestRunOnce_DeliversAndMarks(t *testing.T) {
	db := dbtest.Open(t)
	u := dbtest.CreateUser(t, db, constants.RoleStudent, "Ana")
	linkAt(t, db, u, 500, time.Now().Add(-time.Hour))

	n1 := notify(t, db, u.ID, "First")
	n2 := notify(t, db, u.ID, "Second")

	out := &recorder{}
	w, slept := newTestWorker(db, out)
	sent, failed, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Zero(t, failed)
	assert.Equal(t, []string{Format("First", "body of First"), Format("Second", "body of Second")}, out.sent[500])
	assert.Equal(t, []time.Duration{40 * time.Millisecond}, *slept)

	assert.NotNil(t, load(t, db, n1.NotificationID).NotificationDeliveredAt)
	assert.NotNil(t, load(t, db, n2.NotificationID).NotificationDeliveredAt)

	// nothing left on the next pass
	sent, _, err = w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestRunOnce_FailureIsIsolatedAndNotRetried(t *testing.T) {
	db := dbtest.Open(t)
	ana := dbtest.CreateUser(t, db, constants.RoleStudent, "Ana")
	budi := dbtest.CreateUser(t, db, constants.RoleStudent, "Budi")
	linkAt(t, db, ana, 1, time.Now().Add(-time.Hour))
	linkAt(t, db, budi, 2, time.Now().Add(-time.Hour))

	bad := notify(t, db, ana.ID, "For Ana")
	good := notify(t, db, budi.ID, "For Budi")

	out := &recorder{fail: map[int64]error{1: errors.New("Forbidden: bot was blocked by the user")}}
	w, _ := newTestWorker(db, out)
	sent, failed, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, failed)

	b := load(t, db, bad.NotificationID)
	assert.Nil(t, b.NotificationDeliveredAt)
	require.NotNil(t, b.NotificationDeliveryError)
	assert.Contains(t, *b.NotificationDeliveryError, "blocked")
	assert.NotNil(t, load(t, db, good.NotificationID).NotificationDeliveredAt)

	// chat unblocked, failed row still not retried
	out.fail = nil
	sent, failed, err = w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Zero(t, failed)
	assert.Empty(t, out.sent[1])
}

func TestRunOnce_SkipsUnlinkedAndPreLinkNotifications(t *testing.T) {
	db := dbtest.Open(t)
	ana := dbtest.CreateUser(t, db, constants.RoleStudent, "Ana")
	loner := dbtest.CreateUser(t, db, constants.RoleStudent, "Loner")

	old := notify(t, db, ana.ID, "Before link")
	notify(t, db, loner.ID, "Nobody listens")

	linkAt(t, db, ana, 9, time.Now().Add(time.Second))
	require.NoError(t, db.Model(&notifModel.NotificationModel{}).
		Where("notification_id = ?", old.NotificationID).
		Update("notification_created_at", time.Now().Add(-time.Hour).UTC()).Error)

	var linked userModel.UserModel
	require.NoError(t, db.First(&linked, "id = ?", ana.ID).Error)
	fresh := notify(t, db, ana.ID, "After link")
	require.NoError(t, db.Model(&notifModel.NotificationModel{}).
		Where("notification_id = ?", fresh.NotificationID).
		Update("notification_created_at", linked.TelegramLinkedAt.Add(time.Minute).UTC()).Error)

	out := &recorder{}
	w, _ := newTestWorker(db, out)
	sent, _, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{Format("After link", "body of After link")}, out.sent[9])
	assert.Nil(t, load(t, db, old.NotificationID).NotificationDeliveredAt)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "🔔 Result posted\nScore 90.", Format("Result posted", "Score 90."))
}

func TestRunOnce_MarksDeliveredEvenWhenCancelledAfterSend(t *testing.T) {
	db := dbtest.Open(t)
	u := dbtest.CreateUser(t, db, constants.RoleStudent, "Ana")
	linkAt(t, db, u, 600, time.Now().Add(-time.Hour))
	first := notify(t, db, u.ID, "First")
	second := notify(t, db, u.ID, "Second")
	require.NoError(t, db.Model(&notifModel.NotificationModel{}).
		Where("notification_id = ?", first.NotificationID).
		Update("notification_created_at", time.Now().Add(-time.Minute).UTC()).Error)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// shutdown tepat setelah pesan pertama terkirim
	out := &recorder{onSend: cancel}
	w, _ := newTestWorker(db, out)

	sent, _, err := w.RunOnce(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, sent)
	assert.Len(t, out.sent[600], 1)

	assert.NotNil(t, load(t, db, first.NotificationID).NotificationDeliveredAt)
	s := load(t, db, second.NotificationID)
	assert.Nil(t, s.NotificationDeliveredAt)
	assert.Nil(t, s.NotificationDeliveryError)
}
