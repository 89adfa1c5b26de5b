package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ievents_backend/internals/features/home/notifications/model"
	helper "ievents_backend/internals/helpers"
)

// ListLimit: halaman notifikasi dibatasi 50, terbaru dulu.
const ListLimit = 50

type NewNotification struct {
	UserID  uuid.UUID
	Type    model.NotificationType
	Title   string
	Message string
	Payload map[string]any
}

func (n NewNotification) toModel() model.NotificationModel {
	m := model.NotificationModel{
		NotificationUserID:  n.UserID,
		NotificationType:    n.Type,
		NotificationTitle:   n.Title,
		NotificationMessage: n.Message,
	}
	if len(n.Payload) > 0 {
		m.NotificationPayload = datatypes.JSONMap(n.Payload)
	}
	return m
}

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// Notify menulis satu notifikasi memakai tx milik caller, jadi ikut commit/rollback unit kerja caller.
func (s *NotificationService) Notify(tx *gorm.DB, n NewNotification) (*model.NotificationModel, error) {
	m := n.toModel()
	if err := tx.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// NotifyMany: bulk insert (broadcast), tetap di dalam tx caller.
func (s *NotificationService) NotifyMany(tx *gorm.DB, list []NewNotification) error {
	if len(list) == 0 {
		return nil
	}
	rows := make([]model.NotificationModel, 0, len(list))
	for _, n := range list {
		rows = append(rows, n.toModel())
	}
	return tx.CreateInBatches(&rows, 500).Error
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, isRead *bool) ([]model.NotificationModel, error) {
	q := s.DB.WithContext(ctx).Where("notification_user_id = ?", userID)
	if isRead != nil {
		q = q.Where("notification_is_read = ?", *isRead)
	}
	var rows []model.NotificationModel
	if err := q.Order("notification_created_at DESC").Limit(ListLimit).Find(&rows).Error; err != nil {
		return nil, helper.Internal(err, "failed to load notifications")
	}
	return rows, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = ?", userID, false).
		Count(&n).Error; err != nil {
		return 0, helper.Internal(err, "failed to count notifications")
	}
	return n, nil
}

// MarkRead hanya untuk pemilik notifikasi.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) (*model.NotificationModel, error) {
	var m model.NotificationModel
	if err := s.DB.WithContext(ctx).First(&m, "notification_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, helper.NotFound("notification not found")
		}
		return nil, helper.Internal(err, "failed to load notification")
	}
	if m.NotificationUserID != userID {
		return nil, helper.Forbidden("notification belongs to another user")
	}
	if m.NotificationIsRead {
		return &m, nil
	}

	now := time.Now().UTC()
	if err := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_id = ?", id).
		Updates(map[string]any{
			"notification_is_read": true,
			"notification_read_at": now,
		}).Error; err != nil {
		return nil, helper.Internal(err, "failed to update notification")
	}
	m.NotificationIsRead = true
	m.NotificationReadAt = &now
	return &m, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = ?", userID, false).
		Updates(map[string]any{
			"notification_is_read": true,
			"notification_read_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, helper.Internal(res.Error, "failed to update notifications")
	}
	return res.RowsAffected, nil
}
