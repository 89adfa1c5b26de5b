package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	userModel "ievents_backend/internals/features/users/user/model"
)

var ErrNoSuchUser = errors.New("no active user with this email")

// Linker memegang mapping chat Telegram ↔ user. Eksklusif dua arah.
type Linker struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewLinker(db *gorm.DB) *Linker {
	return &Linker{DB: db, Now: func() time.Time { return time.Now().UTC() }}
}

func (l *Linker) UserByChat(ctx context.Context, chatID int64) (*userModel.UserModel, error) {
	var u userModel.UserModel
	err := l.DB.WithContext(ctx).Where("telegram_chat_id = ?", chatID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// LinkByEmail: lepas chat ini dari user lain dulu, lalu timpa chat lama milik user target.
func (l *Linker) LinkByEmail(ctx context.Context, chatID int64, username, email string) (*userModel.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u userModel.UserModel
	err := l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ? AND is_active = ?", email, true).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoSuchUser
			}
			return err
		}

		if err := tx.Model(&userModel.UserModel{}).
			Where("telegram_chat_id = ? AND id <> ?", chatID, u.ID).
			Updates(map[string]any{
				"telegram_chat_id":   nil,
				"telegram_username":  nil,
				"telegram_linked_at": nil,
			}).Error; err != nil {
			return err
		}

		now := l.Now()
		var uname *string
		if username != "" {
			uname = &username
		}
		if err := tx.Model(&u).Updates(map[string]any{
			"telegram_chat_id":   chatID,
			"telegram_username":  uname,
			"telegram_linked_at": now,
		}).Error; err != nil {
			return err
		}
		u.TelegramChatID = &chatID
		u.TelegramUsername = uname
		u.TelegramLinkedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Unlink: tanpa syarat. Return false kalau chat memang belum terhubung.
func (l *Linker) Unlink(ctx context.Context, chatID int64) (bool, error) {
	res := l.DB.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("telegram_chat_id = ?", chatID).
		Updates(map[string]any{
			"telegram_chat_id":   nil,
			"telegram_username":  nil,
			"telegram_linked_at": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
