package database

import (
	"log"

	"gorm.io/gorm"

	contestModel "ievents_backend/internals/features/contests/contests/model"
	participantModel "ievents_backend/internals/features/contests/participants/model"
	resultModel "ievents_backend/internals/features/contests/results/model"
	notificationModel "ievents_backend/internals/features/home/notifications/model"
	userModel "ievents_backend/internals/features/users/user/model"
)

// Models: urutan leaf dulu.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&contestModel.ContestModel{},
		&participantModel.ContestParticipantModel{},
		&resultModel.ContestResultModel{},
		&notificationModel.NotificationModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func MigrateTables() {
	if err := AutoMigrate(DB); err != nil {
		log.Fatalf("[ERROR] migration failed: %v", err)
	}
	log.Println("[INFO] Database migration completed.")
}
