package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationRoute "ievents_backend/internals/features/home/notifications/route"
)

func HomeRoutes(api fiber.Router, db *gorm.DB) {
	notificationRoute.NotificationRoutes(api, db)
}
