package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ievents_backend/internals/features/home/notifications/controller"
)

// NotificationRoutes: semua endpoint butuh user login (router sudah di-protect).
func NotificationRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotificationController(db)

	g := r.Group("/notifications")
	g.Get("/", ctrl.List)
	g.Get("/unread-count", ctrl.UnreadCount)
	g.Patch("/read-all", ctrl.MarkAllRead)
	g.Patch("/:id/read", ctrl.MarkRead)
}
