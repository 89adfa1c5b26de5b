package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ievents_backend/internals/constants"
	"ievents_backend/internals/features/contests/stats/controller"
	authMiddleware "ievents_backend/internals/middlewares/auth"
)

func StatsRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStatsController(db)

	r.Get("/contests/:id/stats",
		authMiddleware.OnlyRoles(constants.RoleErrorMethodist("contest statistics"), constants.MethodistOnly...),
		ctrl.ContestStats,
	)
	r.Get("/dashboard/student",
		authMiddleware.OnlyRoles(constants.RoleErrorStudent("the student dashboard"), constants.StudentOnly...),
		ctrl.StudentDashboard,
	)
}
