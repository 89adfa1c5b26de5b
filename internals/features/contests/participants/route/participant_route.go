package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ievents_backend/internals/constants"
	"ievents_backend/internals/features/contests/participants/controller"
	authMiddleware "ievents_backend/internals/middlewares/auth"
)

// ParticipantRoutes harus dipasang sebelum ContestRoutes supaya /contests/registrations tidak tertangkap /:id.
func ParticipantRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewParticipantController(db)

	g := r.Group("/contests")
	g.Get("/registrations", ctrl.ListRegistrations)

	g.Post("/:id/register",
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("student registration"), constants.TeacherOnly...),
		ctrl.Register,
	)
	g.Get("/:id/participants", ctrl.List)
	g.Patch("/:id/participants/:participantId",
		authMiddleware.OnlyRoles(constants.RoleErrorMethodist("registration approval"), constants.MethodistOnly...),
		ctrl.UpdateStatus,
	)
	g.Delete("/:id/participants/:participantId", ctrl.Cancel)
}
