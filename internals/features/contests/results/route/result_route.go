package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ievents_backend/internals/constants"
	"ievents_backend/internals/features/contests/results/controller"
	"ievents_backend/internals/features/contests/results/export"
	authMiddleware "ievents_backend/internals/middlewares/auth"
)

func ResultRoutes(r fiber.Router, db *gorm.DB, sheets export.Writer) {
	ctrl := controller.NewResultController(db, sheets)
	onlyMethodist := authMiddleware.OnlyRoles(constants.RoleErrorMethodist("result recording"), constants.MethodistOnly...)

	g := r.Group("/contests/:id/results")
	g.Get("/", ctrl.List)
	g.Post("/", onlyMethodist, ctrl.Upsert)
	g.Post("/export", onlyMethodist, ctrl.Export)
	g.Patch("/:studentId", onlyMethodist, ctrl.Patch)
}
