package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ievents_backend/internals/constants"
	"ievents_backend/internals/features/contests/contests/controller"
	authMiddleware "ievents_backend/internals/middlewares/auth"
)

// ContestRoutes: /contests. Dipasang setelah route statis (/contests/registrations).
func ContestRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewContestController(db)
	onlyMethodist := authMiddleware.OnlyRoles(constants.RoleErrorMethodist("contest management"), constants.MethodistOnly...)

	g := r.Group("/contests")
	g.Get("/", ctrl.List)
	g.Post("/", onlyMethodist, ctrl.Create)
	g.Get("/:id", ctrl.Get)
	g.Patch("/:id", onlyMethodist, ctrl.Patch)
	g.Delete("/:id", onlyMethodist, ctrl.Archive)
}
