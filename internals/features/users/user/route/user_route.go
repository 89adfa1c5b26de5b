package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ievents_backend/internals/constants"
	userController "ievents_backend/internals/features/users/user/controller"
	authMiddleware "ievents_backend/internals/middlewares/auth"
)

// UserRoutes: r sudah melewati AuthMiddleware.
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	users := r.Group("/users")
	users.Get("/",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("the user directory"), constants.StaffRoles...),
		ctrl.List,
	)
	users.Patch("/:id/role",
		authMiddleware.OnlyRoles(constants.RoleErrorMethodist("role management"), constants.MethodistOnly...),
		ctrl.ChangeRole,
	)
}
