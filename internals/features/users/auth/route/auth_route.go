// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "ievents_backend/internals/features/users/auth/controller"
	rateLimiter "ievents_backend/internals/middlewares"
	authMiddleware "ievents_backend/internals/middlewares/auth"
)

// AuthRoutes: Base /api/auth. register/login publik, sisanya butuh token.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)

	requireAuth := authMiddleware.AuthMiddleware(db)
	baseAuth.Get("/me", requireAuth, authController.Me)
	baseAuth.Post("/change-password", requireAuth, authController.ChangePassword)
}
