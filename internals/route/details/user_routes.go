package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "ievents_backend/internals/features/users/user/route"
)

// UserRoutes: api sudah ter-autentikasi.
func UserRoutes(api fiber.Router, db *gorm.DB) {
	userRoute.UserRoutes(api, db)
}
