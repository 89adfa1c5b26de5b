// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ievents_backend/internals/features/contests/results/export"
	rateLimiter "ievents_backend/internals/middlewares"
	authMiddleware "ievents_backend/internals/middlewares/auth"
	routeDetails "ievents_backend/internals/route/details"
)

var startTime = time.Now()

type Options struct {
	// Sheets nil → export leaderboard 503
	Sheets export.Writer
}

func SetupRoutes(app *fiber.App, db *gorm.DB, opts Options) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH (public) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== PRIVATE =====================
	api := app.Group("/api",
		rateLimiter.GlobalRateLimiter(),
		authMiddleware.AuthMiddleware(db),
	)

	log.Println("[INFO] Mounting user routes...")
	routeDetails.UserRoutes(api, db)

	log.Println("[INFO] Mounting contest routes...")
	routeDetails.ContestRoutes(api, db, opts.Sheets)

	log.Println("[INFO] Mounting notification routes...")
	routeDetails.HomeRoutes(api, db)
}
