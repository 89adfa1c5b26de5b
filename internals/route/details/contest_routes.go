package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	contestRoute "ievents_backend/internals/features/contests/contests/route"
	participantRoute "ievents_backend/internals/features/contests/participants/route"
	"ievents_backend/internals/features/contests/results/export"
	resultRoute "ievents_backend/internals/features/contests/results/route"
	statsRoute "ievents_backend/internals/features/contests/stats/route"
)

// ContestRoutes: urutan penting, route statis & nested dulu baru /contests/:id.
func ContestRoutes(api fiber.Router, db *gorm.DB, sheets export.Writer) {
	participantRoute.ParticipantRoutes(api, db)
	resultRoute.ResultRoutes(api, db, sheets)
	statsRoute.StatsRoutes(api, db)
	contestRoute.ContestRoutes(api, db)
}
