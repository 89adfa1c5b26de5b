package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ievents_backend/internals/features/contests/stats/service"
	helper "ievents_backend/internals/helpers"
)

type StatsController struct {
	Svc *service.StatsService
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{Svc: service.NewStatsService(db)}
}

// GET /api/contests/:id/stats
func (ctrl *StatsController) ContestStats(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	out, err := ctrl.Svc.ContestStats(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", out)
}

// GET /api/dashboard/student
func (ctrl *StatsController) StudentDashboard(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	out, err := ctrl.Svc.StudentDashboard(c.UserContext(), userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", out)
}
