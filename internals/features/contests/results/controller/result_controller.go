package controller

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	contestDTO "ievents_backend/internals/features/contests/contests/dto"
	"ievents_backend/internals/features/contests/results/dto"
	"ievents_backend/internals/features/contests/results/export"
	"ievents_backend/internals/features/contests/results/service"
	helper "ievents_backend/internals/helpers"
)

type ResultController struct {
	Svc      *service.ResultService
	Sheets   export.Writer
	Validate *validator.Validate
}

// NewResultController: sheets boleh nil (export → 503).
func NewResultController(db *gorm.DB, sheets export.Writer) *ResultController {
	return &ResultController{Svc: service.NewResultService(db), Sheets: sheets, Validate: helper.NewValidator()}
}

// POST /api/contests/:id/results
func (ctrl *ResultController) Upsert(c *fiber.Ctx) error {
	contestID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.UpsertResultRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return helper.JsonAppError(c, helper.InvalidInput("invalid student_id"))
	}

	r, err := ctrl.Svc.UpsertResult(c.UserContext(), contestID, studentID, *req.Score, req.Rank)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "result saved", r)
}

// PATCH /api/contests/:id/results/:studentId
func (ctrl *ResultController) Patch(c *fiber.Ctx) error {
	contestID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	studentID, err := helper.ParseUUIDParam(c, "studentId")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.PatchResultRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	r, err := ctrl.Svc.PatchResult(c.UserContext(), contestID, studentID, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "result updated", r)
}

// GET /api/contests/:id/results
func (ctrl *ResultController) List(c *fiber.Ctx) error {
	contestID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	contest, rows, err := ctrl.Svc.GetContestResults(c.UserContext(), contestID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"contest": contestDTO.ToContestResponse(contest, time.Now().UTC()),
		"results": rows,
		"count":   len(rows),
	})
}

// POST /api/contests/:id/results/export
func (ctrl *ResultController) Export(c *fiber.Ctx) error {
	if ctrl.Sheets == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, export.ErrNotConfigured.Error())
	}
	contestID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	_, rows, err := ctrl.Svc.GetContestResults(c.UserContext(), contestID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	tab := contestID.String()
	if err := ctrl.Sheets.WriteTable(c.UserContext(), tab, export.LeaderboardTable(rows)); err != nil {
		log.Printf("[ERROR] sheets export contest=%s: %v", contestID, err)
		return helper.JsonError(c, fiber.StatusBadGateway, "failed to write spreadsheet")
	}
	return helper.JsonOK(c, "leaderboard exported", fiber.Map{"sheet": tab, "rows": len(rows)})
}
