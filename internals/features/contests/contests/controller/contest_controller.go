package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ievents_backend/internals/features/contests/contests/dto"
	"ievents_backend/internals/features/contests/contests/service"
	helper "ievents_backend/internals/helpers"
)

type ContestController struct {
	Svc      *service.ContestService
	Validate *validator.Validate
}

func NewContestController(db *gorm.DB) *ContestController {
	return &ContestController{Svc: service.NewContestService(db), Validate: helper.NewValidator()}
}

func (ctrl *ContestController) now() time.Time { return ctrl.Svc.Now() }

// POST /api/contests
func (ctrl *ContestController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CreateContestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := req.Validate(ctrl.Validate); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := ctrl.Svc.Create(c.UserContext(), userID, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "contest created", dto.ToContestResponse(m, ctrl.now()))
}

// GET /api/contests?status=&from=&to=&q=
func (ctrl *ContestController) List(c *fiber.Ctx) error {
	var q dto.ListContestsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	f, err := q.ToFilter()
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	rows, err := ctrl.Svc.List(c.UserContext(), f)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "contests loaded", fiber.Map{
		"contests": dto.ToContestResponseList(rows, ctrl.now()),
		"count":    len(rows),
	})
}

// GET /api/contests/:id
func (ctrl *ContestController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctrl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToContestResponse(m, ctrl.now()))
}

// PATCH /api/contests/:id
func (ctrl *ContestController) Patch(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.PatchContestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()

	m, err := ctrl.Svc.Patch(c.UserContext(), id, userID, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "contest updated", dto.ToContestResponse(m, ctrl.now()))
}

// DELETE /api/contests/:id → archive
func (ctrl *ContestController) Archive(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctrl.Svc.Archive(c.UserContext(), id, userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "contest archived", dto.ToContestResponse(m, ctrl.now()))
}
