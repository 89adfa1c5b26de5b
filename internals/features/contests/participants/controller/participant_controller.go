package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ievents_backend/internals/constants"
	"ievents_backend/internals/features/contests/participants/dto"
	"ievents_backend/internals/features/contests/participants/service"
	helper "ievents_backend/internals/helpers"
)

type ParticipantController struct {
	Svc *service.ParticipantService
}

func NewParticipantController(db *gorm.DB) *ParticipantController {
	return &ParticipantController{Svc: service.NewParticipantService(db)}
}

// POST /api/contests/:id/register (teacher)
func (ctrl *ParticipantController) Register(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	contestID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.RegisterStudentsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonErrorWithHints(c, fiber.StatusBadRequest, string(helper.KindInvalidInput),
			"invalid request body", map[string]any{"required": []string{"student_ids"}})
	}
	ids, err := req.ParseIDs()
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	res, err := ctrl.Svc.RegisterStudents(c.UserContext(), contestID, ids, teacherID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":           true,
		"message":           "registration processed",
		"registered":        res.Registered,
		"alreadyRegistered": res.AlreadyRegistered,
		"registeredCount":   res.RegisteredCount,
	})
}

// GET /api/contests/:id/participants?status=
func (ctrl *ParticipantController) List(c *fiber.Ctx) error {
	contestID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))

	rows, err := ctrl.Svc.ListParticipants(c.UserContext(), contestID, status)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"participants": rows,
		"count":        len(rows),
	})
}

// PATCH /api/contests/:id/participants/:participantId (methodist)
func (ctrl *ParticipantController) UpdateStatus(c *fiber.Ctx) error {
	contestID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	participantID, err := helper.ParseUUIDParam(c, "participantId")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()

	p, err := ctrl.Svc.SetRegistrationStatus(c.UserContext(), contestID, participantID, req.Status)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "registration status updated",
		"participant": p,
	})
}

// DELETE /api/contests/:id/participants/:participantId
func (ctrl *ParticipantController) Cancel(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	contestID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	participantID, err := helper.ParseUUIDParam(c, "participantId")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	if err := ctrl.Svc.Cancel(c.UserContext(), contestID, participantID, actorID); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "registration cancelled", fiber.Map{"participant_id": participantID})
}

// GET /api/contests/registrations[?student_id=]
func (ctrl *ParticipantController) ListRegistrations(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	studentID := userID
	if helper.GetUserRole(c) != constants.RoleStudent {
		raw := strings.TrimSpace(c.Query("student_id"))
		if raw == "" {
			return helper.JsonAppError(c, helper.InvalidInput("student_id is required").WithHint("required", []string{"student_id"}))
		}
		if studentID, err = uuid.Parse(raw); err != nil {
			return helper.JsonAppError(c, helper.InvalidInput("invalid student_id"))
		}
	}

	rows, err := ctrl.Svc.ListRegistrations(c.UserContext(), studentID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"registrations": rows,
		"count":         len(rows),
	})
}
