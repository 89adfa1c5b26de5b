package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ievents_backend/internals/features/users/user/dto"
	"ievents_backend/internals/features/users/user/service"
	helper "ievents_backend/internals/helpers"
)

type UserController struct {
	Svc      *service.UserService
	Validate *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{Svc: service.NewUserService(db), Validate: helper.NewValidator()}
}

// GET /api/users?role=&q=&page=&per_page=&sort_by=&order=
func (ctrl *UserController) List(c *fiber.Ctx) error {
	var q dto.ListUsersQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query")
	}
	q.Normalize()
	if err := ctrl.Validate.Struct(&q); err != nil {
		return helper.JsonValidationError(c, err)
	}

	p := helper.ParsePage(c, "full_name", "asc", helper.DirectoryOpts)
	rows, total, err := ctrl.Svc.List(c.UserContext(), q.Role, q.Q, p)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "users loaded", fiber.Map{
		"users":      dto.ToUserResponseList(rows),
		"count":      len(rows),
		"pagination": helper.BuildPageMeta(total, p),
	})
}

// PATCH /api/users/:id/role
func (ctrl *UserController) ChangeRole(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	u, err := ctrl.Svc.ChangeRole(c.UserContext(), id, req.Role)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "role updated", dto.ToUserResponse(u))
}
