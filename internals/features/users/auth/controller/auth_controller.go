package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ievents_backend/internals/features/users/auth/dto"
	"ievents_backend/internals/features/users/auth/service"
	uDTO "ievents_backend/internals/features/users/user/dto"
	helper "ievents_backend/internals/helpers"
)

type AuthController struct {
	Svc      *service.AuthService
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{Svc: service.NewAuthService(db), Validate: helper.NewValidator()}
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	u, err := ac.Svc.Register(c.UserContext(), req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "user registered", uDTO.ToUserResponse(u))
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	resp, u, err := ac.Svc.Login(c.UserContext(), req)
	if err != nil {
		if helper.IsKind(err, helper.KindInvalidInput) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		return helper.JsonAppError(c, err)
	}
	resp.User = uDTO.ToUserResponse(u)
	return helper.JsonOK(c, "login successful", resp)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	u, err := ac.Svc.Me(c.UserContext(), userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", uDTO.ToUserResponse(u))
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := ac.Svc.ChangePassword(c.UserContext(), userID, req); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "password changed", nil)
}
