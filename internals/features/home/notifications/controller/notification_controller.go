package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ievents_backend/internals/features/home/notifications/dto"
	"ievents_backend/internals/features/home/notifications/service"
	helper "ievents_backend/internals/helpers"
)

type NotificationController struct {
	Svc *service.NotificationService
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{Svc: service.NewNotificationService(db)}
}

// GET /api/notifications?is_read=true|false
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var isRead *bool
	if raw := strings.TrimSpace(c.Query("is_read")); raw != "" {
		v, perr := strconv.ParseBool(raw)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "is_read must be true or false")
		}
		isRead = &v
	}

	rows, err := ctrl.Svc.List(c.UserContext(), userID, isRead)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "notifications loaded", dto.ToNotificationResponseList(rows))
}

// GET /api/notifications/unread-count
func (ctrl *NotificationController) UnreadCount(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	n, err := ctrl.Svc.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", dto.UnreadCountResponse{Unread: n})
}

// PATCH /api/notifications/:id/read
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := ctrl.Svc.MarkRead(c.UserContext(), id, userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "notification marked as read", dto.ToNotificationResponse(m))
}

// PATCH /api/notifications/read-all
func (ctrl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	n, err := ctrl.Svc.MarkAllRead(c.UserContext(), userID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "all notifications marked as read", dto.MarkAllReadResponse{Updated: n})
}
