package handlers

import (
	"github.com/gofiber/fiber/v2"

	"reserve-backend/domain"
	"reserve-backend/internal/api/presenters"
	"reserve-backend/pkg/notification"
)

type (
	NotificationHandler interface {
		GetNotifications(c *fiber.Ctx) error
		MarkRead(c *fiber.Ctx) error
	}

	notificationHandler struct {
		notificationService notification.NotificationService
	}
)

func NewNotificationHandler(notificationService notification.NotificationService) NotificationHandler {
	return &notificationHandler{
		notificationService: notificationService,
	}
}

func (h *notificationHandler) GetNotifications(c *fiber.Ctx) error {
	res, err := h.notificationService.List(c.Context(), userID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetNotifications, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *notificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.notificationService.MarkRead(c.Context(), c.Params("id"), userID(c)); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedMarkRead, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkRead)
}
