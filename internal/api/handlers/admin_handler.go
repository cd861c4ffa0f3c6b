package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"reserve-backend/domain"
	"reserve-backend/internal/api/presenters"
	"reserve-backend/pkg/user"
)

type (
	AdminHandler interface {
		GetUsers(c *fiber.Ctx) error
		UpdateStatus(c *fiber.Ctx) error
		VerifyUser(c *fiber.Ctx) error
		GetStats(c *fiber.Ctx) error
	}

	adminHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewAdminHandler(userService user.UserService, validator *validator.Validate) AdminHandler {
	return &adminHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *adminHandler) GetUsers(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	users, pagination, err := h.userService.ListUsers(c.Context(), c.Query("role"), page, limit)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetUsers, err)
	}

	return presenters.SuccessResponse(c, presenters.PaginatedData{
		Items:      users,
		Pagination: pagination,
	}, fiber.StatusOK, domain.MessageSuccessGetUsers)
}

func (h *adminHandler) UpdateStatus(c *fiber.Ctx) error {
	req := new(domain.UpdateAccountStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStatus, err)
	}

	if err := h.userService.UpdateAccountStatus(c.Context(), c.Params("id"), *req); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUpdateStatus, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateStatus)
}

func (h *adminHandler) VerifyUser(c *fiber.Ctx) error {
	req := new(domain.VerifyUserRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.userService.VerifyUser(c.Context(), c.Params("id"), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedVerifyUser, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessVerifyUser)
}

func (h *adminHandler) GetStats(c *fiber.Ctx) error {
	res, err := h.userService.Stats(c.Context())
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStats)
}
