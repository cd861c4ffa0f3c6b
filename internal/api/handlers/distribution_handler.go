package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"reserve-backend/domain"
	"reserve-backend/internal/api/presenters"
	"reserve-backend/pkg/distribution"
)

type (
	// DistributionHandler covers the hand-off from NGOs to recipients and the donor history view.
	DistributionHandler interface {
		GetRecipients(c *fiber.Ctx) error
		RecordDelivery(c *fiber.Ctx) error
		GetDeliveries(c *fiber.Ctx) error
		GetIncoming(c *fiber.Ctx) error
		UpdatePeopleCount(c *fiber.Ctx) error
		GetDonorHistory(c *fiber.Ctx) error
	}

	distributionHandler struct {
		distributionService distribution.DistributionService
		validator           *validator.Validate
	}
)

func NewDistributionHandler(distributionService distribution.DistributionService, validator *validator.Validate) DistributionHandler {
	return &distributionHandler{
		distributionService: distributionService,
		validator:           validator,
	}
}

func (h *distributionHandler) GetRecipients(c *fiber.Ctx) error {
	from, err := queryLocation(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipients, err)
	}

	res, err := h.distributionService.ListRecipients(c.Context(), userID(c), from)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetRecipients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipients)
}

func (h *distributionHandler) RecordDelivery(c *fiber.Ctx) error {
	req := new(domain.RecordDeliveryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRecordDelivery, err)
	}

	res, err := h.distributionService.RecordDelivery(c.Context(), userID(c), *req)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedRecordDelivery, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRecordDelivery)
}

func (h *distributionHandler) GetDeliveries(c *fiber.Ctx) error {
	res, err := h.distributionService.ListDeliveries(c.Context(), userID(c), c.Query("date"))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetDeliveries, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDeliveries)
}

func (h *distributionHandler) GetIncoming(c *fiber.Ctx) error {
	res, err := h.distributionService.ListIncoming(c.Context(), userID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetDeliveries, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDeliveries)
}

func (h *distributionHandler) UpdatePeopleCount(c *fiber.Ctx) error {
	req := new(domain.UpdatePeopleCountRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePeopleCount, err)
	}

	if err := h.distributionService.UpdatePeopleCount(c.Context(), userID(c), *req); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUpdatePeopleCount, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdatePeopleCount)
}

func (h *distributionHandler) GetDonorHistory(c *fiber.Ctx) error {
	res, err := h.distributionService.DonorHistory(c.Context(), userID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetHistory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHistory)
}
