package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"reserve-backend/domain"
	"reserve-backend/internal/api/presenters"
	"reserve-backend/pkg/donation"
)

type (
	// DonationHandler serves the donor side of the pickup lifecycle.
	DonationHandler interface {
		CreatePost(c *fiber.Ctx) error
		GetPosts(c *fiber.Ctx) error
		GetPost(c *fiber.Ctx) error
		DeletePost(c *fiber.Ctx) error
		UploadPostImage(c *fiber.Ctx) error
		ConfirmPickup(c *fiber.Ctx) error
		CancelDonation(c *fiber.Ctx) error
		RateNgo(c *fiber.Ctx) error
		ClassifyFood(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
		validator       *validator.Validate
	}
)

func NewDonationHandler(donationService donation.DonationService, validator *validator.Validate) DonationHandler {
	return &donationHandler{
		donationService: donationService,
		validator:       validator,
	}
}

func (h *donationHandler) CreatePost(c *fiber.Ctx) error {
	req := new(domain.CreatePostRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDonation, err)
	}

	post, err := h.donationService.Create(c.Context(), *req, userID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedCreateDonation, err)
	}

	return presenters.SuccessResponse(c, post, fiber.StatusCreated, domain.MessageSuccessCreateDonation)
}

func (h *donationHandler) GetPosts(c *fiber.Ctx) error {
	posts, err := h.donationService.ListByDonor(c.Context(), userID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, posts, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.donationService.GetForDonor(c.Context(), c.Params("id"), userID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, post, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) DeletePost(c *fiber.Ctx) error {
	if err := h.donationService.Delete(c.Context(), c.Params("id"), userID(c)); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedDeleteDonation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteDonation)
}

func (h *donationHandler) UploadPostImage(c *fiber.Ctx) error {
	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	post, err := h.donationService.UploadImage(c.Context(), c.Params("id"), userID(c), image)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUploadFoodImage, err)
	}

	return presenters.SuccessResponse(c, post, fiber.StatusOK, domain.MessageSuccessUploadFoodImage)
}

func (h *donationHandler) ConfirmPickup(c *fiber.Ctx) error {
	post, err := h.donationService.ConfirmPickup(c.Context(), c.Params("id"), userID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedConfirmPickup, err)
	}

	return presenters.SuccessResponse(c, post, fiber.StatusOK, domain.MessageSuccessConfirmPickup)
}

func (h *donationHandler) CancelDonation(c *fiber.Ctx) error {
	post, err := h.donationService.CancelDonation(c.Context(), c.Params("id"), userID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedCancelDonation, err)
	}

	return presenters.SuccessResponse(c, post, fiber.StatusOK, domain.MessageSuccessCancelDonation)
}

func (h *donationHandler) RateNgo(c *fiber.Ctx) error {
	req := new(domain.RateNgoRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRateNgo, err)
	}

	if err := h.donationService.RateNgo(c.Context(), c.Params("id"), userID(c), *req); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedRateNgo, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRateNgo)
}

func (h *donationHandler) ClassifyFood(c *fiber.Ctx) error {
	req := new(domain.FoodItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedClassifyFood, err)
	}

	res := h.donationService.ClassifyItem(c.Context(), *req)
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessClassifyFood)
}
