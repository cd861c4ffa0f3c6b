package handlers

import (
	"github.com/gofiber/fiber/v2"

	"reserve-backend/domain"
	"reserve-backend/internal/api/presenters"
	"reserve-backend/pkg/donation"
	"reserve-backend/pkg/user"
)

type (
	NgoHandler interface {
		GetFeed(c *fiber.Ctx) error
		AcceptPost(c *fiber.Ctx) error
		MarkReached(c *fiber.Ctx) error
		ReleasePost(c *fiber.Ctx) error
		GetReviews(c *fiber.Ctx) error
	}

	ngoHandler struct {
		donationService donation.DonationService
		userService     user.UserService
	}
)

func NewNgoHandler(donationService donation.DonationService, userService user.UserService) NgoHandler {
	return &ngoHandler{
		donationService: donationService,
		userService:     userService,
	}
}

func (h *ngoHandler) GetFeed(c *fiber.Ctx) error {
	from, err := queryLocation(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFeed, err)
	}

	feed, err := h.donationService.Feed(c.Context(), userID(c), from)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetFeed, err)
	}

	return presenters.SuccessResponse(c, feed, fiber.StatusOK, domain.MessageSuccessGetFeed)
}

func (h *ngoHandler) AcceptPost(c *fiber.Ctx) error {
	post, err := h.donationService.Accept(c.Context(), c.Params("id"), userID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedAcceptDonation, err)
	}

	return presenters.SuccessResponse(c, post, fiber.StatusOK, domain.MessageSuccessAcceptDonation)
}

func (h *ngoHandler) MarkReached(c *fiber.Ctx) error {
	post, err := h.donationService.MarkReached(c.Context(), c.Params("id"), userID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedMarkReached, err)
	}

	return presenters.SuccessResponse(c, post, fiber.StatusOK, domain.MessageSuccessMarkReached)
}

func (h *ngoHandler) ReleasePost(c *fiber.Ctx) error {
	post, err := h.donationService.CancelPickup(c.Context(), c.Params("id"), userID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedReleasePickup, err)
	}

	return presenters.SuccessResponse(c, post, fiber.StatusOK, domain.MessageSuccessReleasePickup)
}

func (h *ngoHandler) GetReviews(c *fiber.Ctx) error {
	reviews, err := h.userService.ListReviews(c.Context(), userID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetReviews, err)
	}

	return presenters.SuccessResponse(c, reviews, fiber.StatusOK, domain.MessageSuccessGetReviews)
}
