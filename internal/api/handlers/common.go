package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"reserve-backend/domain"
)

// queryLocation reads an optional lat/lng pair. Supplying only one of them is an error.
func queryLocation(c *fiber.Ctx) (*domain.Location, error) {
	rawLat, rawLng := c.Query("lat"), c.Query("lng")
	if rawLat == "" && rawLng == "" {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return nil, domain.ErrInvalidCoordinates
	}
	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil {
		return nil, domain.ErrInvalidCoordinates
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, domain.ErrInvalidCoordinates
	}
	return &domain.Location{Lat: lat, Lng: lng}, nil
}

func pageParams(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
