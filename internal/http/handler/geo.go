package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"advocatehub/internal/geo"
)

// Locate returns the caller's position as [longitude, latitude].
//
// @Summary Locate the caller
// @Tags geo
// @Success 200 {array} number
// @Failure 501 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /geo/locate [get]
func Locate(loc geo.Locator) fiber.Handler {
	if loc == nil {
		loc = geo.Unsupported{}
	}
	return func(c *fiber.Ctx) error {
		coords, err := loc.Locate(geo.WithClientIP(c.UserContext(), c.IP()))
		if err != nil {
			var perr *geo.PlatformError
			switch {
			case errors.Is(err, geo.ErrNotSupported):
				return writeError(c, fiber.StatusNotImplemented, "NOT_SUPPORTED", err.Error())
			case errors.As(err, &perr):
				return writeError(c, fiber.StatusBadGateway, "GEOLOCATION_FAILED", perr.Error())
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(coords)
	}
}
