package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/smartcity/context-hub/internal/city"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, srv *city.Server) {
	v1 := app.Group("/api/v1")

	v1.Post("/ask", func(c *fiber.Ctx) error {
		var req askRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		answer := srv.Ask(c.Context(), req.Question)
		return c.JSON(answer)
	})

	v1.Put("/city", func(c *fiber.Ctx) error {
		var req cityRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := srv.ConfigureCity(req.City, req.Country); err != nil {
			if errors.Is(err, city.ErrInvalidCity) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to configure city")
		}

		return c.JSON(fiber.Map{
			"location": srv.Location(),
		})
	})

	v1.Post("/refresh", func(c *fiber.Ctx) error {
		warmed, unavailable := srv.Refresh(c.Context())
		return c.JSON(fiber.Map{
			"location":    srv.Location(),
			"warmed":      warmed,
			"unavailable": unavailable,
		})
	})

	v1.Get("/context", func(c *fiber.Ctx) error {
		return c.JSON(srv.Summary())
	})
}

// askRequest is the body of POST /api/v1/ask.
type askRequest struct {
	Question string `json:"question" validate:"required"`
}

// cityRequest is the body of PUT /api/v1/city. Country is an ISO 3166-1
// alpha-2 code.
type cityRequest struct {
	City    string `json:"city" validate:"required"`
	Country string `json:"country" validate:"required,len=2"`
}
