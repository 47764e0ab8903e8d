package history

import (
	"time"

	"github.com/jayappagarisunil/web-tracker/internal/fix"
	"github.com/jayappagarisunil/web-tracker/internal/timerange"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, fixes *fix.Service) {
	r.Get("/history", func(c *fiber.Ctx) error {
		sel := timerange.Selection{
			Preset: c.Query("range"),
			From:   c.Query("from"),
			To:     c.Query("to"),
		}
		window, err := timerange.Resolve(sel, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshot, err := svc.Build(c.Context(), window, c.Query("tracker_id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(snapshot)
	})

	r.Get("/trackers", func(c *fiber.Ctx) error {
		ids, err := fixes.Trackers(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if ids == nil {
			ids = []string{}
		}
		return c.JSON(fiber.Map{"trackers": ids})
	})
}
