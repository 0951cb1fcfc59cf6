package api

import "github.com/gofiber/fiber/v2"

func registerRoutes(app *fiber.App, s *Server) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	api := app.Group("/api")

	habits := api.Group("/habits")
	habits.Get("", s.ListHabits)
	habits.Post("", s.CreateHabit)
	habits.Get("/:id", s.GetHabit)
	habits.Patch("/:id", s.UpdateHabit)
	habits.Delete("/:id", s.DeleteHabit)
	habits.Post("/:id/toggle", s.ToggleHabit)
	habits.Get("/:id/stats", s.GetHabitStats)

	api.Get("/today", s.GetToday)
	api.Get("/stats/weekly", s.GetWeeklyStats)
	api.Get("/heatmap", s.GetHeatmap)
	api.Get("/export", s.Export)
	api.Post("/import", s.Import)
}
