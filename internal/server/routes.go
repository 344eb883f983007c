package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/gotvi/gotvi-backend/internal/common"
)

// NewApp builds the fiber application and mounts all routes.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "gotvi-backend",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	// Propagate the request ID into the context the pipeline logs from.
	app.Use(func(c *fiber.Ctx) error {
		if rid, ok := c.Locals("requestid").(string); ok {
			c.SetUserContext(common.WithRequestID(c.UserContext(), rid))
		}
		return c.Next()
	})

	app.Get("/healthz", h.Health)

	v1 := app.Group("/api/v1")
	v1.Post("/receipts/process", h.ProcessReceipt)
	v1.Get("/receipts", h.ListReceipts)
	v1.Get("/receipts/export", h.ExportReceipts)
	v1.Post("/recipes/generate", h.GenerateRecipes)
	v1.Get("/inventory", h.ListInventory)
	v1.Post("/inventory", h.AddInventory)

	return app
}
