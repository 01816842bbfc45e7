package dashboard

import "github.com/gofiber/fiber/v2"

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/dashboard", h.getStats)
}

func (h *Handler) getStats(c *fiber.Ctx) error {
	stats, err := h.repo.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(stats)
}
