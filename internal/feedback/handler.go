package feedback

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/kashishh0311/quickbuyz-backend/internal/product"
	"github.com/kashishh0311/quickbuyz-backend/internal/user"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(s ServiceInterface) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/feedback/product/:id<[0-9]+>", h.listByProduct)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/feedback", h.createFeedback)
}

func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/feedback", h.listAll)
	r.Delete("/feedback/:id<[0-9]+>", h.deleteFeedback)
}

type createFeedbackRequest struct {
	ProductID int    `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *Handler) createFeedback(c *fiber.Ctx) error {
	payload := new(createFeedbackRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productId is required"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	created, err := h.service.Create(userID, payload.ProductID, payload.Rating, payload.Comment)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRating):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "rating must be between 1 and 5"})
		case errors.Is(err, product.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case errors.Is(err, ErrNotEligible):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "only delivered products can be reviewed"})
		case errors.Is(err, ErrAlreadyExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "feedback already submitted"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) listByProduct(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	feedbacks, err := h.service.ListByProduct(productID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(feedbacks)
}

func (h *Handler) listAll(c *fiber.Ctx) error {
	feedbacks, err := h.service.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(feedbacks)
}

func (h *Handler) deleteFeedback(c *fiber.Ctx) error {
	feedbackID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	if err := h.service.Delete(feedbackID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "feedback not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusOK)
}
