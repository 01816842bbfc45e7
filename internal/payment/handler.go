package payment

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/kashishh0311/quickbuyz-backend/internal/order"
	"github.com/kashishh0311/quickbuyz-backend/internal/user"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(s ServiceInterface) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/payments", h.getPayments)
	app.Put("/api/v1/payments/method", h.updateMethod)
	app.Post("/api/v1/payments/checkout-session", h.createCheckoutSession)
	app.Post("/api/v1/payments/verify", h.verifyPayment)
	app.Post("/api/v1/payments/cod", h.confirmCashOnDelivery)
}

func (h *Handler) getPayments(c *fiber.Ctx) error {
	// admin tokens carry no customer id, so only look it up when needed
	if orderID := c.QueryInt("orderId"); orderID > 0 {
		p, err := h.service.GetByOrderID(orderID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "payment not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		if !user.IsAdminCtx(c) {
			userID, err := user.GetUserIDFromCtx(c)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
			}
			if p.UserID != userID {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "payment not found"})
			}
		}
		return c.JSON(p)
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payments, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(payments)
}

type updateMethodRequest struct {
	OrderID int    `json:"orderId"`
	Method  string `json:"paymentMethod"`
}

func (h *Handler) updateMethod(c *fiber.Ctx) error {
	payload := new(updateMethodRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.OrderID <= 0 || payload.Method == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "orderId and paymentMethod are required"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	p, err := h.service.UpdateMethod(payload.OrderID, userID, Method(payload.Method))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "payment not found"})
		case errors.Is(err, ErrInvalidState):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "payment can no longer be changed"})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(p)
}

type orderRefRequest struct {
	OrderID int `json:"orderId"`
}

func (h *Handler) createCheckoutSession(c *fiber.Ctx) error {
	payload := new(orderRefRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.OrderID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "orderId is required"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	session, err := h.service.CreateCheckoutSession(c.Context(), payload.OrderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "payment not found"})
		case errors.Is(err, ErrInvalidState):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "payment is not awaiting digital checkout"})
		case errors.Is(err, ErrGateway):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "payment gateway unavailable"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(session)
}

func (h *Handler) verifyPayment(c *fiber.Ctx) error {
	payload := new(orderRefRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.OrderID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "orderId is required"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	p, err := h.service.VerifyDigitalPayment(c.Context(), payload.OrderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "payment not found"})
		case errors.Is(err, ErrInvalidState):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "no checkout session to verify"})
		case errors.Is(err, ErrPaymentNotCompleted):
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"message": "payment not completed"})
		case errors.Is(err, ErrGateway):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "payment gateway unavailable"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(p)
}

func (h *Handler) confirmCashOnDelivery(c *fiber.Ctx) error {
	payload := new(orderRefRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.OrderID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "orderId is required"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	p, err := h.service.SettleCashOnDelivery(payload.OrderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, order.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "payment not found"})
		case errors.Is(err, ErrInvalidState):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "order cannot be placed as cash on delivery"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(p)
}
