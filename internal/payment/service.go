package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kashishh0311/quickbuyz-backend/internal/order"
)

type ServiceInterface interface {
	GetByOrderID(orderID int) (Payment, error)
	ListByUser(userID int) ([]Payment, error)
	UpdateMethod(orderID, userID int, method Method) (Payment, error)
	CreateCheckoutSession(ctx context.Context, orderID, userID int) (CheckoutSession, error)
	VerifyDigitalPayment(ctx context.Context, orderID, userID int) (Payment, error)
	SettleCashOnDelivery(orderID, userID int) (Payment, error)
}

type Service struct {
	repo    Repository
	gateway Gateway
	orders  order.ServiceInterface
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, gateway Gateway, orders order.ServiceInterface) *Service {
	return &Service{repo: repo, gateway: gateway, orders: orders}
}

func (s *Service) GetByOrderID(orderID int) (Payment, error) {
	return s.repo.GetByOrderID(orderID)
}

func (s *Service) ListByUser(userID int) ([]Payment, error) {
	return s.repo.ListByUser(userID)
}

// UpdateMethod switches between Digital and Cash on Delivery. Only a
// Pending payment can be re-pointed; settled and failed ones are frozen.
func (s *Service) UpdateMethod(orderID, userID int, method Method) (Payment, error) {
	if !method.Valid() {
		return Payment{}, fmt.Errorf("unknown payment method %q", method)
	}

	p, err := s.owned(orderID, userID)
	if err != nil {
		return Payment{}, err
	}
	if p.Status != StatusPending {
		return Payment{}, ErrInvalidState
	}

	return s.repo.UpdateMethod(p.PaymentID, method, nowRFC3339())
}

// CreateCheckoutSession opens a hosted checkout page for the order's
// payment. A gateway failure leaves the payment record untouched so the
// customer can simply retry.
func (s *Service) CreateCheckoutSession(ctx context.Context, orderID, userID int) (CheckoutSession, error) {
	p, err := s.owned(orderID, userID)
	if err != nil {
		return CheckoutSession{}, err
	}
	if p.Status != StatusPending || p.Method != MethodDigital {
		return CheckoutSession{}, ErrInvalidState
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, p.PaymentID, p.OrderID, p.Amount)
	if err != nil {
		log.Error().Err(err).Int("paymentId", p.PaymentID).Msg("checkout session creation failed")
		return CheckoutSession{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if _, err := s.repo.SetSessionID(p.PaymentID, session.ID, nowRFC3339()); err != nil {
		return CheckoutSession{}, err
	}

	log.Info().Int("paymentId", p.PaymentID).Str("sessionId", session.ID).Msg("checkout session created")
	return session, nil
}

// VerifyDigitalPayment asks the gateway for the session outcome. A paid
// session settles the payment, places the order, and clears the cart in
// one step; an unpaid one marks the payment Failed and leaves the order
// and cart alone. Verifying an already-settled payment is a no-op.
func (s *Service) VerifyDigitalPayment(ctx context.Context, orderID, userID int) (Payment, error) {
	p, err := s.owned(orderID, userID)
	if err != nil {
		return Payment{}, err
	}
	if p.Status == StatusPaid {
		return p, nil
	}
	if p.StripeSessionID == "" {
		return Payment{}, ErrInvalidState
	}

	result, err := s.gateway.RetrieveSession(ctx, p.StripeSessionID)
	if err != nil {
		log.Error().Err(err).Int("paymentId", p.PaymentID).Msg("session retrieval failed")
		return Payment{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if !result.Paid() {
		if _, err := s.repo.MarkFailed(p.PaymentID, nowRFC3339()); err != nil {
			return Payment{}, err
		}
		return Payment{}, ErrPaymentNotCompleted
	}

	settled, err := s.repo.SettleDigital(p.PaymentID, result.TransactionID, nowRFC3339())
	if err != nil {
		return Payment{}, err
	}
	log.Info().Int("paymentId", settled.PaymentID).Int("orderId", settled.OrderID).Msg("digital payment settled")
	return settled, nil
}

// SettleCashOnDelivery places a COD order and clears the cart. The payment
// record stays Pending; it settles when the courier collects.
func (s *Service) SettleCashOnDelivery(orderID, userID int) (Payment, error) {
	p, err := s.owned(orderID, userID)
	if err != nil {
		return Payment{}, err
	}
	if p.Status != StatusPending || p.Method != MethodCashOnDelivery {
		return Payment{}, ErrInvalidState
	}

	ord, err := s.orders.GetByID(orderID)
	if err != nil {
		return Payment{}, err
	}
	if ord.Status != order.StatusPending {
		return Payment{}, ErrInvalidState
	}

	if err := s.repo.SettleCashOnDelivery(orderID, userID, nowRFC3339()); err != nil {
		return Payment{}, err
	}
	log.Info().Int("orderId", orderID).Msg("cash on delivery order placed")
	return s.repo.GetByID(p.PaymentID)
}

// owned loads the order's payment and hides it from other customers.
func (s *Service) owned(orderID, userID int) (Payment, error) {
	p, err := s.repo.GetByOrderID(orderID)
	if err != nil {
		return Payment{}, err
	}
	if p.UserID != userID {
		return Payment{}, ErrNotFound
	}
	return p, nil
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
