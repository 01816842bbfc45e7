package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const stripeAPIBase = "https://api.stripe.com/v1"

// StripeGateway talks to the Stripe Checkout API over its form-encoded REST
// surface. Amounts are converted to the smallest currency unit on the way
// out; the order total stays a plain rupee value everywhere else.
type StripeGateway struct {
	secretKey   string
	frontendURL string
	client      *http.Client
}

func NewStripeGateway(secretKey, frontendURL string, timeout time.Duration) *StripeGateway {
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}
	return &StripeGateway{
		secretKey:   secretKey,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		client:      &http.Client{Timeout: timeout},
	}
}

var _ Gateway = (*StripeGateway)(nil)

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, paymentID, orderID int, amount float64) (CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", g.frontendURL+"/payment/success?session_id={CHECKOUT_SESSION_ID}")
	form.Set("cancel_url", g.frontendURL+"/payment/cancel")
	form.Set("line_items[0][price_data][currency]", "inr")
	form.Set("line_items[0][price_data][product_data][name]", fmt.Sprintf("Order #%d", orderID))
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(int64(math.Round(amount*100)), 10))
	form.Set("line_items[0][quantity]", "1")
	form.Set("metadata[paymentId]", strconv.Itoa(paymentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, stripeAPIBase+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return CheckoutSession{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	var body struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := g.do(req, &body); err != nil {
		return CheckoutSession{}, err
	}
	return CheckoutSession{ID: body.ID, URL: body.URL}, nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, sessionID string) (SessionResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, stripeAPIBase+"/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return SessionResult{}, err
	}

	var body struct {
		ID            string `json:"id"`
		PaymentStatus string `json:"payment_status"`
		PaymentIntent string `json:"payment_intent"`
	}
	if err := g.do(req, &body); err != nil {
		return SessionResult{}, err
	}
	return SessionResult{ID: body.ID, PaymentStatus: body.PaymentStatus, TransactionID: body.PaymentIntent}, nil
}

func (g *StripeGateway) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe: %s", apiErr.Error.Message)
		}
		return fmt.Errorf("stripe: unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
