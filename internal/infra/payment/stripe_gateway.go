package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"learning-platform-api/internal/domain"
	"learning-platform-api/internal/domain/ports/adapter"
	"learning-platform-api/internal/infra/metrics"
)

var _ adapter.CheckoutGateway = (*StripeGateway)(nil)

// StripeGateway implements CheckoutGateway using direct HTTP calls against
// the Stripe REST API. Requests are form-encoded per Stripe's convention.
type StripeGateway struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewStripeGateway creates a gateway. baseURL is overridable for tests.
func NewStripeGateway(apiKey, baseURL string) *StripeGateway {
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &StripeGateway{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *StripeGateway) Name() string { return "stripe" }

type stripeObject struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	Error         *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (g *StripeGateway) CreateProduct(ctx context.Context, name, description string) (string, error) {
	form := url.Values{"name": {name}}
	if description != "" {
		form.Set("description", description)
	}
	obj, err := g.call(ctx, http.MethodPost, "/v1/products", form, "create_product")
	if err != nil {
		return "", err
	}
	return obj.ID, nil
}

func (g *StripeGateway) CreatePrice(ctx context.Context, productID string, amountMinor int64, currency string) (string, error) {
	form := url.Values{
		"product":     {productID},
		"unit_amount": {strconv.FormatInt(amountMinor, 10)},
		"currency":    {currency},
	}
	obj, err := g.call(ctx, http.MethodPost, "/v1/prices", form, "create_price")
	if err != nil {
		return "", err
	}
	return obj.ID, nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, priceID, successURL, cancelURL string) (adapter.CheckoutSession, error) {
	form := url.Values{
		"payment_method_types[0]": {"card"},
		"line_items[0][price]":    {priceID},
		"line_items[0][quantity]": {"1"},
		"mode":                    {"payment"},
		"success_url":             {successURL},
		"cancel_url":              {cancelURL},
	}
	obj, err := g.call(ctx, http.MethodPost, "/v1/checkout/sessions", form, "create_session")
	if err != nil {
		return adapter.CheckoutSession{}, err
	}
	return adapter.CheckoutSession{ID: obj.ID, URL: obj.URL}, nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, sessionID string) (adapter.SessionStatus, error) {
	obj, err := g.call(ctx, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(sessionID), nil, "retrieve_session")
	if err != nil {
		return adapter.SessionStatus{}, err
	}
	return adapter.SessionStatus{ID: obj.ID, PaymentStatus: obj.PaymentStatus}, nil
}

func (g *StripeGateway) call(ctx context.Context, method, path string, form url.Values, metric string) (*stripeObject, error) {
	start := time.Now()
	obj, err := g.do(ctx, method, path, form)
	metrics.ObserveGatewayCall(metric, err, time.Since(start))
	return obj, err
}

func (g *StripeGateway) do(ctx context.Context, method, path string, form url.Values) (*stripeObject, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var obj stripeObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(raw))
	}
	if resp.StatusCode >= 400 || obj.Error != nil {
		msg := resp.Status
		if obj.Error != nil {
			msg = obj.Error.Message
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrGateway, msg)
	}
	return &obj, nil
}
