package adapter

import "context"

// CheckoutSession is the provider-hosted payment page for one purchase,
// identified by an opaque session id.
type CheckoutSession struct {
	ID  string
	URL string
}

// SessionStatus mirrors what the provider reports for a session.
type SessionStatus struct {
	ID            string
	PaymentStatus string // provider status string, e.g. "paid" / "unpaid"
}

// CheckoutGateway is the hex port for hosted-checkout payment providers.
// Amounts are in the provider's minor currency unit.
type CheckoutGateway interface {
	Name() string

	// CreateProduct registers a product and returns the provider product id.
	CreateProduct(ctx context.Context, name, description string) (string, error)
	// CreatePrice attaches a price (minor units) to a product.
	CreatePrice(ctx context.Context, productID string, amountMinor int64, currency string) (string, error)
	// CreateCheckoutSession opens a hosted session for the price. The success
	// URL may embed a placeholder the provider substitutes with the session id.
	CreateCheckoutSession(ctx context.Context, priceID, successURL, cancelURL string) (CheckoutSession, error)
	// RetrieveSession fetches the provider's view of a session.
	RetrieveSession(ctx context.Context, sessionID string) (SessionStatus, error)
}
