package payment

import "context"

// Gateway is the payment-provider port. Guarantee refunds and continuity
// subscription setup go through here so the domain managers never talk to the
// provider SDK directly.
type Gateway interface {
	// Refund pushes money back against an earlier charge and returns the
	// provider's refund reference.
	Refund(ctx context.Context, gatewayPaymentId string, amount float64, reason string) (string, error)

	// CreateSubscription registers a recurring charge and returns the
	// provider's subscription reference.
	CreateSubscription(ctx context.Context, planName, clientEmail string, amount float64, intervalUnit string, intervalCount int) (string, error)
}
