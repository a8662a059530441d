package payment

import (
	"context"
	"fmt"

	"offerstack-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

type midtransGateway struct {
	client coreapi.Client
	logger logger.ILogger
}

func NewMidtransGateway(serverKey string, isProduction bool, log logger.ILogger) Gateway {
	env := midtrans.Sandbox
	if isProduction {
		env = midtrans.Production
	}

	var client coreapi.Client
	client.New(serverKey, env)

	return &midtransGateway{
		client: client,
		logger: log,
	}
}

func (g *midtransGateway) Refund(ctx context.Context, gatewayPaymentId string, amount float64, reason string) (string, error) {
	refundKey := fmt.Sprintf("guarantee-%s", uuid.NewString())

	req := &coreapi.RefundReq{
		RefundKey: refundKey,
		Amount:    int64(amount),
		Reason:    reason,
	}

	resp, midErr := g.client.RefundTransaction(gatewayPaymentId, req)
	if midErr != nil {
		g.logger.Error("PAYMENT", "Refund failed", map[string]interface{}{
			"payment_id": gatewayPaymentId,
			"amount":     amount,
			"error":      midErr.GetMessage(),
		})
		return "", fmt.Errorf("gateway refund failed: %v", midErr.GetMessage())
	}

	g.logger.Info("PAYMENT", "Refund issued", map[string]interface{}{
		"payment_id": gatewayPaymentId,
		"refund_key": resp.RefundKey,
		"amount":     amount,
	})

	return resp.RefundKey, nil
}

func (g *midtransGateway) CreateSubscription(ctx context.Context, planName, clientEmail string, amount float64, intervalUnit string, intervalCount int) (string, error) {
	req := &coreapi.SubscriptionReq{
		Name:        planName,
		Amount:      int64(amount),
		Currency:    "IDR",
		PaymentType: coreapi.PaymentTypeCreditCard,
		Schedule: coreapi.ScheduleDetails{
			Interval:     intervalCount,
			IntervalUnit: intervalUnit,
		},
		CustomerDetails: &midtrans.CustomerDetails{
			Email: clientEmail,
		},
	}

	resp, midErr := g.client.CreateSubscription(req)
	if midErr != nil {
		g.logger.Error("PAYMENT", "Subscription setup failed", map[string]interface{}{
			"plan":  planName,
			"email": clientEmail,
			"error": midErr.GetMessage(),
		})
		return "", fmt.Errorf("gateway subscription failed: %v", midErr.GetMessage())
	}

	return resp.ID, nil
}
