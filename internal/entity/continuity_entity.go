// FILE: internal/entity/continuity_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type BillingInterval string
type ClientSubscriptionStatus string

const (
	BillingIntervalWeek    BillingInterval = "week"
	BillingIntervalMonth   BillingInterval = "month"
	BillingIntervalQuarter BillingInterval = "quarter"
	BillingIntervalYear    BillingInterval = "year"

	ClientSubscriptionTrialing ClientSubscriptionStatus = "trialing"
	ClientSubscriptionActive   ClientSubscriptionStatus = "active"
	ClientSubscriptionPastDue  ClientSubscriptionStatus = "past_due"
	ClientSubscriptionPaused   ClientSubscriptionStatus = "paused"
	ClientSubscriptionCanceled ClientSubscriptionStatus = "canceled"
	ClientSubscriptionExpired  ClientSubscriptionStatus = "expired"
)

type ContinuityPlan struct {
	Id                   uuid.UUID
	Name                 string
	Description          string
	ServiceId            *uuid.UUID
	BillingInterval      BillingInterval
	BillingIntervalCount int
	AmountPerInterval    float64
	Currency             string
	MinCommitmentCycles  int
	MaxCycles            *int
	TrialDays            int
	Features             []string
	CancellationPolicy   string
	IsActive             bool
	CreatedBy            *uuid.UUID
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ClientSubscription is the recurring-billing record created when a client
// subscribes directly or rolls a guarantee payout into a continuity plan.
type ClientSubscription struct {
	Id                  uuid.UUID
	ContinuityPlanId    uuid.UUID
	ClientEmail         string
	ClientName          string
	OrderId             *uuid.UUID
	GuaranteeInstanceId *uuid.UUID
	GatewayCustomerRef  string
	GatewaySubscription string
	Status              ClientSubscriptionStatus
	CurrentPeriodStart  *time.Time
	CurrentPeriodEnd    *time.Time
	CyclesCompleted     int
	CreditRemaining     float64
	CreditTotal         float64
	CancelAtPeriodEnd   bool
	CanceledAt          *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Relation (populated by repository when requested)
	Plan *ContinuityPlan
}

func IsValidBillingInterval(v string) bool {
	switch BillingInterval(v) {
	case BillingIntervalWeek, BillingIntervalMonth, BillingIntervalQuarter, BillingIntervalYear:
		return true
	}
	return false
}
