package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateContinuityPlanRequest struct {
	Name                 string     `json:"name" validate:"required"`
	Description          string     `json:"description"`
	ServiceId            *uuid.UUID `json:"service_id"`
	BillingInterval      string     `json:"billing_interval" validate:"required,oneof=week month quarter year"`
	BillingIntervalCount int        `json:"billing_interval_count" validate:"omitempty,min=1"`
	AmountPerInterval    float64    `json:"amount_per_interval" validate:"required,gt=0"`
	Currency             string     `json:"currency" validate:"omitempty,len=3"`
	MinCommitmentCycles  int        `json:"min_commitment_cycles" validate:"gte=0"`
	MaxCycles            *int       `json:"max_cycles" validate:"omitempty,min=1"`
	TrialDays            int        `json:"trial_days" validate:"gte=0"`
	Features             []string   `json:"features"`
	CancellationPolicy   string     `json:"cancellation_policy"`
}

type UpdateContinuityPlanRequest struct {
	Name                 *string    `json:"name"`
	Description          *string    `json:"description"`
	ServiceId            *uuid.UUID `json:"service_id"`
	BillingInterval      *string    `json:"billing_interval" validate:"omitempty,oneof=week month quarter year"`
	BillingIntervalCount *int       `json:"billing_interval_count" validate:"omitempty,min=1"`
	AmountPerInterval    *float64   `json:"amount_per_interval" validate:"omitempty,gt=0"`
	MinCommitmentCycles  *int       `json:"min_commitment_cycles" validate:"omitempty,gte=0"`
	MaxCycles            *int       `json:"max_cycles"`
	TrialDays            *int       `json:"trial_days" validate:"omitempty,gte=0"`
	Features             []string   `json:"features"`
	CancellationPolicy   *string    `json:"cancellation_policy"`
	IsActive             *bool      `json:"is_active"`
}

type ContinuityPlanResponse struct {
	Id                   uuid.UUID  `json:"id"`
	Name                 string     `json:"name"`
	Description          string     `json:"description,omitempty"`
	ServiceId            *uuid.UUID `json:"service_id,omitempty"`
	BillingInterval      string     `json:"billing_interval"`
	BillingIntervalCount int        `json:"billing_interval_count"`
	AmountPerInterval    float64    `json:"amount_per_interval"`
	Currency             string     `json:"currency"`
	MinCommitmentCycles  int        `json:"min_commitment_cycles"`
	MaxCycles            *int       `json:"max_cycles,omitempty"`
	TrialDays            int        `json:"trial_days"`
	Features             []string   `json:"features"`
	CancellationPolicy   string     `json:"cancellation_policy,omitempty"`
	IsActive             bool       `json:"is_active"`
	CreatedAt            time.Time  `json:"created_at"`
}

type ClientSubscriptionResponse struct {
	Id                  uuid.UUID  `json:"id"`
	PlanName            string     `json:"plan_name"`
	ClientEmail         string     `json:"client_email"`
	Status              string     `json:"status"`
	CreditTotal         float64    `json:"credit_total"`
	CreditRemaining     float64    `json:"credit_remaining"`
	CreditCyclesCovered int        `json:"credit_cycles_covered"`
	CyclesCompleted     int        `json:"cycles_completed"`
	CurrentPeriodEnd    *time.Time `json:"current_period_end,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}
