// FILE: internal/entity/guarantee_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type GuaranteeType string
type PayoutType string
type PayoutAmountType string
type VerificationMethod string
type GuaranteeInstanceStatus string
type MilestoneStatus string

const (
	GuaranteeTypeConditional   GuaranteeType = "conditional"
	GuaranteeTypeUnconditional GuaranteeType = "unconditional"

	PayoutTypeRefund             PayoutType = "refund"
	PayoutTypeCredit             PayoutType = "credit"
	PayoutTypeRolloverUpsell     PayoutType = "rollover_upsell"
	PayoutTypeRolloverContinuity PayoutType = "rollover_continuity"

	PayoutAmountFull    PayoutAmountType = "full"
	PayoutAmountPartial PayoutAmountType = "partial"
	PayoutAmountFixed   PayoutAmountType = "fixed"

	VerificationAdmin      VerificationMethod = "admin_verified"
	VerificationSelfReport VerificationMethod = "client_self_report"

	InstanceStatusActive                    GuaranteeInstanceStatus = "active"
	InstanceStatusConditionsMet             GuaranteeInstanceStatus = "conditions_met"
	InstanceStatusRefundIssued              GuaranteeInstanceStatus = "refund_issued"
	InstanceStatusCreditIssued              GuaranteeInstanceStatus = "credit_issued"
	InstanceStatusRolloverUpsellApplied     GuaranteeInstanceStatus = "rollover_upsell_applied"
	InstanceStatusRolloverContinuityApplied GuaranteeInstanceStatus = "rollover_continuity_applied"
	InstanceStatusExpired                   GuaranteeInstanceStatus = "expired"
	InstanceStatusVoided                    GuaranteeInstanceStatus = "voided"

	MilestoneStatusPending MilestoneStatus = "pending"
	MilestoneStatusMet     MilestoneStatus = "met"
	MilestoneStatusNotMet  MilestoneStatus = "not_met"
	MilestoneStatusWaived  MilestoneStatus = "waived"
)

// GuaranteeCondition lives inside a template's conditions JSONB column and is
// snapshotted onto each instance at creation time.
type GuaranteeCondition struct {
	Id                 string             `json:"id"`
	Label              string             `json:"label"`
	Description        string             `json:"description,omitempty"`
	VerificationMethod VerificationMethod `json:"verification_method"`
	Required           bool               `json:"required"`
}

type GuaranteeTemplate struct {
	Id                       uuid.UUID
	Name                     string
	Description              string
	GuaranteeType            GuaranteeType
	DurationDays             int
	Conditions               []GuaranteeCondition
	DefaultPayoutType        PayoutType
	PayoutAmountType         PayoutAmountType
	PayoutAmountValue        *float64
	RolloverUpsellServiceIds []uuid.UUID
	RolloverContinuityPlanId *uuid.UUID
	RolloverBonusMultiplier  float64
	IsActive                 bool
	CreatedBy                *uuid.UUID
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

type GuaranteeInstance struct {
	Id                   uuid.UUID
	GuaranteeTemplateId  uuid.UUID
	OrderId              *uuid.UUID
	ClientEmail          string
	ClientName           string
	PurchaseAmount       float64
	PayoutType           PayoutType
	Status               GuaranteeInstanceStatus
	ConditionsSnapshot   []GuaranteeCondition
	StartsAt             time.Time
	ExpiresAt            time.Time
	ResolvedAt           *time.Time
	ResolutionNotes      string
	GatewayRefundId      *string
	DiscountCodeId       *uuid.UUID
	SubscriptionId       *uuid.UUID
	RolloverCreditAmount *float64
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// Relations (populated by repository when requested)
	Template   *GuaranteeTemplate
	Milestones []GuaranteeMilestone
}

type GuaranteeMilestone struct {
	Id                  uuid.UUID
	GuaranteeInstanceId uuid.UUID
	ConditionId         string
	ConditionLabel      string
	Status              MilestoneStatus
	VerifiedBy          *uuid.UUID
	VerifiedAt          *time.Time
	AdminNotes          string
	ClientEvidence      string
	ClientSubmittedAt   *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsTerminal reports whether a milestone has left the pending state.
// Transitions only run pending -> {met, not_met, waived}; there is no way back.
func (s MilestoneStatus) IsTerminal() bool {
	return s == MilestoneStatusMet || s == MilestoneStatusNotMet || s == MilestoneStatusWaived
}

// Satisfied reports whether a milestone counts toward resolution eligibility.
func (s MilestoneStatus) Satisfied() bool {
	return s == MilestoneStatusMet || s == MilestoneStatusWaived
}

// IsResolved reports whether an instance has reached a terminal status.
func (s GuaranteeInstanceStatus) IsResolved() bool {
	switch s {
	case InstanceStatusRefundIssued, InstanceStatusCreditIssued,
		InstanceStatusRolloverUpsellApplied, InstanceStatusRolloverContinuityApplied,
		InstanceStatusExpired, InstanceStatusVoided:
		return true
	}
	return false
}

func IsValidGuaranteeType(v string) bool {
	return v == string(GuaranteeTypeConditional) || v == string(GuaranteeTypeUnconditional)
}

func IsValidPayoutType(v string) bool {
	switch PayoutType(v) {
	case PayoutTypeRefund, PayoutTypeCredit, PayoutTypeRolloverUpsell, PayoutTypeRolloverContinuity:
		return true
	}
	return false
}

func IsValidPayoutAmountType(v string) bool {
	switch PayoutAmountType(v) {
	case PayoutAmountFull, PayoutAmountPartial, PayoutAmountFixed:
		return true
	}
	return false
}

func IsValidMilestoneTarget(v string) bool {
	switch MilestoneStatus(v) {
	case MilestoneStatusMet, MilestoneStatusNotMet, MilestoneStatusWaived:
		return true
	}
	return false
}
