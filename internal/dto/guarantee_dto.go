package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Template Management ---

type GuaranteeConditionPayload struct {
	Label              string `json:"label" validate:"required"`
	Description        string `json:"description"`
	VerificationMethod string `json:"verification_method" validate:"omitempty,oneof=admin_verified client_self_report"`
	Required           *bool  `json:"required"`
}

type CreateGuaranteeTemplateRequest struct {
	Name                     string                      `json:"name" validate:"required"`
	Description              string                      `json:"description"`
	GuaranteeType            string                      `json:"guarantee_type" validate:"omitempty,oneof=conditional unconditional"`
	DurationDays             int                         `json:"duration_days" validate:"required,min=1"`
	Conditions               []GuaranteeConditionPayload `json:"conditions" validate:"dive"`
	DefaultPayoutType        string                      `json:"default_payout_type" validate:"required,oneof=refund credit rollover_upsell rollover_continuity"`
	PayoutAmountType         string                      `json:"payout_amount_type" validate:"omitempty,oneof=full partial fixed"`
	PayoutAmountValue        *float64                    `json:"payout_amount_value"`
	RolloverUpsellServiceIds []uuid.UUID                 `json:"rollover_upsell_service_ids"`
	RolloverContinuityPlanId *uuid.UUID                  `json:"rollover_continuity_plan_id"`
	RolloverBonusMultiplier  *float64                    `json:"rollover_bonus_multiplier"`
}

type GuaranteeConditionResponse struct {
	Id                 string `json:"id"`
	Label              string `json:"label"`
	Description        string `json:"description,omitempty"`
	VerificationMethod string `json:"verification_method"`
	Required           bool   `json:"required"`
}

type GuaranteeTemplateResponse struct {
	Id                       uuid.UUID                    `json:"id"`
	Name                     string                       `json:"name"`
	Description              string                       `json:"description,omitempty"`
	GuaranteeType            string                       `json:"guarantee_type"`
	DurationDays             int                          `json:"duration_days"`
	Conditions               []GuaranteeConditionResponse `json:"conditions"`
	DefaultPayoutType        string                       `json:"default_payout_type"`
	PayoutAmountType         string                       `json:"payout_amount_type"`
	PayoutAmountValue        *float64                     `json:"payout_amount_value,omitempty"`
	RolloverUpsellServiceIds []uuid.UUID                  `json:"rollover_upsell_service_ids,omitempty"`
	RolloverContinuityPlanId *uuid.UUID                   `json:"rollover_continuity_plan_id,omitempty"`
	RolloverBonusMultiplier  float64                      `json:"rollover_bonus_multiplier"`
	IsActive                 bool                         `json:"is_active"`
	CreatedAt                time.Time                    `json:"created_at"`
}

// --- Instance Lifecycle ---

type CreateGuaranteeInstanceRequest struct {
	GuaranteeTemplateId uuid.UUID  `json:"guarantee_template_id" validate:"required"`
	ClientEmail         string     `json:"client_email" validate:"required,email"`
	ClientName          string     `json:"client_name"`
	PurchaseAmount      float64    `json:"purchase_amount" validate:"required,gt=0"`
	OrderId             *uuid.UUID `json:"order_id"`
	PayoutType          string     `json:"payout_type" validate:"omitempty,oneof=refund credit rollover_upsell rollover_continuity"`
}

type GuaranteeMilestoneResponse struct {
	Id                uuid.UUID  `json:"id"`
	ConditionId       string     `json:"condition_id"`
	ConditionLabel    string     `json:"condition_label"`
	Status            string     `json:"status"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
	AdminNotes        string     `json:"admin_notes,omitempty"`
	ClientEvidence    string     `json:"client_evidence,omitempty"`
	ClientSubmittedAt *time.Time `json:"client_submitted_at,omitempty"`
}

type GuaranteeInstanceResponse struct {
	Id                   uuid.UUID                    `json:"id"`
	TemplateName         string                       `json:"template_name"`
	ClientEmail          string                       `json:"client_email"`
	ClientName           string                       `json:"client_name,omitempty"`
	PurchaseAmount       float64                      `json:"purchase_amount"`
	PayoutType           string                       `json:"payout_type"`
	Status               string                       `json:"status"`
	StartsAt             time.Time                    `json:"starts_at"`
	ExpiresAt            time.Time                    `json:"expires_at"`
	ResolvedAt           *time.Time                   `json:"resolved_at,omitempty"`
	ResolutionNotes      string                       `json:"resolution_notes,omitempty"`
	RolloverCreditAmount *float64                     `json:"rollover_credit_amount,omitempty"`
	Milestones           []GuaranteeMilestoneResponse `json:"milestones"`
}

type VerifyMilestoneRequest struct {
	Status     string `json:"status" validate:"required,oneof=met not_met waived"`
	AdminNotes string `json:"admin_notes"`
}

type VerifyMilestoneResponse struct {
	MilestoneId    uuid.UUID `json:"milestone_id"`
	Status         string    `json:"status"`
	InstanceStatus string    `json:"instance_status"`
}

type SubmitEvidenceRequest struct {
	ConditionId string `json:"condition_id" validate:"required"`
	Evidence    string `json:"evidence" validate:"required"`
	ClientEmail string `json:"client_email" validate:"required,email"`
}

// --- Evaluation & Payout ---

type EvaluateGuaranteeResponse struct {
	InstanceId        uuid.UUID `json:"instance_id"`
	Status            string    `json:"status"`
	PendingConditions []string  `json:"pending_conditions,omitempty"`
	PayoutAmount      *float64  `json:"payout_amount,omitempty"`
	Message           string    `json:"message"`
}

type ChoosePayoutRequest struct {
	ClientEmail      string     `json:"client_email" validate:"required,email"`
	PayoutType       string     `json:"payout_type" validate:"required,oneof=refund credit rollover_upsell rollover_continuity"`
	ContinuityPlanId *uuid.UUID `json:"continuity_plan_id"`
}

type ChoosePayoutResponse struct {
	InstanceId     uuid.UUID  `json:"instance_id"`
	Status         string     `json:"status"`
	PayoutAmount   float64    `json:"payout_amount"`
	DiscountCode   string     `json:"discount_code,omitempty"`
	SubscriptionId *uuid.UUID `json:"subscription_id,omitempty"`
	Message        string     `json:"message"`
}
