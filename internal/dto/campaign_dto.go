package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Campaign Management ---

type CreateCampaignRequest struct {
	Name                    string     `json:"name" validate:"required"`
	Description             string     `json:"description"`
	CampaignType            string     `json:"campaign_type" validate:"omitempty,oneof=win_money_back free_challenge bonus_credit"`
	StartsAt                *time.Time `json:"starts_at"`
	EndsAt                  *time.Time `json:"ends_at"`
	EnrollmentDeadline      *time.Time `json:"enrollment_deadline"`
	CompletionWindowDays    int        `json:"completion_window_days" validate:"required,min=1"`
	MinPurchaseAmount       float64    `json:"min_purchase_amount" validate:"gte=0"`
	PayoutType              string     `json:"payout_type" validate:"omitempty,oneof=refund credit rollover_upsell rollover_continuity"`
	PayoutAmountType        string     `json:"payout_amount_type" validate:"omitempty,oneof=full partial fixed"`
	PayoutAmountValue       *float64   `json:"payout_amount_value"`
	RolloverBonusMultiplier *float64   `json:"rollover_bonus_multiplier"`
	PromoCopy               string     `json:"promo_copy"`
}

type UpdateCampaignRequest struct {
	Name                    *string    `json:"name"`
	Description             *string    `json:"description"`
	Status                  *string    `json:"status" validate:"omitempty,oneof=draft active paused completed archived"`
	StartsAt                *time.Time `json:"starts_at"`
	EndsAt                  *time.Time `json:"ends_at"`
	EnrollmentDeadline      *time.Time `json:"enrollment_deadline"`
	CompletionWindowDays    *int       `json:"completion_window_days" validate:"omitempty,min=1"`
	MinPurchaseAmount       *float64   `json:"min_purchase_amount" validate:"omitempty,gte=0"`
	PayoutType              *string    `json:"payout_type" validate:"omitempty,oneof=refund credit rollover_upsell rollover_continuity"`
	PayoutAmountType        *string    `json:"payout_amount_type" validate:"omitempty,oneof=full partial fixed"`
	PayoutAmountValue       *float64   `json:"payout_amount_value"`
	RolloverBonusMultiplier *float64   `json:"rollover_bonus_multiplier"`
	PromoCopy               *string    `json:"promo_copy"`
}

type CampaignResponse struct {
	Id                   uuid.UUID  `json:"id"`
	Name                 string     `json:"name"`
	Slug                 string     `json:"slug"`
	Description          string     `json:"description,omitempty"`
	CampaignType         string     `json:"campaign_type"`
	Status               string     `json:"status"`
	StartsAt             *time.Time `json:"starts_at,omitempty"`
	EndsAt               *time.Time `json:"ends_at,omitempty"`
	EnrollmentDeadline   *time.Time `json:"enrollment_deadline,omitempty"`
	CompletionWindowDays int        `json:"completion_window_days"`
	MinPurchaseAmount    float64    `json:"min_purchase_amount"`
	PayoutType           string     `json:"payout_type"`
	PayoutAmountType     string     `json:"payout_amount_type"`
	PayoutAmountValue    *float64   `json:"payout_amount_value,omitempty"`
	PromoCopy            string     `json:"promo_copy,omitempty"`
	EnrollmentCount      int64      `json:"enrollment_count"`
	CreatedAt            time.Time  `json:"created_at"`
}

// --- Criteria Templates ---

type CreateCriteriaTemplateRequest struct {
	LabelTemplate       string            `json:"label_template" validate:"required"`
	DescriptionTemplate string            `json:"description_template"`
	CriteriaType        string            `json:"criteria_type" validate:"omitempty,oneof=action result"`
	TrackingSource      string            `json:"tracking_source" validate:"omitempty,oneof=manual onboarding_milestone chat_session video_watch diagnostic_completion custom_webhook"`
	TrackingConfig      map[string]string `json:"tracking_config"`
	ThresholdSource     string            `json:"threshold_source"`
	ThresholdDefault    string            `json:"threshold_default"`
	Required            *bool             `json:"required"`
	DisplayOrder        int               `json:"display_order"`
}

type CriteriaTemplateResponse struct {
	Id                  uuid.UUID `json:"id"`
	LabelTemplate       string    `json:"label_template"`
	DescriptionTemplate string    `json:"description_template,omitempty"`
	CriteriaType        string    `json:"criteria_type"`
	TrackingSource      string    `json:"tracking_source"`
	ThresholdSource     string    `json:"threshold_source,omitempty"`
	ThresholdDefault    string    `json:"threshold_default,omitempty"`
	Required            bool      `json:"required"`
	DisplayOrder        int       `json:"display_order"`
}

// --- Enrollment ---

type EnrollClientRequest struct {
	ClientEmail            string                 `json:"client_email" validate:"required,email"`
	ClientName             string                 `json:"client_name"`
	OrderId                *uuid.UUID             `json:"order_id"`
	BundleId               *uuid.UUID             `json:"bundle_id"`
	PurchaseAmount         *float64               `json:"purchase_amount"`
	EnrollmentSource       string                 `json:"enrollment_source" validate:"omitempty,oneof=auto_purchase admin_manual sales_conversation"`
	PersonalizationContext map[string]interface{} `json:"personalization_context"`
}

type EnrollmentCriterionResponse struct {
	Id             uuid.UUID `json:"id"`
	Label          string    `json:"label"`
	Description    string    `json:"description,omitempty"`
	CriteriaType   string    `json:"criteria_type"`
	TrackingSource string    `json:"tracking_source"`
	TargetValue    string    `json:"target_value,omitempty"`
	Required       bool      `json:"required"`
	DisplayOrder   int       `json:"display_order"`
}

type ProgressResponse struct {
	CriterionId     uuid.UUID  `json:"criterion_id"`
	Status          string     `json:"status"`
	CurrentValue    string     `json:"current_value,omitempty"`
	AutoTracked     bool       `json:"auto_tracked"`
	ClientEvidence  string     `json:"client_evidence,omitempty"`
	AdminVerifiedAt *time.Time `json:"admin_verified_at,omitempty"`
	AdminNotes      string     `json:"admin_notes,omitempty"`
}

type EnrollmentResponse struct {
	Id              uuid.UUID                     `json:"id"`
	CampaignId      uuid.UUID                     `json:"campaign_id"`
	CampaignName    string                        `json:"campaign_name,omitempty"`
	ClientEmail     string                        `json:"client_email"`
	ClientName      string                        `json:"client_name,omitempty"`
	Status          string                        `json:"status"`
	EnrolledAt      time.Time                     `json:"enrolled_at"`
	DeadlineAt      time.Time                     `json:"deadline_at"`
	ResolvedAt      *time.Time                    `json:"resolved_at,omitempty"`
	OverallProgress int                           `json:"overall_progress"`
	Criteria        []EnrollmentCriterionResponse `json:"criteria,omitempty"`
	Progress        []ProgressResponse            `json:"progress,omitempty"`
}

// --- Progress Verification & Resolution ---

type VerifyProgressRequest struct {
	Status       string `json:"status" validate:"required,oneof=met not_met waived"`
	CurrentValue string `json:"current_value"`
	AdminNotes   string `json:"admin_notes"`
}

type VerifyProgressResponse struct {
	CriterionId      uuid.UUID `json:"criterion_id"`
	Status           string    `json:"status"`
	OverallProgress  int       `json:"overall_progress"`
	EnrollmentStatus string    `json:"enrollment_status"`
}

// TrackProgressRequest is the webhook ingress payload for auto-tracked
// criteria (video watches, chat sessions, custom webhooks). It carries no
// admin identity; tracked rows still need admin verification.
type TrackProgressRequest struct {
	EnrollmentId uuid.UUID `json:"enrollment_id" validate:"required"`
	CriterionId  uuid.UUID `json:"criterion_id" validate:"required"`
	CurrentValue string    `json:"current_value"`
	SourceRef    string    `json:"source_ref"`
}

type ResolveEnrollmentRequest struct {
	ResolutionNotes string `json:"resolution_notes"`
}

type ResolveEnrollmentResponse struct {
	EnrollmentId uuid.UUID `json:"enrollment_id"`
	Status       string    `json:"status"`
	PayoutAmount *float64  `json:"payout_amount,omitempty"`
	DiscountCode string    `json:"discount_code,omitempty"`
	Message      string    `json:"message"`
}
