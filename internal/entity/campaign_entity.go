// FILE: internal/entity/campaign_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type CampaignType string
type CampaignStatus string
type CriteriaType string
type TrackingSource string
type EnrollmentSource string
type EnrollmentStatus string
type ProgressStatus string

const (
	CampaignTypeWinMoneyBack  CampaignType = "win_money_back"
	CampaignTypeFreeChallenge CampaignType = "free_challenge"
	CampaignTypeBonusCredit   CampaignType = "bonus_credit"

	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusArchived  CampaignStatus = "archived"

	CriteriaTypeAction CriteriaType = "action"
	CriteriaTypeResult CriteriaType = "result"

	TrackingManual               TrackingSource = "manual"
	TrackingOnboardingMilestone  TrackingSource = "onboarding_milestone"
	TrackingChatSession          TrackingSource = "chat_session"
	TrackingVideoWatch           TrackingSource = "video_watch"
	TrackingDiagnosticCompletion TrackingSource = "diagnostic_completion"
	TrackingCustomWebhook        TrackingSource = "custom_webhook"

	EnrollmentSourceAutoPurchase      EnrollmentSource = "auto_purchase"
	EnrollmentSourceAdminManual       EnrollmentSource = "admin_manual"
	EnrollmentSourceSalesConversation EnrollmentSource = "sales_conversation"

	EnrollmentStatusActive          EnrollmentStatus = "active"
	EnrollmentStatusCriteriaMet     EnrollmentStatus = "criteria_met"
	EnrollmentStatusPayoutPending   EnrollmentStatus = "payout_pending"
	EnrollmentStatusRefundIssued    EnrollmentStatus = "refund_issued"
	EnrollmentStatusCreditIssued    EnrollmentStatus = "credit_issued"
	EnrollmentStatusRolloverApplied EnrollmentStatus = "rollover_applied"
	EnrollmentStatusExpired         EnrollmentStatus = "expired"
	EnrollmentStatusWithdrawn       EnrollmentStatus = "withdrawn"

	ProgressStatusPending    ProgressStatus = "pending"
	ProgressStatusInProgress ProgressStatus = "in_progress"
	ProgressStatusMet        ProgressStatus = "met"
	ProgressStatusNotMet     ProgressStatus = "not_met"
	ProgressStatusWaived     ProgressStatus = "waived"
)

type AttractionCampaign struct {
	Id                      uuid.UUID
	Name                    string
	Slug                    string
	Description             string
	CampaignType            CampaignType
	Status                  CampaignStatus
	StartsAt                *time.Time
	EndsAt                  *time.Time
	EnrollmentDeadline      *time.Time
	CompletionWindowDays    int
	MinPurchaseAmount       float64
	PayoutType              PayoutType
	PayoutAmountType        PayoutAmountType
	PayoutAmountValue       *float64
	RolloverBonusMultiplier float64
	PromoCopy               string
	CreatedBy               *uuid.UUID
	CreatedAt               time.Time
	UpdatedAt               time.Time

	CriteriaTemplates []CampaignCriteriaTemplate
}

type CampaignCriteriaTemplate struct {
	Id                  uuid.UUID
	CampaignId          uuid.UUID
	LabelTemplate       string
	DescriptionTemplate string
	CriteriaType        CriteriaType
	TrackingSource      TrackingSource
	TrackingConfig      map[string]interface{}
	ThresholdSource     string
	ThresholdDefault    string
	Required            bool
	DisplayOrder        int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type CampaignEnrollment struct {
	Id                     uuid.UUID
	CampaignId             uuid.UUID
	ClientEmail            string
	ClientName             string
	OrderId                *uuid.UUID
	BundleId               *uuid.UUID
	PurchaseAmount         *float64
	EnrollmentSource       EnrollmentSource
	Status                 EnrollmentStatus
	EnrolledAt             time.Time
	DeadlineAt             time.Time
	ResolvedAt             *time.Time
	ResolutionNotes        string
	PersonalizationContext map[string]interface{}
	CreatedAt              time.Time
	UpdatedAt              time.Time

	Campaign *AttractionCampaign
	Criteria []EnrollmentCriterion
	Progress []CampaignProgress
}

type EnrollmentCriterion struct {
	Id                  uuid.UUID
	EnrollmentId        uuid.UUID
	TemplateCriterionId uuid.UUID
	Label               string
	Description         string
	CriteriaType        CriteriaType
	TrackingSource      TrackingSource
	TrackingConfig      map[string]interface{}
	TargetValue         string
	Required            bool
	DisplayOrder        int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type CampaignProgress struct {
	Id              uuid.UUID
	EnrollmentId    uuid.UUID
	CriterionId     uuid.UUID
	Status          ProgressStatus
	CurrentValue    string
	AutoTracked     bool
	AutoSourceRef   string
	ClientEvidence  string
	ClientSubmitted *time.Time
	AdminVerifiedBy *uuid.UUID
	AdminVerifiedAt *time.Time
	AdminNotes      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Satisfied reports whether a progress row counts toward completion.
func (s ProgressStatus) Satisfied() bool {
	return s == ProgressStatusMet || s == ProgressStatusWaived
}

// IsTerminal mirrors the milestone rule: pending/in_progress rows may still
// move, met/not_met/waived rows may not.
func (s ProgressStatus) IsTerminal() bool {
	return s == ProgressStatusMet || s == ProgressStatusNotMet || s == ProgressStatusWaived
}

func (s EnrollmentStatus) IsResolved() bool {
	switch s {
	case EnrollmentStatusRefundIssued, EnrollmentStatusCreditIssued,
		EnrollmentStatusRolloverApplied, EnrollmentStatusExpired, EnrollmentStatusWithdrawn:
		return true
	}
	return false
}

func IsValidCampaignType(v string) bool {
	switch CampaignType(v) {
	case CampaignTypeWinMoneyBack, CampaignTypeFreeChallenge, CampaignTypeBonusCredit:
		return true
	}
	return false
}

func IsValidCampaignStatus(v string) bool {
	switch CampaignStatus(v) {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusPaused,
		CampaignStatusCompleted, CampaignStatusArchived:
		return true
	}
	return false
}

func IsValidTrackingSource(v string) bool {
	switch TrackingSource(v) {
	case TrackingManual, TrackingOnboardingMilestone, TrackingChatSession,
		TrackingVideoWatch, TrackingDiagnosticCompletion, TrackingCustomWebhook:
		return true
	}
	return false
}

func IsValidProgressTarget(v string) bool {
	switch ProgressStatus(v) {
	case ProgressStatusMet, ProgressStatusNotMet, ProgressStatusWaived:
		return true
	}
	return false
}
