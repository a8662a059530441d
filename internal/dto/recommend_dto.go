package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Sales Recommendation ---

// DiagnosticProfile is the qualitative intake the recommender scores against.
type DiagnosticProfile struct {
	ObjectionType    string `json:"objection_type" validate:"required"`
	UrgencyLevel     int    `json:"urgency_level" validate:"gte=0,lte=10"`
	OpportunityScore int    `json:"opportunity_score" validate:"gte=0,lte=10"`
	BudgetSignal     string `json:"budget_signal" validate:"omitempty,oneof=none weak moderate strong"`
	// Nil means unknown; the scorer assumes the contact can decide unless
	// the profile says otherwise.
	IsDecisionMaker *bool    `json:"is_decision_maker"`
	TimePressure    bool     `json:"time_pressure"`
	PastObjections  []string `json:"past_objections"`
	ClientName      string   `json:"client_name"`
	CompanyName     string   `json:"company_name"`
}

type RecommendRequest struct {
	Profile          DiagnosticProfile `json:"profile" validate:"required"`
	PresentedContent []PresentedItem   `json:"presented_content" validate:"dive"`
}

type PresentedItem struct {
	ContentType string `json:"content_type" validate:"required"`
	ContentId   string `json:"content_id" validate:"required"`
}

type Recommendation struct {
	Strategy      string     `json:"strategy"`
	Confidence    float64    `json:"confidence"`
	TalkingPoints []string   `json:"talking_points"`
	Source        string     `json:"source"`
	UpsellPathId  *uuid.UUID `json:"upsell_path_id,omitempty"`
}

type RecommendResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// --- Upsell Path Management ---

type UpsellStepPayload struct {
	Title         string   `json:"title" validate:"required"`
	TalkingPoints []string `json:"talking_points"`
}

type CreateUpsellPathRequest struct {
	SourceContentType        string              `json:"source_content_type" validate:"required,oneof=product service lead_magnet video prototype"`
	SourceContentId          string              `json:"source_content_id" validate:"required"`
	SourceTitle              string              `json:"source_title"`
	UpsellContentType        string              `json:"upsell_content_type" validate:"required,oneof=product service lead_magnet video prototype"`
	UpsellContentId          string              `json:"upsell_content_id" validate:"required"`
	UpsellTitle              string              `json:"upsell_title"`
	NextProblem              string              `json:"next_problem"`
	ValueFrameText           string              `json:"value_frame_text"`
	PointOfSaleSteps         []UpsellStepPayload `json:"point_of_sale_steps" validate:"dive"`
	CreditPreviousInvestment bool                `json:"credit_previous_investment"`
}

type UpsellPathResponse struct {
	Id                       uuid.UUID           `json:"id"`
	SourceContentType        string              `json:"source_content_type"`
	SourceContentId          string              `json:"source_content_id"`
	SourceTitle              string              `json:"source_title,omitempty"`
	UpsellContentType        string              `json:"upsell_content_type"`
	UpsellContentId          string              `json:"upsell_content_id"`
	UpsellTitle              string              `json:"upsell_title,omitempty"`
	NextProblem              string              `json:"next_problem,omitempty"`
	ValueFrameText           string              `json:"value_frame_text,omitempty"`
	PointOfSaleSteps         []UpsellStepPayload `json:"point_of_sale_steps"`
	CreditPreviousInvestment bool                `json:"credit_previous_investment"`
	IsActive                 bool                `json:"is_active"`
	CreatedAt                time.Time           `json:"created_at"`
}
