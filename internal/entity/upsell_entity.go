// FILE: internal/entity/upsell_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UpsellStep is one scripted touch in an upsell path (stored as JSONB).
type UpsellStep struct {
	Title         string   `json:"title"`
	TalkingPoints []string `json:"talking_points"`
}

// UpsellPath maps a piece of content already presented at point of sale to
// the offer that solves the client's predicted next problem.
type UpsellPath struct {
	Id                       uuid.UUID
	SourceContentType        ContentType
	SourceContentId          string
	SourceTitle              string
	UpsellContentType        ContentType
	UpsellContentId          string
	UpsellTitle              string
	NextProblem              string
	ValueFrameText           string
	PointOfSaleSteps         []UpsellStep
	CreditPreviousInvestment bool
	IsActive                 bool
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
