package dto

import (
	"time"

	"github.com/google/uuid"
)

// ContentRoleResponse is one row of the unified admin catalog view: products
// and services flattened into a single list keyed by content type.
type ContentRoleResponse struct {
	ContentType    string    `json:"content_type"`
	ContentId      uuid.UUID `json:"content_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Price          float64   `json:"price"`
	PerceivedValue *float64  `json:"perceived_value,omitempty"`
	OfferRole      string    `json:"offer_role"`
	ImageURL       string    `json:"image_url,omitempty"`
	IsActive       bool      `json:"is_active"`
	DisplayOrder   int       `json:"display_order"`
	CreatedAt      time.Time `json:"created_at"`
}

// UpsertContentRoleRequest classifies a catalog row into the offer structure.
// With a ContentId it reclassifies the existing row; without one it creates a
// new row under the given role. Nil optional fields leave the stored value
// untouched.
type UpsertContentRoleRequest struct {
	ContentType    string     `json:"content_type" validate:"required,oneof=product service"`
	ContentId      *uuid.UUID `json:"content_id"`
	OfferRole      string     `json:"offer_role" validate:"required,oneof=core_offer bonus upsell downsell anchor decoy lead_magnet continuity"`
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Price          *float64   `json:"price" validate:"omitempty,gte=0"`
	PerceivedValue *float64   `json:"perceived_value" validate:"omitempty,gte=0"`
	ImageURL       *string    `json:"image_url"`
	DisplayOrder   *int       `json:"display_order"`
	IsActive       *bool      `json:"is_active"`
}
