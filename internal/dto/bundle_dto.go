package dto

import (
	"time"

	"github.com/google/uuid"
)

type BundleItemPayload struct {
	ContentType            string   `json:"content_type" validate:"required,oneof=product service lead_magnet video prototype"`
	ContentId              string   `json:"content_id" validate:"required"`
	Role                   string   `json:"role" validate:"required,oneof=core_offer bonus upsell downsell anchor decoy lead_magnet continuity"`
	OverridePrice          *float64 `json:"override_price"`
	OverridePerceivedValue *float64 `json:"override_perceived_value"`
	OverrideTitle          string   `json:"override_title"`
	DisplayOrder           int      `json:"display_order"`
}

type CreateBundleRequest struct {
	Name         string              `json:"name" validate:"required"`
	Description  string              `json:"description"`
	Price        *float64            `json:"price"`
	BaseBundleId *uuid.UUID          `json:"base_bundle_id"`
	ServiceId    *uuid.UUID          `json:"service_id"`
	Items        []BundleItemPayload `json:"items" validate:"dive"`
}

type UpdateBundleRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Price       *float64            `json:"price"`
	ServiceId   *uuid.UUID          `json:"service_id"`
	IsActive    *bool               `json:"is_active"`
	Items       []BundleItemPayload `json:"items" validate:"omitempty,dive"`
}

type SaveBundleAsRequest struct {
	SourceBundleId uuid.UUID `json:"source_bundle_id" validate:"required"`
	Name           string    `json:"name" validate:"required"`
	Description    string    `json:"description"`
}

// ResolvedBundleItem carries the effective price/value after override and
// catalog resolution.
type ResolvedBundleItem struct {
	Id             uuid.UUID `json:"id"`
	ContentType    string    `json:"content_type"`
	ContentId      string    `json:"content_id"`
	Role           string    `json:"role"`
	Title          string    `json:"title"`
	Price          float64   `json:"price"`
	PerceivedValue float64   `json:"perceived_value"`
	DisplayOrder   int       `json:"display_order"`
}

type BundleResponse struct {
	Id                  uuid.UUID            `json:"id"`
	Name                string               `json:"name"`
	Slug                string               `json:"slug"`
	Description         string               `json:"description,omitempty"`
	Price               float64              `json:"price"`
	TotalRetailValue    float64              `json:"total_retail_value"`
	TotalPerceivedValue float64              `json:"total_perceived_value"`
	ParentBundleId      *uuid.UUID           `json:"parent_bundle_id,omitempty"`
	ServiceId           *uuid.UUID           `json:"service_id,omitempty"`
	IsActive            bool                 `json:"is_active"`
	Items               []ResolvedBundleItem `json:"items"`
	ItemsTruncated      bool                 `json:"items_truncated,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
}
