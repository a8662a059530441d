package dto

import (
	"github.com/google/uuid"
)

type ProductResponse struct {
	Id             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Price          float64   `json:"price"`
	PerceivedValue *float64  `json:"perceived_value,omitempty"`
	OfferRole      string    `json:"offer_role"`
	ImageURL       string    `json:"image_url,omitempty"`
	IsFeatured     bool      `json:"is_featured"`
	DisplayOrder   int       `json:"display_order"`
}

type ServiceResponse struct {
	Id             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Price          float64   `json:"price"`
	PerceivedValue *float64  `json:"perceived_value,omitempty"`
	OfferRole      string    `json:"offer_role"`
	ImageURL       string    `json:"image_url,omitempty"`
	DisplayOrder   int       `json:"display_order"`
}

type ValidateDiscountRequest struct {
	Code string `json:"code" validate:"required"`
}

type ValidateDiscountResponse struct {
	Valid         bool    `json:"valid"`
	Code          string  `json:"code"`
	DiscountType  string  `json:"discount_type,omitempty"`
	DiscountValue float64 `json:"discount_value,omitempty"`
	Reason        string  `json:"reason,omitempty"`
}
