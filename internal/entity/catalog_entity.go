// FILE: internal/entity/catalog_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string
type DiscountType string

const (
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusRefunded OrderStatus = "refunded"

	DiscountTypeFixed   DiscountType = "fixed"
	DiscountTypePercent DiscountType = "percent"
)

// Product is a storefront content row; services share the same shape but are
// sold as engagements rather than downloads.
type Product struct {
	Id             uuid.UUID
	Title          string
	Description    string
	Price          float64
	PerceivedValue *float64
	OfferRole      OfferRole
	ImageURL       string
	IsActive       bool
	IsFeatured     bool
	DisplayOrder   int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Service struct {
	Id             uuid.UUID
	Title          string
	Description    string
	Price          float64
	PerceivedValue *float64
	OfferRole      OfferRole
	ImageURL       string
	IsActive       bool
	DisplayOrder   int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Order is the purchase record a guarantee instance hangs off.
type Order struct {
	Id               uuid.UUID
	ClientEmail      string
	ClientName       string
	Amount           float64
	Status           OrderStatus
	GatewayPaymentId string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DiscountCode is minted by credit/rollover payouts and redeemed at checkout.
type DiscountCode struct {
	Id            uuid.UUID
	Code          string
	DiscountType  DiscountType
	DiscountValue float64
	MaxUses       int
	TimesUsed     int
	ExpiresAt     *time.Time
	IsActive      bool
	CreatedBy     *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
