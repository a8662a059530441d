// FILE: internal/entity/bundle_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type OfferRole string
type ContentType string

const (
	OfferRoleCoreOffer  OfferRole = "core_offer"
	OfferRoleBonus      OfferRole = "bonus"
	OfferRoleUpsell     OfferRole = "upsell"
	OfferRoleDownsell   OfferRole = "downsell"
	OfferRoleAnchor     OfferRole = "anchor"
	OfferRoleDecoy      OfferRole = "decoy"
	OfferRoleLeadMagnet OfferRole = "lead_magnet"
	OfferRoleContinuity OfferRole = "continuity"

	ContentTypeProduct    ContentType = "product"
	ContentTypeService    ContentType = "service"
	ContentTypeLeadMagnet ContentType = "lead_magnet"
	ContentTypeVideo      ContentType = "video"
	ContentTypePrototype  ContentType = "prototype"
)

type OfferBundle struct {
	Id             uuid.UUID
	Name           string
	Slug           string
	Description    string
	Price          *float64 // nil = defaults to total retail value
	ParentBundleId *uuid.UUID
	BaseBundleId   *uuid.UUID // inherit items from another bundle
	ServiceId      *uuid.UUID // storefront attachment
	IsActive       bool
	CreatedBy      *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items []BundleItem
}

// ContentKey identifies a catalog row by type and id.
type ContentKey struct {
	ContentType ContentType
	ContentId   string
}

type BundleItem struct {
	Id                     uuid.UUID
	BundleId               uuid.UUID
	ContentType            ContentType
	ContentId              string
	Role                   OfferRole
	OverridePrice          *float64
	OverridePerceivedValue *float64
	OverrideTitle          string
	DisplayOrder           int
	CreatedAt              time.Time
}

func IsValidOfferRole(v string) bool {
	switch OfferRole(v) {
	case OfferRoleCoreOffer, OfferRoleBonus, OfferRoleUpsell, OfferRoleDownsell,
		OfferRoleAnchor, OfferRoleDecoy, OfferRoleLeadMagnet, OfferRoleContinuity:
		return true
	}
	return false
}

func IsValidContentType(v string) bool {
	switch ContentType(v) {
	case ContentTypeProduct, ContentTypeService, ContentTypeLeadMagnet,
		ContentTypeVideo, ContentTypePrototype:
		return true
	}
	return false
}
