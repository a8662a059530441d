package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OfferBundle struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string         `gorm:"type:varchar(200);not null"`
	Slug           string         `gorm:"type:varchar(200);uniqueIndex;not null"`
	Description    string         `gorm:"type:text"`
	Price          *float64       `gorm:"type:decimal(10,2)"`
	ParentBundleId *uuid.UUID     `gorm:"type:uuid;index"`
	BaseBundleId   *uuid.UUID     `gorm:"type:uuid"`
	ServiceId      *uuid.UUID     `gorm:"type:uuid;index"`
	IsActive       bool           `gorm:"default:true;index"`
	CreatedBy      *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`

	Items []BundleItem `gorm:"foreignKey:BundleId"`
}

func (OfferBundle) TableName() string {
	return "offer_bundles"
}

type BundleItem struct {
	Id                     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BundleId               uuid.UUID `gorm:"type:uuid;not null;index"`
	ContentType            string    `gorm:"type:varchar(20);not null"`
	ContentId              string    `gorm:"type:varchar(100);not null"`
	Role                   string    `gorm:"type:varchar(20);not null;default:'bonus'"`
	OverridePrice          *float64  `gorm:"type:decimal(10,2)"`
	OverridePerceivedValue *float64  `gorm:"type:decimal(10,2)"`
	OverrideTitle          string    `gorm:"type:varchar(300)"`
	DisplayOrder           int       `gorm:"default:0"`
	CreatedAt              time.Time `gorm:"autoCreateTime"`
}

func (BundleItem) TableName() string {
	return "bundle_items"
}
