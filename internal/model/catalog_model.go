package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string         `gorm:"type:varchar(300);not null"`
	Description    string         `gorm:"type:text"`
	Price          float64        `gorm:"type:decimal(10,2);not null;default:0"`
	PerceivedValue *float64       `gorm:"type:decimal(10,2)"`
	OfferRole      string         `gorm:"type:varchar(20);not null;default:'core_offer'"`
	ImageURL       string         `gorm:"type:varchar(500)"`
	IsActive       bool           `gorm:"default:true;index"`
	IsFeatured     bool           `gorm:"default:false"`
	DisplayOrder   int            `gorm:"default:0"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}

type Service struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string         `gorm:"type:varchar(300);not null"`
	Description    string         `gorm:"type:text"`
	Price          float64        `gorm:"type:decimal(10,2);not null;default:0"`
	PerceivedValue *float64       `gorm:"type:decimal(10,2)"`
	OfferRole      string         `gorm:"type:varchar(20);not null;default:'core_offer'"`
	ImageURL       string         `gorm:"type:varchar(500)"`
	IsActive       bool           `gorm:"default:true;index"`
	DisplayOrder   int            `gorm:"default:0"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Service) TableName() string {
	return "services"
}

type Order struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientEmail      string    `gorm:"type:varchar(255);not null;index"`
	ClientName       string    `gorm:"type:varchar(200)"`
	Amount           float64   `gorm:"type:decimal(10,2);not null"`
	Status           string    `gorm:"type:varchar(20);not null;default:'paid'"`
	GatewayPaymentId string    `gorm:"type:varchar(100)"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}

type DiscountCode struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code          string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	DiscountType  string    `gorm:"type:varchar(10);not null;default:'fixed'"`
	DiscountValue float64   `gorm:"type:decimal(10,2);not null"`
	MaxUses       int       `gorm:"default:1"`
	TimesUsed     int       `gorm:"default:0"`
	ExpiresAt     *time.Time
	IsActive      bool       `gorm:"default:true;index"`
	CreatedBy     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`
}

func (DiscountCode) TableName() string {
	return "discount_codes"
}
