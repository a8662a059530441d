package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GuaranteeTemplate struct {
	Id                       uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                     string         `gorm:"type:varchar(200);not null"`
	Description              string         `gorm:"type:text"`
	GuaranteeType            string         `gorm:"type:varchar(20);not null;default:'conditional'"`
	DurationDays             int            `gorm:"not null"`
	Conditions               datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	DefaultPayoutType        string         `gorm:"type:varchar(30);not null"`
	PayoutAmountType         string         `gorm:"type:varchar(20);not null;default:'full'"`
	PayoutAmountValue        *float64       `gorm:"type:decimal(10,2)"`
	RolloverUpsellServiceIds datatypes.JSONSlice[uuid.UUID]
	RolloverContinuityPlanId *uuid.UUID     `gorm:"type:uuid"`
	RolloverBonusMultiplier  float64        `gorm:"type:decimal(5,2);default:1.0"`
	IsActive                 bool           `gorm:"default:true;index"`
	CreatedBy                *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt                time.Time      `gorm:"autoCreateTime"`
	UpdatedAt                time.Time      `gorm:"autoUpdateTime"`
	DeletedAt                gorm.DeletedAt `gorm:"index"`
}

func (GuaranteeTemplate) TableName() string {
	return "guarantee_templates"
}

type GuaranteeInstance struct {
	Id                   uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GuaranteeTemplateId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	OrderId              *uuid.UUID     `gorm:"type:uuid;index"`
	ClientEmail          string         `gorm:"type:varchar(255);not null;index"`
	ClientName           string         `gorm:"type:varchar(200)"`
	PurchaseAmount       float64        `gorm:"type:decimal(10,2);not null"`
	PayoutType           string         `gorm:"type:varchar(30);not null"`
	Status               string         `gorm:"type:varchar(40);not null;default:'active';index"`
	ConditionsSnapshot   datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	StartsAt             time.Time      `gorm:"not null"`
	ExpiresAt            time.Time      `gorm:"not null"`
	ResolvedAt           *time.Time
	ResolutionNotes      string     `gorm:"type:text"`
	GatewayRefundId      *string    `gorm:"type:varchar(100)"`
	DiscountCodeId       *uuid.UUID `gorm:"type:uuid"`
	SubscriptionId       *uuid.UUID `gorm:"type:uuid"`
	RolloverCreditAmount *float64   `gorm:"type:decimal(10,2)"`
	CreatedAt            time.Time  `gorm:"autoCreateTime"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime"`

	// Relations
	Template   GuaranteeTemplate    `gorm:"foreignKey:GuaranteeTemplateId"`
	Milestones []GuaranteeMilestone `gorm:"foreignKey:GuaranteeInstanceId"`
}

func (GuaranteeInstance) TableName() string {
	return "guarantee_instances"
}

type GuaranteeMilestone struct {
	Id                  uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GuaranteeInstanceId uuid.UUID  `gorm:"type:uuid;not null;index:idx_milestone_instance_condition,unique"`
	ConditionId         string     `gorm:"type:varchar(120);not null;index:idx_milestone_instance_condition,unique"`
	ConditionLabel      string     `gorm:"type:varchar(300);not null"`
	Status              string     `gorm:"type:varchar(20);not null;default:'pending'"`
	VerifiedBy          *uuid.UUID `gorm:"type:uuid"`
	VerifiedAt          *time.Time
	AdminNotes          string `gorm:"type:text"`
	ClientEvidence      string `gorm:"type:text"`
	ClientSubmittedAt   *time.Time
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

func (GuaranteeMilestone) TableName() string {
	return "guarantee_milestones"
}
