package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContinuityPlan struct {
	Id                   uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                 string     `gorm:"type:varchar(200);not null"`
	Description          string     `gorm:"type:text"`
	ServiceId            *uuid.UUID `gorm:"type:uuid"`
	BillingInterval      string     `gorm:"type:varchar(10);not null;default:'month'"`
	BillingIntervalCount int        `gorm:"not null;default:1"`
	AmountPerInterval    float64    `gorm:"type:decimal(10,2);not null"`
	Currency             string     `gorm:"type:varchar(3);not null;default:'USD'"`
	MinCommitmentCycles  int        `gorm:"default:0"`
	MaxCycles            *int
	TrialDays            int `gorm:"default:0"`
	Features             datatypes.JSONSlice[string]
	CancellationPolicy   string         `gorm:"type:text"`
	IsActive             bool           `gorm:"default:true;index"`
	CreatedBy            *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt            time.Time      `gorm:"autoCreateTime"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime"`
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

func (ContinuityPlan) TableName() string {
	return "continuity_plans"
}

type ClientSubscription struct {
	Id                  uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContinuityPlanId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientEmail         string     `gorm:"type:varchar(255);not null;index"`
	ClientName          string     `gorm:"type:varchar(200)"`
	OrderId             *uuid.UUID `gorm:"type:uuid"`
	GuaranteeInstanceId *uuid.UUID `gorm:"type:uuid;index"`
	GatewayCustomerRef  string     `gorm:"type:varchar(100)"`
	GatewaySubscription string     `gorm:"type:varchar(100)"`
	Status              string     `gorm:"type:varchar(20);not null;default:'active';index"`
	CurrentPeriodStart  *time.Time
	CurrentPeriodEnd    *time.Time
	CyclesCompleted     int     `gorm:"default:0"`
	CreditRemaining     float64 `gorm:"type:decimal(10,2);default:0"`
	CreditTotal         float64 `gorm:"type:decimal(10,2);default:0"`
	CancelAtPeriodEnd   bool    `gorm:"default:false"`
	CanceledAt          *time.Time
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`

	Plan ContinuityPlan `gorm:"foreignKey:ContinuityPlanId"`
}

func (ClientSubscription) TableName() string {
	return "client_subscriptions"
}
