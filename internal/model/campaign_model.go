package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttractionCampaign struct {
	Id                      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                    string    `gorm:"type:varchar(200);not null"`
	Slug                    string    `gorm:"type:varchar(200);uniqueIndex;not null"`
	Description             string    `gorm:"type:text"`
	CampaignType            string    `gorm:"type:varchar(30);not null;default:'win_money_back'"`
	Status                  string    `gorm:"type:varchar(20);not null;default:'draft';index"`
	StartsAt                *time.Time
	EndsAt                  *time.Time
	EnrollmentDeadline      *time.Time
	CompletionWindowDays    int            `gorm:"not null;default:90"`
	MinPurchaseAmount       float64        `gorm:"type:decimal(10,2);default:0"`
	PayoutType              string         `gorm:"type:varchar(30);not null;default:'refund'"`
	PayoutAmountType        string         `gorm:"type:varchar(20);not null;default:'full'"`
	PayoutAmountValue       *float64       `gorm:"type:decimal(10,2)"`
	RolloverBonusMultiplier float64        `gorm:"type:decimal(5,2);default:1.0"`
	PromoCopy               string         `gorm:"type:text"`
	CreatedBy               *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt               time.Time      `gorm:"autoCreateTime"`
	UpdatedAt               time.Time      `gorm:"autoUpdateTime"`
	DeletedAt               gorm.DeletedAt `gorm:"index"`

	CriteriaTemplates []CampaignCriteriaTemplate `gorm:"foreignKey:CampaignId"`
}

func (AttractionCampaign) TableName() string {
	return "attraction_campaigns"
}

type CampaignCriteriaTemplate struct {
	Id                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CampaignId          uuid.UUID      `gorm:"type:uuid;not null;index"`
	LabelTemplate       string         `gorm:"type:varchar(300);not null"`
	DescriptionTemplate string         `gorm:"type:text"`
	CriteriaType        string         `gorm:"type:varchar(20);not null;default:'action'"`
	TrackingSource      string         `gorm:"type:varchar(40);not null;default:'manual'"`
	TrackingConfig      datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	ThresholdSource     string         `gorm:"type:varchar(150)"`
	ThresholdDefault    string         `gorm:"type:varchar(150)"`
	Required            bool           `gorm:"default:true"`
	DisplayOrder        int            `gorm:"default:0"`
	CreatedAt           time.Time      `gorm:"autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime"`
}

func (CampaignCriteriaTemplate) TableName() string {
	return "campaign_criteria_templates"
}

type CampaignEnrollment struct {
	Id                     uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CampaignId             uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientEmail            string     `gorm:"type:varchar(255);not null;index"`
	ClientName             string     `gorm:"type:varchar(200)"`
	OrderId                *uuid.UUID `gorm:"type:uuid"`
	BundleId               *uuid.UUID `gorm:"type:uuid"`
	PurchaseAmount         *float64   `gorm:"type:decimal(10,2)"`
	EnrollmentSource       string     `gorm:"type:varchar(30);not null;default:'admin_manual'"`
	Status                 string     `gorm:"type:varchar(30);not null;default:'active';index"`
	EnrolledAt             time.Time  `gorm:"not null"`
	DeadlineAt             time.Time  `gorm:"not null"`
	ResolvedAt             *time.Time
	ResolutionNotes        string         `gorm:"type:text"`
	PersonalizationContext datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	CreatedAt              time.Time      `gorm:"autoCreateTime"`
	UpdatedAt              time.Time      `gorm:"autoUpdateTime"`

	// Relations
	Campaign AttractionCampaign    `gorm:"foreignKey:CampaignId"`
	Criteria []EnrollmentCriterion `gorm:"foreignKey:EnrollmentId"`
	Progress []CampaignProgress    `gorm:"foreignKey:EnrollmentId"`
}

func (CampaignEnrollment) TableName() string {
	return "campaign_enrollments"
}

type EnrollmentCriterion struct {
	Id                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EnrollmentId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	TemplateCriterionId uuid.UUID      `gorm:"type:uuid;not null"`
	Label               string         `gorm:"type:varchar(300);not null"`
	Description         string         `gorm:"type:text"`
	CriteriaType        string         `gorm:"type:varchar(20);not null"`
	TrackingSource      string         `gorm:"type:varchar(40);not null"`
	TrackingConfig      datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	TargetValue         string         `gorm:"type:varchar(150)"`
	Required            bool           `gorm:"default:true"`
	DisplayOrder        int            `gorm:"default:0"`
	CreatedAt           time.Time      `gorm:"autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime"`
}

func (EnrollmentCriterion) TableName() string {
	return "enrollment_criteria"
}

type CampaignProgress struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EnrollmentId    uuid.UUID `gorm:"type:uuid;not null;index:idx_progress_enrollment_criterion,unique"`
	CriterionId     uuid.UUID `gorm:"type:uuid;not null;index:idx_progress_enrollment_criterion,unique"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CurrentValue    string    `gorm:"type:varchar(150)"`
	AutoTracked     bool      `gorm:"default:false"`
	AutoSourceRef   string    `gorm:"type:varchar(200)"`
	ClientEvidence  string    `gorm:"type:text"`
	ClientSubmitted *time.Time
	AdminVerifiedBy *uuid.UUID `gorm:"type:uuid"`
	AdminVerifiedAt *time.Time
	AdminNotes      string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (CampaignProgress) TableName() string {
	return "campaign_progress"
}
