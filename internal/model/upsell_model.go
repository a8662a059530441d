package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UpsellPath struct {
	Id                       uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SourceContentType        string         `gorm:"type:varchar(20);not null;index:idx_upsell_source"`
	SourceContentId          string         `gorm:"type:varchar(100);not null;index:idx_upsell_source"`
	SourceTitle              string         `gorm:"type:varchar(300)"`
	UpsellContentType        string         `gorm:"type:varchar(20);not null"`
	UpsellContentId          string         `gorm:"type:varchar(100);not null"`
	UpsellTitle              string         `gorm:"type:varchar(300)"`
	NextProblem              string         `gorm:"type:text"`
	ValueFrameText           string         `gorm:"type:text"`
	PointOfSaleSteps         datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	CreditPreviousInvestment bool           `gorm:"default:false"`
	IsActive                 bool           `gorm:"default:true;index"`
	CreatedAt                time.Time      `gorm:"autoCreateTime"`
	UpdatedAt                time.Time      `gorm:"autoUpdateTime"`
}

func (UpsellPath) TableName() string {
	return "upsell_paths"
}
