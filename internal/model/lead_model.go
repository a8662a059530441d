package model

import (
	"time"

	"github.com/google/uuid"
)

type Lead struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email          string     `gorm:"type:varchar(255);index"`
	FullName       string     `gorm:"type:varchar(200)"`
	Company        string     `gorm:"type:varchar(200)"`
	LinkedInHandle string     `gorm:"type:varchar(100);index"`
	Source         string     `gorm:"type:varchar(20);not null;default:'manual'"`
	Status         string     `gorm:"type:varchar(20);not null;default:'new';index"`
	Notes          string     `gorm:"type:text"`
	CreatedBy      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`
}

func (Lead) TableName() string {
	return "leads"
}
