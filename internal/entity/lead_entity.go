// FILE: internal/entity/lead_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type LeadSource string
type LeadStatus string

const (
	LeadSourceManual   LeadSource = "manual"
	LeadSourceChat     LeadSource = "chat"
	LeadSourceOutreach LeadSource = "outreach"

	LeadStatusNew       LeadStatus = "new"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusClosed    LeadStatus = "closed"
)

// Lead is an outreach prospect. Dedup key is lowercased email or the
// LinkedIn handle when no email is known.
type Lead struct {
	Id             uuid.UUID
	Email          string
	FullName       string
	Company        string
	LinkedInHandle string
	Source         LeadSource
	Status         LeadStatus
	Notes          string
	CreatedBy      *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
