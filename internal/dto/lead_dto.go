package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateLeadRequest struct {
	Email          string `json:"email" validate:"omitempty,email"`
	FullName       string `json:"full_name"`
	Company        string `json:"company"`
	LinkedInHandle string `json:"linkedin_handle"`
	Notes          string `json:"notes"`
}

type LeadResponse struct {
	Id             uuid.UUID `json:"id"`
	Email          string    `json:"email,omitempty"`
	FullName       string    `json:"full_name,omitempty"`
	Company        string    `json:"company,omitempty"`
	LinkedInHandle string    `json:"linkedin_handle,omitempty"`
	Source         string    `json:"source"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
