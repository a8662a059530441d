package specification

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ActiveOnly filters rows carrying an is_active flag.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ByClientEmail matches case-insensitively; client emails arrive from forms
// and checkout flows with inconsistent casing.
type ByClientEmail struct {
	Email string
}

func (s ByClientEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(client_email) = ?", strings.ToLower(s.Email))
}

// ByStatus filters on a status column.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// BySlug filters on a slug column.
type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

// ExpiresBefore finds instances whose window has already closed.
type ExpiresBefore struct {
	At time.Time
}

func (s ExpiresBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at < ?", s.At)
}

// BySessionKey filters chat rows by their external session key.
type BySessionKey struct {
	Key string
}

func (s BySessionKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_key = ?", s.Key)
}
