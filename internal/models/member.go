package models

import (
	"strings"
	"time"
)

type MemberStatus string

const (
	MemberStatusPending MemberStatus = "pending"
	MemberStatusActive  MemberStatus = "active"
)

type Member struct {
	ID         uint         `json:"id" gorm:"primaryKey"`
	FullName   string       `json:"full_name" gorm:"not null"`
	Email      string       `json:"email" gorm:"uniqueIndex;not null"`
	Password   string       `json:"-" gorm:"not null"`
	Status     MemberStatus `json:"status" gorm:"not null;default:'pending'"`
	Credits    int64        `json:"credits" gorm:"not null;default:0"`
	ValidUntil *time.Time   `json:"valid_until"`
	LastSeen   *time.Time   `json:"last_seen"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Expired reports whether the membership validity has lapsed. A member
// without a valid_until has never been activated and counts as expired.
func (m *Member) Expired(now time.Time) bool {
	if m.ValidUntil == nil {
		return true
	}
	return now.After(*m.ValidUntil)
}

// NormalizeEmail is applied to every email before it touches the store
// or the admin allow-list, so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
