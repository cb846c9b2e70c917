package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole normalizes a role claim. Unknown values fall back to RoleUser.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

// Is reports whether r matches want, ignoring case.
func (r Role) Is(want Role) bool {
	return strings.EqualFold(string(r), string(want))
}

// User represents a back-office account.
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:128;not null"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	Password  string    `gorm:"size:255;not null"`
	Role      Role      `gorm:"size:16;not null;default:USER"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
