package models

import "time"

// RoleName mirrors the user_role enum type.
type RoleName string

const (
	// RoleUser is the default role for registered attendees.
	RoleUser RoleName = "user"
	// RoleSecurity may update bags_checked and attendance.
	RoleSecurity RoleName = "security"
	// RoleOverseer has read-only access to all user data.
	RoleOverseer RoleName = "overseer"
	// RoleAdmin has full access.
	RoleAdmin RoleName = "admin"
)

// RoleNames lists the seeded roles in id order.
var RoleNames = []RoleName{RoleUser, RoleSecurity, RoleOverseer, RoleAdmin}

// Role is one row of the fixed roles table.
type Role struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Name        RoleName  `json:"name" gorm:"type:user_role;uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Role) TableName() string { return "roles" }
