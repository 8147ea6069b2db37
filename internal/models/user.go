package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApprovalStatus tracks the admin approval workflow of a registration.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// User is an attendee or staff account.
type User struct {
	ID             string         `json:"id" gorm:"type:uuid;primaryKey"`
	Email          string         `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Name           string         `json:"name" gorm:"size:255;not null"`
	Image          *string        `json:"image,omitempty"`
	RoleID         *int           `json:"role_id,omitempty" gorm:"default:1"`
	PasswordHash   *string        `json:"-"` // Never serialize password hash
	ApprovalStatus ApprovalStatus `json:"approval_status" gorm:"size:20;default:'pending'"`
	ApprovedBy     *string        `json:"approved_by,omitempty" gorm:"type:uuid"`
	ApprovedAt     *time.Time     `json:"approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// IsApproved reports whether the account may sign in.
func (u *User) IsApproved() bool {
	return u.ApprovalStatus == ApprovalApproved
}
