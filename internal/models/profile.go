package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Diet mirrors the diet_type enum type.
type Diet string

const (
	DietVeg    Diet = "veg"
	DietNonVeg Diet = "nonveg"
)

// Profile holds the event check-in state of a user.
type Profile struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       string    `json:"user_id" gorm:"type:uuid;uniqueIndex"`
	BagsChecked  bool      `json:"bags_checked"`
	Attendance   bool      `json:"attendance"`
	ReceivedFood bool      `json:"received_food"`
	Diet         Diet      `json:"diet" gorm:"type:diet_type;default:'veg'"`
	Allergens    *string   `json:"allergens,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
