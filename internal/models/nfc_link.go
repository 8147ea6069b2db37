package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NFCLink binds a badge token to a user.
type NFCLink struct {
	ID            string     `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        string     `json:"user_id" gorm:"type:uuid;uniqueIndex"`
	Token         string     `json:"uuid" gorm:"column:uuid;size:36;uniqueIndex;not null"`
	CreatedAt     time.Time  `json:"created_at"`
	LastScannedAt *time.Time `json:"last_scanned_at,omitempty"`
	ScanCount     int        `json:"scan_count"`
}

func (NFCLink) TableName() string { return "nfc_links" }

func (l *NFCLink) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.Token == "" {
		l.Token = uuid.New().String()
	}
	return
}
