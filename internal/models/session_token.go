package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionToken stores the hash of an issued session token.
type SessionToken struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     string    `json:"user_id" gorm:"type:uuid;index"`
	TokenHash  string    `json:"-" gorm:"not null"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
}

func (SessionToken) TableName() string { return "session_tokens" }

func (s *SessionToken) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}

// Expired reports whether the token is past its expiry at now.
func (s *SessionToken) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

