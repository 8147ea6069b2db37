package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is an append-only record of an action. ActorID and TargetUserID are
// nulled when the user is deleted; the *Name and *Email snapshots are kept.
type AuditLog struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	ActorID      *string        `json:"actor_id" gorm:"type:uuid;index"`
	TargetUserID *string        `json:"target_user_id" gorm:"type:uuid;index"`
	Action       string         `json:"action" gorm:"size:100;not null"`
	Details      datatypes.JSON `json:"details,omitempty" gorm:"type:jsonb"`
	IPAddress    *string        `json:"ip_address,omitempty" gorm:"type:inet"`
	UserAgent    *string        `json:"user_agent,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`

	// Snapshot of the users row at write (or backfill) time.
	ActorName       *string `json:"actor_name,omitempty" gorm:"size:255"`
	ActorEmail      *string `json:"actor_email,omitempty" gorm:"size:255"`
	TargetUserName  *string `json:"target_user_name,omitempty" gorm:"size:255"`
	TargetUserEmail *string `json:"target_user_email,omitempty" gorm:"size:255"`
}

func (AuditLog) TableName() string { return "audit_logs" }

// SnapshotColumns are the denormalized identity columns of audit_logs.
var SnapshotColumns = []string{"actor_name", "actor_email", "target_user_name", "target_user_email"}
