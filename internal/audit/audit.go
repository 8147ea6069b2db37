// Package audit writes audit log rows with the actor and target identity
// captured at write time, so history survives later user edits and deletions.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wesmun/dbtools/internal/logger"
	"github.com/wesmun/dbtools/internal/models"
)

// Entry is one auditable action. Empty strings are stored as NULL.
type Entry struct {
	ActorID      string
	TargetUserID string
	Action       string
	Details      map[string]any
	IPAddress    string
	UserAgent    string
}

// Recorder inserts audit log rows.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder returns a Recorder writing through db.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record stores e with a snapshot of the actor and target user. A user that
// does not exist leaves its snapshot NULL.
func (r *Recorder) Record(ctx context.Context, e Entry) (*models.AuditLog, error) {
	if e.Action == "" {
		return nil, errors.New("audit action is required")
	}
	log := logger.WithFields(logrus.Fields{"action": e.Action, "actor_id": e.ActorID, "target_user_id": e.TargetUserID})
	log.Debug("creating audit log")

	db := r.db.WithContext(ctx)
	row := &models.AuditLog{
		ActorID:      optional(e.ActorID),
		TargetUserID: optional(e.TargetUserID),
		Action:       e.Action,
		IPAddress:    optional(e.IPAddress),
		UserAgent:    optional(e.UserAgent),
	}
	if e.Details != nil {
		raw, err := json.Marshal(e.Details)
		if err != nil {
			return nil, fmt.Errorf("encode audit details: %w", err)
		}
		row.Details = datatypes.JSON(raw)
	}

	var err error
	if row.ActorName, row.ActorEmail, err = snapshot(db, row.ActorID); err != nil {
		return nil, fmt.Errorf("snapshot actor: %w", err)
	}
	if row.TargetUserName, row.TargetUserEmail, err = snapshot(db, row.TargetUserID); err != nil {
		return nil, fmt.Errorf("snapshot target user: %w", err)
	}

	if err := db.Create(row).Error; err != nil {
		log.WithError(err).Error("failed to create audit log")
		return nil, fmt.Errorf("insert audit log: %w", err)
	}
	return row, nil
}

func snapshot(db *gorm.DB, id *string) (name, email *string, err error) {
	if id == nil {
		return nil, nil, nil
	}
	var user models.User
	err = db.Select("name", "email").Where("id = ?", *id).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return &user.Name, &user.Email, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
