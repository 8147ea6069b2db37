package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wesmun/dbtools/internal/database/dbtest"
	"github.com/wesmun/dbtools/internal/models"
)

func setupAuditDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := dbtest.Open(t)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.AuditLog{}))
	return db
}

func TestRecord_SnapshotsActorAndTarget(t *testing.T) {
	db := setupAuditDB(t)
	actor := &models.User{Email: "admin@wesmun.com", Name: "Admin"}
	target := &models.User{Email: "delegate@wesmun.com", Name: "Delegate"}
	require.NoError(t, db.Create(actor).Error)
	require.NoError(t, db.Create(target).Error)

	row, err := NewRecorder(db).Record(context.Background(), Entry{
		ActorID:      actor.ID,
		TargetUserID: target.ID,
		Action:       "user_approved",
		Details:      map[string]any{"approval_status": "approved"},
		IPAddress:    "10.0.0.1",
	})
	require.NoError(t, err)

	var got models.AuditLog
	require.NoError(t, db.First(&got, row.ID).Error)
	assert.Equal(t, "Admin", *got.ActorName)
	assert.Equal(t, "admin@wesmun.com", *got.ActorEmail)
	assert.Equal(t, "Delegate", *got.TargetUserName)
	assert.Equal(t, "delegate@wesmun.com", *got.TargetUserEmail)
	assert.JSONEq(t, `{"approval_status":"approved"}`, string(got.Details))
	assert.Equal(t, "10.0.0.1", *got.IPAddress)
	assert.Nil(t, got.UserAgent)

	// Later edits to the user do not rewrite history.
	require.NoError(t, db.Model(actor).Update("name", "Renamed").Error)
	var reread models.AuditLog
	require.NoError(t, db.First(&reread, row.ID).Error)
	assert.Equal(t, "Admin", *reread.ActorName)
}

func TestRecord_UnknownOrMissingUsers(t *testing.T) {
	db := setupAuditDB(t)

	row, err := NewRecorder(db).Record(context.Background(), Entry{
		ActorID: "00000000-0000-0000-0000-000000000000",
		Action:  "login_failed",
	})
	require.NoError(t, err)
	assert.NotNil(t, row.ActorID)
	assert.Nil(t, row.ActorName)
	assert.Nil(t, row.ActorEmail)
	assert.Nil(t, row.TargetUserID)
	assert.Nil(t, row.TargetUserName)
	assert.Nil(t, row.Details)
}

func TestRecord_RequiresAction(t *testing.T) {
	db := setupAuditDB(t)
	_, err := NewRecorder(db).Record(context.Background(), Entry{ActorID: "x"})
	assert.ErrorContains(t, err, "action is required")
}
