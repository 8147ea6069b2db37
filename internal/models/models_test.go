package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wesmun/dbtools/internal/database/dbtest"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := dbtest.Open(t)
	require.NoError(t, db.AutoMigrate(All()...))
	return db
}

func TestTableNames(t *testing.T) {
	db := setupTestDB(t)
	for _, table := range []string{"roles", "users", "profiles", "nfc_links", "audit_logs", "rate_limits", "session_tokens"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	for _, column := range SnapshotColumns {
		assert.True(t, db.Migrator().HasColumn(&AuditLog{}, column), column)
	}
	assert.True(t, db.Migrator().HasColumn(&NFCLink{}, "uuid"))
}

func TestRoleNames(t *testing.T) {
	assert.Equal(t, []RoleName{"user", "security", "overseer", "admin"}, RoleNames)
}

func TestUser_BeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	u := &User{Email: "delegate@wesmun.com", Name: "Delegate", ApprovalStatus: ApprovalPending}
	require.NoError(t, db.Create(u).Error)
	assert.Len(t, u.ID, 36)
	assert.False(t, u.IsApproved())

	keep := &User{ID: "7d7ac5d2-3b4a-4a38-9a52-1f4f2b8f6a11", Email: "chair@wesmun.com", Name: "Chair", ApprovalStatus: ApprovalApproved}
	require.NoError(t, db.Create(keep).Error)
	assert.Equal(t, "7d7ac5d2-3b4a-4a38-9a52-1f4f2b8f6a11", keep.ID)
	assert.True(t, keep.IsApproved())
}

func TestUser_DefaultsToUserRole(t *testing.T) {
	db := setupTestDB(t)
	u := &User{Email: "attendee@wesmun.com", Name: "Attendee"}
	require.NoError(t, db.Create(u).Error)

	var stored User
	require.NoError(t, db.First(&stored, "id = ?", u.ID).Error)
	require.NotNil(t, stored.RoleID, "a nil role must fall back to the column default")
	assert.Equal(t, 1, *stored.RoleID)
	assert.Equal(t, ApprovalPending, stored.ApprovalStatus)

	admin := 4
	elevated := &User{Email: "admin@wesmun.com", Name: "Admin", RoleID: &admin}
	require.NoError(t, db.Create(elevated).Error)
	var storedAdmin User
	require.NoError(t, db.First(&storedAdmin, "id = ?", elevated.ID).Error)
	require.NotNil(t, storedAdmin.RoleID)
	assert.Equal(t, 4, *storedAdmin.RoleID)
}

func TestProfileAndNFCLink_BeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	u := &User{Email: "badge@wesmun.com", Name: "Badge", ApprovalStatus: ApprovalApproved}
	require.NoError(t, db.Create(u).Error)

	p := &Profile{UserID: u.ID, Diet: DietNonVeg}
	require.NoError(t, db.Create(p).Error)
	assert.NotEmpty(t, p.ID)

	l := &NFCLink{UserID: u.ID}
	require.NoError(t, db.Create(l).Error)
	assert.NotEmpty(t, l.ID)
	assert.Len(t, l.Token, 36)
	assert.NotEqual(t, l.ID, l.Token)

	var found NFCLink
	require.NoError(t, db.Where("uuid = ?", l.Token).First(&found).Error)
	assert.Equal(t, u.ID, found.UserID)
}

func TestAuditLog_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	name, email := "Chair", "chair@wesmun.com"
	entry := &AuditLog{
		Action:     "user_update",
		Details:    datatypes.JSON(`{"field":"attendance"}`),
		ActorName:  &name,
		ActorEmail: &email,
	}
	require.NoError(t, db.Create(entry).Error)
	assert.NotZero(t, entry.ID)

	var got AuditLog
	require.NoError(t, db.First(&got, entry.ID).Error)
	assert.Nil(t, got.ActorID)
	assert.Equal(t, "Chair", *got.ActorName)
	assert.JSONEq(t, `{"field":"attendance"}`, string(got.Details))
}

func TestSessionToken_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := &SessionToken{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Hour)))
}
