package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wesmun/dbtools/internal/config"
	"github.com/wesmun/dbtools/internal/database"
)

func TestPing_Success(t *testing.T) {
	isolateEnv(t)
	s := &sqliteApp{}

	require.NoError(t, s.app().Ping(context.Background(), []string{"-database-url", dbFile(t)}))

	out := s.out.String()
	assert.Contains(t, out, "[WESMUN] Testing database connection...\n[WESMUN] Connection successful!\n")
	assert.Error(t, database.Ping(context.Background(), s.opened, time.Second), "connection must be closed")
}

func TestPing_MasksPassword(t *testing.T) {
	isolateEnv(t)
	s := &sqliteApp{}
	app := s.app()
	app.Connect = func(context.Context, config.Config) (*gorm.DB, error) {
		return nil, errors.New("connect database: connection refused")
	}

	err := app.Ping(context.Background(), []string{"-database-url", "postgres://wesmun:hunter2@db:5432/wesmun"})
	require.Error(t, err)

	out := s.out.String()
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "[WESMUN] DATABASE_URL: postgres://wesmun:xxxxx@db:5432/wesmun")
	assert.Contains(t, out, "[WESMUN] ✗ Connection failed: connect database: connection refused")
}
