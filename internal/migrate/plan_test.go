package migrate

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPlan_OrdersFilesAndSkipsNonSQL(t *testing.T) {
	fsys := fstest.MapFS{
		"steps/002_seed_roles.sql":  &fstest.MapFile{Data: []byte("INSERT INTO roles (name) VALUES ('user');")},
		"steps/001_roles.sql":       &fstest.MapFile{Data: []byte("CREATE TABLE IF NOT EXISTS roles (name TEXT);")},
		"steps/003_blank.sql":       &fstest.MapFile{Data: []byte("  \n\t")},
		"steps/README.md":           &fstest.MapFile{Data: []byte("docs")},
		"steps/nested/004_skip.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
	}

	plan, err := LoadPlan("setup", fsys, "steps")
	require.NoError(t, err)
	assert.Equal(t, "setup", plan.Name)
	assert.Equal(t, []string{"001_roles", "002_seed_roles"}, plan.StepNames())
	assert.Contains(t, plan.Steps[0].SQL, "CREATE TABLE")
	assert.False(t, plan.Atomic)
}

func TestLoadPlan_Errors(t *testing.T) {
	_, err := LoadPlan("setup", fstest.MapFS{}, "missing")
	assert.Error(t, err)

	_, err = LoadPlan("setup", fstest.MapFS{"steps/notes.txt": &fstest.MapFile{Data: []byte("x")}}, "steps")
	assert.ErrorContains(t, err, "has no steps")
}

func TestPlan_Validate(t *testing.T) {
	tests := []struct {
		name string
		plan Plan
		want string
	}{
		{"no name", Plan{Steps: []Step{{Name: "a", SQL: "SELECT 1"}}}, "plan name is required"},
		{"no steps", Plan{Name: "p"}, "has no steps"},
		{"unnamed step", Plan{Name: "p", Steps: []Step{{SQL: "SELECT 1"}}}, "step 1 has no name"},
		{"duplicate", Plan{Name: "p", Steps: []Step{{Name: "a", SQL: "SELECT 1"}, {Name: "a", SQL: "SELECT 2"}}}, "duplicate step a"},
		{"blank sql", Plan{Name: "p", Steps: []Step{{Name: "a", SQL: " "}}}, "step a has no SQL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.plan.Validate(), tt.want)
		})
	}

	ok := Plan{Name: "p", Steps: []Step{{Name: "a", SQL: "SELECT 1"}}}
	assert.NoError(t, ok.Validate())
}

func TestPlan_Then(t *testing.T) {
	first := Plan{Name: "setup", Atomic: true, Steps: []Step{{Name: "001_roles", SQL: "a"}}}
	second := Plan{Name: "audit", Steps: []Step{{Name: "001_snapshot_columns", SQL: "b"}, {Name: "002_backfill", SQL: "c"}}}

	combined := first.Then(second)
	assert.Equal(t, "setup", combined.Name)
	assert.True(t, combined.Atomic)
	assert.Equal(t, []string{"001_roles", "001_snapshot_columns", "002_backfill"}, combined.StepNames())
	assert.Len(t, first.Steps, 1, "Then must not modify the receiver")
}
