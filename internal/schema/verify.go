package schema

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/wesmun/dbtools/internal/models"
)

// Expectations lists what a finished plan must have left in the database.
type Expectations struct {
	Tables []string
	// Types are PostgreSQL type names looked up in pg_type.
	Types []string
	// Columns maps a table to columns it must carry.
	Columns map[string][]string
	// Roles are role names that must be seeded exactly once.
	Roles []models.RoleName
}

// Status is the outcome of Verify. The zero value means nothing is missing.
type Status struct {
	MissingTables  []string
	MissingTypes   []string
	MissingColumns []string
	MissingRoles   []string
	DuplicateRoles []string
}

// OK reports whether every expectation held.
func (s Status) OK() bool {
	return len(s.MissingTables) == 0 && len(s.MissingTypes) == 0 && len(s.MissingColumns) == 0 &&
		len(s.MissingRoles) == 0 && len(s.DuplicateRoles) == 0
}

func (s Status) String() string {
	if s.OK() {
		return "schema complete"
	}
	var parts []string
	add := func(label string, items []string) {
		if len(items) > 0 {
			parts = append(parts, label+": "+strings.Join(items, ", "))
		}
	}
	add("missing tables", s.MissingTables)
	add("missing types", s.MissingTypes)
	add("missing columns", s.MissingColumns)
	add("missing roles", s.MissingRoles)
	add("duplicate roles", s.DuplicateRoles)
	return strings.Join(parts, "; ")
}

// SetupExpectations is what SetupPlan guarantees.
var SetupExpectations = Expectations{
	Tables: []string{"roles", "users", "profiles", "nfc_links", "audit_logs", "rate_limits", "session_tokens"},
	Types:  []string{"user_role", "diet_type"},
	Columns: map[string][]string{
		"users":      {"password_hash", "approval_status", "approved_by", "approved_at"},
		"audit_logs": models.SnapshotColumns,
	},
	Roles: models.RoleNames,
}

// AuditSnapshotExpectations is what AuditSnapshotPlan guarantees.
var AuditSnapshotExpectations = Expectations{
	Tables:  []string{"audit_logs"},
	Columns: map[string][]string{"audit_logs": models.SnapshotColumns},
}

// Verify checks exp against the live database.
func Verify(ctx context.Context, db *gorm.DB, exp Expectations) (Status, error) {
	var st Status
	db = db.WithContext(ctx)
	migrator := db.Migrator()

	for _, table := range exp.Tables {
		if !migrator.HasTable(table) {
			st.MissingTables = append(st.MissingTables, table)
		}
	}

	tables := make([]string, 0, len(exp.Columns))
	for table := range exp.Columns {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	for _, table := range tables {
		if !migrator.HasTable(table) {
			continue
		}
		for _, column := range exp.Columns[table] {
			if !migrator.HasColumn(table, column) {
				st.MissingColumns = append(st.MissingColumns, table+"."+column)
			}
		}
	}

	if len(exp.Types) > 0 {
		var found []string
		if err := db.Raw("SELECT typname FROM pg_type WHERE typname IN ?", exp.Types).Scan(&found).Error; err != nil {
			return st, fmt.Errorf("look up types: %w", err)
		}
		st.MissingTypes = missing(exp.Types, found)
	}

	if len(exp.Roles) > 0 && migrator.HasTable(&models.Role{}) {
		want := make([]string, len(exp.Roles))
		for i, r := range exp.Roles {
			want[i] = string(r)
		}
		var rows []struct {
			Name  string
			Count int64
		}
		if err := db.Model(&models.Role{}).
			Select("name, COUNT(*) AS count").
			Where("name IN ?", want).
			Group("name").
			Scan(&rows).Error; err != nil {
			return st, fmt.Errorf("count roles: %w", err)
		}
		found := make([]string, 0, len(rows))
		for _, row := range rows {
			found = append(found, row.Name)
			if row.Count > 1 {
				st.DuplicateRoles = append(st.DuplicateRoles, row.Name)
			}
		}
		st.MissingRoles = missing(want, found)
	}

	return st, nil
}

func missing(want, found []string) []string {
	have := make(map[string]struct{}, len(found))
	for _, f := range found {
		have[f] = struct{}{}
	}
	var out []string
	for _, w := range want {
		if _, ok := have[w]; !ok {
			out = append(out, w)
		}
	}
	return out
}
