package cli

import "github.com/wesmun/dbtools/internal/schema"

// SetupDB creates the full schema, seeds the roles and migrates the audit logs.
var SetupDB = Command{
	Name:    "setup-db",
	Intent:  "Running SQL setup and migration...",
	Plan:    schema.SetupPlan,
	Expect:  schema.SetupExpectations,
	Success: []string{"Database initialized and audit logs migrated successfully!"},
	Counts: map[string]string{
		schema.StepSeedRoles:      "Roles seeded",
		schema.StepBackfillActor:  "Audit logs given actor details",
		schema.StepBackfillTarget: "Audit logs given target user details",
	},
	Closed: "Connection closed.",
}

// MigrateAudit adds the user snapshot columns to audit_logs and backfills them.
var MigrateAudit = Command{
	Name:   "migrate-audit",
	Intent: "Running migration to add static user details to audit logs...",
	Plan:   schema.AuditSnapshotPlan,
	Expect: schema.AuditSnapshotExpectations,
	Success: []string{
		"Migration completed successfully!",
		"Added actor_name, actor_email, target_user_name, target_user_email columns",
		"Migrated existing audit log data",
	},
	Counts: map[string]string{
		schema.StepBackfillActor:  "Audit logs given actor details",
		schema.StepBackfillTarget: "Audit logs given target user details",
	},
	FailureLabel: "Migration failed",
	Closed:       "Database connection closed",
}
