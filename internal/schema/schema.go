// Package schema holds the WESMUN database definition as ordered SQL steps.
//
// Every step is idempotent: types, tables, columns and triggers are guarded by
// existence checks, role seeding skips conflicts, and the audit snapshot backfill
// only fills fields that are still NULL. Running a plan again is always safe.
package schema

import (
	"embed"

	"github.com/wesmun/dbtools/internal/migrate"
)

// Plan names as they appear in logs and metrics.
const (
	SetupPlanName         = "setup"
	AuditSnapshotPlanName = "audit-snapshot"
)

// Step names the tooling reports on individually.
const (
	StepSeedRoles      = "003_seed_roles"
	StepBackfillActor  = "102_backfill_actor_snapshot"
	StepBackfillTarget = "103_backfill_target_snapshot"
)

//go:embed sql
var files embed.FS

// SetupPlan creates the full schema, seeds the roles and applies the audit snapshot migration.
func SetupPlan() (migrate.Plan, error) {
	setup, err := migrate.LoadPlan(SetupPlanName, files, "sql/setup")
	if err != nil {
		return migrate.Plan{}, err
	}
	audit, err := AuditSnapshotPlan()
	if err != nil {
		return migrate.Plan{}, err
	}
	setup.Atomic = true
	plan := setup.Then(audit)
	return plan, plan.Validate()
}

// AuditSnapshotPlan adds the actor/target snapshot columns to audit_logs and backfills them.
func AuditSnapshotPlan() (migrate.Plan, error) {
	plan, err := migrate.LoadPlan(AuditSnapshotPlanName, files, "sql/audit")
	if err != nil {
		return migrate.Plan{}, err
	}
	plan.Atomic = true
	return plan, nil
}
