// Package models maps the WESMUN tables for gorm. The schema itself is owned by
// the SQL in internal/schema; these types never drive AutoMigrate in production.
package models

// All lists every model backed by the schema, parents first.
func All() []any {
	return []any{
		&Role{}, &User{}, &Profile{}, &NFCLink{}, &AuditLog{}, &RateLimit{}, &SessionToken{},
	}
}
