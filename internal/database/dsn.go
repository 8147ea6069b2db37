package database

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	kvPairRegex    = regexp.MustCompile(`(?i)\b(host|user|password|dbname|port|sslmode)=`)
	kvPasswordRe   = regexp.MustCompile(`(?i)(password=)([^\s]+)`)
	defaultSSLMode = "verify-full"
)

// NormalizeDSN accepts either a URL style DSN (postgres://...) or a libpq key=value list.
// It trims quotes and whitespace and collapses repeated spaces in key=value form.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	if s == "" || isURL(s) {
		return s
	}
	// If it does not look like key=value pairs, return unchanged (driver will error)
	if !kvPairRegex.MatchString(s) {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}

// WithRootCert makes the driver verify the server against the CA bundle at path.
// An explicit sslmode in dsn is kept.
func WithRootCert(dsn, path string) string {
	if path == "" || dsn == "" {
		return dsn
	}
	if isURL(dsn) {
		u, err := url.Parse(dsn)
		if err != nil {
			return dsn
		}
		q := u.Query()
		q.Set("sslrootcert", path)
		if q.Get("sslmode") == "" {
			q.Set("sslmode", defaultSSLMode)
		}
		u.RawQuery = q.Encode()
		return u.String()
	}
	out := dsn + " sslrootcert=" + path
	if !strings.Contains(strings.ToLower(dsn), "sslmode=") {
		out += " sslmode=" + defaultSSLMode
	}
	return out
}

// MaskDSN hides the password so the DSN can be logged.
func MaskDSN(dsn string) string {
	if isURL(dsn) {
		u, err := url.Parse(dsn)
		if err != nil {
			return "<unparseable dsn>"
		}
		return u.Redacted()
	}
	return kvPasswordRe.ReplaceAllString(dsn, `${1}***`)
}

func isURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}
