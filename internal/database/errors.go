package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/wesmun/dbtools/internal/util"
)

// Describe renders err for the console. Server errors carry their SQLSTATE code.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Sprintf("[DB-ERROR-%s] %s", pgErr.Code, util.SanitizeForLog(pgErr.Message))
	}
	return util.SanitizeForLog(err.Error())
}

// ErrorFields extracts structured details from a server error for logging.
func ErrorFields(err error) logrus.Fields {
	fields := logrus.Fields{}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fields
	}
	fields["code"] = pgErr.Code
	if pgErr.ConstraintName != "" {
		fields["constraint"] = pgErr.ConstraintName
	}
	if pgErr.Detail != "" {
		fields["detail"] = util.SanitizeForLog(pgErr.Detail)
	}
	if pgErr.Where != "" {
		fields["where"] = util.SanitizeForLog(pgErr.Where)
	}
	return fields
}
