package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUniqueViolation reports whether err is a unique constraint violation on
// constraint. An empty constraint matches any unique violation. Drivers that
// do not expose constraint names (sqlite) are matched on the message, where
// hints such as "customers.tax_id" may be given instead.
func IsUniqueViolation(err error, constraint string, hints ...string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode && (constraint == "" || pgErr.ConstraintName == constraint)
	}

	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "duplicate key value") && !strings.Contains(msg, "unique constraint failed") {
		return errors.Is(err, gorm.ErrDuplicatedKey) && constraint == ""
	}
	if constraint == "" || strings.Contains(msg, strings.ToLower(constraint)) {
		return true
	}
	for _, h := range hints {
		if strings.Contains(msg, strings.ToLower(h)) {
			return true
		}
	}
	return false
}

// IsForeignKeyViolation reports whether err was raised by a foreign key
// constraint, typically a delete of a row that is still referenced.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == foreignKeyViolationCode
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}
