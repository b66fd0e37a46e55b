package db

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const (
	mysqlErrDuplicateEntry     = 1062
	mysqlErrForeignKeyNoParent = 1452
)

// IsDuplicateKey reports whether err is a MySQL unique constraint violation.
func IsDuplicateKey(err error) bool {
	var merr *mysql.MySQLError
	return errors.As(err, &merr) && merr.Number == mysqlErrDuplicateEntry
}

// IsForeignKeyViolation reports whether err is a MySQL foreign key failure
// on insert or update.
func IsForeignKeyViolation(err error) bool {
	var merr *mysql.MySQLError
	return errors.As(err, &merr) && merr.Number == mysqlErrForeignKeyNoParent
}
