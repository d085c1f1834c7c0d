package dialect

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const schemaVersionQuery = `select var_value from sys_vars where var_group = 'VERSION' and var_code = 'SCHEMA'`

const tablesQuery = `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = $1 AND TABLE_TYPE = 'BASE TABLE'`

// SQLSTATE codes
const (
	codeUndefinedTable    = "42P01"
	codeInvalidSchemaName = "3F000"
)

// SQLState extracts the SQLSTATE code from a lib/pq or pgx error, or ""
// when err did not come from the server.
func SQLState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isMissingRelation(err error) bool {
	switch SQLState(err) {
	case codeUndefinedTable, codeInvalidSchemaName:
		return true
	}
	return false
}
