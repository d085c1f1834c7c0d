package dialect

import "fmt"

// GetDialect returns the Dialect for a database/sql driver name.
func GetDialect(driver string) (Dialect, error) {
	switch driver {
	case "", "postgres", "postgresql":
		return &PostgresDialect{}, nil
	case "pgx":
		return &PgxDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q (want postgres or pgx)", driver)
	}
}

// Ensure interface implementation
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*PgxDialect)(nil)
