package dialect

// PgxDialect drives PostgreSQL through github.com/jackc/pgx/v5/stdlib.
// Queries are shared with PostgresDialect; only the driver differs.
type PgxDialect struct {
	PostgresDialect
}

func (d *PgxDialect) DriverName() string {
	return "pgx"
}
