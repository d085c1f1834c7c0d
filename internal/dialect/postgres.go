package dialect

// PostgresDialect drives PostgreSQL through github.com/lib/pq.
type PostgresDialect struct{}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

func (d *PostgresDialect) SchemaVersionQuery() string {
	return schemaVersionQuery
}

func (d *PostgresDialect) GetTablesQuery(schema string) string {
	// use $1 placeholder
	return tablesQuery
}

func (d *PostgresDialect) GetSchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}

func (d *PostgresDialect) IsMissingRelation(err error) bool {
	return isMissingRelation(err)
}
