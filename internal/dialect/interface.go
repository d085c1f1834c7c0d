package dialect

// Dialect abstracts the driver-specific parts of talking to PostgreSQL.
type Dialect interface {
	// DriverName is the database/sql driver registered for this dialect.
	DriverName() string

	// Metadata Queries
	SchemaVersionQuery() string
	GetTablesQuery(schema string) string
	GetSchemaName(input string) string

	// Error Classification
	// IsMissingRelation reports whether err means the queried table or its
	// schema does not exist.
	IsMissingRelation(err error) bool
}
