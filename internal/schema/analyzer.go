package schema

import (
	"context"
	"fmt"

	"sz-init/internal/dialect"
)

// ListTables returns the base tables of schemaName ("" means public).
func ListTables(ctx context.Context, q querier, d dialect.Dialect, schemaName string) ([]string, error) {
	target := d.GetSchemaName(schemaName)

	rows, err := q.QueryContext(ctx, d.GetTablesQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return tables, nil
}
