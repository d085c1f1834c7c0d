// Package schema installs the vendor PostgreSQL schema when a database has
// none, and refuses to touch a database whose schema it does not recognize.
package schema

import (
	"context"
	"database/sql"
	"fmt"

	"sz-init/internal/dialect"

	"github.com/rs/zerolog"
)

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Open opens the database behind url with the dialect's driver and checks
// that it answers.
func Open(ctx context.Context, d dialect.Dialect, url string) (*sql.DB, error) {
	db, err := sql.Open(d.DriverName(), url)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open db: %w", ErrDatabase, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to connect to db: %w", ErrDatabase, err)
	}
	return db, nil
}

// Installer checks and creates the schema over a single pinned connection.
// Nothing runs inside a transaction, so a failed probe does not poison the
// statements that follow it.
type Installer struct {
	db      *sql.DB
	dialect dialect.Dialect
	log     zerolog.Logger

	// Progress draws a progress bar on stdout while the script runs.
	Progress bool
}

func NewInstaller(db *sql.DB, d dialect.Dialect, log zerolog.Logger) *Installer {
	return &Installer{db: db, dialect: d, log: log}
}

// Ensure makes sure the current schema is installed. When the version table
// is missing it runs the script at scriptPath. When the current version is
// present, or several version rows exist, it does nothing. A stale version or
// an empty version table is an error and the database is left untouched.
func (in *Installer) Ensure(ctx context.Context, scriptPath string) (*Result, error) {
	conn, err := in.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to acquire connection: %w", ErrDatabase, err)
	}
	defer conn.Close()

	probe, err := in.ProbeVersion(ctx, conn)
	if err != nil {
		return nil, err
	}

	switch probe.Status {
	case VersionFound:
		if probe.Version != CurrentVersion {
			return nil, &StaleSchemaError{Found: probe.Version}
		}
		in.log.Info().Str("version", probe.Version).Msg("schema already exists in the database, skipping creation")
		return &Result{Outcome: AlreadyCurrent, Version: probe.Version}, nil
	case VersionDuplicated:
		in.log.Warn().Int("rows", probe.Rows).Str("version", probe.Version).
			Msg("several schema version rows found, assuming schema exists, skipping creation")
		return &Result{Outcome: AlreadyCurrent, Version: probe.Version}, nil
	case VersionEmpty:
		return nil, ErrPartialSchema
	}

	return in.install(ctx, conn, scriptPath)
}

// ProbeVersion reads the schema version row. A missing version table is a
// normal outcome (VersionMissing); every other query failure is an error.
func (in *Installer) ProbeVersion(ctx context.Context, q querier) (VersionProbe, error) {
	rows, err := q.QueryContext(ctx, in.dialect.SchemaVersionQuery())
	if err != nil {
		return in.probeFailed(err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return VersionProbe{}, fmt.Errorf("%w: failed to scan schema version: %w", ErrDatabase, err)
		}
		versions = append(versions, v.String)
	}
	if err := rows.Err(); err != nil {
		return in.probeFailed(err)
	}

	probe := VersionProbe{Rows: len(versions)}
	switch len(versions) {
	case 0:
		probe.Status = VersionEmpty
	case 1:
		probe.Status = VersionFound
		probe.Version = versions[0]
	default:
		probe.Status = VersionDuplicated
		probe.Version = versions[0]
	}
	return probe, nil
}

func (in *Installer) probeFailed(err error) (VersionProbe, error) {
	if in.dialect.IsMissingRelation(err) {
		in.log.Debug().Err(err).Msg("schema version table not found")
		return VersionProbe{Status: VersionMissing}, nil
	}
	return VersionProbe{}, fmt.Errorf("%w: failed to read schema version: %w", ErrDatabase, err)
}

func (in *Installer) install(ctx context.Context, conn *sql.Conn, scriptPath string) (*Result, error) {
	stmts, err := readStatements(scriptPath)
	if err != nil {
		return nil, err
	}

	in.log.Info().
		Str("script", scriptPath).
		Int("statements", len(stmts)).
		Msg("no schema found, creating")

	if err := in.runStatements(ctx, conn, stmts); err != nil {
		return nil, err
	}

	res := &Result{Outcome: Installed, Statements: len(stmts)}

	probe, err := in.ProbeVersion(ctx, conn)
	switch {
	case err != nil:
		in.log.Warn().Err(err).Msg("could not read schema version after creation")
	case probe.Status != VersionFound:
		in.log.Warn().Stringer("status", probe.Status).Msg("schema script did not record a version")
	default:
		res.Version = probe.Version
	}

	tables, err := ListTables(ctx, conn, in.dialect, "")
	if err != nil {
		in.log.Warn().Err(err).Msg("could not list tables after creation")
	}
	res.Tables = len(tables)

	in.log.Info().
		Str("version", res.Version).
		Int("tables", res.Tables).
		Int("statements", res.Statements).
		Msg("schema created")
	return res, nil
}
