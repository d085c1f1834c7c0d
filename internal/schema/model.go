package schema

import (
	"errors"
	"fmt"
)

// CurrentVersion is the schema revision this tool installs.
const CurrentVersion = "4.0"

var (
	// ErrDatabase covers connection failures and unexpected query errors.
	ErrDatabase = errors.New("database error")

	// ErrPartialSchema means the version table exists but holds no schema
	// version row.
	ErrPartialSchema = errors.New("database appears to contain a partial schema; contact support")

	// ErrStaleSchema is wrapped by StaleSchemaError.
	ErrStaleSchema = errors.New("database contains an old schema")

	// ErrScript means the schema script could not be read.
	ErrScript = errors.New("schema script unreadable")

	// ErrStatement is wrapped by StatementError.
	ErrStatement = errors.New("schema statement failed")
)

// VersionStatus is the outcome of probing the schema version table.
type VersionStatus int

const (
	// VersionMissing means the version table does not exist: a fresh database.
	VersionMissing VersionStatus = iota
	// VersionEmpty means the table exists but holds no schema version row.
	VersionEmpty
	// VersionFound means exactly one version row was read.
	VersionFound
	// VersionDuplicated means more than one version row was read. Version
	// holds the first one and no stale check is made.
	VersionDuplicated
)

func (s VersionStatus) String() string {
	switch s {
	case VersionMissing:
		return "missing"
	case VersionEmpty:
		return "empty"
	case VersionFound:
		return "found"
	case VersionDuplicated:
		return "duplicated"
	default:
		return fmt.Sprintf("VersionStatus(%d)", int(s))
	}
}

// VersionProbe is what ProbeVersion saw in the database.
type VersionProbe struct {
	Status  VersionStatus
	Version string
	Rows    int
}

// Outcome tells what Ensure did.
type Outcome int

const (
	AlreadyCurrent Outcome = iota
	Installed
)

func (o Outcome) String() string {
	if o == Installed {
		return "installed"
	}
	return "already current"
}

// Result summarizes an Ensure call.
type Result struct {
	Outcome    Outcome
	Version    string
	Statements int
	Tables     int
}

// StaleSchemaError is returned when the database reports a schema version
// other than CurrentVersion. The installer never touches such a database.
type StaleSchemaError struct {
	Found string
}

func (e *StaleSchemaError) Error() string {
	return fmt.Sprintf("database appears to contain an old schema [%s]; refer to Senzing documentation for upgrade instructions", e.Found)
}

func (e *StaleSchemaError) Unwrap() error {
	return ErrStaleSchema
}

// StatementError is returned when a line of the schema script fails.
type StatementError struct {
	Line      int
	Statement string
	Err       error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("schema statement at line %d failed: %v", e.Line, e.Err)
}

func (e *StatementError) Unwrap() []error {
	return []error{ErrStatement, e.Err}
}
