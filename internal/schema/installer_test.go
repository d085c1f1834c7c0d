package schema

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sz-init/internal/dialect"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const versionQuery = `select var_value from sys_vars where var_group = 'VERSION' and var_code = 'SCHEMA'`

const tablesQuery = `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = $1 AND TABLE_TYPE = 'BASE TABLE'`

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "create.sql")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newInstaller(db *sql.DB) *Installer {
	return NewInstaller(db, &dialect.PostgresDialect{}, zerolog.Nop())
}

func versionRows(versions ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"var_value"})
	for _, v := range versions {
		rows.AddRow(v)
	}
	return rows
}

func TestEnsureInstallsOnFreshDatabase(t *testing.T) {
	db, mock := newMock(t)
	script := writeScript(t, "CREATE TABLE sys_vars (var_group VARCHAR(50), var_code VARCHAR(50), var_value VARCHAR(50));\n"+
		"\n"+
		"   \n"+
		"  CREATE TABLE obs_ent (obs_ent_id BIGINT);  \n"+
		"INSERT INTO sys_vars (var_group, var_code, var_value) VALUES ('VERSION', 'SCHEMA', '4.0');\n")

	mock.ExpectQuery(versionQuery).WillReturnError(&pq.Error{Code: "42P01", Message: `relation "sys_vars" does not exist`})
	mock.ExpectExec("CREATE TABLE sys_vars (var_group VARCHAR(50), var_code VARCHAR(50), var_value VARCHAR(50));").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE obs_ent (obs_ent_id BIGINT);").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO sys_vars (var_group, var_code, var_value) VALUES ('VERSION', 'SCHEMA', '4.0');").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(versionQuery).WillReturnRows(versionRows("4.0"))
	mock.ExpectQuery(tablesQuery).WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("sys_vars").AddRow("obs_ent"))

	res, err := newInstaller(db).Ensure(context.Background(), script)
	require.NoError(t, err)
	assert.Equal(t, Installed, res.Outcome)
	assert.Equal(t, 3, res.Statements)
	assert.Equal(t, "4.0", res.Version)
	assert.Equal(t, 2, res.Tables)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureToleratesFailedVerification(t *testing.T) {
	db, mock := newMock(t)
	script := writeScript(t, "CREATE TABLE t (id INT);\n")

	mock.ExpectQuery(versionQuery).WillReturnError(&pq.Error{Code: "3F000"})
	mock.ExpectExec("CREATE TABLE t (id INT);").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(versionQuery).WillReturnError(&pq.Error{Code: "42P01"})
	mock.ExpectQuery(tablesQuery).WithArgs("public").WillReturnError(errors.New("permission denied"))

	res, err := newInstaller(db).Ensure(context.Background(), script)
	require.NoError(t, err)
	assert.Equal(t, Installed, res.Outcome)
	assert.Empty(t, res.Version)
	assert.Zero(t, res.Tables)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSkipsCurrentSchema(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(versionQuery).WillReturnRows(versionRows("4.0"))

	// The script is never opened, so a missing file must not matter.
	res, err := newInstaller(db).Ensure(context.Background(), filepath.Join(t.TempDir(), "absent.sql"))
	require.NoError(t, err)
	assert.Equal(t, AlreadyCurrent, res.Outcome)
	assert.Equal(t, "4.0", res.Version)
	assert.Zero(t, res.Statements)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureRejectsStaleSchema(t *testing.T) {
	db, mock := newMock(t)
	script := writeScript(t, "CREATE TABLE t (id INT);\n")
	mock.ExpectQuery(versionQuery).WillReturnRows(versionRows("3.0"))

	res, err := newInstaller(db).Ensure(context.Background(), script)
	assert.Nil(t, res)
	require.ErrorIs(t, err, ErrStaleSchema)

	var stale *StaleSchemaError
	require.True(t, errors.As(err, &stale))
	assert.Equal(t, "3.0", stale.Found)
	assert.Contains(t, err.Error(), "[3.0]")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureRejectsPartialSchema(t *testing.T) {
	db, mock := newMock(t)
	script := writeScript(t, "CREATE TABLE t (id INT);\n")
	mock.ExpectQuery(versionQuery).WillReturnRows(versionRows())

	_, err := newInstaller(db).Ensure(context.Background(), script)
	assert.ErrorIs(t, err, ErrPartialSchema)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSkipsDuplicatedVersionRows(t *testing.T) {
	for name, rows := range map[string]*sqlmock.Rows{
		"same_version":  versionRows("4.0", "4.0"),
		"mixed_version": versionRows("3.0", "4.0"),
	} {
		t.Run(name, func(t *testing.T) {
			db, mock := newMock(t)
			script := writeScript(t, "CREATE TABLE t (id INT);\n")
			mock.ExpectQuery(versionQuery).WillReturnRows(rows)

			res, err := newInstaller(db).Ensure(context.Background(), script)
			require.NoError(t, err)
			assert.Equal(t, AlreadyCurrent, res.Outcome)
			assert.Zero(t, res.Statements)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEnsureFailsOnUnexpectedProbeError(t *testing.T) {
	db, mock := newMock(t)
	script := writeScript(t, "CREATE TABLE t (id INT);\n")
	mock.ExpectQuery(versionQuery).WillReturnError(&pq.Error{Code: "42501", Message: "permission denied"})

	_, err := newInstaller(db).Ensure(context.Background(), script)
	assert.ErrorIs(t, err, ErrDatabase)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureStopsAtFailingStatement(t *testing.T) {
	db, mock := newMock(t)
	script := writeScript(t, "CREATE TABLE a (id INT);\n\nCREATE TABLE b (id INT);\nCREATE TABLE c (id INT);\n")
	cause := &pq.Error{Code: "42P07", Message: `relation "b" already exists`}

	mock.ExpectQuery(versionQuery).WillReturnError(&pq.Error{Code: "42P01"})
	mock.ExpectExec("CREATE TABLE a (id INT);").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE b (id INT);").WillReturnError(cause)

	_, err := newInstaller(db).Ensure(context.Background(), script)
	require.ErrorIs(t, err, ErrStatement)

	var stmtErr *StatementError
	require.True(t, errors.As(err, &stmtErr))
	assert.Equal(t, 3, stmtErr.Line)
	assert.Equal(t, "CREATE TABLE b (id INT);", stmtErr.Statement)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("42P07"), pqErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMissingScript(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(versionQuery).WillReturnError(&pq.Error{Code: "42P01"})

	_, err := newInstaller(db).Ensure(context.Background(), filepath.Join(t.TempDir(), "absent.sql"))
	assert.ErrorIs(t, err, ErrScript)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProbeVersionNullValue(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(versionQuery).WillReturnRows(sqlmock.NewRows([]string{"var_value"}).AddRow(nil))

	probe, err := newInstaller(db).ProbeVersion(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, VersionFound, probe.Status)
	assert.Empty(t, probe.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadStatements(t *testing.T) {
	path := writeScript(t, "\ufeffCREATE TABLE a (id INT);\r\n\t\n  SELECT 1;  \n\nSELECT 2;")

	stmts, err := readStatements(path)
	require.NoError(t, err)
	assert.Equal(t, []statement{
		{Line: 1, SQL: "CREATE TABLE a (id INT);"},
		{Line: 3, SQL: "SELECT 1;"},
		{Line: 5, SQL: "SELECT 2;"},
	}, stmts)
}

func TestVersionStatusString(t *testing.T) {
	assert.Equal(t, "missing", VersionMissing.String())
	assert.Equal(t, "duplicated", VersionDuplicated.String())
	assert.Equal(t, "VersionStatus(9)", VersionStatus(9).String())
	assert.Equal(t, "installed", Installed.String())
}
