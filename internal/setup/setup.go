// Package setup runs the initialization end to end: schema, default
// configuration, then an engine smoke test.
package setup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"sz-init/internal/dburl"
	"sz-init/internal/dialect"
	"sz-init/internal/engineconfig"
	"sz-init/internal/schema"
	"sz-init/internal/sdk"

	"github.com/rs/zerolog"
)

var (
	// ErrEngineInit covers SDK start-up and the smoke test.
	ErrEngineInit = errors.New("engine initialization failed")

	// ErrDefaultConfig covers reading or registering the default configuration.
	ErrDefaultConfig = errors.New("default configuration install failed")
)

// DefaultConfigComment labels the configuration registered by EnsureDefaultConfig.
const DefaultConfigComment = "Initial configuration."

// Options is everything one run needs, built once at the entry point.
type Options struct {
	EngineConfigJSON string
	Driver           string
	InstanceName     string
	DebugTrace       bool
	SkipEnginePrime  bool

	// Progress draws a progress bar while the schema script runs.
	Progress bool
}

// Runner wires the steps together. OpenDB and OpenSDK default to the real
// implementations and are replaced in tests.
type Runner struct {
	log zerolog.Logger
	out io.Writer

	OpenDB  func(ctx context.Context, d dialect.Dialect, url string) (*sql.DB, error)
	OpenSDK func(ctx context.Context, opts sdk.Options) (sdk.Client, error)
}

// NewRunner returns a Runner that logs to log and prints user-facing
// results (product version, test outcome) to out.
func NewRunner(log zerolog.Logger, out io.Writer) *Runner {
	return &Runner{
		log:     log,
		out:     out,
		OpenDB:  schema.Open,
		OpenSDK: sdk.Open,
	}
}

// Run performs the whole initialization. Every error is fatal to the run.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	ec, err := engineconfig.Parse(opts.EngineConfigJSON)
	if err != nil {
		return err
	}
	r.log.Debug().
		Str("resource_path", ec.ResourcePath).
		Str("config_path", ec.ConfigPath).
		Str("support_path", ec.SupportPath).
		Msg("engine configuration loaded")

	d, err := dialect.GetDialect(opts.Driver)
	if err != nil {
		return err
	}

	url, err := dburl.Normalize(ec.Connection)
	if err != nil {
		return err
	}

	client, err := r.OpenSDK(ctx, sdk.Options{
		InstanceName:   opts.InstanceName,
		Settings:       ec.Raw,
		VerboseLogging: opts.DebugTrace,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEngineInit, err)
	}
	defer func() {
		if err := client.Close(ctx); err != nil {
			r.log.Warn().Err(err).Msg("failed to release SDK")
		}
	}()

	if err := r.createSchema(ctx, d, url, ec.SchemaScriptPath(), opts.Progress); err != nil {
		return err
	}

	if err := EnsureDefaultConfig(ctx, client, r.log.With().Str("component", "config").Logger()); err != nil {
		return err
	}

	return SmokeTest(ctx, client, opts.SkipEnginePrime, r.out)
}

func (r *Runner) createSchema(ctx context.Context, d dialect.Dialect, url, scriptPath string, progress bool) error {
	log := r.log.With().Str("component", "schema").Logger()
	log.Info().Str("url", dburl.Mask(url)).Str("driver", d.DriverName()).Msg("connecting")

	db, err := r.OpenDB(ctx, d, url)
	if err != nil {
		return err
	}
	defer db.Close()

	installer := schema.NewInstaller(db, d, log)
	installer.Progress = progress
	_, err = installer.Ensure(ctx, scriptPath)
	return err
}
