// Package sdk is the narrow slice of the Senzing SDK this tool calls.
//
// The real binding needs the native Senzing library and is compiled only
// with the "senzing" build tag:
//
//	go build -tags senzing .
//
// Without the tag, Open returns ErrUnavailable.
package sdk

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by Open in builds without the Senzing binding.
var ErrUnavailable = errors.New("built without Senzing SDK support (rebuild with -tags senzing)")

// Client covers configuration management and the engine smoke test.
type Client interface {
	GetDefaultConfigID(ctx context.Context) (int64, error)
	AddConfig(ctx context.Context, definition, comment string) (int64, error)
	SetDefaultConfigID(ctx context.Context, configID int64) error

	CreateConfig(ctx context.Context) (ConfigHandle, error)
	ExportConfig(ctx context.Context, h ConfigHandle) (string, error)

	// InitEngine brings the engine up without priming it.
	InitEngine(ctx context.Context) error
	PrimeEngine(ctx context.Context) error
	GetVersion(ctx context.Context) (string, error)

	Close(ctx context.Context) error
}

// ConfigHandle refers to an in-memory configuration created by CreateConfig.
type ConfigHandle struct {
	ref any
}

func NewConfigHandle(ref any) ConfigHandle {
	return ConfigHandle{ref: ref}
}

func (h ConfigHandle) Ref() any {
	return h.ref
}

// Options configures the SDK instance.
type Options struct {
	// InstanceName identifies this process in SDK diagnostics.
	InstanceName string
	// Settings is the engine configuration JSON, passed verbatim.
	Settings string
	// VerboseLogging turns on SDK debug tracing.
	VerboseLogging bool
}
