package setup

import (
	"context"
	"fmt"

	"sz-init/internal/sdk"

	"github.com/rs/zerolog"
)

// EnsureDefaultConfig registers the template configuration as the default
// unless a default configuration already exists.
func EnsureDefaultConfig(ctx context.Context, c sdk.Client, log zerolog.Logger) error {
	current, err := c.GetDefaultConfigID(ctx)
	if err != nil {
		return fmt.Errorf("%w: get default config id: %w", ErrDefaultConfig, err)
	}
	if current != 0 {
		log.Info().Int64("config_id", current).Msg("a configuration is already installed, skipping")
		return nil
	}

	h, err := c.CreateConfig(ctx)
	if err != nil {
		return fmt.Errorf("%w: create config: %w", ErrDefaultConfig, err)
	}
	definition, err := c.ExportConfig(ctx, h)
	if err != nil {
		return fmt.Errorf("%w: export config: %w", ErrDefaultConfig, err)
	}

	id, err := c.AddConfig(ctx, definition, DefaultConfigComment)
	if err != nil {
		return fmt.Errorf("%w: add config: %w", ErrDefaultConfig, err)
	}
	if err := c.SetDefaultConfigID(ctx, id); err != nil {
		return fmt.Errorf("%w: set default config id %d: %w", ErrDefaultConfig, id, err)
	}

	log.Info().Int64("config_id", id).Msg("default configuration installed")
	return nil
}
