package setup

import (
	"context"
	"fmt"
	"io"

	"sz-init/internal/sdk"
)

// SmokeTest brings the engine up, primes it unless skipPrime is set, and
// prints the product version followed by the test outcome.
func SmokeTest(ctx context.Context, c sdk.Client, skipPrime bool, out io.Writer) error {
	if err := smokeTest(ctx, c, skipPrime, out); err != nil {
		fmt.Fprintln(out, "FAILED Senzing initialization test.")
		return fmt.Errorf("%w: %w", ErrEngineInit, err)
	}
	fmt.Fprintln(out, "Successful Senzing initialization test.")
	return nil
}

func smokeTest(ctx context.Context, c sdk.Client, skipPrime bool, out io.Writer) error {
	if err := c.InitEngine(ctx); err != nil {
		return err
	}
	if !skipPrime {
		if err := c.PrimeEngine(ctx); err != nil {
			return fmt.Errorf("prime engine: %w", err)
		}
	}
	version, err := c.GetVersion(ctx)
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}
	fmt.Fprintln(out, version)
	return nil
}
