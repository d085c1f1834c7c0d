//go:build !senzing

package sdk

import "context"

// Open reports ErrUnavailable; see the package documentation.
func Open(ctx context.Context, opts Options) (Client, error) {
	return nil, ErrUnavailable
}
