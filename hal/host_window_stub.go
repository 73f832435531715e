//go:build !cgo && !js

package hal

import "context"

func RunWindow(_ context.Context, _ func(HAL) func() error, _ WindowConfig, _ Options) error {
	return ErrNoWindow
}
