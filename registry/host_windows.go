//go:build windows

package registry

import "github.com/joshuapare/regkit/internal/engine/winreg"

// Host returns a Registry backed by the registry of the running system.
func Host(opts ...Option) (*Registry, error) {
	return New(winreg.New(), opts...), nil
}
