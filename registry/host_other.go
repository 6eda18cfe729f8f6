//go:build !windows

package registry

// Host returns ErrNoHost; only Windows has a host registry.
func Host(...Option) (*Registry, error) {
	return nil, ErrNoHost
}
