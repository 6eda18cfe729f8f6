package main

import (
	"strings"

	"github.com/joshuapare/regkit/internal/regtext"
	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/registry"
)

// normalizePath expands abbreviated roots (HKCU, HKLM, ...) and drops a
// trailing backslash.
func normalizePath(path string) string {
	return regtext.ExpandRoot(strings.TrimSuffix(path, `\`))
}

// openPath opens path, which may also name a bare root.
func openPath(path string, access types.Access) (*registry.Key, error) {
	path = normalizePath(path)
	if !strings.Contains(path, `\`) {
		if _, _, err := registry.ParsePath(path + `\`); err != nil {
			return nil, err
		}
		return reg.Root(types.Root(path))
	}
	return reg.Open(path, access)
}
