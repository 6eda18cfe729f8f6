package registry

import (
	"fmt"
	"strings"

	"github.com/joshuapare/regkit/pkg/types"
)

// ParsePath splits ROOT\sub\path at its first backslash. The root must be
// one of types.Roots, matched exactly; the remainder is returned unchanged.
func ParsePath(path string) (types.Root, string, error) {
	root, sub, found := strings.Cut(path, `\`)
	if !found {
		return "", "", fmt.Errorf("%w: %q has no backslash", types.ErrInvalidPath, path)
	}
	for _, r := range types.Roots {
		if string(r) == root {
			return r, sub, nil
		}
	}
	return "", "", fmt.Errorf("%w: %q", types.ErrUnsupportedRoot, root)
}

func joinPath(parent, sub string) string {
	if sub == "" {
		return parent
	}
	return parent + `\` + sub
}
