package registry

import (
	"errors"
	"fmt"

	"github.com/joshuapare/regkit/internal/engine"
	"github.com/joshuapare/regkit/pkg/types"
)

// Key is an open registry key. Keys returned by Open, Create, CreateOrOpen
// and OpenCurrentUser own an engine handle and must be closed exactly once;
// keys returned by Root do not, and closing them only marks them closed.
//
// A Key is not safe for concurrent use.
type Key struct {
	reg    *Registry
	h      engine.Handle
	path   string
	owned  bool
	closed bool
}

// Path returns the path the key was opened at.
func (k *Key) Path() string { return k.path }

func (k *Key) handle() (engine.Handle, error) {
	if k == nil || k.closed {
		return 0, types.ErrClosed
	}
	return k.h, nil
}

// Root returns the predefined root key r.
func (r *Registry) Root(root types.Root) (*Key, error) {
	h, ok := engine.RootHandle(root)
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedRoot, root)
	}
	return &Key{reg: r, h: h, path: string(root)}, nil
}

func (r *Registry) resolve(path string) (*Key, string, error) {
	root, sub, err := ParsePath(path)
	if err != nil {
		return nil, "", err
	}
	k, err := r.Root(root)
	return k, sub, err
}

// Open opens an existing key by path. Zero access means types.KEY_READ.
func (r *Registry) Open(path string, access types.Access) (*Key, error) {
	root, sub, err := r.resolve(path)
	if err != nil {
		return nil, err
	}
	return root.Open(sub, access)
}

// Create creates a key by path. It fails with types.ErrKeyExists when the key
// is already present.
func (r *Registry) Create(path string, access types.Access) (*Key, error) {
	root, sub, err := r.resolve(path)
	if err != nil {
		return nil, err
	}
	return root.Create(sub, access)
}

// CreateOrOpen creates a key by path, or opens it when it exists.
func (r *Registry) CreateOrOpen(path string, access types.Access) (*Key, error) {
	root, sub, err := r.resolve(path)
	if err != nil {
		return nil, err
	}
	return root.CreateOrOpen(sub, access)
}

// OpenCurrentUser opens the HKEY_CURRENT_USER root of the user the calling
// thread acts for.
func (r *Registry) OpenCurrentUser(access types.Access) (*Key, error) {
	h, st := r.eng.OpenCurrentUser(access.OrDefault())
	if err := r.translate("RegOpenCurrentUser", st); err != nil {
		return nil, fmt.Errorf("open current user: %w", err)
	}
	return &Key{reg: r, h: h, path: string(types.RootCurrentUser), owned: true}, nil
}

// Open opens subkey below k. The new key is independent of k: both must be
// closed.
func (k *Key) Open(subkey string, access types.Access) (*Key, error) {
	h, err := k.handle()
	if err != nil {
		return nil, err
	}
	path := joinPath(k.path, subkey)
	child, st := k.reg.eng.OpenKey(h, subkey, access.OrDefault())
	if err := k.reg.translate("RegOpenKeyEx", st); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Key{reg: k.reg, h: child, path: path, owned: true}, nil
}

// Create creates subkey below k and fails with types.ErrKeyExists when it is
// already present. The handle the engine opened for the existing key is
// closed before returning.
func (k *Key) Create(subkey string, access types.Access) (*Key, error) {
	child, disposition, err := k.create(subkey, access)
	if err != nil {
		return nil, err
	}
	if disposition == engine.OpenedExistingKey {
		closeErr := child.Close()
		return nil, errors.Join(fmt.Errorf("create %s: %w", child.path, types.ErrKeyExists), closeErr)
	}
	return child, nil
}

// CreateOrOpen creates subkey below k, or opens it when it exists.
func (k *Key) CreateOrOpen(subkey string, access types.Access) (*Key, error) {
	child, _, err := k.create(subkey, access)
	return child, err
}

func (k *Key) create(subkey string, access types.Access) (*Key, engine.Disposition, error) {
	h, err := k.handle()
	if err != nil {
		return nil, 0, err
	}
	path := joinPath(k.path, subkey)
	child, disposition, st := k.reg.eng.CreateKey(h, subkey, access.OrDefault())
	if err := k.reg.translate("RegCreateKeyEx", st); err != nil {
		return nil, 0, fmt.Errorf("create %s: %w", path, err)
	}
	return &Key{reg: k.reg, h: child, path: path, owned: true}, disposition, nil
}

// Close releases the key. Closing a key twice returns types.ErrClosed.
func (k *Key) Close() error {
	if _, err := k.handle(); err != nil {
		return err
	}
	k.closed = true
	if !k.owned {
		return nil
	}
	if err := k.reg.translate("RegCloseKey", k.reg.eng.CloseKey(k.h)); err != nil {
		return fmt.Errorf("close %s: %w", k.path, err)
	}
	return nil
}

// CloseAll closes every key in order, continuing past failures, and returns
// the failures joined. Nil keys are skipped.
func CloseAll(keys ...*Key) error {
	var errs []error
	for _, k := range keys {
		if k == nil {
			continue
		}
		if err := k.Close(); err != nil {
			if k.reg != nil {
				k.reg.log.Debug("close failed", "key", k.path, "error", err)
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
