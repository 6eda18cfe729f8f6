package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/internal/regmerge"
	"github.com/joshuapare/regkit/internal/regtext"
	"github.com/joshuapare/regkit/pkg/types"
)

// ExportOptions controls the encoding of Export output.
type ExportOptions = regtext.ExportOptions

// MergeStats reports what Merge optimized away.
type MergeStats = regmerge.Stats

// Import applies regedit "Version 5.00" text to r: sections create keys,
// [-PATH] sections delete subtrees, and value lines set or delete values.
// Deleting something absent is not an error. Abbreviated roots such as
// HKLM are accepted.
func Import(r *Registry, data []byte) error {
	ops, err := regtext.ParseReg(data, regtext.ParseOptions{})
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return apply(r, ops)
}

// Merge applies several .reg files as if imported one after another, but
// first drops writes that a later file overrides and work below a later
// [-PATH] delete, then applies the rest grouped by key.
func Merge(r *Registry, files ...[]byte) (MergeStats, error) {
	plan, stats, err := regmerge.ParseAndOptimize(files, regmerge.DefaultOptions())
	if err != nil {
		return stats, fmt.Errorf("merge: %w", err)
	}
	r.log.Debug("merge plan", "input_ops", stats.InputOps, "output_ops", stats.OutputOps)
	return stats, apply(r, plan)
}

// applier runs ops, keeping the key of the last one open so consecutive
// ops on one key share a handle.
type applier struct {
	r    *Registry
	path string
	key  *Key
}

func apply(r *Registry, ops []regtext.Op) error {
	a := &applier{r: r}
	for _, op := range ops {
		if err := a.apply(op); err != nil {
			return errors.Join(fmt.Errorf("import: %w", err), a.release())
		}
	}
	return a.release()
}

func (a *applier) keyFor(path string) (*Key, error) {
	if a.key != nil && a.path == path {
		return a.key, nil
	}
	if err := a.release(); err != nil {
		return nil, err
	}
	k, err := openSection(a.r, path)
	if err != nil {
		return nil, err
	}
	a.path, a.key = path, k
	return k, nil
}

// openSection opens the key a [PATH] section names, creating it if needed.
// A bare root name such as HKEY_CURRENT_USER is valid and yields the root,
// which Export produces for a root key.
func openSection(r *Registry, path string) (*Key, error) {
	if !strings.Contains(path, `\`) {
		root, _, err := ParsePath(path + `\`)
		if err != nil {
			return nil, err
		}
		return r.Root(root)
	}
	return r.CreateOrOpen(path, types.KEY_WRITE|types.KEY_QUERY_VALUE)
}

func (a *applier) release() error {
	err := CloseAll(a.key)
	a.path, a.key = "", nil
	return err
}

func (a *applier) apply(op regtext.Op) error {
	switch op := op.(type) {
	case regtext.OpCreateKey:
		_, err := a.keyFor(op.Path)
		return err

	case regtext.OpDeleteKey:
		if err := a.release(); err != nil {
			return err
		}
		return deletePath(a.r, op.Path)

	case regtext.OpSetValue:
		k, err := a.keyFor(op.Path)
		if err != nil {
			return err
		}
		return importValue(k, op)

	case regtext.OpDeleteValue:
		k, err := a.keyFor(op.Path)
		if err != nil {
			return err
		}
		if err := k.DeleteValue(op.Name); err != nil && !errors.Is(err, types.StatusFileNotFound) {
			return err
		}
	}
	return nil
}

func deletePath(r *Registry, path string) error {
	root, sub, err := r.resolve(path)
	if err != nil {
		return err
	}
	if sub == "" {
		return fmt.Errorf("%w: refusing to delete root %s", types.ErrInvalidPath, path)
	}
	if err := root.DeleteTree(sub); err != nil && !errors.Is(err, types.StatusFileNotFound) {
		return err
	}
	return nil
}

// importValue writes op through the typed setters so string data is stored
// in the registry's width.
func importValue(k *Key, op regtext.OpSetValue) error {
	switch op.Type {
	case types.REG_SZ:
		return k.SetString(op.Name, codec.DecodeString(codec.Wide, op.Data))
	case types.REG_EXPAND_SZ:
		return k.SetExpandString(op.Name, codec.DecodeString(codec.Wide, op.Data))
	case types.REG_MULTI_SZ:
		return k.SetStrings(op.Name, codec.DecodeMultiString(codec.Wide, op.Data))
	default:
		return k.SetValue(op.Name, op.Type, op.Data)
	}
}

// Export renders k and everything below it as .reg text. Values and
// subkeys are sorted case-insensitively so output is stable.
func Export(k *Key, opts ExportOptions) ([]byte, error) {
	w := regtext.NewWriter()
	if err := exportKey(w, k); err != nil {
		return nil, fmt.Errorf("export %s: %w", k.Path(), err)
	}
	return w.Bytes(opts)
}

func exportKey(w *regtext.Writer, k *Key) error {
	w.Key(k.Path())

	names, err := k.ReadValueNames()
	if err != nil {
		return err
	}
	slices.SortFunc(names, compareFold)
	for _, name := range names {
		kind, data, err := k.GetValue(name)
		if err != nil {
			return err
		}
		if kind.IsString() {
			data = codec.Transcode(data, k.reg.width, codec.Wide)
		}
		w.Value(name, kind, data)
	}

	subkeys, err := k.ReadSubkeyNames()
	if err != nil {
		return err
	}
	slices.SortFunc(subkeys, compareFold)
	for _, name := range subkeys {
		child, err := k.Open(name, types.KEY_READ)
		if err != nil {
			return err
		}
		err = exportKey(w, child)
		if closeErr := child.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
