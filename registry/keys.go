package registry

import (
	"fmt"
	"iter"

	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/pkg/types"
)

// Stat returns the aggregate metadata of k.
func (k *Key) Stat() (types.KeyInfo, error) {
	h, err := k.handle()
	if err != nil {
		return types.KeyInfo{}, err
	}
	info, st := k.reg.eng.QueryInfoKey(h)
	if err := k.reg.translate("RegQueryInfoKey", st); err != nil {
		return types.KeyInfo{}, fmt.Errorf("stat %s: %w", k.path, err)
	}
	return info, nil
}

// CountValues returns the number of values of k. k needs KEY_QUERY_VALUE.
func (k *Key) CountValues() (int, error) {
	info, err := k.Stat()
	return int(info.ValueCount), err
}

// CountSubkeys returns the number of direct subkeys of k. k needs
// KEY_QUERY_VALUE.
func (k *Key) CountSubkeys() (int, error) {
	info, err := k.Stat()
	return int(info.SubkeyCount), err
}

// DeleteSubkey deletes a childless subkey and its values. The engine
// refuses keys that still have subkeys. access carries the registry view
// (KEY_WOW64_32KEY or KEY_WOW64_64KEY) and may be zero.
func (k *Key) DeleteSubkey(subkey string, access types.Access) error {
	h, err := k.handle()
	if err != nil {
		return err
	}
	if err := k.reg.translate("RegDeleteKeyEx", k.reg.eng.DeleteKey(h, subkey, access)); err != nil {
		return fmt.Errorf("delete %s: %w", joinPath(k.path, subkey), err)
	}
	return nil
}

// DeleteTree deletes subkey with everything below it. An empty subkey
// deletes every subkey and value of k but keeps k.
func (k *Key) DeleteTree(subkey string) error {
	h, err := k.handle()
	if err != nil {
		return err
	}
	if err := k.reg.translate("RegDeleteTree", k.reg.eng.DeleteTree(h, subkey)); err != nil {
		return fmt.Errorf("delete tree %s: %w", joinPath(k.path, subkey), err)
	}
	return nil
}

// NameIter walks subkey or value names in engine order. It is lazy and
// forward-only:
//
//	it := k.Subkeys()
//	defer it.Close()
//	for it.Next() {
//		fmt.Println(it.Name())
//	}
//	if err := it.Err(); err != nil {
//		return err
//	}
type NameIter struct {
	k      *Key
	values bool

	buf   *[]byte
	index uint32
	name  string
	err   error
	done  bool
}

// Subkeys returns an iterator over the names of the direct subkeys of k.
// k needs KEY_ENUMERATE_SUB_KEYS and KEY_QUERY_VALUE.
func (k *Key) Subkeys() *NameIter {
	return &NameIter{k: k}
}

// ValueNames returns an iterator over the value names of k. The default
// value, when set, is reported as "".
func (k *Key) ValueNames() *NameIter {
	return &NameIter{k: k, values: true}
}

// Next advances to the next name. It returns false when the names are
// exhausted or an error occurred; Err tells which.
func (it *NameIter) Next() bool {
	if it.done {
		return false
	}
	h, err := it.k.handle()
	if err != nil {
		return it.fail(err)
	}
	r := it.k.reg
	op, enum := "RegEnumKeyEx", r.eng.EnumKey
	if it.values {
		op, enum = "RegEnumValue", r.eng.EnumValue
	}
	if it.buf == nil {
		info, err := it.k.Stat()
		if err != nil {
			return it.fail(err)
		}
		maxLen := info.MaxSubkeyLen
		if it.values {
			maxLen = info.MaxValueNameLen
		}
		it.buf = r.bufs.get(int(maxLen+1) * r.width.UnitSize())
	}

	var n uint32
	st := enum(h, it.index, r.width, *it.buf, &n)
	if st == types.StatusNoMoreItems {
		it.Close()
		return false
	}
	if err := r.translate(op, st); err != nil {
		return it.fail(fmt.Errorf("enumerate %s: %w", it.k.path, err))
	}
	it.name = codec.DecodeString(r.width, (*it.buf)[:n])
	it.index++
	return true
}

func (it *NameIter) fail(err error) bool {
	it.err = err
	it.Close()
	return false
}

// Name returns the name Next advanced to.
func (it *NameIter) Name() string { return it.name }

// Err returns the error that stopped iteration, if any.
func (it *NameIter) Err() error { return it.err }

// Close ends the iteration and releases its buffer. It is safe to call
// more than once.
func (it *NameIter) Close() {
	it.done = true
	if it.buf != nil {
		it.k.reg.bufs.put(it.buf)
		it.buf = nil
	}
}

// All adapts the iterator to a range-over-func sequence. An error is
// yielded once, as the last element.
func (it *NameIter) All() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		defer it.Close()
		for it.Next() {
			if !yield(it.Name(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield("", err)
		}
	}
}

func collect(it *NameIter) ([]string, error) {
	var names []string
	for name, err := range it.All() {
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// ReadSubkeyNames returns every subkey name of k in engine order.
func (k *Key) ReadSubkeyNames() ([]string, error) { return collect(k.Subkeys()) }

// ReadValueNames returns every value name of k in engine order.
func (k *Key) ReadValueNames() ([]string, error) { return collect(k.ValueNames()) }
