// Package memreg is an in-process registry engine.
//
// It implements engine.Engine with the host registry's observable behavior:
// keys and values are kept in B-trees ordered by case-insensitive name,
// string data is stored wide and converted for narrow callers, access rights
// are checked per handle, and failures are reported with the same status
// codes the host returns. It backs the test suite and non-Windows hosts.
package memreg

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/btree"

	"github.com/joshuapare/regkit/internal/engine"
	"github.com/joshuapare/regkit/pkg/types"
)

// btreeDegree is the B-tree fan-out for subkey and value sets.
const btreeDegree = 16

// firstHandle is the first handle value handed out for opened keys.
const firstHandle engine.Handle = 0x100

// Option configures an Engine.
type Option func(*Engine)

// WithEnv replaces the environment lookup used by ExpandEnvironmentStrings
// and by reads that expand REG_EXPAND_SZ data.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(e *Engine) { e.lookupEnv = lookup }
}

// WithClock replaces the clock used for last-write times.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine is an in-memory registry. The zero value is not usable; call New.
type Engine struct {
	mu        sync.RWMutex
	roots     []*node
	open      map[engine.Handle]*openKey
	next      engine.Handle
	lookupEnv func(string) (string, bool)
	now       func() time.Time
}

type openKey struct {
	n      *node
	access types.Access
}

type node struct {
	name      string
	fold      string
	parent    *node
	subkeys   *btree.BTreeG[*node]
	values    *btree.BTreeG[*value]
	lastWrite time.Time
	deleted   bool
}

type value struct {
	name string
	fold string
	kind types.RegType
	data []byte // string kinds are stored wide
}

// New returns an engine whose predefined roots are all empty.
func New(opts ...Option) *Engine {
	e := &Engine{
		open:      make(map[engine.Handle]*openKey),
		next:      firstHandle,
		lookupEnv: os.LookupEnv,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.roots = make([]*node, len(types.Roots))
	for i, r := range types.Roots {
		e.roots[i] = e.newNode(string(r), nil)
	}
	return e
}

var _ engine.Engine = (*Engine)(nil)

func fold(name string) string { return strings.ToLower(name) }

func (e *Engine) newNode(name string, parent *node) *node {
	return &node{
		name:      name,
		fold:      fold(name),
		parent:    parent,
		subkeys:   btree.NewG(btreeDegree, func(a, b *node) bool { return a.fold < b.fold }),
		values:    btree.NewG(btreeDegree, func(a, b *value) bool { return a.fold < b.fold }),
		lastWrite: e.now(),
	}
}

func (n *node) child(name string) (*node, bool) {
	return n.subkeys.Get(&node{fold: fold(name)})
}

func (n *node) value(name string) (*value, bool) {
	return n.values.Get(&value{fold: fold(name)})
}

// markDeleted flags n and its descendants so open handles to them fail.
func (n *node) markDeleted() {
	n.deleted = true
	n.subkeys.Ascend(func(c *node) bool {
		c.markDeleted()
		return true
	})
}

// resolve returns the node behind h. Caller holds e.mu.
func (e *Engine) resolve(h engine.Handle) (*node, types.Access, types.Status) {
	if engine.IsPredefined(h) {
		return e.roots[h-engine.HKEY_CLASSES_ROOT], types.KEY_ALL_ACCESS, types.StatusSuccess
	}
	k, ok := e.open[h]
	if !ok {
		return nil, 0, types.StatusInvalidHandle
	}
	if k.n.deleted {
		return nil, 0, types.StatusKeyDeleted
	}
	return k.n, k.access, types.StatusSuccess
}

// splitPath breaks a backslash-delimited subkey path into components.
func splitPath(subkey string) ([]string, types.Status) {
	if subkey == "" {
		return nil, types.StatusSuccess
	}
	parts := strings.Split(subkey, `\`)
	for _, p := range parts {
		if p == "" {
			return nil, types.StatusBadPathname
		}
		if len([]rune(p)) > types.WindowsMaxKeyNameLen {
			return nil, types.StatusInvalidParameter
		}
	}
	return parts, types.StatusSuccess
}

func walk(n *node, parts []string) (*node, bool) {
	for _, p := range parts {
		c, ok := n.child(p)
		if !ok {
			return nil, false
		}
		n = c
	}
	return n, true
}

// issue allocates a handle for n. Caller holds e.mu for writing.
func (e *Engine) issue(n *node, access types.Access) engine.Handle {
	h := e.next
	e.next += 4
	e.open[h] = &openKey{n: n, access: access}
	return h
}

// OpenKey implements engine.Engine.
func (e *Engine) OpenKey(parent engine.Handle, subkey string, access types.Access) (engine.Handle, types.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, _, st := e.resolve(parent)
	if st != types.StatusSuccess {
		return 0, st
	}
	parts, st := splitPath(subkey)
	if st != types.StatusSuccess {
		return 0, st
	}
	target, ok := walk(n, parts)
	if !ok {
		return 0, types.StatusFileNotFound
	}
	return e.issue(target, access), types.StatusSuccess
}

// CreateKey implements engine.Engine.
func (e *Engine) CreateKey(parent engine.Handle, subkey string, access types.Access) (engine.Handle, engine.Disposition, types.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, granted, st := e.resolve(parent)
	if st != types.StatusSuccess {
		return 0, 0, st
	}
	parts, st := splitPath(subkey)
	if st != types.StatusSuccess {
		return 0, 0, st
	}
	disposition := engine.OpenedExistingKey
	for _, p := range parts {
		if c, ok := n.child(p); ok {
			n = c
			disposition = engine.OpenedExistingKey
			continue
		}
		if !granted.Has(types.KEY_CREATE_SUB_KEY) {
			return 0, 0, types.StatusAccessDenied
		}
		c := e.newNode(p, n)
		n.subkeys.ReplaceOrInsert(c)
		n.lastWrite = e.now()
		n = c
		disposition = engine.CreatedNewKey
	}
	return e.issue(n, access), disposition, types.StatusSuccess
}

// OpenCurrentUser implements engine.Engine. There is no impersonation in
// process, so it always opens HKEY_CURRENT_USER.
func (e *Engine) OpenCurrentUser(access types.Access) (engine.Handle, types.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.issue(e.roots[engine.HKEY_CURRENT_USER-engine.HKEY_CLASSES_ROOT], access), types.StatusSuccess
}

// CloseKey implements engine.Engine.
func (e *Engine) CloseKey(h engine.Handle) types.Status {
	if engine.IsPredefined(h) {
		return types.StatusSuccess
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.open[h]; !ok {
		return types.StatusInvalidHandle
	}
	delete(e.open, h)
	return types.StatusSuccess
}

// OpenHandles returns the number of handles not yet closed.
func (e *Engine) OpenHandles() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.open)
}
