package regmerge

import (
	"strings"

	"github.com/joshuapare/regkit/internal/regtext"
)

// Optimize returns a plan with the same final effect as ops, applied in
// order, but without redundant work.
//
// Ops are scanned right to left, so the first occurrence of a (key, value)
// pair seen is the one that wins; a [-KEY] seen on the way shadows every
// earlier operation on that key or below it.
//
//	ops := []regtext.Op{
//	    regtext.OpSetValue{Path: `HKEY_LOCAL_MACHINE\Software\Test`, Name: "Value", ...},
//	    regtext.OpSetValue{Path: `HKEY_LOCAL_MACHINE\Software\Test`, Name: "Value", ...},
//	}
//	plan, stats := Optimize(ops, DefaultOptions())
//	// plan keeps the second write; stats.DedupedValues == 1
func Optimize(ops []regtext.Op, opts Options) ([]regtext.Op, Stats) {
	stats := Stats{InputOps: len(ops)}
	if len(ops) == 0 {
		return ops, stats
	}

	plan := ops
	if opts.Dedup || opts.DeleteShadowing {
		plan = sweep(ops, opts, &stats)
	}
	if opts.Ordering && opts.Dedup && opts.DeleteShadowing {
		plan = orderOps(plan)
	}

	stats.OutputOps = len(plan)
	return plan, stats
}

// opKey identifies what an operation writes. Key operations and the
// default value (empty name) are kept apart by isKey.
type opKey struct {
	path  string
	name  string
	isKey bool
}

func sweep(ops []regtext.Op, opts Options, stats *Stats) []regtext.Op {
	kept := make(map[opKey]bool)
	deleted := make(map[string]bool)
	plan := make([]regtext.Op, 0, len(ops))

	shadowed := func(path string) bool {
		if opts.DeleteShadowing && isUnderDeleted(path, deleted) {
			stats.ShadowedByDelete++
			return true
		}
		return false
	}

	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		path := normalizePath(opPath(op))

		switch o := op.(type) {
		case regtext.OpSetValue, regtext.OpDeleteValue:
			key := opKey{path: path, name: valueName(o)}
			if opts.Dedup && kept[key] {
				stats.DedupedValues++
				continue
			}
			if shadowed(path) {
				continue
			}
			kept[key] = true

		case regtext.OpCreateKey:
			key := opKey{path: path, isKey: true}
			if shadowed(path) {
				continue
			}
			if opts.Dedup && kept[key] {
				stats.DedupedKeys++
				continue
			}
			kept[key] = true

		case regtext.OpDeleteKey:
			// Deletes always stay; a repeated delete is harmless because
			// deleting an absent key is not an error.
			deleted[path] = true
		}
		plan = append(plan, op)
	}

	for i, j := 0, len(plan)-1; i < j; i, j = i+1, j-1 {
		plan[i], plan[j] = plan[j], plan[i]
	}
	return plan
}

func valueName(op regtext.Op) string {
	switch o := op.(type) {
	case regtext.OpSetValue:
		return o.Name
	case regtext.OpDeleteValue:
		return o.Name
	}
	return ""
}

// isUnderDeleted reports whether path or one of its ancestors is in deleted.
func isUnderDeleted(path string, deleted map[string]bool) bool {
	for {
		if deleted[path] {
			return true
		}
		idx := strings.LastIndexByte(path, '\\')
		if idx <= 0 {
			return false
		}
		path = path[:idx]
	}
}

// normalizePath folds path to the form used for comparison: full root
// name, lower case, no trailing backslash. Roots are kept, so HKLM\X and
// HKCU\X stay distinct.
func normalizePath(path string) string {
	return strings.ToLower(regtext.ExpandRoot(strings.TrimSuffix(path, `\`)))
}

func opPath(op regtext.Op) string {
	switch o := op.(type) {
	case regtext.OpCreateKey:
		return o.Path
	case regtext.OpDeleteKey:
		return o.Path
	case regtext.OpSetValue:
		return o.Path
	case regtext.OpDeleteValue:
		return o.Path
	}
	return ""
}
