package regmerge

import (
	"cmp"
	"slices"
	"strings"

	"github.com/joshuapare/regkit/internal/regtext"
)

// orderOps groups ops by key, shallow keys first, and within a key runs
// deletes before creates before value changes:
//
//	SetValue(Software\Test\Child, "A")       DeleteKey(Software\Test)
//	DeleteKey(Software\Test)             =>  SetValue(Software\Test, "B")
//	SetValue(Software\Test, "B")             CreateKey(Software\Test\Child)
//	CreateKey(Software\Test\Child)           SetValue(Software\Test\Child, "A")
//
// It is only safe on swept input: once later writes have won and shadowed
// work is gone, no two remaining ops on the same key conflict, and a
// delete can only precede work on its own subtree.
func orderOps(ops []regtext.Op) []regtext.Op {
	if len(ops) <= 1 {
		return ops
	}

	type group struct {
		path  string
		depth int
		ops   []regtext.Op
	}

	groups := make(map[string]*group)
	for _, op := range ops {
		path := normalizePath(opPath(op))
		g, ok := groups[path]
		if !ok {
			g = &group{path: path, depth: strings.Count(path, `\`)}
			groups[path] = g
		}
		g.ops = append(g.ops, op)
	}

	sorted := make([]*group, 0, len(groups))
	for _, g := range groups {
		sorted = append(sorted, g)
	}
	slices.SortFunc(sorted, func(a, b *group) int {
		return cmp.Or(cmp.Compare(a.depth, b.depth), strings.Compare(a.path, b.path))
	})

	out := make([]regtext.Op, 0, len(ops))
	for _, g := range sorted {
		slices.SortStableFunc(g.ops, func(a, b regtext.Op) int {
			return cmp.Compare(opPriority(a), opPriority(b))
		})
		out = append(out, g.ops...)
	}
	return out
}

// opPriority orders operations on one key. A delete that survived the
// sweep came before any create of the same key, so it runs first.
func opPriority(op regtext.Op) int {
	switch op.(type) {
	case regtext.OpDeleteKey:
		return 0
	case regtext.OpCreateKey:
		return 1
	case regtext.OpDeleteValue:
		return 2
	case regtext.OpSetValue:
		return 3
	default:
		return 4
	}
}
