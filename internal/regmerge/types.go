// Package regmerge combines .reg files into one plan of operations: later
// writes win, work under a deleted subtree is dropped, and operations are
// grouped per key so the plan applies with one open handle per key.
package regmerge

// Options controls which optimizations Optimize applies.
type Options struct {
	// Dedup keeps only the last write to each (key, value) pair.
	Dedup bool

	// DeleteShadowing drops operations that a later [-KEY] section
	// removes anyway.
	DeleteShadowing bool

	// Ordering groups operations by key, parents before children. It is
	// ignored unless Dedup and DeleteShadowing are both set.
	Ordering bool
}

// DefaultOptions enables every optimization.
func DefaultOptions() Options {
	return Options{Dedup: true, DeleteShadowing: true, Ordering: true}
}

// Stats describes what Optimize removed.
type Stats struct {
	InputOps  int
	OutputOps int

	// DedupedValues counts value writes and deletes overwritten later.
	DedupedValues int

	// DedupedKeys counts repeated sections for the same key.
	DedupedKeys int

	// ShadowedByDelete counts operations below a later subtree delete.
	ShadowedByDelete int
}

// ReductionPercent returns the percentage of operations eliminated.
func (s Stats) ReductionPercent() float64 {
	if s.InputOps == 0 {
		return 0
	}
	return float64(s.InputOps-s.OutputOps) / float64(s.InputOps) * 100
}
