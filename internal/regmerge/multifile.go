package regmerge

import (
	"fmt"

	"github.com/joshuapare/regkit/internal/regtext"
)

// ParseFiles parses each .reg file in order and concatenates the ops.
func ParseFiles(files [][]byte, opts regtext.ParseOptions) ([]regtext.Op, error) {
	var all []regtext.Op
	for i, data := range files {
		ops, err := regtext.ParseReg(data, opts)
		if err != nil {
			return nil, fmt.Errorf("parse file %d: %w", i, err)
		}
		all = append(all, ops...)
	}
	return all, nil
}

// ParseAndOptimize parses files left to right, so later files win, and
// optimizes the combined ops.
func ParseAndOptimize(files [][]byte, opts Options) ([]regtext.Op, Stats, error) {
	ops, err := ParseFiles(files, regtext.ParseOptions{})
	if err != nil {
		return nil, Stats{}, err
	}
	plan, stats := Optimize(ops, opts)
	return plan, stats, nil
}
