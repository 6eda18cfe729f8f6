package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/internal/mmfile"
	"github.com/joshuapare/regkit/registry"
)

var importCmd = &cobra.Command{
	Use:   "import <reg-file>...",
	Short: "Apply .reg files to the registry",
	Long: `Apply Windows .reg files (Registry Editor format) to the registry.

Sections create keys, [-KEY] sections delete subtrees, and "name"=- lines
delete values. Abbreviated roots such as HKLM are accepted. UTF-8, UTF-16LE
and Windows-1252 files are detected automatically.

With several files the result is the same as importing them in order, but
writes overridden by a later file and work under a later [-KEY] are skipped.

Examples:
  regctl import settings.reg
  regctl import base.reg patch1.reg patch2.reg
  regctl --engine memory --seed base.reg import changes.reg`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(args)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(args []string) error {
	files := make([][]byte, len(args))
	for i, path := range args {
		data, unmap, err := mmfile.Map(path)
		if err != nil {
			return fmt.Errorf("failed to read .reg file: %w", err)
		}
		defer unmap()
		printVerbose("Read %s (%d bytes)\n", path, len(data))
		files[i] = data
	}

	if len(files) == 1 {
		if err := registry.Import(reg, files[0]); err != nil {
			return err
		}
		if jsonOut {
			return printJSON(map[string]any{"files": args, "success": true})
		}
		printInfo("✓ Imported %s\n", args[0])
		return nil
	}

	stats, err := registry.Merge(reg, files...)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(map[string]any{"files": args, "stats": stats, "success": true})
	}
	printInfo("✓ Merged %d files\n", len(files))
	printVerbose("  Operations: %d -> %d (%.1f%% fewer)\n",
		stats.InputOps, stats.OutputOps, stats.ReductionPercent())
	printVerbose("  Overridden: %d, under deleted keys: %d\n",
		stats.DedupedValues+stats.DedupedKeys, stats.ShadowedByDelete)
	return nil
}
