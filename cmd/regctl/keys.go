package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/registry"
)

var (
	keysRecursive bool
	keysDepth     int
	keysValues    bool
)

func init() {
	cmd := newKeysCmd()
	cmd.Flags().BoolVarP(&keysRecursive, "recursive", "r", false, "List all subkeys recursively")
	cmd.Flags().IntVar(&keysDepth, "depth", 0, "Maximum recursion depth (0 = unlimited)")
	cmd.Flags().BoolVar(&keysValues, "values", false, "List the key's values too")
	rootCmd.AddCommand(cmd)
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <path>",
		Short: "List keys at a given path",
		Long: `The keys command lists the subkeys of a registry key. The path may
name a bare root such as HKCU.

Example:
  regctl keys HKCU
  regctl keys 'HKLM\SOFTWARE\Microsoft' --recursive --depth 2
  regctl keys 'HKCU\Environment' --values --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(args)
		},
	}
}

// keyEntry is one listed subkey; Path is relative to the listed key.
type keyEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func runKeys(args []string) error {
	keyPath := normalizePath(args[0])

	printVerbose("Opening key: %s\n", keyPath)
	k, err := openPath(keyPath, types.KEY_READ)
	if err != nil {
		return fmt.Errorf("failed to open key: %w", err)
	}
	defer k.Close()

	depth := 1
	if keysRecursive {
		depth = keysDepth
	}
	keys, err := listKeys(k, "", depth)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	var values []valueRecord
	if keysValues {
		if values, err = listValues(k); err != nil {
			return fmt.Errorf("failed to list values: %w", err)
		}
	}

	if jsonOut {
		result := map[string]any{
			"path":  keyPath,
			"keys":  keys,
			"count": len(keys),
		}
		if keysValues {
			result["values"] = values
		}
		return printJSON(result)
	}

	printInfo("\nKeys in %s:\n", keyPath)
	for _, key := range keys {
		if keysRecursive {
			printInfo("  %s\n", key.Path)
		} else {
			printInfo("  %s\n", key.Name)
		}
	}
	printInfo("\nTotal: %d keys\n", len(keys))

	if keysValues {
		printInfo("\nValues:\n")
		for _, v := range values {
			printInfo("  %-24s %-14s %s\n", displayName(v.Name), v.Type,
				strings.ReplaceAll(formatValue(v.Value), "\n", `\0`))
		}
		printInfo("\nTotal: %d values\n", len(values))
	}
	return nil
}

// listKeys walks k depth-first to depth levels (0 = unlimited), sorted
// case-insensitively at every level.
func listKeys(k *registry.Key, prefix string, depth int) ([]keyEntry, error) {
	names, err := k.ReadSubkeyNames()
	if err != nil {
		return nil, err
	}
	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	var out []keyEntry
	for _, name := range names {
		rel := name
		if prefix != "" {
			rel = prefix + `\` + name
		}
		out = append(out, keyEntry{Name: name, Path: rel})
		if depth == 1 {
			continue
		}
		child, err := k.Open(name, types.KEY_READ)
		if err != nil {
			return nil, err
		}
		nested, err := listKeys(child, rel, max(depth-1, 0))
		if closeErr := child.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}

func listValues(k *registry.Key) ([]valueRecord, error) {
	var out []valueRecord
	for name, err := range k.ValueNames().All() {
		if err != nil {
			return nil, err
		}
		kind, data, err := k.GetValue(name)
		if err != nil {
			return nil, err
		}
		out = append(out, valueRecord{Name: name, Type: kind.String(), Value: decodeValue(kind, data, reg.Width())})
	}
	slices.SortFunc(out, func(a, b valueRecord) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out, nil
}
