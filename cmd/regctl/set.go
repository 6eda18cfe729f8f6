package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/registry"
)

var (
	setType      string
	setCreateKey bool
)

func init() {
	cmd := newSetCmd()
	cmd.Flags().StringVar(&setType, "type", "sz",
		"Value type (sz, expand_sz, multi_sz, dword, qword, binary)")
	cmd.Flags().BoolVar(&setCreateKey, "create-key", false, "Create key if it doesn't exist")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <name> <value>...",
		Short: "Set a registry value",
		Long: `The set command sets a registry value at the specified key path.
multi_sz takes one argument per string; every other type takes one value.

Example:
  regctl set 'HKCU\Software\MyApp' Version 1.0.0
  regctl set 'HKCU\Software\MyApp' Enabled 1 --type dword
  regctl set 'HKCU\Software\MyApp' Data 0102030405 --type binary
  regctl set 'HKCU\Software\MyApp' Paths 'C:\a' 'C:\b' --type multi_sz --create-key`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
}

func runSet(args []string) error {
	keyPath := normalizePath(args[0])
	valueName := args[1]
	values := args[2:]

	var (
		k   *registry.Key
		err error
	)
	if setCreateKey {
		printVerbose("Creating or opening key: %s\n", keyPath)
		k, err = reg.CreateOrOpen(keyPath, types.KEY_SET_VALUE)
	} else {
		printVerbose("Opening key: %s\n", keyPath)
		k, err = openPath(keyPath, types.KEY_SET_VALUE)
	}
	if err != nil {
		return fmt.Errorf("failed to open key: %w", err)
	}
	defer k.Close()

	kind, err := writeValue(k, valueName, setType, values)
	if err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"path":    keyPath,
			"name":    valueName,
			"type":    kind.String(),
			"success": true,
		})
	}

	printInfo("Setting value in %s:\n", keyPath)
	printInfo("  Name: %s\n", displayName(valueName))
	printInfo("  Type: %s\n", kind)
	printInfo("  Value: %s\n", strings.Join(values, ", "))
	printInfo("\n✓ Value set successfully\n")
	return nil
}
