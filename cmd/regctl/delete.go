package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/registry"
)

var (
	deleteTree    bool
	deleteValue   string
	deleteIsValue bool
)

func init() {
	cmd := newDeleteCmd()
	cmd.Flags().BoolVarP(&deleteTree, "tree", "r", false, "Delete subkeys too (required if the key has subkeys)")
	cmd.Flags().StringVar(&deleteValue, "value", "", `Delete this value instead of the key ("" is the default value)`)
	rootCmd.AddCommand(cmd)
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <path>",
		Short: "Delete a registry key or value",
		Long: `The delete command deletes a registry key, or one of its values
with --value. A key with subkeys is only deleted with --tree.

Example:
  regctl delete 'HKCU\Software\OldApp'
  regctl delete 'HKCU\Software\OldApp' --tree
  regctl delete 'HKCU\Software\MyApp' --value Obsolete`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleteIsValue = cmd.Flags().Changed("value")
			return runDelete(args)
		},
	}
}

func runDelete(args []string) error {
	keyPath := normalizePath(args[0])

	if deleteIsValue {
		k, err := openPath(keyPath, types.KEY_SET_VALUE)
		if err != nil {
			return fmt.Errorf("failed to open key: %w", err)
		}
		defer k.Close()
		if err := k.DeleteValue(deleteValue); err != nil {
			return fmt.Errorf("failed to delete value: %w", err)
		}
		return report("value", keyPath, displayName(deleteValue))
	}

	root, sub, err := registry.ParsePath(keyPath)
	if err != nil {
		return err
	}
	if sub == "" {
		return fmt.Errorf("%w: refusing to delete root %s", types.ErrInvalidPath, root)
	}
	rk, err := reg.Root(root)
	if err != nil {
		return err
	}
	defer rk.Close()

	printVerbose("Deleting %s\\%s (tree: %v)\n", root, sub, deleteTree)
	if deleteTree {
		err = rk.DeleteTree(sub)
	} else {
		err = rk.DeleteSubkey(sub, 0)
		if errors.Is(err, types.StatusAccessDenied) {
			err = fmt.Errorf("%w (use --tree if the key has subkeys)", err)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}
	return report("key", keyPath, "")
}

func report(what, keyPath, name string) error {
	if jsonOut {
		result := map[string]any{"deleted": what, "path": keyPath, "success": true}
		if name != "" {
			result["name"] = name
		}
		return printJSON(result)
	}
	if name != "" {
		printInfo("✓ Deleted value %s from %s\n", name, keyPath)
	} else {
		printInfo("✓ Deleted key %s\n", keyPath)
	}
	return nil
}
