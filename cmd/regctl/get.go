package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/types"
)

var getShowType bool

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVar(&getShowType, "type", false, "Show type information")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path> <name>",
		Short: "Get a specific registry value",
		Long: `The get command retrieves and displays a value of a registry key.
Use "" as the name for the key's default value.

Example:
  regctl get 'HKCU\Environment' Path
  regctl get 'HKEY_LOCAL_MACHINE\SOFTWARE\Microsoft\Windows NT\CurrentVersion' CurrentBuild --type`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
}

func runGet(args []string) error {
	keyPath := normalizePath(args[0])
	valueName := args[1]

	printVerbose("Opening key: %s\n", keyPath)
	k, err := openPath(keyPath, types.KEY_QUERY_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open key: %w", err)
	}
	defer k.Close()

	kind, data, err := k.GetValue(valueName)
	if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}
	value := decodeValue(kind, data, reg.Width())

	if jsonOut {
		return printJSON(struct {
			Path string `json:"path"`
			valueRecord
		}{keyPath, valueRecord{Name: valueName, Type: kind.String(), Value: value}})
	}

	if getShowType {
		fmt.Fprintf(os.Stdout, "%s: %s\n", displayName(valueName), kind)
	}
	fmt.Fprintln(os.Stdout, formatValue(value))
	return nil
}
