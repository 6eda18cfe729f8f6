package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "expand <string>",
		Short: "Expand %VAR% environment references",
		Long: `The expand command substitutes %NAME% references the way the registry
expands REG_EXPAND_SZ data. Undefined variables are left as written.

Example:
  regctl expand '%USERPROFILE%\AppData'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(args)
		},
	})
}

func runExpand(args []string) error {
	expanded, ok := reg.ExpandEnvString(args[0])
	if !ok {
		return fmt.Errorf("cannot expand %q", args[0])
	}
	if jsonOut {
		return printJSON(map[string]string{"input": args[0], "expanded": expanded})
	}
	fmt.Fprintln(os.Stdout, expanded)
	return nil
}
