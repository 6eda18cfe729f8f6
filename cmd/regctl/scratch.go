package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/types"
)

var scratchPrefix string

func init() {
	cmd := &cobra.Command{
		Use:   "scratch",
		Short: "Create a uniquely named key under HKCU\\Software",
		Long: `The scratch command creates HKEY_CURRENT_USER\Software\<prefix><uuid>
and prints its path, for experiments that must not touch existing keys.
Remove it afterwards with "regctl delete --tree".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScratch()
		},
	}
	cmd.Flags().StringVar(&scratchPrefix, "prefix", "regctl-", "Key name prefix")
	rootCmd.AddCommand(cmd)
}

func runScratch() error {
	path := `HKEY_CURRENT_USER\Software\` + scratchPrefix + uuid.NewString()

	k, err := reg.Create(path, types.KEY_ALL_ACCESS)
	if err != nil {
		return fmt.Errorf("failed to create scratch key: %w", err)
	}
	if err := k.Close(); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]string{"path": path})
	}
	fmt.Fprintln(os.Stdout, path)
	return nil
}
