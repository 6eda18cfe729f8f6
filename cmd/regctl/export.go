package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/internal/regtext"
	"github.com/joshuapare/regkit/internal/writer"
	"github.com/joshuapare/regkit/pkg/types"
	"github.com/joshuapare/regkit/registry"
)

var (
	exportOutput   string
	exportEncoding string
	exportBOM      bool
)

func init() {
	cmd := newExportCmd()
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVar(&exportEncoding, "encoding", "utf8", "Output encoding (utf8, utf16le)")
	cmd.Flags().BoolVar(&exportBOM, "with-bom", false, "Include byte-order mark (utf16le)")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export a key and its subtree to .reg format",
		Long: `The export command writes a key, its values and every subkey below it
as regedit "Version 5.00" text.

Example:
  regctl export 'HKCU\Software\MyApp'
  regctl export 'HKCU\Software\MyApp' -o myapp.reg --encoding utf16le --with-bom`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
}

func exportEncodingName(s string) (string, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "")) {
	case "", "utf8":
		return regtext.EncodingUTF8, nil
	case "utf16le", "utf16":
		return regtext.EncodingUTF16LE, nil
	default:
		return "", fmt.Errorf("unsupported encoding %q (utf8, utf16le)", s)
	}
}

func runExport(args []string) error {
	keyPath := normalizePath(args[0])

	enc, err := exportEncodingName(exportEncoding)
	if err != nil {
		return err
	}

	printVerbose("Exporting key: %s\n", keyPath)
	k, err := openPath(keyPath, types.KEY_READ)
	if err != nil {
		return fmt.Errorf("failed to open key: %w", err)
	}
	defer k.Close()

	data, err := registry.Export(k, registry.ExportOptions{OutputEncoding: enc, WithBOM: exportBOM})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if exportOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := (&writer.FileWriter{Path: exportOutput}).Write(data); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"path":     keyPath,
			"output":   exportOutput,
			"encoding": enc,
			"bytes":    len(data),
		})
	}
	printInfo("✓ Exported %s to %s (%d bytes)\n", keyPath, exportOutput, len(data))
	return nil
}
