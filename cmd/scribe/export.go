package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe/pkg/codec"
	"github.com/aretw0/scribe/pkg/core"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all notes as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var c core.Codec
		switch exportFormat {
		case "json":
			c = codec.NewJSON()
		case "yaml", "yml":
			c = codec.NewYAML()
		default:
			return fmt.Errorf("unknown format %q (want json or yaml)", exportFormat)
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}

		data, err := c.Encode(store.Notes())
		if err != nil {
			return fmt.Errorf("failed to encode notes: %w", err)
		}

		if exportOutput == "" || exportOutput == "-" {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d notes to %s\n", store.Len(), exportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}
