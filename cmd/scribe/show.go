package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe/pkg/codec"
	"github.com/aretw0/scribe/pkg/core"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a single note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}

		note, ok := store.Get(args[0])
		if !ok {
			return fmt.Errorf("note %s: %w", args[0], core.ErrNotFound)
		}

		if showJSON {
			// Same shape as the stored collection, with a single record.
			data, err := codec.NewJSON().Encode([]core.Note{note})
			if err != nil {
				return fmt.Errorf("failed to encode note: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderer.Card(note))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output the stored representation")
}
