package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe/pkg/codec"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}

		notes := store.Notes()
		if listJSON {
			data, err := codec.NewJSON().Encode(notes)
			if err != nil {
				return fmt.Errorf("failed to encode notes: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderer.List(notes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output the stored representation")
}
