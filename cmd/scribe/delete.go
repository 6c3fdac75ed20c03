package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Long:  `Delete permanently removes a note. There is no confirmation.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}

		found, err := await(cmd, store.DeleteNoteAsync(cmd.Context(), id), "Deleting note")
		if err := warnPersist(cmd, err); err != nil {
			return err
		}

		if !found {
			fmt.Fprintf(cmd.OutOrStdout(), "Note %s not found, nothing deleted.\n", id)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note deleted: %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
