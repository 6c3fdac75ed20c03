package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	editTitle   string
	editContent string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a note",
	Long:  `Replace the title and/or content of a note. Omitted fields keep their current value.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}

		current, ok := store.Get(id)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Note %s not found, nothing changed.\n", id)
			return nil
		}

		data := current.FormData()
		if cmd.Flags().Changed("title") {
			data.Title = editTitle
		}
		if cmd.Flags().Changed("content") {
			data.Content = editContent
		}
		if err := checkForm(cmd, data); err != nil {
			return err
		}

		found, err := await(cmd, store.UpdateNoteAsync(cmd.Context(), id, data), "Updating note")
		if err := warnPersist(cmd, err); err != nil {
			return err
		}
		if !found {
			// Deleted by another process in the meantime.
			fmt.Fprintf(cmd.OutOrStdout(), "Note %s not found, nothing changed.\n", id)
			return nil
		}

		updated, _ := store.Get(id)
		fmt.Fprintln(cmd.OutOrStdout(), renderer.Card(updated))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&editContent, "content", "", "New content")
}
