package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe/pkg/core"
)

var (
	addTitle   string
	addContent string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data := core.NoteFormData{Title: addTitle, Content: addContent}
		if err := checkForm(cmd, data); err != nil {
			return err
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}

		note, err := await(cmd, store.AddNoteAsync(cmd.Context(), data), "Saving note")
		if err := warnPersist(cmd, err); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderer.Card(note))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addTitle, "title", "", "Note title")
	addCmd.Flags().StringVar(&addContent, "content", "", "Note content")
}
