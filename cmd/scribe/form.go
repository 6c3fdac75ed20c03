package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/scribe/pkg/core"
	"github.com/aretw0/scribe/pkg/form"
)

// checkForm validates input and prints one line per rejected field.
func checkForm(cmd *cobra.Command, data core.NoteFormData) error {
	err := validator.Validate(data)
	if err == nil {
		return nil
	}

	var verr *form.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", fe.Field, fe.Message)
		}
	}
	return err
}

// warnPersist reports a failed write without failing the command:
// the change was applied but may be lost.
func warnPersist(cmd *cobra.Command, err error) error {
	if errors.Is(err, core.ErrPersist) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: the change could not be saved: %v\n", err)
		return nil
	}
	return err
}
