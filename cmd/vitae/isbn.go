package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/vitae/internal/isbn"
)

func init() {
	rootCmd.AddCommand(isbnCmd)
}

var isbnCmd = &cobra.Command{
	Use:   "isbn <candidate>",
	Short: "Validate an ISBN-10 or ISBN-13",
	Long: `Validate an ISBN-10 or ISBN-13 checksum.

Hyphens and spaces in the candidate are ignored. The candidate is
echoed back exactly as given when valid; it is never normalized.`,
	Args: cobra.ExactArgs(1),
	RunE: runISBN,
}

// ISBNResponse is the response for isbn validation.
type ISBNResponse struct {
	Valid bool   `json:"valid"`
	ISBN  string `json:"isbn,omitempty"`
	Error string `json:"error,omitempty"`
}

func runISBN(cmd *cobra.Command, args []string) error {
	validated, err := isbn.Validate(args[0])
	if err != nil {
		reason := err.Error()
		if errors.Is(err, isbn.ErrMalformed) {
			reason = "not a 10 or 13 character ISBN"
		}
		if humanOutput {
			fmt.Printf("invalid: %s\n", reason)
		} else {
			outputJSON(ISBNResponse{Valid: false, Error: reason})
		}
		// Invalid input is the result, not a command failure, but the
		// exit code still signals it for scripting.
		os.Exit(ExitDataError)
	}

	if humanOutput {
		fmt.Printf("valid: %s\n", validated)
	} else {
		outputJSON(ISBNResponse{Valid: true, ISBN: validated})
	}
	return nil
}
