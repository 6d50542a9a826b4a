package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/vitae/internal/publication"
	"github.com/matsen/vitae/internal/storage"
)

func init() {
	rootCmd.AddCommand(authorCmd)
	authorCmd.AddCommand(authorAddCmd)

	authorAddCmd.Flags().StringVar(&authorEmail, "email", "", "Collaborator email (identity; required)")
	authorAddCmd.Flags().StringVar(&authorFirst, "first", "", "First name")
	authorAddCmd.Flags().StringVar(&authorLast, "last", "", "Last name")
	authorAddCmd.Flags().StringVar(&authorMiddle, "middle", "", "Middle initial")
	authorAddCmd.Flags().IntVar(&authorOrder, "order", 0, "Display position (defaults to next free)")
	authorAddCmd.Flags().IntVar(&authorStudent, "student", -1, "Student level (0 undergrad, 10 masters, 20 doctoral)")
	authorAddCmd.Flags().BoolVar(&authorAsEditor, "editor", false, "Add as editor instead of author")
	authorAddCmd.MarkFlagRequired("email")
}

var (
	authorEmail, authorFirst, authorLast, authorMiddle string
	authorOrder, authorStudent                         int
	authorAsEditor                                     bool
)

var authorCmd = &cobra.Command{
	Use:   "author",
	Short: "Manage publication authors and editors",
}

var authorAddCmd = &cobra.Command{
	Use:   "add <slug>",
	Short: "Add an author or editor to a publication",
	Long: `Add an author or editor to a publication.

The collaborator is identified by email. An unknown email creates a new
collaborator record (--first and --last are then required); a known one
reuses the existing record and ignores the name flags.`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthorAdd,
}

func runAuthorAdd(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	pub, err := db.GetBySlug(args[0])
	if err != nil {
		exitWithError(ExitError, "loading publication: %v", err)
	}
	if pub == nil {
		exitWithError(ExitNotFound, "no publication with slug %q", args[0])
	}

	collab, err := db.GetCollaboratorByEmail(authorEmail)
	if err != nil {
		exitWithError(ExitError, "looking up collaborator: %v", err)
	}
	if collab == nil {
		if authorFirst == "" || authorLast == "" {
			exitWithError(ExitError, "--first and --last are required for a new collaborator")
		}
		collab = &publication.Collaborator{
			FirstName:     authorFirst,
			LastName:      authorLast,
			MiddleInitial: authorMiddle,
			Email:         authorEmail,
		}
		if err := db.SaveCollaborator(collab); err != nil {
			exitWithError(ExitDataError, "saving collaborator: %v", err)
		}
	}

	order := authorOrder
	if order == 0 {
		if authorAsEditor {
			order = len(pub.Editors) + 1
		} else {
			order = len(pub.Authors) + 1
		}
	}

	var studentLevel *int
	if authorStudent >= 0 {
		studentLevel = &authorStudent
	}

	if authorAsEditor {
		err = db.AddEditorship(pub.ID, collab.ID, order)
	} else {
		err = db.AddAuthorship(pub.ID, collab.ID, order, authorMiddle != "", studentLevel)
	}
	if err != nil {
		if storage.IsDuplicateDisplayOrder(err) {
			exitWithError(ExitDataError, "position %d is already taken on %q", order, pub.Slug)
		}
		exitWithError(ExitError, "%v", err)
	}

	role := "author"
	if authorAsEditor {
		role = "editor"
	}
	if humanOutput {
		fmt.Printf("Added %s %s%s to %q at position %d\n",
			role, collab.DisplayName(), formatStudentLevel(studentLevel), pub.Slug, order)
	} else {
		outputJSON(map[string]interface{}{
			"status":       "added",
			"role":         role,
			"slug":         pub.Slug,
			"collaborator": collab,
			"order":        order,
		})
	}
	return nil
}
