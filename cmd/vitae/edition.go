package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/vitae/internal/publication"
)

func init() {
	rootCmd.AddCommand(editionCmd)
	editionCmd.AddCommand(editionAddCmd)

	editionAddCmd.Flags().StringVar(&editionName, "name", "", "Edition name, e.g. \"2nd\" (required)")
	editionAddCmd.Flags().StringVar(&editionPubDate, "pub-date", "", "Edition publication date (YYYY-MM-DD)")
	editionAddCmd.Flags().StringVar(&editionPublisher, "publisher", "", "Publisher name")
	editionAddCmd.Flags().StringVar(&editionPlace, "place", "", "Place of publication")
	editionAddCmd.Flags().StringVar(&editionISBN, "isbn", "", "ISBN-10 or ISBN-13")
	editionAddCmd.MarkFlagRequired("name")
}

var editionName, editionPubDate, editionPublisher, editionPlace, editionISBN string

var editionCmd = &cobra.Command{
	Use:   "edition",
	Short: "Manage book editions",
}

var editionAddCmd = &cobra.Command{
	Use:   "add <book-slug>",
	Short: "Add an edition to a book",
	Args:  cobra.ExactArgs(1),
	RunE:  runEditionAdd,
}

func runEditionAdd(cmd *cobra.Command, args []string) error {
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
	if pub.Type != publication.TypeBook {
		exitWithError(ExitDataError, "editions belong to books, and %q is a %s", pub.Slug, pub.Type)
	}

	edition := &publication.Edition{
		PublicationID: pub.ID,
		Name:          editionName,
		Publisher:     editionPublisher,
		Place:         editionPlace,
		ISBN:          editionISBN,
	}
	if editionPubDate != "" {
		d, err := publication.ParseDate(editionPubDate)
		if err != nil {
			exitWithError(ExitDataError, "invalid --pub-date: %v", err)
		}
		edition.PubDate = &d
	}

	if err := db.AddEdition(edition); err != nil {
		exitWithError(ExitDataError, "adding edition: %v", err)
	}

	if humanOutput {
		fmt.Printf("Added edition %q to %q\n", edition.Name, pub.Slug)
	} else {
		outputJSON(edition)
	}
	return nil
}
