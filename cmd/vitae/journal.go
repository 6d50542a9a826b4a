package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/vitae/internal/publication"
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalAddCmd)

	journalAddCmd.Flags().StringVar(&journalTitle, "title", "", "Journal title (required)")
	journalAddCmd.Flags().StringVar(&journalAbbrev, "abbrev", "", "Abbreviated title")
	journalAddCmd.Flags().StringVar(&journalISSN, "issn", "", "ISSN")
	journalAddCmd.Flags().StringVar(&journalWebsite, "website", "", "Journal website URL")
	journalAddCmd.MarkFlagRequired("title")
}

var journalTitle, journalAbbrev, journalISSN, journalWebsite string

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Manage journals",
}

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a journal",
	RunE:  runJournalAdd,
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	existing, err := db.GetJournalByTitle(journalTitle)
	if err != nil {
		exitWithError(ExitError, "looking up journal: %v", err)
	}
	if existing != nil {
		exitWithError(ExitDataError, "journal already exists: %s", journalTitle)
	}

	journal := &publication.Journal{
		Title:            journalTitle,
		AbbreviatedTitle: journalAbbrev,
		ISSN:             journalISSN,
		Website:          journalWebsite,
	}
	if err := db.SaveJournal(journal); err != nil {
		exitWithError(ExitError, "saving journal: %v", err)
	}

	if humanOutput {
		fmt.Printf("Added journal %q (id %d)\n", journal.Title, journal.ID)
	} else {
		outputJSON(journal)
	}
	return nil
}
