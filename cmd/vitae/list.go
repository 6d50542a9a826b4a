package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/vitae/internal/publication"
	"github.com/matsen/vitae/internal/status"
	"github.com/matsen/vitae/internal/storage"
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listType, "type", "", "Filter by type (article, book, chapter, report)")
	listCmd.Flags().StringVar(&listStage, "stage", "", "Filter by stage (inprep, inrevision, published)")
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include hidden publications")
	listCmd.Flags().IntVar(&listLimit, "limit", DefaultListLimit, "Maximum number of results (0 for all)")
}

var (
	listType, listStage string
	listAll             bool
	listLimit           int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List publications",
	Long: `List publications ordered by status, then most recent dates.

Stage filters match the derived stage flags:
  inprep      status inside the in-preparation interval
  inrevision  status inside the under-review interval
  published   status inside the published interval`,
	RunE: runList,
}

// stageByName maps CLI stage filter names to stages.
var stageByName = map[string]status.Stage{
	"inprep":     status.StageInPrep,
	"inrevision": status.StageInRevision,
	"published":  status.StagePublished,
}

func runList(cmd *cobra.Command, args []string) error {
	opts := storage.ListOptions{
		IncludeHidden: listAll,
		Limit:         listLimit,
	}

	if listType != "" {
		t := publication.Type(listType)
		if !t.Valid() {
			exitWithError(ExitError, "unknown type: %s", listType)
		}
		opts.Type = t
	}
	if listStage != "" {
		stage, ok := stageByName[listStage]
		if !ok {
			exitWithError(ExitError, "unknown stage: %s (want inprep, inrevision, or published)", listStage)
		}
		opts.Stage = stage
	}

	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	scheme := mustScheme(cfg)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	pubs, err := db.ListPublications(opts)
	if err != nil {
		exitWithError(ExitError, "listing publications: %v", err)
	}

	if humanOutput {
		if len(pubs) == 0 {
			fmt.Println("No publications found.")
			return nil
		}
		for i := range pubs {
			printPublicationLine(&pubs[i], scheme)
		}
		fmt.Printf("\n%d publication(s)\n", len(pubs))
	} else {
		if pubs == nil {
			pubs = []publication.Publication{}
		}
		outputJSON(pubs)
	}
	return nil
}
