package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/vitae/internal/navigate"
)

func init() {
	rootCmd.AddCommand(nextCmd, previousCmd)
}

var nextCmd = &cobra.Command{
	Use:   "next <slug>",
	Short: "Show the next publication of the same type and stage",
	Long: `Show the chronologically next publication sharing the record's type
and lifecycle stage. In-revision records order by submission date,
published records by publication date.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNeighbor(args[0], navigate.Next)
	},
}

var previousCmd = &cobra.Command{
	Use:   "previous <slug>",
	Short: "Show the previous publication of the same type and stage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNeighbor(args[0], navigate.Previous)
	},
}

func runNeighbor(slug string, dir navigate.Direction) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	scheme := mustScheme(cfg)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	pub, err := db.GetBySlug(slug)
	if err != nil {
		exitWithError(ExitError, "loading publication: %v", err)
	}
	if pub == nil {
		exitWithError(ExitNotFound, "no publication with slug %q", slug)
	}

	neighbor, err := navigate.Neighbor(db, scheme.Ranges, pub, dir)
	if err != nil {
		if navigate.IsNoNeighbor(err) {
			exitWithError(ExitNotFound, "%v", err)
		}
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		printPublicationDetail(neighbor, scheme)
	} else {
		outputJSON(neighbor)
	}
	return nil
}
