package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <slug>",
	Short: "Show a publication with its relations",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	scheme := mustScheme(cfg)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	pub, err := db.GetBySlug(args[0])
	if err != nil {
		exitWithError(ExitError, "loading publication: %v", err)
	}
	if pub == nil {
		exitWithError(ExitNotFound, "no publication with slug %q", args[0])
	}

	if humanOutput {
		printPublicationDetail(pub, scheme)
	} else {
		outputJSON(pub)
	}
	return nil
}
