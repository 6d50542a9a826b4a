package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/vitae/internal/publication"
)

func init() {
	rootCmd.AddCommand(grantCmd)
	grantCmd.AddCommand(grantAddCmd)
	grantCmd.AddCommand(grantAttachCmd)

	grantAddCmd.Flags().StringVar(&grantTitle, "title", "", "Grant title (required)")
	grantAddCmd.Flags().StringVar(&grantSource, "source", "", "Funding source")
	grantAddCmd.Flags().Float64Var(&grantAmount, "amount", 0, "Award amount")
	grantAddCmd.MarkFlagRequired("title")

	grantAttachCmd.Flags().StringVar(&grantTitle, "title", "", "Grant title (required)")
	grantAttachCmd.MarkFlagRequired("title")
}

var (
	grantTitle, grantSource string
	grantAmount             float64
)

var grantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Manage funding grants",
}

var grantAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a grant",
	RunE:  runGrantAdd,
}

var grantAttachCmd = &cobra.Command{
	Use:   "attach <slug>",
	Short: "Attach a grant to a publication",
	Long: `Attach a grant to a publication.

The grant is identified by title and must already exist; attaching the
same grant twice is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: runGrantAttach,
}

func runGrantAdd(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	existing, err := db.GetGrantByTitle(grantTitle)
	if err != nil {
		exitWithError(ExitError, "looking up grant: %v", err)
	}
	if existing != nil {
		exitWithError(ExitDataError, "grant already exists: %s", grantTitle)
	}

	grant := &publication.Grant{
		Title:  grantTitle,
		Source: grantSource,
		Amount: grantAmount,
	}
	if err := db.SaveGrant(grant); err != nil {
		exitWithError(ExitError, "saving grant: %v", err)
	}

	if humanOutput {
		fmt.Printf("Added grant %q (id %d)\n", grant.Title, grant.ID)
	} else {
		outputJSON(grant)
	}
	return nil
}

func runGrantAttach(cmd *cobra.Command, args []string) error {
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

	grant, err := db.GetGrantByTitle(grantTitle)
	if err != nil {
		exitWithError(ExitError, "looking up grant: %v", err)
	}
	if grant == nil {
		exitWithError(ExitNotFound, "no grant titled %q; add it with 'vitae grant add'", grantTitle)
	}

	if err := db.AttachGrant(pub.ID, grant.ID); err != nil {
		exitWithError(ExitError, "attaching grant: %v", err)
	}

	if humanOutput {
		fmt.Printf("Attached grant %q to %q\n", grant.Title, pub.Slug)
	} else {
		outputJSON(map[string]interface{}{
			"status": "attached",
			"slug":   pub.Slug,
			"grant":  grant,
		})
	}
	return nil
}
