package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/vitae/internal/citation"
)

func init() {
	rootCmd.AddCommand(citeCmd)
	citeCmd.AddCommand(citeStylesCmd)

	citeCmd.Flags().StringVar(&citeStyle, "style", "", "Citation style name (default from config)")
	citeCmd.Flags().StringVar(&citeFormat, "format", "html", "Output format (html, plain)")
	citeCmd.Flags().StringVar(&citeOnError, "on-error", "raise", "Mapping failure policy (raise, warn, verbose)")
	citeCmd.Flags().StringVar(&citeEdition, "edition", "", "Cite a named book edition")
	citeCmd.Flags().BoolVar(&citeNoDOI, "no-doi", false, "Omit the DOI from the rendered citation")
	citeCmd.Flags().BoolVar(&citeSubmitted, "use-submission-date", false, "Date the citation by submission instead of publication")
}

var (
	citeStyle, citeFormat, citeOnError, citeEdition string
	citeNoDOI, citeSubmitted                        bool
)

var citeCmd = &cobra.Command{
	Use:   "cite <slug>",
	Short: "Render a bibliographic citation",
	Long: `Render a bibliographic citation for a publication.

The on-error policy controls what happens when the record cannot be
cited (e.g. a chapter with no editors):
  raise    fail with the mapping error
  warn     print a warning to stderr and output nothing
  verbose  print a warning and output a placeholder`,
	Args: cobra.ExactArgs(1),
	RunE: runCite,
}

var citeStylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List bundled citation styles",
	RunE:  runCiteStyles,
}

func runCite(cmd *cobra.Command, args []string) error {
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

	style := citeStyle
	if style == "" {
		style = cfg.Style()
	}

	service := newCitationService(repoRoot, cfg, scheme)
	opts := citation.CiteOptions{
		Style:   style,
		Format:  citation.Format(citeFormat),
		OnError: citation.OnError(citeOnError),
		NoDOI:   citeNoDOI,
	}
	opts.Edition = citeEdition
	opts.UseSubmissionDate = citeSubmitted

	rendered, err := service.Cite(pub, opts)
	if err != nil {
		code := ExitDataError
		if _, ok := err.(*citation.ConfigError); ok {
			code = ExitConfigError
		}
		if _, ok := err.(*citation.StyleNotFoundError); ok {
			code = ExitConfigError
		}
		exitWithError(code, "%v", err)
	}

	if humanOutput {
		if rendered != "" {
			fmt.Println(rendered)
		}
	} else {
		outputJSON(map[string]string{
			"slug":     pub.Slug,
			"style":    style,
			"format":   citeFormat,
			"citation": rendered,
		})
	}
	return nil
}

func runCiteStyles(cmd *cobra.Command, args []string) error {
	names := citation.BundledStyleNames()
	if humanOutput {
		for _, name := range names {
			fmt.Println(name)
		}
	} else {
		outputJSON(map[string][]string{"styles": names})
	}
	return nil
}
