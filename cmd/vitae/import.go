package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/vitae/internal/config"
	"github.com/matsen/vitae/internal/crossref"
	"github.com/matsen/vitae/internal/pdfmeta"
	"github.com/matsen/vitae/internal/publication"
)

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.AddCommand(importPDFCmd)

	importPDFCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show the extracted record without saving")
}

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import publication metadata from external sources",
}

var importPDFCmd = &cobra.Command{
	Use:   "pdf <file>",
	Short: "Import an article from a PDF",
	Long: `Import an article from a PDF.

The DOI is extracted from the PDF text and resolved against Crossref.
A PDF without a findable DOI falls back to a bare draft using the first
substantial line of text as the title.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportPDF,
}

func runImportPDF(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		exitWithError(ExitError, "reading %s: %v", path, err)
	}

	var pub *publication.Publication
	var fetched []publication.Collaborator

	doi, err := pdfmeta.ExtractDOI(path)
	if err != nil {
		exitWithError(ExitDataError, "extracting DOI: %v", err)
	}

	if doi != "" {
		client := crossref.NewClient(crossref.WithMailto(config.GetCrossrefMailto()))
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		work, err := client.Work(ctx, doi)
		if err != nil && !crossref.IsNotFound(err) {
			exitWithError(ExitError, "fetching DOI %s: %v", doi, err)
		}
		if work != nil {
			pub, fetched = crossref.ToPublication(work)
		}
	}

	if pub == nil {
		title, err := pdfmeta.ExtractTitle(path)
		if err != nil {
			exitWithError(ExitDataError, "extracting title: %v", err)
		}
		if title == "" {
			exitWithError(ExitDataError, "no DOI or usable title found in %s", path)
		}
		pub = &publication.Publication{
			Type:    publication.TypeArticle,
			Title:   title,
			Slug:    publication.Slugify(title),
			Display: true,
			Article: &publication.ArticleDetail{DOI: doi},
		}
	}

	if importDryRun {
		if humanOutput {
			fmt.Println("Would create:")
			fmt.Printf("  Slug:  %s\n", pub.Slug)
			fmt.Printf("  Title: %s\n", truncateString(pub.Title, DetailTitleMaxLen))
			if pub.Article.DOI != "" {
				fmt.Printf("  DOI:   %s\n", pub.Article.DOI)
			}
		} else {
			outputJSON(pub)
		}
		return nil
	}

	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	scheme := mustScheme(cfg)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	savePublicationAndAuthors(db, scheme, pub, fetched)
	return nil
}
