package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/vitae/internal/config"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output path (default .vitae/cv.jsonl; - for stdout)")
}

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all publications as JSONL",
	Long: `Export all publications as JSONL, one fully hydrated record per
line. Hidden publications are included; consumers filter on "display".`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	if exportOutput == "-" {
		count, err := db.ExportJSONL(os.Stdout)
		if err != nil {
			exitWithError(ExitError, "exporting: %v", err)
		}
		if humanOutput {
			fmt.Fprintf(os.Stderr, "Exported %d publication(s)\n", count)
		}
		return nil
	}

	path := exportOutput
	if path == "" {
		path = config.ExportPath(repoRoot)
	}
	count, err := db.ExportJSONLFile(path)
	if err != nil {
		exitWithError(ExitError, "exporting: %v", err)
	}

	if humanOutput {
		fmt.Printf("Exported %d publication(s) to %s\n", count, path)
	} else {
		outputJSON(map[string]interface{}{
			"status": "exported",
			"count":  count,
			"path":   path,
		})
	}
	return nil
}
