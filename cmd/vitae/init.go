package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/vitae/internal/config"
	"github.com/matsen/vitae/internal/storage"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new vitae repository",
	Long: `Initialize a new vitae repository in the current directory.

Creates:
  .vitae/
  ├── cv.db           # SQLite database
  ├── config.json     # Default config
  └── styles/         # Project-local citation styles`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a vitae repository")
	}

	if err := os.MkdirAll(config.VitaePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating .vitae directory: %v", err)
	}
	if err := os.MkdirAll(config.StylePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating styles directory: %v", err)
	}

	// Create the database with schema applied.
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "creating database: %v", err)
	}
	db.Close()

	cfg := &config.Config{CiteStyle: config.DefaultCiteStyle}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "creating config.json: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized vitae repository in %s\n", root)
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   root,
		})
	}

	return nil
}
