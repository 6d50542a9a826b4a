// Package main provides the vitae CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/vitae/internal/citation"
	"github.com/matsen/vitae/internal/config"
	"github.com/matsen/vitae/internal/status"
	"github.com/matsen/vitae/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vitae",
	Short: "Academic CV manager",
	Long: `vitae is a local-first CLI for managing an academic CV.

It stores publications, collaborators, and related records in SQLite
under a .vitae directory, classifies each publication's lifecycle stage
from its status code, and renders style-driven bibliographic citations.
All commands output JSON by default for easy scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// getStartingDirectory returns the directory repository discovery starts
// from: VITAE_ROOT if set, otherwise the working directory.
func getStartingDirectory() (string, int) {
	if root := os.Getenv("VITAE_ROOT"); root != "" {
		return root, 0
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindRepository returns the repository root, or exits.
func mustFindRepository() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	repoRoot, err := config.FindRepository(start)
	if err != nil {
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return repoRoot
}

// mustLoadConfig loads the repository config, or exits.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustScheme builds the status scheme from config, or exits.
func mustScheme(cfg *config.Config) *status.Scheme {
	scheme, err := cfg.Scheme()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return scheme
}

// mustOpenDatabase opens the repository database, or exits.
func mustOpenDatabase(repoRoot string) *storage.DB {
	db, err := storage.OpenDB(config.DBPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// newCitationService builds the citation service with the repository's
// style search path.
func newCitationService(repoRoot string, cfg *config.Config, scheme *status.Scheme) *citation.Service {
	return citation.NewService(scheme, citation.WithResolver(&citation.Resolver{
		ProjectDir: cfg.ProjectStyleDir(repoRoot),
		PackageDir: config.GetPackageStyleDir(),
	}))
}
