package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  vitae config                       # Show all config
  vitae config cite-style            # Get specific value
  vitae config cite-style chicago-author-date   # Set value

Keys:
  cite-style  Default citation style name
  style-dir   Project style directory (relative to repository root)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	CiteStyle string `json:"cite_style,omitempty"`
	StyleDir  string `json:"style_dir,omitempty"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("cite-style: %s\n", cfg.Style())
			fmt.Printf("style-dir:  %s\n", cfg.StyleDir)
		} else {
			outputJSON(ConfigResponse{
				CiteStyle: cfg.Style(),
				StyleDir:  cfg.StyleDir,
			})
		}
		return nil
	}

	key := normalizeKey(args[0])

	if len(args) == 1 {
		switch key {
		case "cite-style":
			if humanOutput {
				fmt.Println(cfg.Style())
			} else {
				outputJSON(map[string]string{"cite_style": cfg.Style()})
			}
		case "style-dir":
			if humanOutput {
				fmt.Println(cfg.StyleDir)
			} else {
				outputJSON(map[string]string{"style_dir": cfg.StyleDir})
			}
		default:
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		return nil
	}

	value := args[1]
	switch key {
	case "cite-style":
		cfg.CiteStyle = value
	case "style-dir":
		cfg.StyleDir = value
	default:
		exitWithError(ExitError, "unknown configuration key: %s", args[0])
	}

	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    key,
			Value:  value,
		})
	}
	return nil
}

// normalizeKey converts key formats (cite-style, cite_style) to consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
