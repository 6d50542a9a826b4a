package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().IntVar(&statusSet, "set", -1, "Set the publication's status code")
}

var statusSet int

var statusCmd = &cobra.Command{
	Use:   "status [slug]",
	Short: "Show status codes or a publication's lifecycle stage",
	Long: `Show status codes or a publication's lifecycle stage.

Without arguments, lists the configured status choice set. With a slug,
shows that publication's status and derived stage. With --set, updates
the status; the stage flags are recomputed on save.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

// StatusChoiceRow is one entry of the status choice listing.
type StatusChoiceRow struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
	Stage string `json:"stage"`
}

// PublicationStatus reports a single publication's lifecycle position.
type PublicationStatus struct {
	Slug         string `json:"slug"`
	Status       *int   `json:"status"`
	Label        string `json:"label"`
	Stage        string `json:"stage,omitempty"`
	IsInPrep     bool   `json:"is_inprep"`
	IsInRevision bool   `json:"is_inrevision"`
	IsPublished  bool   `json:"is_published"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	scheme := mustScheme(cfg)

	if len(args) == 0 {
		if statusSet >= 0 {
			exitWithError(ExitError, "--set requires a publication slug")
		}
		rows := make([]StatusChoiceRow, 0, len(scheme.Choices))
		for _, choice := range scheme.SortedChoices() {
			code := choice.Code
			rows = append(rows, StatusChoiceRow{
				Code:  choice.Code,
				Label: choice.Label,
				Stage: string(scheme.Ranges.Stage(&code)),
			})
		}
		if humanOutput {
			for _, row := range rows {
				fmt.Printf("%3d  %-22s %s\n", row.Code, row.Label, row.Stage)
			}
		} else {
			outputJSON(rows)
		}
		return nil
	}

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	pub, err := db.GetBySlug(args[0])
	if err != nil {
		exitWithError(ExitError, "loading publication: %v", err)
	}
	if pub == nil {
		exitWithError(ExitNotFound, "no publication with slug %q", args[0])
	}

	if statusSet >= 0 {
		code := statusSet
		pub.Status = &code
		if err := db.SavePublication(pub, scheme); err != nil {
			exitWithError(ExitDataError, "saving publication: %v", err)
		}
		if humanOutput {
			fmt.Printf("Updated %q to status %d (%s)\n", pub.Slug, code, scheme.Label(&code))
		} else {
			outputJSON(UpdateResponse{
				Status: "updated",
				Key:    "status",
				Value:  strconv.Itoa(code),
			})
		}
		return nil
	}

	report := PublicationStatus{
		Slug:         pub.Slug,
		Status:       pub.Status,
		Label:        scheme.Label(pub.Status),
		Stage:        string(scheme.Ranges.Stage(pub.Status)),
		IsInPrep:     pub.IsInPrep,
		IsInRevision: pub.IsInRevision,
		IsPublished:  pub.IsPublished,
	}
	if humanOutput {
		fmt.Printf("%s: %s", report.Slug, report.Label)
		if report.Stage != "" {
			fmt.Printf(" (%s)", report.Stage)
		}
		fmt.Println()
	} else {
		outputJSON(report)
	}
	return nil
}
