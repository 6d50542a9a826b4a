package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/vitae/internal/publication"
	"github.com/matsen/vitae/internal/status"
)

// Constants for output formatting.
const (
	DefaultListLimit = 50 // Default limit for list output

	ListTitleMaxLen   = 60 // Used in list command output
	DetailTitleMaxLen = 70 // Used in get command detail view
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// truncateString shortens s to maxLen runes, appending "..." when truncated.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatStudentLevel renders a student level as " (Doctoral student)" for
// appending to a name, or "" when the level is unset or unrecognized.
func formatStudentLevel(level *int) string {
	if level == nil {
		return ""
	}
	label, ok := publication.StudentLevelLabels[*level]
	if !ok {
		return ""
	}
	return fmt.Sprintf(" (%s student)", label)
}

// formatAuthorsShort renders up to max author surnames, then "et al.".
func formatAuthorsShort(authors []publication.Authorship, max int) string {
	if len(authors) == 0 {
		return "(no authors)"
	}
	names := make([]string, 0, max)
	for i, a := range authors {
		if i >= max {
			return strings.Join(names, ", ") + " et al."
		}
		names = append(names, a.Collaborator.LastName)
	}
	return strings.Join(names, ", ")
}

// printPublicationLine prints a one-line summary of a publication.
func printPublicationLine(pub *publication.Publication, scheme *status.Scheme) {
	year := "----"
	if pub.PubDate != nil {
		year = fmt.Sprintf("%04d", pub.PubDate.Year)
	} else if pub.SubmissionDate != nil {
		year = fmt.Sprintf("%04d", pub.SubmissionDate.Year)
	}
	fmt.Printf("%-20s %s  %-7s %-22s %s\n",
		pub.Slug, year, pub.Type, scheme.Label(pub.Status),
		truncateString(pub.Title, ListTitleMaxLen))
}

// printPublicationDetail prints a multi-line view of a publication.
func printPublicationDetail(pub *publication.Publication, scheme *status.Scheme) {
	fmt.Printf("Slug:    %s\n", pub.Slug)
	fmt.Printf("Type:    %s\n", pub.Type)
	fmt.Printf("Title:   %s\n", truncateString(pub.Title, DetailTitleMaxLen))
	fmt.Printf("Status:  %s\n", scheme.Label(pub.Status))
	if pub.PubDate != nil {
		fmt.Printf("Date:    %s\n", pub.PubDate)
	}
	if pub.SubmissionDate != nil {
		fmt.Printf("Submitted: %s\n", pub.SubmissionDate)
	}
	if len(pub.Authors) > 0 {
		fmt.Printf("Authors: %s\n", formatAuthorsShort(pub.Authors, 6))
	}
	if pub.Journal != nil {
		fmt.Printf("Journal: %s\n", pub.Journal.Title)
	}
	if isbn := pub.ISBN(); isbn != "" {
		fmt.Printf("ISBN:    %s\n", isbn)
	}
	if pub.URL != "" {
		fmt.Printf("URL:     %s\n", pub.URL)
	}
}
