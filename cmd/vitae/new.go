package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/vitae/internal/config"
	"github.com/matsen/vitae/internal/crossref"
	"github.com/matsen/vitae/internal/publication"
	"github.com/matsen/vitae/internal/status"
	"github.com/matsen/vitae/internal/storage"
)

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.AddCommand(newArticleCmd, newBookCmd, newChapterCmd, newReportCmd)

	for _, cmd := range []*cobra.Command{newArticleCmd, newBookCmd, newChapterCmd, newReportCmd} {
		cmd.Flags().StringVar(&newTitle, "title", "", "Publication title")
		cmd.Flags().StringVar(&newShortTitle, "short-title", "", "Short title for compact listings")
		cmd.Flags().StringVar(&newSlug, "slug", "", "URL-safe identifier (derived from title if omitted)")
		cmd.Flags().IntVar(&newStatus, "status", -1, "Status code (see 'vitae status')")
		cmd.Flags().StringVar(&newPubDate, "pub-date", "", "Publication date (YYYY-MM-DD)")
		cmd.Flags().StringVar(&newSubDate, "submission-date", "", "Submission date (YYYY-MM-DD)")
		cmd.Flags().StringVar(&newURL, "url", "", "Canonical URL")
		cmd.Flags().StringVar(&newAbstract, "abstract", "", "Abstract (markdown)")
		cmd.Flags().BoolVar(&newHide, "hide", false, "Exclude from rendered CV output")
	}

	newArticleCmd.Flags().StringVar(&newDOI, "doi", "", "Fetch metadata from Crossref by DOI")
	newArticleCmd.Flags().StringVar(&newJournal, "journal", "", "Journal title (created if unknown)")
	newArticleCmd.Flags().StringVar(&newVolume, "volume", "", "Journal volume")
	newArticleCmd.Flags().StringVar(&newIssue, "issue", "", "Journal issue")
	newArticleCmd.Flags().StringVar(&newPages, "pages", "", "Page range (start-end)")

	newBookCmd.Flags().StringVar(&newPublisher, "publisher", "", "Publisher name")
	newBookCmd.Flags().StringVar(&newPlace, "place", "", "Place of publication")
	newBookCmd.Flags().StringVar(&newISBN, "isbn", "", "ISBN-10 or ISBN-13")

	newChapterCmd.Flags().StringVar(&newBookTitle, "book-title", "", "Title of the containing book")
	newChapterCmd.Flags().StringVar(&newPublisher, "publisher", "", "Publisher name")
	newChapterCmd.Flags().StringVar(&newPlace, "place", "", "Place of publication")
	newChapterCmd.Flags().StringVar(&newPages, "pages", "", "Page range (start-end)")
	newChapterCmd.Flags().StringVar(&newISBN, "isbn", "", "ISBN-10 or ISBN-13")

	newReportCmd.Flags().StringVar(&newInstitution, "institution", "", "Issuing institution")
	newReportCmd.Flags().StringVar(&newReportNumber, "number", "", "Report number")
	newReportCmd.Flags().StringVar(&newReportType, "report-type", "", "Report genre (e.g. Technical report)")
}

var (
	newTitle, newShortTitle, newSlug         string
	newPubDate, newSubDate, newURL           string
	newAbstract                              string
	newStatus                                int
	newHide                                  bool
	newDOI, newJournal, newVolume, newIssue  string
	newPages, newPublisher, newPlace         string
	newISBN, newBookTitle                    string
	newInstitution, newReportNumber          string
	newReportType                            string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a publication record",
}

var newArticleCmd = &cobra.Command{
	Use:   "article",
	Short: "Create a journal article",
	Long: `Create a journal article.

With --doi, bibliographic fields are fetched from Crossref and manual
flags override the fetched values. Crossref carries no collaborator
emails, so fetched authors are linked only when a collaborator with a
matching name is already on file.`,
	RunE: runNewArticle,
}

var newBookCmd = &cobra.Command{
	Use:   "book",
	Short: "Create a book",
	RunE:  runNewBook,
}

var newChapterCmd = &cobra.Command{
	Use:   "chapter",
	Short: "Create a book chapter",
	RunE:  runNewChapter,
}

var newReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Create a report",
	RunE:  runNewReport,
}

func runNewArticle(cmd *cobra.Command, args []string) error {
	var pub *publication.Publication
	var fetched []publication.Collaborator

	if newDOI != "" {
		client := crossref.NewClient(crossref.WithMailto(config.GetCrossrefMailto()))
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		work, err := client.Work(ctx, newDOI)
		if err != nil {
			if crossref.IsNotFound(err) {
				exitWithError(ExitNotFound, "DOI not found on Crossref: %s", newDOI)
			}
			exitWithError(ExitError, "fetching DOI: %v", err)
		}
		pub, fetched = crossref.ToPublication(work)
	} else {
		pub = &publication.Publication{
			Type:    publication.TypeArticle,
			Display: true,
			Article: &publication.ArticleDetail{},
		}
	}

	applyCommonFlags(pub)
	if newVolume != "" {
		pub.Article.Volume = newVolume
	}
	if newIssue != "" {
		pub.Article.Issue = newIssue
	}
	if newPages != "" {
		pub.Article.StartPage, pub.Article.EndPage = splitPages(newPages)
	}

	if pub.Title == "" {
		exitWithError(ExitError, "--title is required (or use --doi)")
	}
	if pub.Slug == "" {
		pub.Slug = publication.Slugify(pub.Title)
	}

	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	scheme := mustScheme(cfg)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	if newJournal != "" {
		journal, err := db.GetJournalByTitle(newJournal)
		if err != nil {
			exitWithError(ExitError, "looking up journal: %v", err)
		}
		if journal == nil {
			journal = &publication.Journal{Title: newJournal}
			if err := db.SaveJournal(journal); err != nil {
				exitWithError(ExitError, "creating journal: %v", err)
			}
		}
		pub.Article.JournalID = &journal.ID
		pub.Journal = journal
	}

	savePublicationAndAuthors(db, scheme, pub, fetched)
	return nil
}

func runNewBook(cmd *cobra.Command, args []string) error {
	pub := &publication.Publication{
		Type:    publication.TypeBook,
		Display: true,
		Book: &publication.BookDetail{
			Publisher: newPublisher,
			Place:     newPlace,
			ISBN:      newISBN,
		},
	}
	finishNew(pub)
	return nil
}

func runNewChapter(cmd *cobra.Command, args []string) error {
	if newBookTitle == "" {
		exitWithError(ExitError, "--book-title is required for chapters")
	}
	start, end := splitPages(newPages)
	pub := &publication.Publication{
		Type:    publication.TypeChapter,
		Display: true,
		Chapter: &publication.ChapterDetail{
			BookTitle: newBookTitle,
			Publisher: newPublisher,
			Place:     newPlace,
			StartPage: start,
			EndPage:   end,
			ISBN:      newISBN,
		},
	}
	finishNew(pub)
	return nil
}

func runNewReport(cmd *cobra.Command, args []string) error {
	pub := &publication.Publication{
		Type:    publication.TypeReport,
		Display: true,
		Report: &publication.ReportDetail{
			Institution:  newInstitution,
			ReportNumber: newReportNumber,
			ReportType:   newReportType,
		},
	}
	finishNew(pub)
	return nil
}

// finishNew applies common flags, validates, and saves a manually
// constructed publication.
func finishNew(pub *publication.Publication) {
	applyCommonFlags(pub)
	if pub.Title == "" {
		exitWithError(ExitError, "--title is required")
	}
	if pub.Slug == "" {
		pub.Slug = publication.Slugify(pub.Title)
	}

	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	scheme := mustScheme(cfg)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	savePublicationAndAuthors(db, scheme, pub, nil)
}

// applyCommonFlags copies the shared new flags onto pub. Flags override
// any values already present (e.g. fetched from Crossref).
func applyCommonFlags(pub *publication.Publication) {
	if newTitle != "" {
		pub.Title = newTitle
	}
	if newShortTitle != "" {
		pub.ShortTitle = newShortTitle
	}
	if newSlug != "" {
		pub.Slug = newSlug
	}
	if newAbstract != "" {
		pub.Abstract = newAbstract
	}
	if newURL != "" {
		pub.URL = newURL
	}
	if newStatus >= 0 {
		s := newStatus
		pub.Status = &s
	}
	if newHide {
		pub.Display = false
	}
	if newPubDate != "" {
		d, err := publication.ParseDate(newPubDate)
		if err != nil {
			exitWithError(ExitDataError, "invalid --pub-date: %v", err)
		}
		pub.PubDate = &d
	}
	if newSubDate != "" {
		d, err := publication.ParseDate(newSubDate)
		if err != nil {
			exitWithError(ExitDataError, "invalid --submission-date: %v", err)
		}
		pub.SubmissionDate = &d
	}
}

// savePublicationAndAuthors persists pub plus any Crossref-fetched
// collaborators, then reports the saved record.
func savePublicationAndAuthors(db *storage.DB, scheme *status.Scheme, pub *publication.Publication, fetched []publication.Collaborator) {
	if existing, err := db.GetBySlug(pub.Slug); err != nil {
		exitWithError(ExitError, "checking slug: %v", err)
	} else if existing != nil {
		exitWithError(ExitDataError, "slug already exists: %s", pub.Slug)
	}

	if err := db.SavePublication(pub, scheme); err != nil {
		exitWithError(ExitDataError, "saving publication: %v", err)
	}

	// Crossref records carry no emails, and email is collaborator
	// identity, so fetched authors are attached only when an existing
	// collaborator matches by name. The rest need 'vitae author add'.
	order := 1
	var unmatched []string
	for i := range fetched {
		c := &fetched[i]
		existing, err := db.FindCollaboratorByName(c.FirstName, c.LastName)
		if err != nil {
			exitWithError(ExitError, "matching collaborator: %v", err)
		}
		if existing == nil {
			unmatched = append(unmatched, strings.TrimSpace(c.FirstName+" "+c.LastName))
			order++
			continue
		}
		if err := db.AddAuthorship(pub.ID, existing.ID, order, false, nil); err != nil {
			exitWithError(ExitError, "adding authorship: %v", err)
		}
		order++
	}
	if len(unmatched) > 0 {
		fmt.Fprintf(os.Stderr, "note: no collaborator on file for %s; add with 'vitae author add'\n",
			strings.Join(unmatched, "; "))
	}

	saved, err := db.GetBySlug(pub.Slug)
	if err != nil {
		exitWithError(ExitError, "reloading publication: %v", err)
	}

	if humanOutput {
		fmt.Printf("Created %s %q\n", saved.Type, saved.Slug)
		printPublicationDetail(saved, scheme)
	} else {
		outputJSON(saved)
	}
}

// splitPages splits "start-end" into its parts; a bare value is the
// start page.
func splitPages(pages string) (string, string) {
	if pages == "" {
		return "", ""
	}
	start, end, found := strings.Cut(pages, "-")
	if !found {
		return strings.TrimSpace(pages), ""
	}
	return strings.TrimSpace(start), strings.TrimSpace(end)
}
