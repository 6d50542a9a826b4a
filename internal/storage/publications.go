package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/matsen/vitae/internal/isbn"
	"github.com/matsen/vitae/internal/navigate"
	"github.com/matsen/vitae/internal/publication"
	"github.com/matsen/vitae/internal/status"
)

// publicationColumns is the column list shared by inserts, updates, and
// scans. Order matters; flattenPublication and scanPublication must agree
// with it.
const publicationColumns = `type, slug, title, short_title, abstract, abstract_html,
	status, pub_date, submission_date, url, display,
	is_inprep, is_inrevision, is_published,
	journal_id, volume, issue, start_page, end_page, series, series_number, number,
	doi, pmcid, pmid,
	publisher, place, book_volume, num_pages, isbn,
	book_title, volumes, edition,
	institution, report_number, report_type, series_title, pages`

const publicationColumnCount = 38

// SavePublication inserts or updates a publication. The save pipeline
// recomputes the stage flags and the abstract HTML cache unconditionally
// and validates any ISBN the record carries.
func (d *DB) SavePublication(p *publication.Publication, scheme *status.Scheme) error {
	if !p.Type.Valid() {
		return fmt.Errorf("unknown publication type %q", p.Type)
	}
	if p.Slug == "" {
		return errors.New("publication slug must not be empty")
	}
	if raw := p.ISBN(); raw != "" {
		if _, err := isbn.Validate(raw); err != nil {
			return fmt.Errorf("invalid ISBN for %q: %w", p.Slug, err)
		}
	}

	flags := scheme.Ranges.Classify(p.Status)
	p.IsInPrep, p.IsInRevision, p.IsPublished = flags.InPrep, flags.InRevision, flags.Published

	html, err := publication.RenderAbstract(p.Abstract)
	if err != nil {
		return fmt.Errorf("rendering abstract for %q: %w", p.Slug, err)
	}
	p.AbstractHTML = html

	args := flattenPublication(p)
	if p.ID == 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", publicationColumnCount), ", ")
		res, err := d.db.Exec(
			fmt.Sprintf("INSERT INTO publications (%s) VALUES (%s)", publicationColumns, placeholders),
			args...)
		if err != nil {
			return fmt.Errorf("inserting publication %q: %w", p.Slug, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading new publication id: %w", err)
		}
		p.ID = id
		return nil
	}

	assignments := make([]string, 0, publicationColumnCount)
	for _, col := range strings.Split(publicationColumns, ",") {
		assignments = append(assignments, strings.TrimSpace(col)+" = ?")
	}
	args = append(args, p.ID)
	if _, err := d.db.Exec(
		fmt.Sprintf("UPDATE publications SET %s WHERE id = ?", strings.Join(assignments, ", ")),
		args...); err != nil {
		return fmt.Errorf("updating publication %q: %w", p.Slug, err)
	}
	return nil
}

// GetBySlug returns the fully hydrated publication with the given slug,
// or nil when none exists.
func (d *DB) GetBySlug(slug string) (*publication.Publication, error) {
	row := d.db.QueryRow(
		fmt.Sprintf("SELECT id, %s FROM publications WHERE slug = ?", publicationColumns), slug)
	p, err := scanPublication(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading publication %q: %w", slug, err)
	}
	if err := d.hydrate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListOptions filters ListPublications.
type ListOptions struct {
	Type          publication.Type // Zero value lists all types
	Stage         status.Stage     // Zero value lists all stages
	IncludeHidden bool             // Include display=false records
	Limit         int              // 0 = all
}

// ListPublications returns publications ordered by status, then most
// recent publication and submission dates. Relations are not loaded.
func (d *DB) ListPublications(opts ListOptions) ([]publication.Publication, error) {
	var conds []string
	var args []any
	if opts.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, string(opts.Type))
	}
	if opts.Stage != "" {
		col, err := stageColumn(opts.Stage)
		if err != nil {
			return nil, err
		}
		conds = append(conds, col+" = 1")
	}
	if !opts.IncludeHidden {
		conds = append(conds, "display = 1")
	}

	query := fmt.Sprintf("SELECT id, %s FROM publications", publicationColumns)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY status, pub_date DESC, submission_date DESC"
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing publications: %w", err)
	}
	defer rows.Close()

	var pubs []publication.Publication
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning publication: %w", err)
		}
		pubs = append(pubs, *p)
	}
	return pubs, rows.Err()
}

// DeletePublication removes a publication and, via cascade, its
// authorships, editorships, editions, and grant links.
func (d *DB) DeletePublication(slug string) error {
	res, err := d.db.Exec("DELETE FROM publications WHERE slug = ?", slug)
	if err != nil {
		return fmt.Errorf("deleting publication %q: %w", slug, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("publication %q not found", slug)
	}
	return nil
}

// CountPublications returns the number of stored publications.
func (d *DB) CountPublications() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM publications").Scan(&n)
	return n, err
}

// Neighbor implements navigate.Store: the closest displayable publication
// of the same type and stage strictly beyond the reference date. Ties on
// the ordering key come back in implementation-defined row order.
func (d *DB) Neighbor(q navigate.Query) (*publication.Publication, error) {
	flagCol, err := stageColumn(q.Stage)
	if err != nil {
		return nil, err
	}
	var dateCol string
	switch q.Field {
	case navigate.ByPubDate:
		dateCol = "pub_date"
	case navigate.BySubmissionDate:
		dateCol = "submission_date"
	default:
		return nil, fmt.Errorf("unknown ordering field %q", q.Field)
	}

	op, order := ">", "ASC"
	if q.Direction == navigate.Previous {
		op, order = "<", "DESC"
	}

	query := fmt.Sprintf(`SELECT slug FROM publications
		WHERE type = ? AND display = 1 AND %s = 1
		  AND %s IS NOT NULL AND %s %s ?
		ORDER BY %s %s LIMIT 1`,
		flagCol, dateCol, dateCol, op, dateCol, order)

	var slug string
	err = d.db.QueryRow(query, string(q.Type), q.Ref.String()).Scan(&slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying neighbor: %w", err)
	}
	return d.GetBySlug(slug)
}

func stageColumn(s status.Stage) (string, error) {
	switch s {
	case status.StageInPrep:
		return "is_inprep", nil
	case status.StageInRevision:
		return "is_inrevision", nil
	case status.StagePublished:
		return "is_published", nil
	}
	return "", fmt.Errorf("unknown stage %q", s)
}

// hydrate loads a publication's relations in display order.
func (d *DB) hydrate(p *publication.Publication) error {
	var err error
	if p.Authors, err = d.listAuthorships(p.ID); err != nil {
		return err
	}
	if p.Editors, err = d.listEditorships(p.ID); err != nil {
		return err
	}
	if p.Editions, err = d.listEditions(p.ID); err != nil {
		return err
	}
	if p.Grants, err = d.listGrants(p.ID); err != nil {
		return err
	}
	if p.Article != nil && p.Article.JournalID != nil {
		if p.Journal, err = d.GetJournalByID(*p.Article.JournalID); err != nil {
			return err
		}
	}
	return nil
}
