package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/matsen/vitae/internal/isbn"
	"github.com/matsen/vitae/internal/publication"
)

// AddEdition attaches a dated edition to a book. The edition's own ISBN is
// validated; edition names are unique per book.
func (d *DB) AddEdition(e *publication.Edition) error {
	if e.Name == "" {
		return errors.New("edition name must not be empty")
	}
	if e.ISBN != "" {
		if _, err := isbn.Validate(e.ISBN); err != nil {
			return fmt.Errorf("invalid ISBN for edition %q: %w", e.Name, err)
		}
	}
	res, err := d.db.Exec(`
		INSERT INTO editions (publication_id, name, pub_date, submission_date, publisher, place, num_pages, isbn)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.PublicationID, e.Name, nullDate(e.PubDate), nullDate(e.SubmissionDate),
		e.Publisher, e.Place, nullIntPtr(e.NumPages), e.ISBN)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("edition %q already exists for this book", e.Name)
		}
		return fmt.Errorf("inserting edition %q: %w", e.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

// listEditions returns a book's editions, most recently published first.
func (d *DB) listEditions(publicationID int64) ([]publication.Edition, error) {
	rows, err := d.db.Query(`
		SELECT id, publication_id, name, pub_date, submission_date, publisher, place, num_pages, isbn
		FROM editions
		WHERE publication_id = ?
		ORDER BY pub_date DESC`, publicationID)
	if err != nil {
		return nil, fmt.Errorf("listing editions: %w", err)
	}
	defer rows.Close()

	var out []publication.Edition
	for rows.Next() {
		var e publication.Edition
		var pubDate, subDate sql.NullString
		var numPages sql.NullInt64
		if err := rows.Scan(&e.ID, &e.PublicationID, &e.Name, &pubDate, &subDate,
			&e.Publisher, &e.Place, &numPages, &e.ISBN); err != nil {
			return nil, fmt.Errorf("scanning edition: %w", err)
		}
		if e.PubDate, err = parseNullDate(pubDate); err != nil {
			return nil, err
		}
		if e.SubmissionDate, err = parseNullDate(subDate); err != nil {
			return nil, err
		}
		e.NumPages = intPtr(numPages)
		out = append(out, e)
	}
	return out, rows.Err()
}
