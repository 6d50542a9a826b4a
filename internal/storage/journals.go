package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/matsen/vitae/internal/publication"
)

// SaveJournal inserts or updates a journal. Titles are unique.
func (d *DB) SaveJournal(j *publication.Journal) error {
	if j.Title == "" {
		return errors.New("journal title must not be empty")
	}
	if j.ID == 0 {
		res, err := d.db.Exec(`
			INSERT INTO journals (title, abbreviated_title, issn, website)
			VALUES (?, ?, ?, ?)`,
			j.Title, j.AbbreviatedTitle, j.ISSN, j.Website)
		if err != nil {
			return fmt.Errorf("inserting journal %q: %w", j.Title, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		j.ID = id
		return nil
	}
	_, err := d.db.Exec(`
		UPDATE journals SET title = ?, abbreviated_title = ?, issn = ?, website = ?
		WHERE id = ?`,
		j.Title, j.AbbreviatedTitle, j.ISSN, j.Website, j.ID)
	if err != nil {
		return fmt.Errorf("updating journal %q: %w", j.Title, err)
	}
	return nil
}

// GetJournalByID returns the journal with the given id, or nil.
func (d *DB) GetJournalByID(id int64) (*publication.Journal, error) {
	return d.getJournal("id = ?", id)
}

// GetJournalByTitle returns the journal with the given title, or nil.
func (d *DB) GetJournalByTitle(title string) (*publication.Journal, error) {
	return d.getJournal("title = ?", title)
}

func (d *DB) getJournal(cond string, arg any) (*publication.Journal, error) {
	row := d.db.QueryRow(
		"SELECT id, title, abbreviated_title, issn, website FROM journals WHERE "+cond, arg)
	var j publication.Journal
	err := row.Scan(&j.ID, &j.Title, &j.AbbreviatedTitle, &j.ISSN, &j.Website)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading journal: %w", err)
	}
	return &j, nil
}
