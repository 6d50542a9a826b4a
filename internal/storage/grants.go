package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/matsen/vitae/internal/publication"
)

// SaveGrant inserts or updates a grant.
func (d *DB) SaveGrant(g *publication.Grant) error {
	if g.Title == "" {
		return errors.New("grant title must not be empty")
	}
	if g.ID == 0 {
		res, err := d.db.Exec(`
			INSERT INTO grants (title, source, amount) VALUES (?, ?, ?)`,
			g.Title, g.Source, g.Amount)
		if err != nil {
			return fmt.Errorf("inserting grant %q: %w", g.Title, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		g.ID = id
		return nil
	}
	_, err := d.db.Exec(`
		UPDATE grants SET title = ?, source = ?, amount = ? WHERE id = ?`,
		g.Title, g.Source, g.Amount, g.ID)
	if err != nil {
		return fmt.Errorf("updating grant %q: %w", g.Title, err)
	}
	return nil
}

// AttachGrant links a grant to a publication. Re-attaching is a no-op.
func (d *DB) AttachGrant(publicationID, grantID int64) error {
	_, err := d.db.Exec(`
		INSERT OR IGNORE INTO publication_grants (publication_id, grant_id) VALUES (?, ?)`,
		publicationID, grantID)
	if err != nil {
		return fmt.Errorf("attaching grant: %w", err)
	}
	return nil
}

// GetGrantByTitle returns the grant with the given title, or nil.
func (d *DB) GetGrantByTitle(title string) (*publication.Grant, error) {
	row := d.db.QueryRow(
		"SELECT id, title, source, amount FROM grants WHERE title = ?", title)
	var g publication.Grant
	err := row.Scan(&g.ID, &g.Title, &g.Source, &g.Amount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading grant: %w", err)
	}
	return &g, nil
}

func (d *DB) listGrants(publicationID int64) ([]publication.Grant, error) {
	rows, err := d.db.Query(`
		SELECT g.id, g.title, g.source, g.amount
		FROM grants g
		JOIN publication_grants pg ON pg.grant_id = g.id
		WHERE pg.publication_id = ?
		ORDER BY g.id`, publicationID)
	if err != nil {
		return nil, fmt.Errorf("listing grants: %w", err)
	}
	defer rows.Close()

	var out []publication.Grant
	for rows.Next() {
		var g publication.Grant
		if err := rows.Scan(&g.ID, &g.Title, &g.Source, &g.Amount); err != nil {
			return nil, fmt.Errorf("scanning grant: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
