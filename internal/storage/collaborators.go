package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/matsen/vitae/internal/publication"
)

// ErrDuplicateDisplayOrder indicates an authorship or editorship insert
// reused a display_order value already taken on that publication.
var ErrDuplicateDisplayOrder = errors.New("display order already in use for this publication")

// IsDuplicateDisplayOrder checks if an error is a display-order collision.
func IsDuplicateDisplayOrder(err error) bool {
	return errors.Is(err, ErrDuplicateDisplayOrder)
}

// SaveCollaborator inserts or updates a collaborator. Email is the unique
// identity; inserting a second collaborator with the same email fails.
func (d *DB) SaveCollaborator(c *publication.Collaborator) error {
	if c.Email == "" {
		return errors.New("collaborator email must not be empty")
	}
	if c.ID == 0 {
		res, err := d.db.Exec(`
			INSERT INTO collaborators (first_name, last_name, middle_initial, suffix, email, institution, website)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.FirstName, c.LastName, c.MiddleInitial, c.Suffix, c.Email, c.Institution, c.Website)
		if err != nil {
			return fmt.Errorf("inserting collaborator %q: %w", c.Email, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		c.ID = id
		return nil
	}
	_, err := d.db.Exec(`
		UPDATE collaborators
		SET first_name = ?, last_name = ?, middle_initial = ?, suffix = ?, email = ?, institution = ?, website = ?
		WHERE id = ?`,
		c.FirstName, c.LastName, c.MiddleInitial, c.Suffix, c.Email, c.Institution, c.Website, c.ID)
	if err != nil {
		return fmt.Errorf("updating collaborator %q: %w", c.Email, err)
	}
	return nil
}

// GetCollaboratorByEmail returns the collaborator with the given email,
// or nil when none exists.
func (d *DB) GetCollaboratorByEmail(email string) (*publication.Collaborator, error) {
	row := d.db.QueryRow(`
		SELECT id, first_name, last_name, middle_initial, suffix, email, institution, website
		FROM collaborators WHERE email = ?`, email)
	var c publication.Collaborator
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.MiddleInitial, &c.Suffix,
		&c.Email, &c.Institution, &c.Website)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading collaborator %q: %w", email, err)
	}
	return &c, nil
}

// FindCollaboratorByName returns the collaborator matching first and
// last name, or nil. Name matching is a best-effort fallback for
// imported records that carry no email.
func (d *DB) FindCollaboratorByName(firstName, lastName string) (*publication.Collaborator, error) {
	row := d.db.QueryRow(`
		SELECT id, first_name, last_name, middle_initial, suffix, email, institution, website
		FROM collaborators WHERE first_name = ? AND last_name = ?
		ORDER BY id LIMIT 1`, firstName, lastName)
	var c publication.Collaborator
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.MiddleInitial, &c.Suffix,
		&c.Email, &c.Institution, &c.Website)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding collaborator %q %q: %w", firstName, lastName, err)
	}
	return &c, nil
}

// AddAuthorship ties a collaborator to a publication at a display
// position. A taken position fails with ErrDuplicateDisplayOrder.
func (d *DB) AddAuthorship(publicationID, collaboratorID int64, displayOrder int, printMiddle bool, studentLevel *int) error {
	_, err := d.db.Exec(`
		INSERT INTO authorships (publication_id, collaborator_id, display_order, print_middle, student_level)
		VALUES (?, ?, ?, ?, ?)`,
		publicationID, collaboratorID, displayOrder, boolInt(printMiddle), nullIntPtr(studentLevel))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("adding authorship at position %d: %w", displayOrder, ErrDuplicateDisplayOrder)
		}
		return fmt.Errorf("adding authorship: %w", err)
	}
	return nil
}

// AddEditorship ties an editor to a publication at a display position.
func (d *DB) AddEditorship(publicationID, collaboratorID int64, displayOrder int) error {
	_, err := d.db.Exec(`
		INSERT INTO editorships (publication_id, collaborator_id, display_order)
		VALUES (?, ?, ?)`,
		publicationID, collaboratorID, displayOrder)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("adding editorship at position %d: %w", displayOrder, ErrDuplicateDisplayOrder)
		}
		return fmt.Errorf("adding editorship: %w", err)
	}
	return nil
}

func (d *DB) listAuthorships(publicationID int64) ([]publication.Authorship, error) {
	rows, err := d.db.Query(`
		SELECT a.display_order, a.print_middle, a.student_level,
		       c.id, c.first_name, c.last_name, c.middle_initial, c.suffix, c.email, c.institution, c.website
		FROM authorships a
		JOIN collaborators c ON c.id = a.collaborator_id
		WHERE a.publication_id = ?
		ORDER BY a.display_order`, publicationID)
	if err != nil {
		return nil, fmt.Errorf("listing authorships: %w", err)
	}
	defer rows.Close()

	var out []publication.Authorship
	for rows.Next() {
		var a publication.Authorship
		var printMiddle int
		var level sql.NullInt64
		c := &a.Collaborator
		if err := rows.Scan(&a.DisplayOrder, &printMiddle, &level,
			&c.ID, &c.FirstName, &c.LastName, &c.MiddleInitial, &c.Suffix,
			&c.Email, &c.Institution, &c.Website); err != nil {
			return nil, fmt.Errorf("scanning authorship: %w", err)
		}
		a.PrintMiddle = printMiddle != 0
		if level.Valid {
			v := int(level.Int64)
			a.StudentLevel = &v
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (d *DB) listEditorships(publicationID int64) ([]publication.Editorship, error) {
	rows, err := d.db.Query(`
		SELECT e.display_order,
		       c.id, c.first_name, c.last_name, c.middle_initial, c.suffix, c.email, c.institution, c.website
		FROM editorships e
		JOIN collaborators c ON c.id = e.collaborator_id
		WHERE e.publication_id = ?
		ORDER BY e.display_order`, publicationID)
	if err != nil {
		return nil, fmt.Errorf("listing editorships: %w", err)
	}
	defer rows.Close()

	var out []publication.Editorship
	for rows.Next() {
		var e publication.Editorship
		c := &e.Collaborator
		if err := rows.Scan(&e.DisplayOrder,
			&c.ID, &c.FirstName, &c.LastName, &c.MiddleInitial, &c.Suffix,
			&c.Email, &c.Institution, &c.Website); err != nil {
			return nil, fmt.Errorf("scanning editorship: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// isUniqueViolation detects SQLite unique-constraint failures. The driver
// surfaces them as plain errors, so match on the message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
