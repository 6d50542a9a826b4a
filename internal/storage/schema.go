package storage

import "fmt"

// schema is the full DDL. Publications live in a single table with a type
// tag; type-specific columns are simply unused by other types. Dates are
// TEXT in YYYY-MM-DD form so lexicographic comparison is chronological.
const schema = `
	CREATE TABLE IF NOT EXISTS journals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL UNIQUE,
		abbreviated_title TEXT NOT NULL DEFAULT '',
		issn TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS publications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL CHECK (type IN ('article', 'book', 'chapter', 'report')),
		slug TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		short_title TEXT NOT NULL,
		abstract TEXT NOT NULL DEFAULT '',
		abstract_html TEXT NOT NULL DEFAULT '',
		status INTEGER,
		pub_date TEXT,
		submission_date TEXT,
		url TEXT NOT NULL DEFAULT '',
		display INTEGER NOT NULL DEFAULT 1,
		is_inprep INTEGER NOT NULL DEFAULT 0,
		is_inrevision INTEGER NOT NULL DEFAULT 0,
		is_published INTEGER NOT NULL DEFAULT 0,

		journal_id INTEGER REFERENCES journals(id),
		volume TEXT NOT NULL DEFAULT '',
		issue TEXT NOT NULL DEFAULT '',
		start_page TEXT NOT NULL DEFAULT '',
		end_page TEXT NOT NULL DEFAULT '',
		series TEXT NOT NULL DEFAULT '',
		series_number TEXT NOT NULL DEFAULT '',
		number TEXT NOT NULL DEFAULT '',
		doi TEXT NOT NULL DEFAULT '',
		pmcid TEXT NOT NULL DEFAULT '',
		pmid TEXT NOT NULL DEFAULT '',

		publisher TEXT NOT NULL DEFAULT '',
		place TEXT NOT NULL DEFAULT '',
		book_volume INTEGER,
		num_pages INTEGER,
		isbn TEXT NOT NULL DEFAULT '',

		book_title TEXT NOT NULL DEFAULT '',
		volumes TEXT NOT NULL DEFAULT '',
		edition TEXT NOT NULL DEFAULT '',

		institution TEXT NOT NULL DEFAULT '',
		report_number TEXT NOT NULL DEFAULT '',
		report_type TEXT NOT NULL DEFAULT '',
		series_title TEXT NOT NULL DEFAULT '',
		pages TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_publications_type ON publications(type);
	CREATE INDEX IF NOT EXISTS idx_publications_pub_date ON publications(pub_date);
	CREATE INDEX IF NOT EXISTS idx_publications_submission_date ON publications(submission_date);

	CREATE TABLE IF NOT EXISTS collaborators (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		middle_initial TEXT NOT NULL DEFAULT '',
		suffix TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL UNIQUE,
		institution TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS authorships (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		publication_id INTEGER NOT NULL REFERENCES publications(id) ON DELETE CASCADE,
		collaborator_id INTEGER NOT NULL REFERENCES collaborators(id) ON DELETE CASCADE,
		display_order INTEGER NOT NULL,
		print_middle INTEGER NOT NULL DEFAULT 1,
		student_level INTEGER,
		UNIQUE(publication_id, display_order)
	);

	CREATE TABLE IF NOT EXISTS editorships (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		publication_id INTEGER NOT NULL REFERENCES publications(id) ON DELETE CASCADE,
		collaborator_id INTEGER NOT NULL REFERENCES collaborators(id) ON DELETE CASCADE,
		display_order INTEGER NOT NULL,
		UNIQUE(publication_id, display_order)
	);

	CREATE TABLE IF NOT EXISTS editions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		publication_id INTEGER NOT NULL REFERENCES publications(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		pub_date TEXT,
		submission_date TEXT,
		publisher TEXT NOT NULL DEFAULT '',
		place TEXT NOT NULL DEFAULT '',
		num_pages INTEGER,
		isbn TEXT NOT NULL DEFAULT '',
		UNIQUE(publication_id, name)
	);

	CREATE TABLE IF NOT EXISTS grants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		amount REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS publication_grants (
		publication_id INTEGER NOT NULL REFERENCES publications(id) ON DELETE CASCADE,
		grant_id INTEGER NOT NULL REFERENCES grants(id) ON DELETE CASCADE,
		UNIQUE(publication_id, grant_id)
	);
`

// ensureSchema creates all tables (idempotent via CREATE IF NOT EXISTS).
func (d *DB) ensureSchema() error {
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
