package database

import "github.com/jmoiron/sqlx"

const schema = `
CREATE TABLE IF NOT EXISTS submissions (
	id BIGSERIAL PRIMARY KEY,
	original_text TEXT NOT NULL,
	context TEXT NOT NULL DEFAULT '',
	target_audience TEXT NOT NULL DEFAULT '',
	tone TEXT NOT NULL DEFAULT '',
	generated_text TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS approved_statements (
	id BIGSERIAL PRIMARY KEY,
	published_text TEXT NOT NULL,
	topic TEXT NOT NULL DEFAULT '',
	tone TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	source TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_submissions_status ON submissions (status);
`

// EnsureSchema creates the corpus tables when they do not exist yet.
func EnsureSchema(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	return err
}
