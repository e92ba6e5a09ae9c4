package database

import (
	"database/sql"
	"fmt"
)

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist. Owners must be created
// before cheques, and cheques before follow_ups, because of the foreign
// key constraints.
const schema = `
CREATE TABLE IF NOT EXISTS owners (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    full_name TEXT,
    company_name TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS cheques (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    owner_id UUID NOT NULL REFERENCES owners(id),
    party_name TEXT NOT NULL,
    cheque_number TEXT NOT NULL,
    bank_name TEXT NOT NULL,
    amount NUMERIC(14, 2) NOT NULL,
    issue_date DATE NOT NULL,
    due_date DATE,
    status TEXT NOT NULL DEFAULT 'pending',
    bounce_reason TEXT,
    bounce_date DATE,
    bounce_remarks TEXT,
    recovery_status TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS follow_ups (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    owner_id UUID NOT NULL REFERENCES owners(id),
    cheque_id UUID NOT NULL REFERENCES cheques(id),
    contact_date DATE NOT NULL,
    next_follow_up_date DATE,
    notes TEXT,
    action_taken TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS party_mappings (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    owner_id UUID NOT NULL REFERENCES owners(id),
    raw_pattern TEXT NOT NULL,
    canonical_name TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_cheques_owner_id ON cheques(owner_id);
CREATE INDEX IF NOT EXISTS idx_cheques_status ON cheques(owner_id, status);
CREATE INDEX IF NOT EXISTS idx_follow_ups_cheque_id ON follow_ups(cheque_id);
CREATE INDEX IF NOT EXISTS idx_party_mappings_owner_id ON party_mappings(owner_id);
`

// Migrate executes the schema setup.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
