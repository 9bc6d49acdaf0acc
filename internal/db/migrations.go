package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		username VARCHAR(64) NOT NULL,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_username ON users (username);`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(128) NOT NULL,
		surname VARCHAR(128) NOT NULL,
		email VARCHAR(256) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		national_id VARCHAR(16) NOT NULL,
		age INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS advisors (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(128) NOT NULL,
		surname VARCHAR(128) NOT NULL,
		email VARCHAR(256) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		national_id VARCHAR(16) NOT NULL,
		age INT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		registration_number VARCHAR(64) NOT NULL,
		institution VARCHAR(32) NOT NULL,
		client_id UUID NOT NULL REFERENCES clients(id),
		administrator_id UUID NOT NULL REFERENCES advisors(id),
		conclusion_date DATE NOT NULL,
		validity_date DATE NOT NULL,
		ending_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contracts_registration_number ON contracts (registration_number);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_client_id ON contracts (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_administrator_id ON contracts (administrator_id);`,
	`CREATE TABLE IF NOT EXISTS contract_advisors (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		contract_id UUID NOT NULL REFERENCES contracts(id),
		advisor_id UUID NOT NULL REFERENCES advisors(id)
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contract_advisors_pair ON contract_advisors (contract_id, advisor_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contract_advisors_contract_id ON contract_advisors (contract_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contract_advisors_advisor_id ON contract_advisors (advisor_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
