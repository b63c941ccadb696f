package migrations

import (
	"database/sql"
	"fmt"
)

// InitSchema creates the tables the repositories expect. Statements are
// idempotent so the API can run this on every start.
func InitSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS candidates (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			date_of_upload DATETIME NOT NULL,
			uploaded_by VARCHAR(100) NOT NULL DEFAULT '',
			first_name VARCHAR(50) NOT NULL DEFAULT '',
			middle_name VARCHAR(50) NOT NULL DEFAULT '',
			last_name VARCHAR(50) NOT NULL DEFAULT '',
			contact_no VARCHAR(15) NOT NULL DEFAULT '',
			alternate_contact_no VARCHAR(15) NOT NULL DEFAULT '',
			mail_id VARCHAR(255) NOT NULL DEFAULT '',
			alternate_mail_id VARCHAR(255) NOT NULL DEFAULT '',
			father_name VARCHAR(100) NOT NULL DEFAULT '',
			pan_no VARCHAR(10) NOT NULL DEFAULT '',
			date_of_birth DATE NULL,
			gender ENUM('Male', 'Female', 'Other') NULL,
			current_state VARCHAR(100) NOT NULL DEFAULT '',
			current_city VARCHAR(100) NOT NULL DEFAULT '',
			preferred_state VARCHAR(100) NOT NULL DEFAULT '',
			preferred_city VARCHAR(100) NOT NULL DEFAULT '',
			current_employer VARCHAR(200) NOT NULL DEFAULT '',
			designation VARCHAR(100) NOT NULL DEFAULT '',
			department VARCHAR(100) NOT NULL DEFAULT '',
			ctc_min DECIMAL(6,2) NULL,
			ctc_max DECIMAL(6,2) NULL,
			experience_min INT NULL,
			experience_max INT NULL,
			file_key VARCHAR(255) NULL,
			file_name VARCHAR(255) NULL,
			file_original_name VARCHAR(255) NULL,
			file_mime_type VARCHAR(100) NULL,
			file_size BIGINT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_candidates_upload (date_of_upload, id),
			INDEX idx_candidates_current_state (current_state),
			INDEX idx_candidates_preferred_state (preferred_state),
			INDEX idx_candidates_designation (designation),
			INDEX idx_candidates_department (department)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS candidate_comments (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			candidate_id BIGINT NOT NULL,
			text VARCHAR(500) NOT NULL,
			added_by VARCHAR(100) NOT NULL DEFAULT 'unknown',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_comments_candidate (candidate_id),
			CONSTRAINT fk_comments_candidate FOREIGN KEY (candidate_id)
				REFERENCES candidates(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS accounts (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			role ENUM('user', 'admin', 'sub-admin', 'sub-user') NOT NULL DEFAULT 'user',
			password_reset_token VARCHAR(64) NULL,
			password_reset_expires DATETIME NULL,
			password_changed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_accounts_email (email),
			INDEX idx_accounts_role (role),
			INDEX idx_accounts_reset_token (password_reset_token)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS companies (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			description TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_companies_name (name)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS cities (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			state VARCHAR(100) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_cities_name_state (name, state),
			INDEX idx_cities_state (state)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for i, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i+1, err)
		}
	}

	return nil
}
