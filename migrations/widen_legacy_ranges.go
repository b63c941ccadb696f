package migrations

import "database/sql"

// WidenLegacyRanges converts rows imported with single-value
// compensation/experience columns into the canonical range form, where
// min and max both carry the old value. Rows already in range form are
// left untouched.
func WidenLegacyRanges(db *sql.DB) error {
	statements := []string{
		`UPDATE candidates SET ctc_max = ctc_min WHERE ctc_min IS NOT NULL AND ctc_max IS NULL`,
		`UPDATE candidates SET ctc_min = ctc_max WHERE ctc_max IS NOT NULL AND ctc_min IS NULL`,
		`UPDATE candidates SET experience_max = experience_min
			WHERE experience_min IS NOT NULL AND experience_max IS NULL`,
		`UPDATE candidates SET experience_min = experience_max
			WHERE experience_max IS NOT NULL AND experience_min IS NULL`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
