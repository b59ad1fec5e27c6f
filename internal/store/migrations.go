package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Alerts table - one row per confirmed wave detection
		`CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			triggered_at DATETIME NOT NULL,
			cleared_at DATETIME,
			reversals INTEGER NOT NULL DEFAULT 0
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Index for time-ordered alert queries
		`CREATE INDEX IF NOT EXISTS idx_alerts_triggered_at ON alerts(triggered_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
