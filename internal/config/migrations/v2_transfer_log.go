package migrations

func init() {
	register(Migration{
		Version:     2,
		Description: "Add transfer log table",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS transfer_log (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				requested_at INTEGER NOT NULL,
				recipient TEXT NOT NULL,
				amount TEXT NOT NULL,
				unit TEXT NOT NULL,
				testnet INTEGER NOT NULL DEFAULT 0
			)`,
			`CREATE INDEX IF NOT EXISTS idx_transfer_log_requested_at ON transfer_log(requested_at DESC)`,
		},
	})
}
