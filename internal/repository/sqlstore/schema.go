package sqlstore

// medication_logs.medication_id carries no foreign key: logging an unknown
// medication is accepted and stored.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS medications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		dose TEXT NOT NULL,
		frequency TEXT NOT NULL DEFAULT '',
		time TEXT NOT NULL DEFAULT '',
		reminder_enabled BOOLEAN NOT NULL DEFAULT 1,
		reminder_channel TEXT NOT NULL DEFAULT 'all'
	)`,
	`CREATE TABLE IF NOT EXISTS medication_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		medication_id INTEGER NOT NULL,
		log_date TEXT NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('taken', 'missed')),
		UNIQUE (medication_id, log_date)
	)`,
	`CREATE TABLE IF NOT EXISTS moods (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		score INTEGER NOT NULL CHECK (score BETWEEN 1 AND 5),
		emoji TEXT NOT NULL,
		mood_date TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS journals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entry TEXT NOT NULL,
		kind TEXT NOT NULL DEFAULT 'full',
		journal_date TEXT NOT NULL
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS medications (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		dose TEXT NOT NULL,
		frequency TEXT NOT NULL DEFAULT '',
		time TEXT NOT NULL DEFAULT '',
		reminder_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		reminder_channel TEXT NOT NULL DEFAULT 'all'
	)`,
	`CREATE TABLE IF NOT EXISTS medication_logs (
		id BIGSERIAL PRIMARY KEY,
		medication_id BIGINT NOT NULL,
		log_date TEXT NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('taken', 'missed')),
		UNIQUE (medication_id, log_date)
	)`,
	`CREATE TABLE IF NOT EXISTS moods (
		id BIGSERIAL PRIMARY KEY,
		score INTEGER NOT NULL CHECK (score BETWEEN 1 AND 5),
		emoji TEXT NOT NULL,
		mood_date TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS journals (
		id BIGSERIAL PRIMARY KEY,
		entry TEXT NOT NULL,
		kind TEXT NOT NULL DEFAULT 'full',
		journal_date TEXT NOT NULL
	)`,
}
