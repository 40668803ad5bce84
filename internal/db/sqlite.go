package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/auth"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/db/models"
)

type Database struct {
	db *sql.DB
}

func NewSQLite(path string) (*Database, error) {
	sqlDB, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	d := &Database{db: sqlDB}
	if err := d.migrate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Database) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'viewer',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		file_path TEXT NOT NULL,
		params TEXT NOT NULL,
		progress REAL DEFAULT 0,
		result TEXT,
		error TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		started_at DATETIME,
		completed_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS custom_themes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL,
		primary_color TEXT NOT NULL,
		secondary_color TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

func (d *Database) EnsureAdmin(username, password string) error {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM users WHERE role = 'admin'").Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(
		"INSERT INTO users (username, password, role) VALUES (?, ?, 'admin')",
		username, hash,
	)
	return err
}

// CountUsers returns the total number of accounts
func (d *Database) CountUsers() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// CreateUser inserts an account with an already-hashed password
func (d *Database) CreateUser(username, passwordHash, role string) (int64, error) {
	result, err := d.db.Exec(
		"INSERT INTO users (username, password, role) VALUES (?, ?, ?)",
		username, passwordHash, role,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (d *Database) GetUserByUsername(username string) (*models.User, error) {
	u := &models.User{}
	err := d.db.QueryRow(
		"SELECT id, username, password, role, created_at, updated_at FROM users WHERE username = ?",
		username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (d *Database) GetUserByID(id int64) (*models.User, error) {
	u := &models.User{}
	err := d.db.QueryRow(
		"SELECT id, username, password, role, created_at, updated_at FROM users WHERE id = ?",
		id,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetSetting returns a setting value by key, or defaultVal if not found
func (d *Database) GetSetting(key, defaultVal string) string {
	var val string
	err := d.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&val)
	if err != nil {
		return defaultVal
	}
	return val
}

// SetSetting upserts a setting
func (d *Database) SetSetting(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP`,
		key, value, value,
	)
	return err
}

// ListCustomThemes returns all saved custom themes ordered by creation time
func (d *Database) ListCustomThemes() ([]models.CustomTheme, error) {
	rows, err := d.db.Query(
		"SELECT id, name, primary_color, secondary_color, created_at FROM custom_themes ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var themes []models.CustomTheme
	for rows.Next() {
		var t models.CustomTheme
		if err := rows.Scan(&t.ID, &t.Name, &t.Primary, &t.Secondary, &t.CreatedAt); err != nil {
			return nil, err
		}
		themes = append(themes, t)
	}
	if themes == nil {
		themes = []models.CustomTheme{}
	}
	return themes, nil
}

// GetCustomTheme returns a saved theme by name
func (d *Database) GetCustomTheme(name string) (*models.CustomTheme, error) {
	var t models.CustomTheme
	err := d.db.QueryRow(
		"SELECT id, name, primary_color, secondary_color, created_at FROM custom_themes WHERE name = ?",
		name,
	).Scan(&t.ID, &t.Name, &t.Primary, &t.Secondary, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveCustomTheme inserts or replaces a theme by name
func (d *Database) SaveCustomTheme(name, primary, secondary string) error {
	_, err := d.db.Exec(`
		INSERT INTO custom_themes (name, primary_color, secondary_color) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET primary_color = ?, secondary_color = ?`,
		name, primary, secondary, primary, secondary,
	)
	return err
}

// DeleteCustomTheme removes a theme by name
func (d *Database) DeleteCustomTheme(name string) error {
	_, err := d.db.Exec("DELETE FROM custom_themes WHERE name = ?", name)
	return err
}

func (d *Database) Close() error {
	return d.db.Close()
}

// DB returns the underlying sql.DB for use by other packages (e.g., job queue)
func (d *Database) DB() *sql.DB {
	return d.db
}
