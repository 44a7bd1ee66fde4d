// internal/storage/sqlite.go
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"diet-manager/internal/models"
)

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	storage := &SQLiteStorage{db: db}
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS foods (
        position INTEGER PRIMARY KEY,
        id TEXT NOT NULL UNIQUE,
        name TEXT NOT NULL,
        keywords TEXT NOT NULL,
        calories_per_serving REAL NOT NULL,
        is_composite INTEGER NOT NULL
    );

    CREATE TABLE IF NOT EXISTS food_components (
        food_id TEXT NOT NULL,
        position INTEGER NOT NULL,
        component_food_id TEXT NOT NULL,
        servings REAL NOT NULL,
        PRIMARY KEY (food_id, position)
    );

    CREATE TABLE IF NOT EXISTS log_entries (
        position INTEGER PRIMARY KEY,
        id TEXT NOT NULL UNIQUE,
        date TEXT NOT NULL,
        time TEXT NOT NULL,
        meal_type TEXT NOT NULL,
        food_id TEXT NOT NULL,
        servings REAL NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_log_entries_date ON log_entries(date);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveFoods replaces the stored catalog in one transaction.
func (s *SQLiteStorage) SaveFoods(records []models.FoodRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM food_components`); err != nil {
		return fmt.Errorf("failed to clear components: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM foods`); err != nil {
		return fmt.Errorf("failed to clear foods: %w", err)
	}

	foodQuery := `
        INSERT INTO foods (position, id, name, keywords, calories_per_serving, is_composite)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	componentQuery := `
        INSERT INTO food_components (food_id, position, component_food_id, servings)
        VALUES (?, ?, ?, ?)
    `
	for i, rec := range records {
		keywords, err := json.Marshal(rec.Keywords)
		if err != nil {
			return fmt.Errorf("failed to encode keywords for %s: %w", rec.ID, err)
		}
		_, err = tx.Exec(foodQuery,
			i, rec.ID, rec.Name, string(keywords), rec.CaloriesPerServing, boolToInt(rec.IsComposite))
		if err != nil {
			return fmt.Errorf("failed to insert food: %w", err)
		}

		for j, comp := range rec.Components {
			if _, err := tx.Exec(componentQuery, rec.ID, j, comp.FoodID, comp.Servings); err != nil {
				return fmt.Errorf("failed to insert component: %w", err)
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteStorage) LoadFoods() ([]models.FoodRecord, error) {
	query := `
        SELECT id, name, keywords, calories_per_serving, is_composite
        FROM foods
        ORDER BY position
    `

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	var records []models.FoodRecord
	for rows.Next() {
		var rec models.FoodRecord
		var keywords string

		if err := rows.Scan(&rec.ID, &rec.Name, &keywords, &rec.CaloriesPerServing, &rec.IsComposite); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		if err := json.Unmarshal([]byte(keywords), &rec.Keywords); err != nil {
			return nil, fmt.Errorf("failed to decode keywords for %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read foods: %w", err)
	}

	for i := range records {
		if !records[i].IsComposite {
			continue
		}
		if err := s.loadComponents(&records[i]); err != nil {
			return nil, fmt.Errorf("failed to load components for food %s: %w", records[i].ID, err)
		}
	}

	return records, nil
}

func (s *SQLiteStorage) loadComponents(rec *models.FoodRecord) error {
	query := `
        SELECT component_food_id, servings
        FROM food_components
        WHERE food_id = ?
        ORDER BY position
    `

	rows, err := s.db.Query(query, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to query components: %w", err)
	}
	defer rows.Close()

	var components []models.FoodComponent
	for rows.Next() {
		var comp models.FoodComponent
		if err := rows.Scan(&comp.FoodID, &comp.Servings); err != nil {
			return fmt.Errorf("failed to scan component: %w", err)
		}
		components = append(components, comp)
	}

	rec.Components = components
	return rows.Err()
}

// SaveEntries replaces the stored log in one transaction.
func (s *SQLiteStorage) SaveEntries(records []models.EntryRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM log_entries`); err != nil {
		return fmt.Errorf("failed to clear log entries: %w", err)
	}

	entryQuery := `
        INSERT INTO log_entries (position, id, date, time, meal_type, food_id, servings)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	for i, rec := range records {
		_, err := tx.Exec(entryQuery,
			i, rec.ID, rec.Date, rec.Time, rec.MealType, rec.FoodID, rec.Servings)
		if err != nil {
			return fmt.Errorf("failed to insert log entry: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStorage) LoadEntries() ([]models.EntryRecord, error) {
	query := `
        SELECT id, date, time, meal_type, food_id, servings
        FROM log_entries
        ORDER BY position
    `

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query log entries: %w", err)
	}
	defer rows.Close()

	var records []models.EntryRecord
	for rows.Next() {
		var rec models.EntryRecord
		err := rows.Scan(&rec.ID, &rec.Date, &rec.Time, &rec.MealType, &rec.FoodID, &rec.Servings)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
