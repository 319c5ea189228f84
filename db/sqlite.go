package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"song-recommender/models"
	"song-recommender/utils"
)

type SQLiteClient struct {
	db *sql.DB
}

func NewSQLiteClient(dataSourceName string) (*SQLiteClient, error) {
	sqlDB, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite database: %v", err)
	}

	if err := createTrackTable(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &SQLiteClient{db: sqlDB}, nil
}

func createTrackTable(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS tracks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT NOT NULL UNIQUE,
		path TEXT NOT NULL,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		duration REAL NOT NULL DEFAULT 0
	)`)
	if err != nil {
		return fmt.Errorf("error creating tracks table: %v", err)
	}
	return nil
}

func (c *SQLiteClient) Close() error {
	return c.db.Close()
}

func (c *SQLiteClient) RegisterTrack(path, title, artist string, duration float64) (uint32, error) {
	key := utils.GenerateTrackKey(title, artist)
	res, err := c.db.Exec(
		"INSERT OR IGNORE INTO tracks (key, path, title, artist, duration) VALUES (?, ?, ?, ?, ?)",
		key, path, title, artist, duration,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to register track: %v", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get track ID: %v", err)
	}
	return uint32(id), nil
}

func (c *SQLiteClient) GetTrackByKey(key string) (*models.Track, bool, error) {
	row := c.db.QueryRow(
		"SELECT id, key, path, title, artist, duration FROM tracks WHERE key = ?", key)

	var t models.Track
	err := row.Scan(&t.ID, &t.Key, &t.Path, &t.Title, &t.Artist, &t.Duration)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up track: %v", err)
	}
	return &t, true, nil
}

func (c *SQLiteClient) GetAllTracks() ([]models.Track, error) {
	rows, err := c.db.Query(
		"SELECT id, key, path, title, artist, duration FROM tracks ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %v", err)
	}
	defer rows.Close()

	var tracks []models.Track
	for rows.Next() {
		var t models.Track
		if err := rows.Scan(&t.ID, &t.Key, &t.Path, &t.Title, &t.Artist, &t.Duration); err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

func (c *SQLiteClient) TotalTracks() (int, error) {
	var count int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM tracks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %v", err)
	}
	return count, nil
}

func (c *SQLiteClient) DeleteCollection() error {
	if _, err := c.db.Exec("DELETE FROM tracks"); err != nil {
		return fmt.Errorf("failed to clear tracks: %v", err)
	}
	return nil
}
