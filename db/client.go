package db

import (
	"fmt"
	"strings"

	"song-recommender/models"
	"song-recommender/utils"
)

// DBClient is the track catalog: every successfully indexed track is
// registered here so the stats and erase commands (and anything else
// needing track metadata) don't have to re-probe audio files.
type DBClient interface {
	Close() error
	RegisterTrack(path, title, artist string, duration float64) (uint32, error)
	GetTrackByKey(key string) (*models.Track, bool, error)
	GetAllTracks() ([]models.Track, error)
	TotalTracks() (int, error)
	DeleteCollection() error
}

// NewDBClient selects the catalog backend from the DB_TYPE environment
// variable: "sqlite" (default) or "mongo".
func NewDBClient() (DBClient, error) {
	dbType := strings.ToLower(utils.GetEnv("DB_TYPE", "sqlite"))
	switch dbType {
	case "sqlite":
		return NewSQLiteClient(utils.GetEnv("SQLITE_PATH", "catalog.sqlite3"))
	case "mongo", "mongodb":
		return NewMongoClient(utils.GetEnv("MONGO_URI", "mongodb://localhost:27017"))
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q (want sqlite or mongo)", dbType)
	}
}
