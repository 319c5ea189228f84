package models

// Track is one catalogued audio file. Key is the stable identity used
// for duplicate detection (see utils.GenerateTrackKey).
type Track struct {
	ID       uint32  `json:"id" bson:"id"`
	Key      string  `json:"key" bson:"key"`
	Path     string  `json:"path" bson:"path"`
	Title    string  `json:"title" bson:"title"`
	Artist   string  `json:"artist" bson:"artist"`
	Duration float64 `json:"duration" bson:"duration"`
}
