package db

import (
	"path/filepath"
	"testing"

	"song-recommender/utils"
)

func newTestClient(t *testing.T) *SQLiteClient {
	t.Helper()
	client, err := NewSQLiteClient(filepath.Join(t.TempDir(), "catalog.sqlite3"))
	if err != nil {
		t.Fatalf("NewSQLiteClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRegisterAndLookup(t *testing.T) {
	client := newTestClient(t)

	id, err := client.RegisterTrack("fma_small/000/000002.mp3", "Food", "AWOL", 183.4)
	if err != nil {
		t.Fatalf("RegisterTrack: %v", err)
	}
	if id == 0 {
		t.Error("expected a non-zero track ID")
	}

	track, found, err := client.GetTrackByKey(utils.GenerateTrackKey("Food", "AWOL"))
	if err != nil {
		t.Fatalf("GetTrackByKey: %v", err)
	}
	if !found {
		t.Fatal("registered track not found")
	}
	if track.Title != "Food" || track.Artist != "AWOL" || track.Path != "fma_small/000/000002.mp3" {
		t.Errorf("track = %+v", track)
	}
}

func TestLookupMissing(t *testing.T) {
	client := newTestClient(t)

	_, found, err := client.GetTrackByKey("no such---track")
	if err != nil {
		t.Fatalf("GetTrackByKey: %v", err)
	}
	if found {
		t.Error("lookup of unregistered key should report not found")
	}
}

func TestRegisterDuplicateKey(t *testing.T) {
	client := newTestClient(t)

	if _, err := client.RegisterTrack("a.mp3", "Food", "AWOL", 10); err != nil {
		t.Fatal(err)
	}
	if _, err := client.RegisterTrack("b.mp3", "Food", "AWOL", 10); err != nil {
		t.Fatal(err)
	}

	count, err := client.TotalTracks()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("got %d tracks after duplicate register, want 1", count)
	}
}

func TestGetAllTracksAndDelete(t *testing.T) {
	client := newTestClient(t)

	titles := []string{"Food", "Electric Ave", "This World"}
	for i, title := range titles {
		if _, err := client.RegisterTrack("x.mp3", title, "AWOL", float64(i)); err != nil {
			t.Fatal(err)
		}
	}

	tracks, err := client.GetAllTracks()
	if err != nil {
		t.Fatalf("GetAllTracks: %v", err)
	}
	if len(tracks) != len(titles) {
		t.Fatalf("got %d tracks, want %d", len(tracks), len(titles))
	}
	for i, track := range tracks {
		if track.Title != titles[i] {
			t.Errorf("track %d = %q, want %q", i, track.Title, titles[i])
		}
	}

	if err := client.DeleteCollection(); err != nil {
		t.Fatalf("DeleteCollection: %v", err)
	}
	count, err := client.TotalTracks()
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("got %d tracks after delete, want 0", count)
	}
}
