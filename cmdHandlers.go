package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/fatih/color"
	"github.com/mdobak/go-xerrors"

	"song-recommender/cache"
	"song-recommender/db"
	"song-recommender/mfcc"
	"song-recommender/pipeline"
	"song-recommender/playlist"
	"song-recommender/utils"
	"song-recommender/wav"
)

const (
	defaultQueryIndex      = 2
	defaultRecommendations = 10
)

func pipelineSetup() (pipeline.Config, *cache.Store) {
	extractCfg := mfcc.DefaultConfig()

	cfg := pipeline.Config{
		CorpusDir:      utils.GetEnv("CORPUS_DIR", "./fma_small"),
		FolderCount:    utils.GetEnvInt("CORPUS_FOLDERS", 156),
		Extension:      utils.GetEnv("CORPUS_EXT", ".mp3"),
		Workers:        utils.GetEnvInt("RECOMMEND_WORKERS", 0),
		ShowProgress:   true,
		DescriptorSize: extractCfg.DescriptorSize(),
		Extract: func(path string) ([]float64, error) {
			return mfcc.Extract(path, extractCfg)
		},
	}
	store := cache.NewStore(utils.GetEnv("CACHE_DIR", "cache"))
	return cfg, store
}

func recommend(queryIndex, count int) {
	cfg, store := pipelineSetup()

	pctx, err := pipeline.Run(cfg, store)
	if err != nil {
		utils.LogError(context.Background(), "pipeline failed", xerrors.New(err))
		os.Exit(1)
	}

	if !pctx.FromCache {
		registerTracks(pctx.Titles)
	}

	rows := 0
	if pctx.Similarity != nil {
		rows, _ = pctx.Similarity.Dims()
	}
	if rows <= 2 {
		fmt.Println("\ncould not generate playlist: not enough data or data not loaded")
		return
	}

	policy := playlist.ParseDedupePolicy(utils.GetEnv("RECOMMEND_DEDUPE", "name"))
	names, err := playlist.Recommend(queryIndex, pctx.Similarity, pctx.Titles, count, policy)
	if err != nil {
		fmt.Printf("\ncould not generate playlist: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	color.Cyan("🎶🎶 Recommended songs based on your selection 🎶🎶")
	fmt.Println()
	for i, name := range names {
		fmt.Printf("      %d. %s\n", i+1, name)
	}
}

func build(force bool) {
	cfg, store := pipelineSetup()

	if store.Exists() {
		if !force {
			fmt.Println("cached artifacts already exist, use -f to recompute")
			return
		}
		if err := store.Erase(); err != nil {
			fmt.Printf("error clearing cache: %v\n", err)
			os.Exit(1)
		}
	}

	pctx, err := pipeline.Run(cfg, store)
	if err != nil {
		utils.LogError(context.Background(), "pipeline failed", xerrors.New(err))
		os.Exit(1)
	}

	registerTracks(pctx.Titles)
	color.Green("indexed %d tracks", len(pctx.Titles))
}

func stats() {
	_, store := pipelineSetup()

	if store.Exists() {
		fmt.Printf("cache: present (%s)\n", store.Dir)
	} else {
		fmt.Printf("cache: absent (%s)\n", store.Dir)
	}

	dbClient, err := db.NewDBClient()
	if err != nil {
		fmt.Printf("error creating DB client: %v\n", err)
		return
	}
	defer dbClient.Close()

	total, err := dbClient.TotalTracks()
	if err != nil {
		fmt.Printf("error reading catalog: %v\n", err)
		return
	}
	fmt.Printf("catalog: %d tracks\n", total)
}

func erase(target string) {
	_, store := pipelineSetup()

	if target == "cache" || target == "all" {
		if err := store.Erase(); err != nil {
			fmt.Printf("error clearing cache: %v\n", err)
		} else {
			fmt.Println("cache cleared")
		}
	}

	if target == "db" || target == "all" {
		dbClient, err := db.NewDBClient()
		if err != nil {
			fmt.Printf("error creating DB client: %v\n", err)
			return
		}
		defer dbClient.Close()

		if err := dbClient.DeleteCollection(); err != nil {
			fmt.Printf("error clearing catalog: %v\n", err)
		} else {
			fmt.Println("catalog cleared")
		}
	}

	fmt.Println("erase complete")
}

// registerTracks records every surviving track of a fresh build in the
// catalog, reading tags where available and falling back to the file name.
func registerTracks(titles map[int]string) {
	if len(titles) == 0 {
		return
	}

	dbClient, err := db.NewDBClient()
	if err != nil {
		log.Printf("[catalog] skipping registration: %v", err)
		return
	}
	defer dbClient.Close()

	registered := 0
	for i := 0; i < len(titles); i++ {
		path := titles[i]
		title, artist := readTags(path)

		key := utils.GenerateTrackKey(title, artist)
		if _, exists, _ := dbClient.GetTrackByKey(key); exists {
			continue
		}

		duration, _ := wav.GetAudioDuration(path)
		if _, err := dbClient.RegisterTrack(path, title, artist, duration); err != nil {
			log.Printf("[catalog] failed to register %s: %v", filepath.Base(path), err)
			continue
		}
		registered++
	}

	log.Printf("[catalog] registered %d new tracks", registered)
}

func readTags(path string) (title, artist string) {
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if m, err := tag.ReadFrom(f); err == nil {
			title = m.Title()
			artist = m.Artist()
		}
	}

	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if artist == "" {
		artist = "unknown"
	}
	return title, artist
}
