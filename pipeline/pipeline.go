package pipeline

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"song-recommender/cache"
	"song-recommender/corpus"
	"song-recommender/similarity"
)

// Config drives one pipeline run.
type Config struct {
	CorpusDir      string
	FolderCount    int
	Extension      string
	Workers        int
	ShowProgress   bool
	DescriptorSize int
	Extract        corpus.ExtractFunc
}

// Context holds the outputs of one run. It is populated exactly once,
// either by the compute branch or the load branch, and is read-only
// afterwards; the recommender receives it by reference.
type Context struct {
	Features   *mat.Dense
	Similarity *mat.Dense
	Titles     map[int]string
	FromCache  bool
}

// Run consults the cache store first: on a hit only the persisted
// artifacts are loaded; on a miss the full scan -> extract -> similarity
// sequence runs and its outputs are persisted before returning. A load
// failure after a hit signal is fatal, never a silent recomputation.
func Run(cfg Config, store *cache.Store) (*Context, error) {
	if store.Exists() {
		log.Printf("[pipeline] found pre-processed data, loading from %s", store.Dir)
		features, sim, titles, err := store.Load()
		if err != nil {
			return nil, err
		}
		log.Printf("[pipeline] loaded %d tracks", len(titles))
		return &Context{Features: features, Similarity: sim, Titles: titles, FromCache: true}, nil
	}

	log.Printf("[pipeline] processed data not found, starting feature extraction")

	paths := corpus.Scan(cfg.CorpusDir, cfg.FolderCount, cfg.Extension)
	log.Printf("[pipeline] scan found %d candidate files under %s", len(paths), cfg.CorpusDir)

	builder := &corpus.Builder{
		Extract:        cfg.Extract,
		DescriptorSize: cfg.DescriptorSize,
		Workers:        cfg.Workers,
		ShowProgress:   cfg.ShowProgress,
	}
	features, titles := builder.Build(paths)
	sim := similarity.Cosine(features)

	if err := store.Save(features, sim, titles); err != nil {
		return nil, fmt.Errorf("failed to persist pipeline outputs: %v", err)
	}
	log.Printf("[pipeline] saved processed data to %s", store.Dir)

	return &Context{Features: features, Similarity: sim, Titles: titles}, nil
}
