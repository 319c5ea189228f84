package cache

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"song-recommender/utils"
)

// ErrCorrupt marks a cache that signaled a hit but could not be read
// back. The pipeline treats this as fatal rather than silently
// recomputing: a half-written cache should be inspected, not guessed
// around.
var ErrCorrupt = errors.New("cache corrupt")

const (
	featuresBlob   = "features.gob"
	similarityBlob = "similarity.gob"
	titlesBlob     = "titles.gob"
)

// Store persists the pipeline's three artifacts as gob blobs in one
// directory: the descriptor matrix, the similarity matrix, and the
// index -> path mapping.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Exists reports a cache hit. The titles blob (the index mapping) is
// the sole signal; it is checked once at pipeline start.
func (s *Store) Exists() bool {
	_, err := os.Stat(filepath.Join(s.Dir, titlesBlob))
	return err == nil
}

// Save writes all three artifacts. The titles blob goes last so the
// hit signal never appears before the matrices are on disk.
func (s *Store) Save(features, sim *mat.Dense, titles map[int]string) error {
	if err := utils.CreateFolder(s.Dir); err != nil {
		return err
	}

	if err := writeGob(filepath.Join(s.Dir, featuresBlob), toBlob(features)); err != nil {
		return fmt.Errorf("failed to save descriptor matrix: %v", err)
	}
	if err := writeGob(filepath.Join(s.Dir, similarityBlob), toBlob(sim)); err != nil {
		return fmt.Errorf("failed to save similarity matrix: %v", err)
	}
	if err := writeGob(filepath.Join(s.Dir, titlesBlob), titles); err != nil {
		return fmt.Errorf("failed to save index mapping: %v", err)
	}
	return nil
}

// Load reads all three artifacts back. Any missing or unreadable blob
// after Exists() reported a hit is an ErrCorrupt failure.
func (s *Store) Load() (features, sim *mat.Dense, titles map[int]string, err error) {
	titles = map[int]string{}
	if err := readGob(filepath.Join(s.Dir, titlesBlob), &titles); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: index mapping: %v", ErrCorrupt, err)
	}

	var fb, sb matrixBlob
	if err := readGob(filepath.Join(s.Dir, featuresBlob), &fb); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: descriptor matrix: %v", ErrCorrupt, err)
	}
	if err := readGob(filepath.Join(s.Dir, similarityBlob), &sb); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: similarity matrix: %v", ErrCorrupt, err)
	}

	features, err = fromBlob(fb)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: descriptor matrix: %v", ErrCorrupt, err)
	}
	sim, err = fromBlob(sb)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: similarity matrix: %v", ErrCorrupt, err)
	}

	if sim != nil {
		if r, _ := sim.Dims(); r != len(titles) {
			return nil, nil, nil, fmt.Errorf("%w: similarity has %d rows but mapping has %d entries", ErrCorrupt, r, len(titles))
		}
	} else if len(titles) != 0 {
		return nil, nil, nil, fmt.Errorf("%w: mapping has %d entries but similarity is empty", ErrCorrupt, len(titles))
	}

	return features, sim, titles, nil
}

// Erase removes all cache artifacts. Missing blobs are fine.
func (s *Store) Erase() error {
	for _, name := range []string{titlesBlob, featuresBlob, similarityBlob} {
		if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// matrixBlob is the gob wire form of a dense matrix. A Rows of zero
// round-trips a nil matrix (the empty-corpus case).
type matrixBlob struct {
	Rows, Cols int
	Data       []float64
}

func toBlob(m *mat.Dense) matrixBlob {
	if m == nil {
		return matrixBlob{}
	}
	r, c := m.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		data = append(data, m.RawRowView(i)...)
	}
	return matrixBlob{Rows: r, Cols: c, Data: data}
}

func fromBlob(b matrixBlob) (*mat.Dense, error) {
	if b.Rows == 0 {
		return nil, nil
	}
	if len(b.Data) != b.Rows*b.Cols {
		return nil, fmt.Errorf("blob claims %dx%d but holds %d values", b.Rows, b.Cols, len(b.Data))
	}
	return mat.NewDense(b.Rows, b.Cols, b.Data), nil
}

func writeGob(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(v)
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(v)
}
