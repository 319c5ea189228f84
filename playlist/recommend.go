package playlist

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"song-recommender/utils"
)

// ErrInvalidQuery marks a recommendation request that cannot be served:
// an out-of-range query index or an empty similarity matrix.
var ErrInvalidQuery = errors.New("invalid recommendation query")

// DedupePolicy controls how duplicate playlist entries are removed.
type DedupePolicy int

const (
	// DedupeByName drops later candidates whose display name was already
	// emitted. Two different tracks sharing a base filename collapse to
	// one entry; this matches the historical behavior and is the default.
	DedupeByName DedupePolicy = iota

	// DedupeByIndex keeps every distinct track even when display names
	// collide.
	DedupeByIndex
)

// ParseDedupePolicy maps a config string to its policy, defaulting to
// DedupeByName.
func ParseDedupePolicy(s string) DedupePolicy {
	if s == "index" {
		return DedupeByIndex
	}
	return DedupeByName
}

// Recommend ranks the similarity row of queryIndex and returns up to
// count display names, best first. The query track itself is always
// excluded. Ties are broken by ascending index so two calls with the
// same inputs produce the same ordering. Deduplication preserves
// first-seen order and may shrink the result below count; freed slots
// are not backfilled.
func Recommend(queryIndex int, sim *mat.Dense, titles map[int]string, count int, policy DedupePolicy) ([]string, error) {
	if sim == nil {
		return nil, fmt.Errorf("%w: similarity matrix is empty", ErrInvalidQuery)
	}
	r, _ := sim.Dims()
	if r == 0 {
		return nil, fmt.Errorf("%w: similarity matrix is empty", ErrInvalidQuery)
	}
	if queryIndex < 0 || queryIndex >= r {
		return nil, fmt.Errorf("%w: index %d outside [0, %d)", ErrInvalidQuery, queryIndex, r)
	}

	row := mat.Row(nil, queryIndex, sim)

	order := make([]int, r)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if row[order[a]] != row[order[b]] {
			return row[order[a]] > row[order[b]]
		}
		return order[a] < order[b]
	})

	seen := make(map[string]bool, count)
	playlist := make([]string, 0, count)
	ranked := 0
	for _, idx := range order {
		if idx == queryIndex {
			// self-similarity is maximal and uninformative
			continue
		}
		if ranked >= count {
			break
		}
		ranked++

		name := utils.BaseName(titles[idx])
		if policy == DedupeByName {
			if seen[name] {
				continue
			}
			seen[name] = true
		}
		playlist = append(playlist, name)
	}

	return playlist, nil
}
