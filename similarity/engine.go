package similarity

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Cosine computes the all-pairs cosine similarity matrix of the rows of
// features: cell (i,j) is dot(vi,vj)/(|vi|*|vj|). The result is square,
// symmetric, and has 1.0 on the diagonal for every non-zero row.
//
// Zero rows are filtered out before this stage, but a residual zero-norm
// row scores 0 against everything rather than producing NaN.
//
// A nil or empty input yields a nil matrix.
func Cosine(features *mat.Dense) *mat.Dense {
	if features == nil {
		return nil
	}
	r, _ := features.Dims()
	if r == 0 {
		return nil
	}

	norms := make([]float64, r)
	for i := 0; i < r; i++ {
		norms[i] = floats.Norm(features.RawRowView(i), 2)
	}

	sim := mat.NewDense(r, r, nil)
	for i := 0; i < r; i++ {
		if norms[i] > 0 {
			sim.Set(i, i, 1)
		}
		vi := features.RawRowView(i)
		for j := i + 1; j < r; j++ {
			var s float64
			if norms[i] > 0 && norms[j] > 0 {
				s = floats.Dot(vi, features.RawRowView(j)) / (norms[i] * norms[j])
			}
			sim.Set(i, j, s)
			sim.Set(j, i, s)
		}
	}

	return sim
}
