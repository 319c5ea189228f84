package similarity

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const tolerance = 1e-9

func TestCosineShapeAndDiagonal(t *testing.T) {
	features := mat.NewDense(3, 4, []float64{
		1, 2, 3, 4,
		-1, 0.5, 2, 8,
		0.1, 0.1, 0.1, 0.1,
	})

	sim := Cosine(features)
	r, c := sim.Dims()
	if r != 3 || c != 3 {
		t.Fatalf("Cosine dims = %dx%d, want 3x3", r, c)
	}

	for i := 0; i < r; i++ {
		if d := sim.At(i, i); math.Abs(d-1) > tolerance {
			t.Errorf("diagonal (%d,%d) = %v, want 1.0", i, i, d)
		}
		for j := 0; j < c; j++ {
			if sim.At(i, j) != sim.At(j, i) {
				t.Errorf("asymmetric at (%d,%d): %v vs %v", i, j, sim.At(i, j), sim.At(j, i))
			}
		}
	}
}

func TestCosineIdenticalAndOpposite(t *testing.T) {
	features := mat.NewDense(3, 3, []float64{
		2, -1, 0.5,
		2, -1, 0.5,
		-2, 1, -0.5,
	})

	sim := Cosine(features)
	if got := sim.At(0, 1); math.Abs(got-1) > tolerance {
		t.Errorf("identical rows similarity = %v, want 1.0", got)
	}
	if got := sim.At(0, 2); math.Abs(got+1) > tolerance {
		t.Errorf("opposite rows similarity = %v, want -1.0", got)
	}
}

func TestCosineOrthogonal(t *testing.T) {
	features := mat.NewDense(2, 2, []float64{
		1, 0,
		0, 1,
	})

	sim := Cosine(features)
	if got := sim.At(0, 1); math.Abs(got) > tolerance {
		t.Errorf("orthogonal rows similarity = %v, want 0", got)
	}
}

func TestCosineKnownValue(t *testing.T) {
	// the 4-track scenario: two identical tracks, one orthogonal, one close
	features := mat.NewDense(4, 2, []float64{
		1, 0,
		1, 0,
		0, 1,
		0.9, 0.1,
	})

	sim := Cosine(features)
	want := 0.9 / math.Sqrt(0.9*0.9+0.1*0.1)
	if got := sim.At(0, 3); math.Abs(got-want) > tolerance {
		t.Errorf("sim(0,3) = %v, want %v", got, want)
	}
	if got := sim.At(0, 2); math.Abs(got) > tolerance {
		t.Errorf("sim(0,2) = %v, want 0", got)
	}
	if got := sim.At(0, 1); math.Abs(got-1) > tolerance {
		t.Errorf("sim(0,1) = %v, want 1", got)
	}
}

func TestCosineDegenerateSizes(t *testing.T) {
	if got := Cosine(nil); got != nil {
		t.Errorf("Cosine(nil) = %v, want nil", got)
	}

	single := mat.NewDense(1, 3, []float64{1, 2, 3})
	sim := Cosine(single)
	r, c := sim.Dims()
	if r != 1 || c != 1 {
		t.Fatalf("1-row input gave %dx%d, want 1x1", r, c)
	}
	if math.Abs(sim.At(0, 0)-1) > tolerance {
		t.Errorf("single-row diagonal = %v, want 1.0", sim.At(0, 0))
	}
}

func TestCosineZeroNormGuard(t *testing.T) {
	// zero rows are filtered upstream, but a residual one must not
	// produce NaN
	features := mat.NewDense(2, 2, []float64{
		0, 0,
		1, 1,
	})

	sim := Cosine(features)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.IsNaN(sim.At(i, j)) {
				t.Fatalf("NaN at (%d,%d)", i, j)
			}
		}
	}
	if got := sim.At(0, 1); got != 0 {
		t.Errorf("zero-norm row similarity = %v, want 0", got)
	}
	if got := sim.At(0, 0); got != 0 {
		t.Errorf("zero-norm row self-similarity = %v, want 0", got)
	}
}
