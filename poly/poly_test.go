package poly

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Construction Tests
// =============================================================================

func TestNewDegreeMatchesLength(t *testing.T) {
	tests := []struct {
		name         string
		coefficients []float64
		wantDegree   int
	}{
		{"constant", []float64{5}, 0},
		{"linear", []float64{2, 1}, 1},
		{"quadratic", []float64{3, -16, 12}, 2},
		{"cubic", []float64{1, -8, 12, 3}, 3},
		{"leading zero counts", []float64{0, 0, 7}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.coefficients...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDegree, p.Degree())
			assert.Len(t, p.Coefficients(), tt.wantDegree+1)
		})
	}
}

func TestNewEmptyYieldsCanonicalZero(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, 0, p.Degree())
	assert.Equal(t, []float64{0}, p.Coefficients())
	assert.True(t, p.IsZero())
	assert.True(t, p.Equal(Zero()))
}

func TestNewRejectsNaN(t *testing.T) {
	_, err := New(1, math.NaN(), 3)
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))

	var argErr *InvalidArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, 1, argErr.Index)
	assert.Equal(t, "NaN", argErr.Value)
	assert.Contains(t, argErr.Message, "finite")
}

func TestNewRejectsInfinity(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		wantValue string
	}{
		{"positive infinity", math.Inf(1), "+Inf"},
		{"negative infinity", math.Inf(-1), "-Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.value)
			require.Error(t, err)

			var argErr *InvalidArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, 0, argErr.Index)
			assert.Equal(t, tt.wantValue, argErr.Value)
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	input := []float64{1, 2, 3}
	p, err := New(input...)
	require.NoError(t, err)

	input[0] = 99
	assert.Equal(t, []float64{1, 2, 3}, p.Coefficients())
}

func TestMustNewValid(t *testing.T) {
	p := MustNew(1, -8, 12, 3)
	assert.Equal(t, 3, p.Degree())
}

func TestMustNewPanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(1, math.NaN())
	})
}

func TestZero(t *testing.T) {
	z := Zero()

	assert.Equal(t, 0, z.Degree())
	assert.Equal(t, []float64{0}, z.Coefficients())
	assert.True(t, z.IsZero())
	assert.Equal(t, "", z.String())
}

// =============================================================================
// Accessor Tests
// =============================================================================

func TestCoefficientsReturnsCopy(t *testing.T) {
	p := MustNew(1, 2, 3)

	coeffs := p.Coefficients()
	coeffs[0] = 99

	assert.Equal(t, []float64{1, 2, 3}, p.Coefficients())
}

func TestCoefficientByPower(t *testing.T) {
	// x³ - 8x² + 12x + 3
	p := MustNew(1, -8, 12, 3)

	assert.Equal(t, 3.0, p.Coefficient(0))
	assert.Equal(t, 12.0, p.Coefficient(1))
	assert.Equal(t, -8.0, p.Coefficient(2))
	assert.Equal(t, 1.0, p.Coefficient(3))
}

func TestCoefficientOutOfRange(t *testing.T) {
	p := MustNew(2, 1)

	assert.Equal(t, 0.0, p.Coefficient(-1))
	assert.Equal(t, 0.0, p.Coefficient(2))
	assert.Equal(t, 0.0, p.Coefficient(100))
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name         string
		coefficients []float64
		want         bool
	}{
		{"single zero", []float64{0}, true},
		{"all zeros", []float64{0, 0, 0}, true},
		{"nonzero constant", []float64{5}, false},
		{"nonzero leading", []float64{1, 0, 0}, false},
		{"nonzero middle", []float64{0, 3, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MustNew(tt.coefficients...)
			assert.Equal(t, tt.want, p.IsZero())
		})
	}
}

func TestEqual(t *testing.T) {
	p := MustNew(1, -8, 12, 3)

	assert.True(t, p.Equal(MustNew(1, -8, 12, 3)))
	assert.False(t, p.Equal(MustNew(1, -8, 12, 4)))
	assert.False(t, p.Equal(MustNew(-8, 12, 3)))
}

func TestEqualDistinguishesDegree(t *testing.T) {
	// Same underlying values, but the padded form carries a higher degree.
	plain := MustNew(5)
	padded := MustNew(0, 5)

	assert.False(t, plain.Equal(padded))
	assert.False(t, padded.Equal(plain))
}

// =============================================================================
// Evaluation Tests
// =============================================================================

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name         string
		coefficients []float64
		x            float64
		want         float64
	}{
		{"cubic at 4", []float64{1, -8, 12, 3}, 4, -13},
		{"cubic at 0", []float64{1, -8, 12, 3}, 0, 3},
		{"cubic at 1", []float64{1, -8, 12, 3}, 1, 8},
		{"cubic at -1", []float64{1, -8, 12, 3}, -1, -18},
		{"constant ignores x", []float64{7}, 123456, 7},
		{"linear", []float64{2, 1}, 3, 7},
		{"zero polynomial", []float64{0}, 42, 0},
		{"fractional coefficients", []float64{0.5, 0.25}, 2, 1.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MustNew(tt.coefficients...)
			assert.Equal(t, tt.want, p.Evaluate(tt.x))
		})
	}
}

func TestEvaluateAtZeroKeepsConstant(t *testing.T) {
	// x^0 is 1 even at x == 0, so only the constant term survives.
	p := MustNew(9, -4, 6)
	assert.Equal(t, 6.0, p.Evaluate(0))
}

func TestEvaluateNaNPropagates(t *testing.T) {
	p := MustNew(1, 2, 3)
	assert.True(t, math.IsNaN(p.Evaluate(math.NaN())))
}

func TestEvaluateOverflowPropagates(t *testing.T) {
	p := MustNew(math.MaxFloat64, 0)
	assert.True(t, math.IsInf(p.Evaluate(math.MaxFloat64), 1))
}

func TestEvaluateNonFiniteInput(t *testing.T) {
	p := MustNew(1, 2, 3)

	// All terms agree in sign at +Inf.
	assert.True(t, math.IsInf(p.Evaluate(math.Inf(1)), 1))

	// At -Inf the even and odd powers disagree, and Inf + (-Inf) is NaN.
	assert.True(t, math.IsNaN(p.Evaluate(math.Inf(-1))))
}
