package belief

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var ErrDimension = errors.New("likelihood vector length differs from belief length")

// DefaultThreshold is the belief a hypothesis needs before exploration
// stops early.
const DefaultThreshold = 0.95

// Update multiplies prior by lik element-wise and renormalises. When the
// product sums to zero (or is not a number) the evidence cannot tell the
// remaining hypotheses apart: the prior is returned unchanged along with
// false.
func Update(prior, lik []float64) ([]float64, bool) {
	if len(prior) != len(lik) {
		return prior, false
	}
	post := make([]float64, len(prior))
	floats.MulTo(post, prior, lik)
	sum := floats.Sum(post)
	if !(sum > 0) || math.IsInf(sum, 0) {
		return prior, false
	}
	floats.Scale(1/sum, post)
	return post, true
}

// Belief is the running distribution over room hypotheses of one episode.
type Belief struct {
	p         []float64
	threshold float64
	updates   int
	rejected  int
}

// New starts from the uniform distribution over n hypotheses.
func New(n int, threshold float64) *Belief {
	p := make([]float64, n)
	for i := range p {
		p[i] = 1 / float64(n)
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Belief{p: p, threshold: threshold}
}

// Observe folds one likelihood vector into the belief. It reports whether
// the belief changed; a degenerate update is absorbed.
func (b *Belief) Observe(lik []float64) (bool, error) {
	if len(lik) != len(b.p) {
		return false, fmt.Errorf("%w: got %d, want %d", ErrDimension, len(lik), len(b.p))
	}
	post, ok := Update(b.p, lik)
	if !ok {
		b.rejected++
		return false, nil
	}
	b.p = post
	b.updates++
	return true, nil
}

// Decision returns the most probable hypothesis once it reaches the
// threshold.
func (b *Belief) Decision() (int, bool) {
	best := b.Best()
	return best, b.p[best] >= b.threshold
}

// Best is the argmax, lowest index first on ties.
func (b *Belief) Best() int {
	return floats.MaxIdx(b.p)
}

// Probabilities returns a copy of the current distribution.
func (b *Belief) Probabilities() []float64 {
	return append([]float64(nil), b.p...)
}

func (b *Belief) Threshold() float64 {
	return b.threshold
}

// Updates counts accepted updates, Rejected the absorbed ones.
func (b *Belief) Updates() int {
	return b.updates
}

func (b *Belief) Rejected() int {
	return b.rejected
}
