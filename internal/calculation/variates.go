package calculation

import (
	"math"
	"math/rand/v2"
)

// minUniform keeps ln(u1) finite in the Box-Muller transform.
const minUniform = 1e-300

// NormalSource produces standard normal draws for one scenario.
type NormalSource interface {
	Normal() float64
}

// VariateSource is a seeded generator owned by exactly one scenario. Streams
// are keyed by (run seed, scenario index) so the execution strategy does not
// change the draws a scenario sees.
type VariateSource struct {
	rng *rand.Rand
}

// NewVariateSource returns the stream for scenario index within the run.
func NewVariateSource(runSeed uint64, index int) *VariateSource {
	return &VariateSource{rng: rand.New(rand.NewPCG(runSeed, uint64(index)))}
}

// Uniform returns a draw in (0,1].
func (v *VariateSource) Uniform() float64 {
	return 1 - v.rng.Float64()
}

// Normal returns a standard normal draw.
func (v *VariateSource) Normal() float64 {
	u1 := v.Uniform()
	if u1 < minUniform {
		u1 = minUniform
	}
	return boxMullerTransform(u1, v.Uniform())
}

// boxMullerTransform converts two uniforms into one standard normal.
func boxMullerTransform(u1, u2 float64) float64 {
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// zeroSource is the deterministic case: every draw is the mean.
type zeroSource struct{}

func (zeroSource) Normal() float64 { return 0 }
