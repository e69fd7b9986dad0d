package stat

import "fmt"

const (
	// MinSubgroupSize and MaxSubgroupSize bound the subgroup sizes covered by the factor table
	MinSubgroupSize = 2
	MaxSubgroupSize = 10

	// d2 for individual observations (moving ranges of two points)
	d2 = 1.128
)

// Factors are the control chart constants for a subgroup of size n
type Factors struct {
	A2 float64
	A3 float64
	B3 float64
	B4 float64
	B5 float64
	B6 float64
	D3 float64
	D4 float64
	C4 float64
}

var factors = map[int]Factors{
	2:  {A2: 1.880, A3: 2.659, B3: 0, B4: 3.267, B5: 0, B6: 2.606, D3: 0, D4: 3.267, C4: 0.7979},
	3:  {A2: 1.023, A3: 1.954, B3: 0, B4: 2.568, B5: 0, B6: 2.276, D3: 0, D4: 2.575, C4: 0.8862},
	4:  {A2: 0.729, A3: 1.628, B3: 0, B4: 2.266, B5: 0, B6: 2.088, D3: 0, D4: 2.282, C4: 0.9213},
	5:  {A2: 0.577, A3: 1.427, B3: 0, B4: 2.089, B5: 0, B6: 1.964, D3: 0, D4: 2.115, C4: 0.9400},
	6:  {A2: 0.483, A3: 1.287, B3: 0.030, B4: 1.970, B5: 0.029, B6: 1.874, D3: 0, D4: 2.004, C4: 0.9515},
	7:  {A2: 0.419, A3: 1.182, B3: 0.118, B4: 1.882, B5: 0.113, B6: 1.806, D3: 0.076, D4: 1.924, C4: 0.9594},
	8:  {A2: 0.373, A3: 1.099, B3: 0.185, B4: 1.815, B5: 0.179, B6: 1.751, D3: 0.136, D4: 1.864, C4: 0.9650},
	9:  {A2: 0.337, A3: 1.032, B3: 0.239, B4: 1.761, B5: 0.232, B6: 1.707, D3: 0.184, D4: 1.816, C4: 0.9693},
	10: {A2: 0.308, A3: 0.975, B3: 0.284, B4: 1.716, B5: 0.276, B6: 1.669, D3: 0.223, D4: 1.777, C4: 0.9727},
}

// FactorsFor returns the chart constants for subgroup size n.  Sizes outside [2, 10] return
// ErrSubgroupSize.
func FactorsFor(n int) (Factors, error) {
	f, ok := factors[n]
	if !ok {
		return Factors{}, fmt.Errorf("%w: %d not in [%d, %d]", ErrSubgroupSize, n, MinSubgroupSize, MaxSubgroupSize)
	}
	return f, nil
}

// MustFactors is like FactorsFor but panics on an unsupported subgroup size
func MustFactors(n int) Factors {
	f, err := FactorsFor(n)
	if err != nil {
		panic(err)
	}
	return f
}
