package sim

import "math"

// Expectation evaluates a parameterized circuit at the given parameter
// vector and returns a scalar expectation value.
type Expectation func(params []float64) (float64, error)

// ParamShift computes the gradient of f at params using the two-sided
// parameter-shift rule with shifts of pi/2, which is exact for expectation
// values of circuits whose parameters enter through RX/RY/RZ-style
// rotations. f is never called with the original slice; shifts operate on
// a copy.
func ParamShift(f Expectation, params []float64) ([]float64, error) {
	grad := make([]float64, len(params))
	shifted := make([]float64, len(params))
	for i := range params {
		copy(shifted, params)

		shifted[i] = params[i] + math.Pi/2
		plus, err := f(shifted)
		if err != nil {
			return nil, err
		}

		shifted[i] = params[i] - math.Pi/2
		minus, err := f(shifted)
		if err != nil {
			return nil, err
		}

		grad[i] = (plus - minus) / 2
	}
	return grad, nil
}
