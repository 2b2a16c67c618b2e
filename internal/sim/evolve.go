package sim

import (
	"math"
	"math/cmplx"
)

// QubitUnitary applies an arbitrary unitary matrix (row-major, dimension
// 2^len(wires)) to the given wires. The matrix is checked for unitarity so
// a malformed gate surfaces as a runtime fault instead of silently
// denormalizing the state.
func (c *Circuit) QubitUnitary(m []complex128, wires ...int) {
	if !c.checkWires("QubitUnitary", wires...) {
		return
	}
	dim := 1 << len(wires)
	if len(m) != dim*dim {
		c.err = runtimeErrf("QubitUnitary", "matrix size %d does not match %d wires", len(m), len(wires))
		return
	}
	if !isUnitary(m, dim) {
		c.err = runtimeErrf("QubitUnitary", "matrix is not unitary")
		return
	}
	c.record("QubitUnitary", wires, nil)
	c.state.applyMatrix(wires, m)
}

// ApproxTimeEvolution applies first-order Trotterized evolution under h for
// the given time, in n steps. This is the built-in shortcut some challenges
// forbid; it records a single trace entry rather than its constituent
// rotations.
func (c *Circuit) ApproxTimeEvolution(h Hamiltonian, t float64, n int) {
	if c.err != nil {
		return
	}
	if n < 1 {
		c.err = runtimeErrf("ApproxTimeEvolution", "steps must be positive, got %d", n)
		return
	}
	if !c.checkAngle("ApproxTimeEvolution", t) || !c.checkHamiltonian("ApproxTimeEvolution", h) {
		return
	}
	c.record("ApproxTimeEvolution", nil, []float64{t, float64(n)})
	c.trotterStep(h, t, n)
}

// Evolve applies time evolution under h, refining the step count until the
// discretization is far below the comparison tolerances used by the
// challenges. Like ApproxTimeEvolution it is a single opaque trace entry.
func (c *Circuit) Evolve(h Hamiltonian, t float64) {
	if c.err != nil {
		return
	}
	if !c.checkAngle("Evolve", t) || !c.checkHamiltonian("Evolve", h) {
		return
	}
	var weight float64
	for _, term := range h {
		weight += math.Abs(term.Coeff)
	}
	steps := 1 + int(256*math.Abs(t)*weight)
	c.record("Evolve", nil, []float64{t})
	c.trotterStep(h, t, steps)
}

// trotterStep applies n first-order steps of exp(-i h t). Each Pauli-word
// exponential uses exp(-i theta P) = cos(theta) I - i sin(theta) P.
func (c *Circuit) trotterStep(h Hamiltonian, t float64, n int) {
	dt := t / float64(n)
	for step := 0; step < n; step++ {
		for _, term := range h {
			theta := term.Coeff * dt
			applied := applyWord(c.state, term.Word)
			cos := complex(math.Cos(theta), 0)
			isin := complex(0, math.Sin(theta))
			for i := range c.state.amps {
				c.state.amps[i] = cos*c.state.amps[i] - isin*applied.amps[i]
			}
		}
	}
}

func (c *Circuit) checkHamiltonian(op string, h Hamiltonian) bool {
	if len(h) == 0 {
		c.err = runtimeErrf(op, "empty hamiltonian")
		return false
	}
	for _, term := range h {
		if !isFinite(term.Coeff) {
			c.err = runtimeErrf(op, "non-finite coefficient %v", term.Coeff)
			return false
		}
		for wire := range term.Word {
			if wire < 0 || wire >= c.dev.wires {
				c.err = runtimeErrf(op, "hamiltonian wire %d out of range [0,%d)", wire, c.dev.wires)
				return false
			}
		}
	}
	return true
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// isUnitary checks U U^dagger = I within a small tolerance.
func isUnitary(m []complex128, dim int) bool {
	const tol = 1e-8
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			var acc complex128
			for k := 0; k < dim; k++ {
				acc += m[r*dim+k] * cmplx.Conj(m[c*dim+k])
			}
			want := complex128(0)
			if r == c {
				want = 1
			}
			if cmplx.Abs(acc-want) > tol {
				return false
			}
		}
	}
	return true
}
