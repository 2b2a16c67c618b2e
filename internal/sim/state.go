package sim

import (
	"math"
	"math/cmplx"
)

// StateVector holds the amplitudes of a pure n-wire state. Basis-state
// indices follow the convention used by the challenge vectors: wire 0 is
// the most significant bit of the index.
type StateVector struct {
	amps  []complex128
	wires int
}

// NewStateVector prepares |0...0> on the given number of wires.
func NewStateVector(wires int) *StateVector {
	amps := make([]complex128, 1<<wires)
	amps[0] = 1
	return &StateVector{amps: amps, wires: wires}
}

func (s *StateVector) Wires() int { return s.wires }

// Clone returns an independent copy of the state.
func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.amps))
	copy(amps, s.amps)
	return &StateVector{amps: amps, wires: s.wires}
}

// Amplitudes exposes the raw amplitude slice; callers must not mutate it.
func (s *StateVector) Amplitudes() []complex128 { return s.amps }

// mask returns the index bit corresponding to a wire.
func (s *StateVector) mask(wire int) int {
	return 1 << (s.wires - 1 - wire)
}

// applySingle applies a 2x2 matrix {{m00,m01},{m10,m11}} to one wire.
func (s *StateVector) applySingle(wire int, m00, m01, m10, m11 complex128) {
	bit := s.mask(wire)
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.amps[i], s.amps[j]
			s.amps[i] = m00*a0 + m01*a1
			s.amps[j] = m10*a0 + m11*a1
		}
	}
}

func (s *StateVector) hadamard(wire int) {
	h := complex(1/math.Sqrt2, 0)
	s.applySingle(wire, h, h, h, -h)
}

func (s *StateVector) pauliX(wire int) {
	s.applySingle(wire, 0, 1, 1, 0)
}

func (s *StateVector) pauliY(wire int) {
	s.applySingle(wire, 0, -1i, 1i, 0)
}

func (s *StateVector) pauliZ(wire int) {
	bit := s.mask(wire)
	for i := range s.amps {
		if i&bit != 0 {
			s.amps[i] = -s.amps[i]
		}
	}
}

func (s *StateVector) rx(wire int, theta float64) {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	s.applySingle(wire, c, js, js, c)
}

func (s *StateVector) ry(wire int, theta float64) {
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	s.applySingle(wire, c, -sn, sn, c)
}

func (s *StateVector) rz(wire int, theta float64) {
	phase := cmplx.Exp(complex(0, theta/2))
	bit := s.mask(wire)
	for i := range s.amps {
		if i&bit != 0 {
			s.amps[i] *= phase
		} else {
			s.amps[i] *= cmplx.Conj(phase)
		}
	}
}

func (s *StateVector) cnot(control, target int) {
	cBit := s.mask(control)
	tBit := s.mask(target)
	for i := range s.amps {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

func (s *StateVector) cz(control, target int) {
	cBit := s.mask(control)
	tBit := s.mask(target)
	for i := range s.amps {
		if i&cBit != 0 && i&tBit != 0 {
			s.amps[i] = -s.amps[i]
		}
	}
}

// isingXX applies exp(-i phi/2 XX), which couples the pair of basis
// states whose bits on both wires differ.
func (s *StateVector) isingXX(wireA, wireB int, phi float64) {
	aBit := s.mask(wireA)
	bBit := s.mask(wireB)
	both := aBit | bBit
	c := complex(math.Cos(phi/2), 0)
	js := complex(0, -math.Sin(phi/2))
	for i := range s.amps {
		if i&aBit == 0 {
			j := i ^ both
			a0, a1 := s.amps[i], s.amps[j]
			s.amps[i] = c*a0 + js*a1
			s.amps[j] = js*a0 + c*a1
		}
	}
}

// isingZZ applies exp(-i phi/2 ZZ): a phase on each basis state by the
// parity of the two wire bits.
func (s *StateVector) isingZZ(wireA, wireB int, phi float64) {
	aBit := s.mask(wireA)
	bBit := s.mask(wireB)
	minus := cmplx.Exp(complex(0, -phi/2))
	plus := cmplx.Exp(complex(0, phi/2))
	for i := range s.amps {
		if (i&aBit != 0) == (i&bBit != 0) {
			s.amps[i] *= minus
		} else {
			s.amps[i] *= plus
		}
	}
}

// applyMatrix applies a 2^k x 2^k matrix (row-major) to k wires.
func (s *StateVector) applyMatrix(wires []int, m []complex128) {
	k := len(wires)
	dim := 1 << k
	masks := make([]int, k)
	all := 0
	for i, w := range wires {
		masks[i] = s.mask(w)
		all |= masks[i]
	}

	sub := make([]complex128, dim)
	out := make([]complex128, dim)
	for base := range s.amps {
		if base&all != 0 {
			continue
		}
		for r := 0; r < dim; r++ {
			idx := base
			for b := 0; b < k; b++ {
				if r&(1<<(k-1-b)) != 0 {
					idx |= masks[b]
				}
			}
			sub[r] = s.amps[idx]
		}
		for r := 0; r < dim; r++ {
			var acc complex128
			for c := 0; c < dim; c++ {
				acc += m[r*dim+c] * sub[c]
			}
			out[r] = acc
		}
		for r := 0; r < dim; r++ {
			idx := base
			for b := 0; b < k; b++ {
				if r&(1<<(k-1-b)) != 0 {
					idx |= masks[b]
				}
			}
			s.amps[idx] = out[r]
		}
	}
}

// probs returns |amp|^2 for every basis state.
func (s *StateVector) probs() []float64 {
	out := make([]float64, len(s.amps))
	for i, a := range s.amps {
		out[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return out
}

// finite reports whether every amplitude is a finite number.
func (s *StateVector) finite() bool {
	for _, a := range s.amps {
		if math.IsNaN(real(a)) || math.IsNaN(imag(a)) ||
			math.IsInf(real(a), 0) || math.IsInf(imag(a), 0) {
			return false
		}
	}
	return true
}
