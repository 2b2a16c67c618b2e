package sim

// Pauli identifies a single-wire Pauli operator.
type Pauli int

const (
	PauliI Pauli = iota
	PauliX
	PauliY
	PauliZ
)

func (p Pauli) String() string {
	switch p {
	case PauliX:
		return "X"
	case PauliY:
		return "Y"
	case PauliZ:
		return "Z"
	default:
		return "I"
	}
}

// PauliWord is a tensor product of Pauli operators keyed by wire; wires not
// present act as identity.
type PauliWord map[int]Pauli

// Term is one weighted Pauli word of a Hamiltonian.
type Term struct {
	Coeff float64
	Word  PauliWord
}

// Hamiltonian is a linear combination of Pauli words.
type Hamiltonian []Term

// applyWord computes P|psi> into a fresh state. Every Pauli word maps each
// basis state to exactly one basis state with a phase, so this is a single
// pass over the amplitudes.
func applyWord(s *StateVector, w PauliWord) *StateVector {
	flip := 0
	for wire, p := range w {
		if p == PauliX || p == PauliY {
			flip |= s.mask(wire)
		}
	}

	out := &StateVector{amps: make([]complex128, len(s.amps)), wires: s.wires}
	for i, a := range s.amps {
		phase := complex128(1)
		for wire, p := range w {
			bit := s.mask(wire)
			switch p {
			case PauliY:
				if i&bit == 0 {
					phase *= 1i
				} else {
					phase *= -1i
				}
			case PauliZ:
				if i&bit != 0 {
					phase = -phase
				}
			}
		}
		out.amps[i^flip] += phase * a
	}
	return out
}

// expval computes <psi|P|psi>, which is real for Hermitian P.
func expval(s *StateVector, w PauliWord) float64 {
	applied := applyWord(s, w)
	var acc complex128
	for i, a := range s.amps {
		acc += complex(real(a), -imag(a)) * applied.amps[i]
	}
	return real(acc)
}
