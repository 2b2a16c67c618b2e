// Package challenge registers the exercises the harness can run. Each
// challenge follows the same shape: authored public test cases, a
// tolerance, and an evaluator built on the statevector simulator or the
// Hartree-Fock solver.
package challenge

import (
	"sort"

	"qubench/internal/harness"
)

var registry = []harness.Challenge{
	ExpvalRotation{},
	TensorObservable{},
	Trotterization{},
	ParameterShift{},
	ReactionEnergy{},
}

// All returns the registered challenges sorted by name.
func All() []harness.Challenge {
	out := append([]harness.Challenge(nil), registry...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Lookup finds a challenge by name.
func Lookup(name string) (harness.Challenge, bool) {
	for _, ch := range registry {
		if ch.Name() == name {
			return ch, true
		}
	}
	return nil, false
}
