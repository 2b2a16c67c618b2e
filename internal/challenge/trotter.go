package challenge

import (
	"context"
	"fmt"

	"qubench/internal/harness"
	"qubench/internal/model"
	"qubench/internal/sim"
)

// Trotterization evolves two qubits under H = alpha XX + beta ZZ for a
// given time using explicit IsingXX/IsingZZ steps, and returns the
// probabilities of every computational basis state. The built-in
// time-evolution shortcuts are off limits: the point of the exercise is
// writing the product formula by hand.
type Trotterization struct{}

func (Trotterization) Name() string { return "trotterization" }

func (Trotterization) Description() string {
	return "hand-written Trotter steps for H = alpha XX + beta ZZ, probability readout"
}

func (Trotterization) Cases() []model.TestCase {
	return []model.TestCase{
		{Input: "[0.5,0.8,0.2,1]", Expected: "[0.99003329, 0, 0, 0.00996671]"},
		{Input: "[0.9,1.0,0.4,2]", Expected: "[0.87590286, 0, 0, 0.12409714]"},
	}
}

func (Trotterization) Tolerance() model.Tolerance {
	return model.Tolerance{Rtol: 1e-4, Atol: 1e-8}
}

func (Trotterization) Evaluate(ctx context.Context, input harness.Value) (harness.Value, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	args, err := harness.AsFloats(input)
	if err != nil {
		return nil, nil, err
	}
	if len(args) != 4 {
		return nil, nil, fmt.Errorf("expected [alpha, beta, time, depth], got %d values", len(args))
	}
	alpha, beta, t := args[0], args[1], args[2]
	depth := int(args[3])
	if float64(depth) != args[3] || depth < 1 {
		return nil, nil, fmt.Errorf("depth must be a positive integer, got %v", args[3])
	}

	dev, err := sim.NewDevice(2)
	if err != nil {
		return nil, nil, err
	}
	c := dev.NewCircuit()
	xxAngle := 2 * alpha * t / float64(depth)
	zzAngle := 2 * beta * t / float64(depth)
	for i := 0; i < depth; i++ {
		c.IsingXX(xxAngle, 0, 1)
		c.IsingZZ(zzAngle, 0, 1)
	}
	probs, err := c.Probs()
	if err != nil {
		return nil, c.OperationNames(), err
	}
	return harness.FromFloats(probs), c.OperationNames(), nil
}

// CheckTrace rejects circuits that reached the right numbers through the
// built-in evolution ops instead of explicit Trotter steps.
func (Trotterization) CheckTrace(ops []string) error {
	for _, op := range ops {
		switch op {
		case "ApproxTimeEvolution", "Evolve":
			return fmt.Errorf("circuit uses the built-in time evolution %q", op)
		case "QubitUnitary":
			return fmt.Errorf("circuit uses a custom-built gate")
		}
	}
	return nil
}

// trotterHamiltonian is the evolution generator of this exercise, exposed
// for tests that exercise the forbidden shortcuts.
func trotterHamiltonian(alpha, beta float64) sim.Hamiltonian {
	return sim.Hamiltonian{
		{Coeff: alpha, Word: sim.PauliWord{0: sim.PauliX, 1: sim.PauliX}},
		{Coeff: beta, Word: sim.PauliWord{0: sim.PauliZ, 1: sim.PauliZ}},
	}
}
