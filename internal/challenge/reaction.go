package challenge

import (
	"context"
	"fmt"

	"qubench/internal/chem"
	"qubench/internal/harness"
	"qubench/internal/model"
)

// ReactionEnergy estimates the energetics of H2 + Li2 -> 2 LiH from
// Hartree-Fock potential energy surfaces. With no input it returns
// [E_reactants, E_activation, E_products]; given [symbols, bond_lengths]
// it returns the surface for that diatomic. This exercise ships no
// authored cases: the reference computation defines the expected values.
type ReactionEnergy struct{}

func (ReactionEnergy) Name() string { return "reaction-energy" }

func (ReactionEnergy) Description() string {
	return "Hartree-Fock potential energy surfaces for the lithium hydride reaction"
}

func (ReactionEnergy) Cases() []model.TestCase { return nil }

func (ReactionEnergy) Tolerance() model.Tolerance {
	return model.Tolerance{Rtol: 1e-3, Atol: 1e-8}
}

func (ReactionEnergy) Evaluate(ctx context.Context, input harness.Value) (harness.Value, []string, error) {
	if input == nil {
		vec, err := chem.Reaction(ctx)
		if err != nil {
			return nil, nil, err
		}
		return harness.FromFloats(vec), nil, nil
	}

	seq, ok := input.([]harness.Value)
	if !ok || len(seq) != 2 {
		return nil, nil, fmt.Errorf("expected no input or [symbols, bond_lengths]")
	}
	symbols, err := harness.AsStrings(seq[0])
	if err != nil {
		return nil, nil, err
	}
	bondLengths, err := harness.AsFloats(seq[1])
	if err != nil {
		return nil, nil, err
	}
	surface, err := chem.PotentialEnergySurface(ctx, symbols, bondLengths)
	if err != nil {
		return nil, nil, err
	}
	return harness.FromFloats(surface), nil, nil
}
