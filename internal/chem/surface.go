package chem

import (
	"context"
	"fmt"
)

// PotentialEnergySurface computes the Hartree-Fock energy of a diatomic
// molecule at each bond length (Bohr), placing the atoms on the z axis.
func PotentialEnergySurface(ctx context.Context, symbols []string, bondLengths []float64) ([]float64, error) {
	if len(symbols) != 2 {
		return nil, fmt.Errorf("potential energy surface needs a diatomic, got %d atoms", len(symbols))
	}
	if len(bondLengths) == 0 {
		return nil, fmt.Errorf("no bond lengths given")
	}
	energies := make([]float64, len(bondLengths))
	for i, r := range bondLengths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r <= 0 {
			return nil, fmt.Errorf("bond length must be positive, got %v", r)
		}
		mol := Molecule{Atoms: []Atom{
			{Symbol: symbols[0], Coords: [3]float64{0, 0, 0}},
			{Symbol: symbols[1], Coords: [3]float64{0, 0, r}},
		}}
		res, err := RHF(mol)
		if err != nil {
			return nil, fmt.Errorf("%s-%s at %v bohr: %w", symbols[0], symbols[1], r, err)
		}
		energies[i] = res.Energy
	}
	return energies, nil
}

// GroundEnergy returns the minimum of a potential energy surface.
func GroundEnergy(energies []float64) (float64, error) {
	if len(energies) == 0 {
		return 0, fmt.Errorf("empty surface")
	}
	min := energies[0]
	for _, e := range energies[1:] {
		if e < min {
			min = e
		}
	}
	return min, nil
}

// speciesScan describes the bond-length grid scanned for one diatomic in
// the lithium hydride reaction.
type speciesScan struct {
	symbols []string
	from    float64
	to      float64
	step    float64
}

var reactionSpecies = map[string]speciesScan{
	"H2":  {symbols: []string{"H", "H"}, from: 0.5, to: 9.3, step: 0.3},
	"Li2": {symbols: []string{"Li", "Li"}, from: 3.5, to: 8.3, step: 0.3},
	"LiH": {symbols: []string{"Li", "H"}, from: 2.0, to: 6.6, step: 0.3},
}

// arange mirrors the half-open grid the scans are defined with.
func arange(from, to, step float64) []float64 {
	var out []float64
	for x := from; x < to; x += step {
		out = append(out, x)
	}
	return out
}

// Reaction computes [E_reactants, E_activation, E_products] in Hartree for
// H2 + Li2 -> 2 LiH. The activation energy is estimated as the energy of
// fully dissociated reactants: reactant ground energies plus both
// dissociation energies.
func Reaction(ctx context.Context) ([]float64, error) {
	type scanResult struct {
		ground       float64
		dissociation float64
	}
	results := make(map[string]scanResult, len(reactionSpecies))
	for name, scan := range reactionSpecies {
		surface, err := PotentialEnergySurface(ctx, scan.symbols, arange(scan.from, scan.to, scan.step))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		ground, err := GroundEnergy(surface)
		if err != nil {
			return nil, err
		}
		dissociation := surface[len(surface)-1] - ground
		if dissociation < 0 {
			dissociation = -dissociation
		}
		results[name] = scanResult{ground: ground, dissociation: dissociation}
	}

	reactants := results["H2"].ground + results["Li2"].ground
	activation := reactants + results["H2"].dissociation + results["Li2"].dissociation
	products := 2 * results["LiH"].ground
	return []float64{reactants, activation, products}, nil
}
