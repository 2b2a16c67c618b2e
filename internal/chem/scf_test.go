package chem

import (
	"math"
	"testing"
)

func TestRHFHydrogenMolecule(t *testing.T) {
	// STO-3G H2 at 1.4 Bohr: total energy -1.1167 Hartree (Szabo &
	// Ostlund, section 3.5.2).
	mol := Molecule{Atoms: []Atom{
		{Symbol: "H", Coords: [3]float64{0, 0, 0}},
		{Symbol: "H", Coords: [3]float64{0, 0, 1.4}},
	}}
	res, err := RHF(mol)
	if err != nil {
		t.Fatalf("rhf: %v", err)
	}
	if math.Abs(res.Energy-(-1.1167)) > 1e-2 {
		t.Fatalf("E = %v, want about -1.1167", res.Energy)
	}
	if res.Energy != res.Electronic+res.NuclearRepulsion {
		t.Fatalf("energy bookkeeping broken: %v != %v + %v",
			res.Energy, res.Electronic, res.NuclearRepulsion)
	}
	if math.Abs(res.NuclearRepulsion-1/1.4) > 1e-12 {
		t.Fatalf("E_nuc = %v, want %v", res.NuclearRepulsion, 1/1.4)
	}
	if res.Iterations < 2 || res.Iterations >= scfMaxSteps {
		t.Fatalf("iterations = %d", res.Iterations)
	}
}

func TestRHFHeliumAtom(t *testing.T) {
	// STO-3G He: about -2.8078 Hartree.
	mol := Molecule{Atoms: []Atom{{Symbol: "He"}}}
	res, err := RHF(mol)
	if err != nil {
		t.Fatalf("rhf: %v", err)
	}
	if math.Abs(res.Energy-(-2.8078)) > 1e-2 {
		t.Fatalf("E = %v, want about -2.8078", res.Energy)
	}
}

func TestRHFLithiumHydride(t *testing.T) {
	if testing.Short() {
		t.Skip("lithium integrals are slow")
	}
	// STO-3G LiH near equilibrium (3.0 Bohr): about -7.86 Hartree.
	mol := Molecule{Atoms: []Atom{
		{Symbol: "Li", Coords: [3]float64{0, 0, 0}},
		{Symbol: "H", Coords: [3]float64{0, 0, 3.0}},
	}}
	res, err := RHF(mol)
	if err != nil {
		t.Fatalf("rhf: %v", err)
	}
	if res.Energy < -8.2 || res.Energy > -7.5 {
		t.Fatalf("E = %v, want about -7.86", res.Energy)
	}
}

func TestRHFRejectsOpenShell(t *testing.T) {
	mol := Molecule{Atoms: []Atom{{Symbol: "H"}}}
	if _, err := RHF(mol); err == nil {
		t.Fatal("expected odd electron count to fail")
	}
}

func TestRHFRejectsUnknownElement(t *testing.T) {
	mol := Molecule{Atoms: []Atom{
		{Symbol: "Xx", Coords: [3]float64{0, 0, 0}},
		{Symbol: "H", Coords: [3]float64{0, 0, 1.4}},
	}}
	if _, err := RHF(mol); err == nil {
		t.Fatal("expected unknown element to fail")
	}
}
