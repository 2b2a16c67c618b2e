package chem

import (
	"math"
	"testing"
)

func TestBoysFunctionLimits(t *testing.T) {
	// F_n(0) = 1/(2n+1).
	for n := 0; n <= 4; n++ {
		got := boys(n, 0)
		want := 1 / float64(2*n+1)
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("F_%d(0) = %v, want %v", n, got, want)
		}
	}

	// F_0(x) = sqrt(pi/(4x)) erf(sqrt(x)).
	for _, x := range []float64{0.1, 1, 5, 20} {
		got := boys(0, x)
		want := 0.5 * math.Sqrt(math.Pi/x) * math.Erf(math.Sqrt(x))
		if math.Abs(got-want) > 1e-10 {
			t.Fatalf("F_0(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestBoysDownwardConsistency(t *testing.T) {
	// Recurrence F_{n}(x) = (2x F_{n+1}(x) + exp(-x)) / (2n+1).
	for _, x := range []float64{0.5, 2, 8} {
		for n := 0; n < 3; n++ {
			lhs := boys(n, x)
			rhs := (2*x*boys(n+1, x) + math.Exp(-x)) / float64(2*n+1)
			if math.Abs(lhs-rhs) > 1e-9 {
				t.Fatalf("recurrence broken at n=%d x=%v: %v vs %v", n, x, lhs, rhs)
			}
		}
	}
}

func TestContractedSelfOverlapIsUnit(t *testing.T) {
	mol := Molecule{Atoms: []Atom{
		{Symbol: "H", Coords: [3]float64{0, 0, 0}},
		{Symbol: "Li", Coords: [3]float64{0, 0, 3.0}},
	}}
	bfs, _, err := buildBasis(mol)
	if err != nil {
		t.Fatalf("build basis: %v", err)
	}
	// H 1s + Li (1s, 2s, 2px, 2py, 2pz).
	if len(bfs) != 6 {
		t.Fatalf("basis size = %d, want 6", len(bfs))
	}
	for i, bf := range bfs {
		s := contractedOverlap(bf, bf)
		if math.Abs(s-1) > 1e-8 {
			t.Fatalf("<%d|%d> = %v, want 1", i, i, s)
		}
	}
}

func TestHydrogenOverlapAtEquilibrium(t *testing.T) {
	// STO-3G H2 at 1.4 Bohr has S12 close to 0.6593 (Szabo & Ostlund,
	// table 3.5).
	mol := Molecule{Atoms: []Atom{
		{Symbol: "H", Coords: [3]float64{0, 0, 0}},
		{Symbol: "H", Coords: [3]float64{0, 0, 1.4}},
	}}
	bfs, _, err := buildBasis(mol)
	if err != nil {
		t.Fatalf("build basis: %v", err)
	}
	s12 := contractedOverlap(bfs[0], bfs[1])
	if math.Abs(s12-0.6593) > 5e-4 {
		t.Fatalf("S12 = %v, want about 0.6593", s12)
	}
}

func TestERITableSymmetry(t *testing.T) {
	mol := Molecule{Atoms: []Atom{
		{Symbol: "H", Coords: [3]float64{0, 0, 0}},
		{Symbol: "H", Coords: [3]float64{0, 0, 1.4}},
	}}
	bfs, _, err := buildBasis(mol)
	if err != nil {
		t.Fatalf("build basis: %v", err)
	}
	eri := buildERI(bfs)

	// (11|22) > 0 and the eightfold symmetry holds.
	if eri.at(0, 0, 1, 1) <= 0 {
		t.Fatalf("(11|22) = %v, want > 0", eri.at(0, 0, 1, 1))
	}
	perms := [][4]int{
		{0, 1, 0, 1}, {1, 0, 0, 1}, {0, 1, 1, 0}, {1, 0, 1, 0},
	}
	base := eri.at(0, 1, 0, 1)
	for _, p := range perms {
		if got := eri.at(p[0], p[1], p[2], p[3]); math.Abs(got-base) > 1e-12 {
			t.Fatalf("eri symmetry broken at %v: %v vs %v", p, got, base)
		}
	}
}

func TestNuclearRepulsion(t *testing.T) {
	atoms := []Atom{
		{Symbol: "H", Coords: [3]float64{0, 0, 0}},
		{Symbol: "H", Coords: [3]float64{0, 0, 1.4}},
	}
	e, err := nuclearRepulsion(atoms)
	if err != nil {
		t.Fatalf("nuclear repulsion: %v", err)
	}
	if math.Abs(e-1/1.4) > 1e-12 {
		t.Fatalf("E_nuc = %v, want %v", e, 1/1.4)
	}
}
