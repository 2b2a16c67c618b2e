// Package chem computes restricted Hartree-Fock ground-state energies for
// small closed-shell molecules in the STO-3G basis. Geometries are in Bohr
// and energies in Hartree.
package chem

import (
	"fmt"
	"math"
)

// Atom is one nucleus of a molecule.
type Atom struct {
	Symbol string
	Coords [3]float64
}

// Molecule is a collection of atoms with an overall charge.
type Molecule struct {
	Atoms  []Atom
	Charge int
}

type primitive struct {
	alpha float64
	coeff float64
}

type shellKind int

const (
	sShell shellKind = iota
	spShell
)

type shell struct {
	kind   shellKind
	prims  []primitive
	pCoeff []float64 // p contraction coefficients for sp shells
}

type element struct {
	z      int
	shells []shell
}

// sto3g holds the published STO-3G exponents and contraction coefficients
// for the elements the reaction challenge needs.
var sto3g = map[string]element{
	"H": {
		z: 1,
		shells: []shell{
			{kind: sShell, prims: []primitive{
				{alpha: 3.425250914, coeff: 0.1543289673},
				{alpha: 0.6239137298, coeff: 0.5353281423},
				{alpha: 0.1688554040, coeff: 0.4446345422},
			}},
		},
	},
	"He": {
		z: 2,
		shells: []shell{
			{kind: sShell, prims: []primitive{
				{alpha: 6.36242139, coeff: 0.1543289673},
				{alpha: 1.15892300, coeff: 0.5353281423},
				{alpha: 0.31364979, coeff: 0.4446345422},
			}},
		},
	},
	"Li": {
		z: 3,
		shells: []shell{
			{kind: sShell, prims: []primitive{
				{alpha: 16.1195750, coeff: 0.1543289673},
				{alpha: 2.9362007, coeff: 0.5353281423},
				{alpha: 0.7946505, coeff: 0.4446345422},
			}},
			{
				kind: spShell,
				prims: []primitive{
					{alpha: 0.6362897, coeff: -0.09996723},
					{alpha: 0.1478601, coeff: 0.39951283},
					{alpha: 0.0480887, coeff: 0.70011547},
				},
				pCoeff: []float64{0.15591627, 0.60768372, 0.39195739},
			},
		},
	},
}

// basisFunction is a contracted Cartesian Gaussian. Contraction
// coefficients already include primitive normalization and an overall
// renormalization of the contracted function.
type basisFunction struct {
	origin [3]float64
	lmn    [3]int
	alphas []float64
	coeffs []float64
}

// doubleFactorial computes n!! with (-1)!! = 1.
func doubleFactorial(n int) float64 {
	res := 1.0
	for ; n > 1; n -= 2 {
		res *= float64(n)
	}
	return res
}

// primNorm is the normalization constant of a primitive Cartesian Gaussian
// with exponent alpha and angular momentum lmn.
func primNorm(alpha float64, lmn [3]int) float64 {
	l, m, n := lmn[0], lmn[1], lmn[2]
	total := l + m + n
	num := math.Pow(2*alpha/math.Pi, 1.5) * math.Pow(4*alpha, float64(total))
	den := doubleFactorial(2*l-1) * doubleFactorial(2*m-1) * doubleFactorial(2*n-1)
	return math.Sqrt(num / den)
}

func newBasisFunction(origin [3]float64, lmn [3]int, alphas, coeffs []float64) basisFunction {
	bf := basisFunction{origin: origin, lmn: lmn,
		alphas: append([]float64(nil), alphas...),
		coeffs: append([]float64(nil), coeffs...)}
	for i := range bf.coeffs {
		bf.coeffs[i] *= primNorm(bf.alphas[i], lmn)
	}
	// Renormalize the contracted function to unit self-overlap.
	self := contractedOverlap(bf, bf)
	scale := 1 / math.Sqrt(self)
	for i := range bf.coeffs {
		bf.coeffs[i] *= scale
	}
	return bf
}

var pDirections = [3][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// buildBasis expands a molecule into contracted basis functions and
// returns them with the nuclear charges.
func buildBasis(mol Molecule) ([]basisFunction, []Atom, error) {
	var bfs []basisFunction
	for _, atom := range mol.Atoms {
		el, ok := sto3g[atom.Symbol]
		if !ok {
			return nil, nil, fmt.Errorf("no STO-3G parameters for element %q", atom.Symbol)
		}
		for _, sh := range el.shells {
			alphas := make([]float64, len(sh.prims))
			sCoeffs := make([]float64, len(sh.prims))
			for i, p := range sh.prims {
				alphas[i] = p.alpha
				sCoeffs[i] = p.coeff
			}
			bfs = append(bfs, newBasisFunction(atom.Coords, [3]int{0, 0, 0}, alphas, sCoeffs))
			if sh.kind == spShell {
				for _, dir := range pDirections {
					bfs = append(bfs, newBasisFunction(atom.Coords, dir, alphas, sh.pCoeff))
				}
			}
		}
	}
	return bfs, mol.Atoms, nil
}

// nuclearCharge looks up Z for a symbol.
func nuclearCharge(symbol string) (int, error) {
	el, ok := sto3g[symbol]
	if !ok {
		return 0, fmt.Errorf("no STO-3G parameters for element %q", symbol)
	}
	return el.z, nil
}

// electronCount totals electrons after applying molecular charge.
func electronCount(mol Molecule) (int, error) {
	total := 0
	for _, atom := range mol.Atoms {
		z, err := nuclearCharge(atom.Symbol)
		if err != nil {
			return 0, err
		}
		total += z
	}
	total -= mol.Charge
	if total <= 0 {
		return 0, fmt.Errorf("molecule has no electrons")
	}
	return total, nil
}
