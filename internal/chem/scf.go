package chem

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	scfTolerance = 1e-8
	scfMaxSteps  = 200
)

// ErrNotConverged is returned when the SCF cycle exhausts its iteration
// budget without the energy settling.
var ErrNotConverged = errors.New("scf did not converge")

// Result holds the converged Hartree-Fock energies.
type Result struct {
	Energy           float64 // total: electronic + nuclear repulsion
	Electronic       float64
	NuclearRepulsion float64
	Iterations       int
}

// RHF computes the restricted Hartree-Fock ground-state energy of a
// closed-shell molecule.
func RHF(mol Molecule) (Result, error) {
	if len(mol.Atoms) == 0 {
		return Result{}, fmt.Errorf("empty molecule")
	}
	nelec, err := electronCount(mol)
	if err != nil {
		return Result{}, err
	}
	if nelec%2 != 0 {
		return Result{}, fmt.Errorf("restricted HF needs a closed shell, got %d electrons", nelec)
	}
	nocc := nelec / 2

	bfs, atoms, err := buildBasis(mol)
	if err != nil {
		return Result{}, err
	}
	n := len(bfs)

	S := mat.NewDense(n, n, nil)
	H := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			S.Set(i, j, contractedOverlap(bfs[i], bfs[j]))
			core := contractedKinetic(bfs[i], bfs[j])
			for _, atom := range atoms {
				z, zerr := nuclearCharge(atom.Symbol)
				if zerr != nil {
					return Result{}, zerr
				}
				core -= float64(z) * contractedNuclear(bfs[i], bfs[j], atom.Coords)
			}
			H.Set(i, j, core)
		}
	}
	eri := buildERI(bfs)

	X, err := invSqrt(S)
	if err != nil {
		return Result{}, err
	}

	enn, err := nuclearRepulsion(atoms)
	if err != nil {
		return Result{}, err
	}

	D := mat.NewDense(n, n, nil)
	electronic := 0.0
	for iter := 1; iter <= scfMaxSteps; iter++ {
		prev := electronic

		G := buildG(D, eri)
		F := mat.NewDense(n, n, nil)
		F.Add(H, G)

		// Transform to the orthogonal basis, diagonalize, back-transform.
		var tmp, fp mat.Dense
		tmp.Mul(F, X)
		fp.Mul(X, &tmp)
		var eig mat.EigenSym
		if ok := eig.Factorize(symmetrize(&fp), true); !ok {
			return Result{}, fmt.Errorf("fock matrix eigendecomposition failed")
		}
		var cp, C mat.Dense
		eig.VectorsTo(&cp)
		C.Mul(X, &cp)

		D = density(&C, nocc)
		electronic = 0
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				electronic += D.At(i, j) * (H.At(i, j) + 0.5*G.At(i, j))
			}
		}

		if iter > 1 && math.Abs(electronic-prev) < scfTolerance {
			return Result{
				Energy:           electronic + enn,
				Electronic:       electronic,
				NuclearRepulsion: enn,
				Iterations:       iter,
			}, nil
		}
	}
	return Result{}, fmt.Errorf("%w after %d iterations", ErrNotConverged, scfMaxSteps)
}

// invSqrt builds the symmetric orthogonalizer S^{-1/2}.
func invSqrt(S *mat.Dense) (*mat.Dense, error) {
	n, _ := S.Dims()
	var eig mat.EigenSym
	if ok := eig.Factorize(symmetrize(S), true); !ok {
		return nil, fmt.Errorf("overlap eigendecomposition failed")
	}
	vals := eig.Values(nil)
	inv := make([]float64, n)
	for i, v := range vals {
		if v < 1e-10 {
			return nil, fmt.Errorf("overlap matrix is near-singular (eigenvalue %v)", v)
		}
		inv[i] = 1 / math.Sqrt(v)
	}
	var U mat.Dense
	eig.VectorsTo(&U)

	var tmp, X mat.Dense
	tmp.Mul(&U, mat.NewDiagDense(n, inv))
	X.Mul(&tmp, U.T())
	return &X, nil
}

// buildG forms the two-electron part of the Fock matrix from the density:
// G_ij = sum_kl D_kl ((ij|kl) - 0.5 (il|kj)).
func buildG(D *mat.Dense, eri *eriTable) *mat.Dense {
	n := eri.n
	G := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			acc := 0.0
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					d := D.At(k, l)
					if d == 0 {
						continue
					}
					acc += d * (eri.at(i, j, k, l) - 0.5*eri.at(i, l, k, j))
				}
			}
			G.Set(i, j, acc)
		}
	}
	return G
}

// density forms D_ij = 2 sum_occ C_io C_jo from MO coefficients.
func density(C *mat.Dense, nocc int) *mat.Dense {
	n, _ := C.Dims()
	D := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			acc := 0.0
			for o := 0; o < nocc; o++ {
				acc += C.At(i, o) * C.At(j, o)
			}
			D.Set(i, j, 2*acc)
		}
	}
	return D
}

func symmetrize(m *mat.Dense) *mat.SymDense {
	n, _ := m.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, 0.5*(m.At(i, j)+m.At(j, i)))
		}
	}
	return sym
}
