package chem

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// hermiteE computes the Hermite expansion coefficient E_t^{ij} for the
// product of two one-dimensional Gaussians with exponents a, b separated
// by Q along one axis (McMurchie-Davidson recursion).
func hermiteE(i, j, t int, Q, a, b float64) float64 {
	p := a + b
	q := a * b / p
	switch {
	case t < 0 || t > i+j:
		return 0
	case i == 0 && j == 0 && t == 0:
		return math.Exp(-q * Q * Q)
	case j == 0:
		return (1/(2*p))*hermiteE(i-1, j, t-1, Q, a, b) -
			(q*Q/a)*hermiteE(i-1, j, t, Q, a, b) +
			float64(t+1)*hermiteE(i-1, j, t+1, Q, a, b)
	default:
		return (1/(2*p))*hermiteE(i, j-1, t-1, Q, a, b) +
			(q*Q/b)*hermiteE(i, j-1, t, Q, a, b) +
			float64(t+1)*hermiteE(i, j-1, t+1, Q, a, b)
	}
}

// boys evaluates the Boys function F_n(x) through the regularized lower
// incomplete gamma function.
func boys(n int, x float64) float64 {
	nf := float64(n)
	if x < 1e-13 {
		return 1/(2*nf+1) - x/(2*nf+3)
	}
	return mathext.GammaIncReg(nf+0.5, x) * math.Gamma(nf+0.5) / (2 * math.Pow(x, nf+0.5))
}

// hermiteR computes the auxiliary Hermite Coulomb integral R_{tuv}^n.
func hermiteR(t, u, v, n int, p float64, pc [3]float64, r2 float64) float64 {
	val := 0.0
	switch {
	case t == 0 && u == 0 && v == 0:
		val += math.Pow(-2*p, float64(n)) * boys(n, p*r2)
	case t == 0 && u == 0:
		if v > 1 {
			val += float64(v-1) * hermiteR(t, u, v-2, n+1, p, pc, r2)
		}
		val += pc[2] * hermiteR(t, u, v-1, n+1, p, pc, r2)
	case t == 0:
		if u > 1 {
			val += float64(u-1) * hermiteR(t, u-2, v, n+1, p, pc, r2)
		}
		val += pc[1] * hermiteR(t, u-1, v, n+1, p, pc, r2)
	default:
		if t > 1 {
			val += float64(t-1) * hermiteR(t-2, u, v, n+1, p, pc, r2)
		}
		val += pc[0] * hermiteR(t-1, u, v, n+1, p, pc, r2)
	}
	return val
}

func gaussianProductCenter(a float64, A [3]float64, b float64, B [3]float64) [3]float64 {
	p := a + b
	var P [3]float64
	for i := range P {
		P[i] = (a*A[i] + b*B[i]) / p
	}
	return P
}

func dist2(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return dx*dx + dy*dy + dz*dz
}

// primOverlap is the overlap of two unnormalized primitive Gaussians.
func primOverlap(a float64, lmn1 [3]int, A [3]float64, b float64, lmn2 [3]int, B [3]float64) float64 {
	p := a + b
	s := hermiteE(lmn1[0], lmn2[0], 0, A[0]-B[0], a, b) *
		hermiteE(lmn1[1], lmn2[1], 0, A[1]-B[1], a, b) *
		hermiteE(lmn1[2], lmn2[2], 0, A[2]-B[2], a, b)
	return s * math.Pow(math.Pi/p, 1.5)
}

// primKinetic is the kinetic-energy integral of two primitives, expressed
// through overlaps with shifted angular momentum.
func primKinetic(a float64, lmn1 [3]int, A [3]float64, b float64, lmn2 [3]int, B [3]float64) float64 {
	l2, m2, n2 := lmn2[0], lmn2[1], lmn2[2]
	term0 := b * float64(2*(l2+m2+n2)+3) * primOverlap(a, lmn1, A, b, lmn2, B)
	term1 := -2 * b * b * (primOverlap(a, lmn1, A, b, [3]int{l2 + 2, m2, n2}, B) +
		primOverlap(a, lmn1, A, b, [3]int{l2, m2 + 2, n2}, B) +
		primOverlap(a, lmn1, A, b, [3]int{l2, m2, n2 + 2}, B))
	term2 := -0.5 * (float64(l2*(l2-1))*primOverlap(a, lmn1, A, b, [3]int{l2 - 2, m2, n2}, B) +
		float64(m2*(m2-1))*primOverlap(a, lmn1, A, b, [3]int{l2, m2 - 2, n2}, B) +
		float64(n2*(n2-1))*primOverlap(a, lmn1, A, b, [3]int{l2, m2, n2 - 2}, B))
	return term0 + term1 + term2
}

// primNuclear is the nuclear-attraction kernel of two primitives with a
// point charge at C (positive; the -Z factor is applied by the caller).
func primNuclear(a float64, lmn1 [3]int, A [3]float64, b float64, lmn2 [3]int, B [3]float64, C [3]float64) float64 {
	p := a + b
	P := gaussianProductCenter(a, A, b, B)
	pc := [3]float64{P[0] - C[0], P[1] - C[1], P[2] - C[2]}
	r2 := pc[0]*pc[0] + pc[1]*pc[1] + pc[2]*pc[2]

	val := 0.0
	for t := 0; t <= lmn1[0]+lmn2[0]; t++ {
		for u := 0; u <= lmn1[1]+lmn2[1]; u++ {
			for v := 0; v <= lmn1[2]+lmn2[2]; v++ {
				val += hermiteE(lmn1[0], lmn2[0], t, A[0]-B[0], a, b) *
					hermiteE(lmn1[1], lmn2[1], u, A[1]-B[1], a, b) *
					hermiteE(lmn1[2], lmn2[2], v, A[2]-B[2], a, b) *
					hermiteR(t, u, v, 0, p, pc, r2)
			}
		}
	}
	return val * 2 * math.Pi / p
}

// primRepulsion is the two-electron repulsion integral (ab|cd) over four
// unnormalized primitives.
func primRepulsion(
	a float64, lmn1 [3]int, A [3]float64,
	b float64, lmn2 [3]int, B [3]float64,
	c float64, lmn3 [3]int, C [3]float64,
	d float64, lmn4 [3]int, D [3]float64,
) float64 {
	p := a + b
	q := c + d
	alpha := p * q / (p + q)
	P := gaussianProductCenter(a, A, b, B)
	Q := gaussianProductCenter(c, C, d, D)
	pq := [3]float64{P[0] - Q[0], P[1] - Q[1], P[2] - Q[2]}
	r2 := pq[0]*pq[0] + pq[1]*pq[1] + pq[2]*pq[2]

	val := 0.0
	for t := 0; t <= lmn1[0]+lmn2[0]; t++ {
		for u := 0; u <= lmn1[1]+lmn2[1]; u++ {
			for v := 0; v <= lmn1[2]+lmn2[2]; v++ {
				e1 := hermiteE(lmn1[0], lmn2[0], t, A[0]-B[0], a, b) *
					hermiteE(lmn1[1], lmn2[1], u, A[1]-B[1], a, b) *
					hermiteE(lmn1[2], lmn2[2], v, A[2]-B[2], a, b)
				if e1 == 0 {
					continue
				}
				for tau := 0; tau <= lmn3[0]+lmn4[0]; tau++ {
					for nu := 0; nu <= lmn3[1]+lmn4[1]; nu++ {
						for phi := 0; phi <= lmn3[2]+lmn4[2]; phi++ {
							e2 := hermiteE(lmn3[0], lmn4[0], tau, C[0]-D[0], c, d) *
								hermiteE(lmn3[1], lmn4[1], nu, C[1]-D[1], c, d) *
								hermiteE(lmn3[2], lmn4[2], phi, C[2]-D[2], c, d)
							if e2 == 0 {
								continue
							}
							sign := 1.0
							if (tau+nu+phi)%2 == 1 {
								sign = -1
							}
							val += e1 * e2 * sign * hermiteR(t+tau, u+nu, v+phi, 0, alpha, pq, r2)
						}
					}
				}
			}
		}
	}
	return val * 2 * math.Pow(math.Pi, 2.5) / (p * q * math.Sqrt(p+q))
}

// contractedOverlap sums primOverlap over both contractions.
func contractedOverlap(f1, f2 basisFunction) float64 {
	val := 0.0
	for i, a := range f1.alphas {
		for j, b := range f2.alphas {
			val += f1.coeffs[i] * f2.coeffs[j] *
				primOverlap(a, f1.lmn, f1.origin, b, f2.lmn, f2.origin)
		}
	}
	return val
}

func contractedKinetic(f1, f2 basisFunction) float64 {
	val := 0.0
	for i, a := range f1.alphas {
		for j, b := range f2.alphas {
			val += f1.coeffs[i] * f2.coeffs[j] *
				primKinetic(a, f1.lmn, f1.origin, b, f2.lmn, f2.origin)
		}
	}
	return val
}

func contractedNuclear(f1, f2 basisFunction, C [3]float64) float64 {
	val := 0.0
	for i, a := range f1.alphas {
		for j, b := range f2.alphas {
			val += f1.coeffs[i] * f2.coeffs[j] *
				primNuclear(a, f1.lmn, f1.origin, b, f2.lmn, f2.origin, C)
		}
	}
	return val
}

func contractedRepulsion(f1, f2, f3, f4 basisFunction) float64 {
	val := 0.0
	for i, a := range f1.alphas {
		for j, b := range f2.alphas {
			for k, c := range f3.alphas {
				for l, d := range f4.alphas {
					val += f1.coeffs[i] * f2.coeffs[j] * f3.coeffs[k] * f4.coeffs[l] *
						primRepulsion(
							a, f1.lmn, f1.origin,
							b, f2.lmn, f2.origin,
							c, f3.lmn, f3.origin,
							d, f4.lmn, f4.origin)
				}
			}
		}
	}
	return val
}

// eriTable stores (ij|kl) integrals with full index range for simple
// lookup; eightfold permutational symmetry cuts the computation.
type eriTable struct {
	n    int
	vals []float64
}

func (e *eriTable) at(i, j, k, l int) float64 {
	n := e.n
	return e.vals[((i*n+j)*n+k)*n+l]
}

func (e *eriTable) set(i, j, k, l int, v float64) {
	n := e.n
	e.vals[((i*n+j)*n+k)*n+l] = v
}

func buildERI(bfs []basisFunction) *eriTable {
	n := len(bfs)
	table := &eriTable{n: n, vals: make([]float64, n*n*n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			for k := 0; k < n; k++ {
				for l := 0; l <= k; l++ {
					if i*n+j < k*n+l {
						continue
					}
					v := contractedRepulsion(bfs[i], bfs[j], bfs[k], bfs[l])
					table.set(i, j, k, l, v)
					table.set(j, i, k, l, v)
					table.set(i, j, l, k, v)
					table.set(j, i, l, k, v)
					table.set(k, l, i, j, v)
					table.set(l, k, i, j, v)
					table.set(k, l, j, i, v)
					table.set(l, k, j, i, v)
				}
			}
		}
	}
	return table
}

// nuclearRepulsion is the classical ion-ion energy.
func nuclearRepulsion(atoms []Atom) (float64, error) {
	val := 0.0
	for i := range atoms {
		zi, err := nuclearCharge(atoms[i].Symbol)
		if err != nil {
			return 0, err
		}
		for j := 0; j < i; j++ {
			zj, err := nuclearCharge(atoms[j].Symbol)
			if err != nil {
				return 0, err
			}
			val += float64(zi*zj) / math.Sqrt(dist2(atoms[i].Coords, atoms[j].Coords))
		}
	}
	return val, nil
}
