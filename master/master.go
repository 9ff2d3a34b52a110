// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package master implements the reference-element algebra: quadrature,
// basis evaluation, and the pre-factored operators every element of a given
// polynomial order and kind shares. It is the Go analogue of the teacher's
// shp.Shape factory (shp/shp.go), generalized from a per-geometry shape
// library into a per-order modal basis library, and of mconduct's
// GetModel/allocators cache (mconduct/conductmodels.go), reused here as the
// pattern for caching one Master per (kind,order) pair.
package master

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Kind identifies the reference-element geometry. The solver only targets
// unstructured triangular meshes (spec.md §1); Kind is still a closed enum,
// not a string, so for_each_kind dispatch (spec.md §9) stays a compile-time
// switch with no runtime type assertions in the hot loop.
type Kind int

const (
	Triangle Kind = iota
)

// MaxOrder is the highest polynomial order the basis/quadrature machinery
// supports. Requests above this (or below zero) fail with ErrUnsupportedOrder,
// matching spec.md §4.1's kUnsupportedOrder.
const MaxOrder = 6

// ErrUnsupportedOrder is returned by NewMaster when p is out of [0,MaxOrder].
var ErrUnsupportedOrder = fmt.Errorf("master: unsupported polynomial order (want 0<=p<=%d)", MaxOrder)

// Master holds everything that is constant for every element of a given kind
// and order: the quadrature rule, basis values and gradients at the
// quadrature points, the inverse reference mass matrix, and the modal/nodal
// transfer operators. A Master is read-only after NewMaster returns and is
// shared by every element that has the same (Kind,Order) — see spec.md §3.
type Master struct {
	Kind  Kind
	Order int

	Ndof int // number of modal degrees of freedom: (p+1)(p+2)/2 on a triangle
	Ngp  int // number of volume quadrature points

	GpR, GpS, GpW []float64 // quadrature points (natural coords) and weights

	PhiGp  [][]float64 // [ndof][ngp] basis values at quadrature points
	DphiGp [2][][]float64 // [dim][ndof][ngp] basis gradients at quadrature points, dim in {r,s}

	Minv [][]float64 // [ndof][ndof] inverse reference mass matrix (diagonal for this orthonormal basis)

	// edge (trace) data: ngp points per edge, shared by all three edges of
	// the reference triangle up to a permutation of gauss-point order.
	EdgeNgp    int
	EdgeGpT, EdgeGpW []float64 // parametric coordinate in [0,1] along the edge and its weight

	// pre-factored integration weights: PhiGp scaled by the quadrature
	// weight, so volume/edge integrals become a single matrix-vector product.
	IntPhiFact  [][]float64 // [ndof][ngp] == PhiGp[i][g]*GpW[g]
	IntDphiFact [2][][]float64

	coefs [][]float64 // [ndof][ndof] monomial coefficients of each orthonormal mode, graded order
	exps  [][2]int    // monomial exponents matching coefs' column order
}

var cache = make(map[[2]int]*Master)

// NewMaster returns the (cached) Master element for the given kind and
// order, constructing it on first use. Concurrent first-use is not
// supported; Masters are built once during setup before any thread-parallel
// kernel loop starts (spec.md §4.3, §5).
func NewMaster(kind Kind, order int) (*Master, error) {
	key := [2]int{int(kind), order}
	if m, ok := cache[key]; ok {
		return m, nil
	}
	if order < 0 || order > MaxOrder {
		return nil, ErrUnsupportedOrder
	}
	m, err := buildTriangleMaster(order)
	if err != nil {
		return nil, err
	}
	cache[key] = m
	return m, nil
}

// buildTriangleMaster constructs the orthonormal modal basis on the
// reference triangle by Gram-Schmidt-orthonormalizing the monomial basis
// {r^i*s^j : i+j<=p} against the quadrature-defined L2 inner product. This
// reproduces, up to the numerical orthogonalization, the Dubiner-style
// orthogonal basis spec.md §4.1 requires: the resulting reference mass
// matrix is diagonal to quadrature precision.
func buildTriangleMaster(p int) (*Master, error) {
	ndof := (p + 1) * (p + 2) / 2
	degreeNeeded := 2*p + 1
	n := npointsFor(degreeNeeded)
	gps := triangleRule(n)

	ngp := len(gps)
	gr := make([]float64, ngp)
	gs := make([]float64, ngp)
	gw := make([]float64, ngp)
	for i, gp := range gps {
		gr[i], gs[i], gw[i] = gp.R, gp.S, gp.W
	}

	// monomial exponents in graded order (total degree ascending), so that
	// Gram-Schmidt orthogonalizes lower-degree modes first.
	exps := monomialExponents(p)
	chk.IntAssert(len(exps), ndof)

	monoVal := make([][]float64, ndof)   // [mode][gp]
	monoDr := make([][]float64, ndof)
	monoDs := make([][]float64, ndof)
	for k, e := range exps {
		monoVal[k] = make([]float64, ngp)
		monoDr[k] = make([]float64, ngp)
		monoDs[k] = make([]float64, ngp)
		for g := 0; g < ngp; g++ {
			monoVal[k][g] = math.Pow(gr[g], float64(e[0])) * math.Pow(gs[g], float64(e[1]))
			monoDr[k][g] = dmono(e[0], e[1], gr[g], gs[g], 0)
			monoDs[k][g] = dmono(e[0], e[1], gr[g], gs[g], 1)
		}
	}

	// Gram-Schmidt orthonormalization under the discrete L2 inner product
	// <f,g> = sum_gp f(gp)*g(gp)*w(gp).
	phi := make([][]float64, ndof)
	dphiR := make([][]float64, ndof)
	dphiS := make([][]float64, ndof)
	coefs := make([][]float64, ndof) // phi_k = sum_j coefs[k][j]*mono_j
	for k := 0; k < ndof; k++ {
		coefs[k] = make([]float64, ndof)
		coefs[k][k] = 1
		v := append([]float64(nil), monoVal[k]...)
		for j := 0; j < k; j++ {
			proj := l2dot(v, phi[j], gw)
			axpy(v, -proj, phi[j])
			for t := 0; t <= k; t++ {
				coefs[k][t] -= proj * coefs[j][t]
			}
		}
		norm := math.Sqrt(l2dot(v, v, gw))
		if norm < 1e-13 {
			return nil, fmt.Errorf("master: degenerate basis at order %d (mode %d)", p, k)
		}
		for i := range v {
			v[i] /= norm
		}
		for t := range coefs[k] {
			coefs[k][t] /= norm
		}
		phi[k] = v
	}
	for k := 0; k < ndof; k++ {
		dr := make([]float64, ngp)
		ds := make([]float64, ngp)
		for j := 0; j <= k; j++ {
			c := coefs[k][j]
			if c == 0 {
				continue
			}
			axpy(dr, c, monoDr[j])
			axpy(ds, c, monoDs[j])
		}
		dphiR[k] = dr
		dphiS[k] = ds
	}

	// reference mass matrix and its inverse: diagonal to quadrature
	// precision because phi is quadrature-orthonormal by construction.
	minv := la.MatAlloc(ndof, ndof)
	for i := 0; i < ndof; i++ {
		mii := l2dot(phi[i], phi[i], gw)
		minv[i][i] = 1.0 / mii
	}

	edgeN := npointsFor(degreeNeeded)
	edgeT, edgeW := EdgeRule(edgeN)

	intPhi := make([][]float64, ndof)
	intDr := make([][]float64, ndof)
	intDs := make([][]float64, ndof)
	for k := 0; k < ndof; k++ {
		intPhi[k] = make([]float64, ngp)
		intDr[k] = make([]float64, ngp)
		intDs[k] = make([]float64, ngp)
		for g := 0; g < ngp; g++ {
			intPhi[k][g] = phi[k][g] * gw[g]
			intDr[k][g] = dphiR[k][g] * gw[g]
			intDs[k][g] = dphiS[k][g] * gw[g]
		}
	}

	return &Master{
		Kind: Triangle, Order: p,
		Ndof: ndof, Ngp: ngp,
		GpR: gr, GpS: gs, GpW: gw,
		PhiGp:      phi,
		DphiGp:     [2][][]float64{dphiR, dphiS},
		Minv:       minv,
		EdgeNgp:    len(edgeT),
		EdgeGpT:    edgeT,
		EdgeGpW:    edgeW,
		IntPhiFact: intPhi,
		IntDphiFact: [2][][]float64{intDr, intDs},
		coefs:      coefs,
		exps:       exps,
	}, nil
}

// monomialExponents lists (i,j) pairs with i+j<=p, ordered by ascending
// total degree then lexicographically, giving ndof == (p+1)(p+2)/2 entries.
func monomialExponents(p int) [][2]int {
	var out [][2]int
	for deg := 0; deg <= p; deg++ {
		for i := 0; i <= deg; i++ {
			out = append(out, [2]int{i, deg - i})
		}
	}
	return out
}

func dmono(i, j int, r, s float64, wrt int) float64 {
	if wrt == 0 {
		if i == 0 {
			return 0
		}
		return float64(i) * math.Pow(r, float64(i-1)) * math.Pow(s, float64(j))
	}
	if j == 0 {
		return 0
	}
	return float64(j) * math.Pow(r, float64(i)) * math.Pow(s, float64(j-1))
}

func l2dot(a, b, w []float64) float64 {
	var sum float64
	for g := range a {
		sum += a[g] * b[g] * w[g]
	}
	return sum
}

func axpy(y []float64, alpha float64, x []float64) {
	for i := range y {
		y[i] += alpha * x[i]
	}
}

// ProjectLinearToBasis converts the three P1 vertex values {(0,0),(1,0),
// (0,1)} of a linear field into modal coefficients of this Master's basis,
// by an exact L2 projection (quadrature is exact to degree 2p+1 >= 1, and
// PhiGp is orthonormal so the mass matrix is the identity). It is the modal
// analogue of shp.Shape's CalcAtR evaluated at the three vertices.
func (m *Master) ProjectLinearToBasis(uLin [3]float64) []float64 {
	// the unique linear field through the three vertex values
	a := uLin[0]
	b := uLin[1] - uLin[0]
	c := uLin[2] - uLin[0]

	q := make([]float64, m.Ndof)
	for k := 0; k < m.Ndof; k++ {
		var acc float64
		for g := 0; g < m.Ngp; g++ {
			f := a + b*m.GpR[g] + c*m.GpS[g]
			acc += f * m.PhiGp[k][g] * m.GpW[g]
		}
		q[k] = acc
	}
	return q
}

// ProjectBasisToLinear evaluates modal coefficients q back at the three P1
// vertices, the inverse of ProjectLinearToBasis on linear fields (spec.md
// §8 round-trip law).
func (m *Master) ProjectBasisToLinear(q []float64) [3]float64 {
	verts := [3][2]float64{{0, 0}, {1, 0}, {0, 1}}
	var out [3]float64
	for v := 0; v < 3; v++ {
		var acc float64
		for k := 0; k < m.Ndof; k++ {
			acc += q[k] * m.evalPhiAt(k, verts[v][0], verts[v][1])
		}
		out[v] = acc
	}
	return out
}

// refEdgeVerts lists the reference-triangle vertex pairs bounding each local
// edge, following the same edge0:v0-v1, edge1:v1-v2, edge2:v2-v0 convention
// shape.edgeVerts uses for the physical mapping.
var refVerts = [3][2]float64{{0, 0}, {1, 0}, {0, 1}}
var refEdgeVerts = [3][2]int{{0, 1}, {1, 2}, {2, 0}}

// EdgePhiAt evaluates basis mode k at edge quadrature point g of local
// boundary bnd, mapping the edge's parametric coordinate EdgeGpT[g] to the
// reference triangle's (r,s) along that edge.
func (m *Master) EdgePhiAt(k, bnd, g int) float64 {
	v0, v1 := refEdgeVerts[bnd][0], refEdgeVerts[bnd][1]
	t := m.EdgeGpT[g]
	r := refVerts[v0][0] + (refVerts[v1][0]-refVerts[v0][0])*t
	s := refVerts[v0][1] + (refVerts[v1][1]-refVerts[v0][1])*t
	return m.evalPhiAt(k, r, s)
}

// evalPhiAt evaluates basis mode k at an arbitrary (r,s) from its monomial
// expansion. Only used off the hot kernel path (postprocessing, round-trip
// projections), where the monomial re-evaluation cost is immaterial.
func (m *Master) evalPhiAt(k int, r, s float64) float64 {
	var acc float64
	for j, e := range m.exps {
		c := m.coefs[k][j]
		if c == 0 {
			continue
		}
		acc += c * math.Pow(r, float64(e[0])) * math.Pow(s, float64(e[1]))
	}
	return acc
}
