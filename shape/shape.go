// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape implements the reference-to-physical mapping for one
// element: Jacobians, inverse mapping, and surface (edge) normals. It is a
// direct generalization of the teacher's shp.Shape (shp/shp.go) — the
// scratchpad fields (J, dxdR, dRdx, G) and the CalcAtIp/CalcAtFaceIp
// algorithm are kept verbatim in spirit, specialized from the teacher's
// multi-geometry dispatch (lin/tri/qua/hex/tet) down to (possibly curved)
// triangles, and extended with Newton point-inversion per spec.md §4.2.
package shape

import (
	"fmt"

	"github.com/cpmech/gosl/la"

	"github.com/dpedroso-labs/swehdg/master"
)

// MinDet is the minimum Jacobian determinant accepted; below it the element
// is considered geometrically degenerate.
const MinDet = 1e-14

// ErrInversionDivergent is returned by GlobalToLocal when Newton's method
// fails to converge within the allotted iterations (spec.md §4.2).
var ErrInversionDivergent = fmt.Errorf("shape: global-to-local Newton inversion did not converge")

const inversionTol = 1e-12
const inversionMaxIt = 30

// Shape holds the physical nodal coordinates of one triangle and lazily
// caches the quantities derived from them: shape values/gradients,
// Jacobian determinants and inverses at quadrature points, and surface
// Jacobians/normals per edge.
type Shape struct {
	M *master.Master // shared master element (basis, quadrature)

	X, Y [3]float64 // physical coordinates of the three vertices (straight-sided case)

	// curved records whether this Shape uses a non-affine (curved)
	// physical map; the design makes no straight-sided assumption, so
	// callers that need curvature override the affine map by supplying a
	// richer coordinate field here in a future extension point.
	curved bool

	// cached per-quadrature-point data, populated by refresh
	jdet   []float64     // [ngp]
	jinv   [][4]float64  // [ngp]{dRdx,dRdy,dSdx,dSdy}
	valid  bool
}

// New returns a Shape over the given Master with the physical vertex
// coordinates of a straight-sided triangle.
func New(m *master.Master, x, y [3]float64) *Shape {
	return &Shape{M: m, X: x, Y: y}
}

// affineJacobian returns the constant Jacobian matrix of the straight-sided
// map x(r,s) = x0 + (x1-x0)*r + (x2-x0)*s (and similarly for y).
func (o *Shape) affineJacobian() (dxdr, dxds, dydr, dyds float64) {
	dxdr = o.X[1] - o.X[0]
	dxds = o.X[2] - o.X[0]
	dydr = o.Y[1] - o.Y[0]
	dyds = o.Y[2] - o.Y[0]
	return
}

// refresh (re)computes the cached per-quadrature-point Jacobian data. For a
// straight-sided triangle the Jacobian is constant; it is still evaluated
// once per quadrature point so that a future curved map only needs to
// change this routine.
func (o *Shape) refresh() error {
	if o.valid {
		return nil
	}
	n := o.M.Ngp
	o.jdet = make([]float64, n)
	o.jinv = make([][4]float64, n)
	dxdr, dxds, dydr, dyds := o.affineJacobian()
	jac := [][]float64{{dxdr, dxds}, {dydr, dyds}}
	inv := la.MatAlloc(2, 2)
	det, err := la.MatInv(inv, jac, MinDet)
	if err != nil {
		return fmt.Errorf("shape: degenerate element, det(J)=%g: %v", det, err)
	}
	if det <= MinDet {
		return fmt.Errorf("shape: det(J)=%g is not positive", det)
	}
	for g := 0; g < n; g++ {
		o.jdet[g] = det
		o.jinv[g] = [4]float64{inv[0][0], inv[0][1], inv[1][0], inv[1][1]}
	}
	o.valid = true
	return nil
}

// GetJdet returns det(J) at every volume quadrature point.
func (o *Shape) GetJdet() ([]float64, error) {
	if err := o.refresh(); err != nil {
		return nil, err
	}
	return o.jdet, nil
}

// GetJinv returns the 2x2 inverse Jacobian, flattened row-major, at every
// volume quadrature point.
func (o *Shape) GetJinv() ([][4]float64, error) {
	if err := o.refresh(); err != nil {
		return nil, err
	}
	return o.jinv, nil
}

// LocalToGlobal maps a natural-coordinate point to physical space.
func (o *Shape) LocalToGlobal(r, s float64) (x, y float64) {
	x = o.X[0] + (o.X[1]-o.X[0])*r + (o.X[2]-o.X[0])*s
	y = o.Y[0] + (o.Y[1]-o.Y[0])*r + (o.Y[2]-o.Y[0])*s
	return
}

// GlobalToLocal inverts LocalToGlobal by Newton iteration. For the
// straight-sided case the map is affine so one iteration suffices; the
// Newton loop is kept (rather than a closed-form solve) so curved elements
// can be introduced later without changing the call site, per spec.md
// §4.2's "design makes no such assumption" note.
func (o *Shape) GlobalToLocal(x, y float64) (r, s float64, err error) {
	r, s = 1.0/3.0, 1.0/3.0 // centroid start
	dxdr, dxds, dydr, dyds := o.affineJacobian()
	jac := [][]float64{{dxdr, dxds}, {dydr, dyds}}
	inv := la.MatAlloc(2, 2)
	det, ierr := la.MatInv(inv, jac, MinDet)
	if ierr != nil || det <= MinDet {
		return 0, 0, fmt.Errorf("shape: degenerate element in GlobalToLocal")
	}
	for it := 0; it < inversionMaxIt; it++ {
		gx, gy := o.LocalToGlobal(r, s)
		fx, fy := gx-x, gy-y
		dr := inv[0][0]*fx + inv[0][1]*fy
		ds := inv[1][0]*fx + inv[1][1]*fy
		r -= dr
		s -= ds
		if dr*dr+ds*ds < inversionTol*inversionTol {
			return r, s, nil
		}
	}
	return 0, 0, ErrInversionDivergent
}

// ContainsPoint reports whether (x,y) lies inside (or on) the reference
// triangle's image, up to the inversion tolerance.
func (o *Shape) ContainsPoint(x, y float64) bool {
	r, s, err := o.GlobalToLocal(x, y)
	if err != nil {
		return false
	}
	const eps = 1e-10
	return r >= -eps && s >= -eps && r+s <= 1+eps
}

// edgeVerts lists, for each of the reference triangle's three edges, the
// pair of local vertex indices bounding it, following the fixed convention
// edge0: v0-v1, edge1: v1-v2, edge2: v2-v0.
var edgeVerts = [3][2]int{{0, 1}, {1, 2}, {2, 0}}

// GetSurfaceJ returns the surface (edge) Jacobian — the length of the edge
// tangent vector — at every edge quadrature point of boundary boundID.
func (o *Shape) GetSurfaceJ(boundID int) []float64 {
	v0, v1 := edgeVerts[boundID][0], edgeVerts[boundID][1]
	dx := o.X[v1] - o.X[v0]
	dy := o.Y[v1] - o.Y[v0]
	length := hypot(dx, dy)
	out := make([]float64, o.M.EdgeNgp)
	for g := range out {
		out[g] = length
	}
	return out
}

// GetSurfaceNormal returns the outward unit normal at every edge quadrature
// point of boundID. Normals are constant along a straight edge.
func (o *Shape) GetSurfaceNormal(boundID int) [][2]float64 {
	v0, v1 := edgeVerts[boundID][0], edgeVerts[boundID][1]
	dx := o.X[v1] - o.X[v0]
	dy := o.Y[v1] - o.Y[v0]
	length := hypot(dx, dy)
	// outward normal for a CCW-ordered triangle: rotate the tangent by -90deg
	nx, ny := dy/length, -dx/length
	out := make([][2]float64, o.M.EdgeNgp)
	for g := range out {
		out[g] = [2]float64{nx, ny}
	}
	return out
}

// EdgePoint returns the physical coordinates of edge quadrature point g on
// boundID, using the edge's parametric coordinate t in [0,1] (master.EdgeGpT).
func (o *Shape) EdgePoint(boundID, g int) (x, y float64) {
	v0, v1 := edgeVerts[boundID][0], edgeVerts[boundID][1]
	t := o.M.EdgeGpT[g]
	x = o.X[v0] + (o.X[v1]-o.X[v0])*t
	y = o.Y[v0] + (o.Y[v1]-o.Y[v0])*t
	return
}

func hypot(dx, dy float64) float64 {
	return la.VecNorm([]float64{dx, dy})
}
