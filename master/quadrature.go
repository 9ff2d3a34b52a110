// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package master

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// gaussJacobiRule returns the n-point Gauss-Jacobi quadrature nodes (on
// [-1,1]) and weights for the weight function (1-x)^alpha*(1+x)^beta, via the
// Golub-Welsch algorithm: the nodes are the eigenvalues of the (symmetric,
// tridiagonalized) Jacobi matrix and the weights follow from the first
// component of each normalized eigenvector. alpha=beta=0 gives Gauss-Legendre.
func gaussJacobiRule(n int, alpha, beta float64) (nodes, weights []float64) {
	if n == 1 {
		// mean of the weight function's support; exact for constants
		node := (beta - alpha) / (alpha + beta + 2)
		mu0 := math.Pow(2, alpha+beta+1) * betaFn(alpha+1, beta+1)
		return []float64{node}, []float64{mu0}
	}

	ab := alpha + beta
	diag := make([]float64, n)
	off := make([]float64, n-1)
	for k := 0; k < n; k++ {
		kf := float64(k)
		if beta*beta-alpha*alpha == 0 && (2*kf+ab) == 0 {
			diag[k] = 0
		} else {
			diag[k] = (beta*beta - alpha*alpha) / ((2*kf + ab) * (2*kf + ab + 2))
		}
	}
	for k := 1; k < n; k++ {
		kf := float64(k)
		num := 4 * kf * (kf + alpha) * (kf + beta) * (kf + ab)
		den := (2*kf + ab) * (2*kf + ab) * (2*kf + ab + 1) * (2*kf + ab - 1)
		off[k-1] = math.Sqrt(num / den)
	}

	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		sym.SetSym(i, i, diag[i])
	}
	for i := 0; i < n-1; i++ {
		sym.SetSym(i, i+1, off[i])
	}

	var eig mat.EigenSym
	ok := eig.Factorize(sym, true)
	if !ok {
		panic("gaussJacobiRule: eigen decomposition failed")
	}
	values := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	mu0 := math.Pow(2, ab+1) * betaFn(alpha+1, beta+1)

	nodes = make([]float64, n)
	weights = make([]float64, n)
	idx := argsort(values)
	for i, j := range idx {
		nodes[i] = values[j]
		v0 := vecs.At(0, j)
		weights[i] = mu0 * v0 * v0
	}
	return
}

// betaFn is the Euler Beta function B(a,b) = Gamma(a)Gamma(b)/Gamma(a+b).
func betaFn(a, b float64) float64 {
	la, _ := math.Lgamma(a)
	lb, _ := math.Lgamma(b)
	lab, _ := math.Lgamma(a + b)
	return math.Exp(la + lb - lab)
}

// argsort returns the permutation that sorts vals ascending.
func argsort(vals []float64) []int {
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && vals[idx[j-1]] > vals[idx[j]]; j-- {
			idx[j-1], idx[j] = idx[j], idx[j-1]
		}
	}
	return idx
}

// TriPoint is one quadrature point on the reference triangle
// {(0,0),(1,0),(0,1)} together with its integration weight.
type TriPoint struct {
	R, S float64 // natural coordinates
	W    float64 // weight (area-normalized: sum(W) == 0.5)
}

// triangleRule builds a collapsed-coordinate (Duffy transform) quadrature
// rule on the reference triangle, tensoring an n-point Gauss-Legendre rule
// in one direction against an n-point Gauss-Jacobi(1,0) rule in the other.
// This construction is exact for polynomials up to degree 2n-2 on the
// triangle; callers oversample n to clear the 2p+1 exactness bar.
func triangleRule(n int) []TriPoint {
	a, wa := gaussJacobiRule(n, 0, 0)
	b, wb := gaussJacobiRule(n, 1, 0)
	pts := make([]TriPoint, 0, n*n)
	for i := range a {
		for j := range b {
			xi, eta := a[i], b[j]
			r := 0.5 * (1 + xi) * 0.5 * (1 - eta)
			s := 0.5 * (1 + eta)
			w := wa[i] * wb[j] * 0.125 // folds the [-1,1]^2 weight and the Duffy Jacobian into the area-normalized triangle weight
			pts = append(pts, TriPoint{R: r, S: s, W: w})
		}
	}
	return pts
}

// EdgeRule returns an n-point Gauss-Legendre rule on [0,1], used to integrate
// along a triangle edge/trace.
func EdgeRule(n int) (points, weights []float64) {
	x, w := gaussJacobiRule(n, 0, 0)
	points = make([]float64, n)
	weights = make([]float64, n)
	for i := range x {
		points[i] = 0.5 * (x[i] + 1)
		weights[i] = 0.5 * w[i]
	}
	return
}

// npointsFor returns the number of Gauss points per direction needed for a
// collapsed-coordinate rule to be exact through the given polynomial degree.
func npointsFor(degree int) int {
	n := degree/2 + 2 // oversample by one point for safety margin
	if n < 1 {
		n = 1
	}
	return n
}
