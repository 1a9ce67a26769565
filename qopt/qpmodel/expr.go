// Copyright 2010-2024 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package qpmodel

import (
	"sort"

	log "github.com/golang/glog"
)

// mixedBuilder is reported by expressions holding variables of different builders. It never
// compares equal to a real Builder.
var mixedBuilder = &Builder{name: "<mixed>"}

type varCoeff struct {
	ind   VarIndex
	coeff float64
}

type pairCoeff struct {
	i, j  VarIndex
	coeff float64
}

// LinearExpr is a container for a linear expression.
type LinearExpr struct {
	varCoeffs []varCoeff
	offset    float64
	qpb       *Builder
}

// NewLinearExpr creates a new empty LinearExpr.
func NewLinearExpr() *LinearExpr {
	return &LinearExpr{}
}

// NewConstant creates and returns a LinearExpr containing the constant `c`.
func NewConstant(c float64) *LinearExpr {
	return &LinearExpr{offset: c}
}

func (l *LinearExpr) setBuilder(qpb *Builder) {
	switch {
	case qpb == nil || l.qpb == qpb:
	case l.qpb == nil:
		l.qpb = qpb
	default:
		l.qpb = mixedBuilder
	}
}

func (l *LinearExpr) builder() *Builder {
	return l.qpb
}

// Add adds the linear argument term to the LinearExpr and returns itself.
func (l *LinearExpr) Add(la LinearArgument) *LinearExpr {
	return l.AddTerm(la, 1)
}

// AddConstant adds the constant to the LinearExpr and returns itself.
func (l *LinearExpr) AddConstant(c float64) *LinearExpr {
	l.offset += c
	return l
}

// AddTerm adds the linear argument term with the given coefficient to the LinearExpr and returns
// itself.
func (l *LinearExpr) AddTerm(la LinearArgument, coeff float64) *LinearExpr {
	la.addToLinearExpr(l, coeff)
	return l
}

// AddSum adds the sum of the variables to the LinearExpr and returns itself.
func (l *LinearExpr) AddSum(vars ...BinaryVar) *LinearExpr {
	for _, v := range vars {
		l.Add(v)
	}
	return l
}

// AddWeightedSum adds the variables with the corresponding coefficients to the LinearExpr and
// returns itself.
func (l *LinearExpr) AddWeightedSum(vars []BinaryVar, coeffs []float64) *LinearExpr {
	if len(coeffs) != len(vars) {
		log.Fatalf("vars and coeffs must be the same length: %v != %v", len(vars), len(coeffs))
	}
	for i, v := range vars {
		l.AddTerm(v, coeffs[i])
	}
	return l
}

// Offset returns the constant part of the expression.
func (l *LinearExpr) Offset() float64 {
	return l.offset
}

func (l *LinearExpr) addToLinearExpr(e *LinearExpr, c float64) {
	e.setBuilder(l.qpb)
	for _, vc := range l.varCoeffs {
		e.varCoeffs = append(e.varCoeffs, varCoeff{ind: vc.ind, coeff: vc.coeff * c})
	}
	e.offset += l.offset * c
}

func (l *LinearExpr) addToQuadraticExpr(e *QuadraticExpr, c float64) {
	l.addToLinearExpr(&e.linear, c)
}

// QuadraticExpr is a container for a quadratic expression: a linear expression plus products of
// two variables.
type QuadraticExpr struct {
	linear     LinearExpr
	pairCoeffs []pairCoeff
}

// NewQuadraticExpr creates a new empty QuadraticExpr.
func NewQuadraticExpr() *QuadraticExpr {
	return &QuadraticExpr{}
}

func (q *QuadraticExpr) builder() *Builder {
	return q.linear.qpb
}

// Add adds the argument to the QuadraticExpr and returns itself.
func (q *QuadraticExpr) Add(a Argument) *QuadraticExpr {
	return q.AddTerm(a, 1)
}

// AddTerm adds the argument with the given coefficient to the QuadraticExpr and returns itself.
func (q *QuadraticExpr) AddTerm(a Argument, coeff float64) *QuadraticExpr {
	a.addToQuadraticExpr(q, coeff)
	return q
}

// AddConstant adds the constant to the QuadraticExpr and returns itself.
func (q *QuadraticExpr) AddConstant(c float64) *QuadraticExpr {
	q.linear.offset += c
	return q
}

// AddProduct adds `coeff * a * b` to the QuadraticExpr and returns itself. Both factors are
// expanded, so `AddProduct(x, NewConstant(1).AddTerm(y, -1), w)` adds `w*x - w*x*y`.
func (q *QuadraticExpr) AddProduct(a, b LinearArgument, coeff float64) *QuadraticExpr {
	ea := NewLinearExpr().Add(a)
	eb := NewLinearExpr().Add(b)
	q.linear.setBuilder(ea.qpb)
	q.linear.setBuilder(eb.qpb)

	q.linear.offset += coeff * ea.offset * eb.offset
	for _, vc := range ea.varCoeffs {
		q.linear.varCoeffs = append(q.linear.varCoeffs, varCoeff{ind: vc.ind, coeff: coeff * vc.coeff * eb.offset})
	}
	for _, vc := range eb.varCoeffs {
		q.linear.varCoeffs = append(q.linear.varCoeffs, varCoeff{ind: vc.ind, coeff: coeff * vc.coeff * ea.offset})
	}
	for _, va := range ea.varCoeffs {
		for _, vb := range eb.varCoeffs {
			q.pairCoeffs = append(q.pairCoeffs, pairCoeff{i: va.ind, j: vb.ind, coeff: coeff * va.coeff * vb.coeff})
		}
	}
	return q
}

func (q *QuadraticExpr) addToQuadraticExpr(e *QuadraticExpr, c float64) {
	q.linear.addToQuadraticExpr(e, c)
	for _, pc := range q.pairCoeffs {
		e.pairCoeffs = append(e.pairCoeffs, pairCoeff{i: pc.i, j: pc.j, coeff: pc.coeff * c})
	}
}

// normalize merges duplicated terms and drops zero coefficients. Products are keyed with i <= j,
// and squares are folded into the linear part since x*x == x for binary variables.
func (q *QuadraticExpr) normalize() (float64, []Term, []QuadTerm) {
	linear := make(map[VarIndex]float64)
	for _, vc := range q.linear.varCoeffs {
		linear[vc.ind] += vc.coeff
	}
	quadratic := make(map[[2]VarIndex]float64)
	for _, pc := range q.pairCoeffs {
		i, j := pc.i, pc.j
		if i == j {
			linear[i] += pc.coeff
			continue
		}
		if i > j {
			i, j = j, i
		}
		quadratic[[2]VarIndex{i, j}] += pc.coeff
	}

	var lin []Term
	for ind, c := range linear {
		if c != 0 {
			lin = append(lin, Term{Var: ind, Coeff: c})
		}
	}
	sort.Slice(lin, func(a, b int) bool { return lin[a].Var < lin[b].Var })

	var quad []QuadTerm
	for key, c := range quadratic {
		if c != 0 {
			quad = append(quad, QuadTerm{I: key[0], J: key[1], Coeff: c})
		}
	}
	sort.Slice(quad, func(a, b int) bool {
		if quad[a].I != quad[b].I {
			return quad[a].I < quad[b].I
		}
		return quad[a].J < quad[b].J
	})
	return q.linear.offset, lin, quad
}
