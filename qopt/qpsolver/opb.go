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

package qpsolver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/qopt/optimization/qopt/qpmodel"
)

// ErrNonIntegral holds the error when a model has a coefficient or a right-hand side that is not
// an integer. Pseudo-boolean constraints only accept integer weights.
var ErrNonIntegral = errors.New("non-integral coefficient")

// literal is a 1-based OPB variable, negated when `neg` is set.
type literal struct {
	v   int
	neg bool
}

func (l literal) String() string {
	if l.neg {
		return fmt.Sprintf("~x%d", l.v)
	}
	return fmt.Sprintf("x%d", l.v)
}

type pbTerm struct {
	weight int
	lit    literal
}

// pbConstr is the constraint `sum(terms) >= atLeast` with positive weights.
type pbConstr struct {
	terms   []pbTerm
	atLeast int
}

// pbProblem is a model rewritten for a pseudo-boolean solver: products of variables are replaced
// by auxiliary variables, every constraint is a `>=` with positive weights and the objective is
// minimized.
type pbProblem struct {
	numVars int
	numAux  int
	// objConstant is the value of the objective that the minimized terms do not carry.
	objConstant float64
	objective   []pbTerm
	constraints []pbConstr
	// infeasible is set when a constraint can never be satisfied.
	infeasible bool
}

func toInt(c float64, what string) (int, error) {
	if c != math.Trunc(c) || math.IsInf(c, 0) || math.Abs(c) > math.MaxInt32 {
		return 0, fmt.Errorf("%s has value %v: %w", what, c, ErrNonIntegral)
	}
	return int(c), nil
}

// positive rewrites `w * x` with w < 0 as `|w| * ~x - |w|` and returns the term with the
// constant to move to the other side.
func positive(w int, l literal) (pbTerm, int) {
	if w < 0 {
		return pbTerm{weight: -w, lit: literal{v: l.v, neg: !l.neg}}, -w
	}
	return pbTerm{weight: w, lit: l}, 0
}

type pbBuilder struct {
	pb  *pbProblem
	aux map[[2]qpmodel.VarIndex]int
}

// product returns the auxiliary variable standing for `x_i * x_j`. The first request adds the
// constraints `y <= x_i`, `y <= x_j` and `y >= x_i + x_j - 1`.
func (b *pbBuilder) product(i, j qpmodel.VarIndex) int {
	key := [2]qpmodel.VarIndex{i, j}
	if y, ok := b.aux[key]; ok {
		return y
	}
	b.pb.numAux++
	y := b.pb.numVars + b.pb.numAux
	b.aux[key] = y
	xi := literal{v: int(i) + 1}
	xj := literal{v: int(j) + 1}
	yl := literal{v: y}
	b.addGreaterOrEqual([]int{1, -1}, []literal{xi, yl}, 0)
	b.addGreaterOrEqual([]int{1, -1}, []literal{xj, yl}, 0)
	b.addGreaterOrEqual([]int{1, -1, -1}, []literal{yl, xi, xj}, -1)
	return y
}

// addGreaterOrEqual adds `sum(weights[k] * lits[k]) >= rhs`. Constraints that always hold are
// dropped.
func (b *pbBuilder) addGreaterOrEqual(weights []int, lits []literal, rhs int) {
	c := pbConstr{atLeast: rhs}
	sum := 0
	for k, w := range weights {
		if w == 0 {
			continue
		}
		t, shift := positive(w, lits[k])
		c.terms = append(c.terms, t)
		c.atLeast += shift
		sum += t.weight
	}
	if c.atLeast <= 0 {
		return
	}
	if sum < c.atLeast {
		b.pb.infeasible = true
	}
	if len(c.terms) == 0 {
		return
	}
	b.pb.constraints = append(b.pb.constraints, c)
}

// row returns the weights and literals of a linear and quadratic expression.
func (b *pbBuilder) row(linear []qpmodel.Term, quadratic []qpmodel.QuadTerm, what string) ([]int, []literal, error) {
	var weights []int
	var lits []literal
	for _, t := range linear {
		w, err := toInt(t.Coeff, fmt.Sprintf("%s coefficient of variable %d", what, t.Var))
		if err != nil {
			return nil, nil, err
		}
		weights = append(weights, w)
		lits = append(lits, literal{v: int(t.Var) + 1})
	}
	for _, q := range quadratic {
		w, err := toInt(q.Coeff, fmt.Sprintf("%s coefficient of variables %d*%d", what, q.I, q.J))
		if err != nil {
			return nil, nil, err
		}
		weights = append(weights, w)
		lits = append(lits, literal{v: b.product(q.I, q.J)})
	}
	return weights, lits, nil
}

func newPBProblem(m *qpmodel.Model) (*pbProblem, error) {
	b := &pbBuilder{
		pb:  &pbProblem{numVars: m.NumVariables()},
		aux: make(map[[2]qpmodel.VarIndex]int),
	}

	sign := 1.0
	if m.Objective.Sense == qpmodel.Maximize {
		sign = -1
	}
	weights, lits, err := b.row(m.Objective.Linear, m.Objective.Quadratic, "objective")
	if err != nil {
		return nil, err
	}
	for k, w := range weights {
		t, shift := positive(int(sign)*w, lits[k])
		b.pb.objective = append(b.pb.objective, t)
		b.pb.objConstant -= float64(shift)
	}
	b.pb.objConstant = sign*m.Objective.Constant + b.pb.objConstant

	for _, c := range m.Constraints {
		weights, lits, err := b.row(c.Linear, c.Quadratic, fmt.Sprintf("constraint %q", c.Name))
		if err != nil {
			return nil, err
		}
		rhs, err := toInt(c.Rhs, fmt.Sprintf("right-hand side of constraint %q", c.Name))
		if err != nil {
			return nil, err
		}
		switch c.Sense {
		case qpmodel.GE:
			b.addGreaterOrEqual(weights, lits, rhs)
		case qpmodel.LE:
			b.addGreaterOrEqual(negate(weights), lits, -rhs)
		case qpmodel.EQ:
			b.addGreaterOrEqual(weights, lits, rhs)
			b.addGreaterOrEqual(negate(weights), lits, -rhs)
		default:
			return nil, fmt.Errorf("constraint %q has unknown sense %v", c.Name, c.Sense)
		}
	}
	return b.pb, nil
}

func negate(weights []int) []int {
	neg := make([]int, len(weights))
	for k, w := range weights {
		neg[k] = -w
	}
	return neg
}

func writeTerms(w *bufio.Writer, terms []pbTerm) {
	sorted := append([]pbTerm(nil), terms...)
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].lit.v < sorted[b].lit.v })
	for _, t := range sorted {
		fmt.Fprintf(w, "+%d %v ", t.weight, t.lit)
	}
}

func (pb *pbProblem) write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "* #variable= %d #constraint= %d\n", pb.numVars+pb.numAux, len(pb.constraints))
	if pb.infeasible {
		bw.WriteString("* infeasible\n")
	}
	if len(pb.objective) > 0 {
		bw.WriteString("min: ")
		writeTerms(bw, pb.objective)
		bw.WriteString(";\n")
	}
	for _, c := range pb.constraints {
		writeTerms(bw, c.terms)
		fmt.Fprintf(bw, ">= %d ;\n", c.atLeast)
	}
	return bw.Flush()
}

// WriteOPB writes `m` to `w` in the OPB format read by pseudo-boolean solvers. Variable i of the
// model is `x<i+1>`; each product of variables in the model gets an auxiliary variable numbered
// after the model variables. A maximized objective is negated. Constraints that always hold are
// left out, and constraints without variables that never hold are reported by an
// `* infeasible` comment line.
//
// WriteOPB returns an error wrapping ErrNonIntegral if a coefficient or right-hand side of `m`
// is not an integer.
func WriteOPB(w io.Writer, m *qpmodel.Model) error {
	pb, err := newPBProblem(m)
	if err != nil {
		return err
	}
	return pb.write(w)
}
