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
	"errors"
	"fmt"
	"math"
)

// ErrSizeMismatch holds the error when an assignment does not have one value per variable.
var ErrSizeMismatch = errors.New("assignment size does not match the number of variables")

// feasibilityTolerance is the slack allowed when checking constraints on float values.
const feasibilityTolerance = 1e-9

// VarType is the type of a model variable.
type VarType int

const (
	// Binary variables take values in {0, 1}.
	Binary VarType = iota
)

func (t VarType) String() string {
	if t == Binary {
		return "binary"
	}
	return fmt.Sprintf("VarType(%d)", int(t))
}

// Variable describes a decision variable of a Model.
type Variable struct {
	Name string
	Type VarType
}

// Term is `Coeff * x[Var]`.
type Term struct {
	Var   VarIndex
	Coeff float64
}

// QuadTerm is `Coeff * x[I] * x[J]` with I < J.
type QuadTerm struct {
	I, J  VarIndex
	Coeff float64
}

// Objective is `Constant + sum(Linear) + sum(Quadratic)`, optimized in the given Sense.
type Objective struct {
	Sense     Sense
	Constant  float64
	Linear    []Term
	Quadratic []QuadTerm
}

func (o Objective) clone() Objective {
	o.Linear = append([]Term(nil), o.Linear...)
	o.Quadratic = append([]QuadTerm(nil), o.Quadratic...)
	return o
}

// Row is a constraint `sum(Linear) + sum(Quadratic) Sense Rhs`.
type Row struct {
	Name      string
	Sense     ConstraintSense
	Rhs       float64
	Linear    []Term
	Quadratic []QuadTerm
}

func (r Row) clone() Row {
	r.Linear = append([]Term(nil), r.Linear...)
	r.Quadratic = append([]QuadTerm(nil), r.Quadratic...)
	return r
}

// IsQuadratic returns true if the constraint has product terms.
func (r Row) IsQuadratic() bool {
	return len(r.Quadratic) > 0
}

// Activity returns the value of the left-hand side of the constraint for the assignment `x`.
func (r Row) Activity(x []float64) float64 {
	return evaluateTerms(r.Linear, r.Quadratic, x)
}

// IsSatisfied returns true if the assignment `x` satisfies the constraint.
func (r Row) IsSatisfied(x []float64) bool {
	a := r.Activity(x)
	switch r.Sense {
	case EQ:
		return math.Abs(a-r.Rhs) <= feasibilityTolerance
	case LE:
		return a <= r.Rhs+feasibilityTolerance
	case GE:
		return a >= r.Rhs-feasibilityTolerance
	}
	return false
}

// LinearCoefficients returns the linear terms keyed by variable index.
func LinearCoefficients(terms []Term) map[VarIndex]float64 {
	m := make(map[VarIndex]float64, len(terms))
	for _, t := range terms {
		m[t.Var] = t.Coeff
	}
	return m
}

// QuadraticCoefficients returns the product terms keyed by variable index pairs.
func QuadraticCoefficients(terms []QuadTerm) map[[2]VarIndex]float64 {
	m := make(map[[2]VarIndex]float64, len(terms))
	for _, t := range terms {
		m[[2]VarIndex{t.I, t.J}] = t.Coeff
	}
	return m
}

// Model is a built quadratic program over binary variables. Variable i is the i-th variable
// created on the Builder, and every term refers to variables by that index.
type Model struct {
	Name        string
	Variables   []Variable
	Objective   Objective
	Constraints []Row
}

// NumVariables returns the number of variables of the model.
func (m *Model) NumVariables() int {
	return len(m.Variables)
}

// NumConstraints returns the number of constraints of the model.
func (m *Model) NumConstraints() int {
	return len(m.Constraints)
}

// VariableIndex returns the index of the variable named `name`, or false if there is none.
func (m *Model) VariableIndex(name string) (VarIndex, bool) {
	for i, v := range m.Variables {
		if v.Name == name {
			return VarIndex(i), true
		}
	}
	return 0, false
}

func (m *Model) checkSize(x []float64) error {
	if len(x) != len(m.Variables) {
		return fmt.Errorf("model %q has %d variables, got %d values: %w", m.Name, len(m.Variables), len(x), ErrSizeMismatch)
	}
	return nil
}

// Evaluate returns the objective value for the assignment `x`.
func (m *Model) Evaluate(x []float64) (float64, error) {
	if err := m.checkSize(x); err != nil {
		return 0, err
	}
	return m.Objective.Constant + evaluateTerms(m.Objective.Linear, m.Objective.Quadratic, x), nil
}

// ConstraintViolations returns the indices of the constraints that `x` does not satisfy.
func (m *Model) ConstraintViolations(x []float64) ([]ConstrIndex, error) {
	if err := m.checkSize(x); err != nil {
		return nil, err
	}
	var violated []ConstrIndex
	for i, c := range m.Constraints {
		if !c.IsSatisfied(x) {
			violated = append(violated, ConstrIndex(i))
		}
	}
	return violated, nil
}

// IsFeasible returns true if `x` is a binary assignment satisfying every constraint.
func (m *Model) IsFeasible(x []float64) (bool, error) {
	violated, err := m.ConstraintViolations(x)
	if err != nil {
		return false, err
	}
	for _, v := range x {
		if v != 0 && v != 1 {
			return false, nil
		}
	}
	return len(violated) == 0, nil
}

func evaluateTerms(linear []Term, quadratic []QuadTerm, x []float64) float64 {
	var result float64
	for _, t := range linear {
		result += t.Coeff * x[t.Var]
	}
	for _, t := range quadratic {
		result += t.Coeff * x[t.I] * x[t.J]
	}
	return result
}
