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

// Package qpmodel offers a user-friendly API to build quadratic programs over binary variables.
//
// The `Builder` struct accumulates the variables, the objective and the constraints of a model.
// `BinaryVar` values are references to specific variables of a builder.
// The `LinearExpr` and `QuadraticExpr` structs provide helper methods for creating constraints
// and the objective from expressions with many variables and coefficients.
// Calling `Builder.Model()` returns an immutable, normalized `Model`.
package qpmodel

import (
	"errors"
	"fmt"

	log "github.com/golang/glog"
)

var (
	// ErrMixedModels holds the error when elements added to a model are different.
	ErrMixedModels = errors.New("elements are not part of the same model")
	// ErrDuplicateName holds the error when two variables share a name.
	ErrDuplicateName = errors.New("duplicate variable name")
)

type (
	// VarIndex is the index of a variable in the model.
	VarIndex int32
	// ConstrIndex is the index of a constraint in the model.
	ConstrIndex int32
)

// Sense is the direction of the objective.
type Sense int

const (
	// Minimize asks for the smallest objective value.
	Minimize Sense = iota
	// Maximize asks for the largest objective value.
	Maximize
)

func (s Sense) String() string {
	switch s {
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	}
	return fmt.Sprintf("Sense(%d)", int(s))
}

// ConstraintSense is the relation between the left-hand side and the right-hand side of a
// constraint.
type ConstraintSense int

const (
	// EQ is `lhs == rhs`.
	EQ ConstraintSense = iota
	// LE is `lhs <= rhs`.
	LE
	// GE is `lhs >= rhs`.
	GE
)

func (s ConstraintSense) String() string {
	switch s {
	case EQ:
		return "=="
	case LE:
		return "<="
	case GE:
		return ">="
	}
	return fmt.Sprintf("ConstraintSense(%d)", int(s))
}

// Argument provides an interface for BinaryVar, LinearExpr and QuadraticExpr.
type Argument interface {
	addToQuadraticExpr(e *QuadraticExpr, c float64)
	builder() *Builder
}

// LinearArgument provides an interface for BinaryVar and LinearExpr.
type LinearArgument interface {
	Argument
	addToLinearExpr(e *LinearExpr, c float64)
}

// BinaryVar is a reference to a binary variable in the model.
type BinaryVar struct {
	ind VarIndex
	qpb *Builder
}

// Index returns the index of the variable.
func (b BinaryVar) Index() VarIndex {
	return b.ind
}

// Name returns the name of the variable.
func (b BinaryVar) Name() string {
	return b.qpb.vars[b.ind].Name
}

func (b BinaryVar) builder() *Builder {
	return b.qpb
}

func (b BinaryVar) addToLinearExpr(e *LinearExpr, c float64) {
	e.setBuilder(b.qpb)
	e.varCoeffs = append(e.varCoeffs, varCoeff{ind: b.ind, coeff: c})
}

func (b BinaryVar) addToQuadraticExpr(e *QuadraticExpr, c float64) {
	b.addToLinearExpr(&e.linear, c)
}

// Constraint is a reference to a constraint in the model.
type Constraint struct {
	ind ConstrIndex
	qpb *Builder
}

// Index returns the index of the constraint.
func (c Constraint) Index() ConstrIndex {
	return c.ind
}

// Name returns the name of the constraint.
func (c Constraint) Name() string {
	return c.qpb.constraints[c.ind].Name
}

// WithName sets the name of the constraint.
func (c Constraint) WithName(s string) Constraint {
	c.qpb.constraints[c.ind].Name = s
	return c
}

// checkSameModelAndSetErrorf returns true if `qp` and `qp2` point to the same Builder, or if
// `qp2` is nil (constant expressions). If false, an error with the error message `format` is
// set on `qp` if `qp.err` is nil.
func (qp *Builder) checkSameModelAndSetErrorf(qp2 *Builder, format string, a ...any) bool {
	if qp2 == nil || qp == qp2 {
		return true
	}
	var args = make([]any, len(a)+1)
	copy(args, a)
	args[len(a)] = ErrMixedModels
	qp.setErrorf(format+": %w", args...)
	return false
}

func (qp *Builder) setErrorf(format string, a ...any) {
	err := fmt.Errorf(format, a...)
	log.Errorf("%v; use `-log_backtrace_at` flag to get the error stack", err)
	if qp.err == nil {
		qp.err = err
	}
}

// Builder accumulates the variables, objective and constraints of a quadratic program.
type Builder struct {
	name        string
	vars        []Variable
	names       map[string]VarIndex
	objective   Objective
	constraints []Row
	// The first and only the first error is reported in Model.
	err error
}

// NewBuilder creates and returns a new Builder for a model named `name`.
func NewBuilder(name string) *Builder {
	return &Builder{name: name, names: make(map[string]VarIndex)}
}

// Name returns the name of the model.
func (qp *Builder) Name() string {
	return qp.name
}

// NewBinaryVar creates a new binary variable. An empty `name` generates `x_<index>`. Reusing a
// name records an error wrapping ErrDuplicateName.
func (qp *Builder) NewBinaryVar(name string) BinaryVar {
	ind := VarIndex(len(qp.vars))
	if name == "" {
		name = fmt.Sprintf("x_%d", ind)
	}
	if prev, ok := qp.names[name]; ok {
		qp.setErrorf("variable %d named %q already used by variable %d: %w", ind, name, prev, ErrDuplicateName)
	} else {
		qp.names[name] = ind
	}
	qp.vars = append(qp.vars, Variable{Name: name, Type: Binary})
	return BinaryVar{ind: ind, qpb: qp}
}

// NewBinaryVars creates `n` binary variables named `<prefix><index>`, where index counts from 0.
func (qp *Builder) NewBinaryVars(n int, prefix string) []BinaryVar {
	vars := make([]BinaryVar, n)
	for i := range vars {
		vars[i] = qp.NewBinaryVar(fmt.Sprintf("%s%d", prefix, i))
	}
	return vars
}

// NumVariables returns the number of variables created so far.
func (qp *Builder) NumVariables() int {
	return len(qp.vars)
}

func (qp *Builder) setObjective(sense Sense, obj Argument) {
	if !qp.checkSameModelAndSetErrorf(obj.builder(), "invalid objective added to model %q", qp.name) {
		return
	}
	offset, linear, quadratic := NewQuadraticExpr().Add(obj).normalize()
	qp.objective = Objective{Sense: sense, Constant: offset, Linear: linear, Quadratic: quadratic}
}

// Minimize sets the objective to minimize `obj`.
func (qp *Builder) Minimize(obj Argument) {
	qp.setObjective(Minimize, obj)
}

// Maximize sets the objective to maximize `obj`.
func (qp *Builder) Maximize(obj Argument) {
	qp.setObjective(Maximize, obj)
}

// addConstraint adds the constraint `expr sense rhs`. The constant offset of `expr` is
// subtracted from `rhs`.
func (qp *Builder) addConstraint(expr Argument, sense ConstraintSense, rhs float64) Constraint {
	ind := ConstrIndex(len(qp.constraints))
	c := Row{Name: fmt.Sprintf("c%d", ind), Sense: sense}
	if qp.checkSameModelAndSetErrorf(expr.builder(), "invalid expression in constraint %d", ind) {
		offset, linear, quadratic := NewQuadraticExpr().Add(expr).normalize()
		c.Linear = linear
		c.Quadratic = quadratic
		c.Rhs = rhs - offset
	}
	qp.constraints = append(qp.constraints, c)
	return Constraint{ind: ind, qpb: qp}
}

// AddEquality adds the constraint `expr == rhs`.
func (qp *Builder) AddEquality(expr Argument, rhs float64) Constraint {
	return qp.addConstraint(expr, EQ, rhs)
}

// AddLessOrEqual adds the constraint `expr <= rhs`.
func (qp *Builder) AddLessOrEqual(expr Argument, rhs float64) Constraint {
	return qp.addConstraint(expr, LE, rhs)
}

// AddGreaterOrEqual adds the constraint `expr >= rhs`.
func (qp *Builder) AddGreaterOrEqual(expr Argument, rhs float64) Constraint {
	return qp.addConstraint(expr, GE, rhs)
}

// AddExactlyOne adds the constraint that exactly one of the variables is set.
func (qp *Builder) AddExactlyOne(vars ...BinaryVar) Constraint {
	return qp.AddEquality(NewLinearExpr().AddSum(vars...), 1)
}

// AddAtMostOne adds the constraint that at most one of the variables is set.
func (qp *Builder) AddAtMostOne(vars ...BinaryVar) Constraint {
	return qp.AddLessOrEqual(NewLinearExpr().AddSum(vars...), 1)
}

// AddAtLeastOne adds the constraint that at least one of the variables is set.
func (qp *Builder) AddAtLeastOne(vars ...BinaryVar) Constraint {
	return qp.AddGreaterOrEqual(NewLinearExpr().AddSum(vars...), 1)
}

// Model returns the built model. The returned model does not share memory with the Builder and
// later calls on the Builder do not change it.
//
// Model returns an error when invalid parameters have been used during model building (e.g.
// passing variables from other builders or reusing variable names).
func (qp *Builder) Model() (*Model, error) {
	if qp.err != nil {
		return nil, qp.err
	}
	m := &Model{
		Name:        qp.name,
		Variables:   append([]Variable(nil), qp.vars...),
		Objective:   qp.objective.clone(),
		Constraints: make([]Row, len(qp.constraints)),
	}
	for i, c := range qp.constraints {
		m.Constraints[i] = c.clone()
	}
	log.V(1).Infof("built model %q: %d variables, %d constraints", m.Name, len(m.Variables), len(m.Constraints))
	return m, nil
}
