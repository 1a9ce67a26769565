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

import "fmt"

// Status is the outcome of an optimization.
type Status int

const (
	// Success means the assignment satisfies every constraint.
	Success Status = iota
	// Failure means the optimizer did not produce a usable assignment.
	Failure
	// Infeasible means the assignment violates some constraint, or that no feasible assignment
	// exists.
	Infeasible
)

func (s Status) String() string {
	switch s {
	case Success:
		return "SUCCESS"
	case Failure:
		return "FAILURE"
	case Infeasible:
		return "INFEASIBLE"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is a solution vector for a Model: X[i] is the value of variable i.
type Result struct {
	X      []float64
	Fval   float64
	Status Status
}

// NewResult evaluates the assignment `x` on `m`. The status is Success if `x` is feasible,
// Infeasible otherwise.
func NewResult(m *Model, x []float64) (*Result, error) {
	fval, err := m.Evaluate(x)
	if err != nil {
		return nil, err
	}
	feasible, err := m.IsFeasible(x)
	if err != nil {
		return nil, err
	}
	status := Success
	if !feasible {
		status = Infeasible
	}
	return &Result{X: append([]float64(nil), x...), Fval: fval, Status: status}, nil
}

// NewResultFromBits is NewResult for an assignment given as booleans.
func NewResultFromBits(m *Model, bits []bool) (*Result, error) {
	x := make([]float64, len(bits))
	for i, b := range bits {
		if b {
			x[i] = 1
		}
	}
	return NewResult(m, x)
}

// Len returns the number of values in the result.
func (r *Result) Len() int {
	return len(r.X)
}

// Value returns the value of variable `i`.
func (r *Result) Value(i int) float64 {
	return r.X[i]
}

// IsSet returns true if variable `i` is selected, i.e. has a non-zero value.
func (r *Result) IsSet(i int) bool {
	return r.X[i] != 0
}

// SelectedIndices returns the indices of the selected variables in increasing order.
func (r *Result) SelectedIndices() []int {
	var selected []int
	for i := range r.X {
		if r.IsSet(i) {
			selected = append(selected, i)
		}
	}
	return selected
}
