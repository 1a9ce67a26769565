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

// Package qpsolver solves small quadratic binary models exactly with the gophersat
// pseudo-boolean solver.
package qpsolver

import (
	"bytes"
	"fmt"

	"github.com/crillab/gophersat/solver"
	log "github.com/golang/glog"
	"github.com/qopt/optimization/qopt/qpmodel"
)

// Solve returns an optimal assignment of `m`. Products of variables are linearized, so every
// coefficient and right-hand side must be an integer.
//
// The returned result has status Infeasible if no assignment satisfies the constraints; the
// assignment it carries is then all zeros. Solve returns an error wrapping ErrNonIntegral if `m`
// has a non-integral coefficient.
func Solve(m *qpmodel.Model) (*qpmodel.Result, error) {
	n := m.NumVariables()
	if n == 0 {
		return qpmodel.NewResult(m, nil)
	}

	pb, err := newPBProblem(m)
	if err != nil {
		return nil, err
	}
	if pb.infeasible {
		log.V(1).Infof("model %q has a constraint that never holds", m.Name)
		return infeasibleResult(m)
	}
	if len(pb.objective) == 0 && len(pb.constraints) == 0 {
		return qpmodel.NewResult(m, make([]float64, n))
	}

	var opb bytes.Buffer
	if err := pb.write(&opb); err != nil {
		return nil, fmt.Errorf("writing OPB for model %q failed: %w", m.Name, err)
	}
	problem, err := solver.ParseOPB(&opb)
	if err != nil {
		return nil, fmt.Errorf("parsing OPB for model %q failed: %w", m.Name, err)
	}

	s := solver.New(problem)
	cost := s.Minimize()
	if cost < 0 {
		log.V(1).Infof("model %q is infeasible", m.Name)
		return infeasibleResult(m)
	}

	bits := make([]bool, n)
	copy(bits, s.Model())
	r, err := qpmodel.NewResultFromBits(m, bits)
	if err != nil {
		return nil, err
	}
	if r.Status != qpmodel.Success {
		log.Errorf("model %q: pseudo-boolean solution %v violates constraints %v", m.Name, bits, violations(m, r.X))
		r.Status = qpmodel.Failure
	}
	log.V(1).Infof("model %q solved: minimized value %v, objective %v", m.Name, float64(cost)+pb.objConstant, r.Fval)
	return r, nil
}

func infeasibleResult(m *qpmodel.Model) (*qpmodel.Result, error) {
	r, err := qpmodel.NewResult(m, make([]float64, m.NumVariables()))
	if err != nil {
		return nil, err
	}
	r.Status = qpmodel.Infeasible
	return r, nil
}

func violations(m *qpmodel.Model, x []float64) []qpmodel.ConstrIndex {
	v, err := m.ConstraintViolations(x)
	if err != nil {
		return nil
	}
	return v
}
