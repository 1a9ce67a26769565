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

package applications

import (
	"testing"

	"github.com/qopt/optimization/qopt/qpmodel"
	"gonum.org/v1/gonum/graph/simple"
)

func buildModel[T any](t *testing.T, app Application[T]) *qpmodel.Model {
	t.Helper()
	m, err := app.QuadraticProgram()
	if err != nil {
		t.Fatalf("QuadraticProgram() returned with unexpected error %v", err)
	}
	return m
}

func newResult(t *testing.T, m *qpmodel.Model, x ...float64) *qpmodel.Result {
	t.Helper()
	r, err := qpmodel.NewResult(m, x)
	if err != nil {
		t.Fatalf("NewResult() returned with unexpected error %v", err)
	}
	return r
}

// bestAssignment enumerates every assignment of a small model and returns the first feasible
// one with the best objective value, or nil if none is feasible.
func bestAssignment(t *testing.T, m *qpmodel.Model) *qpmodel.Result {
	t.Helper()
	n := m.NumVariables()
	if n > 16 {
		t.Fatalf("model %q has %d variables, too many to enumerate", m.Name, n)
	}
	var best *qpmodel.Result
	for mask := 0; mask < 1<<n; mask++ {
		x := make([]float64, n)
		for i := range x {
			if mask&(1<<i) != 0 {
				x[i] = 1
			}
		}
		r := newResult(t, m, x...)
		if r.Status != qpmodel.Success {
			continue
		}
		switch {
		case best == nil:
			best = r
		case m.Objective.Sense == qpmodel.Minimize && r.Fval < best.Fval:
			best = r
		case m.Objective.Sense == qpmodel.Maximize && r.Fval > best.Fval:
			best = r
		}
	}
	return best
}

// diamondGraph returns the unweighted graph with the triangle 0-1-2 and the edge 2-3.
func diamondGraph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for _, e := range [][2]int64{{0, 1}, {1, 2}, {0, 2}, {2, 3}} {
		g.SetEdge(g.NewEdge(simple.Node(e[0]), simple.Node(e[1])))
	}
	return g
}

// completeGraph returns the complete weighted graph where weights[i][j] is the weight of the
// edge between i and j, i < j.
func completeGraph(weights [][]float64) *simple.WeightedUndirectedGraph {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for i := range weights {
		g.AddNode(simple.Node(i))
	}
	for i := range weights {
		for j := i + 1; j < len(weights); j++ {
			g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(i), simple.Node(j), weights[i][j]))
		}
	}
	return g
}
