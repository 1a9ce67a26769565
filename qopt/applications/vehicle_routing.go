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
	"fmt"

	"github.com/qopt/optimization/qopt/qpmodel"
	"gonum.org/v1/gonum/graph"
)

// VehicleRouting converts a vehicle routing instance: `vehicles` routes leave the depot and
// come back to it, together visiting every other node of a complete graph exactly once, with
// minimum total weight.
// See https://en.wikipedia.org/wiki/Vehicle_routing_problem.
type VehicleRouting struct {
	nodes    graphIndex
	vehicles int
	depot    int64
}

// NewVehicleRouting returns the vehicle routing instance of the complete graph `g`.
func NewVehicleRouting(g graph.Undirected, vehicles int, depot int64) *VehicleRouting {
	return &VehicleRouting{nodes: newGraphIndex(g), vehicles: vehicles, depot: depot}
}

// arcIndex returns the variable index of the arc from node index i to node index j, i != j.
// Arcs are numbered row by row, skipping the diagonal.
func arcIndex(i, j, n int) int {
	if j > i {
		j--
	}
	return i*(n-1) + j
}

// QuadraticProgram returns a model with one variable `x_<i>_<j>` per arc between distinct node
// indices, numbered by arcIndex, minimizing the weight of the selected arcs. Constraints, in
// order: one outgoing arc per non-depot node, one incoming arc per non-depot node, `vehicles`
// arcs into and out of the depot, and for every set S of at least two non-depot nodes at most
// |S|-1 arcs inside S.
func (vr *VehicleRouting) QuadraticProgram() (*qpmodel.Model, error) {
	n := vr.nodes.numNodes()
	depot, err := vr.nodes.indexOf(vr.depot)
	if err != nil {
		return nil, fmt.Errorf("invalid depot: %w", err)
	}

	model := qpmodel.NewBuilder("Vehicle routing")
	x := make([][]qpmodel.BinaryVar, n)
	obj := qpmodel.NewLinearExpr()
	for i := 0; i < n; i++ {
		x[i] = make([]qpmodel.BinaryVar, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			w, err := vr.nodes.completeWeight(i, j)
			if err != nil {
				return nil, fmt.Errorf("vehicle routing needs a complete graph: %w", err)
			}
			x[i][j] = model.NewBinaryVar(fmt.Sprintf("x_%d_%d", i, j))
			obj.AddTerm(x[i][j], w)
		}
	}
	model.Minimize(obj)

	var customers []int
	for i := 0; i < n; i++ {
		if i != depot {
			customers = append(customers, i)
		}
	}
	for _, i := range customers {
		out := qpmodel.NewLinearExpr()
		for j := 0; j < n; j++ {
			if j != i {
				out.Add(x[i][j])
			}
		}
		model.AddEquality(out, 1)
	}
	for _, j := range customers {
		in := qpmodel.NewLinearExpr()
		for i := 0; i < n; i++ {
			if i != j {
				in.Add(x[i][j])
			}
		}
		model.AddEquality(in, 1)
	}
	toDepot := qpmodel.NewLinearExpr()
	fromDepot := qpmodel.NewLinearExpr()
	for _, i := range customers {
		toDepot.Add(x[i][depot])
		fromDepot.Add(x[depot][i])
	}
	model.AddEquality(toDepot, float64(vr.vehicles))
	model.AddEquality(fromDepot, float64(vr.vehicles))

	for size := 2; size <= len(customers); size++ {
		combinations(customers, size, func(subset []int) {
			inside := qpmodel.NewLinearExpr()
			for _, i := range subset {
				for _, j := range subset {
					if i != j {
						inside.Add(x[i][j])
					}
				}
			}
			model.AddLessOrEqual(inside, float64(size-1))
		})
	}
	return model.Model()
}

// combinations calls fn with every subset of `items` of the given size, in lexicographic order.
// The slice passed to fn is reused between calls.
func combinations(items []int, size int, fn func([]int)) {
	subset := make([]int, size)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == size {
			fn(subset)
			return
		}
		for i := start; i <= len(items)-(size-depth); i++ {
			subset[depth] = items[i]
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
}

// Interpret returns one route per arc leaving the depot, as the list of arcs (pairs of node
// IDs) followed from the depot back to it. It returns an error wrapping ErrNotOneHot if a node
// on a route does not have exactly one outgoing arc, or if a route does not return to the
// depot.
func (vr *VehicleRouting) Interpret(r *qpmodel.Result) ([][][2]int64, error) {
	n := vr.nodes.numNodes()
	if err := checkResultSize(r, n*(n-1), "vehicle routing"); err != nil {
		return nil, err
	}
	depot, err := vr.nodes.indexOf(vr.depot)
	if err != nil {
		return nil, fmt.Errorf("invalid depot: %w", err)
	}
	next := func(i int) (int, error) {
		succ := -1
		for j := 0; j < n; j++ {
			if j == i || !r.IsSet(arcIndex(i, j, n)) {
				continue
			}
			if succ >= 0 {
				return 0, fmt.Errorf("node %d leaves to %d and %d: %w", vr.nodes.id(i), vr.nodes.id(succ), vr.nodes.id(j), ErrNotOneHot)
			}
			succ = j
		}
		if succ < 0 {
			return 0, fmt.Errorf("node %d has no outgoing arc: %w", vr.nodes.id(i), ErrNotOneHot)
		}
		return succ, nil
	}

	var routes [][][2]int64
	for first := 0; first < n; first++ {
		if first == depot || !r.IsSet(arcIndex(depot, first, n)) {
			continue
		}
		route := [][2]int64{{vr.nodes.id(depot), vr.nodes.id(first)}}
		for cur := first; cur != depot; {
			if len(route) > n {
				return nil, fmt.Errorf("route from node %d does not return to the depot: %w", vr.nodes.id(first), ErrNotOneHot)
			}
			succ, err := next(cur)
			if err != nil {
				return nil, err
			}
			route = append(route, [2]int64{vr.nodes.id(cur), vr.nodes.id(succ)})
			cur = succ
		}
		routes = append(routes, route)
	}
	return routes, nil
}
