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
	"math"
	"math/rand"

	log "github.com/golang/glog"
	"github.com/qopt/optimization/qopt/qpmodel"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Point is an integer position in the plane.
type Point struct {
	X, Y int
}

// TSP converts a traveling salesman instance: visit every node of a complete graph once along
// the closed tour of minimum total weight.
// See https://en.wikipedia.org/wiki/Travelling_salesman_problem.
type TSP struct {
	g         graph.Undirected
	nodes     graphIndex
	positions []Point
}

// NewTSP returns the TSP instance of the complete graph `g`.
func NewTSP(g graph.Undirected) *TSP {
	return &TSP{g: g, nodes: newGraphIndex(g)}
}

// NewRandomTSP returns a TSP instance over `n` nodes placed at random integer positions in
// [0, 100]x[0, 100]. Every pair of nodes is connected by an edge weighing their Euclidean
// distance rounded to the nearest integer.
func NewRandomTSP(n int, seed int64) *TSP {
	rng := rand.New(rand.NewSource(seed))
	positions := make([]Point, n)
	for i := range positions {
		positions[i] = Point{X: rng.Intn(101), Y: rng.Intn(101)}
	}

	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := float64(positions[i].X - positions[j].X)
			dy := float64(positions[i].Y - positions[j].Y)
			g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(i), simple.Node(j), math.RoundToEven(math.Hypot(dx, dy))))
		}
	}

	t := NewTSP(g)
	t.positions = positions
	return t
}

// Graph returns the graph of the instance.
func (t *TSP) Graph() graph.Undirected {
	return t.g
}

// Positions returns the node positions of a random instance, indexed by node ID, or nil.
func (t *TSP) Positions() []Point {
	return append([]Point(nil), t.positions...)
}

// QuadraticProgram returns a model with n*n variables: variable `i*n+k`, named `x_<i>_<k>`,
// is set when the node of index i is visited at step k. The first n constraints state that
// each node is visited once, the next n that each step visits one node. The objective
// minimizes `sum(w_ij * (x_i_k*x_j_(k+1) + x_j_k*x_i_(k+1)))` over edges and steps, with steps
// taken modulo n.
//
// QuadraticProgram returns an error wrapping ErrMissingEdge if the graph is not complete.
func (t *TSP) QuadraticProgram() (*qpmodel.Model, error) {
	n := t.nodes.numNodes()
	model := qpmodel.NewBuilder("TSP")
	x := make([][]qpmodel.BinaryVar, n)
	for i := range x {
		x[i] = model.NewBinaryVars(n, fmt.Sprintf("x_%d_", i))
	}

	obj := qpmodel.NewQuadraticExpr()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w, err := t.nodes.completeWeight(i, j)
			if err != nil {
				return nil, fmt.Errorf("TSP needs a complete graph: %w", err)
			}
			for k := 0; k < n; k++ {
				next := (k + 1) % n
				obj.AddProduct(x[i][k], x[j][next], w)
				obj.AddProduct(x[j][k], x[i][next], w)
			}
		}
	}
	model.Minimize(obj)

	for i := 0; i < n; i++ {
		model.AddExactlyOne(x[i]...)
	}
	for k := 0; k < n; k++ {
		step := make([]qpmodel.BinaryVar, n)
		for i := 0; i < n; i++ {
			step[i] = x[i][k]
		}
		model.AddExactlyOne(step...)
	}
	log.V(1).Infof("TSP: %d nodes, %d variables", n, n*n)
	return model.Model()
}

// Interpret returns the node IDs in visiting order. It returns an error wrapping ErrNotOneHot
// if some step does not visit exactly one node.
func (t *TSP) Interpret(r *qpmodel.Result) ([]int64, error) {
	n := t.nodes.numNodes()
	if err := checkResultSize(r, n*n, "TSP"); err != nil {
		return nil, err
	}
	tour := make([]int64, n)
	for k := 0; k < n; k++ {
		visited := -1
		for i := 0; i < n; i++ {
			if !r.IsSet(i*n + k) {
				continue
			}
			if visited >= 0 {
				return nil, fmt.Errorf("step %d visits nodes %d and %d: %w", k, t.nodes.id(visited), t.nodes.id(i), ErrNotOneHot)
			}
			visited = i
		}
		if visited < 0 {
			return nil, fmt.Errorf("step %d visits no node: %w", k, ErrNotOneHot)
		}
		tour[k] = t.nodes.id(visited)
	}
	return tour, nil
}

// EdgeList returns the edges of the closed tour of the result, from the first step back to it.
func (t *TSP) EdgeList(r *qpmodel.Result) ([][2]int64, error) {
	tour, err := t.Interpret(r)
	if err != nil {
		return nil, err
	}
	edges := make([][2]int64, len(tour))
	for k := range tour {
		edges[k] = [2]int64{tour[k], tour[(k+1)%len(tour)]}
	}
	return edges, nil
}

// TourWeight returns the total weight of the closed tour visiting `tour` in order.
func (t *TSP) TourWeight(tour []int64) (float64, error) {
	var total float64
	for k := range tour {
		i, err := t.nodes.indexOf(tour[k])
		if err != nil {
			return 0, err
		}
		j, err := t.nodes.indexOf(tour[(k+1)%len(tour)])
		if err != nil {
			return 0, err
		}
		if i == j {
			continue
		}
		w, err := t.nodes.completeWeight(i, j)
		if err != nil {
			return 0, err
		}
		total += w
	}
	return total, nil
}
