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
	"github.com/qopt/optimization/qopt/qpmodel"
	"gonum.org/v1/gonum/graph"
)

// Clique converts a clique instance: select pairwise adjacent nodes.
// See https://en.wikipedia.org/wiki/Clique_problem.
type Clique struct {
	nodes graphIndex
	size  int
}

// NewClique returns the clique instance of `g`. A positive `size` asks for a clique of exactly
// that many nodes; otherwise the clique is as large as possible.
func NewClique(g graph.Undirected, size int) *Clique {
	return &Clique{nodes: newGraphIndex(g), size: size}
}

// QuadraticProgram returns a model with one variable per node and `x_i + x_j <= 1` for every
// pair of non-adjacent nodes. Without a target size the number of selected nodes is maximized;
// with one, `sum(x) == size` is added and the model has no objective.
func (c *Clique) QuadraticProgram() (*qpmodel.Model, error) {
	model := qpmodel.NewBuilder("Clique")
	x := model.NewBinaryVars(c.nodes.numNodes(), "x_")
	for _, p := range c.nodes.nonEdges() {
		model.AddAtMostOne(x[p[0]], x[p[1]])
	}
	if c.size > 0 {
		model.AddEquality(qpmodel.NewLinearExpr().AddSum(x...), float64(c.size))
	} else {
		model.Maximize(qpmodel.NewLinearExpr().AddSum(x...))
	}
	return model.Model()
}

// Interpret returns the IDs of the selected nodes.
func (c *Clique) Interpret(r *qpmodel.Result) ([]int64, error) {
	if err := checkResultSize(r, c.nodes.numNodes(), "clique"); err != nil {
		return nil, err
	}
	return c.nodes.selectedNodes(r), nil
}

// StableSet converts a maximum independent set instance: select as many pairwise non-adjacent
// nodes as possible.
// See https://en.wikipedia.org/wiki/Independent_set_(graph_theory).
type StableSet struct {
	nodes graphIndex
}

// NewStableSet returns the stable set instance of `g`.
func NewStableSet(g graph.Undirected) *StableSet {
	return &StableSet{nodes: newGraphIndex(g)}
}

// QuadraticProgram returns a model with one variable per node, maximizing the number of
// selected nodes under `x_i + x_j <= 1` for every edge.
func (s *StableSet) QuadraticProgram() (*qpmodel.Model, error) {
	model := qpmodel.NewBuilder("Stable set")
	x := model.NewBinaryVars(s.nodes.numNodes(), "x_")
	model.Maximize(qpmodel.NewLinearExpr().AddSum(x...))
	for _, e := range s.nodes.edges() {
		model.AddAtMostOne(x[e.i], x[e.j])
	}
	return model.Model()
}

// Interpret returns the IDs of the selected nodes.
func (s *StableSet) Interpret(r *qpmodel.Result) ([]int64, error) {
	if err := checkResultSize(r, s.nodes.numNodes(), "stable set"); err != nil {
		return nil, err
	}
	return s.nodes.selectedNodes(r), nil
}

// VertexCover converts a minimum vertex cover instance: select as few nodes as possible so
// that every edge has a selected end.
// See https://en.wikipedia.org/wiki/Vertex_cover.
type VertexCover struct {
	nodes graphIndex
}

// NewVertexCover returns the vertex cover instance of `g`.
func NewVertexCover(g graph.Undirected) *VertexCover {
	return &VertexCover{nodes: newGraphIndex(g)}
}

// QuadraticProgram returns a model with one variable per node, minimizing the number of
// selected nodes under `x_i + x_j >= 1` for every edge.
func (vc *VertexCover) QuadraticProgram() (*qpmodel.Model, error) {
	model := qpmodel.NewBuilder("Vertex cover")
	x := model.NewBinaryVars(vc.nodes.numNodes(), "x_")
	model.Minimize(qpmodel.NewLinearExpr().AddSum(x...))
	for _, e := range vc.nodes.edges() {
		model.AddAtLeastOne(x[e.i], x[e.j])
	}
	return model.Model()
}

// Interpret returns the IDs of the selected nodes.
func (vc *VertexCover) Interpret(r *qpmodel.Result) ([]int64, error) {
	if err := checkResultSize(r, vc.nodes.numNodes(), "vertex cover"); err != nil {
		return nil, err
	}
	return vc.nodes.selectedNodes(r), nil
}
