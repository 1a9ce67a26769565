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

// GraphPartition converts a graph bisection instance: split the nodes in two halves of equal
// size minimizing the total weight of the edges between the halves.
// See https://en.wikipedia.org/wiki/Graph_partition.
type GraphPartition struct {
	nodes graphIndex
}

// NewGraphPartition returns the graph partition instance of `g`.
func NewGraphPartition(g graph.Undirected) *GraphPartition {
	return &GraphPartition{nodes: newGraphIndex(g)}
}

// QuadraticProgram returns a model with one variable per node, minimizing
// `sum(w_ij * (x_i + x_j - 2*x_i*x_j))` over the edges under `sum(x) == n/2`.
func (gp *GraphPartition) QuadraticProgram() (*qpmodel.Model, error) {
	n := gp.nodes.numNodes()
	model := qpmodel.NewBuilder("Graph partition")
	x := model.NewBinaryVars(n, "x_")
	obj := qpmodel.NewQuadraticExpr()
	for _, e := range gp.nodes.edges() {
		obj.AddTerm(x[e.i], e.weight).AddTerm(x[e.j], e.weight).AddProduct(x[e.i], x[e.j], -2*e.weight)
	}
	model.Minimize(obj)
	model.AddEquality(qpmodel.NewLinearExpr().AddSum(x...), float64(n/2))
	return model.Model()
}

// Interpret returns the node IDs whose variable is 0, then the node IDs whose variable is 1.
func (gp *GraphPartition) Interpret(r *qpmodel.Result) ([2][]int64, error) {
	if err := checkResultSize(r, gp.nodes.numNodes(), "graph partition"); err != nil {
		return [2][]int64{}, err
	}
	return bisect(r, gp.nodes.id), nil
}
