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
	log "github.com/golang/glog"
	"github.com/qopt/optimization/qopt/qpmodel"
	"gonum.org/v1/gonum/graph"
)

// MaxCut converts a maximum cut instance: split the nodes of a graph in two sides maximizing
// the total weight of the edges crossing the cut.
// See https://en.wikipedia.org/wiki/Maximum_cut.
type MaxCut struct {
	nodes graphIndex
}

// NewMaxCut returns the max-cut instance of `g`. Edges of an unweighted graph weigh 1.
func NewMaxCut(g graph.Undirected) *MaxCut {
	return &MaxCut{nodes: newGraphIndex(g)}
}

// QuadraticProgram returns a model with one variable per node, in increasing node ID order,
// maximizing `sum(w_ij * (x_i*(1-x_j) + x_j*(1-x_i)))` over the edges. Both products are
// expanded with x*x == x, which gives `w_ij*x_i + w_ij*x_j - 2*w_ij*x_i*x_j`.
func (mc *MaxCut) QuadraticProgram() (*qpmodel.Model, error) {
	model := qpmodel.NewBuilder("Max-cut")
	x := model.NewBinaryVars(mc.nodes.numNodes(), "x_")
	obj := qpmodel.NewQuadraticExpr()
	for _, e := range mc.nodes.edges() {
		obj.AddProduct(x[e.i], qpmodel.NewConstant(1).AddTerm(x[e.j], -1), e.weight)
		obj.AddProduct(x[e.j], qpmodel.NewConstant(1).AddTerm(x[e.i], -1), e.weight)
	}
	model.Maximize(obj)
	log.V(1).Infof("max-cut: %d nodes", mc.nodes.numNodes())
	return model.Model()
}

// Interpret returns the node IDs whose variable is 0, then the node IDs whose variable is 1.
func (mc *MaxCut) Interpret(r *qpmodel.Result) ([2][]int64, error) {
	if err := checkResultSize(r, mc.nodes.numNodes(), "max-cut"); err != nil {
		return [2][]int64{}, err
	}
	return bisect(r, mc.nodes.id), nil
}
