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
	"slices"

	log "github.com/golang/glog"
	"github.com/qopt/optimization/qopt/qpmodel"
)

// ExactCover converts an exact cover instance: select subsets so that every element of their
// union is covered exactly once, using as few subsets as possible.
// See https://en.wikipedia.org/wiki/Exact_cover.
type ExactCover struct {
	subsets  [][]int
	universe []int
}

// NewExactCover returns the exact cover instance over `subsets`. The universe is the union of
// the subsets.
func NewExactCover(subsets [][]int) *ExactCover {
	return &ExactCover{subsets: cloneSubsets(subsets), universe: union(subsets)}
}

// Subsets returns the candidate subsets.
func (ec *ExactCover) Subsets() [][]int {
	return cloneSubsets(ec.subsets)
}

// QuadraticProgram returns a model with one variable per subset, minimizing the number of
// selected subsets, and one equality per universe element.
func (ec *ExactCover) QuadraticProgram() (*qpmodel.Model, error) {
	model := qpmodel.NewBuilder("Exact cover")
	x := model.NewBinaryVars(len(ec.subsets), "x_")
	model.Minimize(qpmodel.NewLinearExpr().AddSum(x...))
	for _, e := range ec.universe {
		model.AddEquality(containing(x, ec.subsets, e), 1)
	}
	log.V(1).Infof("exact cover: %d subsets, %d elements", len(ec.subsets), len(ec.universe))
	return model.Model()
}

// Interpret returns the subsets whose variable is set.
func (ec *ExactCover) Interpret(r *qpmodel.Result) ([][]int, error) {
	if err := checkResultSize(r, len(ec.subsets), "exact cover"); err != nil {
		return nil, err
	}
	return selectedSubsets(r, ec.subsets), nil
}

func cloneSubsets(subsets [][]int) [][]int {
	c := make([][]int, len(subsets))
	for i, s := range subsets {
		c[i] = slices.Clone(s)
	}
	return c
}

// union returns the sorted distinct elements of the subsets.
func union(subsets [][]int) []int {
	var all []int
	for _, s := range subsets {
		all = append(all, s...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}

// containing returns the sum of the variables of the subsets containing `e`.
func containing(x []qpmodel.BinaryVar, subsets [][]int, e int) *qpmodel.LinearExpr {
	expr := qpmodel.NewLinearExpr()
	for i, s := range subsets {
		if slices.Contains(s, e) {
			expr.Add(x[i])
		}
	}
	return expr
}

func selectedSubsets(r *qpmodel.Result, subsets [][]int) [][]int {
	var selected [][]int
	for _, i := range r.SelectedIndices() {
		selected = append(selected, slices.Clone(subsets[i]))
	}
	return selected
}
