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
)

// SetPacking converts a set packing instance: select as many pairwise disjoint subsets as
// possible.
// See https://en.wikipedia.org/wiki/Set_packing.
type SetPacking struct {
	subsets  [][]int
	universe []int
}

// NewSetPacking returns the set packing instance over `subsets`.
func NewSetPacking(subsets [][]int) *SetPacking {
	return &SetPacking{subsets: cloneSubsets(subsets), universe: union(subsets)}
}

// QuadraticProgram returns a model with one variable per subset, maximizing the number of
// selected subsets, and one "at most once" constraint per element.
func (sp *SetPacking) QuadraticProgram() (*qpmodel.Model, error) {
	model := qpmodel.NewBuilder("Set packing")
	x := model.NewBinaryVars(len(sp.subsets), "x_")
	model.Maximize(qpmodel.NewLinearExpr().AddSum(x...))
	for _, e := range sp.universe {
		model.AddLessOrEqual(containing(x, sp.subsets, e), 1)
	}
	return model.Model()
}

// Interpret returns the subsets whose variable is set.
func (sp *SetPacking) Interpret(r *qpmodel.Result) ([][]int, error) {
	if err := checkResultSize(r, len(sp.subsets), "set packing"); err != nil {
		return nil, err
	}
	return selectedSubsets(r, sp.subsets), nil
}
