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
)

// Knapsack converts a 0/1 knapsack instance: select items maximizing the total value while the
// total weight stays within the capacity.
// See https://en.wikipedia.org/wiki/Knapsack_problem.
type Knapsack struct {
	values    []float64
	weights   []float64
	maxWeight float64
}

// NewKnapsack returns the knapsack instance where item i has value `values[i]` and weight
// `weights[i]`.
func NewKnapsack(values, weights []int, maxWeight int) *Knapsack {
	return &Knapsack{values: asFloats(values), weights: asFloats(weights), maxWeight: float64(maxWeight)}
}

// QuadraticProgram returns a model with one variable per item, maximizing the selected value,
// and one capacity constraint. It stops the program if values and weights differ in length.
func (k *Knapsack) QuadraticProgram() (*qpmodel.Model, error) {
	model := qpmodel.NewBuilder("Knapsack")
	x := model.NewBinaryVars(len(k.values), "x_")
	model.Maximize(qpmodel.NewLinearExpr().AddWeightedSum(x, k.values))
	model.AddLessOrEqual(qpmodel.NewLinearExpr().AddWeightedSum(x, k.weights), k.maxWeight)
	log.V(1).Infof("knapsack: %d items, capacity %v", len(k.values), k.maxWeight)
	return model.Model()
}

// Interpret returns the indices of the selected items.
func (k *Knapsack) Interpret(r *qpmodel.Result) ([]int, error) {
	if err := checkResultSize(r, len(k.values), "knapsack"); err != nil {
		return nil, err
	}
	return r.SelectedIndices(), nil
}

func asFloats(ints []int) []float64 {
	f := make([]float64, len(ints))
	for i, v := range ints {
		f[i] = float64(v)
	}
	return f
}
