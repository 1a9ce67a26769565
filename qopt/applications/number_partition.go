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

// NumberPartition converts a number partitioning instance: split the numbers into two subsets
// with equal sums.
// See https://en.wikipedia.org/wiki/Partition_problem.
type NumberPartition struct {
	numbers []int
}

// NewNumberPartition returns the partitioning instance of `numbers`.
func NewNumberPartition(numbers []int) *NumberPartition {
	return &NumberPartition{numbers: append([]int(nil), numbers...)}
}

// QuadraticProgram returns a model with one variable per number and a single constraint
// `sum(n_i * (1 - 2*x_i)) == 0`, i.e. the numbers with x_i == 0 balance the ones with x_i == 1.
// The model has no objective. Numbers with an odd sum make it infeasible.
func (np *NumberPartition) QuadraticProgram() (*qpmodel.Model, error) {
	model := qpmodel.NewBuilder("Number partitioning")
	x := model.NewBinaryVars(len(np.numbers), "x_")
	balance := qpmodel.NewLinearExpr()
	for i, n := range np.numbers {
		balance.AddTerm(qpmodel.NewConstant(1).AddTerm(x[i], -2), float64(n))
	}
	model.AddEquality(balance, 0)
	return model.Model()
}

// Interpret returns the numbers whose variable is 0, then the numbers whose variable is 1.
func (np *NumberPartition) Interpret(r *qpmodel.Result) ([2][]int, error) {
	if err := checkResultSize(r, len(np.numbers), "number partitioning"); err != nil {
		return [2][]int{}, err
	}
	return bisect(r, func(i int) int { return np.numbers[i] }), nil
}
