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

// Package applications converts instances of classic combinatorial problems into quadratic
// programs over binary variables, and interprets results of those programs as answers to the
// original problem.
//
// Every application is an independent encode/decode pair. The variable created at index i by
// `QuadraticProgram` is the one read at index i by `Interpret`; for instance variable i of a
// `Knapsack` is item i, and variable `i*n+k` of a `TSP` is "node i visited at step k".
package applications

import (
	"errors"
	"fmt"

	"github.com/qopt/optimization/qopt/qpmodel"
)

var (
	// ErrNotOneHot holds the error when a block of variables that should contain exactly one
	// selected variable does not.
	ErrNotOneHot = errors.New("block of variables is not one-hot")
	// ErrMissingEdge holds the error when a problem needs an edge the graph does not have.
	ErrMissingEdge = errors.New("missing edge")
	// ErrUnknownNode holds the error when a node ID is not part of the graph.
	ErrUnknownNode = errors.New("unknown node")
)

// Application is an encode/decode pair for one problem instance.
type Application[T any] interface {
	// QuadraticProgram converts the instance into a quadratic program.
	QuadraticProgram() (*qpmodel.Model, error)
	// Interpret converts a result of the quadratic program into an answer of type T.
	Interpret(r *qpmodel.Result) (T, error)
}

var (
	_ Application[[][]int]      = (*ExactCover)(nil)
	_ Application[[]int]        = (*Knapsack)(nil)
	_ Application[[2][]int64]   = (*MaxCut)(nil)
	_ Application[[2][]int]     = (*NumberPartition)(nil)
	_ Application[[]int64]      = (*TSP)(nil)
	_ Application[[]int64]      = (*Clique)(nil)
	_ Application[[2][]int64]   = (*GraphPartition)(nil)
	_ Application[[][]int]      = (*SetPacking)(nil)
	_ Application[[]int64]      = (*StableSet)(nil)
	_ Application[[]int64]      = (*VertexCover)(nil)
	_ Application[[][][2]int64] = (*VehicleRouting)(nil)
)

func checkResultSize(r *qpmodel.Result, want int, problem string) error {
	if r.Len() != want {
		return fmt.Errorf("%s expects %d values, got %d: %w", problem, want, r.Len(), qpmodel.ErrSizeMismatch)
	}
	return nil
}

// bisect splits the indices 0..n-1 by value, zero first.
func bisect[T any](r *qpmodel.Result, items func(i int) T) [2][]T {
	var parts [2][]T
	for i := 0; i < r.Len(); i++ {
		side := 0
		if r.IsSet(i) {
			side = 1
		}
		parts[side] = append(parts[side], items(i))
	}
	return parts
}
