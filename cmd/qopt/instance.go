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

package main

import (
	"errors"
	"fmt"

	"github.com/qopt/optimization/qopt/applications"
	"github.com/qopt/optimization/qopt/qpmodel"
	"gonum.org/v1/gonum/graph/simple"
)

// edge is an undirected edge of an instance graph. A missing weight counts as 1.
type edge struct {
	From   int64    `mapstructure:"from"`
	To     int64    `mapstructure:"to"`
	Weight *float64 `mapstructure:"weight"`
}

// instance holds the fields of every problem; each problem reads the ones it needs.
type instance struct {
	Subsets   [][]int `mapstructure:"subsets"`
	Values    []int   `mapstructure:"values"`
	Weights   []int   `mapstructure:"weights"`
	MaxWeight int     `mapstructure:"max_weight"`
	Numbers   []int   `mapstructure:"numbers"`
	Nodes     []int64 `mapstructure:"nodes"`
	Edges     []edge  `mapstructure:"edges"`
	Size      int     `mapstructure:"size"`
	Vehicles  int     `mapstructure:"vehicles"`
	Depot     int64   `mapstructure:"depot"`
	// RandomNodes asks for a random TSP instance of that many nodes instead of a graph.
	RandomNodes int   `mapstructure:"random_nodes"`
	Seed        int64 `mapstructure:"seed"`
}

// scalarKeys are the instance fields that environment variables can set.
var scalarKeys = []string{"max_weight", "size", "vehicles", "depot", "random_nodes", "seed"}

var errEmptyGraph = errors.New("instance has no node")

func (in *instance) graph() (*simple.WeightedUndirectedGraph, error) {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for _, id := range in.Nodes {
		if g.Node(id) == nil {
			g.AddNode(simple.Node(id))
		}
	}
	for _, e := range in.Edges {
		if e.From == e.To {
			return nil, fmt.Errorf("edge %d-%d is a loop", e.From, e.To)
		}
		w := 1.0
		if e.Weight != nil {
			w = *e.Weight
		}
		g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(e.From), simple.Node(e.To), w))
	}
	if g.Nodes().Len() == 0 {
		return nil, errEmptyGraph
	}
	return g, nil
}

// problem is an application with its answer type erased.
type problem struct {
	model     func() (*qpmodel.Model, error)
	interpret func(r *qpmodel.Result) (any, error)
}

func newProblemOf[T any](app applications.Application[T]) problem {
	return problem{
		model: app.QuadraticProgram,
		interpret: func(r *qpmodel.Result) (any, error) {
			answer, err := app.Interpret(r)
			return answer, err
		},
	}
}

func graphProblem[T any](newApp func(in *instance, g *simple.WeightedUndirectedGraph) applications.Application[T]) func(in *instance) (problem, error) {
	return func(in *instance) (problem, error) {
		g, err := in.graph()
		if err != nil {
			return problem{}, err
		}
		return newProblemOf(newApp(in, g)), nil
	}
}

var problems = map[string]func(in *instance) (problem, error){
	"exact-cover": func(in *instance) (problem, error) {
		return newProblemOf[[][]int](applications.NewExactCover(in.Subsets)), nil
	},
	"set-packing": func(in *instance) (problem, error) {
		return newProblemOf[[][]int](applications.NewSetPacking(in.Subsets)), nil
	},
	"knapsack": func(in *instance) (problem, error) {
		if len(in.Values) != len(in.Weights) {
			return problem{}, errors.New("knapsack instance needs as many values as weights")
		}
		return newProblemOf[[]int](applications.NewKnapsack(in.Values, in.Weights, in.MaxWeight)), nil
	},
	"number-partition": func(in *instance) (problem, error) {
		return newProblemOf[[2][]int](applications.NewNumberPartition(in.Numbers)), nil
	},
	"max-cut": graphProblem(func(_ *instance, g *simple.WeightedUndirectedGraph) applications.Application[[2][]int64] {
		return applications.NewMaxCut(g)
	}),
	"graph-partition": graphProblem(func(_ *instance, g *simple.WeightedUndirectedGraph) applications.Application[[2][]int64] {
		return applications.NewGraphPartition(g)
	}),
	"clique": graphProblem(func(in *instance, g *simple.WeightedUndirectedGraph) applications.Application[[]int64] {
		return applications.NewClique(g, in.Size)
	}),
	"stable-set": graphProblem(func(_ *instance, g *simple.WeightedUndirectedGraph) applications.Application[[]int64] {
		return applications.NewStableSet(g)
	}),
	"vertex-cover": graphProblem(func(_ *instance, g *simple.WeightedUndirectedGraph) applications.Application[[]int64] {
		return applications.NewVertexCover(g)
	}),
	"vehicle-routing": graphProblem(func(in *instance, g *simple.WeightedUndirectedGraph) applications.Application[[][][2]int64] {
		return applications.NewVehicleRouting(g, in.Vehicles, in.Depot)
	}),
	"tsp": func(in *instance) (problem, error) {
		if in.RandomNodes > 0 {
			return newProblemOf[[]int64](applications.NewRandomTSP(in.RandomNodes, in.Seed)), nil
		}
		g, err := in.graph()
		if err != nil {
			return problem{}, err
		}
		return newProblemOf[[]int64](applications.NewTSP(g)), nil
	},
}
