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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/qopt/optimization/qopt/qpmodel"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

var tspWeights = [][]float64{
	{0, 1, 2, 3},
	{1, 0, 4, 5},
	{2, 4, 0, 6},
	{3, 5, 6, 0},
}

func TestMaxCut_QuadraticProgram(t *testing.T) {
	m := buildModel(t, NewMaxCut(diamondGraph()))

	want := qpmodel.Objective{
		Sense:  qpmodel.Maximize,
		Linear: []qpmodel.Term{{Var: 0, Coeff: 2}, {Var: 1, Coeff: 2}, {Var: 2, Coeff: 3}, {Var: 3, Coeff: 1}},
		Quadratic: []qpmodel.QuadTerm{
			{I: 0, J: 1, Coeff: -2},
			{I: 0, J: 2, Coeff: -2},
			{I: 1, J: 2, Coeff: -2},
			{I: 2, J: 3, Coeff: -2},
		},
	}
	if diff := cmp.Diff(want, m.Objective, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Objective returned unexpected diff (-want+got): %v", diff)
	}
	if got := m.NumConstraints(); got != 0 {
		t.Errorf("NumConstraints() = %v, want 0", got)
	}
}

func TestMaxCut_Interpret(t *testing.T) {
	mc := NewMaxCut(diamondGraph())
	m := buildModel(t, mc)

	r := newResult(t, m, 0, 1, 0, 1)
	if r.Fval != 3 {
		t.Errorf("Fval = %v, want 3 cut edges", r.Fval)
	}
	got, err := mc.Interpret(r)
	if err != nil {
		t.Fatalf("Interpret() returned with unexpected error %v", err)
	}
	if diff := cmp.Diff([2][]int64{{0, 2}, {1, 3}}, got); diff != "" {
		t.Errorf("Interpret() returned unexpected diff (-want+got): %v", diff)
	}

	if best := bestAssignment(t, m); best == nil || best.Fval != 3 {
		t.Errorf("bestAssignment() = %v, want a cut of weight 3", best)
	}
}

func TestMaxCut_WeightedSparseIDs(t *testing.T) {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(5), simple.Node(10), 2))
	g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(10), simple.Node(20), 3))
	mc := NewMaxCut(g)
	m := buildModel(t, mc)

	wantLinear := []qpmodel.Term{{Var: 0, Coeff: 2}, {Var: 1, Coeff: 5}, {Var: 2, Coeff: 3}}
	if diff := cmp.Diff(wantLinear, m.Objective.Linear); diff != "" {
		t.Errorf("Objective.Linear returned unexpected diff (-want+got): %v", diff)
	}
	r := newResult(t, m, 1, 0, 1)
	if r.Fval != 5 {
		t.Errorf("Fval = %v, want 5", r.Fval)
	}
	got, err := mc.Interpret(r)
	if err != nil {
		t.Fatalf("Interpret() returned with unexpected error %v", err)
	}
	if diff := cmp.Diff([2][]int64{{10}, {5, 20}}, got); diff != "" {
		t.Errorf("Interpret() returned unexpected diff (-want+got): %v", diff)
	}
}

func TestGraphPartition(t *testing.T) {
	g := simple.NewUndirectedGraph()
	for _, e := range [][2]int64{{0, 1}, {1, 2}, {2, 3}} {
		g.SetEdge(g.NewEdge(simple.Node(e[0]), simple.Node(e[1])))
	}
	gp := NewGraphPartition(g)
	m := buildModel(t, gp)

	wantObj := qpmodel.Objective{
		Sense:  qpmodel.Minimize,
		Linear: []qpmodel.Term{{Var: 0, Coeff: 1}, {Var: 1, Coeff: 2}, {Var: 2, Coeff: 2}, {Var: 3, Coeff: 1}},
		Quadratic: []qpmodel.QuadTerm{
			{I: 0, J: 1, Coeff: -2},
			{I: 1, J: 2, Coeff: -2},
			{I: 2, J: 3, Coeff: -2},
		},
	}
	if diff := cmp.Diff(wantObj, m.Objective, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Objective returned unexpected diff (-want+got): %v", diff)
	}
	wantConstraints := []qpmodel.Row{{Name: "c0", Sense: qpmodel.EQ, Rhs: 2, Linear: ones(0, 1, 2, 3)}}
	if diff := cmp.Diff(wantConstraints, m.Constraints, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Constraints returned unexpected diff (-want+got): %v", diff)
	}

	best := bestAssignment(t, m)
	if best == nil || best.Fval != 1 {
		t.Fatalf("bestAssignment() = %v, want a partition cutting one edge", best)
	}
	got, err := gp.Interpret(best)
	if err != nil {
		t.Fatalf("Interpret() returned with unexpected error %v", err)
	}
	if diff := cmp.Diff([2][]int64{{2, 3}, {0, 1}}, got); diff != "" {
		t.Errorf("Interpret() returned unexpected diff (-want+got): %v", diff)
	}
}

func TestNodeSelection(t *testing.T) {
	testCases := []struct {
		name            string
		app             Application[[]int64]
		wantConstraints int
		wantSense       qpmodel.Sense
		wantFval        float64
		want            []int64
	}{
		{
			name:            "MaximumClique",
			app:             NewClique(diamondGraph(), 0),
			wantConstraints: 2,
			wantSense:       qpmodel.Maximize,
			wantFval:        3,
			want:            []int64{0, 1, 2},
		},
		{
			name:            "StableSet",
			app:             NewStableSet(diamondGraph()),
			wantConstraints: 4,
			wantSense:       qpmodel.Maximize,
			wantFval:        2,
			want:            []int64{0, 3},
		},
		{
			name:            "VertexCover",
			app:             NewVertexCover(diamondGraph()),
			wantConstraints: 4,
			wantSense:       qpmodel.Minimize,
			wantFval:        2,
			want:            []int64{0, 2},
		},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			m := buildModel(t, test.app)
			if got := m.NumConstraints(); got != test.wantConstraints {
				t.Errorf("NumConstraints() = %v, want %v", got, test.wantConstraints)
			}
			if got := m.Objective.Sense; got != test.wantSense {
				t.Errorf("Objective.Sense = %v, want %v", got, test.wantSense)
			}
			best := bestAssignment(t, m)
			if best == nil {
				t.Fatalf("bestAssignment() found no feasible selection")
			}
			if best.Fval != test.wantFval {
				t.Errorf("Fval = %v, want %v", best.Fval, test.wantFval)
			}
			got, err := test.app.Interpret(best)
			if err != nil {
				t.Fatalf("Interpret() returned with unexpected error %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Interpret() returned unexpected diff (-want+got): %v", diff)
			}
		})
	}
}

func TestClique_FixedSize(t *testing.T) {
	c := NewClique(diamondGraph(), 2)
	m := buildModel(t, c)

	if got := m.NumConstraints(); got != 3 {
		t.Errorf("NumConstraints() = %v, want 3", got)
	}
	if diff := cmp.Diff(qpmodel.Objective{}, m.Objective, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Objective returned unexpected diff (-want+got): %v", diff)
	}
	if r := newResult(t, m, 0, 0, 1, 1); r.Status != qpmodel.Success {
		t.Errorf("Status of edge {2, 3} = %v, want %v", r.Status, qpmodel.Success)
	}
	if r := newResult(t, m, 1, 0, 0, 1); r.Status != qpmodel.Infeasible {
		t.Errorf("Status of non-edge {0, 3} = %v, want %v", r.Status, qpmodel.Infeasible)
	}
}

func TestTSP_QuadraticProgram(t *testing.T) {
	m := buildModel(t, NewTSP(completeGraph(tspWeights)))

	if got, want := m.NumVariables(), 16; got != want {
		t.Fatalf("NumVariables() = %v, want %v", got, want)
	}
	if got, want := m.Variables[6].Name, "x_1_2"; got != want {
		t.Errorf("Variables[6].Name = %q, want %q", got, want)
	}
	if got := len(m.Objective.Linear); got != 0 {
		t.Errorf("len(Objective.Linear) = %v, want 0", got)
	}
	if got, want := len(m.Objective.Quadratic), 48; got != want {
		t.Errorf("len(Objective.Quadratic) = %v, want %v", got, want)
	}
	for _, q := range m.Objective.Quadratic {
		if want := tspWeights[q.I/4][q.J/4]; q.Coeff != want {
			t.Errorf("coefficient of x_%d*x_%d = %v, want %v", q.I, q.J, q.Coeff, want)
		}
	}

	var wantConstraints []qpmodel.Row
	for i := 0; i < 4; i++ {
		v := qpmodel.VarIndex(4 * i)
		wantConstraints = append(wantConstraints, qpmodel.Row{Sense: qpmodel.EQ, Rhs: 1, Linear: ones(v, v+1, v+2, v+3)})
	}
	for k := 0; k < 4; k++ {
		v := qpmodel.VarIndex(k)
		wantConstraints = append(wantConstraints, qpmodel.Row{Sense: qpmodel.EQ, Rhs: 1, Linear: ones(v, v+4, v+8, v+12)})
	}
	if diff := cmp.Diff(wantConstraints, m.Constraints, cmpopts.EquateEmpty(), cmpopts.IgnoreFields(qpmodel.Row{}, "Name")); diff != "" {
		t.Errorf("Constraints returned unexpected diff (-want+got): %v", diff)
	}
}

func TestTSP_Interpret(t *testing.T) {
	tsp := NewTSP(completeGraph(tspWeights))
	m := buildModel(t, tsp)

	x := make([]float64, 16)
	for i := 0; i < 4; i++ {
		x[i*4+i] = 1
	}
	r := newResult(t, m, x...)
	if r.Status != qpmodel.Success {
		t.Errorf("Status = %v, want %v", r.Status, qpmodel.Success)
	}
	if r.Fval != 14 {
		t.Errorf("Fval = %v, want 14", r.Fval)
	}

	tour, err := tsp.Interpret(r)
	if err != nil {
		t.Fatalf("Interpret() returned with unexpected error %v", err)
	}
	if diff := cmp.Diff([]int64{0, 1, 2, 3}, tour); diff != "" {
		t.Errorf("Interpret() returned unexpected diff (-want+got): %v", diff)
	}
	edges, err := tsp.EdgeList(r)
	if err != nil {
		t.Fatalf("EdgeList() returned with unexpected error %v", err)
	}
	if diff := cmp.Diff([][2]int64{{0, 1}, {1, 2}, {2, 3}, {3, 0}}, edges); diff != "" {
		t.Errorf("EdgeList() returned unexpected diff (-want+got): %v", diff)
	}
	w, err := tsp.TourWeight(tour)
	if err != nil {
		t.Fatalf("TourWeight() returned with unexpected error %v", err)
	}
	if w != r.Fval {
		t.Errorf("TourWeight() = %v, want the objective value %v", w, r.Fval)
	}
}

func TestTSP_Errors(t *testing.T) {
	incomplete := simple.NewUndirectedGraph()
	incomplete.SetEdge(incomplete.NewEdge(simple.Node(0), simple.Node(1)))
	incomplete.AddNode(simple.Node(2))
	if _, err := NewTSP(incomplete).QuadraticProgram(); !errors.Is(err, ErrMissingEdge) {
		t.Errorf("QuadraticProgram() returned error %v, want %v", err, ErrMissingEdge)
	}

	tsp := NewTSP(completeGraph(tspWeights))
	m := buildModel(t, tsp)
	if _, err := tsp.Interpret(newResult(t, m, make([]float64, 16)...)); !errors.Is(err, ErrNotOneHot) {
		t.Errorf("Interpret(zeros) returned error %v, want %v", err, ErrNotOneHot)
	}
	x := make([]float64, 16)
	for i := 0; i < 4; i++ {
		x[i*4] = 1
	}
	if _, err := tsp.Interpret(newResult(t, m, x...)); !errors.Is(err, ErrNotOneHot) {
		t.Errorf("Interpret(crowded first step) returned error %v, want %v", err, ErrNotOneHot)
	}
	if _, err := tsp.TourWeight([]int64{0, 7}); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("TourWeight() returned error %v, want %v", err, ErrUnknownNode)
	}
}

func TestNewRandomTSP(t *testing.T) {
	tsp := NewRandomTSP(5, 42)
	if diff := cmp.Diff(tsp.Positions(), NewRandomTSP(5, 42).Positions()); diff != "" {
		t.Errorf("NewRandomTSP() is not deterministic (-first+second): %v", diff)
	}

	positions := tsp.Positions()
	if got := len(positions); got != 5 {
		t.Fatalf("len(Positions()) = %v, want 5", got)
	}
	wg, ok := tsp.Graph().(graph.Weighted)
	if !ok {
		t.Fatalf("Graph() is not weighted")
	}
	for i, p := range positions {
		if p.X < 0 || p.X > 100 || p.Y < 0 || p.Y > 100 {
			t.Errorf("Positions()[%d] = %v, want within [0, 100]", i, p)
		}
		for j := i + 1; j < len(positions); j++ {
			q := positions[j]
			want := math.RoundToEven(math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y)))
			if w, ok := wg.Weight(int64(i), int64(j)); !ok || w != want {
				t.Errorf("Weight(%d, %d) = %v, %v, want %v, true", i, j, w, ok, want)
			}
		}
	}

	m := buildModel(t, tsp)
	if got, want := m.NumConstraints(), 10; got != want {
		t.Errorf("NumConstraints() = %v, want %v", got, want)
	}
}

func TestVehicleRouting_QuadraticProgram(t *testing.T) {
	testCases := []struct {
		name            string
		weights         [][]float64
		vehicles        int
		wantVariables   int
		wantConstraints int
	}{
		{name: "ThreeNodes", weights: tspWeights[:3], vehicles: 1, wantVariables: 6, wantConstraints: 7},
		{name: "FourNodes", weights: tspWeights, vehicles: 2, wantVariables: 12, wantConstraints: 12},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			m := buildModel(t, NewVehicleRouting(completeGraph(test.weights), test.vehicles, 0))
			if got := m.NumVariables(); got != test.wantVariables {
				t.Errorf("NumVariables() = %v, want %v", got, test.wantVariables)
			}
			if got := m.NumConstraints(); got != test.wantConstraints {
				t.Errorf("NumConstraints() = %v, want %v", got, test.wantConstraints)
			}
		})
	}

	m := buildModel(t, NewVehicleRouting(completeGraph(tspWeights[:3]), 1, 0))
	wantNames := []string{"x_0_1", "x_0_2", "x_1_0", "x_1_2", "x_2_0", "x_2_1"}
	var gotNames []string
	for _, v := range m.Variables {
		gotNames = append(gotNames, v.Name)
	}
	if diff := cmp.Diff(wantNames, gotNames); diff != "" {
		t.Errorf("variable names returned unexpected diff (-want+got): %v", diff)
	}
	wantSubtour := qpmodel.Row{Name: "c6", Sense: qpmodel.LE, Rhs: 1, Linear: ones(3, 5)}
	if diff := cmp.Diff(wantSubtour, m.Constraints[6], cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Constraints[6] returned unexpected diff (-want+got): %v", diff)
	}
}

func TestVehicleRouting_Interpret(t *testing.T) {
	testCases := []struct {
		name     string
		vehicles int
		x        []float64
		wantFval float64
		want     [][][2]int64
	}{
		{
			name:     "OneVehicle",
			vehicles: 1,
			x:        []float64{1, 0, 0, 1, 1, 0},
			wantFval: 7,
			want:     [][][2]int64{{{0, 1}, {1, 2}, {2, 0}}},
		},
		{
			name:     "TwoVehicles",
			vehicles: 2,
			x:        []float64{1, 1, 1, 0, 1, 0},
			wantFval: 6,
			want:     [][][2]int64{{{0, 1}, {1, 0}}, {{0, 2}, {2, 0}}},
		},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			vr := NewVehicleRouting(completeGraph(tspWeights[:3]), test.vehicles, 0)
			r := newResult(t, buildModel(t, vr), test.x...)
			if r.Status != qpmodel.Success {
				t.Errorf("Status = %v, want %v", r.Status, qpmodel.Success)
			}
			if r.Fval != test.wantFval {
				t.Errorf("Fval = %v, want %v", r.Fval, test.wantFval)
			}
			got, err := vr.Interpret(r)
			if err != nil {
				t.Fatalf("Interpret() returned with unexpected error %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Interpret() returned unexpected diff (-want+got): %v", diff)
			}
		})
	}
}

func TestVehicleRouting_Errors(t *testing.T) {
	g := completeGraph(tspWeights[:3])
	if _, err := NewVehicleRouting(g, 1, 9).QuadraticProgram(); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("QuadraticProgram() returned error %v, want %v", err, ErrUnknownNode)
	}

	vr := NewVehicleRouting(g, 1, 0)
	m := buildModel(t, vr)
	if _, err := vr.Interpret(newResult(t, m, 1, 0, 1, 1, 0, 0)); !errors.Is(err, ErrNotOneHot) {
		t.Errorf("Interpret(two arcs out of node 1) returned error %v, want %v", err, ErrNotOneHot)
	}
	if _, err := vr.Interpret(newResult(t, m, 1, 0, 0, 1, 0, 1)); !errors.Is(err, ErrNotOneHot) {
		t.Errorf("Interpret(loop between 1 and 2) returned error %v, want %v", err, ErrNotOneHot)
	}
	if _, err := vr.Interpret(&qpmodel.Result{X: []float64{1}}); !errors.Is(err, qpmodel.ErrSizeMismatch) {
		t.Errorf("Interpret() returned error %v, want %v", err, qpmodel.ErrSizeMismatch)
	}
}
