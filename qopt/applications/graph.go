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
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
)

// graphIndex maps the nodes of a graph to variable indices. Nodes are indexed in increasing ID
// order.
type graphIndex struct {
	g     graph.Undirected
	ids   []int64
	index map[int64]int
}

type indexedEdge struct {
	i, j   int
	weight float64
}

func newGraphIndex(g graph.Undirected) graphIndex {
	nodes := graph.NodesOf(g.Nodes())
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })

	index := make(map[int64]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	return graphIndex{g: g, ids: ids, index: index}
}

func (gi graphIndex) numNodes() int {
	return len(gi.ids)
}

func (gi graphIndex) id(i int) int64 {
	return gi.ids[i]
}

func (gi graphIndex) indexOf(id int64) (int, error) {
	i, ok := gi.index[id]
	if !ok {
		return 0, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	return i, nil
}

// weight returns the weight of the edge between the nodes at indices i and j. Edges of graphs
// that do not carry weights weigh 1.
func (gi graphIndex) weight(i, j int) float64 {
	if wg, ok := gi.g.(graph.Weighted); ok {
		if w, ok := wg.Weight(gi.ids[i], gi.ids[j]); ok {
			return w
		}
	}
	return 1
}

func (gi graphIndex) hasEdge(i, j int) bool {
	return gi.g.HasEdgeBetween(gi.ids[i], gi.ids[j])
}

// edges returns every edge once, with i < j, in increasing (i, j) order. Self loops are
// skipped.
func (gi graphIndex) edges() []indexedEdge {
	var edges []indexedEdge
	for i := range gi.ids {
		for j := i + 1; j < len(gi.ids); j++ {
			if gi.hasEdge(i, j) {
				edges = append(edges, indexedEdge{i: i, j: j, weight: gi.weight(i, j)})
			}
		}
	}
	return edges
}

// nonEdges returns every pair i < j of distinct nodes that are not adjacent.
func (gi graphIndex) nonEdges() [][2]int {
	var pairs [][2]int
	for i := range gi.ids {
		for j := i + 1; j < len(gi.ids); j++ {
			if !gi.hasEdge(i, j) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// completeWeight returns the weight of the edge between i and j, or an error if the graph does
// not connect them.
func (gi graphIndex) completeWeight(i, j int) (float64, error) {
	if !gi.hasEdge(i, j) {
		return 0, fmt.Errorf("between nodes %d and %d: %w", gi.ids[i], gi.ids[j], ErrMissingEdge)
	}
	return gi.weight(i, j), nil
}

func (gi graphIndex) selectedNodes(r interface{ IsSet(int) bool }) []int64 {
	var nodes []int64
	for i, id := range gi.ids {
		if r.IsSet(i) {
			nodes = append(nodes, id)
		}
	}
	return nodes
}
