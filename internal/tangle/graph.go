// Package tangle implements the entanglement graph and its cycle detector
// (§4.4). The graph is rebuilt from the move log on demand; it is never
// persisted.
package tangle

import "github.com/qreversi/referee/internal/movelog"

type edge struct {
	to int
	id int // the log index of the move that created this edge
}

// Graph is the undirected multigraph of unresolved moves. Vertices are
// cell positions; each unresolved move (with distinct endpoints) is one
// edge, identified by its log index so parallel edges between the same
// pair of vertices are distinguished.
type Graph struct {
	adj map[int][]edge
}

// Build constructs the entanglement graph from every unresolved,
// non-self-paired move in the log.
func Build(log *movelog.Log) *Graph {
	g := &Graph{adj: make(map[int][]edge)}
	for i := 0; i < log.Len(); i++ {
		m := log.At(i)
		if m.Resolved() || m.IsSelfPair() {
			continue
		}
		g.addEdge(i, m.A, m.B)
	}
	return g
}

func (g *Graph) addEdge(id, a, b int) {
	g.adj[a] = append(g.adj[a], edge{to: b, id: id})
	g.adj[b] = append(g.adj[b], edge{to: a, id: id})
}

func (g *Graph) removeEdge(u, v, id int) {
	g.adj[u] = removeOne(g.adj[u], v, id)
	g.adj[v] = removeOne(g.adj[v], u, id)
}

func removeOne(edges []edge, to, id int) []edge {
	for i, e := range edges {
		if e.to == to && e.id == id {
			out := make([]edge, 0, len(edges)-1)
			out = append(out, edges[:i]...)
			out = append(out, edges[i+1:]...)
			return out
		}
	}
	return edges
}

// FindCycle runs DFS from start, targeting start, consuming edges as they
// are traversed and restoring them on unsuccessful backtracks (§4.4). It
// returns the ordered vertex sequence of the cycle if one is found.
//
// Because the graph is a forest before the move just placed closed an
// edge, it suffices to search from one endpoint of the new move back to
// itself: any cycle found is the unique one that new edge just closed.
func (g *Graph) FindCycle(start int) (cycle []int, found bool) {
	visited := map[int]bool{start: true}
	return g.dfs(start, start, visited, []int{})
}

func (g *Graph) dfs(u, target int, visited map[int]bool, path []int) ([]int, bool) {
	next := make([]int, len(path)+1)
	copy(next, path)
	next[len(path)] = u

	edges := append([]edge(nil), g.adj[u]...)
	for _, e := range edges {
		g.removeEdge(u, e.to, e.id)

		if e.to == target {
			return next, true
		}
		if !visited[e.to] {
			visited[e.to] = true
			if result, ok := g.dfs(e.to, target, visited, next); ok {
				return result, true
			}
		}

		g.addEdge(e.id, u, e.to)
	}
	return nil, false
}
