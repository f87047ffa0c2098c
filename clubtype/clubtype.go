// Package clubtype classifies an accepted 2-club's internal structure and
// writes the results-sidecar summary, grounded in the original
// implementation's Util.py post_process / sorter.py get_club_type.
package clubtype

import (
	"fmt"
	"io"
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/neojume/twoclubs/lib"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Type is one of the four club classifications.
type Type string

const (
	Hamlet       Type = "Hamlet"
	SocialCircle Type = "SocialCircle"
	Coterie      Type = "Coterie"
	NSCoterie    Type = "NSCoterie"
)

// Classify determines the club type of the induced subgraph on vertices.
// vertices must already be a 2-club (diameter <= 2); classification reads
// only the induced subgraph and never re-derives search state.
func Classify(g *lib.Graph, vertices []int) Type {
	h := len(vertices)
	if h == 0 {
		return Hamlet
	}

	pos := make(map[int]int, h)
	for i, v := range vertices {
		pos[v] = i
	}

	adj := make([][]bool, h)
	for i := range adj {
		adj[i] = make([]bool, h)
	}
	for i, u := range vertices {
		for j, v := range vertices {
			if i != j && g.Adj.At(u, v) != 0 {
				adj[i][j] = true
			}
		}
	}

	universal := -1
	for i := 0; i < h; i++ {
		deg := 0
		for j := 0; j < h; j++ {
			if adj[i][j] {
				deg++
			}
		}
		if deg == h-1 {
			universal = i
			break
		}
	}

	if universal >= 0 {
		if isBiconnected(adj) {
			return NSCoterie
		}
		return Coterie
	}

	if !isClique(adj) {
		return SocialCircle
	}
	return Hamlet
}

func isClique(adj [][]bool) bool {
	h := len(adj)
	for i := 0; i < h; i++ {
		for j := i + 1; j < h; j++ {
			if !adj[i][j] {
				return false
			}
		}
	}
	return true
}

// isBiconnected reports whether the graph described by adj has no cut
// vertex, via a direct removal scan: h is small (an accepted 2-club's
// induced subgraph), so a textbook Tarjan low-link walk is unnecessary
// overhead for the sizes this is ever called on.
func isBiconnected(adj [][]bool) bool {
	h := len(adj)
	if h <= 2 {
		return true
	}
	for cut := 0; cut < h; cut++ {
		if !connectedWithout(adj, cut) {
			return false
		}
	}
	return true
}

func connectedWithout(adj [][]bool, cut int) bool {
	h := len(adj)
	start := -1
	for i := 0; i < h; i++ {
		if i != cut {
			start = i
			break
		}
	}
	if start == -1 {
		return true
	}

	visited := make([]bool, h)
	visited[cut] = true
	visited[start] = true
	stack := []int{start}
	count := 1
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for u := 0; u < h; u++ {
			if !visited[u] && adj[v][u] {
				visited[u] = true
				count++
				stack = append(stack, u)
			}
		}
	}
	return count == h-1
}

// Result is one classified candidate in the results sidecar, naming
// vertices by their external (original-graph) id.
type Result struct {
	ID       int      `json:"id"`
	Vertices []string `json:"vertices"`
	Type     Type     `json:"type"`
}

// Summarize classifies every maximal candidate (id -> internal vertex
// indices) and returns the sidecar contents, sorted by id.
func Summarize(g *lib.Graph, maximal map[int][]int) []Result {
	ids := make([]int, 0, len(maximal))
	for id := range maximal {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]Result, 0, len(ids))
	for _, id := range ids {
		vs := append([]int(nil), maximal[id]...)
		sort.Ints(vs)

		labels := make([]string, len(vs))
		for i, v := range vs {
			labels[i] = g.Label(v)
		}
		sort.Strings(labels)

		out = append(out, Result{
			ID:       id,
			Vertices: labels,
			Type:     Classify(g, vs),
		})
	}
	return out
}

// WriteSidecar writes the results sidecar as JSON to w.
func WriteSidecar(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("clubtype: encoding sidecar: %w", err)
	}
	return nil
}
