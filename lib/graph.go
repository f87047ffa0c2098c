package lib

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
)

// Graph is an undirected graph over the index space 0..N-1. External vertex
// identifiers (arbitrary strings, e.g. from a GraphML file) are preserved in
// Labels; internal algorithms work entirely on indices.
type Graph struct {
	Labels []string // Labels[i] is the external id of vertex i
	index  map[string]int
	Adj    *Matrix // symmetric, zero diagonal
}

// N returns the number of vertices.
func (g *Graph) N() int { return len(g.Labels) }

// Label returns the external identifier of vertex i.
func (g *Graph) Label(i int) string { return g.Labels[i] }

// Index returns the internal index of an external vertex id, and whether it
// was found.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// NewGraph builds a Graph from an explicit vertex label list and an edge
// list given as pairs of labels. Duplicate edges and self-loops are
// ignored; the adjacency matrix is always symmetric with a zero diagonal
// per the data model's invariants.
func NewGraph(labels []string, edges [][2]string) (*Graph, error) {
	g := &Graph{
		Labels: append([]string(nil), labels...),
		index:  make(map[string]int, len(labels)),
	}
	for i, l := range g.Labels {
		if _, dup := g.index[l]; dup {
			return nil, fmt.Errorf("lib: duplicate vertex label %q", l)
		}
		g.index[l] = i
	}

	g.Adj = NewMatrix(len(g.Labels))
	for _, e := range edges {
		u, ok := g.index[e[0]]
		if !ok {
			return nil, fmt.Errorf("lib: edge references unknown vertex %q", e[0])
		}
		v, ok := g.index[e[1]]
		if !ok {
			return nil, fmt.Errorf("lib: edge references unknown vertex %q", e[1])
		}
		if u == v {
			continue
		}
		g.Adj.Set(u, v, 1)
		g.Adj.Set(v, u, 1)
	}
	return g, nil
}

// Closed returns the closed adjacency matrix M = A + I.
func (g *Graph) Closed() *Matrix {
	m := g.Adj.Clone()
	for i := 0; i < m.N(); i++ {
		m.Add(i, i, 1)
	}
	return m
}

// Connectivity returns the initial two-hop connectivity matrix C = A + A·A.
func (g *Graph) Connectivity() *Matrix {
	return g.Adj.Plus(g.Adj.Square())
}

// RemovalMatrices returns, for every vertex i, Aᵢ = colᵢ(A)·rowᵢ(A): the
// rank-1 matrix subtracted from C whenever vertex i leaves consideration.
func (g *Graph) RemovalMatrices() []*Matrix {
	n := g.N()
	out := make([]*Matrix, n)
	for i := 0; i < n; i++ {
		out[i] = OuterProduct(g.Adj.Column(i), g.Adj.Row(i))
	}
	return out
}

// graphmlDoc mirrors just enough of the GraphML schema (a directed-or-not
// property graph serialized in GraphXML/GraphML form) to recover vertices
// and edges. There is no GraphML library in the reference corpus to build
// on, so these small structs carry encoding/xml struct tags and the whole
// document is decoded into them in one Decode call.
type graphmlDoc struct {
	XMLName xml.Name       `xml:"graphml"`
	Graphs  []graphmlGraph `xml:"graph"`
}

type graphmlGraph struct {
	Nodes []graphmlNode `xml:"node"`
	Edges []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID string `xml:"id,attr"`
}

type graphmlEdge struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

// ReadGraphML parses a GraphML document, assigning internal indices in node
// order (the order <node> elements appear in the file).
func ReadGraphML(r io.Reader) (*Graph, error) {
	var doc graphmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("lib: parsing graphml: %w", err)
	}
	if len(doc.Graphs) == 0 {
		return NewGraph(nil, nil)
	}

	gg := doc.Graphs[0]
	labels := make([]string, 0, len(gg.Nodes))
	for _, n := range gg.Nodes {
		labels = append(labels, n.ID)
	}

	edges := make([][2]string, 0, len(gg.Edges))
	for _, e := range gg.Edges {
		edges = append(edges, [2]string{e.Source, e.Target})
	}

	return NewGraph(labels, edges)
}

// Subgraph returns the induced subgraph on the given external vertex ids.
// The ids are sorted before indices are assigned, so the caller's order does
// not affect the result.
func (g *Graph) Subgraph(ids []string) (*Graph, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var edges [][2]string
	for u := 0; u < g.N(); u++ {
		if !want[g.Labels[u]] {
			continue
		}
		for v := u + 1; v < g.N(); v++ {
			if want[g.Labels[v]] && g.Adj.At(u, v) != 0 {
				edges = append(edges, [2]string{g.Labels[u], g.Labels[v]})
			}
		}
	}

	labels := append([]string(nil), ids...)
	sort.Strings(labels) // canonical order: deterministic regardless of caller-supplied order
	return NewGraph(labels, edges)
}
