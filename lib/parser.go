package lib

import (
	"fmt"

	"github.com/alecthomas/participle"
)

// parseEdge is one edge of the plaintext graph fixture grammar: a
// parenthesized, comma-separated list of vertex names, e.g. "(a,b)".
type parseEdge struct {
	Vertices []string `"(" ( @Ident ","? )* ")"`
}

// parseGraph is a whole fixture: a comma/whitespace separated list of
// edges, e.g. "(a,b) (b,c) (a,c)".
type parseGraph struct {
	Edges []parseEdge `( @@ ","?)*`
}

var graphParser = participle.MustBuild(&parseGraph{}, participle.UseLookahead(1))

// ParseGraphText builds a Graph from a terse edge-list grammar adapted from
// the teacher's hypergraph-edge grammar (lib/parser.go): edge names are
// dropped, since a 2-club candidate graph's edges don't carry them, leaving
// just parenthesized vertex pairs. Vertex labels are assigned in
// first-occurrence order, mirroring how GraphML node order assigns indices
// in ReadGraphML. Used by tests to write graph fixtures without
// hand-writing XML.
func ParseGraphText(s string) (*Graph, error) {
	var pg parseGraph
	if err := graphParser.ParseString(s, &pg); err != nil {
		return nil, fmt.Errorf("lib: parsing graph text: %w", err)
	}

	var labels []string
	seen := make(map[string]bool)
	var edges [][2]string
	for _, e := range pg.Edges {
		if len(e.Vertices) != 2 {
			return nil, fmt.Errorf("lib: edge %v must name exactly two vertices", e.Vertices)
		}
		for _, v := range e.Vertices {
			if !seen[v] {
				seen[v] = true
				labels = append(labels, v)
			}
		}
		edges = append(edges, [2]string{e.Vertices[0], e.Vertices[1]})
	}

	return NewGraph(labels, edges)
}
