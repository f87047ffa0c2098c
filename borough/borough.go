// Package borough implements the collaborator boundary the core meets the
// (out-of-scope) borough pre-decomposition pass at: loading a borough file
// and selecting one borough's induced subgraph to search. The cycle-based
// decomposition algorithm that produces a borough file is not implemented
// here — only the file format and selection interface SPEC_FULL.md §6
// describes.
package borough

import (
	"fmt"
	"io"
	"os"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/spakin/disjoint"

	"github.com/neojume/twoclubs/lib"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Edge is one edge of a borough, named by the original graph's external
// vertex ids.
type Edge struct {
	U string `json:"u"`
	V string `json:"v"`
}

// File is the on-disk borough format: a list of boroughs, each a list of
// edges, ordered largest-first (index 0 = largest borough), replacing the
// original implementation's Python pickle of a list of edge sets — there is
// no pickle equivalent in the reference corpus, so this uses the
// json-iterator encoding the corpus already depends on.
type File struct {
	Boroughs [][]Edge `json:"boroughs"`
}

// Load reads a borough file from path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("borough: opening %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a borough file from r.
func Decode(r io.Reader) (*File, error) {
	var bf File
	if err := json.NewDecoder(r).Decode(&bf); err != nil {
		return nil, fmt.Errorf("borough: decoding: %w", err)
	}
	return &bf, nil
}

// Save writes a borough file to path.
func (bf *File) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("borough: creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bf); err != nil {
		return fmt.Errorf("borough: encoding: %w", err)
	}
	return nil
}

// Select returns the induced subgraph of the n'th borough (0 = largest) of
// the original graph g.
func (bf *File) Select(g *lib.Graph, n int) (*lib.Graph, error) {
	if n < 0 || n >= len(bf.Boroughs) {
		return nil, fmt.Errorf("borough: index %d out of range (have %d boroughs)", n, len(bf.Boroughs))
	}

	seen := make(map[string]bool)
	var ids []string
	for _, e := range bf.Boroughs[n] {
		for _, id := range [2]string{e.U, e.V} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)

	return g.Subgraph(ids)
}

// SortBySize reorders boroughs largest (by vertex count) first, the order
// the original FindBoroughs.py writes its result in.
func (bf *File) SortBySize() {
	sort.SliceStable(bf.Boroughs, func(i, j int) bool {
		return vertexCount(bf.Boroughs[i]) > vertexCount(bf.Boroughs[j])
	})
}

func vertexCount(edges []Edge) int {
	seen := make(map[string]bool, 2*len(edges))
	for _, e := range edges {
		seen[e.U] = true
		seen[e.V] = true
	}
	return len(seen)
}

// CheckConnected reports whether a borough's edge set forms a single
// connected component, via a union-find scan over its vertices — a sanity
// check callers can run before trusting a hand-authored or externally
// produced borough file.
func CheckConnected(edges []Edge) bool {
	elems := make(map[string]*disjoint.Element)
	get := func(id string) *disjoint.Element {
		e, ok := elems[id]
		if !ok {
			e = disjoint.NewElement()
			elems[id] = e
		}
		return e
	}

	for _, e := range edges {
		disjoint.Union(get(e.U), get(e.V))
	}

	var root *disjoint.Element
	for _, e := range elems {
		r := e.Find()
		if root == nil {
			root = r
		} else if r != root {
			return false
		}
	}
	return true
}
