// Package algorithms implements the 2-club branching model on top of the
// generic engine and lib packages: the problem-specific Root/Expand pair
// that drives the parallel search.
package algorithms

import (
	"github.com/neojume/twoclubs/engine"
	"github.com/neojume/twoclubs/lib"
)

// TwoClubNode is a node of the 2-club search tree: the current two-hop
// connectivity matrix, an in/out/undecided label per vertex, and whether
// this node is a terminal (accepted candidate).
type TwoClubNode struct {
	C        *lib.Matrix // nil once Terminal
	Info     []int8
	Terminal bool
}

// IsTerminal satisfies engine.Node.
func (n *TwoClubNode) IsTerminal() bool { return n.Terminal }

// TwoClubModel holds everything derived from the input graph that is
// immutable for the life of one search: the initial connectivity matrix,
// the per-vertex removal matrices, and the driver table. It is read-only
// once constructed, so every worker goroutine can share the same instance.
type TwoClubModel struct {
	n       int
	drivers map[int][]int
	removal []*lib.Matrix
	root    *TwoClubNode
}

// NewTwoClubModel derives a TwoClubModel from a graph.
func NewTwoClubModel(g *lib.Graph) *TwoClubModel {
	n := g.N()
	drivers, _ := lib.ComputeDrivers(g.Adj)

	info := make([]int8, n)
	for i := range info {
		info[i] = lib.Undecided
	}

	return &TwoClubModel{
		n:       n,
		drivers: drivers,
		removal: g.RemovalMatrices(),
		root:    &TwoClubNode{C: g.Connectivity(), Info: info},
	}
}

// Root satisfies engine.Model.
func (m *TwoClubModel) Root() engine.Node { return m.root }

// Expand satisfies engine.Model, implementing the 2-club branching rule
// (SPEC_FULL.md §4.3): a feasibility check, a DROP-chosen branch vertex, and
// up to two children — include the branch vertex (Branch A) and exclude it
// together with its forced lifters (Branch B).
func (m *TwoClubModel) Expand(node engine.Node) []engine.Node {
	n := node.(*TwoClubNode)
	c, info := n.C, n.Info

	for i := 0; i < m.n; i++ {
		if info[i] != lib.Included {
			continue
		}
		for j := 0; j < m.n; j++ {
			if info[j] == lib.Included && c.At(i, j) == 0 {
				return nil
			}
		}
	}

	r := lib.DROP(c, info)
	if r == lib.NoVertex {
		return []engine.Node{&TwoClubNode{Info: info, Terminal: true}}
	}

	var children []engine.Node

	if child, ok := m.branchInclude(c, info, r); ok {
		children = append(children, child)
	}
	if child, ok := m.branchExclude(c, info, r); ok {
		children = append(children, child)
	}

	return children
}

// branchInclude produces Branch A: commit r to the solution and drop every
// vertex not within two hops of it.
func (m *TwoClubModel) branchInclude(c *lib.Matrix, info []int8, r int) (*TwoClubNode, bool) {
	newInfo := append([]int8(nil), info...)
	newInfo[r] = lib.Included
	newC := c.Clone()

	for i := 0; i < m.n; i++ {
		if c.At(i, r) != 0 {
			continue
		}
		switch newInfo[i] {
		case lib.Included:
			return nil, false
		case lib.Undecided:
			newC.SubtractInPlace(m.removal[i])
			newInfo[i] = lib.Excluded
		}
	}

	return &TwoClubNode{C: newC, Info: newInfo}, true
}

// branchExclude produces Branch B: drop r and every lifter of r that is
// still undecided. If any lifter of r is already committed, excluding r
// would orphan it, so this branch is infeasible.
func (m *TwoClubModel) branchExclude(c *lib.Matrix, info []int8, r int) (*TwoClubNode, bool) {
	toRemove := []int{r}
	for _, u := range m.drivers[r] {
		switch info[u] {
		case lib.Included:
			return nil, false
		case lib.Undecided:
			toRemove = append(toRemove, u)
		}
	}

	newInfo := append([]int8(nil), info...)
	newC := c.Clone()
	for _, v := range toRemove {
		newC.SubtractInPlace(m.removal[v])
		newInfo[v] = lib.Excluded
	}

	return &TwoClubNode{C: newC, Info: newInfo}, true
}
