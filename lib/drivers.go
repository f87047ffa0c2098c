package lib

import "github.com/spakin/disjoint"

// ComputeDrivers finds, for every vertex v, the set of its lifters — other
// vertices whose closed neighborhood is strictly contained in v's — and the
// set of v's peers (twin vertices with identical closed neighborhoods up to
// swapping each other). Peer equivalence classes are computed once via a
// union-find over vertex indices, since "is a peer of" is transitive on true
// twins; this mirrors the union-find component pattern the corpus uses for
// graph components (github.com/spakin/disjoint), applied here to vertices
// instead of connected components. Whether a lifter "has already been
// claimed elsewhere" is answered by looking up its peer class's
// representative element (elems[u].Find()) in a claimed set, rather than by
// rescanning every peer pairwise for each driver entry.
//
// Canonical ordering. The source (Drivers.py) mutates its driver map while
// iterating over vertices in whatever order Python's dict happens to give,
// so a peer can suppress a driver entry before or after that entry's own
// peer symmetry has been resolved, and the exact emitted set depends on
// that iteration order — a "known source quirk" this project does not
// silently fix (see SPEC_FULL.md §4.2/§9). Go maps have no iteration order
// at all, so this implementation fixes one instead: vertices are processed
// in increasing index order, and a peer may only suppress a later vertex's
// driver entry, never an earlier one's. The resulting driver set is a pure
// function of vertex index.
func ComputeDrivers(adj *Matrix) (drivers map[int][]int, peers map[int][]int) {
	n := adj.N()
	closed := closedNeighborhoods(adj)

	candidates := make(map[int][]int, n)
	for v := 0; v < n; v++ {
		for u := 0; u < n; u++ {
			if u == v {
				continue
			}
			if isStrictSubset(closed[u], closed[v]) {
				candidates[v] = append(candidates[v], u)
			}
		}
	}

	elems := make([]*disjoint.Element, n)
	for i := range elems {
		elems[i] = disjoint.NewElement()
	}
	peers = make(map[int][]int, n)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if isPeer(closed[u], closed[v], u, v) {
				peers[u] = append(peers[u], v)
				peers[v] = append(peers[v], u)
				disjoint.Union(elems[u], elems[v])
			}
		}
	}

	drivers = make(map[int][]int, len(candidates))
	for v, lifters := range candidates {
		drivers[v] = append([]int(nil), lifters...)
	}

	// claimed marks, per peer-equivalence-class representative, that some
	// earlier-processed vertex has already used a member of that class as
	// a lifter. A later vertex whose own lifter falls in an already-claimed
	// class is redundant exploration and is suppressed.
	claimed := make(map[*disjoint.Element]bool, n)
	for v := 0; v < n; v++ {
		lifters, ok := drivers[v]
		if !ok {
			continue
		}

		suppressed := false
		for _, u := range lifters {
			if claimed[elems[u].Find()] {
				suppressed = true
				break
			}
		}

		if suppressed {
			delete(drivers, v)
			continue
		}
		for _, u := range lifters {
			claimed[elems[u].Find()] = true
		}
	}

	return drivers, peers
}

// PeerComponent groups the n vertices into peer-equivalence classes and
// returns, for every vertex, the id of its class (ids are numbered 0, 1, ...
// in order of each class's lowest vertex). It is exposed for tests and for
// tools that need to group twin vertices without recomputing the whole
// driver table.
func PeerComponent(peers map[int][]int, n int) []int {
	elems := make([]*disjoint.Element, n)
	for i := range elems {
		elems[i] = disjoint.NewElement()
	}
	for v, adj := range peers {
		for _, u := range adj {
			disjoint.Union(elems[v], elems[u])
		}
	}
	root := make([]int, n)
	seen := make(map[*disjoint.Element]int, n)
	for i := 0; i < n; i++ {
		r := elems[i].Find()
		id, ok := seen[r]
		if !ok {
			id = len(seen)
			seen[r] = id
		}
		root[i] = id
	}
	return root
}

func closedNeighborhoods(adj *Matrix) [][]bool {
	n := adj.N()
	closed := make([][]bool, n)
	for i := 0; i < n; i++ {
		nb := make([]bool, n)
		nb[i] = true
		for j := 0; j < n; j++ {
			if adj.At(i, j) != 0 {
				nb[j] = true
			}
		}
		closed[i] = nb
	}
	return closed
}

// isStrictSubset reports whether a ⊊ b.
func isStrictSubset(a, b []bool) bool {
	strict := false
	for i := range a {
		if a[i] && !b[i] {
			return false
		}
		if !a[i] && b[i] {
			strict = true
		}
	}
	return strict
}

// isPeer reports whether N(u)\{v} = N(v)\{u}, i.e. u and v are twin
// vertices (identical closed neighborhoods once each is allowed to ignore
// the other).
func isPeer(nu, nv []bool, u, v int) bool {
	for i := range nu {
		if i == u || i == v {
			continue
		}
		if nu[i] != nv[i] {
			return false
		}
	}
	return true
}
