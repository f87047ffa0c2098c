package lib

import "testing"

func TestComputeDriversStarHasOnlyLeavesAsLifters(t *testing.T) {
	// star: center connected to a, b, c. Every leaf's closed neighborhood
	// ({leaf, center}) is a strict subset of the center's ({center, a, b, c}).
	g := mustGraph(t, []string{"center", "a", "b", "c"},
		[][2]string{{"center", "a"}, {"center", "b"}, {"center", "c"}})

	drivers, peers := ComputeDrivers(g.Adj)

	center, _ := g.Index("center")
	lifters, ok := drivers[center]
	if !ok || len(lifters) != 3 {
		t.Fatalf("drivers[center] = %v, want all 3 leaves", lifters)
	}

	for _, leafLabel := range []string{"a", "b", "c"} {
		leaf, _ := g.Index(leafLabel)
		if _, ok := drivers[leaf]; ok {
			t.Errorf("leaf %q should have no lifters of its own", leafLabel)
		}
	}

	// the three leaves are mutual peers: identical closed neighborhoods up
	// to swapping each other.
	a, _ := g.Index("a")
	if len(peers[a]) != 2 {
		t.Fatalf("peers[a] = %v, want 2 peers (b and c)", peers[a])
	}
}

func TestComputeDriversAntisymmetric(t *testing.T) {
	// if u is a lifter of v, v must never also be a lifter of u: that would
	// require both closed neighborhoods to be strict subsets of each other.
	g := mustGraph(t, []string{"center", "a", "b", "c"},
		[][2]string{{"center", "a"}, {"center", "b"}, {"center", "c"}})
	drivers, _ := ComputeDrivers(g.Adj)

	for v, lifters := range drivers {
		for _, u := range lifters {
			for _, back := range drivers[u] {
				if back == v {
					t.Fatalf("antisymmetry violated: %d lifts %d and %d lifts %d", u, v, v, u)
				}
			}
		}
	}
}

func TestPeerComponentGroupsTwins(t *testing.T) {
	g := mustGraph(t, []string{"center", "a", "b", "c"},
		[][2]string{{"center", "a"}, {"center", "b"}, {"center", "c"}})
	_, peers := ComputeDrivers(g.Adj)
	comp := PeerComponent(peers, g.N())

	a, _ := g.Index("a")
	b, _ := g.Index("b")
	c, _ := g.Index("c")
	center, _ := g.Index("center")

	if comp[a] != comp[b] || comp[b] != comp[c] {
		t.Fatalf("leaves should share a peer component: %v", comp)
	}
	if comp[center] == comp[a] {
		t.Fatalf("center should not share the leaves' peer component: %v", comp)
	}
}
