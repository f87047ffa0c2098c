package lib

import "testing"

func TestParseGraphText(t *testing.T) {
	g, err := ParseGraphText("(a,b) (b,c) (a,c)")
	if err != nil {
		t.Fatalf("ParseGraphText: %v", err)
	}
	if g.N() != 3 {
		t.Fatalf("N() = %d, want 3", g.N())
	}
	a, _ := g.Index("a")
	b, _ := g.Index("b")
	c, _ := g.Index("c")
	if g.Adj.At(a, b) != 1 || g.Adj.At(b, c) != 1 || g.Adj.At(a, c) != 1 {
		t.Fatal("all three edges of the triangle should be present")
	}
}

func TestParseGraphTextRejectsMalformedEdge(t *testing.T) {
	if _, err := ParseGraphText("(a,b,c)"); err == nil {
		t.Fatal("expected an error for an edge naming three vertices")
	}
}

func TestParseGraphTextAssignsLabelsInFirstOccurrenceOrder(t *testing.T) {
	g, err := ParseGraphText("(x,y) (y,z)")
	if err != nil {
		t.Fatalf("ParseGraphText: %v", err)
	}
	want := []string{"x", "y", "z"}
	for i, w := range want {
		if g.Label(i) != w {
			t.Fatalf("Label(%d) = %q, want %q", i, g.Label(i), w)
		}
	}
}
