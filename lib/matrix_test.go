package lib

import "testing"

func TestMatrixSquareAndPlus(t *testing.T) {
	// triangle: 0-1-2-0
	a := NewMatrix(3)
	edges := [][2]int{{0, 1}, {1, 2}, {0, 2}}
	for _, e := range edges {
		a.Set(e[0], e[1], 1)
		a.Set(e[1], e[0], 1)
	}

	sq := a.Square()
	// every pair in a triangle has exactly one 2-path through the third vertex
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				if sq.At(i, j) != 2 {
					t.Errorf("sq[%d][%d] = %d, want 2 (two neighbors looping back)", i, j, sq.At(i, j))
				}
				continue
			}
			if sq.At(i, j) != 1 {
				t.Errorf("sq[%d][%d] = %d, want 1", i, j, sq.At(i, j))
			}
		}
	}

	c := a.Plus(sq)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				continue
			}
			if c.At(i, j) == 0 {
				t.Errorf("c[%d][%d] should be nonzero in a triangle's connectivity matrix", i, j)
			}
		}
	}
}

func TestMatrixCloneIsIndependent(t *testing.T) {
	m := NewMatrix(2)
	m.Set(0, 1, 5)
	clone := m.Clone()
	clone.Set(0, 1, 9)
	if m.At(0, 1) != 5 {
		t.Fatalf("mutating a clone mutated the original: got %d, want 5", m.At(0, 1))
	}
}

func TestSubtractInPlaceIsElementwise(t *testing.T) {
	m := NewMatrix(2)
	m.Set(0, 0, 5)
	m.Set(0, 1, 3)
	o := NewMatrix(2)
	o.Set(0, 0, 2)
	m.SubtractInPlace(o)
	if m.At(0, 0) != 3 || m.At(0, 1) != 3 {
		t.Fatalf("got [%d %d], want [3 3]", m.At(0, 0), m.At(0, 1))
	}
}

func TestOuterProduct(t *testing.T) {
	col := []int{1, 0, 1}
	row := []int{0, 1, 1}
	out := OuterProduct(col, row)
	want := [3][3]int{
		{0, 1, 1},
		{0, 0, 0},
		{0, 1, 1},
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if out.At(i, j) != want[i][j] {
				t.Errorf("out[%d][%d] = %d, want %d", i, j, out.At(i, j), want[i][j])
			}
		}
	}
}
