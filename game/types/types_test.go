package types

import "testing"

func TestDirectionToPoint(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		want Point
	}{
		{name: "none", dir: None, want: Point{}},
		{name: "up", dir: Up, want: Point{X: 0, Y: -1}},
		{name: "right", dir: Right, want: Point{X: 1, Y: 0}},
		{name: "down", dir: Down, want: Point{X: 0, Y: 1}},
		{name: "left", dir: Left, want: Point{X: -1, Y: 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.dir.ToPoint(); got != tc.want {
				t.Fatalf("%v.ToPoint() = %v, want %v", tc.dir, got, tc.want)
			}
		})
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range Directions {
		o := d.Opposite()
		if o.Opposite() != d {
			t.Fatalf("opposite of opposite of %v is %v", d, o.Opposite())
		}
		if d.ToPoint().Add(o.ToPoint()) != (Point{}) {
			t.Fatalf("%v and %v do not cancel", d, o)
		}
	}
	if None.Opposite() != None {
		t.Fatalf("None should have no opposite")
	}
}

func TestGridContainsAndIndex(t *testing.T) {
	g := Grid{Width: 4, Height: 3}
	if !g.Contains(Point{X: 3, Y: 2}) || g.Contains(Point{X: 4, Y: 0}) || g.Contains(Point{X: 0, Y: -1}) {
		t.Fatalf("Contains bounds wrong")
	}
	if got := g.Index(Point{X: 1, Y: 2}); got != 9 {
		t.Fatalf("Index = %d, want 9", got)
	}
	if got := g.Center(); got != (Point{X: 2, Y: 1}) {
		t.Fatalf("Center = %v", got)
	}
}
