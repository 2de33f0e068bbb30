package pathfind

import "testing"

var openGrid = GridFunc(func(int, int) bool { return false })

func walls(ws ...Point) GridFunc {
	set := make(map[Point]bool, len(ws))
	for _, w := range ws {
		set[w] = true
	}
	return func(tx, ty int) bool { return set[Point{tx, ty}] }
}

func TestStartEqualsGoal(t *testing.T) {
	got := FindPath(openGrid, Point{3, 3}, Point{3, 3}, 300)
	if len(got) != 1 || got[0] != (Point{3, 3}) {
		t.Fatalf("got %v", got)
	}
}

func TestOpenGridShortestLength(t *testing.T) {
	got := FindPath(openGrid, Point{0, 0}, Point{6, 3}, 300)
	if len(got) != 10 {
		t.Fatalf("path length %d, want 10 (manhattan+1)", len(got))
	}
	if got[0] != (Point{0, 0}) || got[len(got)-1] != (Point{6, 3}) {
		t.Fatalf("endpoints wrong: %v", got)
	}
	for i := 1; i < len(got); i++ {
		if manhattan(got[i-1], got[i]) != 1 {
			t.Fatalf("non-adjacent step %v -> %v", got[i-1], got[i])
		}
	}
}

func TestRoutesThroughGap(t *testing.T) {
	// Walls on three sides of the start force the detour through the
	// single gap below; the shortest route is unique.
	g := walls(Point{3, 0}, Point{2, 1}, Point{1, 0})
	got := FindPath(g, Point{2, 0}, Point{0, 0}, 300)
	want := []Point{{2, 0}, {2, -1}, {1, -1}, {0, -1}, {0, 0}}
	if len(got) != len(want) {
		t.Fatalf("path %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("step %d: %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEnclosedGoalUnreachable(t *testing.T) {
	g := walls(
		Point{4, -1}, Point{4, 0}, Point{4, 1},
		Point{5, -1}, Point{5, 1},
		Point{6, -1}, Point{6, 0}, Point{6, 1},
	)
	if got := FindPath(g, Point{0, 0}, Point{5, 0}, 300); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestBudgetExhausted(t *testing.T) {
	// Budget 1 pops only the start node before giving up.
	if got := FindPath(openGrid, Point{0, 0}, Point{3, 0}, 1); got != nil {
		t.Fatalf("expected nil under budget 1, got %v", got)
	}
}

func TestPathAvoidsSolidTiles(t *testing.T) {
	g := walls(Point{1, 0}, Point{1, 1}, Point{1, -1}, Point{1, 2})
	got := FindPath(g, Point{0, 0}, Point{2, 0}, 300)
	if got == nil {
		t.Fatalf("expected a path around the wall")
	}
	for _, p := range got {
		if g(p.X, p.Y) {
			t.Fatalf("path crosses wall at %v", p)
		}
	}
}

func TestSolidStartCanEscape(t *testing.T) {
	g := walls(Point{0, 0}, Point{5, 0})
	got := FindPath(g, Point{0, 0}, Point{3, 0}, 300)
	if got == nil || got[0] != (Point{0, 0}) {
		t.Fatalf("start tile solidity should not trap the search: %v", got)
	}
}
