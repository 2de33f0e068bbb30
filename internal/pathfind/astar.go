// Package pathfind implements the bounded A* used by entity AI. Search
// cost is capped by a node budget rather than distance, so a blocked or
// far-away goal degrades to "no path" instead of stalling the tick.
package pathfind

import "container/heap"

// Grid reports which tiles block movement.
type Grid interface {
	SolidAt(tx, ty int) bool
}

// GridFunc adapts a solidity callback to the Grid interface.
type GridFunc func(tx, ty int) bool

func (f GridFunc) SolidAt(tx, ty int) bool { return f(tx, ty) }

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

type node struct {
	f int
	p Point
}

// openHeap orders by f score, breaking ties on coordinates so identical
// searches expand nodes in the same order on every run.
type openHeap []node

func (h openHeap) Len() int { return len(h) }

func (h openHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	if h[i].p.X != h[j].p.X {
		return h[i].p.X < h[j].p.X
	}
	return h[i].p.Y < h[j].p.Y
}

func (h openHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *openHeap) Push(x any) { *h = append(*h, x.(node)) }

func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

func manhattan(a, b Point) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// FindPath searches a 4-connected route from start to goal, expanding at
// most budget nodes. It returns the tile sequence including both
// endpoints, or nil if the goal is unreachable within budget. The start
// tile itself is never tested for solidity, so an entity standing on a
// freshly placed wall can still path out.
func FindPath(grid Grid, start, goal Point, budget int) []Point {
	if start == goal {
		return []Point{start}
	}

	open := &openHeap{{f: 0, p: start}}
	cameFrom := make(map[Point]Point)
	gScore := map[Point]int{start: 0}
	explored := 0

	for open.Len() > 0 && explored < budget {
		explored++
		current := heap.Pop(open).(node).p
		if current == goal {
			path := []Point{current}
			for {
				prev, ok := cameFrom[current]
				if !ok {
					break
				}
				current = prev
				path = append(path, current)
			}
			reverse(path)
			return path
		}

		for _, nb := range [4]Point{
			{current.X + 1, current.Y},
			{current.X - 1, current.Y},
			{current.X, current.Y + 1},
			{current.X, current.Y - 1},
		} {
			if grid.SolidAt(nb.X, nb.Y) {
				continue
			}
			tentative := gScore[current] + 1
			if best, ok := gScore[nb]; ok && tentative >= best {
				continue
			}
			cameFrom[nb] = current
			gScore[nb] = tentative
			heap.Push(open, node{f: tentative + manhattan(nb, goal), p: nb})
		}
	}
	return nil
}

func reverse(p []Point) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}
