package rate

import (
	"container/heap"

	"git.lost.host/meutraa/stamina/internal/game"
)

// For each node in layer, creates every combination of feet for notes.
// Returns the deepest nodes created, len(layer) * 2^len(notes) of them.
func expand(g *Graph, layer []int, notes []game.Note, p *StepParams) []int {
	for _, note := range notes {
		next := make([]int, 0, len(layer)*len(Feet))
		for _, n := range layer {
			s := g.State(n)
			for _, foot := range Feet {
				next = append(next, g.AddChild(n, s.Step(foot, note, p)))
			}
		}
		layer = next
	}
	return layer
}

// Ranks leaves by their maximum fatigue and returns the distinct
// ancestors, depth generations up, of the best ones. At most beam
// nodes are returned, best first.
func selectAncestors(g *Graph, leaves []int, depth int, beam int) []int {
	if beam <= 0 {
		return nil
	}
	pq := make(PriorityQueue, len(leaves))
	for i, l := range leaves {
		pq[i] = &Item{Node: l, Priority: g.State(l).MaxFatigue(), Seq: i, Index: i}
	}
	heap.Init(&pq)

	best := make([]int, 0, beam)
	seen := make(map[int]struct{}, beam)
	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*Item)
		ancestor := g.Ancestor(item.Node, depth)
		if _, ok := seen[ancestor]; ok {
			continue
		}
		seen[ancestor] = struct{}{}
		best = append(best, ancestor)
		if len(best) >= beam {
			break
		}
	}
	return best
}

// Drops everything grown below frontier except the paths leading to
// keep. The kept nodes lose their own descendants. Frontier nodes with
// nothing kept beneath them are removed along with any ancestors that
// are left childless.
func prune(g *Graph, frontier []int, keep []int) {
	retain := make(map[int]struct{}, len(keep)*2)
	for _, k := range keep {
		g.RemoveDescendants(k)
		for h := k; h != NoNode; h = g.Parent(h) {
			if _, ok := retain[h]; ok {
				break
			}
			retain[h] = struct{}{}
		}
	}

	var sweep func(h int)
	sweep = func(h int) {
		// Copy, since Remove edits the child list
		for _, c := range append([]int{}, g.Children(h)...) {
			if _, ok := retain[c]; ok {
				sweep(c)
			} else {
				g.Remove(c)
			}
		}
	}
	for _, f := range frontier {
		if _, ok := retain[f]; ok {
			sweep(f)
		} else if g.Contains(f) {
			parent := g.Parent(f)
			g.Remove(f)
			g.trim(parent)
		}
	}
}

// Makes each kept node a root and removes the history above it.
func forget(g *Graph, keep []int) {
	for _, k := range keep {
		parent := g.Parent(k)
		g.Detach(k)
		g.trim(parent)
	}
}
