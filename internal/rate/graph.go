package rate

import (
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// NoNode is the parent handle of a root.
const NoNode = -1

type node struct {
	state    State
	parent   int
	children []int
	live     bool
}

// Graph is an arena of search states. Nodes are addressed by integer
// handles; removed handles go on a free list and are handed out again
// by later additions.
type Graph struct {
	nodes []node
	free  []int
	live  int
}

func NewGraph(capacity int) *Graph {
	return &Graph{
		nodes: make([]node, 0, capacity),
	}
}

func (g *Graph) alloc(s State, parent int) int {
	if n := len(g.free); n > 0 {
		h := g.free[n-1]
		g.free = g.free[:n-1]
		nd := &g.nodes[h]
		nd.state = s
		nd.parent = parent
		nd.children = nd.children[:0]
		nd.live = true
		g.live++
		return h
	}
	g.nodes = append(g.nodes, node{state: s, parent: parent, children: make([]int, 0, len(Feet)), live: true})
	g.live++
	return len(g.nodes) - 1
}

func (g *Graph) get(h int) *node {
	if h < 0 || h >= len(g.nodes) || !g.nodes[h].live {
		logrus.Panicf("node %d is not in the graph", h)
	}
	return &g.nodes[h]
}

// AddRoot adds a parentless node.
func (g *Graph) AddRoot(s State) int {
	return g.alloc(s, NoNode)
}

func (g *Graph) AddChild(parent int, s State) int {
	g.get(parent)
	h := g.alloc(s, parent)
	// alloc may have grown the arena, so look the parent up again
	p := &g.nodes[parent]
	p.children = append(p.children, h)
	return h
}

func (g *Graph) Contains(h int) bool {
	return h >= 0 && h < len(g.nodes) && g.nodes[h].live
}

// Len is the number of live nodes.
func (g *Graph) Len() int {
	return g.live
}

func (g *Graph) State(h int) State {
	return g.get(h).state
}

func (g *Graph) Parent(h int) int {
	return g.get(h).parent
}

// Children returns the child handles of h. The slice is owned by the
// graph and is only valid until the next modification.
func (g *Graph) Children(h int) []int {
	return g.get(h).children
}

// Ancestor returns the node n generations above h.
func (g *Graph) Ancestor(h int, n int) int {
	g.get(h)
	for i := 0; i < n; i++ {
		h = g.nodes[h].parent
		if h == NoNode {
			logrus.Panicf("node has fewer than %d ancestors", n)
		}
	}
	return h
}

// Descendants returns every node below h, nearest first.
func (g *Graph) Descendants(h int) []int {
	ret := []int{}
	processing := append([]int{}, g.get(h).children...)
	for len(processing) > 0 {
		ret = append(ret, processing...)
		next := []int{}
		for _, n := range processing {
			next = append(next, g.nodes[n].children...)
		}
		processing = next
	}
	return ret
}

// Path returns the handles from the root down to h.
func (g *Graph) Path(h int) []int {
	g.get(h)
	path := []int{}
	for ; h != NoNode; h = g.nodes[h].parent {
		path = append(path, h)
	}
	return lo.Reverse(path)
}

func (g *Graph) release(h int) {
	nd := &g.nodes[h]
	for _, c := range nd.children {
		g.release(c)
	}
	nd.children = nd.children[:0]
	nd.live = false
	nd.parent = NoNode
	g.free = append(g.free, h)
	g.live--
}

// RemoveDescendants removes everything below h, keeping h itself.
func (g *Graph) RemoveDescendants(h int) {
	nd := g.get(h)
	children := nd.children
	for _, c := range children {
		g.release(c)
	}
	g.nodes[h].children = children[:0]
}

// Remove removes h and everything below it.
func (g *Graph) Remove(h int) {
	g.Detach(h)
	g.release(h)
}

// Detach cuts h from its parent, making it a root.
func (g *Graph) Detach(h int) {
	nd := g.get(h)
	if nd.parent == NoNode {
		return
	}
	p := &g.nodes[nd.parent]
	p.children = lo.Without(p.children, h)
	nd.parent = NoNode
}

// Removes h and then each ancestor left without children.
func (g *Graph) trim(h int) {
	for h != NoNode && len(g.nodes[h].children) == 0 {
		parent := g.nodes[h].parent
		g.Remove(h)
		h = parent
	}
}
