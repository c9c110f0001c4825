package engine

import (
	"fmt"

	"github.com/lixenwraith/collide/constants"
	"github.com/lixenwraith/collide/core"
)

// noNode marks a missing parent or child link in the node arena
const noNode int32 = -1

// QuadTreeConfig holds the construction parameters of a QuadTree
// MaxDepth 0 is a valid single-node tree
type QuadTreeConfig struct {
	Region     core.Region
	MaxDepth   int
	MaxNodePop int
}

// DefaultQuadTreeConfig returns the stock depth and population limits for region
func DefaultQuadTreeConfig(region core.Region) QuadTreeConfig {
	return QuadTreeConfig{
		Region:     region,
		MaxDepth:   constants.DefaultMaxDepth,
		MaxNodePop: constants.DefaultMaxNodePop,
	}
}

// qtNode is one arena slot
// Children occupy four contiguous slots NW, NE, SW, SE starting at child
type qtNode struct {
	region core.Region
	depth  int
	parent int32
	child  int32
	bodies []core.Body
}

func (n *qtNode) isLeaf() bool {
	return n.child == noNode
}

// QuadTree is a hierarchical broad phase that subdivides where bodies cluster
// Bodies are stored at the smallest node that fully contains their region, which
// may be an internal node when a body straddles a split line
type QuadTree struct {
	cfg QuadTreeConfig

	// nodes[0] is the root; freed child blocks are recycled through free
	nodes []qtNode
	free  []int32

	// owners maps a body to the node storing it
	owners map[core.Handle]int32

	// stack is the traversal scratch reused across queries
	stack []int32
}

// NewQuadTree creates an empty tree spanning cfg.Region
func NewQuadTree(cfg QuadTreeConfig) (*QuadTree, error) {
	if !cfg.Region.Valid() {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidRegion, cfg.Region)
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, cfg.MaxDepth)
	}
	if cfg.MaxNodePop < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNodePop, cfg.MaxNodePop)
	}

	q := &QuadTree{
		cfg:    cfg,
		owners: make(map[core.Handle]int32),
		stack:  make([]int32, 0, 64),
	}
	q.nodes = append(q.nodes, qtNode{region: cfg.Region, parent: noNode, child: noNode})
	return q, nil
}

// Config returns the construction parameters
func (q *QuadTree) Config() QuadTreeConfig {
	return q.cfg
}

// Len returns the number of tracked bodies
func (q *QuadTree) Len() int {
	return len(q.owners)
}

// NodeCount returns the number of live nodes, root included
func (q *QuadTree) NodeCount() int {
	return len(q.nodes) - 4*len(q.free)
}

// IsLeaf reports whether the root has no children
func (q *QuadTree) IsLeaf() bool {
	return q.nodes[0].isLeaf()
}

// Owner returns the region of the node currently storing the body
func (q *QuadTree) Owner(b core.Body) (core.Region, bool) {
	idx, ok := q.owners[b.Handle()]
	if !ok {
		return core.Region{}, false
	}
	return q.nodes[idx].region, true
}

// Depth returns the depth of the deepest live node
func (q *QuadTree) Depth() int {
	deepest := 0
	q.walk(func(idx int32) {
		if d := q.nodes[idx].depth; d > deepest {
			deepest = d
		}
	})
	return deepest
}

// Add stores the body at the smallest node fully containing it
// A body already present is removed first
func (q *QuadTree) Add(b core.Body) {
	q.Remove(b)
	q.insert(0, b)
}

// insert descends from idx, subdividing full leaves on the way
func (q *QuadTree) insert(idx int32, b core.Body) {
	r := b.Region()
	for {
		n := &q.nodes[idx]
		if !n.isLeaf() {
			if c := q.childFor(idx, r); c != noNode {
				idx = c
				continue
			}
		} else if len(n.bodies) >= q.cfg.MaxNodePop && n.depth < q.cfg.MaxDepth {
			q.subdivide(idx)
			// Retry at the same node now that it has children
			continue
		}

		n.bodies = append(n.bodies, b)
		q.owners[b.Handle()] = idx
		return
	}
}

// childFor returns the child of idx fully containing r, or noNode
func (q *QuadTree) childFor(idx int32, r core.Region) int32 {
	first := q.nodes[idx].child
	if first == noNode {
		return noNode
	}
	for i := int32(0); i < 4; i++ {
		if q.nodes[first+i].region.Contains(r) {
			return first + i
		}
	}
	return noNode
}

// subdivide splits a leaf into four quadrants and pushes down every occupant that fits
func (q *QuadTree) subdivide(idx int32) {
	first := q.allocChildren()
	quads := q.nodes[idx].region.Quadrants()
	depth := q.nodes[idx].depth + 1

	for i := int32(0); i < 4; i++ {
		c := &q.nodes[first+i]
		c.region = quads[i]
		c.depth = depth
		c.parent = idx
		c.child = noNode
		c.bodies = c.bodies[:0]
	}
	q.nodes[idx].child = first

	occupants := q.nodes[idx].bodies
	kept := occupants[:0]
	for _, b := range occupants {
		if c := q.childFor(idx, b.Region()); c != noNode {
			q.insert(c, b)
			continue
		}
		kept = append(kept, b)
	}
	clear(occupants[len(kept):])
	q.nodes[idx].bodies = kept
}

// allocChildren returns the first slot of a four-node block
func (q *QuadTree) allocChildren() int32 {
	if n := len(q.free); n > 0 {
		first := q.free[n-1]
		q.free = q.free[:n-1]
		return first
	}
	first := int32(len(q.nodes))
	for range 4 {
		q.nodes = append(q.nodes, qtNode{parent: noNode, child: noNode})
	}
	return first
}

// Remove drops the body from its recorded node
func (q *QuadTree) Remove(b core.Body) {
	handle := b.Handle()
	idx, ok := q.owners[handle]
	if !ok {
		return
	}
	q.detach(idx, handle)
	delete(q.owners, handle)
}

// detach swap-removes a body from one node's list
func (q *QuadTree) detach(idx int32, handle core.Handle) {
	n := &q.nodes[idx]
	for i, other := range n.bodies {
		if other.Handle() != handle {
			continue
		}
		last := len(n.bodies) - 1
		n.bodies[i] = n.bodies[last]
		n.bodies[last] = nil
		n.bodies = n.bodies[:last]
		return
	}
}

// Move reindexes a body without a full descent from the root
// A body still inside its node only sinks into a child that now contains it;
// a body that left its node climbs to the nearest ancestor containing it
func (q *QuadTree) Move(b core.Body) {
	handle := b.Handle()
	idx, ok := q.owners[handle]
	if !ok {
		return
	}

	r := b.Region()
	if q.nodes[idx].region.Contains(r) {
		if q.childFor(idx, r) != noNode {
			q.detach(idx, handle)
			q.insert(idx, b)
		}
		return
	}

	q.detach(idx, handle)
	dest := q.nodes[idx].parent
	for dest != noNode && !q.nodes[dest].region.Contains(r) {
		dest = q.nodes[dest].parent
	}
	if dest == noNode {
		// Outside the root: the root keeps it
		dest = 0
	}
	q.insert(dest, b)
}

// Query appends bodies of every node whose region overlaps r
// Bodies stored at a visited node are returned even if they do not touch r
func (q *QuadTree) Query(r core.Region, buf []core.Body) []core.Body {
	if !r.Valid() {
		return buf
	}

	stack := append(q.stack[:0], 0)
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &q.nodes[idx]
		buf = append(buf, n.bodies...)
		if n.isLeaf() {
			continue
		}
		// Pushed in reverse so NW is visited first
		for i := int32(3); i >= 0; i-- {
			c := n.child + i
			if q.nodes[c].region.Overlaps(r) {
				stack = append(stack, c)
			}
		}
	}
	q.stack = stack
	return buf
}

// Cleanup collapses every subtree that holds no bodies back into a leaf
func (q *QuadTree) Cleanup() {
	q.collapse(0)
}

// collapse returns true when the subtree under idx is empty
func (q *QuadTree) collapse(idx int32) bool {
	first := q.nodes[idx].child
	if first == noNode {
		return len(q.nodes[idx].bodies) == 0
	}

	empty := true
	for i := int32(0); i < 4; i++ {
		if !q.collapse(first + i) {
			empty = false
		}
	}
	if empty {
		q.nodes[idx].child = noNode
		q.free = append(q.free, first)
	}
	return empty && len(q.nodes[idx].bodies) == 0
}

// Clear drops every node and record but keeps the configuration
func (q *QuadTree) Clear() {
	clear(q.nodes[1:])
	q.nodes = q.nodes[:1]
	clear(q.nodes[0].bodies)
	q.nodes[0].bodies = q.nodes[0].bodies[:0]
	q.nodes[0].child = noNode
	q.free = q.free[:0]
	clear(q.owners)
}

// Render reports every live node and the link from each node to its stored bodies
func (q *QuadTree) Render(canvas DebugCanvas) {
	q.walk(func(idx int32) {
		n := &q.nodes[idx]
		canvas.NodeBounds(n.region, n.depth)
		center := n.region.Center()
		for _, b := range n.bodies {
			canvas.NodeLink(center, b.Kinetics().P)
		}
	})
}

// walk visits every live node depth first, parents before children
func (q *QuadTree) walk(fn func(idx int32)) {
	stack := append(q.stack[:0], 0)
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(idx)
		if first := q.nodes[idx].child; first != noNode {
			stack = append(stack, first+3, first+2, first+1, first)
		}
	}
	q.stack = stack
}
