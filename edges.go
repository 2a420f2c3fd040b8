package ptrie

import "github.com/hideo55/go-popcount"

// edgeTable is the sparse "one key unit -> child node" mapping of a
// branching node. Two shapes are provided so the 256-wide string
// alphabet and the 16-wide nibble alphabet each get a representation
// sized to their own branching factor.
type edgeTable interface {
	get(u Unit) *node
	set(u Unit, n *node)
	delete(u Unit)
	len() int
	each(fn func(u Unit, n *node) bool)
}

// mapEdges backs the string domain's up-to-256-way branching, a scaled
// generalization of the 2-way child array in the critbit teacher
// package.
type mapEdges map[Unit]*node

func newMapEdges() edgeTable {
	return make(mapEdges)
}

func (e mapEdges) get(u Unit) *node     { return e[u] }
func (e mapEdges) set(u Unit, n *node)  { e[u] = n }
func (e mapEdges) delete(u Unit)        { delete(e, u) }
func (e mapEdges) len() int             { return len(e) }

func (e mapEdges) each(fn func(u Unit, n *node) bool) {
	for u, n := range e {
		if !fn(u, n) {
			return
		}
	}
}

// fanEdges backs the number domain's 16-way nibble branching with a
// popcount-indexed bitmap, grounded on the qptrie teacher package's
// bitmap fan-node (bits.OnesCount64 over a packed bitmap) and on the
// veb/set teacher package's use of github.com/hideo55/go-popcount for
// the same kind of rank query over a bitmap.
type fanEdges struct {
	bitmap   uint32
	children []*node
}

func newFanEdges() edgeTable {
	return &fanEdges{}
}

func (e *fanEdges) rank(u Unit) int {
	mask := uint32(1) << uint(u)
	return int(popcount.Count(uint64(e.bitmap & (mask - 1))))
}

func (e *fanEdges) get(u Unit) *node {
	mask := uint32(1) << uint(u)
	if e.bitmap&mask == 0 {
		return nil
	}
	return e.children[e.rank(u)]
}

func (e *fanEdges) set(u Unit, n *node) {
	mask := uint32(1) << uint(u)
	idx := e.rank(u)

	if e.bitmap&mask != 0 {
		e.children[idx] = n
		return
	}

	e.children = append(e.children, nil)
	copy(e.children[idx+1:], e.children[idx:])
	e.children[idx] = n
	e.bitmap |= mask
}

func (e *fanEdges) delete(u Unit) {
	mask := uint32(1) << uint(u)
	if e.bitmap&mask == 0 {
		return
	}

	idx := e.rank(u)
	e.children = append(e.children[:idx], e.children[idx+1:]...)
	e.bitmap &^= mask
}

func (e *fanEdges) len() int {
	return len(e.children)
}

func (e *fanEdges) each(fn func(u Unit, n *node) bool) {
	for u := Unit(0); u < numberUnits; u++ {
		mask := uint32(1) << uint(u)
		if e.bitmap&mask == 0 {
			continue
		}
		if !fn(u, e.children[e.rank(u)]) {
			return
		}
	}
}
