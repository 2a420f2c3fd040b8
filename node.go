package ptrie

import "sort"

// node is the recursive structure the trie is built from. In a terminal
// node (edges == nil) values holds the bin, an unsorted-or-sorted []any;
// dirty says whether it's currently known to be sorted and deduped. In a
// branching node, values holds the optional internal value (the value
// whose key ends exactly at this node), possibly a *multiValue.
type node struct {
	skip   Key
	edges  edgeTable
	values any
	dirty  bool
}

func (nd *node) isTerminal() bool {
	return nd.edges == nil
}

func (nd *node) bin() []any {
	bin, _ := nd.values.([]any)
	return bin
}

// add inserts value, whose key is key, into the subtree rooted at nd.
func (nd *node) add(cfg *trieConfig, value any, key Key) {
	if nd.isTerminal() {
		nd.insertBin(cfg, value, key)
		nd.explode(cfg)
		return
	}

	n := cfg.dom.match(key, nd.skip)
	skipLen := cfg.dom.unitLen(nd.skip)

	if n < skipLen {
		nd.split(cfg, n)
		nd.add(cfg, value, key)
		return
	}

	if n == cfg.dom.unitLen(key) {
		nd.values = assign(cfg, value, nd.values)
		return
	}

	u := cfg.dom.charAt(key, skipLen)
	if child := nd.edges.get(u); child != nil {
		child.add(cfg, value, key)
		return
	}
	nd.edges.set(u, &node{skip: key, values: []any{value}})
}

// insertBin appends value to a terminal bin, taking key as skip when the
// bin was empty and otherwise shrinking skip to the common prefix if the
// new key diverges earlier than the current skip, and marking the bin
// dirty when the append breaks sorted order.
func (nd *node) insertBin(cfg *trieConfig, value any, key Key) {
	bin := nd.bin()

	if len(bin) == 0 {
		nd.skip = key
	} else if n := cfg.dom.match(key, nd.skip); n < cfg.dom.unitLen(nd.skip) {
		nd.skip = cfg.dom.prefixOf(nd.skip, n)
	}

	if len(bin) > 0 {
		if cmp, err := cfg.dom.comparator(value, bin[len(bin)-1]); err == nil && cmp <= 0 {
			nd.dirty = true
		}
	}

	nd.values = append(bin, value)
}

// split rewrites a branching node whose skip only partially matches an
// incoming key: the node's former contents move into a new child, and
// this node's skip shrinks to the shared prefix.
func (nd *node) split(cfg *trieConfig, n int) {
	child := &node{
		skip:   nd.skip,
		edges:  nd.edges,
		values: nd.values,
		dirty:  nd.dirty,
	}

	u := cfg.dom.charAt(nd.skip, n)

	nd.skip = cfg.dom.prefixOf(nd.skip, n)
	nd.edges = cfg.dom.newEdges()
	nd.values = nil
	nd.dirty = false
	nd.edges.set(u, child)
}

// explode turns an overfull terminal node into a branching node. A
// no-op below binSize, and idempotent: calling it again right after it
// ran (or on an already-branching node) does nothing.
func (nd *node) explode(cfg *trieConfig) {
	if !nd.isTerminal() {
		return
	}

	bin := nd.bin()
	if len(bin) <= cfg.binSize {
		return
	}

	bin = nd.sortValues(cfg)
	if len(bin) <= cfg.binSize {
		return
	}

	skip, err := commonPrefix(cfg, bin)
	if err != nil {
		return
	}
	nd.skip = skip
	skipLen := cfg.dom.unitLen(skip)

	start := 0
	if k0, err := cfg.dom.getKey(bin[0]); err == nil && cfg.dom.unitLen(k0) == skipLen {
		nd.values = bin[0]
		start = 1
	} else {
		nd.values = nil
	}

	edges := cfg.dom.newEdges()
	for i := start; i < len(bin); {
		ki, _ := cfg.dom.getKey(bin[i])
		u := cfg.dom.charAt(ki, skipLen)

		j := i + 1
		for j < len(bin) {
			kj, _ := cfg.dom.getKey(bin[j])
			if cfg.dom.charAt(kj, skipLen) != u {
				break
			}
			j++
		}

		child := buildTerminal(cfg, bin[i:j])
		child.explode(cfg) // a group can itself be overfull
		edges.set(u, child)
		i = j
	}
	nd.edges = edges
}

func buildTerminal(cfg *trieConfig, group []any) *node {
	skip, err := commonPrefix(cfg, group)
	if err != nil {
		skip = cfg.dom.emptyPrefix()
	}
	values := make([]any, len(group))
	copy(values, group)
	return &node{skip: skip, values: values}
}

func commonPrefix(cfg *trieConfig, values []any) (Key, error) {
	if len(values) == 0 {
		return cfg.dom.emptyPrefix(), nil
	}

	skip, err := cfg.dom.getKey(values[0])
	if err != nil {
		return nil, err
	}
	for _, v := range values[1:] {
		k, err := cfg.dom.getKey(v)
		if err != nil {
			return nil, err
		}
		if n := cfg.dom.match(k, skip); n < cfg.dom.unitLen(skip) {
			skip = cfg.dom.prefixOf(skip, n)
		}
	}
	return skip, nil
}

// sortValues sorts and dedups a dirty bin, folding equal-keyed entries
// together via assign. A no-op when the bin is already clean.
func (nd *node) sortValues(cfg *trieConfig) []any {
	bin := nd.bin()
	if !nd.dirty {
		return bin
	}

	sort.SliceStable(bin, func(i, j int) bool {
		cmp, err := cfg.dom.comparator(bin[i], bin[j])
		return err == nil && cmp < 0
	})

	bin = dedupValues(cfg, bin)
	nd.dirty = false
	nd.values = bin
	return bin
}

func dedupValues(cfg *trieConfig, bin []any) []any {
	if len(bin) < 2 {
		return bin
	}

	out := bin[:1]
	for _, v := range bin[1:] {
		last := out[len(out)-1]
		if cmp, err := cfg.dom.comparator(v, last); err == nil && cmp == 0 {
			out[len(out)-1] = assign(cfg, v, last)
		} else {
			out = append(out, v)
		}
	}
	return out
}

func searchBin(cfg *trieConfig, bin []any, key Key) int {
	lo, hi := 0, len(bin)
	for lo < hi {
		mid := (lo + hi) / 2

		kmid, err := cfg.dom.getKey(bin[mid])
		if err != nil {
			return -1
		}

		switch c := compareKeys(cfg.dom, kmid, key); {
		case c < 0:
			lo = mid + 1
		case c > 0:
			hi = mid
		default:
			return mid
		}
	}
	return -1
}

// findOutcome distinguishes the three shapes a lookup can land on.
type findOutcome int

const (
	missOutcome findOutcome = iota
	hitTerminalOutcome
	hitInternalOutcome
)

// find walks from nd towards key, reporting where the search bottomed
// out. hitTerminalOutcome still requires a bin search by the caller;
// hitInternalOutcome's node.values is the answer as-is.
func (nd *node) find(cfg *trieConfig, key Key) (*node, findOutcome) {
	n := cfg.dom.match(key, nd.skip)
	if n != cfg.dom.unitLen(nd.skip) {
		return nil, missOutcome
	}

	if nd.isTerminal() {
		return nd, hitTerminalOutcome
	}

	if n == cfg.dom.unitLen(key) {
		return nd, hitInternalOutcome
	}

	child := nd.edges.get(cfg.dom.charAt(key, n))
	if child == nil {
		return nil, missOutcome
	}
	return child.find(cfg, key)
}

// delete removes the value(s) matching key (and, if filter is set,
// matching filter) from the subtree rooted at nd. Returns the removed
// portion, or nil if nothing matched.
func (nd *node) delete(cfg *trieConfig, key Key, filter Filter) any {
	n := cfg.dom.match(key, nd.skip)
	if n != cfg.dom.unitLen(nd.skip) {
		return nil
	}

	if nd.isTerminal() {
		bin := nd.sortValues(cfg)
		idx := searchBin(cfg, bin, key)
		if idx < 0 {
			return nil
		}

		keep, removed := splitValue(bin[idx], filter)
		if keep == nil {
			bin = append(bin[:idx], bin[idx+1:]...)
			if len(bin) > 0 {
				if skip, err := commonPrefix(cfg, bin); err == nil {
					nd.skip = skip
				}
			}
		} else {
			bin[idx] = keep
		}
		nd.values = bin
		return removed
	}

	if n == cfg.dom.unitLen(key) {
		if nd.values == nil {
			return nil
		}
		keep, removed := splitValue(nd.values, filter)
		nd.values = keep
		return removed
	}

	u := cfg.dom.charAt(key, n)
	child := nd.edges.get(u)
	if child == nil {
		return nil
	}

	removed := child.delete(cfg, key, filter)
	if removed != nil {
		nd.compact(cfg, u, child)
	}
	return removed
}

// splitValue partitions value into what stays (keep) and what is
// removed, per filter semantics: a value for which filter returns true
// is removed; a nil filter removes everything matched.
func splitValue(value any, filter Filter) (keep, removed any) {
	mv, ok := value.(*multiValue)
	if !ok {
		if filter == nil || filter(value) {
			return nil, value
		}
		return value, nil
	}

	var kept, gone []any
	for _, v := range mv.values {
		if filter == nil || filter(v) {
			gone = append(gone, v)
		} else {
			kept = append(kept, v)
		}
	}
	if len(gone) == 0 {
		return value, nil
	}

	switch len(kept) {
	case 0:
		keep = nil
	case 1:
		keep = kept[0]
	default:
		mv.values = kept
		keep = mv
	}

	if len(gone) == 1 {
		removed = gone[0]
	} else {
		removed = &multiValue{values: gone, key: mv.key}
	}
	return keep, removed
}

// compact restores invariant I5 after child lost a value to deletion: an
// emptied terminal child is unlinked, a childless-and-valueless parent
// becomes a fresh empty terminal, and a parent left with exactly one
// edge and no internal value is spliced out in favor of that child.
//
// skip is always the absolute prefix from the root, not a delta relative
// to the parent, so the single-edge splice adopts the child's skip
// verbatim (parent.skip = child.skip); concatenating the parent's own
// skip on top would double-count it and break invariant I2.
func (nd *node) compact(cfg *trieConfig, u Unit, child *node) {
	if child.isTerminal() {
		if len(child.bin()) == 0 {
			nd.edges.delete(u)
		}
	} else if child.edges.len() == 0 && child.values == nil {
		nd.edges.delete(u)
	}

	switch nd.edges.len() {
	case 0:
		if nd.values == nil {
			nd.edges = nil
			nd.values = []any{}
			nd.dirty = false
		}

	case 1:
		if nd.values == nil {
			var sole *node
			nd.edges.each(func(_ Unit, n *node) bool {
				sole = n
				return false
			})

			nd.skip = sole.skip
			nd.edges = sole.edges
			nd.values = sole.values
			nd.dirty = sole.dirty
		}
	}
}
