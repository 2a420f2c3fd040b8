package ptrie

import "fmt"

// Check crawls the whole tree and reports the first prefix or
// branching-shape invariant it finds violated (spec.md P4, P5, P6). It
// exists for tests and debugging, the way the teacher packages carry a
// DebugDump/debug_dump crawler rather than an in-band assertion.
func (t *Trie) Check() error {
	return checkNode(t.cfg, t.root, true)
}

func checkNode(cfg *trieConfig, nd *node, isRoot bool) error {
	if nd.isTerminal() {
		bin := nd.bin()
		if len(bin) > cfg.binSize {
			return fmt.Errorf("terminal node holds %d values, over binSize %d", len(bin), cfg.binSize)
		}
		if len(bin) == 0 {
			return nil
		}

		skip, err := commonPrefix(cfg, bin)
		if err == nil && (cfg.dom.unitLen(skip) != cfg.dom.unitLen(nd.skip) ||
			cfg.dom.match(skip, nd.skip) != cfg.dom.unitLen(skip)) {
			return fmt.Errorf("terminal skip is not the bin's common prefix")
		}
		return nil
	}

	edgeCount := nd.edges.len()
	hasInternal := nd.values != nil
	if !isRoot {
		total := edgeCount
		if hasInternal {
			total++
		}
		if total < 2 {
			return fmt.Errorf("branching node has fewer than two outgoing paths (edges=%d, internal=%v)", edgeCount, hasInternal)
		}
	}

	var outer error
	nd.edges.each(func(u Unit, child *node) bool {
		n := cfg.dom.match(child.skip, nd.skip)
		if n != cfg.dom.unitLen(nd.skip) {
			outer = fmt.Errorf("child under unit %v does not extend parent skip", u)
			return false
		}
		if cfg.dom.unitLen(child.skip) > cfg.dom.unitLen(nd.skip) {
			if got := cfg.dom.charAt(child.skip, cfg.dom.unitLen(nd.skip)); got != u {
				outer = fmt.Errorf("child stored under unit %v but its skip starts with %v", u, got)
				return false
			}
		}
		if err := checkNode(cfg, child, false); err != nil {
			outer = err
			return false
		}
		return true
	})
	return outer
}
