package ptrie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(binSize int) *trieConfig {
	return &trieConfig{dom: stringDomain{}, uniqueKeys: true, binSize: binSize}
}

func TestNode_AddWithinBinSize_StaysTerminal(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(8)
	root := &node{skip: cfg.dom.emptyPrefix(), values: []any{}}

	root.add(cfg, "abc", "abc")
	root.add(cfg, "abd", "abd")

	assert.True(t, root.isTerminal())
	assert.ElementsMatch(t, []any{"abc", "abd"}, root.bin())
	assert.Equal(t, "ab", root.skip)
}

func TestNode_SplitOnInsert(t *testing.T) {
	// spec.md §8 scenario 4
	t.Parallel()

	cfg := newTestConfig(1)
	root := &node{skip: "abcdef", values: []any{"abcdef"}}

	root.add(cfg, "abcxyz", "abcxyz")

	require.False(t, root.isTerminal())
	assert.Equal(t, "abc", root.skip)

	d := root.edges.get('d')
	x := root.edges.get('x')
	require.NotNil(t, d)
	require.NotNil(t, x)
	assert.Equal(t, []any{"abcdef"}, d.bin())
	assert.Equal(t, []any{"abcxyz"}, x.bin())
}

func TestNode_Explode(t *testing.T) {
	// spec.md §8 scenario 1
	t.Parallel()

	cfg := newTestConfig(2)
	root := &node{skip: cfg.dom.emptyPrefix(), values: []any{}}

	for _, k := range []string{
		"romane", "romanus", "romulus", "rubens", "ruber", "rubicon", "rubicundus",
	} {
		root.add(cfg, k, k)
	}

	require.NoError(t, checkNode(cfg, root, true))
	require.False(t, root.isTerminal())
	assert.Equal(t, "r", root.skip)

	o := root.edges.get('o')
	u := root.edges.get('u')
	require.NotNil(t, o)
	require.NotNil(t, u)

	nd, outcome := o.find(cfg, "romulus")
	require.Equal(t, hitTerminalOutcome, outcome)
	assert.Contains(t, nd.bin(), "romulus")

	nd, outcome = u.find(cfg, "rubicon")
	require.Equal(t, hitTerminalOutcome, outcome)
	assert.Contains(t, nd.bin(), "rubicon")
}

func TestNode_ExplodeIsIdempotent(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(2)
	root := &node{skip: cfg.dom.emptyPrefix(), values: []any{"a", "b", "c"}}

	root.explode(cfg)
	require.False(t, root.isTerminal())
	before := root.edges

	root.explode(cfg) // no-op: not terminal anymore
	assert.Equal(t, before, root.edges)
	assert.False(t, root.isTerminal())
}

func TestNode_FindMiss(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(256)
	root := &node{skip: cfg.dom.emptyPrefix(), values: []any{}}
	root.add(cfg, "abc", "abc")

	_, outcome := root.find(cfg, "xyz")
	assert.Equal(t, missOutcome, outcome)

	_, outcome = root.find(cfg, "ab")
	assert.Equal(t, missOutcome, outcome)
}

func TestNode_DeleteAndCompact(t *testing.T) {
	// spec.md §8 scenario 5
	t.Parallel()

	cfg := newTestConfig(1)
	root := &node{skip: "", edges: cfg.dom.newEdges()}
	root.edges.set('a', &node{skip: "a", values: []any{"a"}})
	root.edges.set('b', &node{skip: "b", values: []any{"b"}})

	removed := root.delete(cfg, "b", nil)
	require.Equal(t, "b", removed)

	assert.True(t, root.isTerminal())
	assert.Equal(t, []any{"a"}, root.bin())
	assert.Equal(t, "a", root.skip)
}

// TestNode_CompactSpliceUsesAbsoluteSkip guards against regressing to a
// parent-relative-delta splice: skip is always the absolute prefix from
// the root, so a single-edge collapse must adopt the child's skip
// verbatim rather than concatenating the parent's own (already-absolute)
// skip on top of it. A second, unrelated branch ('q') keeps the root
// itself from also collapsing, so the splice under test stays visible.
func TestNode_CompactSpliceUsesAbsoluteSkip(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(1)
	root := &node{skip: "", edges: cfg.dom.newEdges()}

	branchP := &node{skip: "p", edges: cfg.dom.newEdges()}
	branchP.edges.set('a', &node{skip: "pa", values: []any{"pa"}})
	branchP.edges.set('b', &node{skip: "pb", values: []any{"pb"}})
	root.edges.set('p', branchP)
	root.edges.set('q', &node{skip: "q", values: []any{"q"}})

	removed := root.delete(cfg, "pb", nil)
	require.Equal(t, "pb", removed)

	p := root.edges.get('p')
	require.NotNil(t, p)
	assert.True(t, p.isTerminal())
	assert.Equal(t, "pa", p.skip)
	assert.Equal(t, []any{"pa"}, p.bin())

	nd, outcome := root.find(cfg, "pa")
	require.Equal(t, hitTerminalOutcome, outcome)
	assert.Contains(t, nd.bin(), "pa")
}

func TestSplitValue_Singleton(t *testing.T) {
	t.Parallel()

	keep, removed := splitValue("x", nil)
	assert.Nil(t, keep)
	assert.Equal(t, "x", removed)

	always := func(any) bool { return true }
	keep, removed = splitValue("x", always)
	assert.Nil(t, keep)
	assert.Equal(t, "x", removed)

	never := func(any) bool { return false }
	keep, removed = splitValue("x", never)
	assert.Equal(t, "x", keep)
	assert.Nil(t, removed)
}

func TestSplitValue_MultiValuePartition(t *testing.T) {
	t.Parallel()

	mv := &multiValue{values: []any{1, 2, 3}, key: "k"}

	isTwo := func(v any) bool { return v.(int) == 2 }
	keep, removed := splitValue(mv, isTwo)

	assert.Equal(t, 2, removed)
	keptMV, ok := keep.(*multiValue)
	require.True(t, ok)
	assert.Equal(t, []any{1, 3}, keptMV.values)
}
