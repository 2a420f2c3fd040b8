// Package ptrie implements a compressed prefix tree (radix / PATRICIA
// trie) mapping keys from a pluggable key domain to user-supplied values.
//
// A trie is a tree of nodes in one of two shapes:
//
//   - terminal: holds a bin of values and no outgoing edges. Inserts are
//     appended to the bin and sorted lazily; the bin explodes into a
//     branching node once it outgrows binSize.
//   - branching: holds a sparse "key unit -> child" edge table and,
//     optionally, a single internal value whose key ends exactly at
//     that node.
//
// Two key domains ship: "string" (keys are byte sequences, dispatched
// one byte at a time) and "number" (keys are fixed-width 64-bit words,
// dispatched one nibble at a time, most significant first). Callers may
// also ask for values to carry their key under a named struct field
// (the attr option) instead of being their own key.
//
// Example trie (string domain, binSize 4) after adding "romane",
// "romanus", "romulus", "rubens", "ruber", "rubicon" and "rubicundus" in
// that order. Every skip is the full prefix from the root:
//
//	                   ,-'o'- [term: skip="rom": "romane","romanus","romulus"]
//	[branch:skip="r"] -+
//	                   `-'u'- [term: skip="rub": "rubens","ruber","rubicon","rubicundus"]
//
// Add, Get and Delete are the only operations on stored values, next to
// the Len, Empty, String and Check helpers; there is no ordered traversal, no range query, no persistence and no
// concurrency support - see the module's design notes for the rationale.
package ptrie
