package ptrie

// Key is the internal representation of a lookup key for a given domain:
// a string for the string domain, a numKey for the number domain.
type Key any

// Unit is the atomic dispatch symbol carried by a Key - a byte for the
// string domain, a nibble (0-15) for the number domain.
type Unit byte

// domain is the single capability abstraction a Trie is built on, in
// place of the dynamically-bound per-call function options a scripting
// language would reach for. One instance is resolved at New and reused
// for the trie's whole lifetime.
type domain interface {
	// createKey lifts a raw user-supplied lookup key into a Key.
	createKey(raw any) (Key, error)
	// getKey extracts the Key from a stored value (or a MultiValue's
	// cached key).
	getKey(value any) (Key, error)
	// setKey records key on value (or a MultiValue), returning the
	// (possibly new) carrier. Only ever invoked on a *multiValue or on
	// an attribute-mode value.
	setKey(value any, key Key) any
	// match returns the length, in units, of the longest common prefix
	// of a and b.
	match(a, b Key) int
	// prefixOf returns the first n units of key.
	prefixOf(key Key, n int) Key
	// concat appends b after a, unit-wise.
	concat(a, b Key) Key
	// unitLen returns the unit-length of key.
	unitLen(key Key) int
	// charAt returns the unit at position i of key.
	charAt(key Key, i int) Unit
	// emptyPrefix is the Key of zero units.
	emptyPrefix() Key
	// comparator orders two values by their key: negative, zero or
	// positive.
	comparator(a, b any) (int, error)
	// newEdges returns an empty edge table shaped for this domain's
	// unit alphabet.
	newEdges() edgeTable
}

// compareKeys is the total order shared by every domain: the longest
// common prefix decides ties, then the first diverging unit, then which
// key ran out first (a strict prefix of the other sorts first).
func compareKeys(d domain, a, b Key) int {
	n := d.match(a, b)
	la, lb := d.unitLen(a), d.unitLen(b)

	switch {
	case n == la && n == lb:
		return 0
	case n == la:
		return -1
	case n == lb:
		return 1
	}

	ca, cb := d.charAt(a, n), d.charAt(b, n)
	switch {
	case ca < cb:
		return -1
	case ca > cb:
		return 1
	default:
		return 0
	}
}
