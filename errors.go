package ptrie

import "errors"

// Programmer-error sentinels. Unknown domain names, key/domain mismatches,
// and values that carry no extractable key are not recoverable conditions:
// New and Add return them as errors. Get and Delete return no error; a
// lookup key of the wrong domain is reported there as a miss (nil, false).
var (
	ErrUnknownDomain     = errors.New("ptrie: unknown key domain")
	ErrKeyDomainMismatch = errors.New("ptrie: key does not match the trie's domain")
	ErrNoKey             = errors.New("ptrie: value carries no key")
	ErrInvalidOption     = errors.New("ptrie: invalid option")
)
