package ptrie

import "fmt"

// Filter selects a subset of values out of a duplicate-key bucket (or
// restricts a single match). A nil Filter matches everything.
type Filter func(value any) bool

// trieConfig is the resolved, immutable configuration a Trie and every
// node operation is threaded through.
type trieConfig struct {
	kind       string
	attr       string
	uniqueKeys bool
	binSize    int
	dom        domain
}

// Option configures a Trie at construction time.
type Option func(*trieConfig) error

// WithType selects the key domain: "string" (default) or "number".
func WithType(kind string) Option {
	return func(cfg *trieConfig) error {
		switch kind {
		case "", "string", "number":
			if kind == "" {
				kind = "string"
			}
			cfg.kind = kind
			return nil
		default:
			return fmt.Errorf("%w: %q", ErrUnknownDomain, kind)
		}
	}
}

// WithAttr stores/reads the key under the named struct field of each
// value instead of assuming values are their own keys.
func WithAttr(attr string) Option {
	return func(cfg *trieConfig) error {
		cfg.attr = attr
		return nil
	}
}

// WithUniqueKeys controls whether duplicate keys are rejected in favor
// of overwrite (true, the default) or preserved via MultiValue (false).
func WithUniqueKeys(unique bool) Option {
	return func(cfg *trieConfig) error {
		cfg.uniqueKeys = unique
		return nil
	}
}

// WithBinSize sets the terminal-bin explosion threshold (default 256).
func WithBinSize(n int) Option {
	return func(cfg *trieConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: binSize must be positive, got %d", ErrInvalidOption, n)
		}
		cfg.binSize = n
		return nil
	}
}

// Trie is the facade: it owns the root node and the resolved key-domain
// functions, and exposes Add, Get and Delete.
type Trie struct {
	cfg  *trieConfig
	root *node
}

// New builds an empty Trie. Unknown option values are reported as an
// error rather than silently ignored, per the "programmer error" policy
// for domain misconfiguration.
func New(opts ...Option) (*Trie, error) {
	cfg := &trieConfig{kind: "string", uniqueKeys: true, binSize: 256}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	var base domain
	switch cfg.kind {
	case "string":
		base = stringDomain{}
	case "number":
		base = numberDomain{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, cfg.kind)
	}

	if cfg.attr != "" {
		cfg.dom = attrDomain{base: base, attr: cfg.attr}
	} else {
		cfg.dom = base
	}

	return &Trie{
		cfg:  cfg,
		root: &node{skip: cfg.dom.emptyPrefix(), values: []any{}},
	}, nil
}

// MustNew is like New but panics on a configuration error, for use in
// package-level variable initializers.
func MustNew(opts ...Option) *Trie {
	t, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Add inserts value into the trie. getKey(value) must succeed; failure
// (a value with no extractable key, or one belonging to a different
// domain) is reported as an error, never silently dropped.
func (t *Trie) Add(value any) error {
	key, err := t.cfg.dom.getKey(value)
	if err != nil {
		return err
	}
	t.root.add(t.cfg, value, key)
	return nil
}

// Get looks up rawKey, optionally narrowed by filter. Reports absent as
// (nil, false); never returns an error for a plain miss. Under
// duplicate keys the result may be a []any of every value that both
// shares the key and passes filter.
func (t *Trie) Get(rawKey any, filter ...Filter) (any, bool) {
	key, err := t.cfg.dom.createKey(rawKey)
	if err != nil {
		return nil, false
	}

	nd, outcome := t.root.find(t.cfg, key)
	switch outcome {
	case hitInternalOutcome:
		return postProcess(nd.values, firstFilter(filter))

	case hitTerminalOutcome:
		bin := nd.sortValues(t.cfg)
		idx := searchBin(t.cfg, bin, key)
		if idx < 0 {
			return nil, false
		}
		return postProcess(bin[idx], firstFilter(filter))

	default:
		return nil, false
	}
}

// Delete removes value(s) matching rawKey (and, if filter is set, the
// filter) and returns what was removed, in the same shape as Get. When
// the trie becomes empty, the root's skip resets to the domain's empty
// prefix.
func (t *Trie) Delete(rawKey any, filter ...Filter) (any, bool) {
	key, err := t.cfg.dom.createKey(rawKey)
	if err != nil {
		return nil, false
	}

	removed := t.root.delete(t.cfg, key, firstFilter(filter))
	if removed == nil {
		return nil, false
	}

	t.resetIfEmpty()
	return unwrapRemoved(removed)
}

// Len reports the number of stored values, expanding MultiValue buckets.
func (t *Trie) Len() int {
	return countNode(t.cfg, t.root)
}

// Empty reports whether the trie holds no values.
func (t *Trie) Empty() bool {
	return t.root.isTerminal() && len(t.root.bin()) == 0
}

func (t *Trie) String() string {
	return fmt.Sprintf("Trie{type=%s, len=%d}", t.cfg.kind, t.Len())
}

func (t *Trie) resetIfEmpty() {
	if t.root.isTerminal() && len(t.root.bin()) == 0 {
		t.root.skip = t.cfg.dom.emptyPrefix()
		t.root.dirty = false
	}
}

func countNode(cfg *trieConfig, nd *node) int {
	if nd.isTerminal() {
		n := 0
		// a dirty bin may still hold not-yet-folded duplicate keys
		for _, v := range nd.sortValues(cfg) {
			n += countValues(v)
		}
		return n
	}

	n := countValues(nd.values)
	nd.edges.each(func(_ Unit, child *node) bool {
		n += countNode(cfg, child)
		return true
	})
	return n
}

func firstFilter(filters []Filter) Filter {
	if len(filters) == 0 {
		return nil
	}
	return filters[0]
}

// postProcess implements Get's result shaping: a MultiValue is unwrapped
// to its underlying values (filtered, if a filter was given); a single
// value is returned only if it passes the filter.
func postProcess(value any, filter Filter) (any, bool) {
	if value == nil {
		return nil, false
	}

	mv, ok := value.(*multiValue)
	if !ok {
		if filter == nil || filter(value) {
			return value, true
		}
		return nil, false
	}

	if filter == nil {
		return append([]any(nil), mv.values...), true
	}

	var out []any
	for _, v := range mv.values {
		if filter(v) {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// unwrapRemoved shapes a delete result: a removed MultiValue bucket
// becomes a []any, a singleton value is returned as-is.
func unwrapRemoved(value any) (any, bool) {
	if mv, ok := value.(*multiValue); ok {
		return append([]any(nil), mv.values...), true
	}
	return value, true
}
