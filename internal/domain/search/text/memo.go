package text

import "sync"

// DefaultMemoSize bounds the per-service normalization memo.
const DefaultMemoSize = 4096

// Memo caches Fold/Compact/Tokenize results keyed by the original string.
// Normalization is pure, so a hit is indistinguishable from recomputing;
// correctness never depends on the cache. The memo is an explicit injectable
// object rather than package-global state, so tests stay isolated.
//
// Eviction is a full reset at capacity: entries are tiny and queries repeat
// heavily within a session, so the occasional cold restart is cheaper than
// LRU bookkeeping.
type Memo struct {
	mu       sync.Mutex
	max      int
	compact  map[string]string
	folded   map[string]string
	tokens   map[string][]string
}

// NewMemo creates a bounded normalization memo. size <= 0 uses DefaultMemoSize.
func NewMemo(size int) *Memo {
	if size <= 0 {
		size = DefaultMemoSize
	}
	return &Memo{
		max:     size,
		compact: make(map[string]string),
		folded:  make(map[string]string),
		tokens:  make(map[string][]string),
	}
}

// Fold returns the memoized folded form of s.
func (m *Memo) Fold(s string) string {
	m.mu.Lock()
	if v, ok := m.folded[s]; ok {
		m.mu.Unlock()
		return v
	}
	m.mu.Unlock()

	v := Fold(s)

	m.mu.Lock()
	if len(m.folded) >= m.max {
		m.folded = make(map[string]string)
	}
	m.folded[s] = v
	m.mu.Unlock()
	return v
}

// Compact returns the memoized compact form of s.
func (m *Memo) Compact(s string) string {
	m.mu.Lock()
	if v, ok := m.compact[s]; ok {
		m.mu.Unlock()
		return v
	}
	m.mu.Unlock()

	v := Compact(s)

	m.mu.Lock()
	if len(m.compact) >= m.max {
		m.compact = make(map[string]string)
	}
	m.compact[s] = v
	m.mu.Unlock()
	return v
}

// Tokenize returns the memoized token sequence of s.
// Callers must not mutate the returned slice.
func (m *Memo) Tokenize(s string) []string {
	m.mu.Lock()
	if v, ok := m.tokens[s]; ok {
		m.mu.Unlock()
		return v
	}
	m.mu.Unlock()

	v := Tokenize(s)

	m.mu.Lock()
	if len(m.tokens) >= m.max {
		m.tokens = make(map[string][]string)
	}
	m.tokens[s] = v
	m.mu.Unlock()
	return v
}
