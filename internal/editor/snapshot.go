// Package editor holds the in-memory edit state used by the admin panel:
// a baseline/working snapshot with field-level diffs, the sparse
// question-to-subtopic assignment map and textbook draft helpers.
package editor

// Snapshot pairs a deep-copied baseline with a working copy of the same
// records. It is a plain value type; nothing here touches a store.
type Snapshot[K comparable, V any] struct {
	keys     []K
	baseline map[K]V
	working  map[K]V
	key      func(V) K
	equal    func(a, b V) bool
	clone    func(V) V
}

// NewSnapshot copies records into both the baseline and the working set.
func NewSnapshot[K comparable, V any](records []V, key func(V) K, equal func(a, b V) bool, clone func(V) V) *Snapshot[K, V] {
	s := &Snapshot[K, V]{
		baseline: make(map[K]V, len(records)),
		working:  make(map[K]V, len(records)),
		key:      key,
		equal:    equal,
		clone:    clone,
	}
	for _, r := range records {
		k := key(r)
		if _, dup := s.baseline[k]; !dup {
			s.keys = append(s.keys, k)
		}
		s.baseline[k] = clone(r)
		s.working[k] = clone(r)
	}
	return s
}

// Get returns a copy of the working record.
func (s *Snapshot[K, V]) Get(k K) (V, bool) {
	v, ok := s.working[k]
	if !ok {
		return v, false
	}
	return s.clone(v), true
}

// Baseline returns a copy of the baseline record.
func (s *Snapshot[K, V]) Baseline(k K) (V, bool) {
	v, ok := s.baseline[k]
	if !ok {
		return v, false
	}
	return s.clone(v), true
}

// Records returns copies of the working records in load order.
func (s *Snapshot[K, V]) Records() []V {
	out := make([]V, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.clone(s.working[k]))
	}
	return out
}

// Set replaces the working copy of a loaded record. It reports false for
// records that were not part of the baseline.
func (s *Snapshot[K, V]) Set(v V) bool {
	k := s.key(v)
	if _, ok := s.baseline[k]; !ok {
		return false
	}
	s.working[k] = s.clone(v)
	return true
}

// Undo resets one record to its baseline value.
func (s *Snapshot[K, V]) Undo(k K) {
	if b, ok := s.baseline[k]; ok {
		s.working[k] = s.clone(b)
	}
}

// Dirty reports whether any working record differs from its baseline.
func (s *Snapshot[K, V]) Dirty() bool {
	for _, k := range s.keys {
		if !s.equal(s.baseline[k], s.working[k]) {
			return true
		}
	}
	return false
}

// Change is one record whose working copy differs from the baseline.
type Change[V any] struct {
	Before V
	After  V
}

// Changed lists the differing records in load order.
func (s *Snapshot[K, V]) Changed() []Change[V] {
	var out []Change[V]
	for _, k := range s.keys {
		b, w := s.baseline[k], s.working[k]
		if !s.equal(b, w) {
			out = append(out, Change[V]{Before: s.clone(b), After: s.clone(w)})
		}
	}
	return out
}

// Commit makes the working state the new baseline.
func (s *Snapshot[K, V]) Commit() {
	for _, k := range s.keys {
		s.baseline[k] = s.clone(s.working[k])
	}
}

// Len is the number of loaded records.
func (s *Snapshot[K, V]) Len() int {
	return len(s.keys)
}
