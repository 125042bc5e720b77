package value

// tableMaxLoad is the load factor past which the Table grows: resize is
// triggered once count+1 would exceed capacity*0.75.
const tableMaxLoad = 0.75

// Entry is one (key, value) slot of a Table, exposed read-only via Each for
// GC marking and weak-reference sweeping.
type Entry struct {
	Key   *String
	Value Value
}

// Table is an open-addressed hash table keyed by interned strings, using
// linear probing and tombstone deletion. An empty slot has a nil key and a
// nil value; a tombstone has a nil key and a boolean-true value, so that
// empty and deleted slots can be told apart without a separate flag. Count
// includes tombstones, which is what bounds the probe length via the load
// factor. Keys are compared by pointer identity, which is sound because
// every key that ever reaches a Table is an interned String.
type Table struct {
	count   int
	entries []Entry
}

// NewTable returns an empty Table. The zero value is also usable, but
// NewTable matches the reference implementation's table_init and reads more
// clearly at call sites that construct one inline.
func NewTable() *Table { return &Table{} }

// Count returns the number of live entries (tombstones are not counted
// here, even though they occupy a slot and count toward the load factor
// internally).
func (t *Table) Count() int {
	n := 0
	for _, e := range t.entries {
		if e.Key != nil {
			n++
		}
	}
	return n
}

// Get looks up key, returning its value and true if present.
func (t *Table) Get(key *String) (Value, bool) {
	if len(t.entries) == 0 {
		return Value{}, false
	}
	e := &t.entries[findEntry(t.entries, key)]
	if e.Key == nil {
		return Value{}, false
	}
	return e.Value, true
}

// Set inserts or overwrites the value for key, growing the table first if
// the load factor would be exceeded. It reports whether key was not already
// present: true when it lands in an empty slot or reuses a tombstone, false
// when it overwrites an existing entry for key.
func (t *Table) Set(key *String, val Value) bool {
	if float64(t.count+1) > float64(len(t.entries))*tableMaxLoad {
		t.adjustCapacity(growCapacity(len(t.entries)))
	}

	e := &t.entries[findEntry(t.entries, key)]
	isNewKey := e.Key == nil
	if isNewKey && e.Value.IsNil() {
		// only a genuinely empty slot grows the count; reusing a tombstone
		// does not, since tombstones are already counted.
		t.count++
	}
	e.Key = key
	e.Value = val
	return isNewKey
}

// Delete removes key, if present, by overwriting its slot with a tombstone.
// It reports whether key was present.
func (t *Table) Delete(key *String) bool {
	if t.count == 0 {
		return false
	}
	e := &t.entries[findEntry(t.entries, key)]
	if e.Key == nil {
		return false
	}
	e.Key = nil
	e.Value = Bool(true) // tombstone
	return true
}

// FindString is the interning lookup path: it finds an already-interned
// String with the given contents without requiring one to already exist as
// a *String (unlike Get, which needs a key pointer up front).
func (t *Table) FindString(chars string, hash uint32) *String {
	if t.count == 0 {
		return nil
	}
	mask := uint32(len(t.entries) - 1)
	idx := hash & mask
	for {
		e := &t.entries[idx]
		if e.Key == nil {
			if e.Value.IsNil() {
				return nil
			}
		} else if e.Key.Hash == hash && e.Key.Chars == chars {
			return e.Key
		}
		idx = (idx + 1) & mask
	}
}

// Each invokes fn for every live entry. Iteration order is unspecified.
func (t *Table) Each(fn func(Entry)) {
	for _, e := range t.entries {
		if e.Key != nil {
			fn(e)
		}
	}
}

// DeleteIf tombstones every live entry whose key matches pred, used by the
// garbage collector to drop weak references to strings that did not survive
// marking (see the Heap's string-interning table).
func (t *Table) DeleteIf(pred func(*String) bool) {
	for i := range t.entries {
		e := &t.entries[i]
		if e.Key != nil && pred(e.Key) {
			e.Key = nil
			e.Value = Bool(true)
		}
	}
}

func findEntry(entries []Entry, key *String) uint32 {
	mask := uint32(len(entries) - 1)
	idx := key.Hash & mask
	var tombstone int64 = -1
	for {
		e := &entries[idx]
		switch {
		case e.Key == nil:
			if e.Value.IsNil() {
				// empty slot: stop, reusing any tombstone seen along the way
				if tombstone != -1 {
					return uint32(tombstone)
				}
				return idx
			}
			if tombstone == -1 {
				tombstone = int64(idx)
			}
		case e.Key == key:
			return idx
		}
		idx = (idx + 1) & mask
	}
}

func (t *Table) adjustCapacity(newCap int) {
	newEntries := make([]Entry, newCap)
	t.count = 0
	for _, e := range t.entries {
		if e.Key == nil {
			continue
		}
		dst := &newEntries[findEntry(newEntries, e.Key)]
		dst.Key = e.Key
		dst.Value = e.Value
		t.count++
	}
	t.entries = newEntries
}

func growCapacity(old int) int {
	if old < 8 {
		return 8
	}
	return old * 2
}
