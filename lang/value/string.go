package value

// String is an immutable, interned byte string. No two live Strings with
// equal contents exist simultaneously (see Table.FindString and the Heap's
// interning path), so string equality collapses into pointer equality.
type String struct {
	header
	Chars string
	Hash  uint32
}

// NewString constructs a String with its FNV-1a hash precomputed. It does
// not intern the result; callers that need interning go through the Heap.
func NewString(chars string) *String {
	s := &String{Chars: chars, Hash: HashString(chars)}
	s.kind = ObjStringKind
	return s
}

func (s *String) String() string { return s.Chars }

// HashString computes the 32-bit FNV-1a hash of s, the hash used throughout
// the Table and the intern set.
func HashString(s string) uint32 {
	var hash uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		hash ^= uint32(s[i])
		hash *= 16777619
	}
	return hash
}
