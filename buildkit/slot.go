package buildkit

// Slot stages a single field value.
//
// The zero Slot is empty. Set populates it; a later Set replaces the value.
// There is no way to empty a populated Slot again.
type Slot[T any] struct {
	value T
	set   bool
}

// Set stores v, replacing any previous value.
func (s *Slot[T]) Set(v T) {
	s.value = v
	s.set = true
}

// Get returns the staged value and whether the slot is populated.
func (s Slot[T]) Get() (T, bool) { return s.value, s.set }

// IsSet reports whether Set was called at least once.
func (s Slot[T]) IsSet() bool { return s.set }

// Value returns the staged value, or the zero T if the slot is empty.
//
// Reading does not consume the value: repeated calls return the same result.
func (s Slot[T]) Value() T { return s.value }
