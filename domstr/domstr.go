// Package domstr implements DOMString: an immutable text value that is
// independently reference-counted from the node that holds it, as described
// in the core's data model (a DOMString may or may not also be interned).
package domstr

import "sync/atomic"

// String is an immutable UTF-8 text value with its own refcount, separate
// from whatever node(s) hold a reference to it. Go's garbage collector
// reclaims the backing array regardless; Ref/Unref exist to satisfy the
// embedding API's lifetime contract (node_ref/node_unref has a string-value
// analog) and to let callers detect use-after-unref bugs during
// development, not to drive memory reclamation.
type String struct {
	data []byte
	refs int32
}

// New creates a String wrapping s with a refcount of one.
func New(s string) *String {
	return &String{data: []byte(s), refs: 1}
}

// Ref increments the refcount and returns the receiver, so callers can
// write `held := domstr.New("x").Ref()`-style chains when a second owner
// is registered at construction time.
func (s *String) Ref() *String {
	atomic.AddInt32(&s.refs, 1)
	return s
}

// Unref decrements the refcount. It panics if the refcount would drop below
// zero, which indicates a double-unref bug in the caller; a *String whose
// count reaches zero is not freed (Go's GC owns that decision) but further
// Unref calls on it are a programming error.
func (s *String) Unref() {
	if atomic.AddInt32(&s.refs, -1) < 0 {
		panic("domstr: Unref of String with zero refcount")
	}
}

// RefCount returns the current refcount, for diagnostics and tests.
func (s *String) RefCount() int32 {
	return atomic.LoadInt32(&s.refs)
}

// String returns the text value.
func (s *String) String() string {
	if s == nil {
		return ""
	}
	return string(s.data)
}

// Len returns the length in bytes.
func (s *String) Len() int {
	if s == nil {
		return 0
	}
	return len(s.data)
}

// Equal compares text content, not identity.
func (s *String) Equal(o *String) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	return string(s.data) == string(o.data)
}
