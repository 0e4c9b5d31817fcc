// Package intern provides identity-comparable handles for byte-sequence
// names, the "interned name" leaf described in the core's data model: equal
// byte sequences share a handle, and handles compare by pointer identity
// rather than by string content.
package intern

import (
	"golang.org/x/net/html/atom"
)

// Name is a handle for an interned byte sequence. Two Names compare equal
// iff they were produced by the same Interner for the same bytes. Never
// compare the String() of two Names when identity comparison is available;
// that defeats the point of interning.
type Name struct {
	entry *entry
}

type entry struct {
	s string
}

// String returns the underlying bytes as a string. Safe to call on the
// zero Name (returns "").
func (n Name) String() string {
	if n.entry == nil {
		return ""
	}
	return n.entry.s
}

// IsZero reports whether n is the zero Name (never interned).
func (n Name) IsZero() bool {
	return n.entry == nil
}

// Equal reports whether n and o are the same interned name. Implemented as
// pointer comparison, not string comparison.
func (n Name) Equal(o Name) bool {
	return n.entry == o.entry
}

// Interner maps byte sequences to unique Name handles. Not safe for
// concurrent use: the core's concurrency model is single-threaded
// cooperative per Document (spec.md §5), and an Interner is normally owned
// by exactly one Document.
type Interner struct {
	table map[string]*entry
}

// wellKnown lists the HTML element and attribute names the tree builder
// dispatches on by name; seeding them up front means insertion-mode
// comparisons never pay for a fresh map entry on the hot path.
var wellKnown = []atom.Atom{
	atom.A, atom.Address, atom.Applet, atom.Area, atom.Article, atom.Aside,
	atom.B, atom.Base, atom.Basefont, atom.Bgsound, atom.Big, atom.Blockquote,
	atom.Body, atom.Br, atom.Button, atom.Caption, atom.Center, atom.Code,
	atom.Col, atom.Colgroup, atom.Dd, atom.Details, atom.Dialog, atom.Dir,
	atom.Div, atom.Dl, atom.Dt, atom.Em, atom.Embed, atom.Fieldset,
	atom.Figcaption, atom.Figure, atom.Font, atom.Footer, atom.Form, atom.Frame,
	atom.Frameset, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Head,
	atom.Header, atom.Hgroup, atom.Hr, atom.Html, atom.I, atom.Iframe, atom.Image,
	atom.Img, atom.Input, atom.Isindex, atom.Keygen, atom.Li, atom.Link,
	atom.Listing, atom.Main, atom.Marquee, atom.Menu, atom.Meta, atom.Nav,
	atom.Nobr, atom.Noembed, atom.Noframes, atom.Noscript, atom.Object, atom.Ol,
	atom.Optgroup, atom.Option, atom.P, atom.Param, atom.Plaintext, atom.Pre,
	atom.Rp, atom.Rt, atom.Ruby, atom.S, atom.Script, atom.Section, atom.Select,
	atom.Small, atom.Source, atom.Span, atom.Strike, atom.Strong, atom.Style,
	atom.Summary, atom.Table, atom.Tbody, atom.Td, atom.Template, atom.Textarea,
	atom.Tfoot, atom.Th, atom.Thead, atom.Title, atom.Tr, atom.Track, atom.Tt,
	atom.U, atom.Ul, atom.Wbr, atom.Xmp,
	atom.Class, atom.Id, atom.Name, atom.Type, atom.Value, atom.Href, atom.Src,
	atom.Style, atom.Title, atom.Lang, atom.Dir,
}

// New creates an Interner pre-seeded with the well-known HTML element and
// attribute names in wellKnown (taken from golang.org/x/net/html/atom), so
// that looking up one of those names never allocates a new entry. Other
// names get an entry on first lookup.
func New() *Interner {
	it := &Interner{table: make(map[string]*entry, 512)}
	for _, a := range wellKnown {
		it.Intern(a.String())
	}
	return it
}

// Intern returns the Name for s, creating one if this is the first time s
// has been seen by this Interner.
func (it *Interner) Intern(s string) Name {
	if e, ok := it.table[s]; ok {
		return Name{entry: e}
	}
	e := &entry{s: s}
	it.table[s] = e
	return Name{entry: e}
}

// Lookup returns the Name for s without creating a new entry. The second
// return value is false if s has never been interned by it.
func (it *Interner) Lookup(s string) (Name, bool) {
	e, ok := it.table[s]
	return Name{entry: e}, ok
}

// Len returns the number of distinct names interned so far.
func (it *Interner) Len() int {
	return len(it.table)
}
