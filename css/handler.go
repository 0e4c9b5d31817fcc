package css

// Node is an opaque handle to a node in whatever tree a SelectHandler
// adapts. The selection engine (this file and matcher.go) never type-asserts
// or dereferences it; every question it needs answered about a node — name,
// classes, attributes, tree position, dynamic state — goes through the
// handler instead, per the decoupling libcss's css_select_handler vtable
// gives its selection engine from the host's own node representation.
type Node interface{}

// SelectHandler is the node-access contract the selection engine matches
// selectors against. A host tree implements it once (see DOMHandler for the
// dom package's implementation) and every selector — type, class, ID,
// attribute, structural and dynamic pseudo-class — is matched purely in
// terms of these calls, so the engine itself carries no dependency on any
// concrete tree representation.
type SelectHandler interface {
	// NodeName returns the node's local element name, normalized the way
	// the host tree normalizes it for comparison (the dom package's
	// DOMHandler returns HTML names lowercased).
	NodeName(n Node) string

	// ParentNode returns n's parent element, or nil if n is the root or is
	// not an element.
	ParentNode(n Node) Node

	// SiblingNode returns the element immediately preceding n among its
	// parent's children (the "previous element sibling"), or nil.
	SiblingNode(n Node) Node

	// NextSiblingNode returns the element immediately following n, or nil.
	NextSiblingNode(n Node) Node

	// FirstChildNode returns n's first element child, or nil.
	FirstChildNode(n Node) Node

	// NamedParentNode returns n's parent iff its name equals name.
	NamedParentNode(n Node, name string) Node

	// NamedSiblingNode returns n's previous element sibling iff its name
	// equals name.
	NamedSiblingNode(n Node, name string) Node

	// NamedAncestorNode returns the nearest strict ancestor of n whose name
	// equals name, or nil.
	NamedAncestorNode(n Node, name string) Node

	// NodeHasClass reports whether n carries class among its class list.
	NodeHasClass(n Node, class string) bool

	// NodeHasID reports whether n's id attribute equals id.
	NodeHasID(n Node, id string) bool

	// NodeID returns n's id attribute value, or "" if it has none. Used by
	// SelectCtx to bucket candidate rules by id before running the full
	// matching engine, rather than to test a selector.
	NodeID(n Node) string

	// NodeClassList returns n's class list. Used by SelectCtx for the same
	// bucketing purpose as NodeID.
	NodeClassList(n Node) []string

	// NodeHasAttribute reports whether n carries an attribute named name,
	// and if so returns its value.
	NodeHasAttribute(n Node, name string) (value string, ok bool)

	// NodeHasAttributeEqual reports whether n's attribute named name is
	// present and equal to value (ASCII case-insensitively when
	// caseInsensitive is set, per the attribute's case-folding rules).
	NodeHasAttributeEqual(n Node, name, value string, caseInsensitive bool) bool

	// NodeHasAttributeDashMatch implements the "|=" attribute operator:
	// value equals the attribute, or is a prefix of it followed by "-".
	NodeHasAttributeDashMatch(n Node, name, value string, caseInsensitive bool) bool

	// NodeHasAttributeIncludes implements the "~=" attribute operator:
	// value appears as one whitespace-separated word of the attribute.
	NodeHasAttributeIncludes(n Node, name, value string, caseInsensitive bool) bool

	// NodeHasAttributePrefix/Suffix/Substring implement "^=", "$=", "*=".
	NodeHasAttributePrefix(n Node, name, value string, caseInsensitive bool) bool
	NodeHasAttributeSuffix(n Node, name, value string, caseInsensitive bool) bool
	NodeHasAttributeSubstring(n Node, name, value string, caseInsensitive bool) bool

	// NodeIsFirstChild, NodeIsLastChild, NodeIsEmpty, NodeIsRoot implement
	// the corresponding structural pseudo-classes.
	NodeIsFirstChild(n Node) bool
	NodeIsLastChild(n Node) bool
	NodeIsEmpty(n Node) bool
	NodeIsRoot(n Node) bool

	// NodeIsLink, NodeIsVisited, NodeIsHover, NodeIsActive, NodeIsFocus
	// implement the link and UI-state pseudo-classes. A handler with no
	// notion of dynamic UI state (as DOMHandler has no hover tracking) is
	// expected to always return false from NodeIsHover/Active/Focus.
	NodeIsLink(n Node) bool
	NodeIsVisited(n Node) bool
	NodeIsHover(n Node) bool
	NodeIsActive(n Node) bool
	NodeIsFocus(n Node) bool

	// NodeIsLang reports whether n's effective language (its own lang
	// attribute, or the nearest ancestor's) matches lang.
	NodeIsLang(n Node, lang string) bool
}
