package dom

import (
	"strings"

	"github.com/webcore-engine/webcore/domstr"
)

// Attr represents an attribute of an Element.
//
// value is a DOMString (spec.md §2 component 2): attribute values are
// refcounted independently of the Attr node holding them, so a clone or a
// DocumentFragment move carries its own lifetime.
type Attr struct {
	ownerElement *Element
	namespaceURI string
	prefix       string
	localName    string
	name         string
	value        *domstr.String
}

// NewAttr creates a new Attr with the given name and value.
func NewAttr(name, value string) *Attr {
	return &Attr{
		localName: name,
		name:      name,
		value:     domstr.New(value),
	}
}

// NewAttrNS creates a new Attr with the given namespace, name, and value.
func NewAttrNS(namespaceURI, qualifiedName, value string) *Attr {
	prefix := ""
	localName := qualifiedName

	if idx := strings.Index(qualifiedName, ":"); idx >= 0 {
		prefix = qualifiedName[:idx]
		localName = qualifiedName[idx+1:]
	}

	return &Attr{
		namespaceURI: namespaceURI,
		prefix:       prefix,
		localName:    localName,
		name:         qualifiedName,
		value:        domstr.New(value),
	}
}

// setValue replaces value, unref'ing the previous DOMString. The single
// mutation choke point for the attribute's value, mirroring Node.setCharData.
func (a *Attr) setValue(value string) {
	if a.value != nil {
		a.value.Unref()
	}
	a.value = domstr.New(value)
}

// NodeType returns AttributeNode (2).
func (a *Attr) NodeType() NodeType {
	return AttributeNode
}

// NodeName returns the attribute name.
func (a *Attr) NodeName() string {
	return a.name
}

// NodeValue returns the attribute value.
func (a *Attr) NodeValue() string {
	return a.value.String()
}

// SetNodeValue sets the attribute value.
func (a *Attr) SetNodeValue(value string) {
	a.setValue(value)
}

// OwnerElement returns the element that owns this attribute.
func (a *Attr) OwnerElement() *Element {
	return a.ownerElement
}

// OwnerDocument returns the Document that owns this attribute.
// For Attr nodes, this is determined via the ownerElement.
func (a *Attr) OwnerDocument() *Document {
	if a.ownerElement != nil {
		return a.ownerElement.AsNode().OwnerDocument()
	}
	return nil
}

// BaseURI returns the absolute base URL of this attribute.
// For Attr nodes, this is the same as the ownerElement's baseURI,
// or "about:blank" if there is no owner element.
func (a *Attr) BaseURI() string {
	if a.ownerElement != nil {
		return a.ownerElement.AsNode().BaseURI()
	}
	// For unattached attrs, return about:blank (no document context)
	return "about:blank"
}

// NamespaceURI returns the namespace URI of the attribute.
func (a *Attr) NamespaceURI() string {
	return a.namespaceURI
}

// Prefix returns the namespace prefix of the attribute.
func (a *Attr) Prefix() string {
	return a.prefix
}

// LocalName returns the local name of the attribute.
func (a *Attr) LocalName() string {
	return a.localName
}

// Name returns the qualified name of the attribute.
func (a *Attr) Name() string {
	return a.name
}

// Value returns the attribute value.
func (a *Attr) Value() string {
	return a.value.String()
}

// SetValue sets the attribute value.
func (a *Attr) SetValue(value string) {
	a.setValue(value)
	// Update the element's attribute if attached
	if a.ownerElement != nil {
		// The change is reflected directly since we're modifying the Attr that's stored
	}
}

// Specified always returns true (historical).
func (a *Attr) Specified() bool {
	return true
}

// IsID reports whether this attribute is the element's ID attribute.
// NetSurf's libdom additionally consults a DTD/schema declaration
// (dom/src/core/attr.c); we only implement the attribute-name heuristic.
// Schema-driven ID detection is not implemented, and Attr has no schema
// type-info accessor.
func (a *Attr) IsID() bool {
	if a.namespaceURI != "" {
		return false
	}
	return a.localName == "id"
}

// CloneNode creates a copy of this attribute.
func (a *Attr) CloneNode(deep bool) *Node {
	// Attr nodes don't have children, so deep is ignored
	clone := NewAttr(a.name, a.value.String())
	clone.namespaceURI = a.namespaceURI
	clone.prefix = a.prefix
	clone.localName = a.localName
	// Don't copy ownerElement - the clone is unattached

	// Return as a Node - but Attr is a special case
	// In practice, cloning attrs returns an Attr, not a Node
	// This is a simplified implementation
	node := &Node{
		nodeType: AttributeNode,
		nodeName: clone.name,
		charData: domstr.New(clone.value.String()),
	}
	return node
}

// LookupNamespaceURI returns the namespace URI for the given prefix.
// For Attr nodes, this delegates to the owner element if connected.
// Disconnected Attrs have no namespace context and return empty for all prefixes.
func (a *Attr) LookupNamespaceURI(prefix string) string {
	// If connected to an element, delegate to the element
	// (which will handle the special xml/xmlns prefixes)
	if a.ownerElement != nil {
		return (*Node)(a.ownerElement).LookupNamespaceURI(prefix)
	}
	// Disconnected attrs have no namespace context
	return ""
}

// IsDefaultNamespace returns true if the given namespace URI is the default namespace.
func (a *Attr) IsDefaultNamespace(namespaceURI string) bool {
	defaultNS := a.LookupNamespaceURI("")
	return defaultNS == namespaceURI
}

// LookupPrefix returns the prefix associated with a given namespace URI.
func (a *Attr) LookupPrefix(namespaceURI string) string {
	if a.ownerElement != nil {
		return (*Node)(a.ownerElement).LookupPrefix(namespaceURI)
	}
	return ""
}
