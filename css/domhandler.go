package css

import (
	"strings"

	"github.com/webcore-engine/webcore/dom"
)

// DOMHandler is the default SelectHandler, binding the selection engine to
// the dom package's Element tree. It is the sole place in the css package
// that is allowed to know Node is really a *dom.Element.
type DOMHandler struct{}

// domEl unwraps n as a *dom.Element, or nil if n does not hold one (nil Node
// included). Every DOMHandler method funnels through this single cast point.
func domEl(n Node) *dom.Element {
	if n == nil {
		return nil
	}
	el, _ := n.(*dom.Element)
	return el
}

func wrapEl(el *dom.Element) Node {
	if el == nil {
		return nil
	}
	return el
}

func (DOMHandler) NodeName(n Node) string {
	el := domEl(n)
	if el == nil {
		return ""
	}
	return el.LocalName()
}

func (DOMHandler) ParentNode(n Node) Node {
	el := domEl(n)
	if el == nil {
		return nil
	}
	return wrapEl(el.AsNode().ParentElement())
}

func (DOMHandler) SiblingNode(n Node) Node {
	el := domEl(n)
	if el == nil {
		return nil
	}
	return wrapEl(el.PreviousElementSibling())
}

func (DOMHandler) NextSiblingNode(n Node) Node {
	el := domEl(n)
	if el == nil {
		return nil
	}
	return wrapEl(el.NextElementSibling())
}

func (DOMHandler) FirstChildNode(n Node) Node {
	el := domEl(n)
	if el == nil {
		return nil
	}
	return wrapEl(el.FirstElementChild())
}

func (h DOMHandler) NamedParentNode(n Node, name string) Node {
	parent := domEl(h.ParentNode(n))
	if parent != nil && strings.EqualFold(parent.LocalName(), name) {
		return wrapEl(parent)
	}
	return nil
}

func (h DOMHandler) NamedSiblingNode(n Node, name string) Node {
	sib := domEl(h.SiblingNode(n))
	if sib != nil && strings.EqualFold(sib.LocalName(), name) {
		return wrapEl(sib)
	}
	return nil
}

func (h DOMHandler) NamedAncestorNode(n Node, name string) Node {
	for ancestor := domEl(h.ParentNode(n)); ancestor != nil; ancestor = domEl(h.ParentNode(wrapEl(ancestor))) {
		if strings.EqualFold(ancestor.LocalName(), name) {
			return wrapEl(ancestor)
		}
	}
	return nil
}

func (DOMHandler) NodeHasClass(n Node, class string) bool {
	el := domEl(n)
	return el != nil && el.ClassList().Contains(class)
}

func (DOMHandler) NodeHasID(n Node, id string) bool {
	el := domEl(n)
	return el != nil && el.Id() == id
}

func (DOMHandler) NodeID(n Node) string {
	el := domEl(n)
	if el == nil {
		return ""
	}
	return el.Id()
}

func (DOMHandler) NodeClassList(n Node) []string {
	el := domEl(n)
	if el == nil {
		return nil
	}
	classes := el.ClassList()
	result := make([]string, classes.Length())
	for i := range result {
		result[i] = classes.Item(i)
	}
	return result
}

// isHTMLAttrContext reports whether attribute-name matching against el
// should be ASCII case-insensitive (HTML elements in HTML documents).
func isHTMLAttrContext(el *dom.Element) bool {
	ns := el.NamespaceURI()
	return ns == dom.HTMLNamespace || ns == ""
}

func (DOMHandler) NodeHasAttribute(n Node, name string) (string, bool) {
	el := domEl(n)
	if el == nil {
		return "", false
	}
	lookup := name
	if isHTMLAttrContext(el) {
		lookup = strings.ToLower(name)
	}
	if !el.HasAttribute(lookup) {
		return "", false
	}
	return el.GetAttribute(lookup), true
}

func (h DOMHandler) NodeHasAttributeEqual(n Node, name, value string, caseInsensitive bool) bool {
	v, ok := h.NodeHasAttribute(n, name)
	if !ok {
		return false
	}
	if caseInsensitive {
		return strings.EqualFold(v, value)
	}
	return v == value
}

func (h DOMHandler) NodeHasAttributeDashMatch(n Node, name, value string, caseInsensitive bool) bool {
	v, ok := h.NodeHasAttribute(n, name)
	if !ok {
		return false
	}
	if caseInsensitive {
		v, value = strings.ToLower(v), strings.ToLower(value)
	}
	return v == value || strings.HasPrefix(v, value+"-")
}

func (h DOMHandler) NodeHasAttributeIncludes(n Node, name, value string, caseInsensitive bool) bool {
	v, ok := h.NodeHasAttribute(n, name)
	if !ok {
		return false
	}
	for _, word := range strings.Fields(v) {
		if caseInsensitive {
			if strings.EqualFold(word, value) {
				return true
			}
		} else if word == value {
			return true
		}
	}
	return false
}

func (h DOMHandler) NodeHasAttributePrefix(n Node, name, value string, caseInsensitive bool) bool {
	v, ok := h.NodeHasAttribute(n, name)
	if !ok {
		return false
	}
	if caseInsensitive {
		v, value = strings.ToLower(v), strings.ToLower(value)
	}
	return strings.HasPrefix(v, value)
}

func (h DOMHandler) NodeHasAttributeSuffix(n Node, name, value string, caseInsensitive bool) bool {
	v, ok := h.NodeHasAttribute(n, name)
	if !ok {
		return false
	}
	if caseInsensitive {
		v, value = strings.ToLower(v), strings.ToLower(value)
	}
	return strings.HasSuffix(v, value)
}

func (h DOMHandler) NodeHasAttributeSubstring(n Node, name, value string, caseInsensitive bool) bool {
	v, ok := h.NodeHasAttribute(n, name)
	if !ok {
		return false
	}
	if caseInsensitive {
		v, value = strings.ToLower(v), strings.ToLower(value)
	}
	return strings.Contains(v, value)
}

func (h DOMHandler) NodeIsFirstChild(n Node) bool {
	return domEl(h.SiblingNode(n)) == nil
}

func (h DOMHandler) NodeIsLastChild(n Node) bool {
	return domEl(h.NextSiblingNode(n)) == nil
}

func (DOMHandler) NodeIsEmpty(n Node) bool {
	el := domEl(n)
	return el != nil && !el.AsNode().HasChildNodes()
}

func (DOMHandler) NodeIsRoot(n Node) bool {
	el := domEl(n)
	if el == nil {
		return false
	}
	parent := el.AsNode().ParentNode()
	return parent != nil && parent.NodeType() == dom.DocumentNode
}

func (DOMHandler) NodeIsLink(n Node) bool {
	el := domEl(n)
	if el == nil {
		return false
	}
	name := strings.ToLower(el.LocalName())
	return (name == "a" || name == "area") && el.HasAttribute("href")
}

// NodeIsVisited always reports false: visited-link history is a privacy
// sensitive, browser-chrome concern this engine does not track.
func (DOMHandler) NodeIsVisited(n Node) bool { return false }

// NodeIsHover, NodeIsActive and NodeIsFocus report false: DOMHandler has no
// pointer or focus tracking of its own. A host wiring up dynamic UI state
// would supply its own SelectHandler (or wrap DOMHandler) to answer these.
func (DOMHandler) NodeIsHover(n Node) bool  { return false }
func (DOMHandler) NodeIsActive(n Node) bool { return false }
func (DOMHandler) NodeIsFocus(n Node) bool  { return false }

func (h DOMHandler) NodeIsLang(n Node, lang string) bool {
	lang = strings.ToLower(lang)
	for el := domEl(n); el != nil; el = domEl(h.ParentNode(wrapEl(el))) {
		if el.HasAttribute("lang") {
			elLang := strings.ToLower(el.GetAttribute("lang"))
			return elLang == lang || strings.HasPrefix(elLang, lang+"-")
		}
	}
	return false
}
