package dom

import "strings"

// nodeListVariant selects which predicate a NodeList applies while walking
// the tree, per spec.md §4.2's Children/ByName/ByNamespace live-view family.
type nodeListVariant int

const (
	variantChildNodes  nodeListVariant = iota // every direct child node (Node.ChildNodes)
	variantChildren                           // direct Element children only (Element.Children)
	variantByTagName                          // descendant elements matching a (possibly "*") tag name
	variantByTagNameNS                        // descendant elements matching namespaceURI+localName
	variantByClassName                        // descendant elements carrying every given class token
	variantByNameAttr                         // HTML-namespace elements whose name attribute matches
)

// liveListKey identifies a cached live NodeList: same variant, root and
// filter keys always returns the same handle, the way `dom/src/core/nodelist.c`
// keys its document-level live-list cache (spec.md §5 supplement).
type liveListKey struct {
	variant nodeListVariant
	root    *Node
	key1    string
	key2    string
}

// NodeList represents a collection of nodes. Live NodeLists re-walk the tree
// from root on every access; static NodeLists hold a fixed snapshot.
type NodeList struct {
	root    *Node
	variant nodeListVariant
	key1    string // tag name (upper-cased) or local name
	key2    string // namespace URI
	classes []string

	isLive bool
	static []*Node
}

func newLiveNodeList(root *Node, variant nodeListVariant, key1, key2 string) *NodeList {
	return &NodeList{root: root, variant: variant, key1: key1, key2: key2, isLive: true}
}

// NewStaticNodeList creates a new static NodeList from a slice of nodes.
func NewStaticNodeList(nodes []*Node) *NodeList {
	staticCopy := make([]*Node, len(nodes))
	copy(staticCopy, nodes)
	return &NodeList{static: staticCopy, isLive: false}
}

// childNodesList returns the live NodeList of every direct child of parent
// (used by Node.ChildNodes). Direct, uncached: the HTML spec does not
// require childNodes identity stability across calls the way named live
// collections do.
func childNodesList(parent *Node) *NodeList {
	return newLiveNodeList(parent, variantChildNodes, "", "")
}

// cachedLiveList returns the document-owned cached NodeList for the given
// variant/root/keys, creating it on first request.
func cachedLiveList(root *Node, variant nodeListVariant, key1, key2 string, classes []string) *NodeList {
	doc := root.ownerDoc
	if root.nodeType == DocumentNode {
		doc = (*Document)(root)
	}
	if doc == nil {
		nl := newLiveNodeList(root, variant, key1, key2)
		nl.classes = classes
		return nl
	}

	dd := doc.AsNode().documentData
	if dd.liveLists == nil {
		dd.liveLists = make(map[liveListKey]*NodeList)
	}
	k := liveListKey{variant: variant, root: root, key1: key1, key2: key2}
	if variant == variantByClassName {
		k.key2 = strings.Join(classes, " ")
	}
	if nl, ok := dd.liveLists[k]; ok {
		return nl
	}
	nl := newLiveNodeList(root, variant, key1, key2)
	nl.classes = classes
	dd.liveLists[k] = nl
	return nl
}

// NewChildrenList returns the cached live NodeList of parent's direct
// Element children (Element/Document/DocumentFragment .Children()).
func NewChildrenList(parent *Node) *NodeList {
	return cachedLiveList(parent, variantChildren, "", "", nil)
}

// NewNodeListByTagName returns the cached live NodeList of descendant
// elements matching tagName ("*" matches every element).
func NewNodeListByTagName(root *Node, tagName string) *NodeList {
	return cachedLiveList(root, variantByTagName, strings.ToUpper(tagName), "", nil)
}

// NewNodeListByTagNameNS returns the cached live NodeList of descendant
// elements matching namespaceURI and localName ("*" matches anything in
// either position).
func NewNodeListByTagNameNS(root *Node, namespaceURI, localName string) *NodeList {
	return cachedLiveList(root, variantByTagNameNS, localName, namespaceURI, nil)
}

// NewNodeListByClassName returns the cached live NodeList of descendant
// elements carrying every class token in classNames.
func NewNodeListByClassName(root *Node, classNames string) *NodeList {
	classes := strings.Fields(classNames)
	return cachedLiveList(root, variantByClassName, "", "", classes)
}

// NewNodeListByName returns the cached live NodeList of descendant,
// HTML-namespace elements whose name attribute equals name (Document.GetElementsByName).
func NewNodeListByName(root *Node, name string) *NodeList {
	return cachedLiveList(root, variantByNameAttr, name, "", nil)
}

func (nl *NodeList) matches(n *Node) bool {
	switch nl.variant {
	case variantChildNodes:
		return true
	case variantChildren:
		return n.nodeType == ElementNode
	case variantByTagName:
		if n.nodeType != ElementNode {
			return false
		}
		if nl.key1 == "*" {
			return true
		}
		return (*Element)(n).TagName() == nl.key1
	case variantByTagNameNS:
		if n.nodeType != ElementNode {
			return false
		}
		el := (*Element)(n)
		if nl.key2 != "*" && el.NamespaceURI() != nl.key2 {
			return false
		}
		if nl.key1 != "*" && el.LocalName() != nl.key1 {
			return false
		}
		return true
	case variantByClassName:
		if n.nodeType != ElementNode {
			return false
		}
		classList := (*Element)(n).ClassList()
		for _, class := range nl.classes {
			if !classList.Contains(class) {
				return false
			}
		}
		return true
	case variantByNameAttr:
		if n.nodeType != ElementNode {
			return false
		}
		el := (*Element)(n)
		return el.NamespaceURI() == HTMLNamespace && el.GetAttribute("name") == nl.key1
	}
	return false
}

// collect walks the tree rooted at nl.root and appends matching nodes.
// variantChildNodes/variantChildren only look at direct children;
// everything else is a full descendant walk, matching getElementsByTagName
// semantics.
func (nl *NodeList) collect() []*Node {
	var out []*Node
	switch nl.variant {
	case variantChildNodes, variantChildren:
		for child := nl.root.firstChild; child != nil; child = child.nextSibling {
			if nl.matches(child) {
				out = append(out, child)
			}
		}
	default:
		var walk func(*Node)
		walk = func(n *Node) {
			for child := n.firstChild; child != nil; child = child.nextSibling {
				if nl.matches(child) {
					out = append(out, child)
				}
				walk(child)
			}
		}
		walk(nl.root)
	}
	return out
}

// Length returns the number of nodes in the collection.
func (nl *NodeList) Length() int {
	if !nl.isLive {
		return len(nl.static)
	}
	return len(nl.collect())
}

// Item returns the node at the given index, or nil if the index is out of bounds.
func (nl *NodeList) Item(index int) *Node {
	if index < 0 {
		return nil
	}
	nodes := nl.static
	if nl.isLive {
		nodes = nl.collect()
	}
	if index >= len(nodes) {
		return nil
	}
	return nodes[index]
}

// NamedItem returns the first element in the collection whose id or (for
// HTML-namespace elements) name attribute equals name.
func (nl *NodeList) NamedItem(name string) *Element {
	for _, n := range nl.itemsSlice() {
		if n.nodeType != ElementNode {
			continue
		}
		el := (*Element)(n)
		if el.Id() == name {
			return el
		}
	}
	for _, n := range nl.itemsSlice() {
		if n.nodeType != ElementNode {
			continue
		}
		el := (*Element)(n)
		if el.NamespaceURI() == HTMLNamespace && el.GetAttribute("name") == name {
			return el
		}
	}
	return nil
}

func (nl *NodeList) itemsSlice() []*Node {
	if nl.isLive {
		return nl.collect()
	}
	return nl.static
}

// ForEach calls the given function for each node in the collection.
func (nl *NodeList) ForEach(fn func(node *Node, index int)) {
	for i, n := range nl.itemsSlice() {
		fn(n, i)
	}
}

// Entries returns an iterator that yields [index, node] pairs.
func (nl *NodeList) Entries() [][2]interface{} {
	var entries [][2]interface{}
	nl.ForEach(func(node *Node, index int) {
		entries = append(entries, [2]interface{}{index, node})
	})
	return entries
}

// Keys returns an iterator that yields indices.
func (nl *NodeList) Keys() []int {
	var keys []int
	nl.ForEach(func(node *Node, index int) {
		keys = append(keys, index)
	})
	return keys
}

// Values returns an iterator that yields nodes.
func (nl *NodeList) Values() []*Node {
	return nl.itemsSlice()
}

// ToSlice returns all nodes as a slice.
func (nl *NodeList) ToSlice() []*Node {
	return nl.itemsSlice()
}

// ToElements returns every Element in the collection, skipping any non-Element
// node a ChildNodes-variant list may contain.
func (nl *NodeList) ToElements() []*Element {
	nodes := nl.itemsSlice()
	els := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		if n.nodeType == ElementNode {
			els = append(els, (*Element)(n))
		}
	}
	return els
}
