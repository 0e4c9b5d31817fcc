package css

import (
	"strconv"
	"strings"

	"github.com/webcore-engine/webcore/dom"
)

// MatchContext holds context for selector matching.
type MatchContext struct {
	// ScopeNode is the node that :scope should match against. If nil,
	// :scope matches the document root.
	ScopeNode Node
}

// Match tests if a selector matches n, asking a SelectHandler rather than
// touching n directly.
func (s *CSSSelector) Match(h SelectHandler, n Node) bool {
	return s.MatchWithContext(h, n, nil)
}

// MatchWithContext is Match with an explicit MatchContext (needed for
// :scope).
func (s *CSSSelector) MatchWithContext(h SelectHandler, n Node, ctx *MatchContext) bool {
	for _, cs := range s.ComplexSelectors {
		if cs.MatchWithContext(h, n, ctx) {
			return true
		}
	}
	return false
}

// MatchElement adapts Match to the dom package directly, for callers that
// have no SelectHandler of their own (tests, simple CLI use).
func (s *CSSSelector) MatchElement(el *dom.Element) bool {
	return s.Match(DOMHandler{}, wrapEl(el))
}

// Match tests if a complex selector matches n.
func (cs *ComplexSelector) Match(h SelectHandler, n Node) bool {
	return cs.MatchWithContext(h, n, nil)
}

// MatchElement adapts Match to the dom package directly.
func (cs *ComplexSelector) MatchElement(el *dom.Element) bool {
	return cs.Match(DOMHandler{}, wrapEl(el))
}

// MatchWithContext matches the compound selectors right-to-left, per
// spec.md §4.4 step 2: the subject (rightmost compound) is tested first so
// a failing selector rejects in one handler call before any ancestor or
// sibling walk begins.
func (cs *ComplexSelector) MatchWithContext(h SelectHandler, n Node, ctx *MatchContext) bool {
	if len(cs.Compounds) == 0 {
		return false
	}

	i := len(cs.Compounds) - 1
	current := n

	if !cs.Compounds[i].MatchWithContext(h, current, ctx) {
		return false
	}

	for i > 0 {
		combinator := cs.Compounds[i-1].Combinator
		i--

		switch combinator {
		case CombinatorDescendant:
			matched := false
			for ancestor := h.ParentNode(current); ancestor != nil; ancestor = h.ParentNode(ancestor) {
				if cs.Compounds[i].MatchWithContext(h, ancestor, ctx) {
					current = ancestor
					matched = true
					break
				}
			}
			if !matched {
				return false
			}

		case CombinatorChild:
			parent := h.ParentNode(current)
			if parent == nil || !cs.Compounds[i].MatchWithContext(h, parent, ctx) {
				return false
			}
			current = parent

		case CombinatorNextSibling:
			prev := h.SiblingNode(current)
			if prev == nil || !cs.Compounds[i].MatchWithContext(h, prev, ctx) {
				return false
			}
			current = prev

		case CombinatorSubsequentSibling:
			matched := false
			for prev := h.SiblingNode(current); prev != nil; prev = h.SiblingNode(prev) {
				if cs.Compounds[i].MatchWithContext(h, prev, ctx) {
					current = prev
					matched = true
					break
				}
			}
			if !matched {
				return false
			}

		default:
			return false
		}
	}

	return true
}

// Match tests if a compound selector matches n.
func (c *CompoundSelector) Match(h SelectHandler, n Node) bool {
	return c.MatchWithContext(h, n, nil)
}

// MatchElement adapts Match to the dom package directly.
func (c *CompoundSelector) MatchElement(el *dom.Element) bool {
	return c.Match(DOMHandler{}, wrapEl(el))
}

// MatchWithContext never dereferences n directly: every simple selector
// check is a call through h.
func (c *CompoundSelector) MatchWithContext(h SelectHandler, n Node, ctx *MatchContext) bool {
	if c.TypeSelector != nil && !matchTypeSelector(c.TypeSelector, h, n) {
		return false
	}

	for _, id := range c.IDSelectors {
		if !h.NodeHasID(n, id) {
			return false
		}
	}

	for _, class := range c.ClassSelectors {
		if !h.NodeHasClass(n, class) {
			return false
		}
	}

	for _, attr := range c.AttributeMatchers {
		if !matchAttributeSelector(attr, h, n) {
			return false
		}
	}

	for _, pc := range c.PseudoClasses {
		if !matchPseudoClassWithContext(pc, h, n, ctx) {
			return false
		}
	}

	return true
}

func matchTypeSelector(ts *TypeSelector, h SelectHandler, n Node) bool {
	if ts.Name == "*" {
		return true
	}
	return strings.EqualFold(h.NodeName(n), ts.Name)
}

func matchAttributeSelector(attr *AttributeMatcher, h SelectHandler, n Node) bool {
	// Namespace-qualified attribute selectors are matched by local name
	// only; DOMHandler (and Node trees in general) need not expose a
	// separate namespace-attribute index for this engine to function.
	value, found := h.NodeHasAttribute(n, attr.Name)
	if !found {
		return false
	}

	if attr.Operator == AttrExists {
		return true
	}

	switch attr.Operator {
	case AttrEquals:
		return h.NodeHasAttributeEqual(n, attr.Name, attr.Value, attr.CaseInsensitive)
	case AttrIncludes:
		return h.NodeHasAttributeIncludes(n, attr.Name, attr.Value, attr.CaseInsensitive)
	case AttrDashMatch:
		return h.NodeHasAttributeDashMatch(n, attr.Name, attr.Value, attr.CaseInsensitive)
	case AttrPrefix:
		return h.NodeHasAttributePrefix(n, attr.Name, attr.Value, attr.CaseInsensitive)
	case AttrSuffix:
		return h.NodeHasAttributeSuffix(n, attr.Name, attr.Value, attr.CaseInsensitive)
	case AttrSubstring:
		return h.NodeHasAttributeSubstring(n, attr.Name, attr.Value, attr.CaseInsensitive)
	}

	_ = value
	return false
}

func matchPseudoClassWithContext(pc *PseudoClassSelector, h SelectHandler, n Node, ctx *MatchContext) bool {
	switch pc.Name {
	case "root":
		return h.NodeIsRoot(n)

	case "empty":
		return h.NodeIsEmpty(n)

	case "first-child":
		return h.NodeIsFirstChild(n)

	case "last-child":
		return h.NodeIsLastChild(n)

	case "only-child":
		return h.NodeIsFirstChild(n) && h.NodeIsLastChild(n)

	case "first-of-type":
		name := h.NodeName(n)
		for prev := h.SiblingNode(n); prev != nil; prev = h.SiblingNode(prev) {
			if h.NodeName(prev) == name {
				return false
			}
		}
		return true

	case "last-of-type":
		name := h.NodeName(n)
		for next := h.NextSiblingNode(n); next != nil; next = h.NextSiblingNode(next) {
			if h.NodeName(next) == name {
				return false
			}
		}
		return true

	case "only-of-type":
		return matchPseudoClassWithContext(&PseudoClassSelector{Name: "first-of-type"}, h, n, ctx) &&
			matchPseudoClassWithContext(&PseudoClassSelector{Name: "last-of-type"}, h, n, ctx)

	case "nth-child":
		return matchNthChild(h, pc.Argument, n, false, false)

	case "nth-last-child":
		return matchNthChild(h, pc.Argument, n, true, false)

	case "nth-of-type":
		return matchNthChild(h, pc.Argument, n, false, true)

	case "nth-last-of-type":
		return matchNthChild(h, pc.Argument, n, true, true)

	case "not":
		if pc.Selector != nil {
			return !pc.Selector.MatchWithContext(h, n, ctx)
		}
		return true

	case "is", "where", "matches", "any":
		if pc.Selector != nil {
			return pc.Selector.MatchWithContext(h, n, ctx)
		}
		return false

	case "has":
		if pc.Selector != nil {
			return matchHasSelector(h, n, pc.Selector, ctx)
		}
		return false

	case "enabled":
		return isEnabled(h, n)

	case "disabled":
		return isDisabled(h, n)

	case "checked":
		return isChecked(h, n)

	case "required":
		_, ok := h.NodeHasAttribute(n, "required")
		return ok

	case "optional":
		_, ok := h.NodeHasAttribute(n, "required")
		return !ok && isFormElement(h, n)

	case "read-only":
		return isReadOnly(h, n)

	case "read-write":
		return !isReadOnly(h, n) && isEditableElement(h, n)

	case "link":
		return h.NodeIsLink(n) && !h.NodeIsVisited(n)

	case "visited":
		return h.NodeIsLink(n) && h.NodeIsVisited(n)

	case "hover":
		return h.NodeIsHover(n)

	case "active":
		return h.NodeIsActive(n)

	case "focus", "focus-visible":
		return h.NodeIsFocus(n)

	case "focus-within":
		for cur := n; cur != nil; cur = h.ParentNode(cur) {
			if h.NodeIsFocus(cur) {
				return true
			}
		}
		return false

	case "target":
		// Requires knowing the document's current fragment identifier,
		// which no SelectHandler exposes today.
		return false

	case "lang":
		return h.NodeIsLang(n, pc.Argument)

	case "dir":
		return matchDir(h, pc.Argument, n)

	case "scope":
		if ctx != nil && ctx.ScopeNode != nil {
			return n == ctx.ScopeNode
		}
		return h.NodeIsRoot(n)

	case "invalid":
		return isInvalid(h, n)

	case "valid":
		return isValid(h, n)

	default:
		return false
	}
}

// matchNthChild implements :nth-child, :nth-last-child, :nth-of-type,
// :nth-last-of-type by walking siblings through the handler.
func matchNthChild(h SelectHandler, arg string, n Node, fromLast, ofType bool) bool {
	arg = strings.TrimSpace(strings.ToLower(arg))
	if arg == "odd" {
		arg = "2n+1"
	} else if arg == "even" {
		arg = "2n"
	}

	a, b := parseAnPlusB(arg)

	pos := 1
	name := h.NodeName(n)

	if fromLast {
		for next := h.NextSiblingNode(n); next != nil; next = h.NextSiblingNode(next) {
			if !ofType || h.NodeName(next) == name {
				pos++
			}
		}
	} else {
		for prev := h.SiblingNode(n); prev != nil; prev = h.SiblingNode(prev) {
			if !ofType || h.NodeName(prev) == name {
				pos++
			}
		}
	}

	if a == 0 {
		return pos == b
	}

	diff := pos - b
	if a > 0 {
		return diff >= 0 && diff%a == 0
	}
	return diff <= 0 && diff%a == 0
}

// parseAnPlusB parses an An+B expression.
func parseAnPlusB(s string) (int, int) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "")

	if s == "odd" {
		return 2, 1
	}
	if s == "even" {
		return 2, 0
	}

	if n, err := strconv.Atoi(s); err == nil {
		return 0, n
	}

	nIdx := strings.Index(s, "n")
	if nIdx == -1 {
		return 0, 0
	}

	aStr := s[:nIdx]
	var a int
	switch aStr {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		a, _ = strconv.Atoi(aStr)
	}

	bStr := s[nIdx+1:]
	var b int
	if bStr != "" {
		b, _ = strconv.Atoi(bStr)
	}

	return a, b
}

// matchHasSelector checks if any node matches the relative selector inside
// :has().
func matchHasSelector(h SelectHandler, subject Node, sel *CSSSelector, ctx *MatchContext) bool {
	for _, cs := range sel.ComplexSelectors {
		if matchHasComplexSelector(h, subject, cs, ctx) {
			return true
		}
	}
	return false
}

// matchHasComplexSelector handles a single complex selector within :has(),
// which may carry a leading combinator (:has(> p), :has(+ p), :has(~ p)).
func matchHasComplexSelector(h SelectHandler, subject Node, cs *ComplexSelector, ctx *MatchContext) bool {
	switch cs.LeadingCombinator {
	case CombinatorChild:
		for child := h.FirstChildNode(subject); child != nil; child = h.NextSiblingNode(child) {
			if matchRelativeSelector(h, child, cs, ctx) {
				return true
			}
		}
		return false

	case CombinatorNextSibling:
		next := h.NextSiblingNode(subject)
		return next != nil && matchRelativeSelector(h, next, cs, ctx)

	case CombinatorSubsequentSibling:
		for next := h.NextSiblingNode(subject); next != nil; next = h.NextSiblingNode(next) {
			if matchRelativeSelector(h, next, cs, ctx) {
				return true
			}
		}
		return false

	default:
		return hasMatchingDescendantForRelative(h, subject, cs, ctx)
	}
}

// matchRelativeSelector checks if n matches the compound selectors of a
// relative selector (the combinator before Compounds[0] was already
// consumed by the caller).
func matchRelativeSelector(h SelectHandler, n Node, cs *ComplexSelector, ctx *MatchContext) bool {
	if len(cs.Compounds) == 0 {
		return false
	}

	i := 0
	current := n

	if !cs.Compounds[i].MatchWithContext(h, current, ctx) {
		return false
	}
	if len(cs.Compounds) == 1 {
		return true
	}

	for i < len(cs.Compounds)-1 {
		combinator := cs.Compounds[i].Combinator
		i++

		switch combinator {
		case CombinatorDescendant:
			matched := false
			for _, desc := range descendantsOf(h, current) {
				if cs.Compounds[i].MatchWithContext(h, desc, ctx) {
					current = desc
					matched = true
					break
				}
			}
			if !matched {
				return false
			}

		case CombinatorChild:
			matched := false
			for child := h.FirstChildNode(current); child != nil; child = h.NextSiblingNode(child) {
				if cs.Compounds[i].MatchWithContext(h, child, ctx) {
					current = child
					matched = true
					break
				}
			}
			if !matched {
				return false
			}

		case CombinatorNextSibling:
			next := h.NextSiblingNode(current)
			if next == nil || !cs.Compounds[i].MatchWithContext(h, next, ctx) {
				return false
			}
			current = next

		case CombinatorSubsequentSibling:
			matched := false
			for next := h.NextSiblingNode(current); next != nil; next = h.NextSiblingNode(next) {
				if cs.Compounds[i].MatchWithContext(h, next, ctx) {
					current = next
					matched = true
					break
				}
			}
			if !matched {
				return false
			}

		default:
			return false
		}
	}

	return true
}

// hasMatchingDescendantForRelative checks descendants of n for a relative
// selector used inside :has().
func hasMatchingDescendantForRelative(h SelectHandler, n Node, cs *ComplexSelector, ctx *MatchContext) bool {
	for child := h.FirstChildNode(n); child != nil; child = h.NextSiblingNode(child) {
		if matchRelativeSelector(h, child, cs, ctx) {
			return true
		}
		if hasMatchingDescendantForRelative(h, child, cs, ctx) {
			return true
		}
	}
	return false
}

// descendantsOf returns all descendant nodes of n in document order.
func descendantsOf(h SelectHandler, n Node) []Node {
	var result []Node
	for child := h.FirstChildNode(n); child != nil; child = h.NextSiblingNode(child) {
		result = append(result, child)
		result = append(result, descendantsOf(h, child)...)
	}
	return result
}

func isEnabled(h SelectHandler, n Node) bool {
	name := strings.ToLower(h.NodeName(n))
	switch name {
	case "button", "input", "select", "textarea":
		_, disabled := h.NodeHasAttribute(n, "disabled")
		return !disabled
	}
	return false
}

func isDisabled(h SelectHandler, n Node) bool {
	name := strings.ToLower(h.NodeName(n))
	switch name {
	case "button", "input", "select", "textarea":
		_, disabled := h.NodeHasAttribute(n, "disabled")
		return disabled
	}
	return false
}

func isChecked(h SelectHandler, n Node) bool {
	name := strings.ToLower(h.NodeName(n))
	switch name {
	case "input":
		inputType, _ := h.NodeHasAttribute(n, "type")
		inputType = strings.ToLower(inputType)
		if inputType == "checkbox" || inputType == "radio" {
			_, checked := h.NodeHasAttribute(n, "checked")
			return checked
		}
	case "option":
		_, selected := h.NodeHasAttribute(n, "selected")
		return selected
	}
	return false
}

func isFormElement(h SelectHandler, n Node) bool {
	switch strings.ToLower(h.NodeName(n)) {
	case "input", "select", "textarea":
		return true
	}
	return false
}

func isReadOnly(h SelectHandler, n Node) bool {
	name := strings.ToLower(h.NodeName(n))
	if name == "input" || name == "textarea" {
		_, readonly := h.NodeHasAttribute(n, "readonly")
		_, disabled := h.NodeHasAttribute(n, "disabled")
		return readonly || disabled
	}
	return true
}

func isEditableElement(h SelectHandler, n Node) bool {
	name := strings.ToLower(h.NodeName(n))
	if name == "input" {
		inputType, _ := h.NodeHasAttribute(n, "type")
		switch strings.ToLower(inputType) {
		case "text", "password", "email", "url", "tel", "search", "number", "":
			return true
		}
	}
	if name == "textarea" {
		return true
	}
	if val, ok := h.NodeHasAttribute(n, "contenteditable"); ok {
		return val != "false"
	}
	return false
}

// isInvalid checks if n matches the :invalid pseudo-class. An element
// matches :invalid if it has constraints and fails constraint validation.
func isInvalid(h SelectHandler, n Node) bool {
	switch strings.ToLower(h.NodeName(n)) {
	case "form", "fieldset":
		for child := h.FirstChildNode(n); child != nil; child = h.NextSiblingNode(child) {
			if isInvalid(h, child) || hasInvalidDescendant(h, child) {
				return true
			}
		}
		return false

	case "input":
		if _, required := h.NodeHasAttribute(n, "required"); required {
			value, _ := h.NodeHasAttribute(n, "value")
			return value == ""
		}
		return false

	case "select":
		if _, required := h.NodeHasAttribute(n, "required"); required {
			for child := h.FirstChildNode(n); child != nil; child = h.NextSiblingNode(child) {
				if strings.ToLower(h.NodeName(child)) == "option" {
					if _, selected := h.NodeHasAttribute(child, "selected"); selected {
						return false
					}
				}
			}
			return true
		}
		return false

	case "textarea":
		_, required := h.NodeHasAttribute(n, "required")
		return required && domEl(n) != nil && domEl(n).AsNode().TextContent() == ""
	}
	return false
}

func hasInvalidDescendant(h SelectHandler, n Node) bool {
	for child := h.FirstChildNode(n); child != nil; child = h.NextSiblingNode(child) {
		if isInvalid(h, child) || hasInvalidDescendant(h, child) {
			return true
		}
	}
	return false
}

// isValid checks if n matches the :valid pseudo-class.
func isValid(h SelectHandler, n Node) bool {
	switch strings.ToLower(h.NodeName(n)) {
	case "form", "fieldset", "input", "select", "textarea":
		return !isInvalid(h, n)
	}
	return false
}

func matchDir(h SelectHandler, dir string, n Node) bool {
	dir = strings.ToLower(dir)
	for cur := n; cur != nil; cur = h.ParentNode(cur) {
		if val, ok := h.NodeHasAttribute(cur, "dir"); ok {
			return strings.ToLower(val) == dir
		}
	}
	return dir == "ltr"
}

// QuerySelector returns the first element matching the selector, walking
// root's subtree via DOMHandler.
func QuerySelector(root *dom.Node, selectorStr string) *dom.Element {
	selector, err := ParseSelector(selectorStr)
	if err != nil {
		return nil
	}
	return querySelectorInternal(root, selector)
}

// QuerySelectorAll returns all elements matching the selector.
func QuerySelectorAll(root *dom.Node, selectorStr string) []*dom.Element {
	selector, err := ParseSelector(selectorStr)
	if err != nil {
		return nil
	}
	return querySelectorAllInternal(root, selector)
}

func querySelectorInternal(node *dom.Node, selector *CSSSelector) *dom.Element {
	h := DOMHandler{}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if child.NodeType() == dom.ElementNode {
			el := (*dom.Element)(child)
			if selector.Match(h, wrapEl(el)) {
				return el
			}
			if result := querySelectorInternal(child, selector); result != nil {
				return result
			}
		}
	}
	return nil
}

func querySelectorAllInternal(node *dom.Node, selector *CSSSelector) []*dom.Element {
	h := DOMHandler{}
	var results []*dom.Element

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if child.NodeType() == dom.ElementNode {
			el := (*dom.Element)(child)
			if selector.Match(h, wrapEl(el)) {
				results = append(results, el)
			}
			results = append(results, querySelectorAllInternal(child, selector)...)
		}
	}

	return results
}
