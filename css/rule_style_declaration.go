// Package css provides CSSRuleStyleDeclaration for rule-based style declarations.
package css

import (
	"sort"
	"strings"
)

// CSSRuleStyleDeclaration is the live CSSStyleDeclaration view over one
// qualified rule's declaration block. Known properties are looked up by
// PropertyID (see properties.go) so a rule's block shares the same
// identifier space the cascade engine keys ComputedStyle slots by; custom
// properties (--foo) and any name lookupPropertyID doesn't recognize fall
// back to a plain string-keyed entry so authors can still set/read them.
type CSSRuleStyleDeclaration struct {
	parentRule CSSRuleInterface

	entries []*declEntry // insertion order, doubles as cssText serialization order
	byName  map[string]*declEntry
}

// declEntry is one property/value/priority triple within a declaration
// block. id is set (and >= 0) only for names lookupPropertyID recognizes;
// custom properties and unknown names carry id == invalidPropertyID and are
// distinguished purely by name.
type declEntry struct {
	id       PropertyID
	name     string
	value    string
	priority string // "important" or ""
}

const invalidPropertyID PropertyID = ^PropertyID(0)

// NewCSSRuleStyleDeclaration creates a new CSSRuleStyleDeclaration for a rule.
func NewCSSRuleStyleDeclaration(parentRule CSSRuleInterface) *CSSRuleStyleDeclaration {
	return &CSSRuleStyleDeclaration{
		parentRule: parentRule,
		byName:     make(map[string]*declEntry),
	}
}

// NewCSSStyleDeclarationFromBlock creates a style declaration from a parsed block.
func NewCSSStyleDeclarationFromBlock(block *Block, parentRule CSSRuleInterface) *CSSRuleStyleDeclaration {
	sd := NewCSSRuleStyleDeclaration(parentRule)
	if block == nil {
		return sd
	}

	for _, decl := range ParseBlockContents(block) {
		name := normalizeRuleCSSPropertyName(decl.Property)
		if name == "" {
			continue
		}
		value := strings.TrimSpace(renderComponentValues(decl.Value))
		if value == "" {
			continue
		}
		priority := ""
		if decl.Important {
			priority = "important"
		}
		sd.store(name, value, priority)
	}

	return sd
}

// renderComponentValues serializes a declaration's parsed component values
// back to CSS text, the way a browser's CSSOM reflects an author's shorthand
// or custom-property value verbatim rather than re-canonicalizing it.
func renderComponentValues(values []ComponentValue) string {
	var b strings.Builder
	for _, cv := range values {
		switch v := cv.(type) {
		case PreservedToken:
			writeTokenText(&b, v.Token)
		case *Function:
			b.WriteString(v.Name)
			b.WriteByte('(')
			for i, fcv := range v.Values {
				if i > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(fcv.String())
			}
			b.WriteByte(')')
		}
	}
	return b.String()
}

func writeTokenText(b *strings.Builder, t Token) {
	switch t.Type {
	case TokenIdent, TokenNumber:
		b.WriteString(t.Value)
	case TokenPercentage:
		b.WriteString(t.Value)
		b.WriteByte('%')
	case TokenDimension:
		b.WriteString(t.Value)
		b.WriteString(t.Unit)
	case TokenString:
		b.WriteByte('"')
		b.WriteString(t.Value)
		b.WriteByte('"')
	case TokenHash:
		b.WriteByte('#')
		b.WriteString(t.Value)
	case TokenWhitespace:
		b.WriteByte(' ')
	case TokenDelim:
		b.WriteRune(t.Delim)
	case TokenComma:
		b.WriteByte(',')
	case TokenURL:
		b.WriteString("url(")
		b.WriteString(t.Value)
		b.WriteByte(')')
	}
}

// store upserts name's entry, tagging it with its PropertyID when known and
// preserving insertion order for first-time names.
func (sd *CSSRuleStyleDeclaration) store(name, value, priority string) {
	id := invalidPropertyID
	if pid, ok := lookupPropertyID(name); ok {
		id = pid
	}
	if e, exists := sd.byName[name]; exists {
		e.id, e.value, e.priority = id, value, priority
		return
	}
	e := &declEntry{id: id, name: name, value: value, priority: priority}
	sd.byName[name] = e
	sd.entries = append(sd.entries, e)
}

// CSSText returns the textual representation of the declaration block.
func (sd *CSSRuleStyleDeclaration) CSSText() string {
	if len(sd.entries) == 0 {
		return ""
	}
	parts := make([]string, 0, len(sd.entries))
	for _, e := range sd.entries {
		part := e.name + ": " + e.value
		if e.priority == "important" {
			part += " !important"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

// SetCSSText parses and sets all properties from a CSS text string.
func (sd *CSSRuleStyleDeclaration) SetCSSText(cssText string) {
	sd.entries = nil
	sd.byName = make(map[string]*declEntry)
	for _, decl := range strings.Split(cssText, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		colon := strings.Index(decl, ":")
		if colon == -1 {
			continue
		}
		name := strings.TrimSpace(decl[:colon])
		value := strings.TrimSpace(decl[colon+1:])
		if name == "" || value == "" {
			continue
		}

		value, priority := splitImportant(value)

		name = normalizeRuleCSSPropertyName(name)
		if name != "" {
			sd.store(name, value, priority)
		}
	}
}

// splitImportant strips a trailing "!important" (with arbitrary whitespace
// either side of the "!") from value and reports the resulting priority.
func splitImportant(value string) (trimmed, priority string) {
	lower := strings.ToLower(value)
	if strings.HasSuffix(lower, "!important") {
		return strings.TrimSpace(value[:len(value)-len("!important")]), "important"
	}
	if bang := strings.LastIndex(lower, "!"); bang != -1 {
		if strings.TrimSpace(lower[bang+1:]) == "important" {
			return strings.TrimSpace(value[:bang]), "important"
		}
	}
	return value, ""
}

// Length returns the number of properties set.
func (sd *CSSRuleStyleDeclaration) Length() int {
	return len(sd.entries)
}

// Item returns the property name at the given index.
func (sd *CSSRuleStyleDeclaration) Item(index int) string {
	if index < 0 || index >= len(sd.entries) {
		return ""
	}
	return sd.entries[index].name
}

// GetPropertyValue returns the value of a CSS property.
func (sd *CSSRuleStyleDeclaration) GetPropertyValue(property string) string {
	if e, ok := sd.byName[normalizeRuleCSSPropertyName(property)]; ok {
		return e.value
	}
	return ""
}

// GetPropertyPriority returns the priority of a CSS property ("important" or "").
func (sd *CSSRuleStyleDeclaration) GetPropertyPriority(property string) string {
	if e, ok := sd.byName[normalizeRuleCSSPropertyName(property)]; ok {
		return e.priority
	}
	return ""
}

// SetProperty sets a CSS property with an optional priority.
func (sd *CSSRuleStyleDeclaration) SetProperty(property, value string, priority ...string) {
	name := normalizeRuleCSSPropertyName(property)
	if name == "" {
		return
	}
	if value == "" {
		sd.RemoveProperty(name)
		return
	}
	pri := ""
	if len(priority) > 0 && strings.EqualFold(priority[0], "important") {
		pri = "important"
	}
	sd.store(name, value, pri)
}

// RemoveProperty removes a CSS property and returns its old value.
func (sd *CSSRuleStyleDeclaration) RemoveProperty(property string) string {
	name := normalizeRuleCSSPropertyName(property)
	e, ok := sd.byName[name]
	if !ok {
		return ""
	}
	delete(sd.byName, name)
	for i, entry := range sd.entries {
		if entry == e {
			sd.entries = append(sd.entries[:i], sd.entries[i+1:]...)
			break
		}
	}
	return e.value
}

// ParentRule returns the parent CSS rule.
func (sd *CSSRuleStyleDeclaration) ParentRule() CSSRuleInterface {
	return sd.parentRule
}

// PropertyNames returns all property names in declaration order.
func (sd *CSSRuleStyleDeclaration) PropertyNames() []string {
	result := make([]string, len(sd.entries))
	for i, e := range sd.entries {
		result[i] = e.name
	}
	return result
}

// GetAllProperties returns a sorted list of all CSS properties.
func (sd *CSSRuleStyleDeclaration) GetAllProperties() []string {
	result := make([]string, 0, len(sd.entries))
	for _, e := range sd.entries {
		result = append(result, e.name)
	}
	sort.Strings(result)
	return result
}

// normalizeRuleCSSPropertyName converts camelCase to kebab-case and lowercases.
// Custom properties (leading "--") are returned unchanged, matching the
// CSSOM rule that custom-property names are case-sensitive and verbatim.
func normalizeRuleCSSPropertyName(name string) string {
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	if strings.Contains(name, "-") {
		return strings.ToLower(name)
	}

	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteByte(byte(r - 'A' + 'a'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
