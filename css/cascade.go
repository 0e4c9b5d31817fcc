// Package css provides CSS cascade and style computation.
// Reference: https://www.w3.org/TR/css-cascade-4/
package css

import (
	"sort"
	"strings"

	"github.com/webcore-engine/webcore/dom"
)

// CascadeOrigin represents the origin of a stylesheet in the cascade.
type CascadeOrigin int

const (
	OriginUserAgent CascadeOrigin = iota
	OriginUser
	OriginAuthor
)

// MatchedRule represents a CSS rule that matches an element, along with
// metadata used for cascade ordering.
type MatchedRule struct {
	Rule        *Rule
	Selector    *ComplexSelector
	Origin      CascadeOrigin
	Important   bool
	Specificity Specificity
	Order       int // Source order (for stable sorting)
}

// StyleResolver resolves computed styles for elements using the CSS cascade.
// Matching itself is delegated to a SelectCtx, which indexes every
// stylesheet's rules once (by id/class/type) instead of re-parsing and
// retesting every rule against every element.
type StyleResolver struct {
	userAgentSheet *Stylesheet
	userSheets     []*Stylesheet
	authorSheets   []*Stylesheet

	ctx      *SelectCtx
	ctxDirty bool
}

// NewStyleResolver creates a new style resolver.
func NewStyleResolver() *StyleResolver {
	return &StyleResolver{ctxDirty: true}
}

// SetUserAgentStylesheet sets the user agent stylesheet.
func (sr *StyleResolver) SetUserAgentStylesheet(ss *Stylesheet) {
	sr.userAgentSheet = ss
	sr.ctxDirty = true
}

// AddUserStylesheet adds a user stylesheet.
func (sr *StyleResolver) AddUserStylesheet(ss *Stylesheet) {
	sr.userSheets = append(sr.userSheets, ss)
	sr.ctxDirty = true
}

// AddAuthorStylesheet adds an author stylesheet.
func (sr *StyleResolver) AddAuthorStylesheet(ss *Stylesheet) {
	sr.authorSheets = append(sr.authorSheets, ss)
	sr.ctxDirty = true
}

// ClearAuthorStylesheets clears all author stylesheets.
func (sr *StyleResolver) ClearAuthorStylesheets() {
	sr.authorSheets = nil
	sr.ctxDirty = true
}

// ensureCtx rebuilds the resolver's SelectCtx after any stylesheet list
// change, in stylesheet-origin order.
func (sr *StyleResolver) ensureCtx() {
	if sr.ctx != nil && !sr.ctxDirty {
		return
	}

	ctx := NewSelectCtx()
	if sr.userAgentSheet != nil {
		ctx.AppendSheet(sr.userAgentSheet, OriginUserAgent)
	}
	for _, ss := range sr.userSheets {
		ctx.AppendSheet(ss, OriginUser)
	}
	for _, ss := range sr.authorSheets {
		ctx.AppendSheet(ss, OriginAuthor)
	}

	sr.ctx = ctx
	sr.ctxDirty = false
}

// collectMatchingRules collects all rules matching an element.
func (sr *StyleResolver) collectMatchingRules(el *dom.Element) []MatchedRule {
	sr.ensureCtx()
	return sr.ctx.Select(DOMHandler{}, wrapEl(el))
}

// sortByPrecedence sorts matched rules by cascade precedence.
// Order (highest to lowest):
// 1. Important user agent declarations
// 2. Important user declarations
// 3. Important author declarations
// 4. Normal author declarations
// 5. Normal user declarations
// 6. Normal user agent declarations
// Within each group, sort by specificity, then source order.
func sortByPrecedence(rules []MatchedRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		a, b := rules[i], rules[j]

		// Calculate cascade layer value
		aLayer := cascadeLayer(a.Origin, a.Important)
		bLayer := cascadeLayer(b.Origin, b.Important)

		if aLayer != bLayer {
			return aLayer < bLayer
		}

		// Same layer, compare by specificity
		cmp := a.Specificity.Compare(b.Specificity)
		if cmp != 0 {
			return cmp < 0
		}

		// Same specificity, use source order
		return a.Order < b.Order
	})
}

// cascadeLayer returns a numeric value for cascade ordering.
// Lower values have lower precedence.
func cascadeLayer(origin CascadeOrigin, important bool) int {
	if important {
		// Important declarations (inverted order)
		switch origin {
		case OriginAuthor:
			return 3
		case OriginUser:
			return 4
		case OriginUserAgent:
			return 5
		}
	} else {
		// Normal declarations
		switch origin {
		case OriginUserAgent:
			return 0
		case OriginUser:
			return 1
		case OriginAuthor:
			return 2
		}
	}
	return 0
}

// ComputedStyle represents the final computed style values for an element.
// Values are stored as a dense, PropertyID-indexed array of OPV cells rather
// than a map keyed by property name: every element's style occupies the
// same fixed-width slot layout, and a property lookup is an array index
// instead of a string hash.
type ComputedStyle struct {
	// The element this style applies to
	element *dom.Element

	// slots holds one OPV cell per known property, indexed by PropertyID.
	// A nil slot means the property has not been set.
	slots []*OPV

	// Parent computed style (for inheritance)
	parent *ComputedStyle
}

// ComputedValue represents a computed CSS value.
type ComputedValue struct {
	// The original declaration
	Value Value

	// Resolved values
	Length    float64 // For length values (in pixels)
	Color     Color   // For color values
	Keyword   string  // For keyword values
	IsInherit bool    // Whether this is the 'inherit' keyword
	IsInitial bool    // Whether this is the 'initial' keyword
	IsUnset   bool    // Whether this is the 'unset' keyword
	IsRevert  bool    // Whether this is the 'revert' keyword
}

// NewComputedStyle creates a new computed style for an element.
func NewComputedStyle(el *dom.Element, parent *ComputedStyle) *ComputedStyle {
	return &ComputedStyle{
		element: el,
		slots:   make([]*OPV, numProperties),
		parent:  parent,
	}
}

// GetPropertyValue returns the computed value for a property, decoding its
// OPV cell on demand.
func (cs *ComputedStyle) GetPropertyValue(property string) *ComputedValue {
	id, ok := lookupPropertyID(strings.ToLower(property))
	if !ok {
		return nil
	}
	return decodeOPV(cs.slots[id])
}

// SetPropertyValue sets a computed value for a property, encoding it into
// the property's OPV cell. Unknown property names are ignored: there is no
// slot to hold them.
func (cs *ComputedStyle) SetPropertyValue(property string, value *ComputedValue) {
	id, ok := lookupPropertyID(strings.ToLower(property))
	if !ok {
		return
	}
	cs.slots[id] = encodeOPV(value)
}

// getSlot returns the raw OPV cell for id without going through
// encode/decode, for the hot paths (initial values, inheritance, cascade
// application) that already know their PropertyID.
func (cs *ComputedStyle) getSlot(id PropertyID) *OPV {
	return cs.slots[id]
}

func (cs *ComputedStyle) setSlot(id PropertyID, o *OPV) {
	cs.slots[id] = o
}

// ResolveStyles computes the final style for an element.
func (sr *StyleResolver) ResolveStyles(el *dom.Element, parent *ComputedStyle) *ComputedStyle {
	computed := NewComputedStyle(el, parent)

	// Step 1: Apply default/initial values
	applyInitialValues(computed)

	// Step 2: Apply inherited properties from parent
	if parent != nil {
		applyInheritedProperties(computed, parent)
	}

	// Step 3: Collect all matching rules
	matched := sr.collectMatchingRules(el)

	// Step 4: Sort by cascade precedence
	sortByPrecedence(matched)

	// Step 5: Apply declarations in order (later declarations override earlier ones)
	for _, mr := range matched {
		for _, decl := range mr.Rule.Declarations {
			applyDeclaration(computed, &decl, parent)
		}
	}

	// Step 6: Parse and apply inline styles
	if el.HasAttribute("style") {
		inlineStyle := el.GetAttribute("style")
		applyInlineStyle(computed, inlineStyle, parent)
	}

	// Step 7: Compute relative values (em, rem, %, etc.)
	resolveRelativeValues(computed, parent)

	return computed
}

// applyInitialValues sets initial values for all properties.
func applyInitialValues(cs *ComputedStyle) {
	for id, info := range propertyTable {
		cs.setSlot(PropertyID(id), encodeOPV(&ComputedValue{
			Keyword:   info.InitialValue,
			IsInitial: true,
		}))
	}
}

// applyInheritedProperties inherits values from parent.
func applyInheritedProperties(cs *ComputedStyle, parent *ComputedStyle) {
	for id, info := range propertyTable {
		if !info.Inherited {
			continue
		}
		if parentSlot := parent.getSlot(PropertyID(id)); parentSlot != nil {
			parentVal := decodeOPV(parentSlot)
			parentVal.IsInherit = false // It's now the actual value
			cs.setSlot(PropertyID(id), encodeOPV(parentVal))
		}
	}
}

// applyDeclaration applies a single declaration to computed style.
func applyDeclaration(cs *ComputedStyle, decl *Declaration, parent *ComputedStyle) {
	prop := strings.ToLower(decl.Property)
	id, ok := lookupPropertyID(prop)
	if !ok {
		return
	}
	info := propertyTable[id]

	// Handle CSS-wide keywords
	switch strings.ToLower(decl.Value.Keyword) {
	case "inherit":
		if parent != nil {
			if parentSlot := parent.getSlot(id); parentSlot != nil {
				cs.setSlot(id, &OPV{opcode: parentSlot.opcode, value: parentSlot.value, flags: parentSlot.flags})
			}
		}
		return
	case "initial":
		cs.setSlot(id, encodeOPV(&ComputedValue{Keyword: info.InitialValue, IsInitial: true}))
		return
	case "unset", "revert":
		// revert does not roll back to an earlier cascade origin; it is
		// handled exactly like unset.
		if info.Inherited && parent != nil {
			if parentSlot := parent.getSlot(id); parentSlot != nil {
				cs.setSlot(id, &OPV{opcode: parentSlot.opcode, value: parentSlot.value, flags: parentSlot.flags})
			}
		} else {
			cs.setSlot(id, encodeOPV(&ComputedValue{Keyword: info.InitialValue, IsInitial: true}))
		}
		return
	}

	// Apply the value
	cs.setSlot(id, encodeOPV(computeValue(&decl.Value, prop)))
}

// applyInlineStyle parses and applies inline style attribute.
func applyInlineStyle(cs *ComputedStyle, style string, parent *ComputedStyle) {
	// Parse inline style as declarations
	// Wrap in a block for the parser
	parser := NewCSSParser("{" + style + "}")
	// Consume the component values which will include the block
	cv := parser.consumeComponentValue()
	block, ok := cv.(*Block)
	if !ok || block == nil {
		return
	}

	declarations := ParseBlockContents(block)
	for _, decl := range declarations {
		legacyDecl := convertDeclaration(decl)
		applyDeclaration(cs, &legacyDecl, parent)
	}
}

// computeValue converts a CSS Value to a ComputedValue.
func computeValue(val *Value, property string) *ComputedValue {
	cv := &ComputedValue{
		Value: *val,
	}

	switch val.Type {
	case KeywordValue:
		cv.Keyword = val.Keyword
	case LengthValue:
		cv.Length = val.Length
	case ColorValue:
		cv.Color = val.Color
	case PercentageValue:
		cv.Length = val.Length // Will be resolved later
	case NumberValue:
		cv.Length = val.Length
	}

	return cv
}

// resolveRelativeValues resolves relative units to absolute values.
func resolveRelativeValues(cs *ComputedStyle, parent *ComputedStyle) {
	fontSizeID, _ := lookupPropertyID("font-size")

	// Get the font-size for em calculations
	var fontSize float64 = 16 // Default
	if fs := decodeOPV(cs.getSlot(fontSizeID)); fs != nil {
		fontSize = fs.Length
		if fontSize == 0 {
			fontSize = 16
		}
	}

	// Get root font-size for rem calculations
	var rootFontSize float64 = 16 // Default
	rootStyle := cs
	for rootStyle.parent != nil {
		rootStyle = rootStyle.parent
	}
	if rfs := decodeOPV(rootStyle.getSlot(fontSizeID)); rfs != nil && rfs.Length > 0 {
		rootFontSize = rfs.Length
	}

	for id, prop := range propertyNames {
		slot := cs.getSlot(PropertyID(id))
		if slot == nil {
			continue
		}
		val := decodeOPV(slot)

		switch val.Value.Type {
		case LengthValue:
			val.Length = resolveLength(val.Value.Length, val.Value.Unit, fontSize, rootFontSize)
		case PercentageValue:
			// Resolve percentages based on property
			val.Length = resolvePercentage(val.Value.Length, prop, parent)
		default:
			continue
		}
		cs.setSlot(PropertyID(id), encodeOPV(val))
	}
}

// resolveLength converts a length value to pixels.
func resolveLength(value float64, unit string, fontSize, rootFontSize float64) float64 {
	switch strings.ToLower(unit) {
	case "px":
		return value
	case "em":
		return value * fontSize
	case "rem":
		return value * rootFontSize
	case "pt":
		return value * 96 / 72 // 1pt = 96/72 px
	case "pc":
		return value * 16 // 1pc = 16px
	case "in":
		return value * 96 // 1in = 96px
	case "cm":
		return value * 96 / 2.54 // 1cm = 96/2.54 px
	case "mm":
		return value * 96 / 25.4 // 1mm = 96/25.4 px
	case "q":
		return value * 96 / 101.6 // 1q = 96/101.6 px
	case "ex":
		return value * fontSize * 0.5 // Approximate ex as 0.5em
	case "ch":
		return value * fontSize * 0.5 // Approximate ch as 0.5em
	case "vw", "vh", "vmin", "vmax":
		// Viewport units need viewport size - use placeholder
		return value * 10 // Will be resolved properly when viewport is known
	default:
		return value
	}
}

// resolvePercentage resolves a percentage value based on property.
func resolvePercentage(percent float64, property string, parent *ComputedStyle) float64 {
	// Percentage resolution depends on the property
	fontSizeID, _ := lookupPropertyID("font-size")

	switch property {
	case "font-size":
		if parent != nil {
			if pfs := decodeOPV(parent.getSlot(fontSizeID)); pfs != nil {
				return (percent / 100) * pfs.Length
			}
		}
		return (percent / 100) * 16
	case "width", "left", "right", "margin-left", "margin-right", "padding-left", "padding-right":
		// Percentage of containing block width - use placeholder
		return percent // Will be resolved during layout
	case "height", "top", "bottom", "margin-top", "margin-bottom", "padding-top", "padding-bottom":
		// Percentage of containing block height - use placeholder
		return percent // Will be resolved during layout
	case "line-height":
		// Percentage of font-size
		if parent != nil {
			if fs := decodeOPV(parent.getSlot(fontSizeID)); fs != nil {
				return (percent / 100) * fs.Length
			}
		}
		return percent
	default:
		return percent
	}
}

// GetComputedStyleProperty is a helper to get a specific property value.
func (cs *ComputedStyle) GetComputedStyleProperty(property string) string {
	val := cs.GetPropertyValue(property)
	if val == nil {
		return ""
	}
	if val.Keyword != "" {
		return val.Keyword
	}
	if val.Value.Raw != "" {
		return val.Value.Raw
	}
	return ""
}

// GetLength returns the computed length value for a property in pixels.
func (cs *ComputedStyle) GetLength(property string) float64 {
	val := cs.GetPropertyValue(property)
	if val == nil {
		return 0
	}
	return val.Length
}

// GetColor returns the computed color value for a property.
func (cs *ComputedStyle) GetColor(property string) Color {
	val := cs.GetPropertyValue(property)
	if val == nil {
		return Color{}
	}
	return val.Color
}
