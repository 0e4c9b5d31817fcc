package css

// PropertyID is a dense, zero-based index for a known CSS property. Computed
// style storage and the cascade dispatch table are both arrays indexed by
// PropertyID rather than maps keyed by property name, following the
// property-table design in original_source/libcss/include/libcss/properties.h
// (one fixed-width slot per property, looked up by id instead of by string).
type PropertyID uint16

// propertyNames is the canonical property -> PropertyID ordering. New
// properties are appended, never reordered or removed, so a PropertyID
// remains stable across a process's lifetime.
var propertyNames = []string{
	"display", "position", "float", "clear", "overflow", "overflow-x", "overflow-y",
	"visibility", "z-index", "box-sizing",
	"width", "height", "min-width", "min-height", "max-width", "max-height",
	"margin", "margin-top", "margin-right", "margin-bottom", "margin-left",
	"padding", "padding-top", "padding-right", "padding-bottom", "padding-left",
	"border", "border-width", "border-top-width", "border-right-width",
	"border-bottom-width", "border-left-width", "border-style", "border-top-style",
	"border-right-style", "border-bottom-style", "border-left-style", "border-color",
	"border-top-color", "border-right-color", "border-bottom-color", "border-left-color",
	"border-radius",
	"top", "right", "bottom", "left",
	"color", "font-family", "font-size", "font-style", "font-weight", "font-variant",
	"line-height", "letter-spacing", "word-spacing", "text-align", "text-decoration",
	"text-transform", "text-indent", "white-space", "vertical-align", "direction",
	"unicode-bidi",
	"background", "background-color", "background-image", "background-repeat",
	"background-position", "background-attachment", "background-size",
	"list-style", "list-style-type", "list-style-position", "list-style-image",
	"table-layout", "border-collapse", "border-spacing", "empty-cells", "caption-side",
	"flex-direction", "flex-wrap", "justify-content", "align-items", "align-content",
	"flex-grow", "flex-shrink", "flex-basis", "order", "align-self",
	"grid-template-columns", "grid-template-rows", "grid-column", "grid-row", "gap",
	"cursor", "opacity", "content", "quotes", "counter-reset", "outline",
}

// numProperties is the fixed width of a ComputedStyle's slot array.
var numProperties = len(propertyNames)

// propertyIDByName resolves a property name to its PropertyID. Built once
// from propertyNames at package init so every other lookup is an O(1) array
// index instead of a map walk.
var propertyIDByName = func() map[string]PropertyID {
	m := make(map[string]PropertyID, len(propertyNames))
	for i, name := range propertyNames {
		m[name] = PropertyID(i)
	}
	return m
}()

// lookupPropertyID returns the PropertyID for name and whether it is known.
func lookupPropertyID(name string) (PropertyID, bool) {
	id, ok := propertyIDByName[name]
	return id, ok
}

// PropertyDefaults contains default values for CSS properties, keyed by
// name for callers that look properties up by name (the package's tests
// among them). The cascade itself walks propertyTable by PropertyID.
var PropertyDefaults = func() map[string]PropertyDefault {
	m := make(map[string]PropertyDefault, len(propertyTable))
	for i, info := range propertyTable {
		m[propertyNames[i]] = PropertyDefault{InitialValue: info.InitialValue, Inherited: info.Inherited}
	}
	return m
}()

// PropertyDefault defines default values and inheritance for CSS properties.
type PropertyDefault struct {
	InitialValue string
	Inherited    bool
}

// propertyInfo is one row of the per-property cascade dispatch table:
// its initial value and whether it participates in inheritance.
type propertyInfo struct {
	InitialValue string
	Inherited    bool
}

// propertyTable is indexed by PropertyID, parallel to propertyNames.
var propertyTable = []propertyInfo{
	{"inline", false}, {"static", false}, {"none", false}, {"none", false}, {"visible", false},
	{"visible", false}, {"visible", false}, {"visible", true}, {"auto", false}, {"content-box", false},

	{"auto", false}, {"auto", false}, {"0", false}, {"0", false}, {"none", false}, {"none", false},

	{"0", false}, {"0", false}, {"0", false}, {"0", false}, {"0", false},

	{"0", false}, {"0", false}, {"0", false}, {"0", false}, {"0", false},

	{"none", false}, {"medium", false}, {"medium", false}, {"medium", false},
	{"medium", false}, {"medium", false}, {"none", false}, {"none", false},
	{"none", false}, {"none", false}, {"none", false}, {"currentcolor", false},
	{"currentcolor", false}, {"currentcolor", false}, {"currentcolor", false}, {"currentcolor", false},
	{"0", false},

	{"auto", false}, {"auto", false}, {"auto", false}, {"auto", false},

	{"black", true}, {"serif", true}, {"medium", true}, {"normal", true}, {"normal", true}, {"normal", true},
	{"normal", true}, {"normal", true}, {"normal", true}, {"start", true}, {"none", false},
	{"none", true}, {"0", true}, {"normal", true}, {"baseline", false}, {"ltr", true},
	{"normal", false},

	{"transparent", false}, {"transparent", false}, {"none", false}, {"repeat", false},
	{"0% 0%", false}, {"scroll", false}, {"auto", false},

	{"disc", true}, {"disc", true}, {"outside", true}, {"none", true},

	{"auto", false}, {"separate", true}, {"0", true}, {"show", true}, {"top", true},

	{"row", false}, {"nowrap", false}, {"flex-start", false}, {"stretch", false}, {"stretch", false},
	{"0", false}, {"1", false}, {"auto", false}, {"0", false}, {"auto", false},

	{"none", false}, {"none", false}, {"auto", false}, {"auto", false}, {"0", false},

	{"auto", true}, {"1", false}, {"normal", false}, {"auto", true}, {"none", false}, {"none", false},
}
