package css

// SelectCtx holds an ordered set of stylesheets together with a
// hash-bucketed index of their rules, so Select only runs the full matching
// engine (matcher.go) against rules that could plausibly apply to a node
// instead of every rule in every sheet. Modeled on css_select_ctx in
// original_source/libcss/include/libcss/select.h, which holds the
// stylesheet list the selection engine consults; the bucket index itself
// mirrors libcss's rule hashing by selector key (selector.c's per-type
// hash chains) rather than a linear rule scan.
type SelectCtx struct {
	sheets []*indexedSheet
}

// indexedSheet is one stylesheet's rules, pre-parsed once (not re-parsed on
// every match attempt) and bucketed by the rightmost compound's most
// selective simple selector.
type indexedSheet struct {
	sheet  *Stylesheet
	origin CascadeOrigin

	rules []indexedRule

	byID      map[string][]int
	byClass   map[string][]int
	byType    map[string][]int
	universal []int // rules whose rightmost compound has no id/class/type key
}

// indexedRule is a Rule alongside its selector, parsed once at
// AppendSheet time.
type indexedRule struct {
	rule     *Rule
	selector *CSSSelector
}

// NewSelectCtx creates an empty selection context.
func NewSelectCtx() *SelectCtx {
	return &SelectCtx{}
}

// AppendSheet adds sheet to the end of the context's stylesheet list,
// parsing and bucketing every rule's selector once.
func (ctx *SelectCtx) AppendSheet(sheet *Stylesheet, origin CascadeOrigin) {
	ctx.sheets = append(ctx.sheets, indexSheet(sheet, origin))
}

// CountSheets returns the number of stylesheets held by the context.
func (ctx *SelectCtx) CountSheets() int {
	return len(ctx.sheets)
}

func indexSheet(sheet *Stylesheet, origin CascadeOrigin) *indexedSheet {
	idx := &indexedSheet{
		sheet:   sheet,
		origin:  origin,
		byID:    make(map[string][]int),
		byClass: make(map[string][]int),
		byType:  make(map[string][]int),
	}

	for i := range sheet.Rules {
		rule := &sheet.Rules[i]
		sel, err := ParseSelector(rule.SelectorText)
		if err != nil || sel == nil {
			continue
		}

		ruleIdx := len(idx.rules)
		idx.rules = append(idx.rules, indexedRule{rule: rule, selector: sel})

		bucketed := false
		for _, cs := range sel.ComplexSelectors {
			if len(cs.Compounds) == 0 {
				continue
			}
			subject := cs.Compounds[len(cs.Compounds)-1]

			switch {
			case len(subject.IDSelectors) > 0:
				for _, id := range subject.IDSelectors {
					idx.byID[id] = append(idx.byID[id], ruleIdx)
				}
				bucketed = true
			case len(subject.ClassSelectors) > 0:
				for _, class := range subject.ClassSelectors {
					idx.byClass[class] = append(idx.byClass[class], ruleIdx)
				}
				bucketed = true
			case subject.TypeSelector != nil && subject.TypeSelector.Name != "*":
				idx.byType[subject.TypeSelector.Name] = append(idx.byType[subject.TypeSelector.Name], ruleIdx)
				bucketed = true
			}
		}
		if !bucketed {
			idx.universal = append(idx.universal, ruleIdx)
		}
	}

	return idx
}

// candidates returns the indices of rules in idx that could possibly match
// n, deduplicated, without running the full matching engine.
func (idx *indexedSheet) candidates(h SelectHandler, n Node) []int {
	seen := make(map[int]bool)
	var result []int

	add := func(indices []int) {
		for _, i := range indices {
			if !seen[i] {
				seen[i] = true
				result = append(result, i)
			}
		}
	}

	if id := h.NodeID(n); id != "" {
		add(idx.byID[id])
	}
	for _, class := range h.NodeClassList(n) {
		add(idx.byClass[class])
	}
	add(idx.byType[h.NodeName(n)])
	add(idx.universal)

	return result
}

// Select returns every MatchedRule in ctx whose selector matches n,
// checking only the candidates each sheet's index surfaces.
func (ctx *SelectCtx) Select(h SelectHandler, n Node) []MatchedRule {
	var matched []MatchedRule
	base := 0 // rules in earlier sheets, so Order is source order across sheets

	for _, idx := range ctx.sheets {
		for _, i := range idx.candidates(h, n) {
			ir := idx.rules[i]
			for _, cs := range ir.selector.ComplexSelectors {
				if !cs.MatchWithContext(h, n, nil) {
					continue
				}
				for _, decl := range ir.rule.Declarations {
					matched = append(matched, MatchedRule{
						Rule:        ir.rule,
						Selector:    cs,
						Origin:      idx.origin,
						Important:   decl.Important,
						Specificity: cs.CalculateSpecificity(),
						Order:       base + i,
					})
				}
				break
			}
		}
		base += len(idx.rules)
	}

	return matched
}
