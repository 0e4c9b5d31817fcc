package htmltree

import (
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/webcore-engine/webcore/dom"
)

// afEntry is one slot of the active formatting elements list: either a
// formatting element paired with the start-tag token that created it (so
// the adoption agency algorithm and reconstruction can recreate an
// equivalent element later), or a scope marker left by table/caption/object
// boundaries.
type afEntry struct {
	node   *dom.Node
	token  Token
	marker bool
}

// TreeBuilder drives the HTML tree construction algorithm (spec.md §4.3): it
// consumes tokens from a Tokenizer and turns them into mutations against a
// dom.Document, tracking the insertion mode, stack of open elements, and
// active formatting elements list the algorithm requires.
type TreeBuilder struct {
	doc *dom.Document
	tok *Tokenizer

	mode         InsertionMode
	originalMode InsertionMode

	openElements     []*dom.Node
	activeFormatting []afEntry

	headElement *dom.Node
	formElement *dom.Node

	scriptingEnabled bool
	framesetOK       bool
	fosterParenting  bool
	fragmentContext  *dom.Node

	pendingTableChars strings.Builder
	pendingTableNonWS bool

	logger     *zap.Logger
	onError    ErrorCallback
	errorCount int
	stopped    bool

	// pending holds tokens fed back into the driver before the
	// tokenizer is asked for the next one (used for whitespace/non-whitespace
	// splitting at mode boundaries, per spec.md §4.3).
	pending []Token
}

// Option configures a TreeBuilder.
type Option func(*TreeBuilder)

// WithLogger injects a *zap.Logger for parse-error and adoption-agency
// diagnostics. A nil logger (the default) is replaced with zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(b *TreeBuilder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithErrorCallback registers a callback invoked for every recorded parse
// error, in addition to the running counter ErrorCount exposes.
func WithErrorCallback(cb ErrorCallback) Option {
	return func(b *TreeBuilder) { b.onError = cb }
}

// WithScriptingEnabled controls whether <noscript> content is parsed as
// markup (scripting disabled, the default) or as a single text blob
// (scripting enabled), matching the HTML parsing spec's flag of the same
// name.
func WithScriptingEnabled(enabled bool) Option {
	return func(b *TreeBuilder) { b.scriptingEnabled = enabled }
}

// New creates a TreeBuilder that will build into doc, starting in the
// Initial insertion mode.
func New(doc *dom.Document, opts ...Option) *TreeBuilder {
	b := &TreeBuilder{
		doc:        doc,
		mode:       Initial,
		framesetOK: true,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Parse tokenizes r and builds the full document tree, returning the number
// of parse errors recorded. It never returns a non-nil error for malformed
// markup (spec.md §4.3/§7: parse errors are recoverable); only a nil
// Tokenizer or document misuse can make it fail to progress, and it instead
// simply produces the best-effort tree built so far.
func (b *TreeBuilder) Parse(r io.Reader) int {
	b.tok = NewTokenizer(r)
	b.run()
	return b.errorCount
}

// Document returns the document this builder writes into.
func (b *TreeBuilder) Document() *dom.Document {
	return b.doc
}

// ErrorCount returns the number of parse errors recorded so far.
func (b *TreeBuilder) ErrorCount() int {
	return b.errorCount
}

// Stop aborts parsing before the next token is processed (spec.md §5
// Cancellation). The tree built so far remains well-formed.
func (b *TreeBuilder) Stop() {
	b.stopped = true
}

func (b *TreeBuilder) run() {
	for !b.stopped {
		tok := b.nextToken()
		if !b.step(tok) {
			continue
		}
		// reprocess: dispatch the same token again under the (now updated) mode
		for !b.stopped && b.step(tok) {
		}
		if tok.Type == EOFToken {
			break
		}
		continue
	}
}

func (b *TreeBuilder) nextToken() Token {
	if len(b.pending) > 0 {
		t := b.pending[0]
		b.pending = b.pending[1:]
		return t
	}
	tok := b.tok.Next()
	if tok.Type == ErrorToken {
		if b.tok.AtEOF() {
			return Token{Type: EOFToken}
		}
		return b.nextToken()
	}
	return tok
}

// requeue pushes a token back to be redelivered before the tokenizer is
// consulted again, implementing the whitespace/non-whitespace character
// split at mode boundaries (spec.md §4.3).
func (b *TreeBuilder) requeue(tok Token) {
	b.pending = append([]Token{tok}, b.pending...)
}

// step dispatches tok to the current mode's handler, returning true if the
// same token must be reprocessed against the (possibly new) mode.
func (b *TreeBuilder) step(tok Token) bool {
	switch b.mode {
	case Initial:
		return b.modeInitial(tok)
	case BeforeHtml:
		return b.modeBeforeHtml(tok)
	case BeforeHead:
		return b.modeBeforeHead(tok)
	case InHead:
		return b.modeInHead(tok)
	case InHeadNoscript:
		return b.modeInHeadNoscript(tok)
	case AfterHead:
		return b.modeAfterHead(tok)
	case InBody:
		return b.modeInBody(tok)
	case Text:
		return b.modeText(tok)
	case InTable:
		return b.modeInTable(tok)
	case InTableText:
		return b.modeInTableText(tok)
	case InCaption:
		return b.modeInCaption(tok)
	case InColumnGroup:
		return b.modeInColumnGroup(tok)
	case InTableBody:
		return b.modeInTableBody(tok)
	case InRow:
		return b.modeInRow(tok)
	case InCell:
		return b.modeInCell(tok)
	case InSelect:
		return b.modeInSelect(tok)
	case InSelectInTable:
		return b.modeInSelectInTable(tok)
	case AfterBody:
		return b.modeAfterBody(tok)
	case InFrameset:
		return b.modeInFrameset(tok)
	case AfterFrameset:
		return b.modeAfterFrameset(tok)
	case AfterAfterBody:
		return b.modeAfterAfterBody(tok)
	case AfterAfterFrameset:
		return b.modeAfterAfterFrameset(tok)
	default:
		return false
	}
}

func (b *TreeBuilder) reportError(code ParseErrorCode) {
	b.errorCount++
	b.logger.Debug("html parse error", zap.String("mode", b.mode.String()), zap.String("code", code.String()))
	if b.onError != nil {
		b.onError(0, 0, code)
	}
}

// --- open elements stack ---

func (b *TreeBuilder) currentNode() *dom.Node {
	if len(b.openElements) == 0 {
		return nil
	}
	return b.openElements[len(b.openElements)-1]
}

func (b *TreeBuilder) push(n *dom.Node) {
	b.openElements = append(b.openElements, n)
}

func (b *TreeBuilder) pop() *dom.Node {
	if len(b.openElements) == 0 {
		return nil
	}
	n := b.openElements[len(b.openElements)-1]
	b.openElements = b.openElements[:len(b.openElements)-1]
	return n
}

func localNameOf(n *dom.Node) string {
	if n == nil || n.NodeType() != dom.ElementNode {
		return ""
	}
	return (*dom.Element)(n).LocalName()
}

func (b *TreeBuilder) popUntilNamed(names ...string) {
	for len(b.openElements) > 0 {
		top := b.pop()
		ln := localNameOf(top)
		for _, name := range names {
			if ln == name {
				return
			}
		}
	}
}

// hasOnStack reports whether an element with local name `name` is anywhere
// on the open elements stack.
func (b *TreeBuilder) hasOnStack(name string) bool {
	for _, n := range b.openElements {
		if localNameOf(n) == name {
			return true
		}
	}
	return false
}

var defaultScopeStoppers = map[string]bool{
	"applet": true, "caption": true, "html": true, "table": true,
	"td": true, "th": true, "marquee": true, "object": true, "template": true,
}

// hasElementInScope implements the generic in_scope(name, scopeSet)
// predicate: walk the stack top-down until name is found (return true) or a
// stopper in the given scope set is reached (return false).
func (b *TreeBuilder) hasElementInScope(name string, extraStoppers map[string]bool) bool {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		ln := localNameOf(b.openElements[i])
		if ln == name {
			return true
		}
		if defaultScopeStoppers[ln] || (extraStoppers != nil && extraStoppers[ln]) {
			return false
		}
	}
	return false
}

func (b *TreeBuilder) hasElementInButtonScope(name string) bool {
	return b.hasElementInScope(name, map[string]bool{"button": true})
}

func (b *TreeBuilder) hasElementInListItemScope(name string) bool {
	return b.hasElementInScope(name, map[string]bool{"ol": true, "ul": true})
}

var tableScopeStoppers = map[string]bool{"html": true, "table": true, "template": true}

func (b *TreeBuilder) hasElementInTableScope(name string) bool {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		ln := localNameOf(b.openElements[i])
		if ln == name {
			return true
		}
		if tableScopeStoppers[ln] {
			return false
		}
	}
	return false
}

var selectScopeAllowed = map[string]bool{"optgroup": true, "option": true}

func (b *TreeBuilder) hasElementInSelectScope(name string) bool {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		ln := localNameOf(b.openElements[i])
		if ln == name {
			return true
		}
		if !selectScopeAllowed[ln] {
			return false
		}
	}
	return false
}

var impliedEndTags = map[string]bool{
	"dd": true, "dt": true, "li": true, "optgroup": true, "option": true,
	"p": true, "rb": true, "rp": true, "rt": true, "rtc": true,
}

// generateImpliedEndTags pops elements off the stack whose local name is in
// the implied-end-tags set, skipping (not popping) one occurrence of
// `exclude` if given.
func (b *TreeBuilder) generateImpliedEndTags(exclude string) {
	for len(b.openElements) > 0 {
		ln := localNameOf(b.currentNode())
		if ln == exclude || !impliedEndTags[ln] {
			return
		}
		b.pop()
	}
}

// --- insertion location & element creation ---

// namespaceForContext returns the namespace new elements are created in,
// based on the current node (HTML unless inside a foreign-content subtree —
// SVG/MathML foreign content is not implemented, see DESIGN.md).
func (b *TreeBuilder) namespaceForContext() string {
	return dom.HTMLNamespace
}

// adjustedInsertionLocation returns the (parent, beforeSibling) pair new
// nodes should be inserted at, honoring table foster parenting (spec.md
// §4.3 Stack operations / Push): when fosterParenting is set and the
// current node is a table/tbody/tfoot/thead/tr, the true insertion point is
// immediately before the nearest table ancestor (or at the end of its
// parent if the table has no parent), not inside the table itself.
func (b *TreeBuilder) adjustedInsertionLocation() (*dom.Node, *dom.Node) {
	target := b.currentNode()
	if !b.fosterParenting || target == nil {
		return target, nil
	}
	ln := localNameOf(target)
	if ln != "table" && ln != "tbody" && ln != "tfoot" && ln != "thead" && ln != "tr" {
		return target, nil
	}
	var lastTemplate, lastTable *dom.Node
	lastTemplateIdx, lastTableIdx := -1, -1
	for i := len(b.openElements) - 1; i >= 0; i-- {
		ln := localNameOf(b.openElements[i])
		if ln == "template" && lastTemplate == nil {
			lastTemplate = b.openElements[i]
			lastTemplateIdx = i
		}
		if ln == "table" && lastTable == nil {
			lastTable = b.openElements[i]
			lastTableIdx = i
		}
	}
	if lastTemplate != nil && (lastTable == nil || lastTemplateIdx > lastTableIdx) {
		return (*dom.Element)(lastTemplate).TemplateContent().AsNode(), nil
	}
	if lastTable == nil {
		return b.openElements[0], nil
	}
	if parent := lastTable.ParentNode(); parent != nil {
		return parent, lastTable
	}
	if lastTableIdx > 0 {
		return b.openElements[lastTableIdx-1], nil
	}
	return lastTable, nil
}

func (b *TreeBuilder) insertNode(n *dom.Node) {
	parent, before := b.adjustedInsertionLocation()
	if parent == nil {
		return
	}
	if before != nil {
		parent.InsertBefore(n, before)
	} else {
		parent.AppendChild(n)
	}
}

// createElement allocates an element for tok without inserting it.
func (b *TreeBuilder) createElement(tok Token) *dom.Node {
	el := b.doc.CreateElementNS(b.namespaceForContext(), tok.TagName())
	for _, a := range tok.Attr {
		if el.HasAttribute(a.Key) {
			b.reportError(ErrDuplicateAttribute)
			continue
		}
		el.SetAttribute(a.Key, a.Value)
	}
	return el.AsNode()
}

// insertHTMLElement creates an element for tok, inserts it at the current
// adjusted insertion location, and pushes it onto the open elements stack.
func (b *TreeBuilder) insertHTMLElement(tok Token) *dom.Node {
	n := b.createElement(tok)
	b.insertNode(n)
	b.push(n)
	return n
}

// insertCharacters appends data to the current insertion point, coalescing
// into the existing trailing Text node when the document already has one
// there (spec.md §4.3 "Character insertion coalesces adjacent character
// tokens").
func (b *TreeBuilder) insertCharacters(data string) {
	if data == "" {
		return
	}
	parent, before := b.adjustedInsertionLocation()
	if parent == nil {
		return
	}
	var prev *dom.Node
	if before != nil {
		prev = before.PreviousSibling()
	} else {
		prev = parent.LastChild()
	}
	if prev != nil && prev.NodeType() == dom.TextNode {
		prev.SetNodeValue(prev.NodeValue() + data)
		return
	}
	text := b.doc.CreateTextNode(data)
	if before != nil {
		parent.InsertBefore(text, before)
	} else {
		parent.AppendChild(text)
	}
}

func (b *TreeBuilder) insertComment(data string) {
	parent, before := b.adjustedInsertionLocation()
	if parent == nil {
		return
	}
	c := b.doc.CreateComment(data)
	if before != nil {
		parent.InsertBefore(c, before)
	} else {
		parent.AppendChild(c)
	}
}

// --- active formatting elements list ---

const maxActiveFormattingPerTag = 3

// pushActiveFormatting appends n (created from tok) to the active
// formatting list, enforcing the Noah's Ark clause: at most three
// equivalent (same tag, same attributes) entries between the end and the
// last marker.
func (b *TreeBuilder) pushActiveFormatting(n *dom.Node, tok Token) {
	matches := 0
	firstMatch := -1
	for i := len(b.activeFormatting) - 1; i >= 0; i-- {
		e := b.activeFormatting[i]
		if e.marker {
			break
		}
		if sameFormattingElement(e.token, tok) {
			matches++
			firstMatch = i
		}
	}
	if matches >= maxActiveFormattingPerTag && firstMatch >= 0 {
		b.activeFormatting = append(b.activeFormatting[:firstMatch], b.activeFormatting[firstMatch+1:]...)
	}
	b.activeFormatting = append(b.activeFormatting, afEntry{node: n, token: tok})
}

func sameFormattingElement(a, b Token) bool {
	if a.TagName() != b.TagName() || len(a.Attr) != len(b.Attr) {
		return false
	}
	for _, av := range a.Attr {
		found := false
		for _, bv := range b.Attr {
			if av.Key == bv.Key && av.Value == bv.Value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (b *TreeBuilder) insertMarker() {
	b.activeFormatting = append(b.activeFormatting, afEntry{marker: true})
}

func (b *TreeBuilder) clearActiveFormattingToMarker() {
	for len(b.activeFormatting) > 0 {
		e := b.activeFormatting[len(b.activeFormatting)-1]
		b.activeFormatting = b.activeFormatting[:len(b.activeFormatting)-1]
		if e.marker {
			return
		}
	}
}

func (b *TreeBuilder) removeFromActiveFormatting(n *dom.Node) {
	for i, e := range b.activeFormatting {
		if e.node == n {
			b.activeFormatting = append(b.activeFormatting[:i], b.activeFormatting[i+1:]...)
			return
		}
	}
}

func (b *TreeBuilder) removeFromOpenElements(n *dom.Node) {
	for i, e := range b.openElements {
		if e == n {
			b.openElements = append(b.openElements[:i], b.openElements[i+1:]...)
			return
		}
	}
}

// reconstructActiveFormattingElements re-creates, as live elements on the
// stack and in the tree, any active formatting entries that have no
// corresponding open element (because a misnested end tag popped them),
// per the HTML5 reconstruction algorithm.
func (b *TreeBuilder) reconstructActiveFormattingElements() {
	if len(b.activeFormatting) == 0 {
		return
	}
	last := len(b.activeFormatting) - 1
	entry := b.activeFormatting[last]
	if entry.marker || b.isOnOpenElements(entry.node) {
		return
	}
	i := last
	for i > 0 {
		i--
		entry = b.activeFormatting[i]
		if entry.marker || b.isOnOpenElements(entry.node) {
			i++
			break
		}
	}
	for ; i <= last; i++ {
		entry := b.activeFormatting[i]
		clone := b.cloneFormattingElement(entry.node)
		b.insertNode(clone)
		b.push(clone)
		b.activeFormatting[i] = afEntry{node: clone, token: entry.token}
	}
}

func (b *TreeBuilder) isOnOpenElements(n *dom.Node) bool {
	for _, e := range b.openElements {
		if e == n {
			return true
		}
	}
	return false
}

func (b *TreeBuilder) cloneFormattingElement(n *dom.Node) *dom.Node {
	el := (*dom.Element)(n).CloneNode(false)
	return el.AsNode()
}
