package htmltree

import "github.com/webcore-engine/webcore/dom"

var headingTags = map[string]bool{"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true}

var formattingTags = map[string]bool{
	"a": true, "b": true, "big": true, "code": true, "em": true, "font": true,
	"i": true, "nobr": true, "s": true, "small": true, "strike": true,
	"strong": true, "tt": true, "u": true,
}

var closeParagraphContainers = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"center": true, "details": true, "dialog": true, "dir": true, "div": true,
	"dl": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "header": true, "hgroup": true, "main": true, "menu": true,
	"nav": true, "ol": true, "section": true, "summary": true, "ul": true,
}

// pStartTagCloses is closeParagraphContainers plus "p" itself: a start tag
// for any of these closes an open p element in button scope first. It is
// kept separate from closeParagraphContainers because the end-tag group
// excludes p (which gets its own close-and-resynthesize handling below).
var pStartTagCloses = map[string]bool{}

// endTagClosesContainer is the end-tag counterpart of closeParagraphContainers,
// covering the plain "generate implied end tags, pop until name" containers
// that don't need p/li/dd/dt's extra resynthesis logic.
var endTagClosesContainer = map[string]bool{}

func init() {
	for k := range closeParagraphContainers {
		pStartTagCloses[k] = true
		endTagClosesContainer[k] = true
	}
	pStartTagCloses["p"] = true
	endTagClosesContainer["button"] = true
	endTagClosesContainer["listing"] = true
	endTagClosesContainer["pre"] = true
}

var specialCategory = map[string]bool{
	"address": true, "applet": true, "area": true, "article": true, "aside": true,
	"base": true, "basefont": true, "bgsound": true, "blockquote": true, "body": true,
	"br": true, "button": true, "caption": true, "center": true, "col": true,
	"colgroup": true, "dd": true, "details": true, "dir": true, "div": true, "dl": true,
	"dt": true, "embed": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "frame": true, "frameset": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "head": true, "header": true,
	"hgroup": true, "hr": true, "html": true, "iframe": true, "img": true, "input": true,
	"li": true, "link": true, "listing": true, "main": true, "marquee": true, "menu": true,
	"meta": true, "nav": true, "noembed": true, "noframes": true, "noscript": true,
	"object": true, "ol": true, "p": true, "param": true, "plaintext": true, "pre": true,
	"script": true, "section": true, "select": true, "source": true, "style": true,
	"summary": true, "table": true, "tbody": true, "td": true, "template": true,
	"textarea": true, "tfoot": true, "th": true, "thead": true, "title": true, "tr": true,
	"track": true, "ul": true, "wbr": true, "xmp": true,
}

// closePElement implements the "close a p element" steps: generate implied
// end tags except p, then pop until a p has been popped.
func (b *TreeBuilder) closePElement() {
	b.generateImpliedEndTags("p")
	if localNameOf(b.currentNode()) != "p" {
		b.reportError(ErrMisnestedTag)
	}
	b.popUntilNamed("p")
}

func (b *TreeBuilder) modeInBody(tok Token) bool {
	switch tok.Type {
	case TextToken:
		if tok.Data == "\x00" {
			return false
		}
		b.reconstructActiveFormattingElements()
		b.insertCharacters(tok.Data)
		if !isWhitespace(tok.Data) {
			b.framesetOK = false
		}
		return false
	case CommentToken:
		b.insertComment(tok.Data)
		return false
	case DoctypeToken:
		b.reportError(ErrUnexpectedDoctype)
		return false
	case EOFToken:
		b.reportError(ErrEOFInBody)
		b.stopped = true
		return false
	case StartTagToken, SelfClosingTagToken:
		return b.inBodyStartTag(tok)
	case EndTagToken:
		return b.inBodyEndTag(tok)
	}
	return false
}

func (b *TreeBuilder) inBodyStartTag(tok Token) bool {
	name := tok.TagName()
	switch {
	case name == "html":
		b.reportError(ErrUnexpectedStartTag)
		return false
	case name == "base" || name == "basefont" || name == "bgsound" || name == "link" ||
		name == "meta" || name == "noframes" || name == "script" || name == "style" ||
		name == "template" || name == "title":
		return b.modeInHead(tok)
	case name == "body":
		b.reportError(ErrUnexpectedStartTag)
		return false
	case name == "frameset":
		b.reportError(ErrUnexpectedStartTag)
		return false
	case pStartTagCloses[name]:
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(tok)
		return false
	case headingTags[name]:
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		if headingTags[localNameOf(b.currentNode())] {
			b.pop()
		}
		b.insertHTMLElement(tok)
		return false
	case name == "pre" || name == "listing":
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(tok)
		b.framesetOK = false
		return false
	case name == "form":
		if b.formElement != nil && !b.hasOnStack("template") {
			b.reportError(ErrUnexpectedStartTag)
			return false
		}
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		n := b.insertHTMLElement(tok)
		if !b.hasOnStack("template") {
			b.formElement = n
		}
		return false
	case name == "li":
		b.framesetOK = false
		for i := len(b.openElements) - 1; i >= 0; i-- {
			ln := localNameOf(b.openElements[i])
			if ln == "li" {
				b.generateImpliedEndTags("li")
				b.popUntilNamed("li")
				break
			}
			if specialCategory[ln] && ln != "address" && ln != "div" && ln != "p" {
				break
			}
		}
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(tok)
		return false
	case name == "dd" || name == "dt":
		b.framesetOK = false
		for i := len(b.openElements) - 1; i >= 0; i-- {
			ln := localNameOf(b.openElements[i])
			if ln == "dd" || ln == "dt" {
				b.generateImpliedEndTags(ln)
				b.popUntilNamed(ln)
				break
			}
			if specialCategory[ln] && ln != "address" && ln != "div" && ln != "p" {
				break
			}
		}
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(tok)
		return false
	case name == "button":
		if b.hasElementInScope("button", nil) {
			b.generateImpliedEndTags("")
			b.popUntilNamed("button")
		}
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(tok)
		b.framesetOK = false
		return false
	case name == "a":
		for i := len(b.activeFormatting) - 1; i >= 0; i-- {
			e := b.activeFormatting[i]
			if e.marker {
				break
			}
			if e.token.TagName() == "a" {
				b.runAdoptionAgency("a")
				b.removeFromActiveFormatting(e.node)
				b.removeFromOpenElements(e.node)
				break
			}
		}
		b.reconstructActiveFormattingElements()
		n := b.insertHTMLElement(tok)
		b.pushActiveFormatting(n, tok)
		return false
	case formattingTags[name]:
		b.reconstructActiveFormattingElements()
		n := b.insertHTMLElement(tok)
		b.pushActiveFormatting(n, tok)
		return false
	case name == "applet" || name == "marquee" || name == "object":
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(tok)
		b.insertMarker()
		b.framesetOK = false
		return false
	case name == "table":
		if b.doc.Mode() != dom.QuirksMode && b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(tok)
		b.framesetOK = false
		b.mode = InTable
		return false
	case name == "area" || name == "br" || name == "embed" || name == "img" ||
		name == "keygen" || name == "wbr":
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(tok)
		b.pop()
		b.framesetOK = false
		return false
	case name == "input":
		b.reconstructActiveFormattingElements()
		n := b.insertHTMLElement(tok)
		b.pop()
		if v, _ := tok.Attrib("type"); !equalFoldASCII(v, "hidden") {
			b.framesetOK = false
		}
		_ = n
		return false
	case name == "param" || name == "source" || name == "track":
		b.insertHTMLElement(tok)
		b.pop()
		return false
	case name == "hr":
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		b.insertHTMLElement(tok)
		b.pop()
		b.framesetOK = false
		return false
	case name == "image":
		tok.Data = "img"
		return b.inBodyStartTag(tok)
	case name == "textarea":
		b.insertHTMLElement(tok)
		b.originalMode = InBody
		b.mode = Text
		b.framesetOK = false
		return false
	case name == "xmp":
		if b.hasElementInButtonScope("p") {
			b.closePElement()
		}
		b.reconstructActiveFormattingElements()
		b.framesetOK = false
		b.insertHTMLElement(tok)
		b.originalMode = InBody
		b.mode = Text
		return false
	case name == "iframe":
		b.framesetOK = false
		b.insertHTMLElement(tok)
		b.originalMode = InBody
		b.mode = Text
		return false
	case name == "noembed":
		b.insertHTMLElement(tok)
		b.originalMode = InBody
		b.mode = Text
		return false
	case name == "select":
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(tok)
		b.framesetOK = false
		switch b.mode {
		case InTable, InCaption, InTableBody, InRow, InCell:
			b.mode = InSelectInTable
		default:
			b.mode = InSelect
		}
		return false
	case name == "optgroup" || name == "option":
		if localNameOf(b.currentNode()) == "option" {
			b.pop()
		}
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(tok)
		return false
	case name == "rb" || name == "rtc":
		if b.hasElementInScope("ruby", nil) {
			b.generateImpliedEndTags("")
		}
		b.insertHTMLElement(tok)
		return false
	case name == "rp" || name == "rt":
		if b.hasElementInScope("ruby", nil) {
			b.generateImpliedEndTags("rtc")
		}
		b.insertHTMLElement(tok)
		return false
	case name == "caption" || name == "col" || name == "colgroup" || name == "frame" ||
		name == "head" || name == "tbody" || name == "td" || name == "tfoot" ||
		name == "th" || name == "thead" || name == "tr":
		b.reportError(ErrUnexpectedStartTag)
		return false
	default:
		b.reconstructActiveFormattingElements()
		b.insertHTMLElement(tok)
		return false
	}
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func (b *TreeBuilder) inBodyEndTag(tok Token) bool {
	name := tok.TagName()
	switch {
	case name == "template":
		return b.modeInHead(tok)
	case name == "body":
		if !b.hasElementInScope("body", nil) {
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
		b.mode = AfterBody
		return false
	case name == "html":
		if !b.hasElementInScope("body", nil) {
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
		b.mode = AfterBody
		return true
	case endTagClosesContainer[name]:
		if !b.hasElementInScope(name, nil) {
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
		b.generateImpliedEndTags("")
		b.popUntilNamed(name)
		return false
	case name == "form":
		if b.hasOnStack("template") {
			if !b.hasElementInScope("form", nil) {
				b.reportError(ErrUnexpectedEndTag)
				return false
			}
			b.generateImpliedEndTags("")
			b.popUntilNamed("form")
			return false
		}
		node := b.formElement
		b.formElement = nil
		if node == nil || !b.isOnOpenElements(node) {
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
		b.generateImpliedEndTags("")
		if b.currentNode() != node {
			b.reportError(ErrMisnestedTag)
		}
		b.removeFromOpenElements(node)
		return false
	case name == "p":
		if !b.hasElementInButtonScope("p") {
			b.reportError(ErrUnexpectedEndTag)
			b.insertHTMLElement(Token{Type: StartTagToken, Data: "p"})
		}
		b.closePElement()
		return false
	case name == "li":
		if !b.hasElementInListItemScope("li") {
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
		b.generateImpliedEndTags("li")
		b.popUntilNamed("li")
		return false
	case name == "dd" || name == "dt":
		if !b.hasElementInScope(name, nil) {
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
		b.generateImpliedEndTags(name)
		b.popUntilNamed(name)
		return false
	case headingTags[name]:
		if !b.hasElementInScope("h1", nil) && !b.hasElementInScope("h2", nil) &&
			!b.hasElementInScope("h3", nil) && !b.hasElementInScope("h4", nil) &&
			!b.hasElementInScope("h5", nil) && !b.hasElementInScope("h6", nil) {
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
		b.generateImpliedEndTags("")
		b.popUntilNamed("h1", "h2", "h3", "h4", "h5", "h6")
		return false
	case name == "a" || formattingTags[name]:
		b.runAdoptionAgency(name)
		return false
	case name == "applet" || name == "marquee" || name == "object":
		if !b.hasElementInScope(name, nil) {
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
		b.generateImpliedEndTags("")
		b.popUntilNamed(name)
		b.clearActiveFormattingToMarker()
		return false
	case name == "br":
		b.reportError(ErrUnexpectedEndTag)
		b.reconstructActiveFormattingElements()
		n := b.createElement(Token{Type: StartTagToken, Data: "br"})
		b.insertNode(n)
		b.push(n)
		b.pop()
		b.framesetOK = false
		return false
	default:
		for i := len(b.openElements) - 1; i >= 0; i-- {
			node := b.openElements[i]
			ln := localNameOf(node)
			if ln == name {
				b.generateImpliedEndTags(name)
				for len(b.openElements)-1 >= i {
					b.pop()
				}
				return false
			}
			if specialCategory[ln] {
				b.reportError(ErrUnexpectedEndTag)
				return false
			}
		}
		return false
	}
}

// modeText implements the Text insertion mode used for raw-text/
// escapable-raw-text elements (script, style, title, textarea, …): accept
// characters verbatim, and on either EOF or the matching end tag, pop back
// to originalMode.
func (b *TreeBuilder) modeText(tok Token) bool {
	switch tok.Type {
	case TextToken:
		b.insertCharacters(tok.Data)
		return false
	case EOFToken:
		b.reportError(ErrEOFInTag)
		b.pop()
		b.mode = b.originalMode
		return true
	case EndTagToken:
		b.pop()
		b.mode = b.originalMode
		return false
	}
	return false
}
