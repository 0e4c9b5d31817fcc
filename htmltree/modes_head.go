package htmltree

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

func (b *TreeBuilder) modeInHead(tok Token) bool {
	switch tok.Type {
	case TextToken:
		ws, rest := splitLeadingWhitespace(tok.Data)
		if ws != "" {
			b.insertCharacters(ws)
		}
		if rest == "" {
			return false
		}
		tok.Data = rest
	case CommentToken:
		b.insertComment(tok.Data)
		return false
	case DoctypeToken:
		b.reportError(ErrUnexpectedDoctype)
		return false
	case StartTagToken, SelfClosingTagToken:
		switch tok.TagName() {
		case "html":
			return b.modeInBody(tok)
		case "base", "basefont", "bgsound", "link", "meta":
			b.insertHTMLElement(tok)
			b.pop()
			return false
		case "title":
			b.insertHTMLElement(tok)
			b.originalMode = b.mode
			b.mode = Text
			return false
		case "noscript":
			if !b.scriptingEnabled {
				b.insertHTMLElement(tok)
				b.mode = InHeadNoscript
				return false
			}
			b.insertHTMLElement(tok)
			b.originalMode = b.mode
			b.mode = Text
			return false
		case "noframes", "style":
			b.insertHTMLElement(tok)
			b.originalMode = b.mode
			b.mode = Text
			return false
		case "script":
			n := b.insertHTMLElement(tok)
			_ = n
			b.originalMode = b.mode
			b.mode = Text
			return false
		case "template":
			b.insertHTMLElement(tok)
			b.insertMarker()
			b.framesetOK = false
			// No dedicated InTemplate mode stack is maintained (see
			// DESIGN.md); staying in InHead lets subsequent head-level
			// tokens nest correctly inside the template's content, and
			// the matching end tag below pops back out to AfterHead.
			return false
		case "head":
			b.reportError(ErrUnexpectedStartTag)
			return false
		}
	case EndTagToken:
		switch tok.TagName() {
		case "head":
			b.pop()
			b.mode = AfterHead
			return false
		case "body", "html", "br":
		case "template":
			b.popUntilNamed("template")
			b.clearActiveFormattingToMarker()
			b.mode = AfterHead
			return false
		default:
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
	}
	b.pop()
	b.mode = AfterHead
	return true
}

func (b *TreeBuilder) modeInHeadNoscript(tok Token) bool {
	switch tok.Type {
	case DoctypeToken:
		b.reportError(ErrUnexpectedDoctype)
		return false
	case StartTagToken, SelfClosingTagToken:
		switch tok.TagName() {
		case "html":
			return b.modeInBody(tok)
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			return b.modeInHead(tok)
		case "head", "noscript":
			b.reportError(ErrUnexpectedStartTag)
			return false
		}
	case EndTagToken:
		switch tok.TagName() {
		case "noscript":
			b.pop()
			b.mode = InHead
			return false
		case "br":
		default:
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
	case TextToken:
		if isWhitespace(tok.Data) {
			return b.modeInHead(tok)
		}
	case CommentToken:
		return b.modeInHead(tok)
	}
	b.reportError(ErrUnexpectedToken)
	b.pop()
	b.mode = InHead
	return true
}

func (b *TreeBuilder) modeAfterHead(tok Token) bool {
	switch tok.Type {
	case TextToken:
		ws, rest := splitLeadingWhitespace(tok.Data)
		if ws != "" {
			b.insertCharacters(ws)
		}
		if rest == "" {
			return false
		}
		tok.Data = rest
	case CommentToken:
		b.insertComment(tok.Data)
		return false
	case DoctypeToken:
		b.reportError(ErrUnexpectedDoctype)
		return false
	case StartTagToken, SelfClosingTagToken:
		switch tok.TagName() {
		case "html":
			return b.modeInBody(tok)
		case "body":
			n := b.insertHTMLElement(tok)
			_ = n
			b.framesetOK = false
			b.mode = InBody
			return false
		case "frameset":
			b.insertHTMLElement(tok)
			b.mode = InFrameset
			return false
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script",
			"style", "template", "title":
			b.reportError(ErrUnexpectedStartTag)
			if b.headElement != nil {
				b.push(b.headElement)
			}
			b.modeInHead(tok)
			b.removeFromOpenElements(b.headElement)
			return false
		case "head":
			b.reportError(ErrUnexpectedStartTag)
			return false
		}
	case EndTagToken:
		switch tok.TagName() {
		case "template":
			return b.modeInHead(tok)
		case "body", "html", "br":
		default:
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
	}
	n := b.insertHTMLElement(Token{Type: StartTagToken, Data: "body"})
	_ = n
	b.mode = InBody
	return true
}
