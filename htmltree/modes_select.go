package htmltree

func (b *TreeBuilder) modeInSelect(tok Token) bool {
	switch tok.Type {
	case TextToken:
		if tok.Data == "\x00" {
			return false
		}
		b.insertCharacters(tok.Data)
		return false
	case CommentToken:
		b.insertComment(tok.Data)
		return false
	case DoctypeToken:
		b.reportError(ErrUnexpectedDoctype)
		return false
	case EOFToken:
		return b.modeInBody(tok)
	case StartTagToken, SelfClosingTagToken:
		switch tok.TagName() {
		case "html":
			return b.modeInBody(tok)
		case "option":
			if localNameOf(b.currentNode()) == "option" {
				b.pop()
			}
			b.insertHTMLElement(tok)
			return false
		case "optgroup":
			if localNameOf(b.currentNode()) == "option" {
				b.pop()
			}
			if localNameOf(b.currentNode()) == "optgroup" {
				b.pop()
			}
			b.insertHTMLElement(tok)
			return false
		case "select":
			b.reportError(ErrUnexpectedStartTag)
			if b.hasElementInSelectScope("select") {
				b.popUntilNamed("select")
				b.resetInsertionMode()
			}
			return false
		case "input", "keygen", "textarea":
			b.reportError(ErrUnexpectedStartTag)
			if !b.hasElementInSelectScope("select") {
				return false
			}
			b.popUntilNamed("select")
			b.resetInsertionMode()
			return true
		case "script", "template":
			return b.modeInHead(tok)
		}
	case EndTagToken:
		switch tok.TagName() {
		case "optgroup":
			if localNameOf(b.currentNode()) == "option" && len(b.openElements) > 1 &&
				localNameOf(b.openElements[len(b.openElements)-2]) == "optgroup" {
				b.pop()
			}
			if localNameOf(b.currentNode()) == "optgroup" {
				b.pop()
			} else {
				b.reportError(ErrUnexpectedEndTag)
			}
			return false
		case "option":
			if localNameOf(b.currentNode()) == "option" {
				b.pop()
			} else {
				b.reportError(ErrUnexpectedEndTag)
			}
			return false
		case "select":
			if !b.hasElementInSelectScope("select") {
				b.reportError(ErrUnexpectedEndTag)
				return false
			}
			b.popUntilNamed("select")
			b.resetInsertionMode()
			return false
		case "template":
			return b.modeInHead(tok)
		}
	}
	b.reportError(ErrUnexpectedToken)
	return false
}

func (b *TreeBuilder) modeInSelectInTable(tok Token) bool {
	if tok.Type == StartTagToken {
		switch tok.TagName() {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			b.reportError(ErrUnexpectedStartTag)
			b.popUntilNamed("select")
			b.resetInsertionMode()
			return true
		}
	}
	if tok.Type == EndTagToken {
		switch tok.TagName() {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			b.reportError(ErrUnexpectedEndTag)
			if !b.hasElementInTableScope(tok.TagName()) {
				return false
			}
			b.popUntilNamed("select")
			b.resetInsertionMode()
			return true
		}
	}
	return b.modeInSelect(tok)
}
