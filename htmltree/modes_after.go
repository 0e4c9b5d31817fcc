package htmltree

func (b *TreeBuilder) modeAfterBody(tok Token) bool {
	switch tok.Type {
	case TextToken:
		if isWhitespace(tok.Data) {
			return b.modeInBody(tok)
		}
	case CommentToken:
		if len(b.openElements) > 0 {
			html := b.openElements[0]
			c := b.doc.CreateComment(tok.Data)
			html.AppendChild(c)
		}
		return false
	case DoctypeToken:
		b.reportError(ErrUnexpectedDoctype)
		return false
	case StartTagToken, SelfClosingTagToken:
		if tok.TagName() == "html" {
			return b.modeInBody(tok)
		}
	case EndTagToken:
		if tok.TagName() == "html" {
			b.mode = AfterAfterBody
			return false
		}
	case EOFToken:
		b.stopped = true
		return false
	}
	b.reportError(ErrUnexpectedToken)
	b.mode = InBody
	return true
}

func (b *TreeBuilder) modeInFrameset(tok Token) bool {
	switch tok.Type {
	case TextToken:
		if isWhitespace(tok.Data) {
			b.insertCharacters(tok.Data)
		}
		return false
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
		case "frameset":
			b.insertHTMLElement(tok)
			return false
		case "frame":
			b.insertHTMLElement(tok)
			b.pop()
			return false
		case "noframes":
			return b.modeInHead(tok)
		}
	case EndTagToken:
		if tok.TagName() == "frameset" {
			if len(b.openElements) > 1 {
				b.pop()
			}
			if len(b.openElements) > 0 && localNameOf(b.currentNode()) != "frameset" {
				b.mode = AfterFrameset
			}
			return false
		}
	case EOFToken:
		b.stopped = true
		return false
	}
	b.reportError(ErrUnexpectedToken)
	return false
}

func (b *TreeBuilder) modeAfterFrameset(tok Token) bool {
	switch tok.Type {
	case TextToken:
		if isWhitespace(tok.Data) {
			b.insertCharacters(tok.Data)
		}
		return false
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
		case "noframes":
			return b.modeInHead(tok)
		}
	case EndTagToken:
		if tok.TagName() == "html" {
			b.mode = AfterAfterFrameset
			return false
		}
	case EOFToken:
		b.stopped = true
		return false
	}
	b.reportError(ErrUnexpectedToken)
	return false
}

func (b *TreeBuilder) modeAfterAfterBody(tok Token) bool {
	switch tok.Type {
	case CommentToken:
		c := b.doc.CreateComment(tok.Data)
		b.doc.AsNode().AppendChild(c)
		return false
	case DoctypeToken:
		return b.modeInBody(tok)
	case TextToken:
		if isWhitespace(tok.Data) {
			return b.modeInBody(tok)
		}
	case StartTagToken, SelfClosingTagToken:
		if tok.TagName() == "html" {
			return b.modeInBody(tok)
		}
	case EOFToken:
		b.stopped = true
		return false
	}
	b.reportError(ErrUnexpectedToken)
	b.mode = InBody
	return true
}

func (b *TreeBuilder) modeAfterAfterFrameset(tok Token) bool {
	switch tok.Type {
	case CommentToken:
		c := b.doc.CreateComment(tok.Data)
		b.doc.AsNode().AppendChild(c)
		return false
	case DoctypeToken:
		return b.modeInBody(tok)
	case TextToken:
		if isWhitespace(tok.Data) {
			return b.modeInBody(tok)
		}
	case StartTagToken, SelfClosingTagToken:
		switch tok.TagName() {
		case "html":
			return b.modeInBody(tok)
		case "noframes":
			return b.modeInHead(tok)
		}
	case EOFToken:
		b.stopped = true
		return false
	}
	b.reportError(ErrUnexpectedToken)
	return false
}
