package htmltree

func (b *TreeBuilder) modeInTable(tok Token) bool {
	switch tok.Type {
	case TextToken:
		if b.hasOnStack("table") || b.hasOnStack("tbody") || b.hasOnStack("thead") ||
			b.hasOnStack("tfoot") || b.hasOnStack("tr") {
			b.pendingTableChars.Reset()
			b.pendingTableNonWS = false
			b.originalMode = b.mode
			b.mode = InTableText
			return true
		}
	case CommentToken:
		b.insertComment(tok.Data)
		return false
	case DoctypeToken:
		b.reportError(ErrUnexpectedDoctype)
		return false
	case StartTagToken, SelfClosingTagToken:
		switch tok.TagName() {
		case "caption":
			b.clearStackToTableContext()
			b.insertMarker()
			b.insertHTMLElement(tok)
			b.mode = InCaption
			return false
		case "colgroup":
			b.clearStackToTableContext()
			b.insertHTMLElement(tok)
			b.mode = InColumnGroup
			return false
		case "col":
			b.clearStackToTableContext()
			b.insertHTMLElement(Token{Type: StartTagToken, Data: "colgroup"})
			b.mode = InColumnGroup
			return true
		case "tbody", "tfoot", "thead":
			b.clearStackToTableContext()
			b.insertHTMLElement(tok)
			b.mode = InTableBody
			return false
		case "td", "th", "tr":
			b.clearStackToTableContext()
			b.insertHTMLElement(Token{Type: StartTagToken, Data: "tbody"})
			b.mode = InTableBody
			return true
		case "table":
			b.reportError(ErrUnexpectedStartTag)
			if !b.hasElementInTableScope("table") {
				return false
			}
			b.popUntilNamed("table")
			b.resetInsertionMode()
			return true
		case "style", "script", "template":
			return b.modeInHead(tok)
		case "input":
			if v, ok := tok.Attrib("type"); !ok || !equalFoldASCII(v, "hidden") {
				break
			}
			b.reportError(ErrUnexpectedStartTag)
			b.insertHTMLElement(tok)
			b.pop()
			return false
		case "form":
			if b.formElement != nil || b.hasOnStack("template") {
				b.reportError(ErrUnexpectedStartTag)
				return false
			}
			n := b.insertHTMLElement(tok)
			b.formElement = n
			b.pop()
			return false
		}
	case EndTagToken:
		switch tok.TagName() {
		case "table":
			if !b.hasElementInTableScope("table") {
				b.reportError(ErrUnexpectedEndTag)
				return false
			}
			b.popUntilNamed("table")
			b.resetInsertionMode()
			return false
		case "body", "caption", "col", "colgroup", "html", "tbody", "td", "tfoot", "th",
			"thead", "tr":
			b.reportError(ErrUnexpectedEndTag)
			return false
		case "template":
			return b.modeInHead(tok)
		}
	case EOFToken:
		return b.modeInBody(tok)
	}
	// "anything else": process using in body rules, with foster parenting enabled
	b.fosterParenting = true
	reprocess := b.modeInBody(tok)
	b.fosterParenting = false
	return reprocess
}

func (b *TreeBuilder) clearStackToTableContext() {
	for {
		ln := localNameOf(b.currentNode())
		if ln == "table" || ln == "html" || ln == "template" || ln == "" {
			return
		}
		b.pop()
	}
}

func (b *TreeBuilder) clearStackToTableBodyContext() {
	for {
		ln := localNameOf(b.currentNode())
		switch ln {
		case "tbody", "tfoot", "thead", "html", "template", "":
			return
		}
		b.pop()
	}
}

func (b *TreeBuilder) clearStackToTableRowContext() {
	for {
		ln := localNameOf(b.currentNode())
		if ln == "tr" || ln == "html" || ln == "template" || ln == "" {
			return
		}
		b.pop()
	}
}

// modeInTableText accumulates consecutive character tokens encountered in
// InTable (spec.md §4.3): if every accumulated character is whitespace they
// are inserted verbatim; otherwise each is reprocessed as "anything else"
// under InTable, which triggers foster parenting.
func (b *TreeBuilder) modeInTableText(tok Token) bool {
	if tok.Type == TextToken {
		if !isWhitespace(tok.Data) {
			b.pendingTableNonWS = true
		}
		b.pendingTableChars.WriteString(tok.Data)
		return false
	}
	data := b.pendingTableChars.String()
	b.pendingTableChars.Reset()
	nonWS := b.pendingTableNonWS
	b.pendingTableNonWS = false
	b.mode = b.originalMode
	if data != "" {
		if nonWS {
			b.fosterParenting = true
			b.modeInBody(Token{Type: TextToken, Data: data})
			b.fosterParenting = false
		} else {
			b.insertCharacters(data)
		}
	}
	return true
}

func (b *TreeBuilder) modeInCaption(tok Token) bool {
	if tok.Type == EndTagToken && tok.TagName() == "caption" {
		if !b.hasElementInTableScope("caption") {
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
		b.generateImpliedEndTags("")
		b.popUntilNamed("caption")
		b.clearActiveFormattingToMarker()
		b.mode = InTable
		return false
	}
	if tok.Type == StartTagToken {
		switch tok.TagName() {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !b.hasElementInTableScope("caption") {
				return false
			}
			b.popUntilNamed("caption")
			b.clearActiveFormattingToMarker()
			b.mode = InTable
			return true
		}
	}
	if tok.Type == EndTagToken && tok.TagName() == "table" {
		if !b.hasElementInTableScope("caption") {
			return false
		}
		b.popUntilNamed("caption")
		b.clearActiveFormattingToMarker()
		b.mode = InTable
		return true
	}
	if tok.Type == EndTagToken {
		switch tok.TagName() {
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
	}
	return b.modeInBody(tok)
}

func (b *TreeBuilder) modeInColumnGroup(tok Token) bool {
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
		case "col":
			b.insertHTMLElement(tok)
			b.pop()
			return false
		case "template":
			return b.modeInHead(tok)
		}
	case EndTagToken:
		switch tok.TagName() {
		case "colgroup":
			if localNameOf(b.currentNode()) != "colgroup" {
				b.reportError(ErrUnexpectedEndTag)
				return false
			}
			b.pop()
			b.mode = InTable
			return false
		case "col":
			b.reportError(ErrUnexpectedEndTag)
			return false
		case "template":
			return b.modeInHead(tok)
		}
	case EOFToken:
		return b.modeInBody(tok)
	}
	if localNameOf(b.currentNode()) != "colgroup" {
		return false
	}
	b.pop()
	b.mode = InTable
	return true
}

func (b *TreeBuilder) modeInTableBody(tok Token) bool {
	if tok.Type == StartTagToken {
		switch tok.TagName() {
		case "tr":
			b.clearStackToTableBodyContext()
			b.insertHTMLElement(tok)
			b.mode = InRow
			return false
		case "th", "td":
			b.reportError(ErrUnexpectedStartTag)
			b.clearStackToTableBodyContext()
			b.insertHTMLElement(Token{Type: StartTagToken, Data: "tr"})
			b.mode = InRow
			return true
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if !b.hasTableSectionInScope() {
				return false
			}
			b.clearStackToTableBodyContext()
			b.pop()
			b.mode = InTable
			return true
		}
	}
	if tok.Type == EndTagToken {
		switch tok.TagName() {
		case "tbody", "tfoot", "thead":
			if !b.hasElementInTableScope(tok.TagName()) {
				b.reportError(ErrUnexpectedEndTag)
				return false
			}
			b.clearStackToTableBodyContext()
			b.pop()
			b.mode = InTable
			return false
		case "table":
			if !b.hasTableSectionInScope() {
				return false
			}
			b.clearStackToTableBodyContext()
			b.pop()
			b.mode = InTable
			return true
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
	}
	return b.modeInTable(tok)
}

func (b *TreeBuilder) hasTableSectionInScope() bool {
	return b.hasElementInTableScope("tbody") || b.hasElementInTableScope("thead") ||
		b.hasElementInTableScope("tfoot")
}

func (b *TreeBuilder) modeInRow(tok Token) bool {
	if tok.Type == StartTagToken {
		switch tok.TagName() {
		case "th", "td":
			b.clearStackToTableRowContext()
			b.insertHTMLElement(tok)
			b.mode = InCell
			b.insertMarker()
			return false
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !b.hasElementInTableScope("tr") {
				return false
			}
			b.clearStackToTableRowContext()
			b.pop()
			b.mode = InTableBody
			return true
		}
	}
	if tok.Type == EndTagToken {
		switch tok.TagName() {
		case "tr":
			if !b.hasElementInTableScope("tr") {
				b.reportError(ErrUnexpectedEndTag)
				return false
			}
			b.clearStackToTableRowContext()
			b.pop()
			b.mode = InTableBody
			return false
		case "table":
			if !b.hasElementInTableScope("tr") {
				return false
			}
			b.clearStackToTableRowContext()
			b.pop()
			b.mode = InTableBody
			return true
		case "tbody", "tfoot", "thead":
			if !b.hasElementInTableScope(tok.TagName()) || !b.hasElementInTableScope("tr") {
				b.reportError(ErrUnexpectedEndTag)
				return false
			}
			b.clearStackToTableRowContext()
			b.pop()
			b.mode = InTableBody
			return true
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
	}
	return b.modeInTable(tok)
}

func (b *TreeBuilder) modeInCell(tok Token) bool {
	if tok.Type == EndTagToken {
		switch tok.TagName() {
		case "td", "th":
			name := tok.TagName()
			if !b.hasElementInTableScope(name) {
				b.reportError(ErrUnexpectedEndTag)
				return false
			}
			b.generateImpliedEndTags("")
			b.popUntilNamed(name)
			b.clearActiveFormattingToMarker()
			b.mode = InRow
			return false
		case "body", "caption", "col", "colgroup", "html":
			b.reportError(ErrUnexpectedEndTag)
			return false
		case "table", "tbody", "tfoot", "thead", "tr":
			if !b.hasElementInTableScope(tok.TagName()) {
				b.reportError(ErrUnexpectedEndTag)
				return false
			}
			b.closeCellImplicitly()
			return true
		}
	}
	if tok.Type == StartTagToken {
		switch tok.TagName() {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !b.hasElementInTableScope("td") && !b.hasElementInTableScope("th") {
				return false
			}
			b.closeCellImplicitly()
			return true
		}
	}
	return b.modeInBody(tok)
}

func (b *TreeBuilder) closeCellImplicitly() {
	b.generateImpliedEndTags("")
	for _, name := range []string{"td", "th"} {
		if localNameOf(b.currentNode()) == name {
			b.popUntilNamed(name)
			break
		}
	}
	b.clearActiveFormattingToMarker()
	b.mode = InRow
}

// resetInsertionMode implements the "reset the insertion mode appropriately"
// algorithm, consulted after a misnested </table> closes back out of a
// table context.
func (b *TreeBuilder) resetInsertionMode() {
	for i := len(b.openElements) - 1; i >= 0; i-- {
		node := b.openElements[i]
		last := i == 0
		ln := localNameOf(node)
		if b.fragmentContext != nil && last {
			node = b.fragmentContext
			ln = localNameOf(node)
		}
		switch ln {
		case "select":
			for j := i; j > 0; j-- {
				anc := localNameOf(b.openElements[j-1])
				if anc == "template" {
					break
				}
				if anc == "table" {
					b.mode = InSelectInTable
					return
				}
			}
			b.mode = InSelect
			return
		case "td", "th":
			if !last {
				b.mode = InCell
				return
			}
		case "tr":
			b.mode = InRow
			return
		case "tbody", "thead", "tfoot":
			b.mode = InTableBody
			return
		case "caption":
			b.mode = InCaption
			return
		case "colgroup":
			b.mode = InColumnGroup
			return
		case "table":
			b.mode = InTable
			return
		case "template":
			b.mode = InHead
			return
		case "head":
			if !last {
				b.mode = InHead
				return
			}
		case "body":
			b.mode = InBody
			return
		case "frameset":
			b.mode = InFrameset
			return
		case "html":
			if b.headElement == nil {
				b.mode = BeforeHead
			} else {
				b.mode = AfterHead
			}
			return
		}
		if last {
			b.mode = InBody
			return
		}
	}
	b.mode = InBody
}
