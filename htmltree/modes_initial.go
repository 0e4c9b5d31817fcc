package htmltree

import "github.com/webcore-engine/webcore/dom"

func isWhitespace(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
		default:
			return false
		}
	}
	return true
}

// splitLeadingWhitespace splits a character token into its leading
// whitespace run and the remainder, the "character tokens at mode
// boundaries" split spec.md §4.3 calls for.
func splitLeadingWhitespace(data string) (ws, rest string) {
	for i, r := range data {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			continue
		default:
			return data[:i], data[i:]
		}
	}
	return data, ""
}

func (b *TreeBuilder) modeInitial(tok Token) bool {
	switch tok.Type {
	case TextToken:
		if isWhitespace(tok.Data) {
			return false
		}
	case CommentToken:
		b.insertComment(tok.Data)
		return false
	case DoctypeToken:
		name, publicID, systemID, quirky := parseDoctype(tok.Data)
		impl := b.doc.Implementation()
		dt, _ := impl.CreateDocumentType(orHTML(name), publicID, systemID)
		b.doc.AsNode().AppendChild(dt)
		if quirky || name != "html" {
			b.doc.SetMode(dom.QuirksMode)
		} else {
			b.doc.SetMode(dom.NoQuirksMode)
		}
		b.mode = BeforeHtml
		return false
	}
	b.doc.SetMode(dom.QuirksMode)
	b.mode = BeforeHtml
	return true
}

func orHTML(name string) string {
	if name == "" {
		return "html"
	}
	return name
}

// parseDoctype extracts name/public-id/system-id from a doctype token's raw
// text. golang.org/x/net/html's tokenizer gives us the whole DOCTYPE
// declaration as opaque text; we do a permissive best-effort scan rather
// than a full doctype grammar, since well-formed HTML5 doctypes are just
// "html" in practice.
func parseDoctype(raw string) (name, publicID, systemID string, forceQuirks bool) {
	fields := splitDoctypeFields(raw)
	if len(fields) == 0 {
		return "", "", "", true
	}
	name = fields[0]
	if len(fields) >= 3 && (fields[1] == "PUBLIC" || fields[1] == "public") {
		publicID = unquote(fields[2])
		if len(fields) >= 4 {
			systemID = unquote(fields[3])
		}
	} else if len(fields) >= 3 && (fields[1] == "SYSTEM" || fields[1] == "system") {
		systemID = unquote(fields[2])
	}
	return name, publicID, systemID, false
}

func splitDoctypeFields(raw string) []string {
	var fields []string
	var cur []rune
	inQuote := rune(0)
	flush := func() {
		if len(cur) > 0 {
			fields = append(fields, string(cur))
			cur = nil
		}
	}
	for _, r := range raw {
		if inQuote != 0 {
			cur = append(cur, r)
			if r == inQuote {
				inQuote = 0
			}
			continue
		}
		switch r {
		case '"', '\'':
			inQuote = r
			cur = append(cur, r)
		case ' ', '\t', '\n', '\r', '\f':
			flush()
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return fields
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func (b *TreeBuilder) modeBeforeHtml(tok Token) bool {
	switch tok.Type {
	case CommentToken:
		b.insertComment(tok.Data)
		return false
	case TextToken:
		if isWhitespace(tok.Data) {
			return false
		}
	case StartTagToken, SelfClosingTagToken:
		if tok.TagName() == "html" {
			n := b.createElement(tok)
			b.doc.AsNode().AppendChild(n)
			b.push(n)
			b.mode = BeforeHead
			return false
		}
	case EndTagToken:
		switch tok.TagName() {
		case "head", "body", "html", "br":
		default:
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
	}
	n := b.createElement(Token{Type: StartTagToken, Data: "html"})
	b.doc.AsNode().AppendChild(n)
	b.push(n)
	b.mode = BeforeHead
	return true
}

func (b *TreeBuilder) modeBeforeHead(tok Token) bool {
	switch tok.Type {
	case TextToken:
		ws, rest := splitLeadingWhitespace(tok.Data)
		_ = ws
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
		case "head":
			n := b.insertHTMLElement(tok)
			b.headElement = n
			b.mode = InHead
			return false
		}
	case EndTagToken:
		switch tok.TagName() {
		case "head", "body", "html", "br":
		default:
			b.reportError(ErrUnexpectedEndTag)
			return false
		}
	}
	n := b.insertHTMLElement(Token{Type: StartTagToken, Data: "head"})
	b.headElement = n
	b.mode = InHead
	return true
}
