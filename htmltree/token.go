// Package htmltree implements the HTML tree-construction state machine: it
// consumes a stream of tokens and drives DOM mutations against the dom
// package, maintaining the insertion mode, open-elements stack, and active
// formatting elements list the algorithm requires. Tokenization itself is an
// external collaborator (golang.org/x/net/html.Tokenizer, wrapped by
// Tokenizer below) — htmltree never inspects its node types, only its token
// stream, the same split the teacher's html/parser.go drew around
// golang.org/x/net/html.
package htmltree

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TokenType identifies the kind of token produced by the tokenizer.
type TokenType int

const (
	ErrorToken TokenType = iota
	TextToken
	StartTagToken
	EndTagToken
	SelfClosingTagToken
	CommentToken
	DoctypeToken
	EOFToken
)

// Attribute is a single tag attribute (name, value), in source order.
type Attribute struct {
	Namespace string
	Key       string
	Value     string
}

// Token is one unit of the HTML token stream the tree builder consumes.
type Token struct {
	Type     TokenType
	Data     string
	DataAtom atom.Atom
	Attr     []Attribute
}

// TagName returns the token's tag name in lower case for start/end tags.
func (t Token) TagName() string {
	return t.Data
}

// Attrib returns the value of the named attribute and whether it was present.
func (t Token) Attrib(name string) (string, bool) {
	for _, a := range t.Attr {
		if a.Key == name {
			return a.Value, true
		}
	}
	return "", false
}

// Tokenizer wraps golang.org/x/net/html.Tokenizer, the external tokenizer
// collaborator, adapting its tokens to htmltree.Token so the tree builder
// never imports golang.org/x/net/html's node types.
type Tokenizer struct {
	z *html.Tokenizer
}

// NewTokenizer creates a Tokenizer reading from r.
func NewTokenizer(r io.Reader) *Tokenizer {
	return &Tokenizer{z: html.NewTokenizer(r)}
}

// NewTokenizerString creates a Tokenizer reading from s.
func NewTokenizerString(s string) *Tokenizer {
	return NewTokenizer(strings.NewReader(s))
}

// Next advances to and returns the next token. golang.org/x/net/html.Tokenizer
// already tracks raw-text elements (script, style, textarea, title, …)
// internally from the tag names it has seen, so the tree builder does not
// need to steer it.
func (t *Tokenizer) Next() Token {
	tt := t.z.Next()
	switch tt {
	case html.ErrorToken:
		return Token{Type: ErrorToken}
	case html.TextToken:
		return Token{Type: TextToken, Data: string(t.z.Text())}
	case html.CommentToken:
		return Token{Type: CommentToken, Data: string(t.z.Text())}
	case html.DoctypeToken:
		return Token{Type: DoctypeToken, Data: string(t.z.Text())}
	case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
		name, hasAttr := t.z.TagName()
		tok := Token{Data: string(name)}
		switch tt {
		case html.StartTagToken:
			tok.Type = StartTagToken
		case html.EndTagToken:
			tok.Type = EndTagToken
		case html.SelfClosingTagToken:
			tok.Type = SelfClosingTagToken
		}
		tok.DataAtom = atom.Lookup(name)
		if hasAttr {
			for {
				key, val, more := t.z.TagAttr()
				tok.Attr = append(tok.Attr, Attribute{Key: string(key), Value: string(val)})
				if !more {
					break
				}
			}
		}
		return tok
	default:
		return Token{Type: ErrorToken}
	}
}

// Err returns the error associated with the most recent ErrorToken (usually
// io.EOF at end of input).
func (t *Tokenizer) Err() error {
	return t.z.Err()
}

// AtEOF reports whether the most recent error was io.EOF.
func (t *Tokenizer) AtEOF() bool {
	return t.z.Err() == io.EOF
}
