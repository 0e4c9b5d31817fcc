package htmltree

import (
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/webcore-engine/webcore/dom"
)

// ParseDocument is the package's main entry point: it allocates a fresh
// dom.Document and runs the tree construction algorithm over r into it,
// mirroring the embedding API's hubbub_parser_create / parser_parse_chunk /
// parser_document trio (spec.md §6) as a single call for the common case of
// parsing a complete, buffered document.
func ParseDocument(r io.Reader, opts ...Option) *dom.Document {
	doc := dom.NewDocument()
	b := New(doc, opts...)
	b.Parse(r)
	return doc
}

// ParseDocumentString is ParseDocument for an in-memory string.
func ParseDocumentString(s string, opts ...Option) *dom.Document {
	return ParseDocument(strings.NewReader(s), opts...)
}

// ParseInto runs the tree construction algorithm over r into an
// already-created doc, returning the TreeBuilder so callers can inspect
// ErrorCount() afterward.
func ParseInto(doc *dom.Document, r io.Reader, opts ...Option) *TreeBuilder {
	b := New(doc, opts...)
	b.Parse(r)
	return b
}

var _ = zap.NewNop
