package htmltree

import (
	"strings"
	"testing"

	"github.com/webcore-engine/webcore/dom"
)

func findElement(n *dom.Node, name string) *dom.Node {
	if n.NodeType() == dom.ElementNode && (*dom.Element)(n).LocalName() == name {
		return n
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

func childElements(n *dom.Node) []*dom.Node {
	var out []*dom.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.NodeType() == dom.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func TestParse_BasicDocumentStructure(t *testing.T) {
	doc := ParseDocumentString(`<!DOCTYPE html><html><head><title>Test</title></head><body><p>Hello, World!</p></body></html>`)

	html := findElement(doc.AsNode(), "html")
	if html == nil {
		t.Fatal("could not find html element")
	}
	if findElement(html, "head") == nil {
		t.Error("missing head element")
	}
	if findElement(html, "body") == nil {
		t.Error("missing body element")
	}
	if doc.Mode() != dom.NoQuirksMode {
		t.Errorf("expected no-quirks mode for <!DOCTYPE html>, got %v", doc.Mode())
	}
}

func TestParse_MissingDoctypeTriggersQuirksMode(t *testing.T) {
	doc := ParseDocumentString(`<html><body><p>no doctype</p></body></html>`)
	if doc.Mode() != dom.QuirksMode {
		t.Errorf("expected quirks mode with no doctype, got %v", doc.Mode())
	}
}

func TestParse_HeadAndBodySynthesized(t *testing.T) {
	doc := ParseDocumentString(`<p>just a paragraph</p>`)
	html := findElement(doc.AsNode(), "html")
	if html == nil {
		t.Fatal("could not find synthesized html element")
	}
	body := findElement(html, "body")
	if body == nil {
		t.Fatal("expected synthesized body element")
	}
	if findElement(body, "p") == nil {
		t.Error("expected p element under synthesized body")
	}
}

// Scenario 1 (spec.md §8): text insertion and normalize.
func TestTextInsertionAndNormalize(t *testing.T) {
	doc := ParseDocumentString(`<p>hello</p>`)
	p := findElement(doc.AsNode(), "p")
	if p == nil {
		t.Fatal("could not find p element")
	}
	text := doc.CreateTextNode(" world")
	p.AppendChild(text)

	if got := p.TextContent(); got != "hello world" {
		t.Fatalf("expected textContent 'hello world', got %q", got)
	}

	p.Normalize()
	var textChildren int
	for c := p.FirstChild(); c != nil; c = c.NextSibling() {
		if c.NodeType() == dom.TextNode {
			textChildren++
		}
	}
	if textChildren != 1 {
		t.Errorf("expected exactly one text child after normalize, got %d", textChildren)
	}
}

// Scenario 2 (spec.md §8): adoption agency algorithm.
func TestAdoptionAgency(t *testing.T) {
	doc := ParseDocumentString(`<body><b>1<p>2</b>3</p></body>`)
	body := findElement(doc.AsNode(), "body")
	if body == nil {
		t.Fatal("could not find body element")
	}

	kids := childElements(body)
	if len(kids) != 2 {
		t.Fatalf("expected body to have 2 element children (b, p), got %d", len(kids))
	}
	b1 := kids[0]
	p := kids[1]
	if (*dom.Element)(b1).LocalName() != "b" {
		t.Errorf("expected first child to be <b>, got %s", (*dom.Element)(b1).LocalName())
	}
	if b1.TextContent() != "1" {
		t.Errorf("expected first <b> text content '1', got %q", b1.TextContent())
	}
	if (*dom.Element)(p).LocalName() != "p" {
		t.Fatalf("expected second child to be <p>, got %s", (*dom.Element)(p).LocalName())
	}

	pKids := childElements(p)
	if len(pKids) != 1 || (*dom.Element)(pKids[0]).LocalName() != "b" {
		t.Fatalf("expected <p> to contain a cloned <b>, got %#v", pKids)
	}
	if got := p.TextContent(); got != "23" {
		t.Errorf("expected <p> textContent '23', got %q", got)
	}
}

// Scenario 3 (spec.md §8): table foster parenting.
func TestTableFosterParenting(t *testing.T) {
	doc := ParseDocumentString(`<table>A<tr><td>B</td></tr></table>`)
	body := findElement(doc.AsNode(), "body")
	if body == nil {
		t.Fatal("could not find body element")
	}

	table := findElement(body, "table")
	if table == nil {
		t.Fatal("could not find table element")
	}

	var textBeforeTable *dom.Node
	for c := body.FirstChild(); c != nil; c = c.NextSibling() {
		if c == table {
			break
		}
		if c.NodeType() == dom.TextNode && c.NodeValue() == "A" {
			textBeforeTable = c
		}
	}
	if textBeforeTable == nil {
		t.Fatal("expected foster-parented text node 'A' before <table> in body")
	}

	td := findElement(table, "td")
	if td == nil || td.TextContent() != "B" {
		t.Fatal("expected <td>B</td> inside the table")
	}
}

func TestTableStructureSynthesizesTbody(t *testing.T) {
	doc := ParseDocumentString(`<table><tr><td>Cell 1</td><td>Cell 2</td></tr></table>`)
	table := findElement(doc.AsNode(), "table")
	if table == nil {
		t.Fatal("could not find table element")
	}
	if findElement(table, "tbody") == nil {
		t.Error("expected tbody to be synthesized")
	}
	tr := findElement(table, "tr")
	if tr == nil {
		t.Fatal("could not find tr element")
	}
	if len(childElements(tr)) != 2 {
		t.Errorf("expected 2 td children in tr, got %d", len(childElements(tr)))
	}
}

func TestVoidElementsDoNotNest(t *testing.T) {
	doc := ParseDocumentString(`<div><br/><img src="x.png"/><input type="text"/></div>`)
	div := findElement(doc.AsNode(), "div")
	if div == nil {
		t.Fatal("could not find div element")
	}
	kids := childElements(div)
	if len(kids) != 3 {
		t.Fatalf("expected 3 void element children, got %d", len(kids))
	}
	for _, k := range kids {
		if k.FirstChild() != nil {
			t.Errorf("void element <%s> should have no children", (*dom.Element)(k).LocalName())
		}
	}
}

func TestFormattingReconstructionAcrossBlockBoundary(t *testing.T) {
	doc := ParseDocumentString(`<body><div><b>bold <i>both</div><p>still bold and italic</p></body>`)
	body := findElement(doc.AsNode(), "body")
	p := findElement(body, "p")
	if p == nil {
		t.Fatal("could not find p element")
	}
	i := findElement(p, "i")
	if i == nil {
		t.Fatal("expected reconstructed <i> inside <p>")
	}
	b := findElement(p, "b")
	if b == nil {
		t.Fatal("expected reconstructed <b> inside <p>")
	}
	if got := p.TextContent(); got != "still bold and italic" {
		t.Errorf("expected paragraph text preserved, got %q", got)
	}
}

func TestParseErrorsAreRecoveredNotFatal(t *testing.T) {
	var codes []ParseErrorCode
	doc := ParseDocument(
		strings.NewReader(`<p>unclosed paragraph<div>nested div</p></div>`),
		WithErrorCallback(func(line, col int, code ParseErrorCode) {
			codes = append(codes, code)
		}),
	)
	if doc == nil {
		t.Fatal("expected a non-nil document even for malformed input")
	}
	if findElement(doc.AsNode(), "div") == nil {
		t.Error("expected parser to still build a div element from malformed input")
	}
}

func TestCommentAndDoctypeNodesInTree(t *testing.T) {
	doc := ParseDocumentString(`<!DOCTYPE html><!-- top level --><html><body><!-- inner --></body></html>`)
	var sawDoctype, sawComment bool
	for c := doc.AsNode().FirstChild(); c != nil; c = c.NextSibling() {
		switch c.NodeType() {
		case dom.DocumentTypeNode:
			sawDoctype = true
		case dom.CommentNode:
			sawComment = true
		}
	}
	if !sawDoctype {
		t.Error("expected a DocumentType node as a child of the document")
	}
	if !sawComment {
		t.Error("expected the top-level comment to be preserved")
	}
}
