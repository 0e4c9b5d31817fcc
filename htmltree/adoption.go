package htmltree

import "github.com/webcore-engine/webcore/dom"

const (
	adoptionOuterLimit = 8
	adoptionInnerLimit  = 3
)

// runAdoptionAgency implements the adoption agency algorithm (spec.md §4.3):
// reconciles a misnested formatting end tag (e.g. </b> after a <p> opened
// inside it) by cloning the formatting element across the furthest open
// block it should have closed, tie-breaking per HTML5 §12.2.5.4.7. The
// outer loop is capped at 8 iterations to guarantee termination on
// pathological input; from the fourth inner iteration on, each formatting
// element the inner loop reaches is dropped from the active formatting list.
func (b *TreeBuilder) runAdoptionAgency(subject string) {
	for outer := 0; outer < adoptionOuterLimit; outer++ {
		formattingIdx := -1
		for i := len(b.activeFormatting) - 1; i >= 0; i-- {
			e := b.activeFormatting[i]
			if e.marker {
				break
			}
			if e.token.TagName() == subject {
				formattingIdx = i
				break
			}
		}
		if formattingIdx == -1 {
			b.inBodyEndTag(Token{Type: EndTagToken, Data: subject})
			return
		}
		formattingElement := b.activeFormatting[formattingIdx].node

		if !b.isOnOpenElements(formattingElement) {
			b.reportError(ErrUnexpectedEndTag)
			b.activeFormatting = append(b.activeFormatting[:formattingIdx], b.activeFormatting[formattingIdx+1:]...)
			return
		}
		if !b.hasElementInScope(subject, nil) {
			b.reportError(ErrUnexpectedEndTag)
			return
		}
		if b.currentNode() != formattingElement {
			b.reportError(ErrMisnestedTag)
		}

		feStackIdx := -1
		for i, n := range b.openElements {
			if n == formattingElement {
				feStackIdx = i
				break
			}
		}
		var furthestBlock *dom.Node
		furthestIdx := -1
		for i := feStackIdx + 1; i < len(b.openElements); i++ {
			if specialCategory[localNameOf(b.openElements[i])] {
				furthestBlock = b.openElements[i]
				furthestIdx = i
				break
			}
		}
		if furthestBlock == nil {
			for len(b.openElements)-1 >= feStackIdx {
				b.pop()
			}
			b.activeFormatting = append(b.activeFormatting[:formattingIdx], b.activeFormatting[formattingIdx+1:]...)
			return
		}

		var commonAncestor *dom.Node
		if feStackIdx > 0 {
			commonAncestor = b.openElements[feStackIdx-1]
		}

		bookmark := formattingIdx
		node := furthestBlock
		nodeIdx := furthestIdx
		lastNode := furthestBlock

		for inner := 0; ; inner++ {
			nodeIdx--
			if nodeIdx <= feStackIdx {
				break
			}
			node = b.openElements[nodeIdx]

			afIdx := b.activeFormattingIndexOf(node)
			if inner >= adoptionInnerLimit && afIdx != -1 {
				b.activeFormatting = append(b.activeFormatting[:afIdx], b.activeFormatting[afIdx+1:]...)
				afIdx = -1
				if afIdx < bookmark {
					bookmark--
				}
			}
			if afIdx == -1 {
				b.removeFromOpenElements(node)
				continue
			}
			if node == formattingElement {
				break
			}

			newNode := b.cloneFormattingElement(node)
			entry := b.activeFormatting[afIdx]
			entry.node = newNode
			b.activeFormatting[afIdx] = entry
			b.openElements[nodeIdx] = newNode
			node = newNode

			if lastNode == furthestBlock {
				bookmark = afIdx + 1
			}
			if p := lastNode.ParentNode(); p != nil {
				p.RemoveChild(lastNode)
			}
			newNode.AppendChild(lastNode)
			lastNode = newNode
		}

		if p := lastNode.ParentNode(); p != nil {
			p.RemoveChild(lastNode)
		}
		if commonAncestor != nil {
			prevFoster := b.fosterParenting
			b.fosterParenting = prevFoster && specialCategory[localNameOf(commonAncestor)]
			parent, before := b.insertionLocationFor(commonAncestor)
			if before != nil {
				parent.InsertBefore(lastNode, before)
			} else if parent != nil {
				parent.AppendChild(lastNode)
			}
			b.fosterParenting = prevFoster
		}

		newElement := b.cloneFormattingElement(formattingElement)
		for c := furthestBlock.FirstChild(); c != nil; {
			next := c.NextSibling()
			furthestBlock.RemoveChild(c)
			newElement.AppendChild(c)
			c = next
		}
		furthestBlock.AppendChild(newElement)

		b.activeFormatting = append(b.activeFormatting[:formattingIdx], b.activeFormatting[formattingIdx+1:]...)
		if bookmark > len(b.activeFormatting) {
			bookmark = len(b.activeFormatting)
		}
		newEntry := afEntry{node: newElement, token: b.activeFormattingTokenFor(formattingElement, subject)}
		b.activeFormatting = append(b.activeFormatting, afEntry{})
		copy(b.activeFormatting[bookmark+1:], b.activeFormatting[bookmark:])
		b.activeFormatting[bookmark] = newEntry

		b.removeFromOpenElements(formattingElement)
		newFurthestIdx := -1
		for i, n := range b.openElements {
			if n == furthestBlock {
				newFurthestIdx = i
				break
			}
		}
		if newFurthestIdx == -1 {
			b.push(newElement)
		} else {
			tail := append([]*dom.Node{newElement}, b.openElements[newFurthestIdx+1:]...)
			b.openElements = append(b.openElements[:newFurthestIdx+1], tail...)
		}
	}
}

func (b *TreeBuilder) activeFormattingIndexOf(n *dom.Node) int {
	for i, e := range b.activeFormatting {
		if e.node == n {
			return i
		}
	}
	return -1
}

func (b *TreeBuilder) activeFormattingTokenFor(n *dom.Node, fallback string) Token {
	if i := b.activeFormattingIndexOf(n); i != -1 {
		return b.activeFormatting[i].token
	}
	return Token{Type: StartTagToken, Data: fallback}
}

// insertionLocationFor mirrors adjustedInsertionLocation but relative to an
// explicit override target, used by the adoption agency algorithm's "insert
// lastNode at the appropriate place" step (spec.md §4.3 foster parenting).
func (b *TreeBuilder) insertionLocationFor(target *dom.Node) (*dom.Node, *dom.Node) {
	if !b.fosterParenting {
		return target, nil
	}
	ln := localNameOf(target)
	if ln != "table" && ln != "tbody" && ln != "tfoot" && ln != "thead" && ln != "tr" {
		return target, nil
	}
	var lastTable *dom.Node
	lastTableIdx := -1
	for i := len(b.openElements) - 1; i >= 0; i-- {
		if localNameOf(b.openElements[i]) == "table" {
			lastTable = b.openElements[i]
			lastTableIdx = i
			break
		}
	}
	if lastTable == nil {
		if len(b.openElements) > 0 {
			return b.openElements[0], nil
		}
		return nil, nil
	}
	if parent := lastTable.ParentNode(); parent != nil {
		return parent, lastTable
	}
	if lastTableIdx > 0 {
		return b.openElements[lastTableIdx-1], nil
	}
	return lastTable, nil
}
