package dom

import "github.com/webcore-engine/webcore/domevents"

// eventPath builds n's propagation path from the document root down to n,
// the ordering domevents.Dispatch expects (index 0 = outermost ancestor).
func eventPath(n *Node) domevents.Path {
	var chain []*Node
	for cur := n; cur != nil; cur = cur.parentNode {
		chain = append(chain, cur)
	}
	path := make(domevents.Path, len(chain))
	for i, node := range chain {
		path[len(chain)-1-i] = node.Events()
	}
	return path
}

// dispatchLegacyMutationEvent fires one of the legacy DOM Level 3 mutation
// events (DOMNodeInserted, DOMNodeRemoved, DOMAttrModified, …) at target,
// bubbling to the document root. These are the deprecated synchronous
// events the core still supports instead of the batched MutationObserver
// queue (spec.md Non-goals). Dispatch is skipped entirely when nothing on
// the path is listening, so unobserved trees pay nothing for it.
func dispatchLegacyMutationEvent(target *Node, typ string, relatedNode *Node) {
	if target == nil {
		return
	}
	path := eventPath(target)
	hasListener := false
	for _, t := range path {
		if t.HasListeners(typ) {
			hasListener = true
			break
		}
	}
	if !hasListener {
		return
	}
	ev := domevents.NewEvent(typ, true, false)
	ev.Detail = relatedNode
	domevents.Dispatch(path, ev)
}
