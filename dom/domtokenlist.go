package dom

import "strings"

// DOMTokenList is a live view of a space-separated attribute value — the
// backing type for Element.classList and similarly shaped attributes.
// It holds no state of its own beyond which element/attribute it reflects;
// every read re-splits the attribute and every write re-joins and stores it,
// so it never drifts out of sync with concurrent direct attribute edits.
type DOMTokenList struct {
	element  *Element
	attrName string
}

func newDOMTokenList(element *Element, attrName string) *DOMTokenList {
	return &DOMTokenList{element: element, attrName: attrName}
}

// tokens splits the backing attribute on ASCII whitespace and drops
// duplicates, keeping first-occurrence order.
func (dtl *DOMTokenList) tokens() []string {
	if dtl.element == nil {
		return nil
	}
	value := dtl.element.GetAttribute(dtl.attrName)
	if value == "" {
		return nil
	}
	fields := strings.Fields(value)
	seen := make(map[string]bool, len(fields))
	out := fields[:0]
	for _, tok := range fields {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

func (dtl *DOMTokenList) setTokens(tokens []string) {
	if dtl.element == nil {
		return
	}
	if len(tokens) == 0 {
		dtl.element.RemoveAttribute(dtl.attrName)
		return
	}
	dtl.element.SetAttribute(dtl.attrName, strings.Join(tokens, " "))
}

func indexOfToken(tokens []string, target string) int {
	for i, t := range tokens {
		if t == target {
			return i
		}
	}
	return -1
}

// Length returns the number of tokens.
func (dtl *DOMTokenList) Length() int {
	return len(dtl.tokens())
}

// Item returns the token at the given index, or empty string if out of bounds.
func (dtl *DOMTokenList) Item(index int) string {
	tokens := dtl.tokens()
	if index < 0 || index >= len(tokens) {
		return ""
	}
	return tokens[index]
}

// Contains returns true if the given token is in the list.
func (dtl *DOMTokenList) Contains(token string) bool {
	return indexOfToken(dtl.tokens(), token) >= 0
}

// Add adds one or more tokens to the list.
func (dtl *DOMTokenList) Add(tokens ...string) {
	current := dtl.tokens()
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" || indexOfToken(current, token) >= 0 {
			continue
		}
		current = append(current, token)
	}
	dtl.setTokens(current)
}

// Remove removes one or more tokens from the list.
func (dtl *DOMTokenList) Remove(tokens ...string) {
	drop := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		drop[strings.TrimSpace(token)] = true
	}

	var kept []string
	for _, t := range dtl.tokens() {
		if !drop[t] {
			kept = append(kept, t)
		}
	}
	dtl.setTokens(kept)
}

// Toggle toggles the presence of a token. If force is provided, it forces
// add (true) or remove (false) instead of toggling. Returns whether the
// token is present after the operation.
func (dtl *DOMTokenList) Toggle(token string, force ...bool) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}

	present := dtl.Contains(token)
	want := !present
	if len(force) > 0 {
		want = force[0]
	}

	switch {
	case want && !present:
		dtl.Add(token)
	case !want && present:
		dtl.Remove(token)
	}
	return want
}

// Replace replaces an old token with a new token, reporting whether the old
// token was found. Any other existing occurrence of newToken is dropped
// rather than left duplicated.
func (dtl *DOMTokenList) Replace(oldToken, newToken string) bool {
	oldToken = strings.TrimSpace(oldToken)
	newToken = strings.TrimSpace(newToken)
	if oldToken == "" || newToken == "" {
		return false
	}
	if oldToken == newToken {
		return dtl.Contains(oldToken)
	}

	current := dtl.tokens()
	oldIdx := indexOfToken(current, oldToken)
	if oldIdx == -1 {
		return false
	}

	result := make([]string, 0, len(current))
	for i, t := range current {
		switch {
		case i == oldIdx:
			result = append(result, newToken)
		case t != newToken:
			result = append(result, t)
		}
	}
	dtl.setTokens(result)
	return true
}

// Supports reports whether token is a recognized keyword for this list.
// classList imposes no such restriction, so this always returns true.
func (dtl *DOMTokenList) Supports(token string) bool {
	return true
}

// Value returns the underlying string value.
func (dtl *DOMTokenList) Value() string {
	if dtl.element == nil {
		return ""
	}
	return dtl.element.GetAttribute(dtl.attrName)
}

// SetValue sets the underlying string value.
func (dtl *DOMTokenList) SetValue(value string) {
	if dtl.element == nil {
		return
	}
	dtl.element.SetAttribute(dtl.attrName, value)
}

// String returns the string representation (same as Value).
func (dtl *DOMTokenList) String() string {
	return dtl.Value()
}

// Entries returns an iterator-like slice of [index, token] pairs.
func (dtl *DOMTokenList) Entries() [][2]interface{} {
	tokens := dtl.tokens()
	entries := make([][2]interface{}, len(tokens))
	for i, token := range tokens {
		entries[i] = [2]interface{}{i, token}
	}
	return entries
}

// ForEach calls the given function for each token.
func (dtl *DOMTokenList) ForEach(fn func(token string, index int)) {
	for i, token := range dtl.tokens() {
		fn(token, i)
	}
}

// Keys returns an iterator-like slice of indices.
func (dtl *DOMTokenList) Keys() []int {
	tokens := dtl.tokens()
	keys := make([]int, len(tokens))
	for i := range tokens {
		keys[i] = i
	}
	return keys
}

// Values returns an iterator-like slice of tokens.
func (dtl *DOMTokenList) Values() []string {
	return dtl.tokens()
}
