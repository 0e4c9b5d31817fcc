package domevents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchBubblesThroughAncestors(t *testing.T) {
	root := &Target{}
	mid := &Target{}
	leaf := &Target{}
	path := Path{root, mid, leaf}

	var order []string
	root.AddEventListener("click", func(e *Event) { order = append(order, "root") }, false)
	mid.AddEventListener("click", func(e *Event) { order = append(order, "mid") }, false)
	leaf.AddEventListener("click", func(e *Event) { order = append(order, "leaf") }, false)

	ev := NewEvent("click", true, true)
	ok := Dispatch(path, ev)

	require.True(t, ok)
	assert.Equal(t, []string{"leaf", "mid", "root"}, order)
}

func TestDispatchCapturingRunsBeforeBubbling(t *testing.T) {
	root := &Target{}
	leaf := &Target{}
	path := Path{root, leaf}

	var order []string
	root.AddEventListener("click", func(e *Event) { order = append(order, "root-capture") }, true)
	leaf.AddEventListener("click", func(e *Event) { order = append(order, "leaf-target") }, false)
	root.AddEventListener("click", func(e *Event) { order = append(order, "root-bubble") }, false)

	Dispatch(path, NewEvent("click", true, true))

	assert.Equal(t, []string{"root-capture", "leaf-target", "root-bubble"}, order)
}

func TestStopPropagationPreventsAncestorListeners(t *testing.T) {
	root := &Target{}
	leaf := &Target{}
	path := Path{root, leaf}

	rootCalled := false
	root.AddEventListener("click", func(e *Event) { rootCalled = true }, false)
	leaf.AddEventListener("click", func(e *Event) { e.StopPropagation() }, false)

	Dispatch(path, NewEvent("click", true, true))

	assert.False(t, rootCalled)
}

func TestStopImmediatePropagationSkipsSiblingListeners(t *testing.T) {
	leaf := &Target{}
	path := Path{leaf}

	secondCalled := false
	leaf.AddEventListener("click", func(e *Event) { e.StopImmediatePropagation() }, false)
	leaf.AddEventListener("click", func(e *Event) { secondCalled = true }, false)

	Dispatch(path, NewEvent("click", false, true))

	assert.False(t, secondCalled)
}

func TestPreventDefaultOnlyAppliesToCancelableEvents(t *testing.T) {
	leaf := &Target{}
	path := Path{leaf}

	leaf.AddEventListener("submit", func(e *Event) { e.PreventDefault() }, false)

	notCancelable := NewEvent("submit", false, false)
	ok := Dispatch(path, notCancelable)
	assert.True(t, ok, "PreventDefault on a non-cancelable event must be a no-op")

	cancelable := NewEvent("submit", false, true)
	ok = Dispatch(path, cancelable)
	assert.False(t, ok)
}

func TestRemoveEventListener(t *testing.T) {
	target := &Target{}
	called := false
	fn := func(e *Event) { called = true }

	target.AddEventListener("x", fn, false)
	target.RemoveEventListener("x", fn, false)

	Dispatch(Path{target}, NewEvent("x", false, false))
	assert.False(t, called)
}

func TestAddEventListenerOnceFiresOnlyOnce(t *testing.T) {
	target := &Target{}
	calls := 0
	target.AddEventListenerOnce("x", func(e *Event) { calls++ }, false)

	Dispatch(Path{target}, NewEvent("x", false, false))
	Dispatch(Path{target}, NewEvent("x", false, false))

	assert.Equal(t, 1, calls)
}

func TestHasListeners(t *testing.T) {
	target := &Target{}
	assert.False(t, target.HasListeners("x"))
	target.AddEventListener("x", func(e *Event) {}, false)
	assert.True(t, target.HasListeners("x"))
}
