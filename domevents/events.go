// Package domevents implements a minimal synchronous event dispatch model:
// an EventTarget with capture/target/bubble phases, cancelable events, and
// PreventDefault/StopPropagation/StopImmediatePropagation flags, grounded on
// spec.md §4.5. It is deliberately independent of the dom package so that
// tree-construction and mutation code can fire events without dom importing
// an event-loop or JS binding layer.
package domevents

import "reflect"

// Phase identifies which part of dispatch is currently running.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseCapturing
	PhaseAtTarget
	PhaseBubbling
)

// Event carries the state examined by listeners and the dispatcher: its
// type, whether it bubbles/can be canceled, and the three propagation flags
// the DOM event model defines.
type Event struct {
	Type       string
	Bubbles    bool
	Cancelable bool
	Detail     interface{}

	Target        *Target
	CurrentTarget *Target
	Phase         Phase

	defaultPrevented   bool
	propagationStopped bool
	immediateStopped   bool
}

// NewEvent creates an Event ready for Dispatch.
func NewEvent(typ string, bubbles, cancelable bool) *Event {
	return &Event{Type: typ, Bubbles: bubbles, Cancelable: cancelable}
}

// PreventDefault marks the event's default action as canceled. A no-op if
// the event was not created as cancelable.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault has taken effect.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation halts dispatch after the current listener group finishes
// running, without running any remaining listeners on the current target.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// StopImmediatePropagation halts dispatch immediately, including any
// remaining listeners still queued on the current target.
func (e *Event) StopImmediatePropagation() {
	e.propagationStopped = true
	e.immediateStopped = true
}

// Listener receives a dispatched Event.
type Listener func(e *Event)

type listenerEntry struct {
	fn   Listener
	key  uintptr
	once bool
}

func keyOf(fn Listener) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

// Target is an event listener registry, embedded by any type that needs to
// participate in dispatch (dom.Node embeds one via its Events() accessor).
type Target struct {
	capturing map[string][]listenerEntry
	bubbling  map[string][]listenerEntry
}

// AddEventListener registers fn for events of the given type. capture
// selects whether fn runs during the capturing phase (true) or the
// target/bubbling phases (false), mirroring addEventListener's useCapture
// argument.
func (t *Target) AddEventListener(typ string, fn Listener, capture bool) {
	t.addEventListener(typ, fn, capture, false)
}

// AddEventListenerOnce behaves like AddEventListener but removes fn after
// its first invocation.
func (t *Target) AddEventListenerOnce(typ string, fn Listener, capture bool) {
	t.addEventListener(typ, fn, capture, true)
}

func (t *Target) addEventListener(typ string, fn Listener, capture, once bool) {
	if fn == nil {
		return
	}
	m := t.bucket(capture, true)
	(*m)[typ] = append((*m)[typ], listenerEntry{fn: fn, key: keyOf(fn), once: once})
}

// RemoveEventListener unregisters the listener previously registered with
// the same type, function value, and capture flag. Function-value identity
// is compared by code pointer (reflect), so two distinct closures created
// from the same function literal are indistinguishable, as in most minimal
// Go event-target implementations.
func (t *Target) RemoveEventListener(typ string, fn Listener, capture bool) {
	if fn == nil {
		return
	}
	m := t.bucket(capture, false)
	if m == nil {
		return
	}
	entries := (*m)[typ]
	k := keyOf(fn)
	for i, e := range entries {
		if e.key == k {
			(*m)[typ] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

func (t *Target) bucket(capture, create bool) *map[string][]listenerEntry {
	if capture {
		if t.capturing == nil && create {
			t.capturing = make(map[string][]listenerEntry)
		}
		return &t.capturing
	}
	if t.bubbling == nil && create {
		t.bubbling = make(map[string][]listenerEntry)
	}
	return &t.bubbling
}

// HasListeners reports whether any listener, in either phase, is registered
// for typ. Callers use this to skip building a dispatch Path when no
// listener could possibly observe the event (e.g. legacy mutation events).
func (t *Target) HasListeners(typ string) bool {
	return len(t.capturing[typ]) > 0 || len(t.bubbling[typ]) > 0
}

// invoke runs the listeners registered for ev.Type in the given phase
// bucket against CurrentTarget, honoring StopImmediatePropagation and
// removing "once" listeners as they fire.
func (t *Target) invoke(ev *Event, capture bool) {
	m := t.bucket(capture, false)
	if m == nil {
		return
	}
	entries := (*m)[ev.Type]
	if len(entries) == 0 {
		return
	}
	// Snapshot so a listener adding/removing listeners mid-dispatch doesn't
	// perturb this invocation's iteration.
	snapshot := make([]listenerEntry, len(entries))
	copy(snapshot, entries)

	var onceKeys []uintptr
	for _, e := range snapshot {
		e.fn(ev)
		if e.once {
			onceKeys = append(onceKeys, e.key)
		}
		if ev.immediateStopped {
			break
		}
	}
	for _, k := range onceKeys {
		remaining := (*m)[ev.Type]
		for i, e := range remaining {
			if e.key == k {
				(*m)[ev.Type] = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}
}

// Path is an event's propagation path, ordered from the outermost ancestor
// (index 0) to the event target (last index).
type Path []*Target

// Dispatch runs ev through path's capturing phase (root -> target's parent),
// the at-target phase, and — if ev.Bubbles — the bubbling phase (target's
// parent -> root), honoring StopPropagation/StopImmediatePropagation at
// every step. It returns true unless a listener called PreventDefault on a
// cancelable event.
func Dispatch(path Path, ev *Event) bool {
	if len(path) == 0 {
		return true
	}
	ev.Target = path[len(path)-1]

	ev.Phase = PhaseCapturing
	for i := 0; i < len(path)-1; i++ {
		ev.CurrentTarget = path[i]
		path[i].invoke(ev, true)
		if ev.propagationStopped {
			return !ev.defaultPrevented
		}
	}

	ev.Phase = PhaseAtTarget
	target := path[len(path)-1]
	ev.CurrentTarget = target
	target.invoke(ev, true)
	if !ev.propagationStopped {
		target.invoke(ev, false)
	}
	if ev.propagationStopped {
		return !ev.defaultPrevented
	}

	if ev.Bubbles {
		ev.Phase = PhaseBubbling
		for i := len(path) - 2; i >= 0; i-- {
			ev.CurrentTarget = path[i]
			path[i].invoke(ev, false)
			if ev.propagationStopped {
				break
			}
		}
	}

	ev.Phase = PhaseNone
	return !ev.defaultPrevented
}
