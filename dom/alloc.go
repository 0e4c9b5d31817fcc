package dom

import (
	"sync"

	"github.com/google/uuid"
	"github.com/webcore-engine/webcore/intern"
)

// DocumentMode records which of the three HTML quirks modes a Document was
// parsed in, per spec.md §3. The tree builder sets this from the doctype
// token before the first element is inserted.
type DocumentMode int

const (
	NoQuirksMode DocumentMode = iota
	LimitedQuirksMode
	QuirksMode
)

// DocumentReadyState mirrors the HTML Document.readyState string enum.
type DocumentReadyState string

const (
	ReadyStateLoading     DocumentReadyState = "loading"
	ReadyStateInteractive DocumentReadyState = "interactive"
	ReadyStateComplete    DocumentReadyState = "complete"
)

// Allocator is the injected resource-allocation contract from spec.md §5
// (`alloc(ptr, size) -> ptr`), realized as a Go interface: Alloc acquires a
// scratch byte slice of at least n bytes, Free releases one acquired from
// the same Allocator. Implementations must make every Free a no-op-safe
// operation on a slice that was never Alloc'd from them (the default
// pooled allocator does).
type Allocator interface {
	Alloc(n int) []byte
	Free(buf []byte)
}

// pooledAllocator is the default Allocator, grounded on the sync.Pool
// scratch-buffer pattern used for per-request byte buffers in the pack
// (e.g. tigerwill90-fox's routing tree, Sumatoshi-tech-codefang's UAST node
// allocator): buffers are bucketed by a rounded-up capacity class so that
// an Alloc reuses a buffer that Free returned to the same class. No code in
// this repository calls Alloc or Free.
type pooledAllocator struct {
	pools sync.Map // int (capacity class) -> *sync.Pool
}

// NewPooledAllocator returns the default Allocator implementation.
func NewPooledAllocator() Allocator {
	return &pooledAllocator{}
}

func allocClass(n int) int {
	c := 64
	for c < n {
		c <<= 1
	}
	return c
}

func (a *pooledAllocator) Alloc(n int) []byte {
	class := allocClass(n)
	poolI, _ := a.pools.LoadOrStore(class, &sync.Pool{
		New: func() interface{} {
			b := make([]byte, class)
			return &b
		},
	})
	pool := poolI.(*sync.Pool)
	bufP := pool.Get().(*[]byte)
	return (*bufP)[:0]
}

func (a *pooledAllocator) Free(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	class := allocClass(cap(buf))
	poolI, ok := a.pools.Load(class)
	if !ok {
		return
	}
	pool := poolI.(*sync.Pool)
	full := buf[:cap(buf)]
	pool.Put(&full)
}

// trackAllocation is called for every freshly allocated node and records
// nothing: nodes start with refcnt 1 (the creator's handle) and are not
// placed in the pending set until they are detached while still externally
// referenced (spec.md §9).
func (d *Document) trackAllocation(n *Node) {
	_ = n // nodes are GC-managed; this hook exists for symmetry with releasePending
	// and so a future arena-backed allocator has a single choke point to
	// intercept node creation.
}

// markPendingDeletion records that n was detached from the tree while its
// refcnt was still positive. It is freed (removed from the set, eligible
// for GC) once Unref drives the count to zero.
func (d *Document) markPendingDeletion(n *Node) {
	dd := d.AsNode().documentData
	if dd.pending == nil {
		dd.pending = make(map[*Node]struct{})
	}
	dd.pending[n] = struct{}{}
}

// releasePending removes n from the pending-deletion set once its refcount
// has dropped to zero.
func (d *Document) releasePending(n *Node) {
	dd := d.AsNode().documentData
	if dd.pending != nil {
		delete(dd.pending, n)
	}
}

// PendingDeletionCount reports how many detached-but-referenced nodes this
// document is still keeping alive, for diagnostics and tests.
func (d *Document) PendingDeletionCount() int {
	return len(d.AsNode().documentData.pending)
}

// Interner returns the document's name interner.
func (d *Document) Interner() *intern.Interner {
	return d.AsNode().documentData.interner
}

// Allocator returns the document's scratch-buffer allocator.
func (d *Document) Allocator() Allocator {
	return d.AsNode().documentData.allocator
}

// ID returns the document's diagnostic identifier, used only in log fields.
func (d *Document) ID() uuid.UUID {
	return d.AsNode().documentData.id
}
