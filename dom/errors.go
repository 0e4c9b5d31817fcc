package dom

import "fmt"

// DOMError represents a DOM exception with a name and message.
type DOMError struct {
	Name    string
	Message string
}

func (e *DOMError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Common DOM error constructors

// ErrHierarchyRequest creates a HierarchyRequestError.
func ErrHierarchyRequest(message string) *DOMError {
	return &DOMError{Name: "HierarchyRequestError", Message: message}
}

// ErrNotFound creates a NotFoundError.
func ErrNotFound(message string) *DOMError {
	return &DOMError{Name: "NotFoundError", Message: message}
}

// ErrInvalidCharacter creates an InvalidCharacterError.
func ErrInvalidCharacter(message string) *DOMError {
	return &DOMError{Name: "InvalidCharacterError", Message: message}
}

// ErrNotSupported creates a NotSupportedError.
func ErrNotSupported(message string) *DOMError {
	return &DOMError{Name: "NotSupportedError", Message: message}
}

// ErrInvalidState creates an InvalidStateError.
func ErrInvalidState(message string) *DOMError {
	return &DOMError{Name: "InvalidStateError", Message: message}
}

// ErrIndexSize creates an IndexSizeError.
func ErrIndexSize(message string) *DOMError {
	return &DOMError{Name: "IndexSizeError", Message: message}
}

// ErrWrongDocument creates a WrongDocumentError.
func ErrWrongDocument(message string) *DOMError {
	return &DOMError{Name: "WrongDocumentError", Message: message}
}

// ErrNamespace creates a NamespaceError.
func ErrNamespace(message string) *DOMError {
	return &DOMError{Name: "NamespaceError", Message: message}
}

// ErrInUseAttribute creates an InUseAttributeError.
func ErrInUseAttribute(message string) *DOMError {
	return &DOMError{Name: "InUseAttributeError", Message: message}
}

// ErrSyntax creates a SyntaxError.
func ErrSyntax(message string) *DOMError {
	return &DOMError{Name: "SyntaxError", Message: message}
}

// ErrNoMem creates a NoMemError. No operation in this package returns it:
// the Allocator interface has no failure result, so allocation failure is
// neither detected nor unwound.
func ErrNoMem(message string) *DOMError {
	return &DOMError{Name: "NoMemError", Message: message}
}

// ErrBadParam creates a BadParamError for a malformed or nil argument that
// is rejected before any validation specific to a single operation applies.
func ErrBadParam(message string) *DOMError {
	return &DOMError{Name: "BadParamError", Message: message}
}

// ErrInvalid creates a generic InvalidError for a precondition violation
// that does not fit one of the more specific error names.
func ErrInvalid(message string) *DOMError {
	return &DOMError{Name: "InvalidError", Message: message}
}

// ErrNoModificationAllowed creates a NoModificationAllowedError, returned
// when a mutation targets a read-only node (e.g. a DocumentType, or a node
// inside a read-only subtree).
func ErrNoModificationAllowed(message string) *DOMError {
	return &DOMError{Name: "NoModificationAllowedError", Message: message}
}

// ErrTypeMismatch creates a TypeMismatchError, returned when an operation
// receives a node of a kind it cannot operate on.
func ErrTypeMismatch(message string) *DOMError {
	return &DOMError{Name: "TypeMismatchError", Message: message}
}
