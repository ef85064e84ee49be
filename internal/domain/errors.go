package domain

import "fmt"

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// DuplicateNameError represents a parent-scoped name collision in the
// geographic hierarchy.
type DuplicateNameError struct {
	Kind string
	Name string
}

func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("%s %q already exists in this scope", e.Kind, e.Name)
}

func (e DuplicateNameError) Is(target error) bool {
	_, ok := target.(DuplicateNameError)
	if ok {
		return true
	}
	_, ok = target.(*DuplicateNameError)
	return ok
}

var ErrDuplicateName = DuplicateNameError{}

// MemberNotFoundError is returned when a profile operation names an
// unregistered member. No rows are written in that case.
type MemberNotFoundError struct {
	ID uint
}

func (e MemberNotFoundError) Error() string {
	return fmt.Sprintf("member %d not found", e.ID)
}

func (e MemberNotFoundError) Is(target error) bool {
	_, ok := target.(MemberNotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*MemberNotFoundError)
	return ok
}

var ErrMemberNotFound = MemberNotFoundError{}

// ValidationError represents a recoverable caller mistake: an inconsistent
// geo chain, an unknown address type or sort key. Malformed dates never
// raise one; they are normalized to no value instead.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	if e.Reason == "" {
		return "validation failed"
	}
	return e.Reason
}

func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

var ErrValidation = ValidationError{}

// PersistenceError wraps a storage-layer failure. The enclosing transaction
// has been rolled back; the caller may retry, the core never does.
type PersistenceError struct {
	Err error
}

func (e PersistenceError) Error() string {
	if e.Err == nil {
		return "persistence failure"
	}
	return fmt.Sprintf("persistence failure: %v", e.Err)
}

func (e PersistenceError) Unwrap() error { return e.Err }

func (e PersistenceError) Is(target error) bool {
	_, ok := target.(PersistenceError)
	if ok {
		return true
	}
	_, ok = target.(*PersistenceError)
	return ok
}

var ErrPersistence = PersistenceError{}
