package container

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
)

var (
	// ErrInvalidName matches InvalidNameError.
	ErrInvalidName = errors.New("container: invalid name")

	// ErrDuplicateRegistration matches DuplicateRegistrationError.
	ErrDuplicateRegistration = errors.New("container: name is already registered")

	// ErrUnknownService matches UnknownServiceError.
	ErrUnknownService = errors.New("container: no registration")

	// ErrCircularDependency matches CircularDependencyError.
	ErrCircularDependency = errors.New("container: circular dependency detected")

	// ErrWrongType matches WrongTypeError.
	ErrWrongType = errors.New("container: wrong type")
)

// containerError marks errors produced by the container itself, which Get
// propagates through nested factories without re-wrapping.
type containerError interface {
	error
	fromContainer()
}

// InvalidNameError is returned when a name is empty or not purely
// alphanumeric.
type InvalidNameError struct{ Name string }

func (e *InvalidNameError) Error() string {
	// Example: container: invalid name "my-foo"
	return "container: invalid name " + strconv.Quote(e.Name)
}

func (e *InvalidNameError) Is(target error) bool { return target == ErrInvalidName }
func (e *InvalidNameError) fromContainer()       {}

// DuplicateRegistrationError is returned when a name is registered twice.
// The first registration stays in effect.
type DuplicateRegistrationError struct{ Name string }

func (e *DuplicateRegistrationError) Error() string {
	return "container: name " + strconv.Quote(e.Name) + " is already registered"
}

func (e *DuplicateRegistrationError) Is(target error) bool {
	return target == ErrDuplicateRegistration
}
func (e *DuplicateRegistrationError) fromContainer() {}

// UnknownServiceError is returned by Get and Unregister for a name that is
// not registered.
type UnknownServiceError struct{ Name string }

func (e *UnknownServiceError) Error() string {
	// Example: container: no registration named "mailer"
	return "container: no registration named " + strconv.Quote(e.Name)
}

func (e *UnknownServiceError) Is(target error) bool { return target == ErrUnknownService }
func (e *UnknownServiceError) fromContainer()       {}

// CircularDependencyError is returned when resolving a name requires
// resolving it again. Chain starts and ends with the repeated name.
type CircularDependencyError struct{ Chain []string }

func (e *CircularDependencyError) Error() string {
	// Example: container: circular dependency detected (a -> b -> c -> a)
	return "container: circular dependency detected (" + strings.Join(e.Chain, " -> ") + ")"
}

func (e *CircularDependencyError) Is(target error) bool {
	return target == ErrCircularDependency
}
func (e *CircularDependencyError) fromContainer() {}

// FactoryError wraps an error returned by a service factory.
type FactoryError struct {
	Name string
	Err  error
}

func (e *FactoryError) Error() string {
	return "container: building " + strconv.Quote(e.Name) + ": " + e.Err.Error()
}

func (e *FactoryError) Unwrap() error  { return e.Err }
func (e *FactoryError) fromContainer() {}

// WrongTypeError is returned by Resolve when the instance is not of the
// requested type.
type WrongTypeError struct {
	Name string

	// Want and Got are type names, e.g. "*sql.DB".
	Want string
	Got  string
}

func (e *WrongTypeError) Error() string {
	return "container: " + strconv.Quote(e.Name) + " is " + e.Got + ", not " + e.Want
}

func (e *WrongTypeError) Is(target error) bool { return target == ErrWrongType }
func (e *WrongTypeError) fromContainer()       {}

// wrapFactoryError keeps container errors intact so the innermost failure
// (an unknown dependency, a cycle) reaches the top-level caller unchanged.
func wrapFactoryError(name string, err error) error {
	var ce containerError
	if errors.As(err, &ce) {
		return err
	}
	return &FactoryError{Name: name, Err: err}
}

// ── Reflect helpers ───────────────────────────────────────────────────────────

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

func valueTypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

func nillable[T any]() bool {
	switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
