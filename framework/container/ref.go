package container

// Ref is a typed handle on a named service. It stands in for reading the
// service as a field of the container: each Get goes through Container.Get,
// so it shares the container's cache and fails with UnknownServiceError once
// the name is unregistered.
type Ref[T any] struct {
	c    *Container
	name string
}

// Bind returns a Ref for name. The service does not need to be registered
// yet; nothing is resolved until Get is called.
//
//	mailer := container.Bind[*smtp.Client](c, "mailer")
//	client, err := mailer.Get()
func Bind[T any](c *Container, name string) Ref[T] {
	return Ref[T]{c: c, name: name}
}

// Name returns the service name the Ref points at.
func (r Ref[T]) Name() string { return r.name }

// Get resolves the service and asserts its type.
func (r Ref[T]) Get() (T, error) { return Resolve[T](r.c, r.name) }

// Must is like Get but panics on error.
func (r Ref[T]) Must() T {
	v, err := r.Get()
	if err != nil {
		panic(err)
	}
	return v
}
