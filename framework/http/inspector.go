package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-dislocator/framework/container"
	"github.com/km-arc/go-dislocator/framework/routing"
)

// ServiceStatus describes one registered service.
type ServiceStatus struct {
	Name       string `json:"name"`
	Registered bool   `json:"registered"`
	Resolved   bool   `json:"resolved"`
}

// Inspector serves a read-only JSON view of a container. It never resolves
// services, so inspecting cannot trigger a factory.
type Inspector struct {
	c      *container.Container
	logger *zap.Logger
}

// NewInspector creates an Inspector for c.
func NewInspector(c *container.Container, logger *zap.Logger) *Inspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inspector{c: c, logger: logger}
}

// Routes mounts the inspector endpoints on r:
//
//	GET /services?filter=<regexp>   → {"data": ["name", ...]}
//	GET /services/{name}            → {"data": {"name", "registered", "resolved"}}
func (i *Inspector) Routes(r *routing.Router) {
	r.Get("/services", i.List)
	r.Get("/services/{name}", i.Show)
}

// List returns registered names in registration order, optionally filtered
// by the "filter" query parameter.
func (i *Inspector) List(w http.ResponseWriter, r *http.Request) {
	req := NewRequest(r)
	res := NewResponse(w)

	if !req.Has("filter") {
		res.Success(i.c.Names(nil))
		return
	}

	names, err := i.c.NamesMatching(req.Query("filter"))
	if err != nil {
		i.logger.Debug("invalid service filter", zap.Error(err))
		res.Error(http.StatusUnprocessableEntity, err.Error())
		return
	}
	res.Success(names)
}

// Show reports whether a single service is registered and resolved.
func (i *Inspector) Show(w http.ResponseWriter, r *http.Request) {
	name := NewRequest(r).RouteParam("name")
	res := NewResponse(w)

	if !i.c.IsRegistered(name) {
		res.NotFound((&container.UnknownServiceError{Name: name}).Error())
		return
	}
	res.Success(ServiceStatus{
		Name:       name,
		Registered: true,
		Resolved:   i.c.Resolved(name),
	})
}
