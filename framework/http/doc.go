// Package http provides JSON request/response helpers and the container
// inspector endpoints.
//
//	inspector := gohttp.NewInspector(c, logger)
//	router.Prefix("/_container", inspector.Routes)
//
//	GET /_container/services               200 {"data": ["config", "logger"]}
//	GET /_container/services?filter=^log   200 {"data": ["logger"]}
//	GET /_container/services?filter=(      422 {"message": "error parsing regexp: ..."}
//	GET /_container/services/logger        200 {"data": {"name": "logger", "registered": true, "resolved": true}}
//	GET /_container/services/missing       404 {"message": "container: no registration named \"missing\""}
package http
