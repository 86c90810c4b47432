// Package server implements the development task store: a local HTTP server speaking the same
// /todos contract as the remote todo list API, backed by SQLite.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns ("GET /todos/{id}"), so a request
// with an unregistered method is answered with 405 by the mux itself.
//
// # Todos Handler
//
// [TodosHandler] serves the collection:
//
//	GET    /todos?limit=&skip=  list page
//	GET    /todos/{id}          single record
//	POST   /todos/add           create
//	PUT    /todos/{id}          merge update (PATCH is accepted too)
//	DELETE /todos/{id}          soft delete
//
// Errors are written as {"message": "..."} with a 400, 401, 404 or 500 status.
//
// # Middleware
//
//   - [RequestID] echoes or assigns an X-Request-ID
//   - [RequestLogger] logs each request with its status and duration
//   - [BearerAuth] rejects requests without the configured token
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
