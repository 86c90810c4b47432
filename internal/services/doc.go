// Package services defines the [Store] interface for the remote todo list API and implements it over HTTP.
//
// # Store Interface
//
// The task synchronizer only talks to a [Store], so tests substitute an in-memory fake and
// `lanes serve` can stand in for the public API.
//
// # HTTP Implementation
//
// [TodoService] speaks the DummyJSON /todos contract:
//
//	GET    {base}?limit=N  → models.TodoPage
//	GET    {base}/{id}     → models.Todo
//	POST   {base}/add      → models.Todo
//	PUT    {base}/{id}     → models.Todo
//	DELETE {base}/{id}     → acknowledgement (ignored)
//
// Requests are paced by a token bucket ([rate.Limiter]) and tagged with an X-Request-ID.
// A configured token is attached by an [oauth2.Transport] as a static bearer token.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrTransport] : network failure or non-2xx status, with the server's message when present
//   - [shared.ErrParse] : response body could not be decoded
//   - [shared.ErrInvalidInput] : request body could not be encoded
package services
