// Package api provides an HTTP implementation of domain.ClientAPI for the
// clients backend.
//
// The backend exposes a single resource, /users:
//   - GET    /users?page=P&limit=L  returns {clients, totalPages, currentPage}
//   - POST   /users                 creates a client and returns it
//   - PATCH  /users/{id}            updates a client and returns it
//   - DELETE /users/{id}            removes a client
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Non-2xx statuses are returned as *StatusError carrying the HTTP
// method, full URL and status text. Response bodies are decoded strictly:
// missing fields or invalid clients yield ErrMalformedResponse.
package api
