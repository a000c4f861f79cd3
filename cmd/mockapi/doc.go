// Package main runs the in-memory clients backend used by clientdesk during
// development and tests.
//
// HTTP API
//
//	GET /users?page=P&limit=L
//	    Return {clients, totalPages, currentPage}. limit defaults to 16.
//
//	POST /users {name, salary, companyValuation}
//	    Create a client and return it.
//
//	PATCH /users/{id}
//	    Update the given fields and return the client.
//
//	DELETE /users/{id}
//	    Remove the client.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - --seed N pre-populates N generated clients.
//   - An access log records method, path, remote, status, bytes and duration
//     for each request at debug level.
//   - The default listen address is :8080.
package main
