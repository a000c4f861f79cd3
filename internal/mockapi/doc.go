// Package mockapi is an in-memory implementation of the clients backend,
// used for local development and by tests.
//
// HTTP API
//
//	GET /users?page=P&limit=L
//	    Return {clients, totalPages, currentPage} for the requested page.
//	    totalPages is ceil(n/limit); a page past the end is empty.
//
//	POST /users {name, salary, companyValuation}
//	    Create a client with a fresh UUID and return it with 201.
//
//	PATCH /users/{id} {name?, salary?, companyValuation?}
//	    Update the given fields and return the client.
//
//	DELETE /users/{id}
//	    Remove the client and answer 204.
//
// All state is held in memory and lost on process exit. Error responses are
// JSON {"error": "..."} with a 4xx status.
package mockapi
