// Package clients validates client forms and forwards create, update and
// delete requests to the backend.
package clients
