// Package fetch drives the paginated client listing.
//
// A Controller owns the request lifecycle for one (page, limit) pair. Each
// fetch is tagged with a sequence token and cancels the one before it, so a
// late response for a superseded pair never overwrites newer state.
// Failures are reported through FetchState.Error with a fixed,
// user-facing message; the underlying error is only logged.
package fetch
