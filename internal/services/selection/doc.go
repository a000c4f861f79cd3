// Package selection keeps the user's shortlist of selected clients.
//
// The shortlist is an ordered set keyed by client id: adding a client whose
// id is already present is a no-op, and the first snapshot wins. Every
// mutation rewrites the whole list to the key-value store under
// StorageKey, wrapped in a {state, version} envelope. A missing or corrupt
// envelope is treated as an empty shortlist.
package selection
