// Package session persists the name the user logged in with.
//
// The name lives under StorageKey as {"state":{"name":...},"version":0};
// a logged-out session is written with a null name.
package session
