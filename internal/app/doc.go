// Package app wires application dependencies for the CLI and the TUI.
//
// It builds the key-value store selected by configuration, the API client
// and the high-level services from Config, exposing them via the Wire
// struct for commands to use.
package app
