// Package commands defines the clientdesk CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login <name>        Start a session under <name>
//   - logout              End the session
//   - whoami              Print the session name
//   - list                Print one page of clients
//   - create              Create a client
//   - update <id>         Replace a client's fields
//   - delete <id>         Delete a client
//   - select <id>         Add a client to the shortlist
//   - unselect <id>       Remove a client from the shortlist
//   - selected            Print the shortlist
//   - clear-selected      Empty the shortlist
//   - tui                 Start the interactive interface
//
// # Implementation
//
// The root command loads configuration, builds the logger and the dependency
// graph (store, API client, services) before any subcommand runs, and
// releases them afterwards. list and selected accept -o table|json|yaml and a
// JMESPath --query applied to the JSON form of the result.
package commands
