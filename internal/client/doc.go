// Package client talks to a running TodoBoard over its HTTP surface.
//
// It is used by the CLI's list, add and done commands. Responses from
// GET /todos are checked against an embedded JSON schema before they are
// decoded, so a server speaking a different shape fails loudly instead of
// producing zero-valued todos.
package client
