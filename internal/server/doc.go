// Package server provides the HTTP server for the TodoBoard UI and API.
//
// This package is internal to TodoBoard and handles all HTTP concerns:
//
//   - Page serving: Renders the full HTML document at "/"
//   - JSON API: Current todo list at "/todos"
//   - Form mutations: "/create" and "/update", each answered with the
//     re-rendered list fragment for partial-page replacement
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests.
//
// Users of the todoboard library should not need to interact with this
// package directly. The server is started automatically by [todoboard.TodoBoard.Start].
package server
